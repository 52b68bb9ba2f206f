package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Payloads are decoded into typed structs and checked with struct tags.
// Nothing is coerced: a field of the wrong type rejects the whole payload.
var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(roleBreakdownComplete, statisticsPayload{})
	return v
}

// decodePayload unmarshals body into dst and validates it. Any failure is
// a *MalformedResponseError.
func decodePayload(op string, body []byte, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return malformed(op, "%s", describeDecodeError(err))
	}
	if err := payloadValidator.Struct(dst); err != nil {
		return malformed(op, "%s", describeValidationError(err))
	}
	return nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value)
		}
		return fmt.Sprintf("%q must be %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "invalid JSON: " + syntaxErr.Error()
	}
	return err.Error()
}

func describeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("missing %q", field)
	case "min":
		return fmt.Sprintf("%q must be at least %s", field, fe.Param())
	case "all_or_none":
		return fmt.Sprintf("%q must be complete or absent", field)
	default:
		return fmt.Sprintf("%q failed %q", field, fe.Tag())
	}
}

type statisticsPayload struct {
	TotalUsers      *int64 `json:"totalUsers" validate:"required,min=0"`
	TotalOrders     *int64 `json:"totalOrders" validate:"required,min=0"`
	TotalDeliveries *int64 `json:"totalDeliveries" validate:"required,min=0"`
	UnpaidInvoices  *int64 `json:"unpaidInvoices" validate:"required,min=0"`

	AdminUsers    *int64 `json:"adminUsers" validate:"omitempty,min=0"`
	StandardUsers *int64 `json:"standardUsers" validate:"omitempty,min=0"`
	ManagerUsers  *int64 `json:"managerUsers" validate:"omitempty,min=0"`
}

// roleBreakdownComplete rejects a statistics payload carrying only some of
// the per-role counters.
func roleBreakdownComplete(sl validator.StructLevel) {
	p := sl.Current().Interface().(statisticsPayload)

	present := 0
	for _, n := range []*int64{p.AdminUsers, p.StandardUsers, p.ManagerUsers} {
		if n != nil {
			present++
		}
	}
	if present > 0 && present < 3 {
		sl.ReportError(present, "roles", "AdminUsers", "all_or_none", "")
	}
}

type ordersPayload struct {
	OrdersPerPeriod []periodPayload `json:"ordersPerPeriod" validate:"required,dive"`
}

type periodPayload struct {
	Label *string `json:"label" validate:"required"`
	Count *int64  `json:"count" validate:"required,min=0"`
}

// UnmarshalJSON accepts "period" when "label" is absent.
func (p *periodPayload) UnmarshalJSON(data []byte) error {
	type fields periodPayload
	var raw struct {
		fields
		Period *string `json:"period"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = periodPayload(raw.fields)
	if p.Label == nil {
		p.Label = raw.Period
	}
	return nil
}

type homePayload struct {
	User *Identity `json:"user" validate:"required"`
}
