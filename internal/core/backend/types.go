package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Role is the account type the accounting API assigns to a user.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleUtilisateur Role = "utilisateur"
	RoleComptable   Role = "comptable"
)

// ID accepts both JSON numbers and strings, since the API is not consistent
// about how it serializes primary keys.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Identity is the signed-in user as returned by GET /api/home.
type Identity struct {
	ID       ID     `json:"id" validate:"required"`
	Role     Role   `json:"role" validate:"required"`
	Identite string `json:"identite"`
	Email    string `json:"email"`
}

// AggregateStatistics holds the privileged-role counters.
type AggregateStatistics struct {
	TotalUsers      int64          `json:"totalUsers"`
	TotalOrders     int64          `json:"totalOrders"`
	TotalDeliveries int64          `json:"totalDeliveries"`
	UnpaidInvoices  int64          `json:"unpaidInvoices"`
	Roles           *RoleBreakdown `json:"roles,omitempty"`
}

// RoleBreakdown is the optional per-role user count some deployments add to
// the statistics payload.
type RoleBreakdown struct {
	AdminUsers    int64 `json:"adminUsers"`
	StandardUsers int64 `json:"standardUsers"`
	ManagerUsers  int64 `json:"managerUsers"`
}

// PeriodOrderPoint is one reporting bucket of the orders time series.
type PeriodOrderPoint struct {
	PeriodLabel string `json:"periodLabel"`
	Count       int64  `json:"count"`
}

// Document is a row of GET /api/documents_direction.
type Document struct {
	ID              ID     `json:"id"`
	Date            string `json:"date"`
	Nature          string `json:"nature"`
	Designation     string `json:"designation"`
	Destinataire    string `json:"destinataire"`
	Priorite        string `json:"priorite"`
	Observations    string `json:"observations"`
	DocumentFichier string `json:"document_fichier"`
}

// LoginResult is returned by POST /api/login.
type LoginResult struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// RegisterRequest is the payload of POST /api/register. Which optional
// fields are set depends on the role.
type RegisterRequest struct {
	Role           Role   `json:"role,omitempty"`
	Email          string `json:"email"`
	Identite       string `json:"identite"`
	MotDePasse     string `json:"mot_de_passe"`
	Tel            string `json:"tel"`
	Position       string `json:"position,omitempty"`
	CodeComptable  string `json:"code_comptable,omitempty"`
	CodeEntreprise string `json:"code_entreprise,omitempty"`
}

// EnterpriseCode is an entry of GET /api/code_entreprises.
type EnterpriseCode struct {
	ID             ID     `json:"id"`
	CodeEntreprise string `json:"code_entreprise"`
	Nom            string `json:"nom,omitempty"`
}

// Accountant is an entry of GET /api/comptables.
type Accountant struct {
	ID            ID     `json:"id"`
	CodeComptable string `json:"code_comptable"`
	Identite      string `json:"identite"`
}
