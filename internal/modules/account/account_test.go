package account

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/session"
	"github.com/MuhamadAgungGumelar/compta-web/internal/view"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	loginErr    error
	registerErr error
	registered  *backend.RegisterRequest
	codesErr    error
	accountsErr error
}

func (f *fakeBackend) Login(_ context.Context, email, _ string) (backend.LoginResult, error) {
	if f.loginErr != nil {
		return backend.LoginResult{}, f.loginErr
	}
	return backend.LoginResult{Token: "tok-" + email, User: backend.Identity{ID: "1", Role: backend.RoleComptable}}, nil
}

func (f *fakeBackend) Register(_ context.Context, req backend.RegisterRequest) error {
	f.registered = &req
	return f.registerErr
}

func (f *fakeBackend) FetchEnterpriseCodes(context.Context) ([]backend.EnterpriseCode, error) {
	if f.codesErr != nil {
		return nil, f.codesErr
	}
	return []backend.EnterpriseCode{{ID: "1", CodeEntreprise: "ENT01", Nom: "Societe A"}}, nil
}

func (f *fakeBackend) FetchAccountants(context.Context) ([]backend.Accountant, error) {
	if f.accountsErr != nil {
		return nil, f.accountsErr
	}
	return []backend.Accountant{{ID: "2", CodeComptable: "CPT07", Identite: "Rakoto"}}, nil
}

func newTestApp(api Backend) *fiber.App {
	store := session.NewStore("compta_token", []byte("0123456789abcdef0123456789abcdef"), nil, false)
	app := fiber.New()
	app.Use(session.LoadSession(store))
	app.Use(view.UseFlashes(store.Codec()))
	app.Post("/test-login", func(c *fiber.Ctx) error { return store.Save(c, "tok") })
	app.Post("/test-flash", func(c *fiber.Ctx) error {
		view.SetFlashError(c, "We could not verify your session right now.")
		return c.SendStatus(fiber.StatusNoContent)
	})
	NewAccountHandler(api, store).Register(app)
	return app
}

// cookiesFrom runs each setup request and returns the cookies they set.
func cookiesFrom(t *testing.T, app *fiber.App, paths ...string) []*http.Cookie {
	t.Helper()
	var out []*http.Cookie
	for _, p := range paths {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, p, nil))
		require.NoError(t, err)
		out = append(out, resp.Cookies()...)
	}
	return out
}

func postForm(t *testing.T, app *fiber.App, target string, values url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func validUtilisateur() RegisterForm {
	return RegisterForm{
		Role:       "utilisateur",
		Email:      "rabe@example.mg",
		Identite:   "Rabe",
		MotDePasse: "secret",
		Tel:        "34123456",
		Position:   "Directeur",
	}
}

func TestValidateRegisterForm(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		mutate func(*RegisterForm)
		field  string
	}{
		{name: "bad email", mutate: func(f *RegisterForm) { f.Email = "not-an-email" }, field: "email"},
		{name: "missing identite", mutate: func(f *RegisterForm) { f.Identite = "" }, field: "identite"},
		{name: "short password", mutate: func(f *RegisterForm) { f.MotDePasse = "abc" }, field: "mot_de_passe"},
		{name: "short phone", mutate: func(f *RegisterForm) { f.Tel = "1234567" }, field: "tel"},
		{name: "phone with sign", mutate: func(f *RegisterForm) { f.Tel = "+1234567" }, field: "tel"},
		{name: "phone with letters", mutate: func(f *RegisterForm) { f.Tel = "3200000a" }, field: "tel"},
		{name: "missing position", mutate: func(f *RegisterForm) { f.Position = "" }, field: "position"},
		{name: "unknown role", mutate: func(f *RegisterForm) { f.Role = "admin" }, field: "role"},
		{
			name: "comptable without codes",
			mutate: func(f *RegisterForm) {
				f.Role = "comptable"
				f.Position = ""
			},
			field: "code_comptable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validUtilisateur()
			tt.mutate(&form)

			failures := v.Validate(&form)
			assert.Contains(t, failures, tt.field)
		})
	}

	form := validUtilisateur()
	assert.Empty(t, v.Validate(&form))

	comptable := RegisterForm{
		Role: "comptable", Email: "c@example.mg", Identite: "Rakoto", MotDePasse: "1234",
		Tel: "32000000", CodeComptable: "CPT07", CodeEntreprise: "ENT01",
	}
	assert.Empty(t, v.Validate(&comptable))
}

func TestNewValidatorRegistersDigitsRule(t *testing.T) {
	var v *FormValidator
	require.NotPanics(t, func() { v = NewValidator() })

	form := validUtilisateur()
	form.Tel = "32 00000"
	assert.Equal(t, "Phone number must contain exactly 8 digits", v.Validate(&form)["tel"])
}

func TestValidatePasswordMessage(t *testing.T) {
	form := validUtilisateur()
	form.MotDePasse = "abc"

	failures := NewValidator().Validate(&form)
	assert.Equal(t, "Password must contain at least 4 characters", failures["mot_de_passe"])
}

func TestRegisterRequestKeepsRoleFields(t *testing.T) {
	form := validUtilisateur()
	form.CodeComptable = "leftover"

	req := form.Request()
	assert.Equal(t, backend.RoleUtilisateur, req.Role)
	assert.Equal(t, "Directeur", req.Position)
	assert.Empty(t, req.CodeComptable)

	form.Role = "comptable"
	form.CodeEntreprise = "ENT01"
	req = form.Request()
	assert.Empty(t, req.Position)
	assert.Equal(t, "leftover", req.CodeComptable)
	assert.Equal(t, "ENT01", req.CodeEntreprise)
}

func TestPostLoginSetsCookieAndRedirects(t *testing.T) {
	app := newTestApp(&fakeBackend{})

	resp := postForm(t, app, "/login", url.Values{"email": {"a@example.mg"}, "mot_de_passe": {"pw"}})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, HomePath, resp.Header.Get("Location"))
	require.NotEmpty(t, resp.Cookies())
	assert.Equal(t, "compta_token", resp.Cookies()[0].Name)
}

func TestGetLoginRedirectsSignedInUser(t *testing.T) {
	app := newTestApp(&fakeBackend{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookiesFrom(t, app, "/test-login") {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, HomePath, resp.Header.Get("Location"))
}

func TestGetLoginShowsPendingErrorToSignedInUser(t *testing.T) {
	app := newTestApp(&fakeBackend{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookiesFrom(t, app, "/test-login", "/test-flash") {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "We could not verify your session right now.")
}

func TestPostLoginRejected(t *testing.T) {
	app := newTestApp(&fakeBackend{loginErr: backend.ErrUnauthenticated})

	resp := postForm(t, app, "/login", url.Values{"email": {"a@example.mg"}, "mot_de_passe": {"bad"}})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Incorrect email or password")
	assert.Empty(t, resp.Cookies())
}

func TestPostLoginInvalidForm(t *testing.T) {
	app := newTestApp(&fakeBackend{})

	resp := postForm(t, app, "/login", url.Values{"email": {"nope"}})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid email address")
}

func TestPostLogoutClearsCookie(t *testing.T) {
	app := newTestApp(&fakeBackend{})

	resp := postForm(t, app, "/logout", url.Values{})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, session.SignInPath, resp.Header.Get("Location"))
	require.NotEmpty(t, resp.Cookies())
	assert.Empty(t, resp.Cookies()[0].Value)
}

func TestGetRegisterListsCodes(t *testing.T) {
	app := newTestApp(&fakeBackend{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/register", nil))
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ENT01 - Societe A")
	assert.Contains(t, body, "CPT07 - Rakoto")
}

func TestGetRegisterSurvivesCodeListFailure(t *testing.T) {
	app := newTestApp(&fakeBackend{codesErr: &backend.TransportError{Op: "fetch enterprise codes", StatusCode: 500}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/register", nil))
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "ENT01")
	assert.Contains(t, body, "CPT07 - Rakoto")
}

func TestGetRegisterSurvivesBothCodeListFailures(t *testing.T) {
	app := newTestApp(&fakeBackend{
		codesErr:    &backend.TransportError{Op: "fetch enterprise codes", StatusCode: 500},
		accountsErr: &backend.TransportError{Op: "fetch accountants", StatusCode: 500},
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/register", nil))
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "ENT01")
	assert.NotContains(t, body, "CPT07")
}

func TestPostRegister(t *testing.T) {
	api := &fakeBackend{}
	app := newTestApp(api)

	f := validUtilisateur()
	resp := postForm(t, app, "/register", url.Values{
		"role": {f.Role}, "email": {f.Email}, "identite": {f.Identite},
		"mot_de_passe": {f.MotDePasse}, "tel": {f.Tel}, "position": {f.Position},
	})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, session.SignInPath, resp.Header.Get("Location"))
	require.NotNil(t, api.registered)
	assert.Equal(t, "Directeur", api.registered.Position)

	var flash *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "flash_success" {
			flash = c
		}
	}
	require.NotNil(t, flash)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(flash)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "Your account was created.")
}

func TestPostRegisterSurfacesServerMessage(t *testing.T) {
	api := &fakeBackend{registerErr: &backend.TransportError{
		Op: "register", StatusCode: 400, Message: "Duplicate entry 'rabe@example.mg' for key 'email'",
	}}
	app := newTestApp(api)

	f := validUtilisateur()
	resp := postForm(t, app, "/register", url.Values{
		"role": {f.Role}, "email": {f.Email}, "identite": {f.Identite},
		"mot_de_passe": {f.MotDePasse}, "tel": {f.Tel}, "position": {f.Position},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Duplicate entry &#39;rabe@example.mg&#39; for key &#39;email&#39;")
}

func TestPostRegisterValidationSkipsBackend(t *testing.T) {
	api := &fakeBackend{}
	app := newTestApp(api)

	resp := postForm(t, app, "/register", url.Values{"role": {"comptable"}, "email": {"x@example.mg"}})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, api.registered)
	assert.Contains(t, readBody(t, resp), "Accountant code is required")
}
