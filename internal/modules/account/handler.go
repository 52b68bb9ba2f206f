package account

import (
	"context"
	"errors"
	"sync"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/session"
	"github.com/MuhamadAgungGumelar/compta-web/internal/shared/utils"
	"github.com/MuhamadAgungGumelar/compta-web/internal/view"
	"github.com/gofiber/fiber/v2"
)

// HomePath is where a successful sign-in lands.
const HomePath = "/dashboard"

// Backend is the part of the API client the account pages need.
type Backend interface {
	Login(ctx context.Context, email, password string) (backend.LoginResult, error)
	Register(ctx context.Context, req backend.RegisterRequest) error
	FetchEnterpriseCodes(ctx context.Context) ([]backend.EnterpriseCode, error)
	FetchAccountants(ctx context.Context) ([]backend.Accountant, error)
}

type AccountHandler struct {
	api       Backend
	store     *session.Store
	validator *FormValidator
}

func NewAccountHandler(api Backend, store *session.Store) *AccountHandler {
	return &AccountHandler{
		api:       api,
		store:     store,
		validator: NewValidator(),
	}
}

// Register mounts the account routes.
func (h *AccountHandler) Register(r fiber.Router) {
	r.Get("/", h.GetLogin)
	r.Post("/login", h.PostLogin)
	r.Post("/logout", h.PostLogout)
	r.Get("/register", h.GetRegister)
	r.Post("/register", h.PostRegister)
}

// GetLogin godoc
// @Summary Sign-in page
// @Description Signed-in users go to the dashboard unless an error is waiting to be shown
// @Tags Account
// @Produce html
// @Success 200 {string} string "HTML page"
// @Success 303 {string} string "Redirect to the dashboard"
// @Router / [get]
func (h *AccountHandler) GetLogin(c *fiber.Ctx) error {
	flashes := view.GetFlashes(c)
	if session.FromCtx(c).Authenticated() && flashes.Error == "" {
		return c.Redirect(HomePath, fiber.StatusSeeOther)
	}
	return h.renderLogin(c, fiber.StatusOK, flashes, LoginForm{}, nil, "")
}

// PostLogin godoc
// @Summary Sign in
// @Description Exchanges credentials for a session cookie
// @Tags Account
// @Accept x-www-form-urlencoded
// @Produce html
// @Param email formData string true "Email"
// @Param mot_de_passe formData string true "Password"
// @Success 303 {string} string "Redirect to the dashboard"
// @Failure 400 {string} string "Form with errors"
// @Failure 401 {string} string "Form with errors"
// @Router /login [post]
func (h *AccountHandler) PostLogin(c *fiber.Ctx) error {
	var form LoginForm
	if err := c.BodyParser(&form); err != nil {
		return h.renderLogin(c, fiber.StatusBadRequest, view.Flashes{}, form, nil, "Invalid request body")
	}

	if failures := h.validator.Validate(&form); len(failures) > 0 {
		return h.renderLogin(c, fiber.StatusBadRequest, view.Flashes{}, form, failures, "")
	}

	result, err := h.api.Login(c.UserContext(), form.Email, form.MotDePasse)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthenticated) {
			return h.renderLogin(c, fiber.StatusUnauthorized, view.Flashes{}, form, nil, "Incorrect email or password")
		}
		utils.LogWarn("login failed", map[string]interface{}{"error": err.Error()})
		return h.renderLogin(c, fiber.StatusBadGateway, view.Flashes{}, form, nil, "Sign-in is unavailable right now. Please try again later.")
	}

	if err := h.store.Save(c, result.Token); err != nil {
		return err
	}

	utils.LogInfo("user signed in", map[string]interface{}{"user_id": result.User.ID.String(), "role": string(result.User.Role)})
	return c.Redirect(HomePath, fiber.StatusSeeOther)
}

// PostLogout godoc
// @Summary Sign out
// @Tags Account
// @Success 303 {string} string "Redirect to sign-in"
// @Router /logout [post]
func (h *AccountHandler) PostLogout(c *fiber.Ctx) error {
	h.store.Clear(c)
	return c.Redirect(session.SignInPath, fiber.StatusSeeOther)
}

// GetRegister godoc
// @Summary Registration page
// @Tags Account
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /register [get]
func (h *AccountHandler) GetRegister(c *fiber.Ctx) error {
	return h.renderRegister(c, fiber.StatusOK, RegisterForm{}, nil, "")
}

// PostRegister godoc
// @Summary Create an account
// @Tags Account
// @Accept x-www-form-urlencoded
// @Produce html
// @Param role formData string true "utilisateur or comptable"
// @Success 303 {string} string "Redirect to sign-in"
// @Failure 400 {string} string "Form with errors"
// @Router /register [post]
func (h *AccountHandler) PostRegister(c *fiber.Ctx) error {
	var form RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return h.renderRegister(c, fiber.StatusBadRequest, form, nil, "Invalid request body")
	}
	form.normalize()

	if failures := h.validator.Validate(&form); len(failures) > 0 {
		return h.renderRegister(c, fiber.StatusBadRequest, form, failures, "")
	}

	if err := h.api.Register(c.UserContext(), form.Request()); err != nil {
		utils.LogWarn("registration rejected", map[string]interface{}{"error": err.Error(), "role": form.Role})
		return h.renderRegister(c, fiber.StatusBadRequest, form, nil, registrationMessage(err))
	}

	view.SetFlashSuccess(c, "Your account was created. You can now sign in.")
	return c.Redirect(session.SignInPath, fiber.StatusSeeOther)
}

func registrationMessage(err error) string {
	var te *backend.TransportError
	if errors.As(err, &te) && te.Message != "" {
		return te.Message
	}
	return "Registration failed. Please try again later."
}

// choices loads the code lists for the registration form. A failed list is
// left empty.
func (h *AccountHandler) choices(ctx context.Context) ([]backend.EnterpriseCode, []backend.Accountant) {
	var (
		codes       []backend.EnterpriseCode
		accountants []backend.Accountant
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		if codes, err = h.api.FetchEnterpriseCodes(ctx); err != nil {
			utils.LogWarn("failed to load enterprise codes", map[string]interface{}{"error": err.Error()})
			codes = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if accountants, err = h.api.FetchAccountants(ctx); err != nil {
			utils.LogWarn("failed to load accountants", map[string]interface{}{"error": err.Error()})
			accountants = nil
		}
	}()
	wg.Wait()

	return codes, accountants
}

func (h *AccountHandler) renderLogin(c *fiber.Ctx, status int, flashes view.Flashes, form LoginForm, failures map[string]string, serverError string) error {
	return view.Render(c, status, view.Page(view.PageProps{
		Title:   "Sign in",
		Flashes: flashes,
	}, LoginPage(form, failures, serverError)))
}

func (h *AccountHandler) renderRegister(c *fiber.Ctx, status int, form RegisterForm, failures map[string]string, serverError string) error {
	codes, accountants := h.choices(c.UserContext())

	return view.Render(c, status, view.Page(view.PageProps{
		Title: "Register",
	}, RegisterPage(RegisterPageProps{
		Form:        form,
		Failures:    failures,
		ServerError: serverError,
		Codes:       codes,
		Accountants: accountants,
	})))
}
