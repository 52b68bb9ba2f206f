package dashboard

import (
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/session"
	"github.com/MuhamadAgungGumelar/compta-web/internal/view"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	api   Backend
	store *session.Store
	opts  []Option
}

func NewDashboardHandler(api Backend, store *session.Store, opts ...Option) *DashboardHandler {
	return &DashboardHandler{
		api:   api,
		store: store,
		opts:  opts,
	}
}

// Register mounts the dashboard routes.
func (h *DashboardHandler) Register(r fiber.Router) {
	r.Get("/dashboard", h.GetDashboard)
	r.Get("/dashboard/data", h.GetDashboardData)
}

// mount runs one pipeline for the request. The orchestrator lives only as
// long as the request. The cookie is cleared only when the credential was
// refused; an identity lookup that failed for another reason keeps it.
func (h *DashboardHandler) mount(c *fiber.Ctx) (State, *session.Session) {
	sess := session.FromCtx(c)

	o := New(h.api, h.opts...)
	defer o.Unmount()

	state := o.Mount(c.UserContext(), sess)
	if state.CredentialRejected() {
		h.store.Clear(c)
	}
	return state, sess
}

// GetDashboard godoc
// @Summary Dashboard page
// @Description Role-adaptive dashboard rendered as HTML
// @Tags Dashboard
// @Produce html
// @Success 200 {string} string "HTML page"
// @Success 303 {string} string "Redirect to sign-in"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	state, sess := h.mount(c)
	v := BuildView(state)
	if v.Phase == PhaseUnauthenticated {
		if !state.CredentialRejected() {
			view.SetFlashError(c, v.Error)
		}
		return c.Redirect(v.Redirect, fiber.StatusSeeOther)
	}

	return view.Render(c, fiber.StatusOK, view.Page(view.PageProps{
		Title:    "Dashboard",
		Identity: sess.Identity,
		Flashes:  view.GetFlashes(c),
		Scripts:  view.ChartScripts(),
	}, Page(v)))
}

// GetDashboardData godoc
// @Summary Dashboard data
// @Description Chart-ready dashboard data for the signed-in user
// @Tags Dashboard
// @Produce json
// @Success 200 {object} View
// @Failure 401 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /dashboard/data [get]
func (h *DashboardHandler) GetDashboardData(c *fiber.Ctx) error {
	state, _ := h.mount(c)
	v := BuildView(state)
	if v.Phase != PhaseUnauthenticated {
		return c.JSON(v)
	}

	if state.CredentialRejected() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":    "Unauthorized",
			"redirect": v.Redirect,
		})
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error":     v.Error,
		"errorKind": v.ErrorKind,
		"redirect":  v.Redirect,
	})
}
