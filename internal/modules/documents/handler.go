package documents

import (
	"context"
	"errors"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/export"
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/session"
	"github.com/MuhamadAgungGumelar/compta-web/internal/shared/utils"
	"github.com/MuhamadAgungGumelar/compta-web/internal/view"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// Backend is the part of the API client the document pages need.
type Backend interface {
	ResolveIdentity(ctx context.Context, token string) (backend.Identity, error)
	FetchDocuments(ctx context.Context, token string) ([]backend.Document, error)
}

type DocumentsHandler struct {
	api      Backend
	store    *session.Store
	exports  *export.Service
	baseURL  *url.URL
	perPage  int
	sanitize *bluemonday.Policy
}

// NewDocumentsHandler creates the handler. apiBaseURL resolves relative
// image paths returned by the API.
func NewDocumentsHandler(api Backend, store *session.Store, exports *export.Service, apiBaseURL string, perPage int) *DocumentsHandler {
	base, err := url.Parse(apiBaseURL)
	if err != nil {
		base = &url.URL{}
	}
	return &DocumentsHandler{
		api:      api,
		store:    store,
		exports:  exports,
		baseURL:  base,
		perPage:  perPage,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Register mounts the document routes.
func (h *DocumentsHandler) Register(r fiber.Router) {
	g := r.Group("/documents", session.RequireSession())
	g.Get("/", h.ListDocuments)
	g.Get("/export", h.ExportDocuments)
	g.Get("/:id/preview", h.PreviewDocument)
	g.Get("/:id/qr", h.DocumentQRCode)
}

// load resolves the identity and fetches the documents. When the
// credential is rejected the cookie is cleared and errRedirect returned;
// any other failure is returned as is and the cookie kept.
func (h *DocumentsHandler) load(c *fiber.Ctx) (*session.Session, []backend.Document, error) {
	sess := session.FromCtx(c)
	ctx := c.UserContext()

	if sess.Identity == nil {
		if _, err := sess.Refresh(ctx, h.api); err != nil {
			return sess, nil, h.rejected(c, err)
		}
	}

	docs, err := h.api.FetchDocuments(ctx, sess.Token)
	if err != nil {
		return sess, nil, h.rejected(c, err)
	}
	return sess, h.clean(docs), nil
}

func (h *DocumentsHandler) rejected(c *fiber.Ctx, err error) error {
	if errors.Is(err, backend.ErrUnauthenticated) {
		h.store.Clear(c)
		return errRedirect
	}
	return err
}

var errRedirect = errors.New("redirect to sign-in")

// clean strips markup from every text column. The result is plain text;
// escaping is left to the renderer.
func (h *DocumentsHandler) clean(docs []backend.Document) []backend.Document {
	plain := func(s string) string {
		return strings.TrimSpace(html.UnescapeString(h.sanitize.Sanitize(s)))
	}

	out := make([]backend.Document, len(docs))
	for i, d := range docs {
		d.Nature = plain(d.Nature)
		d.Designation = plain(d.Designation)
		d.Destinataire = plain(d.Destinataire)
		d.Priorite = plain(d.Priorite)
		d.Observations = plain(d.Observations)
		out[i] = d
	}
	return out
}

// ImageURL returns the absolute URL of the document's image, or "" when it
// has none or it is not an http(s) URL.
func (h *DocumentsHandler) ImageURL(d backend.Document) string {
	raw := strings.TrimSpace(d.DocumentFichier)
	if raw == "" {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	abs := h.baseURL.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}

// ListDocuments godoc
// @Summary Documents for management
// @Description Searchable, paginated list of management documents
// @Tags Documents
// @Produce html
// @Param q query string false "Search in nature, designation, recipient, date and priority"
// @Param page query int false "Page number, starting at 1"
// @Success 200 {string} string "HTML page"
// @Success 303 {string} string "Redirect to sign-in"
// @Router /documents [get]
func (h *DocumentsHandler) ListDocuments(c *fiber.Ctx) error {
	query := c.Query("q")
	sess, docs, err := h.load(c)
	if errors.Is(err, errRedirect) {
		return c.Redirect(session.SignInPath, fiber.StatusSeeOther)
	}

	props := ListProps{
		Query:     query,
		Comptable: sess.Role() == backend.RoleComptable,
		ImageURL:  h.ImageURL,
	}
	if err != nil {
		utils.LogWarn("failed to fetch documents", map[string]interface{}{"error": err.Error()})
		props.Error = "Unable to load documents. Please try again later."
	}
	props.Page = Paginate(Filter(docs, query), c.QueryInt("page", 1)-1, h.perPage)

	return view.Render(c, fiber.StatusOK, view.Page(view.PageProps{
		Title:    "Documents",
		Identity: sess.Identity,
		Flashes:  view.GetFlashes(c),
	}, ListPage(props)))
}

// PreviewDocument godoc
// @Summary Document image preview
// @Description HTML fragment with the document's image
// @Tags Documents
// @Produce html
// @Param id path string true "Document ID"
// @Success 200 {string} string "HTML fragment"
// @Failure 404 {string} string "Not found"
// @Router /documents/{id}/preview [get]
func (h *DocumentsHandler) PreviewDocument(c *fiber.Ctx) error {
	doc, status, err := h.lookup(c)
	if err != nil || status != fiber.StatusOK {
		return h.lookupFailed(c, status, err)
	}

	imageURL := h.ImageURL(doc)
	if imageURL == "" {
		return c.Status(fiber.StatusNotFound).SendString("Document image not found")
	}
	return view.Render(c, fiber.StatusOK, PreviewModal(doc, imageURL))
}

// DocumentQRCode godoc
// @Summary Document QR code
// @Description PNG QR code pointing at the document's image
// @Tags Documents
// @Produce png
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {string} string "Not found"
// @Router /documents/{id}/qr [get]
func (h *DocumentsHandler) DocumentQRCode(c *fiber.Ctx) error {
	doc, status, err := h.lookup(c)
	if err != nil || status != fiber.StatusOK {
		return h.lookupFailed(c, status, err)
	}

	imageURL := h.ImageURL(doc)
	if imageURL == "" {
		return c.Status(fiber.StatusNotFound).SendString("Document image not found")
	}

	png, err := qrcode.Encode(imageURL, qrcode.Medium, qrSize)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return c.Send(png)
}

// ExportDocuments godoc
// @Summary Export documents
// @Description Exports the filtered document list (accountants only)
// @Tags Documents
// @Produce application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string true "xlsx or pdf"
// @Param q query string false "Search filter"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /documents/export [get]
func (h *DocumentsHandler) ExportDocuments(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format", string(export.FormatExcel)))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sess, docs, err := h.load(c)
	if errors.Is(err, errRedirect) {
		return c.Redirect(session.SignInPath, fiber.StatusSeeOther)
	}
	if err != nil {
		utils.LogWarn("failed to fetch documents for export", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Unable to load documents"})
	}
	if sess.Role() != backend.RoleComptable {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Export is reserved to accountants"})
	}

	query := c.Query("q")
	file, err := h.exports.Export(DocumentsTable(Filter(docs, query), query, time.Now()), format, "documents")
	if err != nil {
		utils.LogError("document export failed", err, map[string]interface{}{"format": string(format)})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Export failed"})
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Attachment(file.Name)
	return c.Send(file.Data)
}

// lookup loads the documents and finds the one named by :id.
func (h *DocumentsHandler) lookup(c *fiber.Ctx) (backend.Document, int, error) {
	_, docs, err := h.load(c)
	if errors.Is(err, errRedirect) {
		return backend.Document{}, fiber.StatusSeeOther, nil
	}
	if err != nil {
		return backend.Document{}, fiber.StatusBadGateway, err
	}

	doc, ok := Find(docs, c.Params("id"))
	if !ok {
		return backend.Document{}, fiber.StatusNotFound, nil
	}
	return doc, fiber.StatusOK, nil
}

func (h *DocumentsHandler) lookupFailed(c *fiber.Ctx, status int, err error) error {
	switch status {
	case fiber.StatusSeeOther:
		return c.Redirect(session.SignInPath, fiber.StatusSeeOther)
	case fiber.StatusNotFound:
		return c.Status(fiber.StatusNotFound).SendString("Document not found")
	default:
		utils.LogWarn("failed to fetch documents", map[string]interface{}{"error": err.Error()})
		return c.Status(status).SendString("Unable to load documents")
	}
}

// DocumentsTable turns documents into an export table.
func DocumentsTable(docs []backend.Document, query string, now time.Time) *export.Table {
	rows := make([][]string, len(docs))
	for i, d := range docs {
		rows[i] = []string{
			FormatDate(d.Date),
			d.Nature,
			d.Designation,
			d.Destinataire,
			d.Priorite,
			d.Observations,
		}
	}

	subtitle := ""
	if strings.TrimSpace(query) != "" {
		subtitle = "Filter: " + strings.TrimSpace(query)
	}

	style := export.DefaultStyle()
	style.ColumnWeights = []float64{1, 1.2, 2, 1.5, 1, 2.5}

	return &export.Table{
		Title:       "Documents for management",
		Subtitle:    subtitle,
		GeneratedAt: now,
		Headers:     []string{"Date", "Nature", "Designation", "Recipient", "Priority", "Observations"},
		Rows:        rows,
		Style:       style,
	}
}
