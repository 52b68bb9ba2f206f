package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/export"
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/session"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocs() []backend.Document {
	return []backend.Document{
		{ID: "1", Date: "2024-01-15T00:00:00.000Z", Nature: "Facture", Designation: "Achat de matériel", Destinataire: "Direction", Priorite: "Haute", DocumentFichier: "/uploads/1.jpg"},
		{ID: "2", Date: "2024-02-03", Nature: "Courrier", Designation: "Relance client", Destinataire: "Comptabilité", Priorite: "Normale"},
		{ID: "3", Date: "2024-03-20", Nature: "Rapport", Designation: "Bilan <b>annuel</b>", Destinataire: "Direction", Priorite: "Élevée", DocumentFichier: "https://cdn.example.mg/3.png"},
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15/01/2024", FormatDate("2024-01-15T00:00:00.000Z"))
	assert.Equal(t, "03/02/2024", FormatDate("2024-02-03"))
	assert.Equal(t, "hier", FormatDate("hier"))
}

func TestFilter(t *testing.T) {
	docs := sampleDocs()

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"1", "2", "3"}},
		{query: "FACTURE", want: []string{"1"}},
		{query: "comptabilite", want: []string{"2"}},
		{query: "elevee", want: []string{"3"}},
		{query: "direction", want: []string{"1", "3"}},
		{query: "03/02", want: []string{"2"}},
		{query: "introuvable", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			ids := []string{}
			for _, d := range Filter(docs, tt.query) {
				ids = append(ids, d.ID.String())
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestPaginate(t *testing.T) {
	docs := make([]backend.Document, 12)
	for i := range docs {
		docs[i] = backend.Document{ID: backend.ID(fmt.Sprint(i))}
	}

	p := Paginate(docs, 0, 5)
	assert.Len(t, p.Items, 5)
	assert.Equal(t, 3, p.Count)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	p = Paginate(docs, 2, 5)
	assert.Len(t, p.Items, 2)
	assert.False(t, p.HasNext())

	p = Paginate(docs, 9, 5)
	assert.Equal(t, 2, p.Number)

	p = Paginate(docs, -4, 5)
	assert.Equal(t, 0, p.Number)

	p = Paginate(nil, 3, 5)
	assert.Equal(t, 0, p.Number)
	assert.Equal(t, 0, p.Count)
	assert.Empty(t, p.Items)
}

type fakeBackend struct {
	role    backend.Role
	docs    []backend.Document
	docsErr error
	homeErr error
	fetches int
}

func (f *fakeBackend) ResolveIdentity(context.Context, string) (backend.Identity, error) {
	if f.homeErr != nil {
		return backend.Identity{}, f.homeErr
	}
	return backend.Identity{ID: "9", Role: f.role, Identite: "Rakoto"}, nil
}

func (f *fakeBackend) FetchDocuments(context.Context, string) ([]backend.Document, error) {
	f.fetches++
	return f.docs, f.docsErr
}

func newTestApp(api Backend) *fiber.App {
	store := session.NewStore("compta_token", []byte("0123456789abcdef0123456789abcdef"), nil, false)
	app := fiber.New()
	app.Use(session.LoadSession(store))
	app.Post("/test-login", func(c *fiber.Ctx) error { return store.Save(c, "tok") })
	NewDocumentsHandler(api, store, export.NewService("Documents"), "https://api.example.mg", 2).Register(app)
	return app
}

func get(t *testing.T, app *fiber.App, target string, signedIn bool) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if signedIn {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/test-login", nil))
		require.NoError(t, err)
		require.NotEmpty(t, resp.Cookies())
		req.AddCookie(resp.Cookies()[0])
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestListDocumentsRequiresSession(t *testing.T) {
	api := &fakeBackend{role: backend.RoleComptable, docs: sampleDocs()}
	resp := get(t, newTestApp(api), "/documents", false)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Zero(t, api.fetches)
}

func TestListDocumentsRejectedToken(t *testing.T) {
	api := &fakeBackend{homeErr: backend.ErrUnauthenticated}
	resp := get(t, newTestApp(api), "/documents", true)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Zero(t, api.fetches)
}

func TestListDocumentsIdentityOutageKeepsCookie(t *testing.T) {
	api := &fakeBackend{homeErr: &backend.TransportError{Op: "resolve identity", StatusCode: 502}}
	resp := get(t, newTestApp(api), "/documents", true)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		assert.NotEqual(t, "compta_token", c.Name)
	}
	assert.Contains(t, body(t, resp), "Unable to load documents.")
	assert.Zero(t, api.fetches)
}

func TestListDocumentsPagesAndSanitizes(t *testing.T) {
	api := &fakeBackend{role: backend.RoleUtilisateur, docs: sampleDocs()}
	resp := get(t, newTestApp(api), "/documents?page=2", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	html := body(t, resp)
	assert.Contains(t, html, "Bilan annuel")
	assert.NotContains(t, html, "Facture")
	assert.Contains(t, html, "Page 2 of 2")
	assert.NotContains(t, html, "Export Excel")
}

func TestListDocumentsSearch(t *testing.T) {
	api := &fakeBackend{role: backend.RoleComptable, docs: sampleDocs()}
	resp := get(t, newTestApp(api), "/documents?q=relance", true)

	html := body(t, resp)
	assert.Contains(t, html, "Relance client")
	assert.NotContains(t, html, "Achat de matériel")
	assert.Contains(t, html, "/documents/export?format=xlsx&amp;q=relance")
}

func TestListDocumentsFetchFailureShowsError(t *testing.T) {
	api := &fakeBackend{role: backend.RoleComptable, docsErr: &backend.TransportError{Op: "fetch documents", StatusCode: 500}}
	resp := get(t, newTestApp(api), "/documents", true)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Unable to load documents.")
}

func TestPreviewDocument(t *testing.T) {
	app := newTestApp(&fakeBackend{role: backend.RoleComptable, docs: sampleDocs()})

	resp := get(t, app, "/documents/1/preview", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), `src="https://api.example.mg/uploads/1.jpg"`)

	resp = get(t, app, "/documents/2/preview", true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = get(t, app, "/documents/404/preview", true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDocumentQRCode(t *testing.T) {
	app := newTestApp(&fakeBackend{role: backend.RoleUtilisateur, docs: sampleDocs()})

	resp := get(t, app, "/documents/3/qr", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix([]byte(body(t, resp)), []byte("\x89PNG")))
}

func TestExportDocuments(t *testing.T) {
	app := newTestApp(&fakeBackend{role: backend.RoleComptable, docs: sampleDocs()})

	resp := get(t, app, "/documents/export?format=pdf&q=direction", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "documents.pdf")

	resp = get(t, app, "/documents/export?format=csv", true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportDocumentsReservedToAccountants(t *testing.T) {
	app := newTestApp(&fakeBackend{role: backend.RoleUtilisateur, docs: sampleDocs()})

	resp := get(t, app, "/documents/export?format=xlsx", true)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDocumentsTable(t *testing.T) {
	table := DocumentsTable(sampleDocs()[:1], " facture ", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "Filter: facture", table.Subtitle)
	assert.Len(t, table.Headers, 6)
	assert.Equal(t, []string{"15/01/2024", "Facture", "Achat de matériel", "Direction", "Haute", ""}, table.Rows[0])
}
