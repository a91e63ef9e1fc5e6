package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardflow/backend/internal/middleware"
	"github.com/boardflow/backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDocs struct {
	uploaded map[string]string
	deleted  []string
	err      error
}

func (f *fakeDocs) PresignDocumentUpload(_ context.Context, key, _ string) (string, error) {
	return "https://bucket.test/" + key + "?put", f.err
}

func (f *fakeDocs) UploadDocument(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	if f.err != nil {
		return f.err
	}
	b, _ := io.ReadAll(body)
	if f.uploaded == nil {
		f.uploaded = map[string]string{}
	}
	f.uploaded[key] = string(b)
	return nil
}

func (f *fakeDocs) PresignDocumentDownload(_ context.Context, key string) (string, error) {
	return "https://bucket.test/" + key + "?get", f.err
}

func (f *fakeDocs) DeleteDocument(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.err
}

type testEnv struct {
	router    *gin.Engine
	session   *Session
	completed []models.MeetingDraft
}

func newTestEnv(docs DocumentStore) *testEnv {
	env := &testEnv{}
	env.session = NewSession(func() *Controller {
		return NewController(func(d models.MeetingDraft) { env.completed = append(env.completed, d) }, nil)
	})
	var mu sync.Mutex
	acquire := func(string) (*Session, func(), error) {
		mu.Lock()
		return env.session, mu.Unlock, nil
	}
	h := NewHandler(acquire, docs, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextUserID, "4"); c.Next() })
	r.POST("/wizard", h.Open)
	r.GET("/wizard", h.Get)
	r.DELETE("/wizard", h.Close)
	r.PUT("/wizard/form", h.UpdateForm)
	r.POST("/wizard/actions", h.Dispatch)
	r.POST("/wizard/next", h.Next)
	r.POST("/wizard/previous", h.Previous)
	r.POST("/wizard/submit", h.Submit)
	r.GET("/wizard/review", h.Review)
	r.GET("/wizard/venue-options", h.VenueOptions)
	r.POST("/wizard/documents", h.Upload)
	r.POST("/wizard/documents/upload-url", h.UploadURL)
	r.GET("/wizard/documents/:id/download-url", h.DownloadURL)
	r.DELETE("/wizard/documents/:id", h.DeleteDocument)
	env.router = r
	return env
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

func (env *testEnv) do(t *testing.T, method, target string, body interface{}) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	var e envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	}
	return w.Code, e
}

func decodeState(t *testing.T, e envelope) State {
	t.Helper()
	var s State
	require.NoError(t, json.Unmarshal(e.Data, &s))
	return s
}

func TestHandlerRequiresOpenWizard(t *testing.T) {
	env := newTestEnv(nil)
	for _, tt := range []struct{ method, target string }{
		{http.MethodGet, "/wizard"},
		{http.MethodPost, "/wizard/next"},
		{http.MethodGet, "/wizard/review"},
	} {
		code, e := env.do(t, tt.method, tt.target, nil)
		assert.Equal(t, http.StatusConflict, code, tt.target)
		assert.False(t, e.Success)
	}
}

func TestHandlerNextReportsFieldErrors(t *testing.T) {
	env := newTestEnv(nil)
	code, _ := env.do(t, http.MethodPost, "/wizard", nil)
	require.Equal(t, http.StatusCreated, code)

	code, e := env.do(t, http.MethodPost, "/wizard/next", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, e.Fields, FieldTitle)
	assert.Contains(t, e.Fields, FieldMeetingType)

	_, e = env.do(t, http.MethodGet, "/wizard", nil)
	s := decodeState(t, e)
	assert.Equal(t, StepMeetingDetails, s.Step)
	assert.Contains(t, s.Errors, FieldTitle)
}

func TestHandlerWalksSteps(t *testing.T) {
	env := newTestEnv(nil)
	_, e := env.do(t, http.MethodPost, "/wizard", nil)
	draft := validDetails(decodeState(t, e).Draft)

	code, e := env.do(t, http.MethodPut, "/wizard/form", draft)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, decodeState(t, e).Draft.AgendaItems)

	code, e = env.do(t, http.MethodPost, "/wizard/next", nil)
	require.Equal(t, http.StatusOK, code)
	s := decodeState(t, e)
	assert.Equal(t, StepParticipants, s.Step)
	assert.Equal(t, "Participants", s.StepName)

	code, e = env.do(t, http.MethodPost, "/wizard/actions", Action{Type: ActionToggleBoardMember, MemberID: "2"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"2"}, decodeState(t, e).Draft.BoardMembers)

	code, _ = env.do(t, http.MethodPost, "/wizard/actions", Action{Type: ActionToggleBoardMember, MemberID: "99"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, e = env.do(t, http.MethodPost, "/wizard/previous", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, StepMeetingDetails, decodeState(t, e).Step)

	code, _ = env.do(t, http.MethodPost, "/wizard/previous", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = env.do(t, http.MethodPost, "/wizard/submit", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Empty(t, env.completed)
}

func TestHandlerBadActionBody(t *testing.T) {
	env := newTestEnv(nil)
	env.do(t, http.MethodPost, "/wizard", nil)
	code, e := env.do(t, http.MethodPost, "/wizard/actions", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, strings.HasPrefix(e.Error, "invalid request: "))
}

func TestHandlerVenueOptions(t *testing.T) {
	env := newTestEnv(nil)
	env.do(t, http.MethodPost, "/wizard", nil)

	_, e := env.do(t, http.MethodGet, "/wizard/venue-options", nil)
	var venues []models.Venue
	require.NoError(t, json.Unmarshal(e.Data, &venues))
	assert.Empty(t, venues)

	d := validDetails(models.NewMeetingDraft())
	env.do(t, http.MethodPut, "/wizard/form", d)
	_, e = env.do(t, http.MethodGet, "/wizard/venue-options", nil)
	require.NoError(t, json.Unmarshal(e.Data, &venues))
	assert.NotEmpty(t, venues)
}

func TestHandlerCloseDiscardsWizard(t *testing.T) {
	env := newTestEnv(nil)
	env.do(t, http.MethodPost, "/wizard", nil)
	code, _ := env.do(t, http.MethodDelete, "/wizard", nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = env.do(t, http.MethodGet, "/wizard", nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestHandlerDocumentsWithoutStorage(t *testing.T) {
	env := newTestEnv(nil)
	env.do(t, http.MethodPost, "/wizard", nil)
	code, _ := env.do(t, http.MethodPost, "/wizard/documents/upload-url", UploadURLRequest{Name: "minutes.pdf"})
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestHandlerPresignedDocument(t *testing.T) {
	docs := &fakeDocs{}
	env := newTestEnv(docs)
	env.do(t, http.MethodPost, "/wizard", nil)

	code, _ := env.do(t, http.MethodPost, "/wizard/documents/upload-url", UploadURLRequest{Name: "setup.exe"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, e := env.do(t, http.MethodPost, "/wizard/documents/upload-url", UploadURLRequest{Name: "minutes.pdf"})
	require.Equal(t, http.StatusCreated, code)
	var up UploadResponse
	require.NoError(t, json.Unmarshal(e.Data, &up))
	assert.True(t, strings.HasPrefix(up.Document.StorageKey, "documents/4/"))
	assert.Equal(t, "https://bucket.test/"+up.Document.StorageKey+"?put", up.UploadURL)
	assert.Equal(t, models.DocumentAccessAll, up.Document.Access)

	code, e = env.do(t, http.MethodGet, "/wizard/documents/"+up.Document.ID+"/download-url", nil)
	require.Equal(t, http.StatusOK, code)
	var dl DownloadResponse
	require.NoError(t, json.Unmarshal(e.Data, &dl))
	assert.Equal(t, "https://bucket.test/"+up.Document.StorageKey+"?get", dl.URL)

	code, _ = env.do(t, http.MethodGet, "/wizard/documents/missing/download-url", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, e = env.do(t, http.MethodDelete, "/wizard/documents/"+up.Document.ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decodeState(t, e).Draft.Documents)
	assert.Equal(t, []string{up.Document.StorageKey}, docs.deleted)
}

func TestHandlerPresignFailure(t *testing.T) {
	env := newTestEnv(&fakeDocs{err: errors.New("no credentials")})
	env.do(t, http.MethodPost, "/wizard", nil)
	code, _ := env.do(t, http.MethodPost, "/wizard/documents/upload-url", UploadURLRequest{Name: "minutes.pdf"})
	assert.Equal(t, http.StatusInternalServerError, code)

	_, e := env.do(t, http.MethodGet, "/wizard", nil)
	assert.Empty(t, decodeState(t, e).Draft.Documents)
}

func TestHandlerMultipartUpload(t *testing.T) {
	docs := &fakeDocs{}
	env := newTestEnv(docs)
	env.do(t, http.MethodPost, "/wizard", nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "budget.xlsx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("spreadsheet"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("agenda_item_id", "2"))
	require.NoError(t, mw.WriteField("access", string(models.DocumentAccessBoardOnly)))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/wizard/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	var up UploadResponse
	require.NoError(t, json.Unmarshal(e.Data, &up))
	assert.Equal(t, "budget.xlsx", up.Document.Name)
	assert.Equal(t, "11 B", up.Document.Size)
	require.NotNil(t, up.Document.AgendaItemID)
	assert.Equal(t, 2, *up.Document.AgendaItemID)
	assert.Equal(t, "spreadsheet", docs.uploaded[up.Document.StorageKey])
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "2.0 KB", humanSize(2048))
	assert.Equal(t, "2.5 MB", humanSize(5<<19))
}
