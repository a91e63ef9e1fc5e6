package wizard

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/middleware"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/response"
	"github.com/boardflow/backend/pkg/storage"
)

// Acquire returns the caller's wizard session locked for exclusive use; release unlocks it.
type Acquire func(userID string) (s *Session, release func(), err error)

// DocumentStore keeps uploaded meeting documents.
type DocumentStore interface {
	PresignDocumentUpload(ctx context.Context, key, contentType string) (string, error)
	UploadDocument(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignDocumentDownload(ctx context.Context, key string) (string, error)
	DeleteDocument(ctx context.Context, key string) error
}

// State is the wizard as returned to clients.
type State struct {
	Step      Step                `json:"step"`
	StepName  string              `json:"step_name"`
	Completed bool                `json:"completed"`
	Draft     models.MeetingDraft `json:"draft"`
	Errors    FieldErrors         `json:"errors"`
}

// UploadURLRequest is the body for POST /wizard/documents/upload-url.
type UploadURLRequest struct {
	Name         string                `json:"name" binding:"required"`
	AgendaItemID *int                  `json:"agenda_item_id"`
	Access       models.DocumentAccess `json:"access"`
}

// DownloadResponse is the body of GET /wizard/documents/:id/download-url.
type DownloadResponse struct {
	URL string `json:"url"`
}

// UploadResponse carries the attached document and, for presigned uploads, where to PUT it.
type UploadResponse struct {
	Document  models.DocumentRef `json:"document"`
	UploadURL string             `json:"upload_url,omitempty"`
}

// Handler handles meeting wizard HTTP endpoints.
type Handler struct {
	acquire Acquire
	docs    DocumentStore
	logger  *zap.Logger
}

// NewHandler creates a wizard handler. docs may be nil when no bucket is configured.
func NewHandler(acquire Acquire, docs DocumentStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{acquire: acquire, docs: docs, logger: logger}
}

func stateOf(ctrl *Controller) State {
	return State{
		Step:      ctrl.Step(),
		StepName:  ctrl.Step().String(),
		Completed: ctrl.Completed(),
		Draft:     ctrl.Draft(),
		Errors:    ctrl.Errors(),
	}
}

func fail(c *gin.Context, err error) {
	var se *StepError
	if errors.As(err, &se) {
		response.ValidationFailed(c, se.Error(), se.Fields)
		return
	}
	response.Error(c, err)
}

// with runs fn on the caller's open wizard and replies with the resulting state.
func (h *Handler) with(c *gin.Context, fn func(ctrl *Controller) error) {
	s, release, err := h.acquire(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer release()
	ctrl, err := s.Active()
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := fn(ctrl); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, stateOf(ctrl))
}

// Open handles POST /wizard.
func (h *Handler) Open(c *gin.Context) {
	s, release, err := h.acquire(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer release()
	response.Created(c, stateOf(s.Open()))
}

// Get handles GET /wizard.
func (h *Handler) Get(c *gin.Context) {
	h.with(c, func(*Controller) error { return nil })
}

// Close handles DELETE /wizard.
func (h *Handler) Close(c *gin.Context) {
	s, release, err := h.acquire(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer release()
	s.Close()
	response.NoContent(c)
}

// UpdateForm handles PUT /wizard/form with a complete draft.
func (h *Handler) UpdateForm(c *gin.Context) {
	var draft models.MeetingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	h.with(c, func(ctrl *Controller) error { return ctrl.UpdateFormData(draft) })
}

// Dispatch handles POST /wizard/actions.
func (h *Handler) Dispatch(c *gin.Context) {
	var a Action
	if err := c.ShouldBindJSON(&a); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	h.with(c, func(ctrl *Controller) error { return ctrl.Dispatch(a) })
}

// Next handles POST /wizard/next.
func (h *Handler) Next(c *gin.Context) {
	h.with(c, func(ctrl *Controller) error { return ctrl.Next() })
}

// Previous handles POST /wizard/previous.
func (h *Handler) Previous(c *gin.Context) {
	h.with(c, func(ctrl *Controller) error { return ctrl.Previous() })
}

// Submit handles POST /wizard/submit.
func (h *Handler) Submit(c *gin.Context) {
	h.with(c, func(ctrl *Controller) error { return ctrl.Submit() })
}

// Review handles GET /wizard/review.
func (h *Handler) Review(c *gin.Context) {
	s, release, err := h.acquire(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer release()
	ctrl, err := s.Active()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ctrl.Summarize())
}

// VenueOptions handles GET /wizard/venue-options, listing venues for the draft's venue kind.
func (h *Handler) VenueOptions(c *gin.Context) {
	s, release, err := h.acquire(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer release()
	ctrl, err := s.Active()
	if err != nil {
		response.Error(c, err)
		return
	}
	venues := fixtures.VenuesFor(models.VenueKind(ctrl.Draft().Venue))
	if venues == nil {
		venues = []models.Venue{}
	}
	response.OK(c, venues)
}

// attach adds a stored document to the open wizard and returns it.
func (h *Handler) attach(c *gin.Context, in DocumentInput) (models.DocumentRef, bool) {
	var doc models.DocumentRef
	s, release, err := h.acquire(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return doc, false
	}
	defer release()
	ctrl, err := s.Active()
	if err == nil {
		err = ctrl.Dispatch(Action{Type: ActionAddDocument, Document: &in})
	}
	if err != nil {
		fail(c, err)
		return doc, false
	}
	docs := ctrl.Draft().Documents
	return docs[len(docs)-1], true
}

// UploadURL handles POST /wizard/documents/upload-url. The document is attached right away
// and the client PUTs the file to the returned URL.
func (h *Handler) UploadURL(c *gin.Context) {
	if h.docs == nil {
		response.ServiceUnavailable(c, "document storage not configured")
		return
	}
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !storage.ValidDocumentName(req.Name) {
		response.BadRequest(c, "unsupported document type")
		return
	}
	key := storage.DocumentKey(middleware.UserID(c), uuid.NewString(), req.Name)
	url, err := h.docs.PresignDocumentUpload(c.Request.Context(), key, storage.ContentTypeForFilename(req.Name))
	if err != nil {
		h.logger.Error("presign document upload", zap.String("key", key), zap.Error(err))
		response.Internal(c, "failed to generate upload url")
		return
	}
	doc, ok := h.attach(c, DocumentInput{Name: req.Name, AgendaItemID: req.AgendaItemID, Access: req.Access, StorageKey: key})
	if !ok {
		return
	}
	response.Created(c, UploadResponse{Document: doc, UploadURL: url})
}

// Upload handles POST /wizard/documents as multipart form data with a "file" part and
// optional "agenda_item_id" and "access" fields.
func (h *Handler) Upload(c *gin.Context) {
	if h.docs == nil {
		response.ServiceUnavailable(c, "document storage not configured")
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fh.Size > storage.MaxDocumentFileSize {
		response.BadRequest(c, "document too large")
		return
	}
	if !storage.ValidDocumentName(fh.Filename) {
		response.BadRequest(c, "unsupported document type")
		return
	}
	in := DocumentInput{Name: fh.Filename, Access: models.DocumentAccess(c.PostForm("access")), Size: humanSize(fh.Size)}
	if raw := c.PostForm("agenda_item_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "invalid agenda_item_id")
			return
		}
		in.AgendaItemID = &id
	}

	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "unreadable file")
		return
	}
	defer f.Close()
	in.StorageKey = storage.DocumentKey(middleware.UserID(c), uuid.NewString(), fh.Filename)
	if err := h.docs.UploadDocument(c.Request.Context(), in.StorageKey, storage.ContentTypeForFilename(fh.Filename), f, fh.Size); err != nil {
		h.logger.Error("upload document", zap.String("key", in.StorageKey), zap.Error(err))
		response.Internal(c, "failed to upload document")
		return
	}
	doc, ok := h.attach(c, in)
	if !ok {
		return
	}
	response.Created(c, UploadResponse{Document: doc})
}

// document returns a stored document of the open wizard.
func (h *Handler) document(c *gin.Context, id string) (models.DocumentRef, bool) {
	s, release, err := h.acquire(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return models.DocumentRef{}, false
	}
	defer release()
	ctrl, err := s.Active()
	if err != nil {
		response.Error(c, err)
		return models.DocumentRef{}, false
	}
	for _, d := range ctrl.Draft().Documents {
		if d.ID == id {
			return d, true
		}
	}
	response.NotFound(c, "document not found")
	return models.DocumentRef{}, false
}

// DownloadURL handles GET /wizard/documents/:id/download-url.
func (h *Handler) DownloadURL(c *gin.Context) {
	if h.docs == nil {
		response.ServiceUnavailable(c, "document storage not configured")
		return
	}
	doc, ok := h.document(c, c.Param("id"))
	if !ok {
		return
	}
	if !storage.OwnsDocumentKey(middleware.UserID(c), doc.StorageKey) {
		response.NotFound(c, "document has no stored file")
		return
	}
	url, err := h.docs.PresignDocumentDownload(c.Request.Context(), doc.StorageKey)
	if err != nil {
		h.logger.Error("presign document download", zap.String("key", doc.StorageKey), zap.Error(err))
		response.Internal(c, "failed to generate download url")
		return
	}
	response.OK(c, DownloadResponse{URL: url})
}

// DeleteDocument handles DELETE /wizard/documents/:id. The stored file is removed after
// the document leaves the draft; a failed removal is only logged.
func (h *Handler) DeleteDocument(c *gin.Context) {
	doc, ok := h.document(c, c.Param("id"))
	if !ok {
		return
	}
	var state State
	s, release, err := h.acquire(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	ctrl, err := s.Active()
	if err == nil {
		err = ctrl.Dispatch(Action{Type: ActionRemoveDocument, DocumentID: doc.ID})
		state = stateOf(ctrl)
	}
	release()
	if err != nil {
		fail(c, err)
		return
	}
	if h.docs != nil && storage.OwnsDocumentKey(middleware.UserID(c), doc.StorageKey) {
		if err := h.docs.DeleteDocument(c.Request.Context(), doc.StorageKey); err != nil {
			h.logger.Warn("delete stored document", zap.String("key", doc.StorageKey), zap.Error(err))
		}
	}
	response.OK(c, state)
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return strconv.FormatFloat(float64(n)/(1<<20), 'f', 1, 64) + " MB"
	case n >= 1<<10:
		return strconv.FormatFloat(float64(n)/(1<<10), 'f', 1, 64) + " KB"
	}
	return strconv.FormatInt(n, 10) + " B"
}
