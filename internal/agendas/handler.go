package agendas

import (
	"github.com/gin-gonic/gin"

	"github.com/boardflow/backend/internal/middleware"
	"github.com/boardflow/backend/pkg/response"
)

// Acquire returns the caller's agenda view locked for exclusive use; release unlocks it.
type Acquire func(userID string) (v *View, release func(), err error)

// HeaderRequest is the body for PATCH /agendas/form.
type HeaderRequest struct {
	Title       string `json:"title"`
	MeetingDate string `json:"meeting_date"`
}

// TemplateRequest is the body for POST /agendas/form/template.
type TemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
}

// MoveRequest is the body for POST /agendas/form/move.
type MoveRequest struct {
	Index     int    `json:"index"`
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// VoteRequest is the body for POST /agendas/form/items/:itemId/vote.
type VoteRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// FormResponse is the open form with its running total.
type FormResponse struct {
	Form
	TotalDuration int `json:"total_duration"`
}

func formResponse(f *Form) FormResponse {
	return FormResponse{Form: f.clone(), TotalDuration: f.TotalDuration()}
}

// Handler handles agenda HTTP endpoints.
type Handler struct {
	acquire Acquire
}

// NewHandler creates an agenda handler.
func NewHandler(acquire Acquire) *Handler {
	return &Handler{acquire: acquire}
}

func (h *Handler) view(c *gin.Context) (*View, func(), bool) {
	v, release, err := h.acquire(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return nil, nil, false
	}
	return v, release, true
}

// withForm runs fn on the open form and replies with the form.
func (h *Handler) withForm(c *gin.Context, fn func(f *Form) error) {
	v, release, ok := h.view(c)
	if !ok {
		return
	}
	defer release()
	f, err := v.Form()
	if err == nil {
		err = fn(f)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, formResponse(f))
}

// List handles GET /agendas.
func (h *Handler) List(c *gin.Context) {
	v, release, ok := h.view(c)
	if !ok {
		return
	}
	defer release()
	response.OK(c, v.List())
}

// State handles GET /agendas/view.
func (h *Handler) State(c *gin.Context) {
	v, release, ok := h.view(c)
	if !ok {
		return
	}
	defer release()
	response.OK(c, v.State())
}

// Open handles POST /agendas/:id/open.
func (h *Handler) Open(c *gin.Context) {
	v, release, ok := h.view(c)
	if !ok {
		return
	}
	defer release()
	a, err := v.Open(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, a)
}

// Back handles POST /agendas/view/back.
func (h *Handler) Back(c *gin.Context) {
	v, release, ok := h.view(c)
	if !ok {
		return
	}
	defer release()
	v.Back()
	response.OK(c, v.State())
}

// New handles POST /agendas/new.
func (h *Handler) New(c *gin.Context) {
	v, release, ok := h.view(c)
	if !ok {
		return
	}
	defer release()
	f, err := v.New()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, formResponse(f))
}

// Edit handles POST /agendas/edit.
func (h *Handler) Edit(c *gin.Context) {
	v, release, ok := h.view(c)
	if !ok {
		return
	}
	defer release()
	f, err := v.Edit()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, formResponse(f))
}

// Form handles GET /agendas/form.
func (h *Handler) Form(c *gin.Context) {
	h.withForm(c, func(*Form) error { return nil })
}

// SetHeader handles PATCH /agendas/form.
func (h *Handler) SetHeader(c *gin.Context) {
	var req HeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	h.withForm(c, func(f *Form) error {
		f.SetHeader(req.Title, req.MeetingDate)
		return nil
	})
}

// ApplyTemplate handles POST /agendas/form/template. It replaces every item.
func (h *Handler) ApplyTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	h.withForm(c, func(f *Form) error { return f.ApplyTemplate(req.TemplateID) })
}

// AddItem handles POST /agendas/form/items.
func (h *Handler) AddItem(c *gin.Context) {
	var req ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	h.withForm(c, func(f *Form) error {
		_, err := f.AddItem(req)
		return err
	})
}

// GetItem handles GET /agendas/form/items/:itemId, loading an item into the editor.
func (h *Handler) GetItem(c *gin.Context) {
	v, release, ok := h.view(c)
	if !ok {
		return
	}
	defer release()
	f, err := v.Form()
	if err != nil {
		response.Error(c, err)
		return
	}
	it, err := f.EditItem(c.Param("itemId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, it)
}

// UpdateItem handles PUT /agendas/form/items/:itemId.
func (h *Handler) UpdateItem(c *gin.Context) {
	var req ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	h.withForm(c, func(f *Form) error {
		_, err := f.UpdateItem(c.Param("itemId"), req)
		return err
	})
}

// DeleteItem handles DELETE /agendas/form/items/:itemId.
func (h *Handler) DeleteItem(c *gin.Context) {
	h.withForm(c, func(f *Form) error {
		f.DeleteItem(c.Param("itemId"))
		return nil
	})
}

// MoveItem handles POST /agendas/form/move.
func (h *Handler) MoveItem(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	h.withForm(c, func(f *Form) error { return f.MoveItem(req.Index, req.Direction == "up") })
}

// Vote handles POST /agendas/form/items/:itemId/vote.
func (h *Handler) Vote(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	h.withForm(c, func(f *Form) error {
		_, err := f.Vote(c.Param("itemId"), req.Direction == "up")
		return err
	})
}

// Submit handles POST /agendas/form/submit.
func (h *Handler) Submit(c *gin.Context) {
	v, release, ok := h.view(c)
	if !ok {
		return
	}
	defer release()
	a, err := v.Submit()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, a)
}
