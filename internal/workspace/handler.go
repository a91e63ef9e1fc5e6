package workspace

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boardflow/backend/internal/middleware"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/response"
)

// SessionResponse describes the caller's workspace.
type SessionResponse struct {
	User      models.User `json:"user"`
	Tab       string      `json:"tab"`
	CreatedAt time.Time   `json:"created_at"`
}

// Handler exposes the caller's session.
type Handler struct {
	store *Store
}

// NewHandler creates a session handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Session handles GET /session.
func (h *Handler) Session(c *gin.Context) {
	ws, release, err := h.store.Lock(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer release()
	response.OK(c, SessionResponse{User: ws.User, Tab: ws.Tab, CreatedAt: ws.CreatedAt})
}

// Logout handles DELETE /session. The token stays valid but its workspace is gone.
func (h *Handler) Logout(c *gin.Context) {
	h.store.Delete(middleware.UserID(c))
	response.NoContent(c)
}
