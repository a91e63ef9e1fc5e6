package fixtures

import (
	"github.com/gin-gonic/gin"

	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/response"
)

// Handler serves the read-only catalogs.
type Handler struct{}

// NewHandler creates a fixtures handler.
func NewHandler() *Handler { return &Handler{} }

// Register mounts every catalog under g.
func (h *Handler) Register(g gin.IRoutes) {
	g.GET("/meeting-types", func(c *gin.Context) { response.OK(c, MeetingTypes()) })
	g.GET("/venues", h.Venues)
	g.GET("/board-members", func(c *gin.Context) { response.OK(c, BoardMembers()) })
	g.GET("/invitees", func(c *gin.Context) { response.OK(c, Invitees()) })
	g.GET("/agenda-matrix", func(c *gin.Context) { response.OK(c, AgendaMatrix()) })
	g.GET("/agenda-templates", func(c *gin.Context) { response.OK(c, AgendaTemplates()) })
	g.GET("/permissions", func(c *gin.Context) { response.OK(c, Permissions()) })
	g.GET("/categories", func(c *gin.Context) { response.OK(c, models.Categories) })
}

// Venues handles GET /fixtures/venues?kind=physical|virtual|hybrid. Without a kind every
// venue is listed.
func (h *Handler) Venues(c *gin.Context) {
	kind := c.Query("kind")
	if kind == "" {
		response.OK(c, Venues())
		return
	}
	v := VenuesFor(models.VenueKind(kind))
	if v == nil {
		v = []models.Venue{}
	}
	response.OK(c, v)
}
