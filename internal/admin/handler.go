package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/boardflow/backend/internal/middleware"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/response"
)

// Acquire returns the caller's directory locked for exclusive use; release unlocks it.
type Acquire func(userID string) (d *Directory, release func(), err error)

// RoleRequest is the body for POST /roles and PUT /roles/:id.
type RoleRequest struct {
	Name        string                `json:"name" binding:"required"`
	Permissions []models.PermissionID `json:"permissions"`
}

// UserRequest is the body for POST /users and PUT /users/:id.
type UserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// Handler handles role and user administration endpoints.
type Handler struct {
	acquire Acquire
}

// NewHandler creates an admin handler.
func NewHandler(acquire Acquire) *Handler {
	return &Handler{acquire: acquire}
}

func (h *Handler) directory(c *gin.Context) (*Directory, func(), bool) {
	d, release, err := h.acquire(middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return nil, nil, false
	}
	return d, release, true
}

// ListRoles handles GET /roles.
func (h *Handler) ListRoles(c *gin.Context) {
	d, release, ok := h.directory(c)
	if !ok {
		return
	}
	defer release()
	response.OK(c, d.Roles())
}

// CreateRole handles POST /roles.
func (h *Handler) CreateRole(c *gin.Context) { h.saveRole(c, "") }

// UpdateRole handles PUT /roles/:id.
func (h *Handler) UpdateRole(c *gin.Context) { h.saveRole(c, c.Param("id")) }

func (h *Handler) saveRole(c *gin.Context, id string) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	d, release, ok := h.directory(c)
	if !ok {
		return
	}
	defer release()
	r, err := d.SaveRole(models.Role{ID: id, Name: req.Name, Permissions: req.Permissions})
	if err != nil {
		response.Error(c, err)
		return
	}
	if id == "" {
		response.Created(c, r)
		return
	}
	response.OK(c, r)
}

// DeleteRole handles DELETE /roles/:id.
func (h *Handler) DeleteRole(c *gin.Context) {
	d, release, ok := h.directory(c)
	if !ok {
		return
	}
	defer release()
	if err := d.DeleteRole(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListUsers handles GET /users.
func (h *Handler) ListUsers(c *gin.Context) {
	d, release, ok := h.directory(c)
	if !ok {
		return
	}
	defer release()
	response.OK(c, d.UserViews())
}

// CreateUser handles POST /users.
func (h *Handler) CreateUser(c *gin.Context) { h.saveUser(c, "") }

// UpdateUser handles PUT /users/:id.
func (h *Handler) UpdateUser(c *gin.Context) { h.saveUser(c, c.Param("id")) }

func (h *Handler) saveUser(c *gin.Context, id string) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	d, release, ok := h.directory(c)
	if !ok {
		return
	}
	defer release()
	u, err := d.SaveUser(models.User{ID: id, Name: req.Name, Email: req.Email, Role: req.Role, IsActive: req.IsActive})
	if err != nil {
		response.Error(c, err)
		return
	}
	if id == "" {
		response.Created(c, u)
		return
	}
	response.OK(c, u)
}

// DeleteUser handles DELETE /users/:id.
func (h *Handler) DeleteUser(c *gin.Context) {
	d, release, ok := h.directory(c)
	if !ok {
		return
	}
	defer release()
	if err := d.DeleteUser(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats handles GET /users/stats.
func (h *Handler) Stats(c *gin.Context) {
	d, release, ok := h.directory(c)
	if !ok {
		return
	}
	defer release()
	response.OK(c, d.Stats())
}
