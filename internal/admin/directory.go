// Package admin manages the roles and users tables of a workspace.
package admin

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/apperr"
)

// UnknownRoleName is shown for users whose role no longer exists.
const UnknownRoleName = "--"

// Change describes a saved or deleted row.
type Change struct {
	Kind   string       `json:"kind"`
	Action string       `json:"action"`
	ID     string       `json:"id"`
	Role   *models.Role `json:"role,omitempty"`
	User   *models.User `json:"user,omitempty"`
}

// Change kinds and actions.
const (
	KindRole     = "role"
	KindUser     = "user"
	ActionSaved  = "saved"
	ActionDelete = "deleted"
)

// ChangeFunc is notified after every write.
type ChangeFunc func(Change)

// Stats counts users.
type Stats struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByRole   map[string]int `json:"by_role"`
}

// Directory holds roles and users. Ids are not checked for uniqueness and deleting a
// role leaves its users pointing at it. It is not safe for concurrent use.
type Directory struct {
	roles    []models.Role
	users    []models.User
	onChange ChangeFunc
	newID    func() string
	logger   *zap.Logger
}

// NewDirectory copies roles and users into a new directory.
func NewDirectory(roles []models.Role, users []models.User, onChange ChangeFunc, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	if onChange == nil {
		onChange = func(Change) {}
	}
	d := &Directory{onChange: onChange, newID: uuid.NewString, logger: logger}
	for _, r := range roles {
		d.roles = append(d.roles, cloneRole(r))
	}
	d.users = append(d.users, users...)
	return d
}

func cloneRole(r models.Role) models.Role {
	r.Permissions = append([]models.PermissionID{}, r.Permissions...)
	return r
}

// Roles returns every role.
func (d *Directory) Roles() []models.Role {
	out := make([]models.Role, len(d.roles))
	for i, r := range d.roles {
		out[i] = cloneRole(r)
	}
	return out
}

// Role looks a role up by id.
func (d *Directory) Role(id string) (models.Role, bool) {
	for _, r := range d.roles {
		if r.ID == id {
			return cloneRole(r), true
		}
	}
	return models.Role{}, false
}

// SaveRole replaces the role with the same id or appends it. An empty id is generated.
func (d *Directory) SaveRole(r models.Role) (models.Role, error) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return models.Role{}, apperr.Validation("role name is required")
	}
	if r.ID == "" {
		r.ID = d.newID()
	}
	r = cloneRole(r)

	replaced := false
	for i := range d.roles {
		if d.roles[i].ID == r.ID {
			d.roles[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		d.roles = append(d.roles, r)
	}
	d.logger.Info("role saved", zap.String("role_id", r.ID), zap.Bool("replaced", replaced))
	out := cloneRole(r)
	d.onChange(Change{Kind: KindRole, Action: ActionSaved, ID: r.ID, Role: &out})
	return cloneRole(r), nil
}

// DeleteRole removes a role. Users keep their role id.
func (d *Directory) DeleteRole(id string) error {
	kept := d.roles[:0]
	found := false
	for _, r := range d.roles {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	d.roles = kept
	if !found {
		return apperr.NotFound("role not found")
	}
	d.logger.Info("role deleted", zap.String("role_id", id))
	d.onChange(Change{Kind: KindRole, Action: ActionDelete, ID: id})
	return nil
}

// Users returns every user.
func (d *Directory) Users() []models.User {
	return append([]models.User{}, d.users...)
}

// UserViews returns every user with its role name resolved.
func (d *Directory) UserViews() []models.UserView {
	out := make([]models.UserView, len(d.users))
	for i, u := range d.users {
		out[i] = models.UserView{User: u, RoleName: d.RoleName(u.Role)}
	}
	return out
}

// RoleName resolves a role id, falling back to UnknownRoleName.
func (d *Directory) RoleName(roleID string) string {
	if r, ok := d.Role(roleID); ok {
		return r.Name
	}
	return UnknownRoleName
}

// SaveUser replaces the user with the same id or appends it. An empty id is generated.
func (d *Directory) SaveUser(u models.User) (models.UserView, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	if u.Name == "" {
		return models.UserView{}, apperr.Validation("user name is required")
	}
	if u.Email == "" {
		return models.UserView{}, apperr.Validation("user email is required")
	}
	if u.ID == "" {
		u.ID = d.newID()
	}

	replaced := false
	for i := range d.users {
		if d.users[i].ID == u.ID {
			d.users[i] = u
			replaced = true
			break
		}
	}
	if !replaced {
		d.users = append(d.users, u)
	}
	d.logger.Info("user saved", zap.String("user_id", u.ID), zap.Bool("replaced", replaced))
	saved := u
	d.onChange(Change{Kind: KindUser, Action: ActionSaved, ID: u.ID, User: &saved})
	return models.UserView{User: u, RoleName: d.RoleName(u.Role)}, nil
}

// DeleteUser removes a user.
func (d *Directory) DeleteUser(id string) error {
	kept := d.users[:0]
	found := false
	for _, u := range d.users {
		if u.ID == id {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	d.users = kept
	if !found {
		return apperr.NotFound("user not found")
	}
	d.logger.Info("user deleted", zap.String("user_id", id))
	d.onChange(Change{Kind: KindUser, Action: ActionDelete, ID: id})
	return nil
}

// Stats counts users by activity and role name.
func (d *Directory) Stats() Stats {
	s := Stats{ByRole: map[string]int{}}
	for _, u := range d.users {
		s.Total++
		if u.IsActive {
			s.Active++
		} else {
			s.Inactive++
		}
		s.ByRole[d.RoleName(u.Role)]++
	}
	return s
}
