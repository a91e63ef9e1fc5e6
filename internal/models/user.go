package models

// PermissionID identifies a single capability granted by a role.
type PermissionID string

const (
	PermViewUsers      PermissionID = "view_users"
	PermEditUsers      PermissionID = "edit_users"
	PermDeleteUsers    PermissionID = "delete_users"
	PermViewMeetings   PermissionID = "view_meetings"
	PermCreateMeetings PermissionID = "create_meetings"
	PermEditMeetings   PermissionID = "edit_meetings"
	PermDeleteMeetings PermissionID = "delete_meetings"
	PermViewReports    PermissionID = "view_reports"
	PermCreateReports  PermissionID = "create_reports"
	PermEditReports    PermissionID = "edit_reports"
	PermDeleteReports  PermissionID = "delete_reports"
	PermManageRoles    PermissionID = "manage_roles"
)

// Permission is a catalog entry describing a PermissionID.
type Permission struct {
	ID   PermissionID `json:"id"`
	Name string       `json:"name"`
}

// Role groups permissions under a display name.
type Role struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Permissions []PermissionID `json:"permissions"`
}

// HasPermission reports whether the role grants p.
func (r Role) HasPermission(p PermissionID) bool {
	for _, id := range r.Permissions {
		if id == p {
			return true
		}
	}
	return false
}

// User is an administrable account. Role may reference a role that no longer exists.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// UserView is User with the role name resolved for listings.
type UserView struct {
	User
	RoleName string `json:"role_name"`
}
