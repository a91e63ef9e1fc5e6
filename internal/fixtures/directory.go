package fixtures

import "github.com/boardflow/backend/internal/models"

// DefaultPassword is the password shared by every seeded login.
const DefaultPassword = "password"

// Credential is an entry of the login allow-list.
type Credential struct {
	Email    string
	Password string
	UserID   string
	Tab      string
}

var permissions = []models.Permission{
	{ID: models.PermViewUsers, Name: "View Users"},
	{ID: models.PermEditUsers, Name: "Edit Users"},
	{ID: models.PermDeleteUsers, Name: "Delete Users"},
	{ID: models.PermViewMeetings, Name: "View Meetings"},
	{ID: models.PermCreateMeetings, Name: "Create Meetings"},
	{ID: models.PermEditMeetings, Name: "Edit Meetings"},
	{ID: models.PermDeleteMeetings, Name: "Delete Meetings"},
	{ID: models.PermViewReports, Name: "View Reports"},
	{ID: models.PermCreateReports, Name: "Create Reports"},
	{ID: models.PermEditReports, Name: "Edit Reports"},
	{ID: models.PermDeleteReports, Name: "Delete Reports"},
	{ID: models.PermManageRoles, Name: "Manage Roles"},
}

var roles = []models.Role{
	{
		ID:   "admin",
		Name: "Administrator",
		Permissions: []models.PermissionID{
			models.PermViewUsers, models.PermEditUsers, models.PermDeleteUsers,
			models.PermViewMeetings, models.PermCreateMeetings, models.PermEditMeetings, models.PermDeleteMeetings,
			models.PermViewReports, models.PermCreateReports, models.PermEditReports, models.PermDeleteReports,
			models.PermManageRoles,
		},
	},
	{
		ID:   "board",
		Name: "Board Member",
		Permissions: []models.PermissionID{
			models.PermViewUsers,
			models.PermViewMeetings, models.PermCreateMeetings, models.PermEditMeetings,
			models.PermViewReports, models.PermCreateReports,
		},
	},
	{
		ID:          "committee",
		Name:        "Committee Member",
		Permissions: []models.PermissionID{models.PermViewMeetings, models.PermViewReports},
	},
	{
		ID:   "secretary",
		Name: "Secretary",
		Permissions: []models.PermissionID{
			models.PermViewUsers,
			models.PermViewMeetings, models.PermCreateMeetings, models.PermEditMeetings,
			models.PermViewReports, models.PermCreateReports, models.PermEditReports,
		},
	},
}

var users = []models.User{
	{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: "admin", IsActive: true},
	{ID: "2", Name: "Board Member", Email: "board@example.com", Role: "board", IsActive: true},
	{ID: "3", Name: "Committee Member", Email: "committee@example.com", Role: "committee", IsActive: true},
	{ID: "4", Name: "Secretary", Email: "secretary@example.com", Role: "secretary", IsActive: true},
	{ID: "5", Name: "Inactive User", Email: "inactive@example.com", Role: "committee", IsActive: false},
}

var credentials = []Credential{
	{Email: "admin@example.com", Password: DefaultPassword, UserID: "1", Tab: "admin-dashboard"},
	{Email: "board@example.com", Password: DefaultPassword, UserID: "2", Tab: "board-dashboard"},
	{Email: "committee@example.com", Password: DefaultPassword, UserID: "3", Tab: "committee-dashboard"},
	{Email: "secretary@example.com", Password: DefaultPassword, UserID: "4", Tab: "secretary-dashboard"},
}

// Permissions returns the permission catalog.
func Permissions() []models.Permission {
	return append([]models.Permission{}, permissions...)
}

// Roles returns the seed roles.
func Roles() []models.Role {
	out := make([]models.Role, len(roles))
	for i, r := range roles {
		r.Permissions = append([]models.PermissionID{}, r.Permissions...)
		out[i] = r
	}
	return out
}

// Users returns the seed users.
func Users() []models.User {
	return append([]models.User{}, users...)
}

// Credentials returns the login allow-list.
func Credentials() []Credential {
	return append([]Credential{}, credentials...)
}
