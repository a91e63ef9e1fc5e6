package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/apperr"
)

func newTestDirectory(changes *[]Change) *Directory {
	d := NewDirectory(fixtures.Roles(), fixtures.Users(), func(c Change) {
		if changes != nil {
			*changes = append(*changes, c)
		}
	}, nil)
	d.newID = func() string { return "new-id" }
	return d
}

func TestSaveRoleUpsert(t *testing.T) {
	var changes []Change
	d := newTestDirectory(&changes)

	created, err := d.SaveRole(models.Role{Name: "Auditor", Permissions: []models.PermissionID{models.PermViewReports}})
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)
	assert.Len(t, d.Roles(), 5)

	_, err = d.SaveRole(models.Role{ID: "board", Name: "Board Director"})
	require.NoError(t, err)
	roles := d.Roles()
	require.Len(t, roles, 5)
	assert.Equal(t, "Board Director", roles[1].Name)
	assert.Empty(t, roles[1].Permissions)

	_, err = d.SaveRole(models.Role{Name: "  "})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	require.Len(t, changes, 2)
	assert.Equal(t, KindRole, changes[0].Kind)
	assert.Equal(t, ActionSaved, changes[0].Action)
}

func TestDeleteRoleFallsBack(t *testing.T) {
	d := newTestDirectory(nil)

	require.NoError(t, d.DeleteRole("committee"))

	views := d.UserViews()
	byID := map[string]models.UserView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	assert.Equal(t, UnknownRoleName, byID["3"].RoleName)
	assert.Equal(t, "committee", byID["3"].Role)
	assert.Equal(t, "Administrator", byID["1"].RoleName)
	assert.Len(t, views, 5)

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(d.DeleteRole("committee")))
}

func TestSaveUserUpsert(t *testing.T) {
	d := newTestDirectory(nil)

	v, err := d.SaveUser(models.User{Name: "New Person", Email: "new@example.com", Role: "ghost", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "new-id", v.ID)
	assert.Equal(t, UnknownRoleName, v.RoleName)

	v, err = d.SaveUser(models.User{ID: "2", Name: "Board Chair", Email: "board@example.com", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "Administrator", v.RoleName)
	users := d.Users()
	require.Len(t, users, 6)
	assert.Equal(t, "Board Chair", users[1].Name)
	assert.False(t, users[1].IsActive)

	_, err = d.SaveUser(models.User{Name: "No Email"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDeleteUser(t *testing.T) {
	var changes []Change
	d := newTestDirectory(&changes)

	require.NoError(t, d.DeleteUser("5"))
	assert.Len(t, d.Users(), 4)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(d.DeleteUser("5")))
	require.Len(t, changes, 1)
	assert.Equal(t, Change{Kind: KindUser, Action: ActionDelete, ID: "5"}, changes[0])
}

func TestStats(t *testing.T) {
	d := newTestDirectory(nil)

	s := d.Stats()

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 4, s.Active)
	assert.Equal(t, 1, s.Inactive)
	assert.Equal(t, 2, s.ByRole["Committee Member"])
	assert.Equal(t, 1, s.ByRole["Administrator"])
}

func TestRolesAreCopies(t *testing.T) {
	d := newTestDirectory(nil)
	roles := d.Roles()
	roles[0].Permissions[0] = "hacked"

	r, ok := d.Role("admin")
	require.True(t, ok)
	assert.Equal(t, models.PermViewUsers, r.Permissions[0])
}
