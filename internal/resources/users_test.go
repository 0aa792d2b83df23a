package resources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libraryhub/internal/domain"
)

func TestUsers_CreateAndRoles(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user, err := f.users.Create(ctx, domain.User{FullName: "Ann", Email: "ann@example.com", Roles: []domain.Role{domain.RoleMember}})
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleMember}, user.Roles)

	require.NoError(t, f.users.AddRole(ctx, user.ID, domain.RoleLibrarian))
	roles, err := f.users.Roles(ctx, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Role{domain.RoleMember, domain.RoleLibrarian}, roles)

	require.NoError(t, f.users.RemoveRole(ctx, user.ID, domain.RoleMember))
	roles, err = f.users.Roles(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleLibrarian}, roles)

	assert.ErrorIs(t, f.users.AddRole(ctx, user.ID, "wizard"), ErrInvalidInput)
	assert.ErrorIs(t, f.users.AddRole(ctx, 999, domain.RoleAdmin), ErrNotFound)
}

func TestUsers_ListJoinsRoles(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := f.users.Create(ctx, domain.User{FullName: "Bob", Email: "bob@example.com", Roles: []domain.Role{domain.RoleAdmin}})
	require.NoError(t, err)
	_, err = f.users.Create(ctx, domain.User{FullName: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	list, err := f.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ann", list[0].FullName)
	assert.Empty(t, list[0].Roles)
	assert.True(t, list[1].HasRole(domain.RoleAdmin))
}

func TestUsers_UpdateProfile(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user, err := f.users.Create(ctx, domain.User{FullName: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	updated, err := f.users.UpdateProfile(ctx, user.ID, domain.ProfilePatch{Phone: ptr("555-0100")})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "Ann", updated.FullName)

	_, err = f.users.UpdateProfile(ctx, user.ID, domain.ProfilePatch{Email: ptr("")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.users.Create(ctx, domain.User{FullName: "Dup", Email: "ann@example.com"})
	assert.Error(t, err)
}
