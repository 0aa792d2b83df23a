package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/entities"
	"github.com/mrlokans/libraryhub/internal/mapping"
	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/query"
)

type Users struct {
	store    UserStore
	query    *query.Client
	notifier notify.Notifier
}

func NewUsers(store UserStore, q *query.Client, n notify.Notifier) *Users {
	if n == nil {
		n = notify.Discard
	}
	return &Users{store: store, query: q, notifier: n}
}

// List returns every profile with its roles.
func (u *Users) List(ctx context.Context) ([]domain.User, error) {
	return query.Get(ctx, u.query, query.KeyOf(ResourceUsers), func(ctx context.Context) ([]domain.User, error) {
		profiles, err := u.store.GetProfiles(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles: %w", err)
		}
		grants, err := u.store.GetUserRoles(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load roles: %w", err)
		}
		byUser := make(map[uint][]entities.UserRole)
		for _, g := range grants {
			byUser[g.UserID] = append(byUser[g.UserID], g)
		}
		users := make([]domain.User, len(profiles))
		for i, p := range profiles {
			users[i] = mapping.UserFromProfile(p, byUser[p.ID])
		}
		return users, nil
	})
}

func (u *Users) Get(ctx context.Context, id uint) (domain.User, error) {
	return query.Get(ctx, u.query, query.KeyOf(ResourceUsers, id), func(ctx context.Context) (domain.User, error) {
		return u.fetchOne(ctx, id)
	})
}

// Roles returns the roles granted to userID.
func (u *Users) Roles(ctx context.Context, userID uint) ([]domain.Role, error) {
	return query.Get(ctx, u.query, query.KeyOf(ResourceUsers, userID, "roles"), func(ctx context.Context) ([]domain.Role, error) {
		user, err := u.fetchOne(ctx, userID)
		if err != nil {
			return nil, err
		}
		return user.Roles, nil
	})
}

// Create registers a profile and grants it roles.
func (u *Users) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return query.Mutate(ctx, u.query, u.notifier, query.MutationOptions{
		Invalidates:        []string{ResourceUsers},
		SuccessTitle:       "User created",
		SuccessDescription: user.FullName,
		ErrorTitle:         "Could not create user",
	}, func(ctx context.Context) (domain.User, error) {
		user.Email = strings.TrimSpace(user.Email)
		if user.Email == "" {
			return domain.User{}, invalid("email is required")
		}
		for _, r := range user.Roles {
			if !domain.ValidRole(r) {
				return domain.User{}, invalid("unknown role %q", r)
			}
		}
		row := mapping.ProfileToRow(user)
		row.ID = 0
		if err := u.store.CreateProfile(ctx, &row); err != nil {
			return domain.User{}, fmt.Errorf("failed to create profile: %w", err)
		}
		for _, r := range user.Roles {
			if err := u.store.AddUserRole(ctx, row.ID, string(r)); err != nil {
				return domain.User{}, fmt.Errorf("failed to grant %s: %w", r, err)
			}
		}
		return u.fetchOne(ctx, row.ID)
	})
}

func (u *Users) AddRole(ctx context.Context, userID uint, role domain.Role) error {
	_, err := query.Mutate(ctx, u.query, u.notifier, query.MutationOptions{
		Invalidates:        []string{ResourceUsers},
		SuccessTitle:       "Role granted",
		SuccessDescription: string(role),
		ErrorTitle:         "Could not grant role",
	}, func(ctx context.Context) (struct{}, error) {
		if !domain.ValidRole(role) {
			return struct{}{}, invalid("unknown role %q", role)
		}
		if _, err := u.store.GetProfileByID(ctx, userID); err != nil {
			return struct{}{}, remoteErr(err, "user", userID)
		}
		return struct{}{}, u.store.AddUserRole(ctx, userID, string(role))
	})
	return err
}

func (u *Users) RemoveRole(ctx context.Context, userID uint, role domain.Role) error {
	_, err := query.Mutate(ctx, u.query, u.notifier, query.MutationOptions{
		Invalidates:        []string{ResourceUsers},
		SuccessTitle:       "Role revoked",
		SuccessDescription: string(role),
		ErrorTitle:         "Could not revoke role",
	}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, u.store.RemoveUserRole(ctx, userID, string(role))
	})
	return err
}

func (u *Users) UpdateProfile(ctx context.Context, id uint, patch domain.ProfilePatch) (domain.User, error) {
	return query.Mutate(ctx, u.query, u.notifier, query.MutationOptions{
		Invalidates:  []string{ResourceUsers},
		SuccessTitle: "Profile updated",
		ErrorTitle:   "Could not update profile",
	}, func(ctx context.Context) (domain.User, error) {
		if patch.Email != nil && strings.TrimSpace(*patch.Email) == "" {
			return domain.User{}, invalid("email is required")
		}
		if _, err := u.store.UpdateProfile(ctx, id, mapping.ProfilePatchColumns(patch)); err != nil {
			return domain.User{}, remoteErr(err, "user", id)
		}
		return u.fetchOne(ctx, id)
	})
}

func (u *Users) fetchOne(ctx context.Context, id uint) (domain.User, error) {
	profile, err := u.store.GetProfileByID(ctx, id)
	if err != nil {
		return domain.User{}, remoteErr(err, "user", id)
	}
	grants, err := u.store.GetRolesForUser(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to load roles for user %d: %w", id, err)
	}
	return mapping.UserFromProfile(*profile, grants), nil
}
