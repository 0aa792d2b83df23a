package mapping

import (
	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/entities"
)

// UserFromProfile joins a profile with its role rows. Unknown roles are dropped.
func UserFromProfile(p entities.Profile, roles []entities.UserRole) domain.User {
	user := domain.User{
		ID:        p.ID,
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		AvatarURL: p.AvatarURL,
		Roles:     []domain.Role{},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, r := range roles {
		role := domain.Role(r.Role)
		if r.UserID == p.ID && domain.ValidRole(role) && !user.HasRole(role) {
			user.Roles = append(user.Roles, role)
		}
	}
	return user
}

func ProfileToRow(u domain.User) entities.Profile {
	return entities.Profile{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ProfilePatchColumns(p domain.ProfilePatch) map[string]any {
	cols := map[string]any{}
	if p.FullName != nil {
		cols["full_name"] = *p.FullName
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.AvatarURL != nil {
		cols["avatar_url"] = *p.AvatarURL
	}
	return cols
}
