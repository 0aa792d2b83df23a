// Package users provides database operations for profiles and role grants.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	profiles, err := repo.GetProfiles(ctx)
//	roles, err := repo.GetUserRoles(ctx)
package users

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/libraryhub/internal/entities"
)

// Repository handles all profile and role database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetProfiles returns every profile ordered by name.
func (r *Repository) GetProfiles(ctx context.Context) ([]entities.Profile, error) {
	var profiles []entities.Profile
	err := r.db.WithContext(ctx).Order("full_name ASC, id ASC").Find(&profiles).Error
	return profiles, err
}

// GetProfileByID retrieves a profile by ID.
func (r *Repository) GetProfileByID(ctx context.Context, id uint) (*entities.Profile, error) {
	var profile entities.Profile
	err := r.db.WithContext(ctx).First(&profile, id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateProfile inserts a profile.
func (r *Repository) CreateProfile(ctx context.Context, profile *entities.Profile) error {
	return r.db.WithContext(ctx).Omit("Roles").Create(profile).Error
}

// UpdateProfile applies column updates and returns the stored profile.
func (r *Repository) UpdateProfile(ctx context.Context, id uint, columns map[string]any) (*entities.Profile, error) {
	db := r.db.WithContext(ctx)
	if len(columns) > 0 {
		result := db.Model(&entities.Profile{}).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetProfileByID(ctx, id)
}

// GetUserRoles returns every role grant.
func (r *Repository) GetUserRoles(ctx context.Context) ([]entities.UserRole, error) {
	var roles []entities.UserRole
	err := r.db.WithContext(ctx).Order("user_id ASC, role ASC").Find(&roles).Error
	return roles, err
}

// GetRolesForUser returns the role grants of one user.
func (r *Repository) GetRolesForUser(ctx context.Context, userID uint) ([]entities.UserRole, error) {
	var roles []entities.UserRole
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("role ASC").Find(&roles).Error
	return roles, err
}

// AddUserRole grants role to userID. Granting an existing role is a no-op.
func (r *Repository) AddUserRole(ctx context.Context, userID uint, role string) error {
	grant := entities.UserRole{UserID: userID, Role: role}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&grant).Error
}

// RemoveUserRole revokes role from userID.
func (r *Repository) RemoveUserRole(ctx context.Context, userID uint, role string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&entities.UserRole{}).Error
}
