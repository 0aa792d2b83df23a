package entities

import "time"

type Profile struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FullName  string     `gorm:"size:256" json:"full_name"`
	Email     string     `gorm:"uniqueIndex;size:255" json:"email"`
	Phone     string     `gorm:"size:50" json:"phone"`
	AvatarURL string     `gorm:"size:1024" json:"avatar_url"`
	Roles     []UserRole `gorm:"foreignKey:UserID" json:"roles,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// UserRole grants one role to one profile.
type UserRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_role" json:"user_id"`
	Role      string    `gorm:"uniqueIndex:idx_user_role;size:20" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
