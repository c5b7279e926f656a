package dbschema

import (
	"time"

	"creator-api/internal/domain/user"
)

// User is keyed by the identity provider subject.
type User struct {
	ID                   string  `gorm:"type:varchar(255);primaryKey"`
	Email                *string `gorm:"type:varchar(320)"`
	Name                 *string `gorm:"type:varchar(255)"`
	Tier                 string  `gorm:"type:varchar(32);not null;default:'free'"`
	DailyGenerationsUsed int     `gorm:"not null;default:0"`
	TotalGenerations     int     `gorm:"not null;default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}

	tier := u.Tier
	if tier == "" {
		tier = user.TierFree
	}
	return &User{
		ID:                   u.ID,
		Email:                u.Email,
		Name:                 u.Name,
		Tier:                 string(tier),
		DailyGenerationsUsed: u.DailyGenerationsUsed,
		TotalGenerations:     u.TotalGenerations,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

// EtoD converts a schema user back to the domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}

	return &user.User{
		ID:                   u.ID,
		Email:                u.Email,
		Name:                 u.Name,
		Tier:                 user.Tier(u.Tier),
		DailyGenerationsUsed: u.DailyGenerationsUsed,
		TotalGenerations:     u.TotalGenerations,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}
