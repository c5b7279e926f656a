package responses

import (
	"time"

	"creator-api/internal/domain/quota"
	"creator-api/internal/domain/user"
)

// UserResponse is the caller's profile and quota state.
type UserResponse struct {
	ID                   string  `json:"id"`
	Email                *string `json:"email"`
	Name                 *string `json:"name"`
	Tier                 string  `json:"tier"`
	DailyGenerationsUsed int     `json:"daily_generations_used"`
	TotalGenerations     int     `json:"total_generations"`
	DailyLimit           *int    `json:"daily_limit"`
	RemainingToday       *int    `json:"remaining_today"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

// NewUserResponse reports limits as null for unlimited tiers.
func NewUserResponse(u *user.User, gate *quota.Gate) UserResponse {
	resp := UserResponse{
		ID:                   u.ID,
		Email:                u.Email,
		Name:                 u.Name,
		Tier:                 string(u.Tier),
		DailyGenerationsUsed: u.DailyGenerationsUsed,
		TotalGenerations:     u.TotalGenerations,
		CreatedAt:            u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:            u.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if decision := gate.Check(u); decision.Remaining != nil {
		limit := gate.Limit()
		resp.DailyLimit = &limit
		resp.RemainingToday = decision.Remaining
	}
	return resp
}
