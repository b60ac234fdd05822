package dto

import (
	"time"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/models"
	"github.com/google/uuid"
)

type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	Name               *string   `json:"name,omitempty"`
	BirthDate          *string   `json:"birth_date,omitempty"`
	BirthTime          *string   `json:"birth_time,omitempty"`
	BirthLocation      *string   `json:"birth_location,omitempty"`
	SubscriptionPlan   string    `json:"subscription_plan"`
	SubscriptionStatus string    `json:"subscription_status"`
	ReadingsLeft       int       `json:"readings_left"`
	CreatedAt          time.Time `json:"created_at"`
}

type UpdateUserRequest struct {
	Name string `json:"name"`
}

func NewUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		BirthTime:          u.BirthTime,
		BirthLocation:      u.BirthLocation,
		SubscriptionPlan:   u.SubscriptionPlan,
		SubscriptionStatus: u.SubscriptionStatus,
		ReadingsLeft:       u.ReadingsLeft,
		CreatedAt:          u.CreatedAt,
	}
	if u.BirthDate != nil {
		d := u.BirthDate.Format(time.DateOnly)
		resp.BirthDate = &d
	}
	return resp
}
