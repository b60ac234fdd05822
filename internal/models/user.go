package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription plans
const (
	PlanFree           = "FREE"
	PlanSingleReading  = "SINGLE_READING"
	PlanPremiumMonthly = "PREMIUM_MONTHLY"
)

const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
)

// FreeReadingsOnSignup is the readings allowance granted to new accounts.
const FreeReadingsOnSignup = 4

type User struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	Name               *string    `json:"name,omitempty"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	BirthTime          *string    `json:"birth_time,omitempty"`
	BirthLocation      *string    `json:"birth_location,omitempty"`
	SubscriptionPlan   string     `json:"subscription_plan"`
	SubscriptionStatus string     `json:"subscription_status"`
	ReadingsLeft       int        `json:"readings_left"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// IsPremium reports whether the user holds an active monthly subscription.
func (u *User) IsPremium() bool {
	return u.SubscriptionPlan == PlanPremiumMonthly && u.SubscriptionStatus == SubscriptionActive
}

// HasPremiumAccess is true for monthly subscribers and for single-reading
// purchases that still have a reading to spend.
func (u *User) HasPremiumAccess() bool {
	if u.IsPremium() {
		return true
	}
	return u.SubscriptionPlan == PlanSingleReading && u.ReadingsLeft > 0
}

// CanMakeReading reports whether a new reading may be drawn right now.
func (u *User) CanMakeReading() bool {
	return u.IsPremium() || u.ReadingsLeft > 0
}

// MeteredReadings is true when each reading spends one unit of ReadingsLeft.
func (u *User) MeteredReadings() bool {
	return !u.IsPremium()
}
