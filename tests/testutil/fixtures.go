package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/database"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// FixturePassword is the plaintext password of every fixture user.
const FixturePassword = "segredo123"

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a FREE test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	name := fmt.Sprintf("Test User %d", f.counter)
	user := &models.User{
		Email:              fmt.Sprintf("user%d@example.com", f.counter),
		Name:               &name,
		SubscriptionPlan:   models.PlanFree,
		SubscriptionStatus: models.SubscriptionActive,
		ReadingsLeft:       models.FreeReadingsOnSignup,
	}

	for _, opt := range opts {
		opt(user)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, subscription_plan, subscription_status, readings_left)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, password_hash, created_at, updated_at
	`, user.Email, string(hash), user.Name, user.SubscriptionPlan, user.SubscriptionStatus, user.ReadingsLeft).Scan(
		&user.ID, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithPlan sets the user's subscription plan and status
func WithPlan(plan, status string) UserOption {
	return func(u *models.User) {
		u.SubscriptionPlan = plan
		u.SubscriptionStatus = status
	}
}

// WithReadingsLeft sets the user's remaining readings allowance
func WithReadingsLeft(n int) UserOption {
	return func(u *models.User) {
		u.ReadingsLeft = n
	}
}

// CreateReading inserts a reading owned by user
func (f *Fixtures) CreateReading(t *testing.T, owner *models.User, opts ...ReadingOption) *models.Reading {
	t.Helper()

	reading := &models.Reading{
		OwnerID:    owner.ID,
		DeckType:   models.DeckNormal,
		SpreadType: models.SpreadSingle,
		Cards: []models.Card{{
			CardName:     "O Mago",
			CardNameEn:   "The Magician",
			Position:     1,
			PositionName: "Mensagem do Dia",
			Upright:      true,
			Keywords:     []string{"vontade", "habilidade"},
			ImageURL:     "/cards/rider-waite/01-the-magician.jpg",
		}},
		CreatedAt: time.Now().UTC(),
	}

	for _, opt := range opts {
		opt(reading)
	}

	cards, err := json.Marshal(reading.Cards)
	if err != nil {
		t.Fatalf("failed to encode cards: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO tarot_readings (user_id, deck_type, spread_type, cards, interpretation, is_premium, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, reading.OwnerID, string(reading.DeckType), string(reading.SpreadType), cards,
		reading.Interpretation, reading.IsPremium, reading.CreatedAt).Scan(&reading.ID, &reading.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create reading: %v", err)
	}

	return reading
}

// ReadingOption configures a test reading
type ReadingOption func(*models.Reading)

// WithCreatedAt pins the reading's creation time
func WithCreatedAt(ts time.Time) ReadingOption {
	return func(r *models.Reading) {
		r.CreatedAt = ts
	}
}

// WithPremium marks the reading premium
func WithPremium(premium bool) ReadingOption {
	return func(r *models.Reading) {
		r.IsPremium = premium
	}
}

// WithInterpretation sets the stored interpretation text
func WithInterpretation(text string) ReadingOption {
	return func(r *models.Reading) {
		r.Interpretation = &text
	}
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}
