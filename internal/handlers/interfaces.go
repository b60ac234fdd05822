package handlers

import (
	"context"
	"time"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/models"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/services"
	"github.com/google/uuid"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, p services.RegisterParams) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// ReadingServiceInterface defines the methods used by handlers from ReadingService
type ReadingServiceInterface interface {
	ListRecent(ctx context.Context, ownerID uuid.UUID) ([]models.Reading, error)
	GetForOwner(ctx context.Context, readingID, ownerID uuid.UUID) (*models.Reading, error)
	Create(ctx context.Context, ownerID uuid.UUID, deckType models.DeckType, spreadType models.SpreadType, access services.ReadingAccess) (*models.Reading, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
