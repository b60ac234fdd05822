package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/database"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `id, email, password_hash, name, birth_date, birth_time, birth_location,
	subscription_plan, subscription_status, readings_left, created_at, updated_at`

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type RegisterParams struct {
	Email         string
	Password      string
	Name          *string
	BirthDate     *time.Time
	BirthTime     *string
	BirthLocation *string
}

type UserService struct {
	db       *database.DB
	hashCost int
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db, hashCost: bcrypt.DefaultCost}
}

// Register creates a FREE account with the signup readings allowance.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	email := normalizeEmail(p.Email)

	if _, err := s.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	row := s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, birth_date, birth_time, birth_location,
			subscription_plan, subscription_status, readings_left)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+userColumns,
		email, string(hash), p.Name, p.BirthDate, p.BirthTime, p.BirthLocation,
		models.PlanFree, models.SubscriptionActive, models.FreeReadingsOnSignup,
	)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, storeErr("create user", err)
	}
	return user, nil
}

// Authenticate checks an email/password pair. Unknown emails and wrong passwords
// both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return s.lookup(row, "get user")
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, normalizeEmail(email))
	return s.lookup(row, "get user by email")
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	row := s.db.Pool.QueryRow(ctx, `
		UPDATE users SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns, name, id)
	return s.lookup(row, "update user")
}

// SetSubscription changes the plan and status of the account with the given email.
// Granting SINGLE_READING also adds one reading to the allowance.
func (s *UserService) SetSubscription(ctx context.Context, email, plan, status string) error {
	grant := 0
	if plan == models.PlanSingleReading {
		grant = 1
	}

	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE users SET subscription_plan = $1, subscription_status = $2,
			readings_left = readings_left + $4, updated_at = NOW()
		WHERE email = $3
	`, plan, status, normalizeEmail(email), grant)
	if err != nil {
		return storeErr("set subscription", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) lookup(row pgx.Row, op string) (*models.User, error) {
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storeErr(op, err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.BirthDate, &u.BirthTime, &u.BirthLocation,
		&u.SubscriptionPlan, &u.SubscriptionStatus, &u.ReadingsLeft, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
