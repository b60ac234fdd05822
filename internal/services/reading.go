package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/config"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/database"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/models"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/tarot"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReadingService struct {
	db     *database.DB
	drawer *tarot.Drawer
	cfg    config.ReadingsConfig
}

func NewReadingService(db *database.DB, drawer *tarot.Drawer, cfg config.ReadingsConfig) *ReadingService {
	cfg.HistoryLimit = config.ClampHistoryLimit(cfg.HistoryLimit)
	if drawer == nil {
		drawer = tarot.NewDrawer(nil)
	}
	return &ReadingService{db: db, drawer: drawer, cfg: cfg}
}

// ListRecent returns the caller's most recent readings, newest first, capped at the
// configured history limit. Readings sharing a created_at are ordered by id descending.
// ownerID is trusted as already authenticated. An owner with no readings gets an
// empty, non-nil slice.
func (s *ReadingService) ListRecent(ctx context.Context, ownerID uuid.UUID) ([]models.Reading, error) {
	if s.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.QueryTimeout)
		defer cancel()
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, deck_type, spread_type, cards, interpretation, is_premium, created_at
		FROM tarot_readings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, ownerID, s.cfg.HistoryLimit)
	if err != nil {
		return nil, storeErr("list readings", err)
	}
	defer rows.Close()

	readings := make([]models.Reading, 0)
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, storeErr("scan reading", err)
		}
		readings = append(readings, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list readings", err)
	}
	return readings, nil
}

// GetForOwner loads one reading, treating other owners' readings as missing.
func (s *ReadingService) GetForOwner(ctx context.Context, readingID, ownerID uuid.UUID) (*models.Reading, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT id, deck_type, spread_type, cards, interpretation, is_premium, created_at
		FROM tarot_readings
		WHERE id = $1 AND user_id = $2
	`, readingID, ownerID)

	r, err := scanReading(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReadingNotFound
	}
	if err != nil {
		return nil, storeErr("get reading", err)
	}
	return r, nil
}

// ReadingAccess describes what the caller's plan grants for one new reading.
type ReadingAccess struct {
	Premium bool
	// Metered readings spend one unit of the owner's readings_left.
	Metered bool
}

// ReadingAccessFor derives the access a user's plan grants right now.
func ReadingAccessFor(u *models.User) ReadingAccess {
	return ReadingAccess{Premium: u.HasPremiumAccess(), Metered: u.MeteredReadings()}
}

// Create draws a spread and stores it for ownerID. Non-premium readings carry a
// teaser interpretation; premium ones are left for the enrichment step. A metered
// reading decrements the owner's allowance in the same transaction as the insert
// and fails with ErrNoReadingsLeft when nothing is left to spend.
func (s *ReadingService) Create(ctx context.Context, ownerID uuid.UUID, deckType models.DeckType, spreadType models.SpreadType, access ReadingAccess) (*models.Reading, error) {
	if !deckType.Valid() {
		return nil, ErrInvalidDeckType
	}
	if !spreadType.Valid() {
		return nil, ErrInvalidSpreadType
	}

	cards, err := s.drawer.Draw(deckType, spreadType)
	if err != nil {
		return nil, fmt.Errorf("failed to draw cards: %w", err)
	}

	payload, err := json.Marshal(cards)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cards: %w", err)
	}

	premium := access.Premium
	var interpretation *string
	if !premium {
		teaser := tarot.Teaser(cards)
		interpretation = &teaser
	}

	reading := models.Reading{
		OwnerID:        ownerID,
		DeckType:       deckType,
		SpreadType:     spreadType,
		Cards:          cards,
		Interpretation: interpretation,
		IsPremium:      premium,
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, storeErr("begin reading", err)
	}
	defer tx.Rollback(ctx)

	if access.Metered {
		tag, err := tx.Exec(ctx, `
			UPDATE users SET readings_left = readings_left - 1, updated_at = NOW()
			WHERE id = $1 AND readings_left > 0
		`, ownerID)
		if err != nil {
			return nil, storeErr("consume reading", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, ErrNoReadingsLeft
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO tarot_readings (user_id, deck_type, spread_type, cards, interpretation, is_premium)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, ownerID, string(deckType), string(spreadType), payload, interpretation, premium).Scan(&reading.ID, &reading.CreatedAt)
	if err != nil {
		return nil, storeErr("create reading", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr("commit reading", err)
	}
	return &reading, nil
}

func scanReading(row pgx.Row) (*models.Reading, error) {
	var (
		r      models.Reading
		deck   string
		spread string
		cards  []byte
	)
	if err := row.Scan(&r.ID, &deck, &spread, &cards, &r.Interpretation, &r.IsPremium, &r.CreatedAt); err != nil {
		return nil, err
	}

	r.DeckType = models.DeckType(deck)
	r.SpreadType = models.SpreadType(spread)
	r.Cards = []models.Card{}
	if len(cards) > 0 {
		if err := json.Unmarshal(cards, &r.Cards); err != nil {
			return nil, fmt.Errorf("decode cards of reading %s: %w", r.ID, err)
		}
		if r.Cards == nil {
			r.Cards = []models.Card{}
		}
	}
	return &r, nil
}
