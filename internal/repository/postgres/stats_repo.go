package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/harlowdev/imposter-arena/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// matchRecord is the persisted row for one finished game, keyed uniquely
// by GameID so a second RecordGameEnd call (e.g. a disconnect/timeout
// race forcing the same game to end twice) is a no-op insert.
type matchRecord struct {
	GameID          string `gorm:"primaryKey"`
	RoomID          string `gorm:"index"`
	Category        string
	Winner          string
	DurationSeconds int
	Players         datatypes.JSON
	CreatedAt       time.Time
}

type matchPlayerRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GameID      string    `gorm:"index"`
	SessionID   string
	UserID      string
	DisplayName string
	Role        string
	Eliminated  bool
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *statsRepository {
	return &statsRepository{db: db}
}

// RecordGameEnd persists summary, deduplicated by GameID via an
// INSERT ... ON CONFLICT DO NOTHING so a duplicate call is a no-op.
// The per-player rows ride along in the same transaction.
func (r *statsRepository) RecordGameEnd(ctx context.Context, summary domain.MatchSummary) error {
	playersJSON, err := playersToJSON(summary.Players)
	if err != nil {
		return err
	}

	record := &matchRecord{
		GameID:          summary.GameID,
		RoomID:          summary.RoomID,
		Category:        summary.Category,
		Winner:          string(summary.Winner),
		DurationSeconds: summary.DurationSeconds,
		Players:         playersJSON,
		CreatedAt:       time.Now(),
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "game_id"}}, DoNothing: true}).Create(record)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already recorded; a concurrent caller won the race.
			return nil
		}

		playerRows := make([]matchPlayerRecord, len(summary.Players))
		for i, p := range summary.Players {
			playerRows[i] = matchPlayerRecord{
				ID:          uuid.New(),
				GameID:      summary.GameID,
				SessionID:   p.SessionID,
				UserID:      p.UserID,
				DisplayName: p.DisplayName,
				Role:        string(p.Role),
				Eliminated:  p.Eliminated,
			}
		}
		if len(playerRows) == 0 {
			return nil
		}
		return tx.Create(&playerRows).Error
	})
}

func playersToJSON(players []domain.MatchPlayerSummary) (datatypes.JSON, error) {
	raw, err := json.Marshal(players)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
