// path: internal/store/store.go
// Package store persists game snapshots between turns.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ginseng_paisho/internal/game"
)

var (
	// ErrNotFound is returned when no saved game has the requested ID.
	ErrNotFound = errors.New("store: saved game not found")
	// ErrUnknownDriver is returned by Open for drivers other than sqlite and postgres.
	ErrUnknownDriver = errors.New("store: unknown database driver")
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = "file::memory:"

// SavedGame is one persisted snapshot.
type SavedGame struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:128"`
	Turn      int
	Status    string         `gorm:"size:16;index"`
	State     datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot decodes the stored game state.
func (s SavedGame) Snapshot() (game.Snapshot, error) {
	var snap game.Snapshot
	if err := json.Unmarshal(s.State, &snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("decode saved game %s: %w", s.ID, err)
	}
	return snap, nil
}

// Config selects the backing database.
type Config struct {
	Driver string // "sqlite" or "postgres"
	Path   string // sqlite file; empty means in-memory
	DSN    string // postgres connection string
}

type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to the configured database and migrates the schema.
func Open(cfg Config, log zerolog.Logger) (*Store, error) {
	gcfg := &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "", "sqlite":
		path := cfg.Path
		if path == "" {
			path = MemoryPath
		}
		db, err = gorm.Open(sqlite.Open(path), gcfg)
		if err == nil && path == MemoryPath {
			// every pooled connection would otherwise see its own empty database
			if sqlDB, derr := db.DB(); derr == nil {
				sqlDB.SetMaxOpenConns(1)
			}
		}
	case "postgres":
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		}), gcfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	if err := db.AutoMigrate(&SavedGame{}); err != nil {
		return nil, fmt.Errorf("migrate saved games: %w", err)
	}

	log.Info().Str("driver", db.Dialector.Name()).Msg("store ready")
	return &Store{db: db, log: log}, nil
}

// Save stores snap as a new saved game and returns it.
func (s *Store) Save(ctx context.Context, name string, snap game.Snapshot) (SavedGame, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return SavedGame{}, fmt.Errorf("encode snapshot: %w", err)
	}
	rec := SavedGame{
		ID:     uuid.NewString(),
		Name:   name,
		Turn:   snap.Turn,
		Status: snap.Status.String(),
		State:  datatypes.JSON(raw),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return SavedGame{}, fmt.Errorf("save game: %w", err)
	}
	s.log.Debug().Str("id", rec.ID).Int("turn", rec.Turn).Msg("game saved")
	return rec, nil
}

// Update overwrites the snapshot of an existing saved game.
func (s *Store) Update(ctx context.Context, id string, snap game.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	res := s.db.WithContext(ctx).Model(&SavedGame{}).Where("id = ?", id).Updates(map[string]any{
		"turn":       snap.Turn,
		"status":     snap.Status.String(),
		"state":      datatypes.JSON(raw),
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("update game %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update game %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (SavedGame, error) {
	var rec SavedGame
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SavedGame{}, fmt.Errorf("load game %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return SavedGame{}, fmt.Errorf("load game %s: %w", id, err)
	}
	return rec, nil
}

// List returns every saved game, newest first, without the state payload.
func (s *Store) List(ctx context.Context) ([]SavedGame, error) {
	var recs []SavedGame
	err := s.db.WithContext(ctx).
		Select("id", "name", "turn", "status", "created_at", "updated_at").
		Order("updated_at DESC").Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return recs, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&SavedGame{})
	if res.Error != nil {
		return fmt.Errorf("delete game %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete game %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
