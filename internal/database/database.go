package database

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/mine-games/mine/internal/logging"
)

type Config struct {
	// Path to the bolt file holding room and round state
	FilePath string `envconfig:"MINE_DB_FILE_PATH" default:"mine.db"`
}

// DB owns the bolt handle shared by the room and round adapters.
type DB struct {
	DB *bolt.DB
}

func NewFromEnv(ctx context.Context, config *Config) (*DB, error) {
	logger := logging.FromContext(ctx)
	logger.Infof("creating db connection")

	db, err := bolt.Open(config.FilePath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("creating connection DB: %w", err)
	}

	return &DB{DB: db}, nil
}

func (db *DB) Close(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	logger.Infof("closing DB connection")

	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("error close DB connection: %w", err)
	}

	return nil
}
