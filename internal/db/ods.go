package db

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/ashby/coursebook/internal/config"
)

// OdsDB wraps the connection to the secondary ODS database.
type OdsDB struct {
	DB *sqlx.DB
}

// NewOdsDB opens a connection to the ODS mysql database and verifies it.
func NewOdsDB(cfg *config.Config) (*OdsDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := sqlx.Open("mysql", cfg.GetOdsDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open ods connection: %w", err)
	}

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to establish ods connection: %w", err)
	}

	return &OdsDB{DB: database}, nil
}

// Close closing method
func (db *OdsDB) Close() error {
	if db.DB != nil {
		return db.DB.Close()
	}
	return nil
}
