package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const analysesSchema = `
	CREATE TABLE IF NOT EXISTS analyses (
		id           UUID PRIMARY KEY,
		board        TEXT        NOT NULL,
		depth        INTEGER     NOT NULL,
		move_row     INTEGER     NOT NULL,
		move_col     INTEGER     NOT NULL,
		move         TEXT        NOT NULL,
		score        INTEGER     NOT NULL,
		child_moves  INTEGER[]   NOT NULL,
		child_scores INTEGER[]   NOT NULL,
		nodes        BIGINT      NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS analyses_board_depth ON analyses (board, depth);
`

// InitPostgres initializes the database connection and creates the schema.
func InitPostgres(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if _, err = db.Exec(analysesSchema); err != nil {
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return db, nil
}
