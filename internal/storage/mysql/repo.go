package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eatery_catalog/internal/adapters/observability"
)

const sourceLabel = "mysql"

var ErrBlobMissing = errors.New("blob row missing")

// BlobSource reads eatery blobs from the eatery_blobs table.
type BlobSource struct{ db *sql.DB }

func New(db *sql.DB) *BlobSource { return &BlobSource{db: db} }

func (s *BlobSource) String() string { return "mysql:eatery_blobs" }

func (s *BlobSource) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, listBlobNamesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0, 64)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *BlobSource) Read(ctx context.Context, name string) ([]byte, error) {
	start := time.Now()
	var body []byte
	err := s.db.QueryRowContext(ctx, getBlobSQL, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		// deleted between List and Read
		err = fmt.Errorf("%s: %w", name, ErrBlobMissing)
	}
	observability.ObserveSourceRead(sourceLabel, err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return body, nil
}

// EnsureSchema creates the blob table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}
