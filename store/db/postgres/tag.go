package postgres

import (
	"context"
	"fmt"
)

func (db *DB) CreateTag(ctx context.Context, tag string) error {
	if _, err := db.db.ExecContext(ctx, `INSERT INTO tag (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, tag); err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

func (db *DB) ListTags(ctx context.Context) ([]string, error) {
	rows, err := db.db.QueryContext(ctx, `SELECT name FROM tag ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}
