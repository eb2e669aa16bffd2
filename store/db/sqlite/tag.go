package sqlite

import (
	"context"

	"github.com/pkg/errors"
)

func (d *DB) CreateTag(ctx context.Context, tag string) error {
	if _, err := d.db.ExecContext(ctx, `INSERT INTO tag (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, tag); err != nil {
		return errors.Wrap(err, "failed to create tag")
	}
	return nil
}

func (d *DB) ListTags(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT name FROM tag ORDER BY id ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, errors.Wrap(err, "failed to scan tag")
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}
