package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/hrygo/notekeeper/store"
)

func (db *DB) CreateNote(ctx context.Context, create *store.Note) (*store.Note, error) {
	tags := create.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().Unix()
	query := `
		INSERT INTO note (title, content, tags, created_ts, updated_ts)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_ts, updated_ts
	`
	note := create.Clone()
	if err := db.db.QueryRowContext(ctx, query, create.Title, create.Content, pq.Array(tags), now, now).Scan(
		&note.ID,
		&note.CreatedTs,
		&note.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

func (db *DB) UpdateNote(ctx context.Context, update *store.UpdateNote) (*store.Note, error) {
	set, args := []string{"updated_ts = $1"}, []any{time.Now().Unix()}
	if update.Title != nil {
		args = append(args, *update.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if update.Content != nil {
		args = append(args, *update.Content)
		set = append(set, fmt.Sprintf("content = $%d", len(args)))
	}
	if update.Tags != nil {
		args = append(args, pq.Array(update.Tags))
		set = append(set, fmt.Sprintf("tags = $%d", len(args)))
	}
	args = append(args, update.ID)

	query := fmt.Sprintf(`
		UPDATE note SET %s WHERE id = $%d
		RETURNING id, title, content, tags, created_ts, updated_ts
	`, strings.Join(set, ", "), len(args))

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	defer rows.Close()

	list, err := scanNotes(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (db *DB) ListNotes(ctx context.Context, find *store.FindNote) ([]*store.Note, error) {
	where, args := "1 = 1", []any{}
	if find != nil && find.ID != nil {
		where, args = "id = $1", append(args, *find.ID)
	}

	rows, err := db.db.QueryContext(ctx, `
		SELECT id, title, content, tags, created_ts, updated_ts
		FROM note
		WHERE `+where+`
		ORDER BY id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanNotes(rows rowScanner) ([]*store.Note, error) {
	list := []*store.Note{}
	for rows.Next() {
		var note store.Note
		var tags pq.StringArray
		if err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			&tags,
			&note.CreatedTs,
			&note.UpdatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		note.Tags = []string(tags)
		if note.Tags == nil {
			note.Tags = []string{}
		}
		list = append(list, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
