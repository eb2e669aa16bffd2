package sqlite

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/notekeeper/store"
)

func (d *DB) CreateNote(ctx context.Context, create *store.Note) (*store.Note, error) {
	tags, err := encodeTags(create.Tags)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	stmt := `
		INSERT INTO note (title, content, tags, created_ts, updated_ts)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_ts, updated_ts
	`
	note := create.Clone()
	if err := d.db.QueryRowContext(ctx, stmt, create.Title, create.Content, tags, now, now).Scan(
		&note.ID,
		&note.CreatedTs,
		&note.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create note")
	}
	return note, nil
}

func (d *DB) UpdateNote(ctx context.Context, update *store.UpdateNote) (*store.Note, error) {
	set, args := []string{"updated_ts = ?"}, []any{time.Now().Unix()}
	if update.Title != nil {
		set, args = append(set, "title = ?"), append(args, *update.Title)
	}
	if update.Content != nil {
		set, args = append(set, "content = ?"), append(args, *update.Content)
	}
	if update.Tags != nil {
		tags, err := encodeTags(update.Tags)
		if err != nil {
			return nil, err
		}
		set, args = append(set, "tags = ?"), append(args, tags)
	}
	args = append(args, update.ID)

	stmt := "UPDATE note SET " + strings.Join(set, ", ") + " WHERE id = ?"
	result, err := d.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update note")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, nil
	}

	list, err := d.ListNotes(ctx, &store.FindNote{ID: &update.ID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (d *DB) ListNotes(ctx context.Context, find *store.FindNote) ([]*store.Note, error) {
	where, args := "1 = 1", []any{}
	if find != nil && find.ID != nil {
		where, args = "id = ?", append(args, *find.ID)
	}

	query := `SELECT id, title, content, tags, created_ts, updated_ts FROM note WHERE ` + where + ` ORDER BY id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notes")
	}
	defer rows.Close()

	list := []*store.Note{}
	for rows.Next() {
		var note store.Note
		var tags string
		if err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			&tags,
			&note.CreatedTs,
			&note.UpdatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan note")
		}
		if note.Tags, err = decodeTags(tags); err != nil {
			return nil, err
		}
		list = append(list, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode note tags")
	}
	return string(b), nil
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, errors.Wrapf(err, "failed to decode note tags %q", raw)
	}
	return tags, nil
}
