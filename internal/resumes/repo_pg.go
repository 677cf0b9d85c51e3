package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `
SELECT id, request_id, resume_sha256, file_name, summary, highlights, keywords, score, justification,
       tone, image_url, audio_url, video_url, fallback_stages, duration_ms, created_at
FROM resume_analyses`

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, a Analysis) error {
	const query = `
INSERT INTO resume_analyses (
	id, request_id, resume_sha256, file_name, summary, highlights, keywords, score, justification,
	tone, image_url, audio_url, video_url, fallback_stages, duration_ms, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	highlights, err := marshalJSONB(a.Highlights)
	if err != nil {
		return err
	}
	keywords, err := marshalJSONB(a.Keywords)
	if err != nil {
		return err
	}
	stages, err := marshalJSONB(a.FallbackStages)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		a.ID,
		a.RequestID,
		a.ResumeSHA256,
		a.FileName,
		a.Summary,
		highlights,
		keywords,
		a.Score,
		a.Justification,
		a.Tone,
		a.ImageURL,
		a.AudioURL,
		a.VideoURL,
		stages,
		a.DurationMs,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resume analysis: %w", err)
	}
	return nil
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Analysis, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+` WHERE id = $1 LIMIT 1`, id)
	a, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return a, nil
}

// List returns analyses newest first, with limit/offset.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var highlights, keywords, stages []byte
	err := row.Scan(
		&a.ID,
		&a.RequestID,
		&a.ResumeSHA256,
		&a.FileName,
		&a.Summary,
		&highlights,
		&keywords,
		&a.Score,
		&a.Justification,
		&a.Tone,
		&a.ImageURL,
		&a.AudioURL,
		&a.VideoURL,
		&stages,
		&a.DurationMs,
		&a.CreatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	a.Highlights = unmarshalList(highlights)
	a.Keywords = unmarshalList(keywords)
	a.FallbackStages = unmarshalList(stages)
	return a, nil
}

func marshalJSONB(values []string) ([]byte, error) {
	if values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(values)
}

func unmarshalList(raw []byte) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}
