package resumes

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var analysisColumns = []string{
	"id", "request_id", "resume_sha256", "file_name", "summary", "highlights", "keywords", "score",
	"justification", "tone", "image_url", "audio_url", "video_url", "fallback_stages", "duration_ms", "created_at",
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	analysis := Analysis{
		ID:           "7b0c5f5e-1111-4222-8333-944445555666",
		RequestID:    "req-1",
		ResumeSHA256: "abc",
		FileName:     "cv.pdf",
		Result: Result{
			Summary:       "summary",
			Highlights:    []string{"Go", "SQL"},
			Keywords:      []string{"AWS"},
			ImageURL:      "https://img",
			AudioURL:      "https://audio",
			Score:         4,
			Tone:          "excited",
			Justification: "fit",
		},
		DurationMs: 12.5,
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO resume_analyses").
		WithArgs(
			analysis.ID,
			analysis.RequestID,
			analysis.ResumeSHA256,
			analysis.FileName,
			analysis.Summary,
			[]byte(`["Go","SQL"]`),
			[]byte(`["AWS"]`),
			analysis.Score,
			analysis.Justification,
			analysis.Tone,
			analysis.ImageURL,
			analysis.AudioURL,
			"",
			[]byte(`[]`),
			analysis.DurationMs,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(analysisColumns).AddRow(
		"a-1", "req-1", "abc", "cv.pdf", "summary", []byte(`["Go"]`), []byte(`["AWS"]`), 5,
		"great", "excited", "https://img", "https://audio", "", []byte(`["video"]`), 10.0, created,
	)
	mock.ExpectQuery("FROM resume_analyses WHERE id = \\$1").WithArgs("a-1").WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	got, err := repo.GetByID(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Score != 5 || got.Highlights[0] != "Go" || got.FallbackStages[0] != "video" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected analysis: %+v", got)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM resume_analyses").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	rows := sqlmock.NewRows(analysisColumns).
		AddRow("a-2", "", "def", "", "s2", []byte(`[]`), []byte(`[]`), 3, "ok", "encouraging", "", "", "", nil, 1.0, now).
		AddRow("a-1", "", "abc", "", "s1", []byte(`[]`), []byte(`[]`), 3, "ok", "encouraging", "", "", "", []byte(`[]`), 1.0, now)
	mock.ExpectQuery("ORDER BY created_at DESC LIMIT \\$1 OFFSET \\$2").WithArgs(20, 0).WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	items, err := repo.List(context.Background(), 0, -1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[0].ID != "a-2" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[0].FallbackStages == nil || len(items[0].FallbackStages) != 0 {
		t.Fatalf("expected empty fallback stages, got %#v", items[0].FallbackStages)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
