// Package archive keeps a copy of completed meetings and saved agendas in PostgreSQL.
// Writes are best-effort: nothing in the workspace reads them back.
package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/boardflow/backend/internal/models"
)

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository handles archive persistence.
type Repository struct {
	db DB
}

// NewRepository creates an archive repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// SaveMeeting stores a meeting created by the wizard along with the draft it came from.
func (r *Repository) SaveMeeting(ctx context.Context, userID string, draft models.MeetingDraft, m models.Meeting) error {
	meeting, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal meeting: %w", err)
	}
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	const q = `INSERT INTO completed_meetings (user_id, meeting_id, title, meeting, draft)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.Exec(ctx, q, userID, m.ID, m.Title, meeting, raw); err != nil {
		return fmt.Errorf("insert completed meeting: %w", err)
	}
	return nil
}

// SaveAgenda stores a snapshot of a submitted agenda.
func (r *Repository) SaveAgenda(ctx context.Context, userID string, a models.Agenda) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal agenda: %w", err)
	}
	const q = `INSERT INTO saved_agendas (user_id, agenda_id, title, status, agenda)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.Exec(ctx, q, userID, a.ID, a.Title, string(a.Status), body); err != nil {
		return fmt.Errorf("insert saved agenda: %w", err)
	}
	return nil
}
