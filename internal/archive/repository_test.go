package archive

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/models"
)

type call struct {
	sql  string
	args []any
}

type fakeDB struct {
	calls []call
	err   error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	return pgconn.CommandTag{}, f.err
}

func TestSaveMeeting(t *testing.T) {
	db := &fakeDB{}
	m := fixtures.Meetings()[0]
	draft := models.NewMeetingDraft()
	draft.Title = m.Title

	require.NoError(t, NewRepository(db).SaveMeeting(context.Background(), "4", draft, m))
	require.Len(t, db.calls, 1)
	c := db.calls[0]
	assert.Contains(t, c.sql, "INSERT INTO completed_meetings")
	require.Len(t, c.args, 5)
	assert.Equal(t, "4", c.args[0])
	assert.Equal(t, m.ID, c.args[1])

	var got models.Meeting
	require.NoError(t, json.Unmarshal(c.args[3].([]byte), &got))
	assert.Equal(t, m.Title, got.Title)
}

func TestSaveAgenda(t *testing.T) {
	db := &fakeDB{}
	a := fixtures.Agendas()[0]

	require.NoError(t, NewRepository(db).SaveAgenda(context.Background(), "4", a))
	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, "INSERT INTO saved_agendas")
	assert.Equal(t, string(a.Status), db.calls[0].args[3])
}

func TestSaveWrapsError(t *testing.T) {
	db := &fakeDB{err: errors.New("relation does not exist")}
	err := NewRepository(db).SaveAgenda(context.Background(), "4", fixtures.Agendas()[0])
	assert.ErrorContains(t, err, "insert saved agenda")
}
