package mixer

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaga0h/tandem/pkg/postgres"
)

func TestTransitionStore_EnsureSchema(t *testing.T) {
	pg := &fakePostgres{}
	store := NewTransitionStore(pg)

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.Len(t, pg.execs, 1)
	assert.Contains(t, pg.execs[0], "CREATE TABLE IF NOT EXISTS mixer_transitions")
}

func TestTransitionStore_RecordTransitionAssignsDefaults(t *testing.T) {
	pg := &fakePostgres{}
	store := NewTransitionStore(pg)

	transition := &Transition{
		LightID:             "livingroom",
		RequestedKelvin:     4600,
		RequestedBrightness: 255,
		Priority:            PriorityMixed,
		WarmBrightness:      75,
		ColdBrightness:      180,
	}

	require.NoError(t, store.RecordTransition(context.Background(), transition))

	assert.NotEqual(t, uuid.Nil, transition.ID)
	assert.False(t, transition.CreatedAt.IsZero())
	require.Len(t, pg.execs, 1)
	assert.Contains(t, pg.execs[0], "INSERT INTO mixer_transitions")
}

func TestTransitionStore_RecentTransitions(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	newest := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	older := newest.Add(-time.Hour)

	stubTransitionRows = [][]driver.Value{
		{first.String(), "livingroom", int64(4600), int64(255), "mixed", int64(75), int64(180), newest},
		{second.String(), "livingroom", int64(3000), int64(128), "temperature", int64(110), int64(18), older},
	}

	store := NewTransitionStore(newRowsPostgres(t))

	transitions, err := store.RecentTransitions(context.Background(), "livingroom", 10)
	require.NoError(t, err)
	require.Len(t, transitions, 2)

	assert.Equal(t, first, transitions[0].ID)
	assert.Equal(t, "livingroom", transitions[0].LightID)
	assert.Equal(t, 4600, transitions[0].RequestedKelvin)
	assert.Equal(t, 255, transitions[0].RequestedBrightness)
	assert.Equal(t, PriorityMixed, transitions[0].Priority)
	assert.Equal(t, 75, transitions[0].WarmBrightness)
	assert.Equal(t, 180, transitions[0].ColdBrightness)
	assert.True(t, newest.Equal(transitions[0].CreatedAt))

	assert.Equal(t, second, transitions[1].ID)
	assert.Equal(t, PriorityTemperature, transitions[1].Priority)
	assert.True(t, older.Equal(transitions[1].CreatedAt))
}

func TestTransitionStore_RecentTransitionsEmpty(t *testing.T) {
	stubTransitionRows = nil

	store := NewTransitionStore(newRowsPostgres(t))

	transitions, err := store.RecentTransitions(context.Background(), "livingroom", 10)
	require.NoError(t, err)
	assert.Empty(t, transitions)
}

// rowsPostgres implements postgres.Client on top of a stub database/sql
// driver so Query returns real *sql.Rows backed by canned values.
type rowsPostgres struct {
	db *sql.DB
}

func newRowsPostgres(t *testing.T) *rowsPostgres {
	t.Helper()

	db, err := sql.Open("mixerstub", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &rowsPostgres{db: db}
}

func (f *rowsPostgres) Connect(ctx context.Context) error { return nil }
func (f *rowsPostgres) Disconnect() error                 { return f.db.Close() }
func (f *rowsPostgres) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return f.db.ExecContext(ctx, query, args...)
}
func (f *rowsPostgres) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return f.db.QueryContext(ctx, query, args...)
}
func (f *rowsPostgres) IsConnected() bool { return true }
func (f *rowsPostgres) HealthCheck(ctx context.Context) (*postgres.HealthStatus, error) {
	return &postgres.HealthStatus{Connected: true}, nil
}

// stubTransitionRows is the result set the stub driver serves for the next
// query. Tests set it before calling the store.
var stubTransitionRows [][]driver.Value

func init() {
	sql.Register("mixerstub", stubDriver{})
}

type stubDriver struct{}

func (stubDriver) Open(name string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(query string) (driver.Stmt, error) { return stubStmt{}, nil }
func (stubConn) Close() error                              { return nil }
func (stubConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

type stubStmt struct{}

func (stubStmt) Close() error  { return nil }
func (stubStmt) NumInput() int { return -1 }
func (stubStmt) Exec(args []driver.Value) (driver.Result, error) {
	return driver.RowsAffected(0), nil
}
func (stubStmt) Query(args []driver.Value) (driver.Rows, error) {
	return &stubRows{rows: stubTransitionRows}, nil
}

type stubRows struct {
	rows [][]driver.Value
	pos  int
}

func (r *stubRows) Columns() []string {
	return []string{
		"id", "light_id", "requested_kelvin", "requested_brightness",
		"priority", "warm_brightness", "cold_brightness", "created_at",
	}
}

func (r *stubRows) Close() error { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}
