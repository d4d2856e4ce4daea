package common

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "($1, $2)", placeholders(1, 2))
	assert.Equal(t, "($1, $2, $3), ($4, $5, $6)", placeholders(2, 3))
}

func TestBatchInserter_FlushesOnBatchSize(t *testing.T) {
	exec := &recordingExecer{}
	bi := NewBatchInserter(exec, "INSERT INTO project_skills (project_id, skill_id, is_required)", 3, 2).
		WithSuffix("ON CONFLICT DO NOTHING")
	ctx := context.Background()

	require.NoError(t, bi.Add(ctx, int64(1), int64(10), true))
	assert.Empty(t, exec.queries)

	require.NoError(t, bi.Add(ctx, int64(1), int64(11), true))
	require.Len(t, exec.queries, 1)
	assert.Equal(t,
		"INSERT INTO project_skills (project_id, skill_id, is_required) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT DO NOTHING",
		exec.queries[0])
	assert.Len(t, exec.args[0], 6)

	require.NoError(t, bi.Add(ctx, int64(1), int64(12), false))
	require.NoError(t, bi.Flush(ctx))
	require.Len(t, exec.queries, 2)
	assert.Len(t, exec.args[1], 3)

	require.NoError(t, bi.Flush(ctx))
	assert.Len(t, exec.queries, 2)
}

func TestBatchInserter_WrongFieldCount(t *testing.T) {
	bi := NewBatchInserter(&recordingExecer{}, "INSERT INTO t (a, b)", 2, 10)
	assert.Error(t, bi.Add(context.Background(), 1))
}

func TestPostgresErrorHelpers(t *testing.T) {
	unique := &pq.Error{Code: "23505", Constraint: "interactions_user_project_type_key"}
	wrapped := errors.Join(errors.New("insert"), unique)

	assert.True(t, IsUniqueViolation(wrapped))
	assert.False(t, IsForeignKeyViolation(wrapped))
	assert.Equal(t, "interactions_user_project_type_key", ConstraintName(wrapped))

	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.Empty(t, ConstraintName(errors.New("plain")))
}

func TestWithReadSnapshot_UsesRepeatableReadReadOnly(t *testing.T) {
	b := &recordingBeginner{err: errors.New("pool exhausted")}
	called := false

	err := WithReadSnapshot(context.Background(), b, func(*sqlx.Tx) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin transaction")
	assert.False(t, called)
	require.NotNil(t, b.opts)
	assert.Equal(t, sql.LevelRepeatableRead, b.opts.Isolation)
	assert.True(t, b.opts.ReadOnly)
}

func TestWithTransaction_DefaultOptions(t *testing.T) {
	b := &recordingBeginner{err: errors.New("pool exhausted")}
	err := WithTransaction(context.Background(), b, func(*sqlx.Tx) error { return nil })
	require.Error(t, err)
	assert.Nil(t, b.opts)
}
