package adapters

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_PGXAdapter_ReadsAndWritesUseTheSamePool(t *testing.T) {
	// arrange
	pool, err := pgxpool.New(context.Background(), "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	adapter := NewPGXAdapter(pool)

	// act
	_, queryErr := adapter.Query(context.Background(), "SELECT 1")
	_, beginErr := adapter.Begin(context.Background())

	// assert
	assert.Same(t, pool, adapter.pool)
	assert.Error(t, queryErr)
	assert.Error(t, beginErr)
}
