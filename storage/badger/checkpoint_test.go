package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hemeroteca/core"
)

func TestCheckpointRepository(t *testing.T) {
	_, _, checkpoints, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	got, err := checkpoints.LoadCheckpoint(ctx, "reembed")
	require.NoError(t, err)
	assert.Nil(t, got)

	cp := &core.Checkpoint{ProcessorType: "reembed", LastID: 42, Processed: 7}
	require.NoError(t, checkpoints.SaveCheckpoint(ctx, cp))
	assert.False(t, cp.UpdatedAt.IsZero())

	got, err = checkpoints.LoadCheckpoint(ctx, "reembed")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, core.ID(42), got.LastID)
	assert.Equal(t, 7, got.Processed)

	other, err := checkpoints.LoadCheckpoint(ctx, "other")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, checkpoints.DeleteCheckpoint(ctx, "reembed"))
	got, err = checkpoints.LoadCheckpoint(ctx, "reembed")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, checkpoints.DeleteCheckpoint(ctx, "never-saved"))
}
