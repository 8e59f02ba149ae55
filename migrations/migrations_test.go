package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Up(t *testing.T) {
	ms, err := Load(Up)
	require.NoError(t, err)
	require.Len(t, ms, 2)

	assert.Equal(t, "000001", ms[0].Version)
	assert.Equal(t, "000002", ms[1].Version)
	assert.Contains(t, ms[0].SQL, "CREATE TABLE IF NOT EXISTS authors")
	assert.Contains(t, ms[1].SQL, "entry_tags")
}

func TestLoad_DownIsReversed(t *testing.T) {
	ms, err := Load(Down)
	require.NoError(t, err)
	require.Len(t, ms, 2)

	assert.Equal(t, "000002", ms[0].Version)
	assert.Equal(t, "000001", ms[1].Version)
}

func TestLoad_UnknownDirection(t *testing.T) {
	_, err := Load("sideways")
	assert.Error(t, err)
}
