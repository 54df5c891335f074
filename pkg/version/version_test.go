package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
	assert.NotEmpty(t, GetCommit())

	v, err := Semver()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v.Major())
	assert.Equal(t, "dev", v.Prerelease())
}
