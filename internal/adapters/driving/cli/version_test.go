package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setVersion(t *testing.T, v string) {
	t.Helper()
	original := version
	version = v
	t.Cleanup(func() { version = original })
}

func TestVersionCmd_Standalone(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.True(t, isStandalone(versionCmd))
	assert.False(t, isStandalone(chartCmd))
}

func TestVersionCmd_Full(t *testing.T) {
	setVersion(t, "1.2.0")

	out, err := execute(t, "version", "--short=false")
	require.NoError(t, err)
	assert.Contains(t, out, "jyotish version 1.2.0")
	assert.Contains(t, out, runtime.Version())
}

func TestVersionCmd_Short(t *testing.T) {
	setVersion(t, "dev")

	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
