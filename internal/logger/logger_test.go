package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerIsUsable(t *testing.T) {
	require.NotNil(t, Log)
	Log.Info("discarded")
}

func TestInitWithLevel(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	require.NoError(t, InitWithLevel("debug", true))
	assert.NotSame(t, prev, Log)
	assert.True(t, Log.Core().Enabled(-1))
}

func TestInitWithLevelRejectsUnknownLevel(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	err := InitWithLevel("loud", false)
	assert.Error(t, err)
	assert.Same(t, prev, Log)
}
