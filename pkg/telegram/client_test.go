package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_EmptyTokenIsNop(t *testing.T) {
	notifier, err := NewClient("", 0)
	require.NoError(t, err)
	assert.IsType(t, nopNotifier{}, notifier)
	assert.NoError(t, notifier.SendMessage("hello"))
}
