package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "ads:dashboard:stats", Key("dashboard", "stats"))
	assert.Equal(t, "ads", Key())
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New(context.Background(), "not a url")
	require.Error(t, err)
}
