package assist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), Config{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewClient_DefaultsModel(t *testing.T) {
	client, err := NewClient(context.Background(), Config{APIKey: "test-key"}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, client.model)
}
