package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stafflow/stafflow/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider_List(t *testing.T) {
	provider := catalog.NewStaticProvider(catalog.WithLatency(0))

	actions, err := provider.List(t.Context())
	require.NoError(t, err)
	require.Len(t, actions, 5)

	assert.Equal(t, "send_email", actions[0].ID)
	assert.Equal(t, "Send Email", actions[0].Label)
	assert.Equal(t, []string{"to", "subject"}, actions[0].Params)

	assert.Equal(t, "create_ticket", actions[4].ID)
	assert.Equal(t, []string{"category", "priority", "description"}, actions[4].Params)
}

func TestStaticProvider_List_ReturnsCopy(t *testing.T) {
	provider := catalog.NewStaticProvider(catalog.WithLatency(0))

	first, err := provider.List(t.Context())
	require.NoError(t, err)

	first[0].ID = "tampered"

	second, err := provider.List(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "send_email", second[0].ID)
}

func TestStaticProvider_List_CancelledContext(t *testing.T) {
	provider := catalog.NewStaticProvider(catalog.WithLatency(time.Minute))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := provider.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStaticProvider_CustomActions(t *testing.T) {
	provider := catalog.NewStaticProvider(
		catalog.WithLatency(0),
		catalog.WithActions([]catalog.Action{{ID: "archive", Label: "Archive", Params: []string{"reason"}}}),
	)

	actions, err := provider.List(t.Context())
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "archive", actions[0].ID)
}

func TestLookup(t *testing.T) {
	actions := catalog.DefaultActions()

	action, ok := catalog.Lookup(actions, "notify_slack")
	require.True(t, ok)
	assert.Equal(t, "Notify Slack Channel", action.Label)

	_, ok = catalog.Lookup(actions, "unknown")
	assert.False(t, ok)
}
