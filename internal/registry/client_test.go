package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/pkg/testutil"
)

func TestMockClientState(t *testing.T) {
	ctx := context.Background()

	testutil.Given(t, "a name the registry has never seen", func(t *testing.T) {
		client := NewMockClient(0)

		state, err := client.State(ctx, "fresh.gov")
		require.NoError(t, err)
		assert.Equal(t, StateUnknown, state)
	})

	testutil.Given(t, "a seeded name", func(t *testing.T) {
		client := NewMockClient(0)
		client.SetState("Live.GOV", StateReady)

		testutil.Then(t, "lookups are case-insensitive", func(t *testing.T) {
			state, err := client.State(ctx, "live.gov")
			require.NoError(t, err)
			assert.Equal(t, StateReady, state)
		})
	})
}

func TestMockClientDelete(t *testing.T) {
	ctx := context.Background()
	client := NewMockClient(0)
	client.SetState("town.gov", StateDNSNeeded)

	testutil.When(t, "deletion is requested", func(t *testing.T) {
		require.NoError(t, client.Delete(ctx, "town.gov"))

		state, err := client.State(ctx, "town.gov")
		require.NoError(t, err)
		assert.Equal(t, StateDeleted, state)
		assert.Contains(t, client.Deleted(), "town.gov")
	})
}
