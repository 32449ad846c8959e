package listing_test

import (
	"context"
	"errors"
	"testing"

	"hireable-backend/internal/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScrollDriver(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads the next page when the sentinel becomes visible", func(t *testing.T) {
		q := new(MockQuery)
		q.On("List", ctx, listing.Filter{}, 12, 12).Return(listing.Page{Items: candidates(12, 2), Total: 14}, nil).Once()
		ctrl := listing.NewController(q, listing.WithLogger(quiet))
		ctrl.ResetOnFilterChange(listing.Page{Items: candidates(0, 12), Total: 14})

		obs := &listing.FakeObserver{}
		d := listing.NewScrollDriver(ctx, ctrl, obs)
		require.True(t, d.Observing())
		require.Len(t, obs.Active(), 1)
		assert.Equal(t, listing.Sentinel, obs.Active()[0].Target)

		obs.FireVisible()
		assert.Len(t, ctrl.Snapshot().Items, 14)
		assert.False(t, d.Observing(), "observation stops once the list is exhausted")
		assert.Equal(t, listing.PromptEnd, d.Prompt())

		obs.FireVisible()
		q.AssertNumberOfCalls(t, "List", 1)
	})

	t.Run("A failed page fetch stops observing", func(t *testing.T) {
		q := new(MockQuery)
		q.On("List", ctx, listing.Filter{}, 12, 12).Return(listing.Page{}, errors.New("upstream timeout")).Once()
		ctrl := listing.NewController(q, listing.WithLogger(quiet))
		ctrl.ResetOnFilterChange(listing.Page{Items: candidates(0, 12), Total: 40})

		obs := &listing.FakeObserver{}
		d := listing.NewScrollDriver(ctx, ctrl, obs)
		obs.FireVisible()

		assert.Len(t, ctrl.Snapshot().Items, 12)
		assert.False(t, d.Observing())
		assert.Empty(t, obs.Active())
		assert.False(t, ctrl.Loading())

		obs.FireVisible()
		q.AssertNumberOfCalls(t, "List", 1)
	})

	t.Run("Filter change tears down the old observation", func(t *testing.T) {
		q := new(MockQuery)
		ctrl := listing.NewController(q, listing.WithLogger(quiet))
		ctrl.ResetOnFilterChange(listing.Page{Items: candidates(0, 12), Total: 40})

		obs := &listing.FakeObserver{}
		listing.NewScrollDriver(ctx, ctrl, obs)
		old := obs.Active()[0]

		require.NoError(t, ctrl.SetFilter(ctx, listing.FieldProfession, "Chef"))
		assert.True(t, old.Disconnected())
		assert.Empty(t, obs.Active(), "nothing to observe until the new first page arrives")

		ctrl.ResetOnFilterChange(listing.Page{Items: candidates(50, 12), Total: 20})
		require.Len(t, obs.Active(), 1)

		// A late callback from the previous generation must not load.
		old.Fire()
		q.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Public mode never observes and asks for a login", func(t *testing.T) {
		q := new(MockQuery)
		ctrl := listing.NewController(q, listing.WithLogger(quiet))
		ctrl.ResetOnFilterChange(listing.Page{Items: candidates(0, 12), Total: 40})

		obs := &listing.FakeObserver{}
		d := listing.NewScrollDriver(ctx, ctrl, obs, listing.ReadOnly())
		assert.False(t, d.Observing())
		assert.Empty(t, obs.Subscriptions())
		assert.Equal(t, listing.PromptLogin, d.Prompt())

		_, err := d.LoadMoreManually(ctx)
		assert.ErrorIs(t, err, listing.ErrLoginRequired)
		q.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Manual control works without viewport observation", func(t *testing.T) {
		q := new(MockQuery)
		q.On("List", ctx, listing.Filter{}, 12, 12).Return(listing.Page{Items: candidates(12, 12), Total: 40}, nil).Once()
		ctrl := listing.NewController(q, listing.WithLogger(quiet))
		ctrl.ResetOnFilterChange(listing.Page{Items: candidates(0, 12), Total: 40})

		d := listing.NewScrollDriver(ctx, ctrl, &listing.FakeObserver{Unavailable: true})
		assert.False(t, d.Observing())
		assert.Equal(t, listing.PromptLoadMore, d.Prompt())

		loaded, err := d.LoadMoreManually(ctx)
		require.NoError(t, err)
		assert.True(t, loaded)
		assert.Len(t, ctrl.Snapshot().Items, 24)
	})

	t.Run("Close disconnects and ignores later resets", func(t *testing.T) {
		ctrl := listing.NewController(new(MockQuery), listing.WithLogger(quiet))
		ctrl.ResetOnFilterChange(listing.Page{Items: candidates(0, 12), Total: 40})
		obs := &listing.FakeObserver{}
		d := listing.NewScrollDriver(ctx, ctrl, obs)

		d.Close()
		assert.Empty(t, obs.Active())
		ctrl.ResetOnFilterChange(listing.Page{Items: candidates(0, 12), Total: 40})
		assert.Empty(t, obs.Active())
	})
}
