package clock_test

import (
	"testing"
	"time"

	"hireable-backend/internal/clock"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer(t *testing.T) {
	t.Run("Only the last call in a burst runs", func(t *testing.T) {
		c := clock.NewManual(time.Unix(0, 0))
		d := clock.NewDebouncer(c, 500*time.Millisecond)

		var got []string
		d.Trigger(func() { got = append(got, "a") })
		c.Advance(200 * time.Millisecond)
		d.Trigger(func() { got = append(got, "b") })
		c.Advance(400 * time.Millisecond)
		assert.Empty(t, got)

		c.Advance(100 * time.Millisecond)
		assert.Equal(t, []string{"b"}, got)
		assert.Equal(t, 0, c.Pending())
	})

	t.Run("Cancel drops the pending call", func(t *testing.T) {
		c := clock.NewManual(time.Unix(0, 0))
		d := clock.NewDebouncer(c, time.Second)
		fired := false
		d.Trigger(func() { fired = true })
		d.Cancel()
		c.Advance(2 * time.Second)
		assert.False(t, fired)
	})
}

func TestManualTicker(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))
	tk := c.NewTicker(time.Second)
	c.Advance(3 * time.Second)
	assert.Len(t, tk.C(), 3)

	tk.Stop()
	c.Advance(3 * time.Second)
	assert.Len(t, tk.C(), 3)
}
