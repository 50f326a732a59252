package wizard_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilewizard/internal/wizard"
)

func TestDebouncer_OnlyLatestFires(t *testing.T) {
	d := wizard.NewDebouncer(20 * time.Millisecond)

	var (
		mu    sync.Mutex
		fired []uint64
	)
	run := func(gen uint64) {
		mu.Lock()
		fired = append(fired, gen)
		mu.Unlock()
	}
	d.Schedule(run)
	d.Schedule(run)
	last := d.Schedule(run)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(fired) > 0
	}, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint64{last}, fired)
	assert.True(t, d.Current(last))
}

func TestDebouncer_Cancel(t *testing.T) {
	d := wizard.NewDebouncer(10 * time.Millisecond)

	fired := make(chan uint64, 1)
	gen := d.Schedule(func(g uint64) { fired <- g })
	d.Cancel()

	select {
	case g := <-fired:
		t.Fatalf("cancelled callback fired with gen %d", g)
	case <-time.After(50 * time.Millisecond):
	}
	assert.False(t, d.Current(gen))
}
