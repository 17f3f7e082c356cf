package clock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	clockv1 "git.fiblab.net/sim/protos/v2/go/city/clock/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/clock"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/config"
)

func TestClockStep(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 10, Total: 3, Interval: 0.5})
	assert.Equal(t, 5*time.Second, c.Time())
	assert.True(t, c.Step())
	assert.True(t, c.Step())
	assert.Equal(t, 6*time.Second, c.Time())
	assert.True(t, c.Done())
	assert.False(t, c.Step())
	assert.Equal(t, int32(12), c.InternalStep)
}

func TestClockUnbounded(t *testing.T) {
	c := clock.New(config.ControlStep{Interval: 1})
	for i := 0; i < 100; i++ {
		require.True(t, c.Step())
	}
	assert.False(t, c.Done())
}

func TestClockString(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 3723, Interval: 1})
	assert.Equal(t, "01:02:03", c.String())
}

func TestClockNow(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 4, Interval: 0.25})
	res, err := c.Now(context.Background(), connect.NewRequest(&clockv1.NowRequest{}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Msg.T)
}

func TestClockNowConcurrentWithStep(t *testing.T) {
	c := clock.New(config.ControlStep{Interval: 1})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			c.Step()
		}
	}()
	last := 0.0
	for i := 0; i < 1000; i++ {
		res, err := c.Now(context.Background(), connect.NewRequest(&clockv1.NowRequest{}))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Msg.T, last)
		last = res.Msg.T
	}
	wg.Wait()
	assert.Equal(t, 1000.0, c.PublishedT())
}
