package deferred

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tomzhang/tange/stats"
)

func TestPoolMatchesSerial(t *testing.T) {
	defer goleak.VerifyNone(t)
	build := func() *Deferred[int] {
		ds := make([]*Deferred[int], 9)
		for i := range ds {
			ds[i] = Apply(Lift(i), func(x int) int { return x * x })
		}
		return TreeReduce(ds, func(x, y int) int { return x + y })
	}
	serialV, err := Evaluate(context.Background(), &Serial{}, build())
	require.Nil(t, err)
	poolV, err := Evaluate(context.Background(), NewPool(PoolOptions{Concurrency: 4}), build())
	require.Nil(t, err)
	require.Equal(t, serialV, poolV)
}

func TestPoolSharedNodeComputedOnce(t *testing.T) {
	defer goleak.VerifyNone(t)
	var computed int64
	base := Apply(Lift(1), func(x int) int {
		atomic.AddInt64(&computed, 1)
		return x + 1
	})
	fanout := make([]*Deferred[int], 8)
	for i := range fanout {
		scale := i + 1
		fanout[i] = Apply(base, func(x int) int { return x * scale })
	}
	root := TreeReduce(fanout, func(x, y int) int { return x + y })
	v, err := Evaluate(context.Background(), NewPool(PoolOptions{Concurrency: 8}), root)
	require.Nil(t, err)
	require.Equal(t, 2*(1+2+3+4+5+6+7+8), v)
	require.Equal(t, int64(1), atomic.LoadInt64(&computed))
}

func TestPoolPanicAbortsExecution(t *testing.T) {
	defer goleak.VerifyNone(t)
	ds := make([]*Deferred[int], 4)
	for i := range ds {
		i := i
		ds[i] = Apply(Lift(i), func(x int) int {
			if i == 2 {
				panic("partition failure")
			}
			return x
		})
	}
	root := TreeReduce(ds, func(x, y int) int { return x + y })
	_, err := Evaluate(context.Background(), NewPool(PoolOptions{Concurrency: 2}), root)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "partition failure")
}

func TestPoolContextCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := Apply(Lift(1), func(x int) int { return x })
	_, err := Evaluate(ctx, NewPool(PoolOptions{Concurrency: 2}), d)
	require.NotNil(t, err)
}

func TestPoolDefaultConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := NewPool(PoolOptions{})
	v, err := Evaluate(context.Background(), p, Lift("ok"))
	require.Nil(t, err)
	require.Equal(t, "ok", v)
}

func TestPoolRecordsStats(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := NewPool(PoolOptions{Concurrency: 2, Stats: stats.NoopRecorder()})
	d := Apply(Lift(2), func(x int) int { return x * 2 })
	v, err := Evaluate(context.Background(), p, d)
	require.Nil(t, err)
	require.Equal(t, 4, v)
}
