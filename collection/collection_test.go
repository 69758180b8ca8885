package collection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomzhang/tange/deferred"
)

func testSchedulers() map[string]deferred.Scheduler {
	return map[string]deferred.Scheduler{
		"serial": &deferred.Serial{},
		"pool":   deferred.NewPool(deferred.PoolOptions{Concurrency: 4}),
	}
}

func TestLiftRunIdentity(t *testing.T) {
	for name, sched := range testSchedulers() {
		t.Run(name, func(t *testing.T) {
			v := []int{5, 4, 3, 2, 1}
			out, err := FromSlice(v).Run(context.Background(), sched)
			require.Nil(t, err)
			require.Equal(t, v, out)
		})
	}
}

func TestLiftEmptySlice(t *testing.T) {
	c := FromSlice([]string{})
	require.Equal(t, 1, c.NumPartitions())
	out, err := c.Run(context.Background(), &deferred.Serial{})
	require.Nil(t, err)
	require.Len(t, out, 0)
}

func TestRunZeroPartitions(t *testing.T) {
	c := FromSlices[int]()
	require.Equal(t, 0, c.NumPartitions())
	out, err := c.Run(context.Background(), &deferred.Serial{})
	require.Nil(t, err)
	require.Nil(t, out)
}

func TestMapDoubles(t *testing.T) {
	c := Map(FromSlice([]int{1, 2, 3, 4}), func(x int) int { return x * 2 })
	out, err := c.Run(context.Background(), &deferred.Serial{})
	require.Nil(t, err)
	require.Equal(t, []int{2, 4, 6, 8}, out)
}

func TestMapOrderIndependentOfPartitionCount(t *testing.T) {
	input := []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	expectedSingle, err := Map(FromSlice(input), func(x int) int { return x + 1 }).
		Run(context.Background(), &deferred.Serial{})
	require.Nil(t, err)
	for n := 1; n <= 4; n++ {
		split := FromSlice(input).Split(n)
		out, err := Map(split, func(x int) int { return x + 1 }).
			Run(context.Background(), &deferred.Serial{})
		require.Nil(t, err)
		require.ElementsMatch(t, expectedSingle, out)
		// within each partition, mapping preserves the partition's own order
		require.Equal(t, split.NumPartitions(), Map(split, func(x int) int { return x }).NumPartitions())
	}
}

func TestMapChangesElementType(t *testing.T) {
	c := Map(FromSlice([]int{1, 22, 333}), func(x int) string {
		switch {
		case x < 10:
			return "small"
		case x < 100:
			return "medium"
		}
		return "large"
	})
	out, err := c.Run(context.Background(), &deferred.Serial{})
	require.Nil(t, err)
	require.Equal(t, []string{"small", "medium", "large"}, out)
}

func TestConcatPartitionCounts(t *testing.T) {
	a := FromSlice([]int{1, 2, 3}).Split(2)
	b := FromSlice([]int{4, 5}).Split(3)
	cat := a.Concat(b)
	require.Equal(t, a.NumPartitions()+b.NumPartitions(), cat.NumPartitions())
}

func TestConcatElementMultiset(t *testing.T) {
	a := FromSlices([]int{1, 2}, []int{3})
	b := FromSlice([]int{4, 5})
	out, err := a.Concat(b).Run(context.Background(), &deferred.Serial{})
	require.Nil(t, err)
	require.ElementsMatch(t, []int{1, 2, 3, 4, 5}, out)
}

func TestConcatSharesHandles(t *testing.T) {
	a := FromSlice([]int{1, 2})
	cat := a.Concat(a)
	require.Equal(t, 2, cat.NumPartitions())
	require.Same(t, cat.partitions[0].Task(), cat.partitions[1].Task())
}

func TestTransformationsDoNotMutateSource(t *testing.T) {
	src := FromSlice([]int{3, 1, 2})
	_ = Map(src, func(x int) int { return x * 10 })
	_ = src.Filter(func(x int) bool { return x > 1 })
	out, err := src.Run(context.Background(), &deferred.Serial{})
	require.Nil(t, err)
	require.Equal(t, []int{3, 1, 2}, out)
	require.Equal(t, 1, src.NumPartitions())
}
