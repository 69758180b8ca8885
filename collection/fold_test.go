package collection

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomzhang/tange/deferred"
)

func pairsToMap[K comparable, V any](pairs []Pair[K, V]) map[K]V {
	out := make(map[K]V, len(pairs))
	for _, p := range pairs {
		out[p.Key] = p.Value
	}
	return out
}

func TestFoldBySumsPerKey(t *testing.T) {
	input := []string{"apple", "avocado", "banana", "blueberry", "cherry", "apricot"}
	folded := FoldBy(FromSlice(input),
		func(s string) string { return s[:1] },
		func() int { return 0 },
		func(acc int, s string) int { return acc + len(s) },
		func(x, y int) int { return x + y },
	)
	require.Equal(t, 1, folded.NumPartitions())
	out, err := folded.Run(context.Background(), &deferred.Serial{})
	require.Nil(t, err)
	require.Equal(t, map[string]int{
		"a": len("apple") + len("avocado") + len("apricot"),
		"b": len("banana") + len("blueberry"),
		"c": len("cherry"),
	}, pairsToMap(out))
}

// grouped aggregation must not depend on how the input was partitioned
func TestFoldByIndependentOfPartitionCount(t *testing.T) {
	input := []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9}
	expected := map[int]int{}
	for _, v := range input {
		expected[v%3] += v
	}
	for n := 1; n <= 5; n++ {
		folded := FoldBy(FromSlice(input).Split(n),
			func(v int) int { return v % 3 },
			func() int { return 0 },
			func(acc int, v int) int { return acc + v },
			func(x, y int) int { return x + y },
		)
		out, err := folded.Run(context.Background(), &deferred.Serial{})
		require.Nil(t, err)
		require.Equal(t, expected, pairsToMap(out), "wrong aggregate with %d partitions", n)
	}
}

func TestFoldByKeySet(t *testing.T) {
	input := []string{"x", "y", "x", "z"}
	folded := FoldBy(FromSlice(input).Split(2),
		func(s string) string { return s },
		func() int { return 0 },
		func(acc int, _ string) int { return acc + 1 },
		func(x, y int) int { return x + y },
	)
	out, err := folded.Run(context.Background(), &deferred.Serial{})
	require.Nil(t, err)
	keys := make([]string, 0, len(out))
	for _, p := range out {
		keys = append(keys, p.Key)
	}
	require.ElementsMatch(t, []string{"x", "y", "z"}, keys)
}

func TestFoldByZeroPartitions(t *testing.T) {
	folded := FoldBy(FromSlices[string](),
		func(s string) string { return s },
		func() int { return 0 },
		func(acc int, _ string) int { return acc + 1 },
		func(x, y int) int { return x + y },
	)
	require.Equal(t, 0, folded.NumPartitions())
}

func TestFrequencies(t *testing.T) {
	for name, c := range map[string]Collection[string]{
		"one partition":  FromSlice([]string{"a", "b", "a"}),
		"two partitions": FromSlices([]string{"a", "b"}, []string{"a"}),
	} {
		t.Run(name, func(t *testing.T) {
			out, err := Frequencies(c).Run(context.Background(), &deferred.Serial{})
			require.Nil(t, err)
			require.Equal(t, map[string]int{"a": 2, "b": 1}, pairsToMap(out))
		})
	}
}

func TestFrequenciesAfterTransformChain(t *testing.T) {
	lines := []string{"the quick fox", "the lazy dog", "the fox"}
	words := Flatten(Map(FromSlice(lines).Split(2), func(s string) []string {
		return strings.Fields(s)
	}))
	out, err := Frequencies(words).Run(context.Background(), deferred.NewPool(deferred.PoolOptions{Concurrency: 4}))
	require.Nil(t, err)
	require.Equal(t, map[string]int{
		"the": 3, "quick": 1, "fox": 2, "lazy": 1, "dog": 1,
	}, pairsToMap(out))
}
