package sortx

import (
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type row struct {
	name string
	n    int
}

func byN(r row) int { return r.n }

func TestMergeSort_AscendingIsStable(t *testing.T) {
	in := []row{{"b", 1}, {"a", 1}, {"c", 0}}

	got := MergeSort(in, byN, false)

	want := []row{{"c", 0}, {"b", 1}, {"a", 1}}
	assert.Empty(t, cmp.Diff(want, got, cmp.AllowUnexported(row{})))
}

func TestMergeSort_DescendingIsStable(t *testing.T) {
	in := []row{{"b", 1}, {"a", 1}, {"c", 0}, {"d", 2}}

	got := MergeSort(in, byN, true)

	want := []row{{"d", 2}, {"b", 1}, {"a", 1}, {"c", 0}}
	assert.Empty(t, cmp.Diff(want, got, cmp.AllowUnexported(row{})))
}

func TestReverseSorted_LegacyOrder(t *testing.T) {
	in := []row{{"b", 1}, {"a", 1}, {"c", 0}}

	got := ReverseSorted(in, byN)

	want := []row{{"a", 1}, {"b", 1}, {"c", 0}}
	assert.Empty(t, cmp.Diff(want, got, cmp.AllowUnexported(row{})))
}

func TestMergeSort_DoesNotModifyInput(t *testing.T) {
	in := []int{3, 1, 2}
	_ = MergeSort(in, func(i int) int { return i }, false)
	assert.Equal(t, []int{3, 1, 2}, in)
}

func TestMergeSort_EdgeSizes(t *testing.T) {
	id := func(s string) string { return s }
	assert.Empty(t, MergeSort([]string{}, id, false))
	assert.Empty(t, MergeSort[string, string](nil, id, true))
	assert.Equal(t, []string{"x"}, MergeSort([]string{"x"}, id, true))
}

func TestMergeSort_Idempotent(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	in := make([]row, 200)
	for i := range in {
		in[i] = row{name: string(rune('a' + i%26)), n: r.Intn(20)}
	}

	for _, desc := range []bool{false, true} {
		once := MergeSort(in, byN, desc)
		twice := MergeSort(once, byN, desc)
		assert.Empty(t, cmp.Diff(once, twice, cmp.AllowUnexported(row{})))
	}
}

func TestMergeSort_MatchesStdlibStableSort(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	in := make([]row, 500)
	for i := range in {
		in[i] = row{name: string(rune('A' + i%26)), n: r.Intn(50)}
	}

	want := slices.Clone(in)
	sort.SliceStable(want, func(i, j int) bool { return want[i].n < want[j].n })
	assert.Empty(t, cmp.Diff(want, MergeSort(in, byN, false), cmp.AllowUnexported(row{})))

	wantDesc := slices.Clone(in)
	sort.SliceStable(wantDesc, func(i, j int) bool { return wantDesc[i].n > wantDesc[j].n })
	assert.Empty(t, cmp.Diff(wantDesc, MergeSort(in, byN, true), cmp.AllowUnexported(row{})))
}

func TestSortFunc_StringKeys(t *testing.T) {
	got := MergeSort([]string{"eth", "BTC", "ada"}, func(s string) string { return s }, false)
	assert.Equal(t, []string{"BTC", "ada", "eth"}, got)
}
