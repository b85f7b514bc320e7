package orggraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

// 1 ← 2 ← 4
//   ← 3 ← 5
//         6 (isolated)
func testGraph() *Graph {
	return Build([]Node{
		{ID: 1},
		{ID: 2, ReportsTo: ptr(1)},
		{ID: 3, ReportsTo: ptr(1)},
		{ID: 4, ReportsTo: ptr(2)},
		{ID: 5, ReportsTo: ptr(3)},
		{ID: 6},
	})
}

func TestSubtree_IncludesRootAndDescendants(t *testing.T) {
	g := testGraph()
	require.Equal(t, []int64{1, 2, 3, 4, 5}, g.Subtree(1).Slice())
	require.Equal(t, []int64{2, 4}, g.Subtree(2).Slice())
	require.Equal(t, []int64{5}, g.Subtree(5).Slice())
}

func TestSubtree_UnknownRootIsEmpty(t *testing.T) {
	g := testGraph()
	require.Equal(t, 0, g.Subtree(99).Len())
}

func TestSubtree_CycleSafe(t *testing.T) {
	g := Build([]Node{
		{ID: 1, ReportsTo: ptr(2)},
		{ID: 2, ReportsTo: ptr(1)},
	})
	require.Equal(t, []int64{1, 2}, g.Subtree(1).Slice())
}

func TestDirectReports(t *testing.T) {
	g := testGraph()
	require.Equal(t, []int64{2, 3}, g.DirectReports(1))
	require.Empty(t, g.DirectReports(6))
}

func TestIDSet_Intersect(t *testing.T) {
	a := NewIDSet(1, 2, 3, 4)
	b := NewIDSet(3, 4, 5)
	require.Equal(t, []int64{3, 4}, a.Intersect(b).Slice())
	require.Equal(t, []int64{3, 4}, b.Intersect(a).Slice())
	require.Equal(t, 0, a.Intersect(NewIDSet()).Len())
}
