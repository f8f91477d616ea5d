package astar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeList_FIFOOrder(t *testing.T) {
	l := newNodeList()
	l.PushBack(Node{Position: Pt(0, 0)})
	l.PushBack(Node{Position: Pt(1, 0)})
	l.PushBack(Node{Position: Pt(2, 0)})

	assert.Equal(t, []Point{{0, 0}, {1, 0}, {2, 0}}, l.Positions())

	n, ok := l.PopFront()
	require.True(t, ok)
	assert.Equal(t, Pt(0, 0), n.Position)
	_, found := l.Find(Pt(0, 0))
	assert.False(t, found)
	assert.Equal(t, 2, l.Len())

	back, ok := l.Back()
	require.True(t, ok)
	assert.Equal(t, Pt(2, 0), back.Position)
}

func TestNodeList_PushBackReplacesSamePosition(t *testing.T) {
	l := newNodeList()
	l.PushBack(Node{Position: Pt(0, 0), G: 5})
	l.PushBack(Node{Position: Pt(1, 0)})
	l.PushBack(Node{Position: Pt(0, 0), G: 2})

	assert.Equal(t, []Point{{1, 0}, {0, 0}}, l.Positions())
	n, ok := l.Find(Pt(0, 0))
	require.True(t, ok)
	assert.Equal(t, 2, n.G)
}

func TestNodeList_EmptyAndBackward(t *testing.T) {
	l := newNodeList()
	_, ok := l.PopFront()
	assert.False(t, ok)
	_, ok = l.Back()
	assert.False(t, ok)

	l.PushBack(Node{Position: Pt(0, 0)})
	l.PushBack(Node{Position: Pt(0, 1)})
	l.PushBack(Node{Position: Pt(0, 2)})

	var seen []Point
	l.Backward(func(n Node) bool {
		seen = append(seen, n.Position)
		return n.Position != Pt(0, 1)
	})
	assert.Equal(t, []Point{{0, 2}, {0, 1}}, seen)
}

func TestRegistryAdmit(t *testing.T) {
	p := Pt(2, 3)

	tests := []struct {
		name       string
		openF      int // -1 when absent
		closedF    int // -1 when absent
		candidateF int
		wantAdmit  bool
		wantOpen   bool // p still in open afterwards
		wantClosed bool // p still in closed afterwards
	}{
		{"unseen", -1, -1, 7, true, false, false},
		{"open lower keeps open", 5, -1, 6, false, true, false},
		{"open tie goes to candidate", 5, -1, 5, true, false, false},
		{"open higher replaced", 5, -1, 4, true, false, false},
		{"closed lower keeps closed", -1, 5, 6, false, false, true},
		{"closed tie goes to candidate", -1, 5, 5, true, false, false},
		{"closed higher replaced", -1, 5, 3, true, false, false},
		// a closed match ends the lookup, the open entry is left alone
		{"closed consulted first", 1, 9, 9, true, true, false},
		{"closed rejection ignores open", 9, 1, 5, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRegistry()
			if tt.openF >= 0 {
				r.open.PushBack(Node{Position: p, G: tt.openF})
			}
			if tt.closedF >= 0 {
				r.closed.PushBack(Node{Position: p, G: tt.closedF})
			}

			assert.Equal(t, tt.wantAdmit, r.admit(p, tt.candidateF))

			_, inOpen := r.open.Find(p)
			_, inClosed := r.closed.Find(p)
			assert.Equal(t, tt.wantOpen, inOpen, "open membership")
			assert.Equal(t, tt.wantClosed, inClosed, "closed membership")
		})
	}
}

func TestNodeF(t *testing.T) {
	assert.Equal(t, 7, Node{G: 3, H: 4}.F())
}

func TestBuildPath_FollowsParentsBackward(t *testing.T) {
	closed := newNodeList()
	start := Pt(0, 0)
	closed.PushBack(Node{Position: start})
	closed.PushBack(Node{Position: Pt(1, 0), Parent: start})
	closed.PushBack(Node{Position: Pt(0, 1), Parent: start})
	closed.PushBack(Node{Position: Pt(1, 1), Parent: Pt(0, 1)})
	closed.PushBack(Node{Position: Pt(1, 2), Parent: Pt(1, 1)})

	path := buildPath(closed, start, Pt(2, 2))
	assert.Equal(t, []Point{{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 2}}, path)
}

func TestBuildPath_GoalNextToStart(t *testing.T) {
	closed := newNodeList()
	closed.PushBack(Node{Position: Pt(3, 3)})

	assert.Equal(t, []Point{{3, 3}, {4, 3}}, buildPath(closed, Pt(3, 3), Pt(4, 3)))
}

func TestPoint(t *testing.T) {
	assert.Equal(t, Pt(3, 1), Pt(1, 2).Add(Pt(2, -1)))
	assert.True(t, Pt(1, 2).Equal(Pt(1, 2)))
	assert.False(t, Pt(1, 2).Equal(Pt(2, 1)))
	assert.Equal(t, "(1,-2)", Pt(1, -2).String())
	assert.True(t, Adjacent(Pt(1, 1), Pt(1, 0)))
	assert.False(t, Adjacent(Pt(1, 1), Pt(2, 2)))
	assert.False(t, Adjacent(Pt(1, 1), Pt(1, 1)))
	assert.Equal(t, [4]Point{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}, Offsets)
}
