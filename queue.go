package astar

import "container/list"

// Node is one discovered cell annotated with its bookkeeping.
//
// Parent is a coordinate, not a reference: the path is rebuilt by looking the
// parent up again among the expanded nodes.
type Node struct {
	Position Point
	Parent   Point
	G        int // steps from the start
	H        int // squared distance to the goal
}

// F is the total estimate used by the admission policy.
func (n Node) F() int { return n.G + n.H }

// nodeList is an ordered sequence of nodes holding at most one node per position.
type nodeList struct {
	items *list.List
	index map[Point]*list.Element
}

func newNodeList() *nodeList {
	return &nodeList{items: list.New(), index: make(map[Point]*list.Element)}
}

func (l *nodeList) Len() int { return l.items.Len() }

// PushBack appends n, dropping any older node at the same position.
func (l *nodeList) PushBack(n Node) {
	l.Remove(n.Position)
	l.index[n.Position] = l.items.PushBack(n)
}

// PopFront removes and returns the oldest node.
func (l *nodeList) PopFront() (Node, bool) {
	front := l.items.Front()
	if front == nil {
		return Node{}, false
	}
	n := l.items.Remove(front).(Node)
	delete(l.index, n.Position)
	return n, true
}

func (l *nodeList) Find(p Point) (Node, bool) {
	element, ok := l.index[p]
	if !ok {
		return Node{}, false
	}
	return element.Value.(Node), true
}

func (l *nodeList) Remove(p Point) {
	if element, ok := l.index[p]; ok {
		l.items.Remove(element)
		delete(l.index, p)
	}
}

func (l *nodeList) Back() (Node, bool) {
	back := l.items.Back()
	if back == nil {
		return Node{}, false
	}
	return back.Value.(Node), true
}

// Backward calls visit from the newest node to the oldest until visit returns false.
func (l *nodeList) Backward(visit func(Node) bool) {
	for element := l.items.Back(); element != nil; element = element.Prev() {
		if !visit(element.Value.(Node)) {
			return
		}
	}
}

// Positions lists node positions oldest first.
func (l *nodeList) Positions() []Point {
	positions := make([]Point, 0, l.items.Len())
	for element := l.items.Front(); element != nil; element = element.Next() {
		positions = append(positions, element.Value.(Node).Position)
	}
	return positions
}

// registry is the working memory of one search: pending nodes in discovery
// order and expanded nodes in expansion order.
type registry struct {
	open   *nodeList
	closed *nodeList
}

func newRegistry() *registry {
	return &registry{open: newNodeList(), closed: newNodeList()}
}

// admit decides whether a node for p with total estimate f may be queued.
// A known node with a strictly lower total keeps its place and p is rejected.
// Otherwise the known node is dropped and p is accepted, so ties go to the newcomer.
// The closed set is consulted first; a match there ends the lookup.
func (r *registry) admit(p Point, f int) bool {
	if known, ok := r.closed.Find(p); ok {
		if known.F() < f {
			return false
		}
		r.closed.Remove(p)
		return true
	}
	if known, ok := r.open.Find(p); ok {
		if known.F() < f {
			return false
		}
		r.open.Remove(p)
		return true
	}
	return true
}
