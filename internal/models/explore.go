package models

import (
	"errors"
)

// SkipChildren is returned by a VisitFunc to skip the children of the node
// being visited. It is not returned by Explore.
var SkipChildren = errors.New("skip children")

// VisitFunc is called once per node. depth is 0 for the node passed to
// Explore and grows by one per level.
type VisitFunc func(n Node, depth int) error

// Explore walks the tree rooted at e in pre-order: a node is visited before
// its children, and children in sibling order. Entries and separators are
// visited but have nothing to descend into. The first error returned by
// visit, other than SkipChildren, stops the walk and is returned.
func Explore(e Explorable, visit VisitFunc) error {
	err := explore(e, 0, visit)
	if err == SkipChildren {
		return nil
	}
	return err
}

func explore(n Node, depth int, visit VisitFunc) error {
	if err := visit(n, depth); err != nil {
		return err
	}
	e, ok := n.(Explorable)
	if !ok {
		return nil
	}
	for _, child := range e.Contents() {
		err := explore(child, depth+1, visit)
		if err == SkipChildren {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes in the tree rooted at e, e included.
func Count(e Explorable) int {
	n := 0
	_ = Explore(e, func(Node, int) error {
		n++
		return nil
	})
	return n
}
