package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
)

// ErrInvalidFilter is returned if a filter step is defunct.
var ErrInvalidFilter = errors.New("filter stage is invalid")

// ErrEmptyTree is returned if a Walker is called with an empty tree. Refer to
// the documentation of NewWalker() for details about this scenario.
var ErrEmptyTree = errors.New("cannot walk empty tree")

// ErrNoMoreFiltersAccepted is returned if a client already called Promise(), but tried to
// re-use a walker with another filter.
var ErrNoMoreFiltersAccepted = errors.New("in promise mode; will not accept new filters; use a new walker")

// Walker holds information for operating on trees: finding nodes and
// doing work on them. Clients usually create a Walker for a (sub-)tree
// to search for a selection of nodes matching certain criteria, and
// then perform some operation on this selection.
//
// A Walker will eventually return two client-level values:
// A slice of tree nodes and the last error occured.
// These are accessed through a Promise-function.
//
// A typical usage of a Walker looks like this ("FindNodesAndDoSomething()" is
// a placeholder for a sequence of function calls, see below):
//
//    w := NewWalker(node)
//    futureResult := w.FindNodesAndDoSomething(...).Promise()
//    nodes, err := futureResult()
//
// Every step of the chain is evaluated eagerly; the selection always
// preserves document order.
type Walker[T comparable] struct {
	initial   *Node[T]   // initial node of (sub-)tree
	selection []*Node[T] // current selection
	err       error      // last error occured
	promising bool       // client has called Promise()
}

// NewWalker creates a Walker for the initial node of a (sub-)tree.
// The first subsequent call to a node filter function will have this
// initial node as input.
//
// If initial is nil, NewWalker will return a nil-Walker, resulting
// in a NOP-chain of operations, resulting in an empty set of nodes
// and an error (ErrEmptyTree).
func NewWalker[T comparable](initial *Node[T]) *Walker[T] {
	if initial == nil {
		return nil
	}
	tracer().Debugf("new tree-walker, initial node = %v", initial)
	return &Walker[T]{initial: initial, selection: []*Node[T]{initial}}
}

// Promise terminates a chain of filters.
// Clients will call the Promise (which is of function type) to receive
// a slice of nodes and a possible error value.
func (w *Walker[T]) Promise() func() ([]*Node[T], error) {
	if w == nil {
		// empty Walker => return nil set and an error
		return func() ([]*Node[T], error) {
			return nil, ErrEmptyTree
		}
	}
	w.promising = true
	selection, err := w.selection, w.err
	return func() ([]*Node[T], error) {
		return selection, err
	}
}

// step applies a selection function to every selected node, collecting
// the results without duplicates.
func (w *Walker[T]) step(f func(*Node[T], func(*Node[T])) error) *Walker[T] {
	if w.promising {
		w.err = ErrNoMoreFiltersAccepted
		return w
	}
	if w.err != nil {
		return w
	}
	seen := make(map[*Node[T]]struct{}, len(w.selection))
	var next []*Node[T]
	push := func(n *Node[T]) {
		if _, dup := seen[n]; !dup {
			seen[n] = struct{}{}
			next = append(next, n)
		}
	}
	for _, node := range w.selection {
		if err := f(node, push); err != nil {
			w.err = err
			break
		}
	}
	w.selection = next
	return w
}

// ----------------------------------------------------------------------

// Predicate is a function type to match against nodes of a tree.
// Is is used as an argument for various Walker functions to
// collect a selection of nodes.
// test is the node under test, node is the input node.
type Predicate[T comparable] func(test *Node[T], node *Node[T]) (match *Node[T], err error)

// ----------------------------------------------------------------------

// AncestorWith finds the nearest ancestor matching the given predicate.
// The search does not include the start node.
//
// If w is nil, AncestorWith will return nil.
func (w *Walker[T]) AncestorWith(predicate Predicate[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if predicate == nil {
		w.err = ErrInvalidFilter
		return w
	}
	return w.step(func(node *Node[T], push func(*Node[T])) error {
		for anc := node.Parent(); anc != nil; anc = anc.Parent() {
			matchedNode, err := predicate(anc, node)
			if err != nil {
				return err
			}
			if matchedNode != nil {
				push(matchedNode)
				return nil
			}
		}
		return nil // no matching ancestor found, not an error
	})
}

// DescendentsWith finds descendents matching a predicate, in document order.
// The search does not include the start node.
//
// If w is nil, DescendentsWith will return nil.
func (w *Walker[T]) DescendentsWith(predicate Predicate[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if predicate == nil {
		w.err = ErrInvalidFilter
		return w
	}
	return w.step(func(node *Node[T], push func(*Node[T])) error {
		return descendentsWith(node, predicate, push)
	})
}

func descendentsWith[T comparable](node *Node[T], predicate Predicate[T], push func(*Node[T])) error {
	for _, ch := range node.Children() {
		matchedNode, err := predicate(ch, node)
		tracer().Debugf("Predicate for node %s returned: %v, err=%v", ch, matchedNode, err)
		if err != nil {
			return err // do not descend further
		}
		if matchedNode != nil {
			push(matchedNode)
		}
		if err = descendentsWith(ch, predicate, push); err != nil {
			return err
		}
	}
	return nil
}

// Action is a function type to operate on tree nodes.
// Resulting nodes will be part of the selection, if no error occured.
type Action[T comparable] func(n *Node[T], parent *Node[T], position int) (*Node[T], error)

// TopDown traverses a tree starting at (and including) the selected nodes.
// The traversal guarantees that parents are always processed before
// their children.
//
// If the action function returns an error for a node,
// descending the branch below this node is aborted, and the error
// is reported by the promise.
//
// If w is nil, TopDown will return nil.
func (w *Walker[T]) TopDown(action Action[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if action == nil {
		w.err = ErrInvalidFilter
		return w
	}
	return w.step(func(node *Node[T], push func(*Node[T])) error {
		var position int
		parent := node.Parent()
		if parent != nil {
			position = parent.IndexOfChild(node)
		}
		return topDown(node, parent, position, action, push)
	})
}

func topDown[T comparable](node, parent *Node[T], position int, action Action[T], push func(*Node[T])) error {
	result, err := action(node, parent, position)
	tracer().Debugf("Action for node %s returned: %v, err=%v", node, result, err)
	if err != nil {
		return err
	}
	if result != nil {
		push(result)
	}
	for i, ch := range node.Children() {
		if err = topDown(ch, node, i, action, push); err != nil {
			return err
		}
	}
	return nil
}
