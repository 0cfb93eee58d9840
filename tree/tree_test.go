package tree

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	tp "github.com/xlab/treeprint"
)

// createTestTree builds
//
//     a
//     ├── b
//     │   ├── d
//     │   └── e
//     └── c
//         └── f
//
func createTestTree() map[string]*Node[string] {
	nodes := make(map[string]*Node[string])
	for _, s := range []string{"a", "b", "c", "d", "e", "f"} {
		nodes[s] = NewNode(s)
	}
	nodes["a"].AddChild(nodes["b"]).AddChild(nodes["c"])
	nodes["b"].AddChild(nodes["d"]).AddChild(nodes["e"])
	nodes["c"].AddChild(nodes["f"])
	return nodes
}

func printTree(n *Node[string]) string {
	p := tp.New()
	p.SetValue(n.Payload)
	var walk func(*Node[string], tp.Tree)
	walk = func(n *Node[string], b tp.Tree) {
		for _, ch := range n.Children() {
			if ch.ChildCount() == 0 {
				b.AddNode(ch.Payload)
			} else {
				walk(ch, b.AddBranch(ch.Payload))
			}
		}
	}
	walk(n, p)
	return p.String()
}

func payloads(nodes []*Node[string]) string {
	s := ""
	for _, n := range nodes {
		s += n.Payload
	}
	return s
}

func TestNodeInsertAndIsolate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.tree")
	defer teardown()
	//
	nodes := createTestTree()
	x := NewNode("x")
	nodes["b"].InsertBefore(x, nodes["e"])
	t.Logf("tree =\n%s", printTree(nodes["a"]))
	if s := payloads(nodes["b"].Children()); s != "dxe" {
		t.Errorf("expected children of b to be 'dxe', are %q", s)
	}
	nodes["d"].Isolate()
	if s := payloads(nodes["b"].Children()); s != "xe" {
		t.Errorf("expected children of b to be 'xe' after isolating d, are %q", s)
	}
	if nodes["d"].Parent() != nil {
		t.Error("expected isolated node to have no parent")
	}
	nodes["c"].InsertChildAt(0, x) // moves x
	if s := payloads(nodes["c"].Children()); s != "xf" {
		t.Errorf("expected children of c to be 'xf', are %q", s)
	}
	if nodes["b"].ChildCount() != 1 {
		t.Errorf("expected b to have 1 child left, has %d", nodes["b"].ChildCount())
	}
}

func TestNodeSiblings(t *testing.T) {
	nodes := createTestTree()
	if nodes["d"].NextSibling() != nodes["e"] {
		t.Error("expected e to follow d")
	}
	if nodes["e"].PrevSibling() != nodes["d"] {
		t.Error("expected d to precede e")
	}
	if nodes["e"].NextSibling() != nil || nodes["d"].PrevSibling() != nil {
		t.Error("expected no siblings at the edges")
	}
	if nodes["a"].FirstChild() != nodes["b"] || nodes["a"].LastChild() != nodes["c"] {
		t.Error("first/last child of a are wrong")
	}
	if !nodes["a"].Contains(nodes["f"]) || nodes["b"].Contains(nodes["f"]) {
		t.Error("containment of f is wrong")
	}
	if p := fmt.Sprint(nodes["f"].Path()); p != "[1 0]" {
		t.Errorf("expected path of f to be [1 0], is %s", p)
	}
}

func TestWalkerDescendents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.tree")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	nodes := createTestTree()
	leafs, err := NewWalker(nodes["a"]).DescendentsWith(isLeaf).Promise()()
	if err != nil {
		t.Fatal(err)
	}
	if s := payloads(leafs); s != "def" {
		t.Errorf("expected leafs in document order to be 'def', are %q", s)
	}
	ancestors, _ := NewWalker(nodes["a"]).DescendentsWith(isLeaf).AncestorWith(isInner).Promise()()
	if s := payloads(ancestors); s != "bc" {
		t.Errorf("expected inner ancestors of leafs to be 'bc', are %q", s)
	}
}

func isLeaf(test *Node[string], _ *Node[string]) (*Node[string], error) {
	if test.ChildCount() == 0 {
		return test, nil
	}
	return nil, nil
}

func isInner(test *Node[string], _ *Node[string]) (*Node[string], error) {
	if test.ChildCount() > 0 && test.Parent() != nil {
		return test, nil
	}
	return nil, nil
}

func TestWalkerAncestor(t *testing.T) {
	nodes := createTestTree()
	isA := func(test *Node[string], _ *Node[string]) (*Node[string], error) {
		if test.Payload == "a" {
			return test, nil
		}
		return nil, nil
	}
	anc, err := NewWalker(nodes["f"]).AncestorWith(isA).Promise()()
	if err != nil || len(anc) != 1 || anc[0] != nodes["a"] {
		t.Errorf("expected to find a as ancestor of f, got %v (%v)", anc, err)
	}
	stop := errors.New("stop")
	anc, err = NewWalker(nodes["f"]).AncestorWith(func(test, _ *Node[string]) (*Node[string], error) {
		return nil, stop
	}).Promise()()
	if err != stop || len(anc) != 0 {
		t.Errorf("expected predicate error to end the search, got %v (%v)", anc, err)
	}
}

func TestWalkerTopDown(t *testing.T) {
	nodes := createTestTree()
	var order string
	_, err := NewWalker(nodes["a"]).TopDown(func(n, parent *Node[string], pos int) (*Node[string], error) {
		order += n.Payload
		return n, nil
	}).Promise()()
	if err != nil {
		t.Fatal(err)
	}
	if order != "abdecf" {
		t.Errorf("expected top-down order 'abdecf', got %q", order)
	}
}

func TestWalkerEmptyAndPromised(t *testing.T) {
	var w *Walker[string]
	if _, err := w.DescendentsWith(isLeaf).Promise()(); err != ErrEmptyTree {
		t.Errorf("expected ErrEmptyTree for nil walker, got %v", err)
	}
	nodes := createTestTree()
	w = NewWalker(nodes["a"])
	w.Promise()
	if _, err := w.DescendentsWith(isLeaf).Promise()(); err != ErrNoMoreFiltersAccepted {
		t.Errorf("expected walker to refuse filters after promise, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	nodes := createTestTree()
	got := Classify(nodes["a"], func(n *Node[string]) Verdict {
		switch n.Payload {
		case "b":
			return Reject
		case "c":
			return Skip
		}
		return Accept
	})
	if s := payloads(got); s != "f" {
		t.Errorf("expected classification to yield 'f', got %q", s)
	}
	got = Classify(nodes["a"], func(n *Node[string]) Verdict { return Accept })
	if s := payloads(got); s != "bdecf" {
		t.Errorf("expected classification to yield 'bdecf', got %q", s)
	}
}
