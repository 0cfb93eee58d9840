package tree

// Verdict is the outcome of classifying a node during a traversal.
type Verdict int8

const (
	// Accept includes the node in the result and descends into its children.
	Accept Verdict = iota
	// Skip excludes the node but descends into its children.
	Skip
	// Reject excludes the node together with its whole subtree.
	Reject
)

func (v Verdict) String() string {
	switch v {
	case Accept:
		return "accept"
	case Skip:
		return "skip"
	case Reject:
		return "reject"
	}
	return "<unknown verdict>"
}

// Classifier decides on a node's fate during Classify.
type Classifier[T comparable] func(*Node[T]) Verdict

// Classify walks the subtree below root depth-first in document order and
// returns every node the classifier accepts. root itself is not classified.
func Classify[T comparable](root *Node[T], classifier Classifier[T]) []*Node[T] {
	if root == nil || classifier == nil {
		return nil
	}
	var result []*Node[T]
	var walk func(*Node[T])
	walk = func(n *Node[T]) {
		for _, ch := range n.Children() {
			switch classifier(ch) {
			case Accept:
				result = append(result, ch)
				walk(ch)
			case Skip:
				walk(ch)
			}
		}
	}
	walk(root)
	return result
}
