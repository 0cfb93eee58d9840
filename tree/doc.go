/*
Package tree implements an all-purpose mutable tree type.

The tree is the substrate for the document object model of package dom.
Nodes carry a payload of a type parameter and maintain an ordered slice of
children. Mutation is strictly structural: children may be appended,
inserted before a sibling, or isolated from their parent.

Walking

Clients select nodes with a small set of chainable operations, similar in
concept to JQuery:

   AncestorWith(predicate)      // find ancestor with a given predicate
   DescendentsWith(predicate)   // find descendents with a given predicate
   TopDown(action)              // traverse all nodes top down (depth first)

The chain is terminated by a call to Promise(), which returns the selection.
Walks are performed synchronously on the calling goroutine; document
operations are never executed concurrently.

Classifying

For traversals which have to decide on every node wether to include it,
skip it or prune the subtree below it, Classify accepts a three-way
Verdict function. This mirrors the accept/reject/skip discipline of
DOM node filters.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import "github.com/npillmayer/schuko/tracing"

// tracer will return a tracer. We are tracing to 'odf.tree'
func tracer() tracing.Trace {
	return tracing.Select("odf.tree")
}
