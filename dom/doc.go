/*
Package dom provides an in-memory document object model for ODF text documents.

Status

Early draft—API may change frequently. Please stay patient.

Overview

The DOM holds the content of an ODF text document (office:body/office:text)
together with its style sections (office:styles, office:automatic-styles).
Elements are identified by their qualified names using the conventional
ODF prefixes, e.g. "text:p" or "style:list-level-properties". Namespace
URIs are not tracked; prefixes are assumed to be bound canonically.

Tree Implementation

We implement the DOM on top of a general purpose tree type
(package tree). In Go we resort to composition, thus including a
generic tree node in every DOM node. The tree node's payload links back to
the DOM node, which lets us navigate from generic tree nodes to DOM nodes
without type assertions.

Positions within the DOM are boundary points (node, offset), ordered as
in the W3C DOM range specification. Ranges of boundary points are used
to select paragraphs and lists, and to extract subtrees.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'odf.dom'
func tracer() tracing.Trace {
	return tracing.Select("odf.dom")
}
