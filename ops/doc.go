/*
Package ops implements operations on collaboratively edited ODF text
documents.

An operation is a serializable, replayable mutation of a document. Every
operation is fully described by its spec, a flat JSON object carrying the
operation type, the originating member, a timestamp and the operation's
fields:

    {"optype":"AddList","memberid":"alice","timestamp":42,
     "startParagraphPosition":0,"endParagraphPosition":12,
     "styleName":"WebODF-Numbering"}

Positions within a document are addressed by steps. A step is a valid
cursor position: every character of a paragraph's text, plus the end of
each paragraph. Steps are numbered in document order.

Executing an operation either succeeds and returns true, or detects a
failed precondition before mutating anything and returns false. Violated
invariants, which indicate a bug in the producer of an operation, are fatal:
they panic with an *AssertionError. A Session executes operations in order
and turns assertion panics into errors wrapping ErrAssertion.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ops

import "github.com/npillmayer/schuko/tracing"

// tracer will return a tracer. We are tracing to 'odf.ops'
func tracer() tracing.Trace {
	return tracing.Select("odf.ops")
}
