/*
Package gui holds the controllers sitting between user intents and the
operation layer.

A ListController watches the selection of one session member and translates
list-related intents ("number the selected paragraphs", "remove the lists
in the selection") into batches of operations, which it enqueues into a
session. Observers learn about the list styling at the member's cursor and
about the controller being enabled through events of kinds
event.KindListStylingChanged and event.KindEnabledChanged.

Controllers get all of their collaborators injected: the session (and with
it the document), session constraints and a session context.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gui

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'odf.gui'.
func tracer() tracing.Trace {
	return tracing.Select("odf.gui")
}
