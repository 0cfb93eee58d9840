/*
Package style deals with ODF styles: raw property values, grouped property
maps, the built-in list styles and the formatting engine which resolves
and updates style elements of a document.

ODF styles live in two sections of a document, office:styles (common styles,
visible to users) and office:automatic-styles (styles generated by the
application). Style elements carry their properties partly as attributes and
partly as attributes of nested property elements, e.g.

    <text:list-level-style-number text:level="1" style:num-format="1">
      <style:list-level-properties text:list-level-position-and-space-mode="label-alignment">
        <style:list-level-label-alignment fo:margin-left="1.27cm"/>
      </style:list-level-properties>
    </text:list-level-style-number>

Properties are handed around as nested maps, mirroring this structure
(see type Properties).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import "github.com/npillmayer/schuko/tracing"

// tracer will return a tracer. We are tracing to 'odf.style'
func tracer() tracing.Trace {
	return tracing.Select("odf.style")
}
