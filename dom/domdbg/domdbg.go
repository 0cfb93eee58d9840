/*
Package domdbg implements helpers to debug a DOM tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/odfops/dom"
	"github.com/npillmayer/odfops/tree"
	tp "github.com/xlab/treeprint"
)

// Print returns an indented tree representation of the subtree under n,
// suitable for test logs.
func Print(n *dom.Node) string {
	p := tp.New()
	p.SetValue(label(n))
	branches := map[*dom.Node]tp.Tree{n: p}
	_, err := tree.NewWalker(n.TreeNode()).TopDown(func(tn, parent *tree.Node[*dom.Node], _ int) (
		*tree.Node[*dom.Node], error) {
		//
		ch := tn.Payload
		if ch == n {
			return nil, nil
		}
		branch := branches[parent.Payload]
		if ch.ChildCount() == 0 {
			branch.AddNode(label(ch))
		} else {
			branches[ch] = branch.AddBranch(label(ch))
		}
		return nil, nil
	}).Promise()()
	if err != nil {
		return err.Error()
	}
	return p.String()
}

func label(n *dom.Node) string {
	if !n.IsElement() {
		return n.String()
	}
	var b strings.Builder
	b.WriteString(n.Name)
	for _, a := range n.Attributes() {
		fmt.Fprintf(&b, " %s=%q", a.Key, a.Val)
	}
	return b.String()
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
	AttrTmpl *template.Template
}

// ToGraphViz outputs a diagram for a DOM tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the root node of
// the DOM and a Writer. Elements carrying attributes are connected
// to a table of their attributes.
func ToGraphViz(doc *dom.Node, w io.Writer) {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		panic(err)
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	gparams.AttrTmpl = template.Must(template.New("attributes").Parse(attributesTmpl))
	err = tmpl.Execute(w, gparams)
	if err != nil {
		panic(err)
	}
	dict := make(map[*dom.Node]string, 4096)
	nodes(doc, w, dict, &gparams)
	w.Write([]byte("}\n"))
}

type node struct {
	N    *dom.Node
	Name string
}

type edge struct {
	N1, N2 node
}

func nodes(n *dom.Node, w io.Writer, dict map[*dom.Node]string, gparams *graphParamsType) {
	domNode(n, w, dict, gparams)
	for _, ch := range n.Children() {
		nodes(ch, w, dict, gparams)
		domEdge(n, ch, w, dict, gparams)
	}
}

func nameOf(n *dom.Node, dict map[*dom.Node]string) string {
	name := dict[n]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(dict)+1)
		dict[n] = name
	}
	return name
}

func domNode(n *dom.Node, w io.Writer, dict map[*dom.Node]string, gparams *graphParamsType) {
	name := nameOf(n, dict)
	if err := gparams.NodeTmpl.Execute(w, &node{n, name}); err != nil {
		panic(err)
	}
	if n.IsElement() && len(n.Attributes()) > 0 {
		if err := gparams.AttrTmpl.Execute(w, &node{n, name}); err != nil {
			panic(err)
		}
	}
}

func domEdge(n1 *dom.Node, n2 *dom.Node, w io.Writer, dict map[*dom.Node]string, gparams *graphParamsType) {
	e := edge{node{n1, nameOf(n1, dict)}, node{n2, nameOf(n2, dict)}}
	if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
		panic(err)
	}
}

func shortText(n *dom.Node) string {
	s := "\"\\\""
	if len(n.Data) > 10 {
		s += n.Data[:10] + "...\\\"\""
	} else {
		s += n.Data + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [{{ .Fontname }} = "helvetica" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if .N.IsText }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .N.Name }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const attributesTmpl = `{{ .Name }}_attr [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      {{ range .N.Attributes }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Val }}</td></tr>
      {{ end }}
    </table>> ] ;
{{ .Name }} -> {{ .Name }}_attr [dir=none weight=1 style="dashed"] ;
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`
