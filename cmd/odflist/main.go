/*
Command odflist applies list operations to an ODF text document given as
flat XML markup.

Usage:

    odflist [options] number|bullet|remove <document.xml>
    odflist [options] -ops <ops.json> replay <document.xml>

The resulting markup is written to stdout.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/odfops/config"
	"github.com/npillmayer/odfops/dom"
	"github.com/npillmayer/odfops/dom/domdbg"
	"github.com/npillmayer/odfops/dom/style"
	"github.com/npillmayer/odfops/gui"
	"github.com/npillmayer/odfops/ops"
	"github.com/npillmayer/schuko/tracing"
)

func main() {
	confPath := flag.String("config", "", "TOML configuration file")
	member := flag.String("member", "", "member id (default from config, or random)")
	position := flag.Int("pos", 0, "cursor position, in steps")
	length := flag.Int("len", 0, "selection length, in steps")
	styleName := flag.String("style", "", "list style to apply, overriding the configuration")
	opsPath := flag.String("ops", "", "JSON array of operation specs, for action 'replay'")
	showTree := flag.Bool("tree", false, "print a tree dump of the document body to stderr")
	showLog := flag.Bool("log", false, "print the specs of executed operations to stderr")
	dotPath := flag.String("dot", "", "write a GraphViz drawing of the resulting document to a file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: odflist [options] number|bullet|remove <document.xml>
       odflist [options] -ops <ops.json> replay <document.xml>

Options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	action, docPath := flag.Arg(0), flag.Arg(1)
	//
	conf, err := loadConfig(*confPath)
	exitOn(err)
	exitOn(config.InitTracing(conf))
	if *styleName != "" {
		conf.Set(config.KeyNumberingStyle, *styleName)
		conf.Set(config.KeyBulletStyle, *styleName)
	}
	memberID := *member
	if memberID == "" {
		memberID = conf.GetString(config.KeyMember)
	}
	if memberID == "" {
		memberID = ops.NewMemberID()
	}
	//
	f, err := os.Open(docPath)
	exitOn(err)
	doc, err := ops.LoadDocument(f)
	f.Close()
	exitOn(err)
	exitOn(checkSelection(doc, *position, *length))
	session := ops.NewSession(doc, nil)
	exitOn(session.Enqueue(ops.NewAddCursor(memberID), ops.NewMoveCursor(memberID, *position, *length)))
	//
	var done bool
	switch action {
	case "number", "bullet", "remove":
		done, err = listAction(session, conf, memberID, action)
	case "replay":
		done, err = replay(session, *opsPath)
	default:
		flag.Usage()
		os.Exit(2)
	}
	exitOn(err)
	if !done {
		fmt.Fprintf(os.Stderr, "odflist: %s: nothing changed\n", action)
		suggestStyles(doc, conf, action)
	}
	//
	if *showLog {
		out, err := json.MarshalIndent(session.Operations(), "", "  ")
		exitOn(err)
		fmt.Fprintln(os.Stderr, string(out))
	}
	if *showTree {
		fmt.Fprintln(os.Stderr, domdbg.Print(doc.RootNode()))
	}
	if *dotPath != "" {
		exitOn(writeGraphViz(doc, *dotPath))
	}
	exitOn(dom.Render(os.Stdout, doc.DOM()))
	fmt.Println()
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.New(), nil
	}
	return config.LoadFile(path)
}

// checkSelection reports a selection of steps which is not located within
// the document.
func checkSelection(doc *ops.OdtDocument, position, length int) error {
	n := doc.StepCount()
	if position < 0 || position >= n {
		return fmt.Errorf("position %d out of range [0…%d)", position, n)
	}
	if end := position + length; end < 0 || end >= n {
		return fmt.Errorf("selection %d%+d ends out of range [0…%d)", position, length, n)
	}
	return nil
}

func writeGraphViz(doc *ops.OdtDocument, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	domdbg.ToGraphViz(doc.RootNode(), f)
	return f.Close()
}

func listAction(session *ops.Session, conf *config.Config, memberID, action string) (bool, error) {
	constraints := gui.NewSessionConstraints()
	constraints.Set(gui.ReviewMode, conf.GetBool(config.KeyReviewMode))
	context := gui.NewSessionContext(session.Document(), memberID, conf.GetString(config.KeyMemberName))
	ctrl := gui.NewListController(session, constraints, context, memberID,
		gui.WithListStyles(conf.GetString(config.KeyNumberingStyle), conf.GetString(config.KeyBulletStyle)))
	defer ctrl.Destroy()
	if !ctrl.IsEnabled() {
		tracing.Infof("list editing is disabled for member %s", memberID)
		return false, nil
	}
	switch action {
	case "number":
		return ctrl.SetNumberedList(true)
	case "bullet":
		return ctrl.SetBulletedList(true)
	}
	return ctrl.RemoveList()
}

func replay(session *ops.Session, path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("action replay needs option -ops")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	operations, err := ops.NewFactory().CreateAll(data)
	if err != nil {
		return false, err
	}
	before := len(session.Operations())
	if err := session.Enqueue(operations...); err != nil {
		return false, err
	}
	return len(session.Operations()) > before, nil
}

// suggestStyles hints at similarly named list styles if the style for an
// action is unknown.
func suggestStyles(doc *ops.OdtDocument, conf *config.Config, action string) {
	key := config.KeyNumberingStyle
	switch action {
	case "bullet":
		key = config.KeyBulletStyle
	case "number":
	default:
		return
	}
	name := conf.GetString(key)
	formatting := doc.Formatting()
	if style.IsDefaultListStyle(name) || formatting.GetStyleElement(name, style.FamilyListStyle) != nil {
		return
	}
	if suggestions := formatting.SuggestStyleNames(name, style.FamilyListStyle); len(suggestions) > 0 {
		fmt.Fprintf(os.Stderr, "odflist: no list style %q, did you mean: %s?\n", name, strings.Join(suggestions, ", "))
	}
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "odflist: %v\n", err)
		os.Exit(1)
	}
}
