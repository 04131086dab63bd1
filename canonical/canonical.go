// Package canonical turns a result page into a stable text form. Two pages are
// equivalent when their canonical forms are byte-equal, which is what the
// round-trip checks compare.
package canonical

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nilsimda/topturnier/textnorm"
)

// Elements removed with their content on every page.
var noiseTags = []string{"p", "a", "font", "link", "style", "script"}

// Rules are the page specific parts of canonicalization.
type Rules struct {
	// Decompose selectors are removed together with their content.
	Decompose []string
	// Unwrap selectors are replaced by their children.
	Unwrap []string
	// Preserve lists tags kept even when empty, on top of br and hr.
	Preserve []string
	// DropSingleEmptyCellRows removes rows made of one empty cell.
	DropSingleEmptyCellRows bool
}

type Canonicalizer struct {
	decompose               cascadia.Selector
	unwrap                  []cascadia.Selector
	preserve                map[string]bool
	dropSingleEmptyCellRows bool
}

// New compiles the selectors of rules. An invalid selector is an error here
// rather than a silent no-op later.
func New(rules Rules) (*Canonicalizer, error) {
	selectors := append(append([]string{}, noiseTags...), rules.Decompose...)
	decompose, err := cascadia.Compile(strings.Join(selectors, ", "))
	if err != nil {
		return nil, fmt.Errorf("failed to compile decompose selectors: %w", err)
	}

	c := &Canonicalizer{
		decompose:               decompose,
		preserve:                map[string]bool{"br": true, "hr": true},
		dropSingleEmptyCellRows: rules.DropSingleEmptyCellRows,
	}
	for _, sel := range rules.Unwrap {
		m, err := cascadia.Compile(sel)
		if err != nil {
			return nil, fmt.Errorf("failed to compile unwrap selector %q: %w", sel, err)
		}
		c.unwrap = append(c.unwrap, m)
	}
	for _, tag := range rules.Preserve {
		c.preserve[strings.ToLower(tag)] = true
	}
	return c, nil
}

// MustNew is New for rule sets known at compile time.
func MustNew(rules Rules) *Canonicalizer {
	c, err := New(rules)
	if err != nil {
		panic(err)
	}
	return c
}

// Canonicalize is a shorthand for New(rules) followed by Canonicalize.
func Canonicalize(raw string, rules Rules) (string, error) {
	c, err := New(rules)
	if err != nil {
		return "", err
	}
	return c.Canonicalize(raw)
}

// Canonicalize parses raw and returns its canonical form. Applying it to its
// own output returns the output unchanged.
func (c *Canonicalizer) Canonicalize(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}
	root := doc.Nodes[0]

	removeComments(root)
	replaceDoctype(root)

	htmlNode := firstElement(root, atom.Html)
	if htmlNode == nil {
		return "", fmt.Errorf("document has no html element")
	}
	htmlNode.Attr = nil
	for n := htmlNode.FirstChild; n != nil; {
		next := n.NextSibling
		if n.Type != html.ElementNode {
			htmlNode.RemoveChild(n)
		}
		n = next
	}

	rebuildHead(doc)

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return render(root), nil
	}
	bodyNode := body.Nodes[0]

	// noise
	body.FindMatcher(c.decompose).Remove()
	for _, m := range c.unwrap {
		body.FindMatcher(m).Each(func(_ int, s *goquery.Selection) {
			unwrap(s.Nodes[0])
		})
	}

	// attributes
	bodyNode.Attr = nil
	body.Find("*").Each(func(_ int, s *goquery.Selection) {
		s.Nodes[0].Attr = nil
	})

	// text
	mergeText(bodyNode, "")
	normalizeText(bodyNode)

	// structure, until nothing changes
	for {
		changed := fixFirstRow(bodyNode)
		if c.removeEmpty(bodyNode) {
			changed = true
		}
		if c.dropSingleEmptyCellRows && dropSingleEmptyCellRows(bodyNode) {
			changed = true
		}
		if !changed {
			break
		}
		if mergeText(bodyNode, " ") {
			normalizeText(bodyNode)
		}
	}

	return render(root), nil
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}

func replaceDoctype(root *html.Node) {
	for c := root.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.DoctypeNode {
			root.RemoveChild(c)
		}
		c = next
	}
	doctype := &html.Node{Type: html.DoctypeNode, Data: "html"}
	root.InsertBefore(doctype, root.FirstChild)
}

func rebuildHead(doc *goquery.Document) {
	head := doc.Find("head").First()
	if head.Length() == 0 {
		return
	}
	title := textnorm.Normalize(doc.Find("title").First().Text())

	headNode := head.Nodes[0]
	headNode.Attr = nil
	for headNode.FirstChild != nil {
		headNode.RemoveChild(headNode.FirstChild)
	}

	headNode.AppendChild(&html.Node{
		Type:     html.ElementNode,
		Data:     "meta",
		DataAtom: atom.Meta,
		Attr: []html.Attribute{
			{Key: "http-equiv", Val: "Content-Type"},
			{Key: "content", Val: "text/html; charset=utf-8"},
		},
	})
	titleNode := &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
	if title != "" {
		titleNode.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	}
	headNode.AppendChild(titleNode)
}

func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}

// mergeText joins runs of sibling text nodes into one node and reports whether
// anything was joined.
func mergeText(n *html.Node, sep string) bool {
	merged := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			for c.NextSibling != nil && c.NextSibling.Type == html.TextNode {
				next := c.NextSibling
				c.Data = c.Data + sep + next.Data
				n.RemoveChild(next)
				merged = true
			}
		case html.ElementNode:
			if mergeText(c, sep) {
				merged = true
			}
		}
	}
	return merged
}

func normalizeText(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.TextNode:
			c.Data = textnorm.Normalize(c.Data)
			if c.Data == "" {
				n.RemoveChild(c)
			}
		case html.ElementNode:
			normalizeText(c)
		}
		c = next
	}
}

// fixFirstRow drops the empty padding cell the renderer puts after the page
// title in the first table.
func fixFirstRow(body *html.Node) bool {
	table := firstElement(body, atom.Table)
	if table == nil {
		return false
	}
	row := firstElement(table, atom.Tr)
	if row == nil {
		return false
	}
	changed := false
	for {
		cells := elements(row, atom.Td)
		if len(cells) < 2 || cells[1].FirstChild != nil {
			return changed
		}
		cells[1].Parent.RemoveChild(cells[1])
		changed = true
	}
}

// removeEmpty deletes elements without children until none are left, keeping
// the preserved tags.
func (c *Canonicalizer) removeEmpty(body *html.Node) bool {
	changed := false
	for {
		var empty []*html.Node
		walkElements(body, func(n *html.Node) {
			if n.FirstChild == nil && !c.preserve[n.Data] {
				empty = append(empty, n)
			}
		})
		if len(empty) == 0 {
			return changed
		}
		for _, n := range empty {
			n.Parent.RemoveChild(n)
		}
		changed = true
	}
}

func dropSingleEmptyCellRows(body *html.Node) bool {
	var rows []*html.Node
	walkElements(body, func(n *html.Node) {
		if n.DataAtom != atom.Tr {
			return
		}
		var cells []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				cells = append(cells, c)
			}
		}
		if len(cells) == 1 && cells[0].DataAtom == atom.Td && isBlank(cells[0]) {
			rows = append(rows, n)
		}
	})
	for _, n := range rows {
		n.Parent.RemoveChild(n)
	}
	return len(rows) > 0
}

// isBlank reports a cell with neither text nor child elements; a cell holding
// only a <br> is not blank.
func isBlank(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return false
		}
	}
	return !hasText(n)
}

func hasText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && c.Data != "" {
			return true
		}
		if c.Type == html.ElementNode && hasText(c) {
			return true
		}
	}
	return false
}

// walkElements visits the element descendants of n, children before parents.
func walkElements(n *html.Node, visit func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			walkElements(c, visit)
			visit(c)
		}
	}
}

func firstElement(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == a {
			return c
		}
		if found := firstElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// elements collects the descendants of n with the given tag in document order.
func elements(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == a {
			out = append(out, c)
		}
		out = append(out, elements(c, a)...)
	}
	return out
}
