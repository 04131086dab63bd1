// Package dom is the read-only view of a parsed page the extractors work on.
// It hides goquery behind a handful of methods so extractors only ever ask for
// tags, attributes, children and text.
package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nilsimda/topturnier/textnorm"
)

type Node interface {
	// Tag is the lower-case element name, empty for the document itself.
	Tag() string
	Attr(key string) (string, bool)
	HasClass(class string) bool
	// Children are the element children in document order.
	Children() []Node
	// Find returns descendants matching a CSS selector in document order.
	Find(selector string) []Node
	// Text is the cleaned text of the whole subtree.
	Text() string
	// OwnText is the cleaned text of the direct text children only.
	OwnText() string
	// Lines splits the subtree text at <br> elements and cleans each line.
	Lines() []string
}

// Parse reads an HTML document and returns its root.
func Parse(raw string) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return selection{s: doc.Selection}, nil
}

// FromSelection wraps an existing goquery selection; only its first node is used.
func FromSelection(s *goquery.Selection) Node {
	return selection{s: s.First()}
}

type selection struct {
	s *goquery.Selection
}

func (n selection) node() *html.Node {
	if len(n.s.Nodes) == 0 {
		return nil
	}
	return n.s.Nodes[0]
}

func (n selection) Tag() string {
	if node := n.node(); node != nil && node.Type == html.ElementNode {
		return node.Data
	}
	return ""
}

func (n selection) Attr(key string) (string, bool) {
	return n.s.Attr(key)
}

func (n selection) HasClass(class string) bool {
	return n.s.HasClass(class)
}

func (n selection) Children() []Node {
	return wrap(n.s.Children())
}

func (n selection) Find(selector string) []Node {
	return wrap(n.s.Find(selector))
}

func (n selection) Text() string {
	return textnorm.Clean(n.s.Text())
}

func (n selection) OwnText() string {
	node := n.node()
	if node == nil {
		return ""
	}
	var parts []string
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			parts = append(parts, c.Data)
		}
	}
	return textnorm.Clean(strings.Join(parts, " "))
}

func (n selection) Lines() []string {
	node := n.node()
	if node == nil {
		return nil
	}
	lines := []string{""}
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		switch {
		case c.Type == html.TextNode:
			lines[len(lines)-1] += c.Data
		case c.Type == html.ElementNode && c.DataAtom == atom.Br:
			lines = append(lines, "")
		default:
			for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
				walk(cc)
			}
		}
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	for i := range lines {
		lines[i] = textnorm.Clean(lines[i])
	}
	return lines
}

func wrap(s *goquery.Selection) []Node {
	nodes := make([]Node, 0, s.Length())
	s.Each(func(_ int, item *goquery.Selection) {
		nodes = append(nodes, selection{s: item})
	})
	return nodes
}
