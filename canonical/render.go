package canonical

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
)

// render prints one node per line, indented by one space per level.
// Attributes are sorted so the output does not depend on parse order.
func render(root *html.Node) string {
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		writeNode(&b, c, 0)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *html.Node, depth int) {
	indent := strings.Repeat(" ", depth)
	switch n.Type {
	case html.DoctypeNode:
		b.WriteString("<!DOCTYPE html>\n")
	case html.TextNode:
		b.WriteString(indent)
		b.WriteString(textEscaper.Replace(n.Data))
		b.WriteString("\n")
	case html.ElementNode:
		b.WriteString(indent)
		b.WriteString("<")
		b.WriteString(n.Data)
		writeAttrs(b, n.Attr)
		if voidElements[n.Data] {
			b.WriteString("/>\n")
			return
		}
		if n.FirstChild == nil {
			b.WriteString("></")
			b.WriteString(n.Data)
			b.WriteString(">\n")
			return
		}
		b.WriteString(">\n")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(b, c, depth+1)
		}
		b.WriteString(indent)
		b.WriteString("</")
		b.WriteString(n.Data)
		b.WriteString(">\n")
	}
}

func writeAttrs(b *strings.Builder, attrs []html.Attribute) {
	sorted := append([]html.Attribute(nil), attrs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	for _, a := range sorted {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(a.Val))
		b.WriteString(`"`)
	}
}
