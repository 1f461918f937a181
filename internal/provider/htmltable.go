package provider

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nodeSelector describes an element to locate in a parsed HTML tree:
// a tag, optionally constrained by an attribute value.
type nodeSelector struct {
	Tag  atom.Atom
	Attr string
	Val  string
}

// findNodes walks the tree depth-first and collects every node matching
// the selector.
func findNodes(root *html.Node, sel nodeSelector) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == sel.Tag {
			if sel.Attr == "" {
				nodes = append(nodes, n)
			} else {
				for _, a := range n.Attr {
					if a.Key == sel.Attr && a.Val == sel.Val {
						nodes = append(nodes, n)
						break
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return nodes
}

// nodeText returns the concatenated text content of a node and its
// descendants, with surrounding whitespace trimmed.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// tableRows returns, for every <tr> under root, the cell texts of that
// row. Both <th> and <td> elements count as cells, in document order.
func tableRows(root *html.Node) [][]string {
	var rows [][]string
	for _, tr := range findNodes(root, nodeSelector{Tag: atom.Tr}) {
		var cells []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
				cells = append(cells, nodeText(c))
			}
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}
