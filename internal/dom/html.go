package dom

import (
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML writes el and its subtree as HTML. Text nodes are escaped, so
// message text can never turn into markup.
func RenderHTML(w io.Writer, el *Element) error {
	return html.Render(w, toHTMLNode(el))
}

// HTML returns the rendered markup of el.
func HTML(el *Element) (string, error) {
	var sb strings.Builder
	if err := RenderHTML(&sb, el); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func toHTMLNode(el *Element) *html.Node {
	if el.isText {
		return &html.Node{Type: html.TextNode, Data: el.text}
	}

	n := &html.Node{
		Type:     html.ElementNode,
		Data:     el.tag,
		DataAtom: atom.Lookup([]byte(el.tag)),
		Attr:     htmlAttrs(el),
	}
	for _, c := range el.children {
		n.AppendChild(toHTMLNode(c))
	}
	return n
}

func htmlAttrs(el *Element) []html.Attribute {
	var attrs []html.Attribute
	if el.classes.Len() > 0 {
		attrs = append(attrs, html.Attribute{Key: "class", Val: el.classes.String()})
	}

	keys := make([]string, 0, len(el.dataset))
	for k := range el.dataset {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		attrs = append(attrs, html.Attribute{Key: "data-" + k, Val: el.dataset[k]})
	}

	if len(el.style) > 0 {
		props := make([]string, 0, len(el.style))
		for p := range el.style {
			props = append(props, p)
		}
		slices.Sort(props)
		decls := make([]string, len(props))
		for i, p := range props {
			decls[i] = p + ": " + el.style[p]
		}
		attrs = append(attrs, html.Attribute{Key: "style", Val: strings.Join(decls, "; ")})
	}
	return attrs
}
