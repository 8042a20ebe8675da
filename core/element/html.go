package element

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultFormulaClass marks formula images in editor HTML.
const DefaultFormulaClass = "Wirisformula"

// HTMLImage adapts an <img> node of a parsed document to Element.
type HTMLImage struct {
	Node *html.Node
}

func (e HTMLImage) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.Node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e HTMLImage) SetAttr(name, value string) {
	name = strings.ToLower(name)
	for i, a := range e.Node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.Node.Attr[i].Val = value
			return
		}
	}
	e.Node.Attr = append(e.Node.Attr, html.Attribute{Key: name, Val: value})
}

func (e HTMLImage) RemoveAttr(name string) {
	name = strings.ToLower(name)
	kept := e.Node.Attr[:0]
	for _, a := range e.Node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		kept = append(kept, a)
	}
	e.Node.Attr = kept
}

// ParseHTML parses an HTML document or fragment.
func ParseHTML(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return doc, nil
}

// RenderHTML writes doc back out as HTML.
func RenderHTML(w io.Writer, doc *html.Node) error {
	return html.Render(w, doc)
}

// FindFormulaImages returns the <img> elements under root whose class list
// contains class, in document order. An empty class matches every image.
func FindFormulaImages(root *html.Node, class string) []HTMLImage {
	var out []HTMLImage
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			img := HTMLImage{Node: n}
			if class == "" || hasClass(img, class) {
				out = append(out, img)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func hasClass(e HTMLImage, class string) bool {
	v, _ := e.Attr("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}
