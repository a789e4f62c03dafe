package htmldoc

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/blocks"
)

// Serialize is the inverse of Parse: it re-inserts one element per block
// into the theme's wrapper, in block order, and renders the full document.
// A theme whose wrapper is missing is a degenerate input and yields an
// error rather than an empty document.
func Serialize(list []blocks.Block, theme blocks.Theme) (string, error) {
	doc, err := html.Parse(strings.NewReader(theme.HTML))
	if err != nil {
		return "", fmt.Errorf("parse theme: %w", err)
	}
	wrapper := findWrapper(doc)
	if wrapper == nil {
		return "", fmt.Errorf("serialize: %w", ErrNoWrapper)
	}

	for _, b := range list {
		wrapper.AppendChild(renderBlock(b))
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}

// renderBlock builds the markup element for a single block: the tag and
// marker attribute appropriate to its type, its content text or structured
// sub-elements, and any inline styles.
func renderBlock(b blocks.Block) *html.Node {
	var n *html.Node
	switch b.Type {
	case blocks.TypeHeadline:
		n = textElement("h1", b.Text)
	case blocks.TypeSubheadline:
		n = textElement("h2", b.Text)
	case blocks.TypeParagraph:
		n = textElement("p", b.Text)
	case blocks.TypeCallToAction:
		n = textElement("button", b.Text)
	case blocks.TypeLink:
		n = textElement("a", b.Text)
		setAttr(n, "href", "#")
	case blocks.TypeFooter:
		n = textElement("footer", b.Text)
	case blocks.TypeIllustration:
		n = textElement("svg", b.Text)
	case blocks.TypeFeatureList:
		n = element("ul")
		if b.Features != nil {
			for _, item := range b.Features.Features {
				n.AppendChild(textElement("li", item))
			}
		}
	case blocks.TypeTestimonial:
		n = element("blockquote")
		t := b.Testimonial
		if t == nil {
			t = &blocks.Testimonial{}
		}
		if t.Quote != "" {
			n.AppendChild(&html.Node{Type: html.TextNode, Data: t.Quote})
		}
		appendAttribution(n, "cite", classAuthor, t.Author)
		appendAttribution(n, "span", classRole, t.Role)
		appendAttribution(n, "span", classCompany, t.Company)
	default:
		n = textElement("p", b.Text)
	}

	setAttr(n, AttrElement, string(b.Type))
	if s := styleAttr(b.Styles); s != "" {
		setAttr(n, "style", s)
	}
	return n
}

// appendAttribution adds one testimonial attribution sub-element, skipping
// empty fields so absent attribution round-trips to the empty string.
func appendAttribution(parent *html.Node, tag, class, text string) {
	if text == "" {
		return
	}
	c := textElement(tag, text)
	setAttr(c, "class", class)
	parent.AppendChild(c)
}

func element(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag}
}

func textElement(tag, text string) *html.Node {
	n := element(tag)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
