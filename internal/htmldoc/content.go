package htmldoc

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/blocks"
)

// Sub-selectors for testimonial attribution. Descendants carrying one of
// these class names supply the named field and are excluded from the quote.
const (
	classAuthor  = "author"
	classRole    = "role"
	classCompany = "company"
)

// ExtractContent produces the payload of a classified element. Missing
// sub-elements never fail extraction; the corresponding fields default to
// empty strings or an empty list.
func ExtractContent(n *html.Node, typ blocks.Type) blocks.Block {
	b := blocks.Block{Type: typ}
	switch typ {
	case blocks.TypeTestimonial:
		b.Testimonial = &blocks.Testimonial{
			Quote:   collectQuote(n),
			Author:  subText(n, classAuthor),
			Role:    subText(n, classRole),
			Company: subText(n, classCompany),
		}
	case blocks.TypeFeatureList:
		items := []string{}
		walk(n, func(c *html.Node) bool {
			if c.Type == html.ElementNode && strings.EqualFold(c.Data, "li") {
				items = append(items, textContent(c))
				return false
			}
			return true
		})
		b.Features = &blocks.FeatureList{Features: items}
	default:
		b.Text = textContent(n)
	}
	return b
}

// collectQuote gathers the testimonial's own text, skipping the attribution
// sub-elements so the quote does not swallow the author line.
func collectQuote(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c != n && c.Type == html.ElementNode && hasAnyClass(c, classAuthor, classRole, classCompany) {
			return false
		}
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return collapseSpaces(sb.String())
}

// subText returns the collapsed text of the first descendant carrying the
// given class, or the empty string when none exists.
func subText(n *html.Node, class string) string {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if c != n && c.Type == html.ElementNode && hasAnyClass(c, class) {
			found = c
			return false
		}
		return true
	})
	if found == nil {
		return ""
	}
	return textContent(found)
}

func hasAnyClass(n *html.Node, names ...string) bool {
	class, ok := attrValue(n, "class")
	if !ok {
		return false
	}
	for _, field := range strings.Fields(strings.ToLower(class)) {
		for _, name := range names {
			if field == name {
				return true
			}
		}
	}
	return false
}

// walk visits n and its descendants in document order. The callback returns
// false to skip a node's subtree.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// textContent returns the element's concatenated text with whitespace runs
// collapsed and the ends trimmed. Markup structure is discarded.
func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return collapseSpaces(sb.String())
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimRight(b.String(), " ")
}
