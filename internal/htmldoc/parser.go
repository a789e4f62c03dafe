// Package htmldoc converts generated HTML documents into ordered typed
// blocks plus a reusable theme, and reconstructs documents from edited
// blocks. It depends only on the parse-tree capabilities of x/net/html:
// text in, tree out, tolerant of malformed markup.
package htmldoc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/blocks"
)

// WrapperTag is the single designated content container. Every block-bearing
// element is a direct child of it; the theme holds it empty.
const WrapperTag = "main"

// Non-fatal parse warnings. Callers decide whether to surface them to the
// user; neither aborts parsing.
var (
	// ErrNoWrapper means the document body has no wrapper element. The
	// input is returned unchanged as the theme with zero blocks.
	ErrNoWrapper = errors.New("document has no content wrapper")
	// ErrNoBlocks means the wrapper was found but none of its children
	// classified. Structurally valid, just no usable content.
	ErrNoBlocks = errors.New("wrapper has no classifiable children")
)

// ParseResult bundles the ordered blocks, the emptied theme, and any
// structural warning raised along the way.
type ParseResult struct {
	Blocks  []blocks.Block
	Theme   blocks.Theme
	Warning error
}

// Parse splits an HTML document into an ordered block list and a theme. The
// theme is the same document with the wrapper emptied; it keeps layout and
// chrome only. Block ids are synthetic ("block-1", "block-2", ...) and are
// assigned only to children that classify.
//
// A missing wrapper is the sole recognized failure mode and it degrades
// gracefully: the result carries zero blocks, the unmodified input as theme,
// and ErrNoWrapper as a warning.
func Parse(input string) (ParseResult, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return ParseResult{}, fmt.Errorf("parse document: %w", err)
	}

	wrapper := findWrapper(doc)
	if wrapper == nil {
		return ParseResult{
			Theme:   blocks.Theme{HTML: input},
			Warning: ErrNoWrapper,
		}, nil
	}

	var out []blocks.Block
	n := 0
	for c := wrapper.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		typ, ok := ClassifyNode(c)
		if !ok {
			continue
		}
		n++
		b := ExtractContent(c, typ)
		b.ID = fmt.Sprintf("block-%d", n)
		b.Styles = ExtractStyles(c)
		out = append(out, b)
	}

	for wrapper.FirstChild != nil {
		wrapper.RemoveChild(wrapper.FirstChild)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return ParseResult{}, fmt.Errorf("render theme: %w", err)
	}

	res := ParseResult{Blocks: out, Theme: blocks.Theme{HTML: buf.String()}}
	if len(out) == 0 {
		res.Warning = ErrNoBlocks
	}
	return res, nil
}

// findWrapper locates the wrapper element inside the document body.
func findWrapper(doc *html.Node) *html.Node {
	body := findFirst(doc, "body")
	if body == nil {
		return nil
	}
	return findFirst(body, WrapperTag)
}

func findFirst(n *html.Node, tag string) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != nil {
			return
		}
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
			res = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	dfs(n)
	return res
}
