package htmldoc

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/blocks"
)

// Type-marker attributes recognized on block elements. AttrElement is the
// primary marker written by the generator; AttrLegacy is the older name still
// accepted on documents produced before the rename.
const (
	AttrElement = "data-element"
	AttrLegacy  = "data-block"
)

// tagTypes is the fixed tag-name fallback used when an element carries no
// type marker and no recognizable class name.
var tagTypes = map[string]blocks.Type{
	"h1":         blocks.TypeHeadline,
	"h2":         blocks.TypeSubheadline,
	"ul":         blocks.TypeFeatureList,
	"ol":         blocks.TypeFeatureList,
	"button":     blocks.TypeCallToAction,
	"blockquote": blocks.TypeTestimonial,
	"p":          blocks.TypeParagraph,
	"a":          blocks.TypeLink,
	"footer":     blocks.TypeFooter,
	"svg":        blocks.TypeIllustration,
}

// classNames holds every name matchable inside a class attribute, longest
// first so that "subheadline" wins over "headline" and "feature-list" over
// the legacy "feature".
var classNames = func() []string {
	names := []string{"feature"}
	for _, t := range blocks.All {
		names = append(names, string(t))
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	return names
}()

// ClassifyNode resolves an element to a block type. Resolution tiers, first
// match wins: the primary marker attribute, the legacy marker attribute, a
// case-insensitive substring match of the class attribute against vocabulary
// names, and finally the fixed tag map. An unclassifiable element is skipped
// by the parser; that is not an error.
func ClassifyNode(n *html.Node) (blocks.Type, bool) {
	if n == nil || n.Type != html.ElementNode {
		return "", false
	}

	if v, ok := attrValue(n, AttrElement); ok {
		if t, ok := blocks.CanonicalType(strings.ToLower(strings.TrimSpace(v))); ok {
			return t, true
		}
	}
	if v, ok := attrValue(n, AttrLegacy); ok {
		if t, ok := blocks.CanonicalType(strings.ToLower(strings.TrimSpace(v))); ok {
			return t, true
		}
	}

	if class, ok := attrValue(n, "class"); ok {
		lower := strings.ToLower(class)
		for _, name := range classNames {
			if strings.Contains(lower, name) {
				if t, ok := blocks.CanonicalType(name); ok {
					return t, true
				}
			}
		}
	}

	if t, ok := tagTypes[strings.ToLower(n.Data)]; ok {
		return t, true
	}
	return "", false
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}
