package htmldoc

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/blocks"
)

// ExtractStyles reads the whitelisted inline style properties from an
// element: text color, font size, and background (color or gradient).
// Properties absent on the element are omitted, never defaulted. The result
// is nil when the element carries none of them, so "never styled" stays
// distinguishable from an explicitly cleared record.
func ExtractStyles(n *html.Node) *blocks.Styles {
	raw, ok := attrValue(n, "style")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	var s blocks.Styles
	for _, decl := range strings.Split(raw, ";") {
		colon := strings.IndexByte(decl, ':')
		if colon <= 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(decl[:colon]))
		val := strings.TrimSpace(decl[colon+1:])
		if val == "" {
			continue
		}
		switch prop {
		case "color":
			s.Color = val
		case "font-size":
			s.FontSize = val
		case "background", "background-color":
			s.Background = val
		}
	}
	if s.Empty() {
		return nil
	}
	return &s
}

// styleAttr renders a Styles record back to an inline style string. The
// inverse of ExtractStyles; returns "" for nil or empty records.
func styleAttr(s *blocks.Styles) string {
	if s.Empty() {
		return ""
	}
	var parts []string
	if s.Color != "" {
		parts = append(parts, "color: "+s.Color)
	}
	if s.FontSize != "" {
		parts = append(parts, "font-size: "+s.FontSize)
	}
	if s.Background != "" {
		parts = append(parts, "background: "+s.Background)
	}
	return strings.Join(parts, "; ")
}
