// Package blocks defines the content block model shared by the parser, the
// ordered store, and the page storage layer. A block is one unit of editable
// page content with a fixed type and a type-specific payload.
package blocks

import (
	"encoding/json"
	"fmt"
)

// Type identifies the kind of content a block holds. The vocabulary is
// closed: classification never invents new members.
type Type string

const (
	TypeHeadline     Type = "headline"
	TypeSubheadline  Type = "subheadline"
	TypeFeatureList  Type = "feature-list"
	TypeCallToAction Type = "call-to-action"
	TypeTestimonial  Type = "testimonial"
	TypeParagraph    Type = "paragraph"
	TypeLink         Type = "link"
	TypeFooter       Type = "footer"
	TypeIllustration Type = "illustration"
)

// legacyFeature is the historical marker for feature lists. It is accepted
// anywhere a type name is read and canonicalized to TypeFeatureList.
const legacyFeature = "feature"

// All lists every vocabulary member in a stable order.
var All = []Type{
	TypeHeadline,
	TypeSubheadline,
	TypeFeatureList,
	TypeCallToAction,
	TypeTestimonial,
	TypeParagraph,
	TypeLink,
	TypeFooter,
	TypeIllustration,
}

// CanonicalType maps a raw type name to a vocabulary member. The legacy
// "feature" alias resolves to "feature-list". The second return is false when
// the name is not part of the vocabulary.
func CanonicalType(name string) (Type, bool) {
	if name == legacyFeature {
		return TypeFeatureList, true
	}
	for _, t := range All {
		if name == string(t) {
			return t, true
		}
	}
	return "", false
}

// Testimonial is the structured payload of a testimonial block. Fields
// missing from the source markup stay empty strings.
type Testimonial struct {
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

// FeatureList is the structured payload of a feature-list block.
type FeatureList struct {
	Features []string `json:"features"`
}

// Styles is the restricted set of inline style properties a block may carry.
// A nil *Styles means the block was never styled and inherits everything
// from the theme; zero-valued fields inside a non-nil record are omitted.
type Styles struct {
	Color      string `json:"color,omitempty"`
	FontSize   string `json:"fontSize,omitempty"`
	Background string `json:"background,omitempty"`
}

// Empty reports whether no property is set.
func (s *Styles) Empty() bool {
	return s == nil || (s.Color == "" && s.FontSize == "" && s.Background == "")
}

// Block is one ordered unit of page content. Exactly one payload field is
// meaningful, selected by Type: Testimonial for testimonial blocks, Features
// for feature-list blocks, Text for everything else.
type Block struct {
	ID          string       `json:"id"`
	Type        Type         `json:"type"`
	Text        string       `json:"text,omitempty"`
	Testimonial *Testimonial `json:"testimonial,omitempty"`
	Features    *FeatureList `json:"features,omitempty"`
	Styles      *Styles      `json:"styles,omitempty"`
}

// Theme is a full HTML document whose single content wrapper is empty. It
// carries layout, background and chrome shared by all blocks of a page.
type Theme struct {
	HTML string `json:"html"`
}

// EncodeContent flattens a block's payload to the single text column used by
// the page store. Structured payloads are JSON-encoded; plain text passes
// through unchanged.
func (b Block) EncodeContent() (string, error) {
	switch b.Type {
	case TypeTestimonial:
		t := b.Testimonial
		if t == nil {
			t = &Testimonial{}
		}
		raw, err := json.Marshal(t)
		if err != nil {
			return "", fmt.Errorf("encode testimonial: %w", err)
		}
		return string(raw), nil
	case TypeFeatureList:
		f := b.Features
		if f == nil {
			f = &FeatureList{Features: []string{}}
		}
		if f.Features == nil {
			f = &FeatureList{Features: []string{}}
		}
		raw, err := json.Marshal(f)
		if err != nil {
			return "", fmt.Errorf("encode feature list: %w", err)
		}
		return string(raw), nil
	default:
		return b.Text, nil
	}
}

// DecodeContent is the inverse of EncodeContent: it fills the payload field
// selected by typ from the stored text column.
func DecodeContent(typ Type, content string) (Block, error) {
	b := Block{Type: typ}
	switch typ {
	case TypeTestimonial:
		var t Testimonial
		if content != "" {
			if err := json.Unmarshal([]byte(content), &t); err != nil {
				return b, fmt.Errorf("decode testimonial: %w", err)
			}
		}
		b.Testimonial = &t
	case TypeFeatureList:
		var f FeatureList
		if content != "" {
			if err := json.Unmarshal([]byte(content), &f); err != nil {
				return b, fmt.Errorf("decode feature list: %w", err)
			}
		}
		if f.Features == nil {
			f.Features = []string{}
		}
		b.Features = &f
	default:
		b.Text = content
	}
	return b, nil
}

// ContentEqual reports whether two blocks carry the same type and payload,
// ignoring IDs and styles. Used by round-trip checks.
func ContentEqual(a, b Block) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeTestimonial:
		at, bt := a.Testimonial, b.Testimonial
		if at == nil {
			at = &Testimonial{}
		}
		if bt == nil {
			bt = &Testimonial{}
		}
		return *at == *bt
	case TypeFeatureList:
		var af, bf []string
		if a.Features != nil {
			af = a.Features.Features
		}
		if b.Features != nil {
			bf = b.Features.Features
		}
		if len(af) != len(bf) {
			return false
		}
		for i := range af {
			if af[i] != bf[i] {
				return false
			}
		}
		return true
	default:
		return a.Text == b.Text
	}
}
