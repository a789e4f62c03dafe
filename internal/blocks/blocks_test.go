package blocks

import "testing"

func TestCanonicalType_Vocabulary(t *testing.T) {
	for _, typ := range All {
		got, ok := CanonicalType(string(typ))
		if !ok || got != typ {
			t.Fatalf("CanonicalType(%q) = %q, %v", typ, got, ok)
		}
	}
}

func TestCanonicalType_LegacyFeatureAlias(t *testing.T) {
	got, ok := CanonicalType("feature")
	if !ok || got != TypeFeatureList {
		t.Fatalf("expected feature to canonicalize to feature-list, got %q, %v", got, ok)
	}
}

func TestCanonicalType_Unknown(t *testing.T) {
	if _, ok := CanonicalType("hero"); ok {
		t.Fatalf("did not expect 'hero' to classify")
	}
}

func TestEncodeDecodeContent_Testimonial(t *testing.T) {
	in := Block{
		Type: TypeTestimonial,
		Testimonial: &Testimonial{
			Quote:   "Great app",
			Author:  "Sam Lee",
			Role:    "Founder",
			Company: "Acme",
		},
	}
	enc, err := in.EncodeContent()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeContent(TypeTestimonial, enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *out.Testimonial != *in.Testimonial {
		t.Fatalf("round trip mismatch: %+v vs %+v", out.Testimonial, in.Testimonial)
	}
}

func TestEncodeDecodeContent_FeatureList(t *testing.T) {
	in := Block{Type: TypeFeatureList, Features: &FeatureList{Features: []string{"Fast", "Secure"}}}
	enc, err := in.EncodeContent()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeContent(TypeFeatureList, enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !ContentEqual(in, out) {
		t.Fatalf("round trip mismatch: %+v vs %+v", in.Features, out.Features)
	}
}

func TestDecodeContent_EmptyStructured(t *testing.T) {
	out, err := DecodeContent(TypeFeatureList, "")
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if out.Features == nil || len(out.Features.Features) != 0 {
		t.Fatalf("expected empty feature list, got %+v", out.Features)
	}
}

func TestEncodeContent_PlainTextPassthrough(t *testing.T) {
	in := Block{Type: TypeHeadline, Text: "Welcome"}
	enc, err := in.EncodeContent()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if enc != "Welcome" {
		t.Fatalf("expected passthrough, got %q", enc)
	}
}

func TestStyles_Empty(t *testing.T) {
	var s *Styles
	if !s.Empty() {
		t.Fatalf("nil styles should be empty")
	}
	if !(&Styles{}).Empty() {
		t.Fatalf("zero styles should be empty")
	}
	if (&Styles{Color: "#fff"}).Empty() {
		t.Fatalf("colored styles should not be empty")
	}
}
