package htmldoc

import (
	"testing"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/blocks"
)

func TestExtractContent_FeatureList(t *testing.T) {
	n := firstBodyElement(t, `<ul data-element="feature"><li>Fast</li><li>Secure</li></ul>`)
	typ, ok := ClassifyNode(n)
	if !ok || typ != blocks.TypeFeatureList {
		t.Fatalf("classify: got %q, %v", typ, ok)
	}
	b := ExtractContent(n, typ)
	f := b.Features
	if f == nil || len(f.Features) != 2 || f.Features[0] != "Fast" || f.Features[1] != "Secure" {
		t.Fatalf("features: got %+v", f)
	}
}

func TestExtractContent_FeatureList_NoItems(t *testing.T) {
	n := firstBodyElement(t, `<ul data-element="feature-list"></ul>`)
	b := ExtractContent(n, blocks.TypeFeatureList)
	if b.Features == nil || len(b.Features.Features) != 0 {
		t.Fatalf("expected empty list, got %+v", b.Features)
	}
}

func TestExtractContent_Testimonial(t *testing.T) {
	n := firstBodyElement(t, `<blockquote data-element="testimonial">
		This changed how we work.
		<cite class="author">Dana Reyes</cite>
		<span class="role">CTO</span>
		<span class="company">Northwind</span>
	</blockquote>`)
	b := ExtractContent(n, blocks.TypeTestimonial)
	tm := b.Testimonial
	if tm == nil {
		t.Fatalf("no testimonial payload")
	}
	if tm.Quote != "This changed how we work." {
		t.Fatalf("quote: got %q", tm.Quote)
	}
	if tm.Author != "Dana Reyes" || tm.Role != "CTO" || tm.Company != "Northwind" {
		t.Fatalf("attribution: got %+v", tm)
	}
}

func TestExtractContent_Testimonial_MissingAttribution(t *testing.T) {
	n := firstBodyElement(t, `<blockquote>Just the quote.</blockquote>`)
	b := ExtractContent(n, blocks.TypeTestimonial)
	tm := b.Testimonial
	if tm.Quote != "Just the quote." {
		t.Fatalf("quote: got %q", tm.Quote)
	}
	if tm.Author != "" || tm.Role != "" || tm.Company != "" {
		t.Fatalf("missing sub-elements must default to empty strings, got %+v", tm)
	}
}

func TestExtractContent_PlainText_CollapsesWhitespace(t *testing.T) {
	n := firstBodyElement(t, "<p>Welcome\n\t  to <em>our</em> app</p>")
	b := ExtractContent(n, blocks.TypeParagraph)
	if b.Text != "Welcome to our app" {
		t.Fatalf("text: got %q", b.Text)
	}
}
