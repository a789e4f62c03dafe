// Package export renders a page's ordered blocks into a simple PDF snapshot.
// It is a flat content preview, not a faithful visual rendering of the theme.
package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/blocks"
)

// WritePDF renders the ordered blocks to outPath. Block order is preserved;
// each type gets a basic typographic treatment.
func WritePDF(list []blocks.Block, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	for _, b := range list {
		switch b.Type {
		case blocks.TypeHeadline:
			pdf.SetFont("Helvetica", "B", 18)
			pdf.MultiCell(0, 9, b.Text, "", "L", false)
			pdf.Ln(2)
		case blocks.TypeSubheadline:
			pdf.SetFont("Helvetica", "B", 14)
			pdf.MultiCell(0, 7, b.Text, "", "L", false)
			pdf.Ln(2)
		case blocks.TypeFeatureList:
			pdf.SetFont("Helvetica", "", 11)
			if b.Features != nil {
				for _, item := range b.Features.Features {
					pdf.MultiCell(0, 6, "- "+item, "", "L", false)
				}
			}
			pdf.Ln(2)
		case blocks.TypeTestimonial:
			t := b.Testimonial
			if t == nil {
				t = &blocks.Testimonial{}
			}
			pdf.SetFont("Helvetica", "I", 11)
			pdf.MultiCell(0, 6, `"`+t.Quote+`"`, "", "L", false)
			if line := attributionLine(t); line != "" {
				pdf.SetFont("Helvetica", "", 10)
				pdf.MultiCell(0, 5, line, "", "L", false)
			}
			pdf.Ln(2)
		case blocks.TypeCallToAction:
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(0, 8, "[ "+b.Text+" ]", "", "C", false)
			pdf.Ln(2)
		case blocks.TypeFooter:
			pdf.SetFont("Helvetica", "", 8)
			pdf.MultiCell(0, 4, b.Text, "", "C", false)
		case blocks.TypeIllustration:
			// Vector markup has no PDF rendering here; leave a gap.
			pdf.Ln(8)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, b.Text, "", "L", false)
			pdf.Ln(2)
		}
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func attributionLine(t *blocks.Testimonial) string {
	line := t.Author
	if t.Role != "" {
		if line != "" {
			line += ", "
		}
		line += t.Role
	}
	if t.Company != "" {
		if line != "" {
			line += " - "
		}
		line += t.Company
	}
	if line == "" {
		return ""
	}
	return "- " + line
}
