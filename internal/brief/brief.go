package brief

import (
	"bufio"
	"regexp"
	"strings"
)

// Brief represents the distilled onboarding-page request parsed from a small
// Markdown input. It intentionally keeps only the fields the generation
// prompt needs.
type Brief struct {
	// AppName is the product the onboarding page introduces.
	AppName      string
	AudienceHint string
	ToneHint     string
	// Features are free-form notes, one per bullet line, that the page
	// should highlight.
	Features []string
	// Raw is the original input for traceability if needed downstream.
	Raw string
}

var (
	headingRe      = regexp.MustCompile(`^\s{0,3}#{1,6}\s+(.+?)\s*$`)
	audienceLineRe = regexp.MustCompile(`(?i)^\s*audience\s*[:\-]\s*(.+?)\s*$`)
	toneLineRe     = regexp.MustCompile(`(?i)^\s*tone\s*[:\-]\s*(.+?)\s*$`)
	bulletRe       = regexp.MustCompile(`^\s*[-*]\s+(.+?)\s*$`)
)

// ParseBrief parses a Markdown string into a Brief. The parser is deliberately
// conservative and deterministic: it takes the first heading as the app name,
// otherwise falls back to the first non-empty line stripped of markdown noise.
// It scans for audience/tone hint lines and collects bullet lines as feature
// notes.
func ParseBrief(input string) Brief {
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Split(bufio.ScanLines)

	brief := Brief{Raw: input}
	var firstNonEmpty string

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if brief.AppName == "" {
			if m := headingRe.FindStringSubmatch(trimmed); len(m) == 2 {
				brief.AppName = strings.TrimSpace(stripTrailingPunctuation(m[1]))
			}
		}
		if firstNonEmpty == "" {
			firstNonEmpty = trimmed
		}

		if brief.AudienceHint == "" {
			if m := audienceLineRe.FindStringSubmatch(trimmed); len(m) == 2 {
				brief.AudienceHint = strings.TrimSpace(m[1])
			}
		}
		if brief.ToneHint == "" {
			if m := toneLineRe.FindStringSubmatch(trimmed); len(m) == 2 {
				brief.ToneHint = strings.TrimSpace(m[1])
			}
		}

		if m := bulletRe.FindStringSubmatch(line); len(m) == 2 {
			brief.Features = append(brief.Features, strings.TrimSpace(m[1]))
		}
	}

	if brief.AppName == "" {
		// Fallback: use the first non-empty line stripped of markdown markers.
		brief.AppName = deriveNameFromLine(firstNonEmpty)
	}

	return brief
}

func deriveNameFromLine(line string) string {
	if line == "" {
		return ""
	}
	// Remove simple markdown markers like emphasis or inline code wrappers.
	s := strings.TrimSpace(line)
	s = strings.Trim(s, "`*")
	s = stripTrailingPunctuation(s)
	return s
}

func stripTrailingPunctuation(s string) string {
	return strings.TrimRight(s, " #:-")
}
