package htmldoc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ValidateDocument checks a document against the input contract: the body
// holds exactly one wrapper element. Generated documents that fail this check
// are rejected before they reach the parser.
func ValidateDocument(input string) error {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	body := findFirst(doc, "body")
	if body == nil {
		return ErrNoWrapper
	}
	count := 0
	var dfs func(*html.Node)
	dfs = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, WrapperTag) {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(body)
	switch {
	case count == 0:
		return ErrNoWrapper
	case count > 1:
		return fmt.Errorf("document has %d <%s> wrappers, want exactly one", count, WrapperTag)
	}
	return nil
}
