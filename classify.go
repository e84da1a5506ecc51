package facultysearch

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultTargetSelector marks a faculty profile page.
const DefaultTargetSelector = "div.fac-info"

// Classifier decides whether a parsed page is a target and pulls its
// outgoing links.
type Classifier struct {
	Selector string
	policy   *bluemonday.Policy
}

// NewClassifier returns a Classifier matching selector, or
// DefaultTargetSelector when selector is empty.
func NewClassifier(selector string) *Classifier {
	if strings.TrimSpace(selector) == "" {
		selector = DefaultTargetSelector
	}
	return &Classifier{
		Selector: selector,
		policy:   bluemonday.StrictPolicy(),
	}
}

// IsTarget reports whether doc contains at least one marker element.
func (c *Classifier) IsTarget(doc *goquery.Document) bool {
	return doc.Find(c.Selector).Length() > 0
}

// ExtractLinks returns every usable href in doc, in document order.
// Duplicates are kept; the crawler is responsible for dedup.
func (c *Classifier) ExtractLinks(doc *goquery.Document, baseOrigin string) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if u := ResolveHref(baseOrigin, href); u != "" {
			links = append(links, u)
		}
	})
	return links
}

// Summary returns the plain text of the first marker element with markup
// stripped and whitespace collapsed.
func (c *Classifier) Summary(doc *goquery.Document) string {
	sel := doc.Find(c.Selector).First()
	if sel.Length() == 0 {
		return ""
	}
	raw, err := sel.Html()
	if err != nil {
		return ""
	}
	// Closing tags become spaces so adjacent blocks don't run together.
	raw = strings.ReplaceAll(raw, "</", " </")
	// StrictPolicy escapes what it keeps.
	clean := c.sanitizer().Sanitize(raw)
	return strings.Join(strings.Fields(html.UnescapeString(clean)), " ")
}

func (c *Classifier) sanitizer() *bluemonday.Policy {
	if c.policy == nil {
		c.policy = bluemonday.StrictPolicy()
	}
	return c.policy
}
