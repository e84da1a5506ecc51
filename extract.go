package facultysearch

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DocumentText returns the visible text of an HTML document with each text
// node separated by a single space. Text under <script> and <style> is
// skipped.
func DocumentText(body []byte) string {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	// skipDepth > 0 while inside script/style
	var skipDepth int

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		skip := n.Type == html.ElementNode && isHiddenElement(n.Data)
		if skip {
			skipDepth++
		}
		if skipDepth == 0 && n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if skip {
			skipDepth--
		}
	}
	walk(root)
	return sb.String()
}

func isHiddenElement(tag string) bool {
	return strings.EqualFold(tag, "script") || strings.EqualFold(tag, "style")
}

// DocumentTitle returns the trimmed <title> of doc, or "" if there is none.
func DocumentTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}
