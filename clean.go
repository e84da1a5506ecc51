package facultysearch

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// absoluteHref matches hrefs that already carry a scheme. A few profile
// links on the target site start with stray whitespace, so it is allowed.
var absoluteHref = regexp.MustCompile(`(?i)^\s*https?://`)

// ResolveHref normalizes one href found on a page of the site rooted at
// baseOrigin. Absolute links are kept, root-relative links are joined to
// baseOrigin, and everything else (fragments, mailto:, page-relative paths)
// is dropped by returning "".
func ResolveHref(baseOrigin, href string) string {
	if absoluteHref.MatchString(href) {
		return strings.TrimSpace(href)
	}
	if !strings.HasPrefix(href, "/") {
		return ""
	}

	base, err := url.Parse(baseOrigin)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// BaseOrigin returns scheme://host of rawURL.
func BaseOrigin(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q is not an absolute URL", rawURL)
	}
	return u.Scheme + "://" + u.Host, nil
}
