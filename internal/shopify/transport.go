package shopify

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// adminPrefix matches the path prefix go-shopify puts in front of every
// resource path.
var adminPrefix = regexp.MustCompile(`^/admin(?:/api/[^/]+)?`)

// brandTransport sends requests to the brand's configured Admin API URL
// instead of the <shop>.myshopify.com host go-shopify derives. That keeps the
// configured URL authoritative for custom domains and proxies.
type brandTransport struct {
	base    http.RoundTripper
	admin   *url.URL
	graphql *url.URL
}

func (t *brandTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	rest := adminPrefix.ReplaceAllString(out.URL.Path, "")
	target := t.admin
	if t.graphql != nil && rest == "/graphql.json" {
		target = t.graphql
		rest = ""
	}

	out.URL.Scheme = target.Scheme
	out.URL.Host = target.Host
	out.URL.Path = strings.TrimRight(target.Path, "/") + rest
	out.URL.RawPath = ""
	out.Host = target.Host

	return t.base.RoundTrip(out)
}
