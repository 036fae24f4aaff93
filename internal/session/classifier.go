package session

import (
	"net/http"
	"net/url"
	"strings"
)

// HeaderClientType is the custom header by which a trusted frontend
// declares its session namespace explicitly.
const HeaderClientType = "X-Client-Type"

// defaultAdminPrefixes are the route prefixes owned by the admin surface.
var defaultAdminPrefixes = []string{"/auth/admin", "/admin"}

// ClassifierConfig configures namespace attribution for cross-origin
// browser requests.
type ClassifierConfig struct {
	// UserCookieName and AdminCookieName are the two cookie names; a
	// request carrying only the admin cookie is attributed to admin.
	UserCookieName  string
	AdminCookieName string

	// UserOrigin and AdminOrigin are the public origins of the two
	// frontends, e.g. "https://admin.example.com".
	UserOrigin  string
	AdminOrigin string

	// AdminPathPrefixes overrides the default admin route prefixes.
	AdminPathPrefixes []string
}

// Classifier deterministically maps each inbound request to a namespace
// before any session state is touched.
type Classifier struct {
	userCookie  string
	adminCookie string
	userHost    string
	adminHost   string
	prefixes    []string
}

func NewClassifier(cfg ClassifierConfig) *Classifier {
	prefixes := cfg.AdminPathPrefixes
	if len(prefixes) == 0 {
		prefixes = defaultAdminPrefixes
	}
	return &Classifier{
		userCookie:  cfg.UserCookieName,
		adminCookie: cfg.AdminCookieName,
		userHost:    originHost(cfg.UserOrigin),
		adminHost:   originHost(cfg.AdminOrigin),
		prefixes:    prefixes,
	}
}

// Classify resolves the session namespace for a request. The checks run in
// decreasing order of reliability and the first match wins: the explicit
// client-type header is authoritative, path inference comes next, and
// cookie/Origin/Referer signals are best-effort fallbacks for cross-origin
// requests where headers may be restricted.
func (c *Classifier) Classify(r *http.Request) Namespace {
	if strings.EqualFold(r.Header.Get(HeaderClientType), string(NamespaceAdmin)) {
		return NamespaceAdmin
	}

	for _, p := range c.prefixes {
		if r.URL.Path == p || strings.HasPrefix(r.URL.Path, p+"/") {
			return NamespaceAdmin
		}
	}

	if c.hasCookie(r, c.adminCookie) && !c.hasCookie(r, c.userCookie) {
		return NamespaceAdmin
	}

	if c.matchesAdminHost(r.Header.Get("Origin")) {
		return NamespaceAdmin
	}
	if c.matchesAdminHost(r.Header.Get("Referer")) {
		return NamespaceAdmin
	}

	return NamespaceUser
}

func (c *Classifier) hasCookie(r *http.Request, name string) bool {
	if name == "" {
		return false
	}
	_, err := r.Cookie(name)
	return err == nil
}

// matchesAdminHost reports whether the raw URL's host equals the admin
// origin host without also matching the user origin host. The exclusion
// keeps a shared-host deployment from classifying everything as admin.
func (c *Classifier) matchesAdminHost(raw string) bool {
	if raw == "" || c.adminHost == "" {
		return false
	}
	h := originHost(raw)
	return h == c.adminHost && h != c.userHost
}

func originHost(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Host)
}
