package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClassifier() *Classifier {
	return NewClassifier(ClassifierConfig{
		UserCookieName:  "session",
		AdminCookieName: "admin_session",
		UserOrigin:      "http://store.example.com",
		AdminOrigin:     "http://admin.example.com",
	})
}

func TestClassifier_ExplicitHeaderWins(t *testing.T) {
	cls := newTestClassifier()

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set(HeaderClientType, "admin")
	// Conflicting signals must not matter: the header is authoritative.
	req.Header.Set("Origin", "http://store.example.com")
	req.AddCookie(&http.Cookie{Name: "session", Value: "x"})

	if got := cls.Classify(req); got != NamespaceAdmin {
		t.Fatalf("expected admin, got %s", got)
	}
}

func TestClassifier_AdminPathPrefix(t *testing.T) {
	cls := newTestClassifier()

	for _, path := range []string{"/auth/admin/login", "/admin/orders", "/auth/admin", "/admin"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		if got := cls.Classify(req); got != NamespaceAdmin {
			t.Fatalf("path %s: expected admin, got %s", path, got)
		}
	}

	// Prefix match must not swallow lookalike paths.
	req := httptest.NewRequest(http.MethodGet, "/administrator", nil)
	if got := cls.Classify(req); got != NamespaceUser {
		t.Fatalf("/administrator: expected user, got %s", got)
	}
}

func TestClassifier_AdminCookieOnly(t *testing.T) {
	cls := newTestClassifier()

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.AddCookie(&http.Cookie{Name: "admin_session", Value: "x"})
	if got := cls.Classify(req); got != NamespaceAdmin {
		t.Fatalf("expected admin, got %s", got)
	}

	// Both cookies present: the cookie signal is ambiguous, fall through.
	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.AddCookie(&http.Cookie{Name: "admin_session", Value: "x"})
	req.AddCookie(&http.Cookie{Name: "session", Value: "y"})
	if got := cls.Classify(req); got != NamespaceUser {
		t.Fatalf("expected user, got %s", got)
	}
}

func TestClassifier_OriginAndReferer(t *testing.T) {
	cls := newTestClassifier()

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", "http://admin.example.com")
	if got := cls.Classify(req); got != NamespaceAdmin {
		t.Fatalf("origin: expected admin, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Referer", "http://admin.example.com/orders")
	if got := cls.Classify(req); got != NamespaceAdmin {
		t.Fatalf("referer: expected admin, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", "http://store.example.com")
	if got := cls.Classify(req); got != NamespaceUser {
		t.Fatalf("user origin: expected user, got %s", got)
	}
}

func TestClassifier_SharedHostExclusion(t *testing.T) {
	cls := NewClassifier(ClassifierConfig{
		UserCookieName:  "session",
		AdminCookieName: "admin_session",
		UserOrigin:      "http://app.example.com",
		AdminOrigin:     "http://app.example.com",
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", "http://app.example.com")
	if got := cls.Classify(req); got != NamespaceUser {
		t.Fatalf("shared host: expected user, got %s", got)
	}
}

func TestClassifier_DefaultIsUser(t *testing.T) {
	cls := newTestClassifier()

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	if got := cls.Classify(req); got != NamespaceUser {
		t.Fatalf("expected user, got %s", got)
	}
}
