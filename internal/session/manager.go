package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMaxAge is the sliding expiry window applied to both namespaces
// unless configured otherwise.
const DefaultMaxAge = 7 * 24 * time.Hour

// NamespaceConfig carries the per-namespace half of the manager
// configuration: cookie name and signing secret differ between the two
// tracks, everything else is shared policy.
type NamespaceConfig struct {
	CookieName string
	Secret     string
}

// Options configures a Manager.
type Options struct {
	User  NamespaceConfig
	Admin NamespaceConfig

	// MaxAge is the sliding expiry window; zero means DefaultMaxAge. The
	// store TTL is set to twice this value so a still-valid cookie
	// outlives store-side cleanup races.
	MaxAge time.Duration

	// Production flips the cookie attributes to Secure + SameSite=None,
	// enabling cross-site delivery between the two frontend origins.
	Production bool
}

type nsState struct {
	cookieName string
	signer     *Signer
}

// Manager owns the two independently configured session lifecycles and
// applies the one selected by the request classifier.
type Manager struct {
	store      *Sanitizer
	log        zerolog.Logger
	maxAge     time.Duration
	production bool
	ns         map[Namespace]nsState

	created func(ns Namespace)
}

func NewManager(store *Sanitizer, log zerolog.Logger, opts Options) (*Manager, error) {
	if opts.User.CookieName == "" || opts.Admin.CookieName == "" {
		return nil, errors.New("session: both cookie names are required")
	}
	if opts.User.CookieName == opts.Admin.CookieName {
		return nil, errors.New("session: namespaces must use distinct cookie names")
	}
	if opts.User.Secret == "" || opts.Admin.Secret == "" {
		return nil, errors.New("session: both signing secrets are required")
	}
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Manager{
		store:      store,
		log:        log,
		maxAge:     maxAge,
		production: opts.Production,
		ns: map[Namespace]nsState{
			NamespaceUser:  {cookieName: opts.User.CookieName, signer: NewSigner(opts.User.Secret)},
			NamespaceAdmin: {cookieName: opts.Admin.CookieName, signer: NewSigner(opts.Admin.Secret)},
		},
		created: func(Namespace) {},
	}, nil
}

// OnCreate registers a callback invoked whenever a fresh anonymous session
// is synthesized.
func (m *Manager) OnCreate(fn func(ns Namespace)) {
	if fn != nil {
		m.created = fn
	}
}

// CookieName returns the cookie name of a namespace.
func (m *Manager) CookieName(ns Namespace) string {
	return m.ns[ns].cookieName
}

// MaxAge returns the sliding expiry window.
func (m *Manager) MaxAge() time.Duration {
	return m.maxAge
}

// Session is a resolved session bound to one namespace for the duration of
// a single HTTP exchange.
type Session struct {
	Namespace Namespace
	Record    *Record
	IsNew     bool

	destroyed bool
}

// Destroyed reports whether the session was explicitly destroyed during
// this exchange; finalization must then skip persistence.
func (s *Session) Destroyed() bool {
	return s.destroyed
}

// Resolve loads the session for the given namespace from the request's
// signed cookie, or synthesizes a fresh anonymous one when the cookie is
// absent, unsigned, tampered with, expired, or corrupt. The other
// namespace's cookie is never consulted. Only a store I/O failure is
// returned as an error.
func (m *Manager) Resolve(ctx context.Context, ns Namespace, r *http.Request) (*Session, error) {
	state := m.ns[ns]

	if ck, err := r.Cookie(state.cookieName); err == nil {
		if id, ok := state.signer.Verify(ck.Value); ok {
			rec, err := m.store.Get(ctx, ns, id)
			switch {
			case err == nil:
				return &Session{Namespace: ns, Record: rec}, nil
			case errors.Is(err, ErrNotFound):
				// fall through to a fresh session
			default:
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
		}
	}

	rec, err := NewRecord(m.maxAge)
	if err != nil {
		return nil, err
	}
	m.created(ns)
	return &Session{Namespace: ns, Record: rec, IsNew: true}, nil
}

// Save persists the session and emits its Set-Cookie header. This runs on
// every exchange, even when the payload is unchanged: the sliding-expiry
// contract requires both the store record and the client's cookie expiry
// to be refreshed on every touch.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess.destroyed {
		return nil
	}
	sess.Record.Touch(m.maxAge)

	if err := m.store.Set(ctx, sess.Namespace, sess.Record, m.storeTTL()); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	state := m.ns[sess.Namespace]
	m.writeCookie(w, m.cookie(state.cookieName, state.signer.Sign(sess.Record.ID), int(m.maxAge.Seconds())))
	return nil
}

// Destroy deletes the session record and expires the namespace's cookie.
// The other namespace's session, if any, is untouched.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	sess.destroyed = true
	state := m.ns[sess.Namespace]
	m.writeCookie(w, m.cookie(state.cookieName, "", -1))

	if err := m.store.Destroy(ctx, sess.Namespace, sess.Record.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (m *Manager) storeTTL() time.Duration {
	return 2 * m.maxAge
}

// cookie builds the session cookie. httpOnly always; Secure and SameSite
// flip together on the deployment-mode flag; no Domain restriction so the
// admin and user frontends may live on different hosts.
func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.production,
		SameSite: http.SameSiteLaxMode,
	}
	if m.production {
		ck.SameSite = http.SameSiteNoneMode
	}
	return ck
}

// writeCookie sets ck on the response, replacing any Set-Cookie already
// emitted for the same cookie name. An explicit login save followed by the
// finalization touch must yield exactly one header for the namespace.
func (m *Manager) writeCookie(w http.ResponseWriter, ck *http.Cookie) {
	h := w.Header()
	if existing := h.Values("Set-Cookie"); len(existing) > 0 {
		h.Del("Set-Cookie")
		prefix := ck.Name + "="
		for _, v := range existing {
			if !strings.HasPrefix(v, prefix) {
				h.Add("Set-Cookie", v)
			}
		}
	}
	http.SetCookie(w, ck)
}
