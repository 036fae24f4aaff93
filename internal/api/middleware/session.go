package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/velora/commerce-system/internal/api/metrics"
	"github.com/velora/commerce-system/internal/core/domain"
	"github.com/velora/commerce-system/internal/session"
)

const (
	ctxKeyNamespace  = "session.namespace"
	ctxKeySession    = "session.current"
	ctxKeySessionErr = "session.error"
	ctxKeyPrincipal  = "session.principal"
)

// Session classifies the request into its namespace, resolves (or creates)
// the corresponding session, and registers the finalization hook that
// persists the record and emits the Set-Cookie header before the first
// response byte. The hook is a first-class step of the request lifecycle:
// every exchange refreshes the sliding expiry, even when the payload did
// not change.
func Session(cls *session.Classifier, mgr *session.Manager, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ns := cls.Classify(c.Request())
			c.Set(ctxKeyNamespace, ns)

			sess, err := mgr.Resolve(c.Request().Context(), ns, c.Request())
			if err != nil {
				// Store unreachable. Read-only anonymous routes proceed
				// without durable session guarantees; authenticated routes
				// fail closed in RequireUser/RequireAdmin.
				log.Error().Err(err).
					Str("namespace", string(ns)).
					Msg("session resolution failed")
				c.Set(ctxKeySessionErr, err)
				return next(c)
			}
			c.Set(ctxKeySession, sess)

			c.Response().Before(func() {
				if sess.Destroyed() {
					return
				}
				if err := mgr.Save(c.Request().Context(), c.Response(), sess); err != nil {
					metrics.SessionSaveErrorsTotal.WithLabelValues(string(ns)).Inc()
					log.Error().Err(err).
						Str("namespace", string(ns)).
						Str("session_id", sess.Record.ID).
						Msg("session persistence failed at finalization")
				}
			})

			return next(c)
		}
	}
}

// NamespaceFromContext returns the namespace resolved by the classifier.
func NamespaceFromContext(c echo.Context) session.Namespace {
	if ns, ok := c.Get(ctxKeyNamespace).(session.Namespace); ok {
		return ns
	}
	return session.NamespaceUser
}

// SessionFromContext returns the resolved session, or an error when the
// session store was unreachable for this exchange.
func SessionFromContext(c echo.Context) (*session.Session, error) {
	if err, ok := c.Get(ctxKeySessionErr).(error); ok {
		return nil, err
	}
	if sess, ok := c.Get(ctxKeySession).(*session.Session); ok {
		return sess, nil
	}
	return nil, domain.ErrUnauthenticated
}

// PrincipalFromContext returns the principal injected by RequireUser or
// RequireAdmin. Nil when neither guard ran.
func PrincipalFromContext(c echo.Context) *domain.User {
	p, _ := c.Get(ctxKeyPrincipal).(*domain.User)
	return p
}
