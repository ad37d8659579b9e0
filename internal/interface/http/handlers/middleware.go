// Package handlers contains the HTTP controllers and the request middleware
// chain: session loading, the access guards, method override, and request
// logging.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/campus-hub/student-records/internal/domain/session"
	"github.com/campus-hub/student-records/internal/domain/shared"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionManager loads sessions from the signed cookie, lazily creates
// anonymous sessions (so flash messages survive redirects for logged-out
// visitors), and writes sessions back to the store.
type SessionManager struct {
	store  session.Store
	codec  *session.CookieCodec
	secure bool
	logger *slog.Logger
}

// NewSessionManager creates a SessionManager.
func NewSessionManager(store session.Store, codec *session.CookieCodec, secure bool, logger *slog.Logger) *SessionManager {
	return &SessionManager{store: store, codec: codec, secure: secure, logger: logger}
}

// Load is middleware that resolves the request's session. A missing,
// tampered or expired cookie yields a fresh anonymous session; nothing is
// persisted until a handler calls Commit.
func (m *SessionManager) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.resolve(r)
		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionManager) resolve(r *http.Request) *session.Session {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		return session.New()
	}
	id, err := m.codec.Decode(cookie.Value)
	if err != nil {
		return session.New()
	}
	sess, err := m.store.Get(r.Context(), id)
	if err != nil {
		if !shared.IsNotFound(err) {
			m.logger.Error("session load failed", slog.String("error", err.Error()))
		}
		return session.New()
	}
	return sess
}

// SessionFrom returns the request's session. The Load middleware guarantees
// one exists on every route underneath it.
func SessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionContextKey).(*session.Session)
	return sess
}

// Commit persists the session and (re)issues the signed cookie. Handlers
// call it after mutating the session: setting a flash, logging in, or
// clearing a popped flash.
func (m *SessionManager) Commit(ctx context.Context, w http.ResponseWriter, sess *session.Session) error {
	if err := m.store.Save(ctx, sess); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    m.codec.Encode(sess.ID),
		Path:     "/",
		MaxAge:   int(session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie drops the session cookie. The server-side record is destroyed
// separately by the logout command.
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// RedirectWithError sets a one-shot error message and redirects.
func (m *SessionManager) RedirectWithError(w http.ResponseWriter, r *http.Request, sess *session.Session, msg, location string) {
	sess.Error = msg
	if err := m.Commit(r.Context(), w, sess); err != nil {
		m.logger.Error("failed to persist flash", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// RedirectWithMessage sets a one-shot success message and redirects.
func (m *SessionManager) RedirectWithMessage(w http.ResponseWriter, r *http.Request, sess *session.Session, msg, location string) {
	sess.Message = msg
	if err := m.Commit(r.Context(), w, sess); err != nil {
		m.logger.Error("failed to persist flash", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// PopFlash reads and clears the session's one-shot values, persisting the
// cleared state so a refresh never replays the message.
func (m *SessionManager) PopFlash(w http.ResponseWriter, r *http.Request, sess *session.Session) session.Flash {
	if !sess.HasFlash() {
		return session.Flash{}
	}
	flash := sess.PopFlash()
	if err := m.Commit(r.Context(), w, sess); err != nil {
		m.logger.Error("failed to clear flash", slog.String("error", err.Error()))
	}
	return flash
}

// RequireAuth gates protected routes: unauthenticated requests get a
// one-shot error and a redirect to the login page. The decision keys off
// the trusted server-side session only, never request parameters.
func (m *SessionManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r.Context())
		if !sess.IsAuthenticated() {
			m.RedirectWithError(w, r, sess, "Please login to access this page", "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAnonymous gates the auth pages: already-authenticated sessions are
// sent to the student listing instead of the form.
func (m *SessionManager) RequireAnonymous(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r.Context())
		if sess.IsAuthenticated() {
			http.Redirect(w, r, "/students", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MethodOverride lets HTML forms reach the PUT and DELETE routes via a
// "_method" field on a POST, mirroring the classic method-override pattern.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch r.PostFormValue("_method") {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs one line per request with timing and status.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
