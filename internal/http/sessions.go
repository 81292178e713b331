package http

import (
	"net/http"

	"pocket/internal/session"
)

// lookupSession returns the session named by the request cookie.
func (s *Server) lookupSession(r *http.Request) (string, *session.Entry, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", nil, false
	}
	e, ok := s.sessions.Get(c.Value)
	if !ok {
		return "", nil, false
	}
	return c.Value, e, true
}

// sessionOrCreate reuses the caller's session or starts a new one and sets
// its cookie.
func (s *Server) sessionOrCreate(w http.ResponseWriter, r *http.Request) *session.Entry {
	if _, e, ok := s.lookupSession(r); ok {
		return e
	}
	token, e := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return e
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
