package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"pocket/internal/core"
	"pocket/internal/i18n"
	"pocket/internal/ledger"
	"pocket/internal/session"
)

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON is true for API clients: JSON bodies or an Accept header that
// prefers JSON over HTML.
func wantsJSON(r *http.Request, in *RequestBodyParser) bool {
	if in != nil && in.IsJSON() {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps core and session errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrInvalidFrequency),
		errors.Is(err, core.ErrUnknownCurrency),
		errors.Is(err, session.ErrEmptyUsername):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// messageKey picks the user-facing label for err.
func messageKey(err error) string {
	if errors.Is(err, core.ErrNotFound) {
		return "error.not_found"
	}
	return "error.invalid"
}

// languageFor negotiates the page language: explicit ?lang=, then the
// cookie, then Accept-Language.
func (s *Server) languageFor(r *http.Request) language.Tag {
	candidates := []string{r.URL.Query().Get("lang")}
	if c, err := r.Cookie(langCookie); err == nil {
		candidates = append(candidates, c.Value)
	}
	candidates = append(candidates, r.Header.Get("Accept-Language"))
	return i18n.Match(s.opts.DefaultLanguage, candidates...)
}

// rememberLanguage persists an explicit ?lang= choice.
func (s *Server) rememberLanguage(w http.ResponseWriter, r *http.Request, tag language.Tag) {
	if r.URL.Query().Get("lang") == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     langCookie,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   365 * 24 * 3600,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
