package http

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"pocket/internal/i18n"
	"pocket/internal/log"
	"pocket/internal/services"
	"pocket/internal/session"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady reports readiness plus session and limiter gauges.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status, code := "ready", http.StatusOK
	checks := map[string]interface{}{"templates": "ok"}
	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	checks["sessions"] = map[string]interface{}{"active": s.sessions.Len()}
	checks["rate_limiter"] = map[string]interface{}{
		"active_clients": s.limiter.ActiveClients(),
		"rejected":       s.limiter.Rejected(),
	}
	checks["requests"] = map[string]interface{}{
		"total":      s.tracer.Total(),
		"suspicious": s.detector.Flagged(),
	}

	writeJSON(w, code, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleIndex shows the login screen or the dashboard, depending on the
// session state.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	tag := s.languageFor(r)
	s.rememberLanguage(w, r, tag)
	l := i18n.New(tag)

	var view dashboardView
	err := s.withTracker(r, func(tr *services.Tracker) error {
		var err error
		view, err = buildDashboard(tr, l)
		return err
	})
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		s.render(w, r, http.StatusOK, "login.html", loginView{L: l})
	case err != nil:
		log.FromContext(r.Context()).Error("Dashboard build failed", log.FieldError, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		s.render(w, r, http.StatusOK, "dashboard.html", view)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	in := NewRequestBodyParser(r)
	l := i18n.New(s.languageFor(r))
	logger := log.FromContext(r.Context())

	if err := in.Parse(); err != nil {
		s.fail(w, r, in, log.OpLogin, err, http.StatusBadRequest)
		return
	}
	username := in.Get("username")

	entry := s.sessionOrCreate(w, r)
	var user string
	err := entry.Do(func(st *session.State) error {
		if err := st.Login(username); err != nil {
			return err
		}
		tr, _ := st.Tracker()
		user = tr.User()
		return nil
	})
	if err != nil {
		log.NewStructuredLogger(logger).LogRejected(r.Context(), log.OpLogin, err, nil)
		switch {
		case wantsJSON(r, in):
			writeJSON(w, statusFor(err), errorBody{Error: err.Error()})
		default:
			s.render(w, r, statusFor(err), "login.html", loginView{L: l, Username: username, Error: l.T("error.invalid")})
		}
		return
	}

	logger.WithComponent(log.ComponentSession).Info("User logged in", log.FieldOperation, log.OpLogin, log.FieldUser, user)
	switch {
	case wantsJSON(r, in):
		writeJSON(w, http.StatusOK, map[string]string{"user": user})
	case isHTMX(r):
		NewHTMXResponse().Redirect("/").Write(w)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// handleLogout drops the session and its data.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, entry, ok := s.lookupSession(r); ok {
		_ = entry.Do(func(st *session.State) error {
			st.Logout()
			return nil
		})
		s.sessions.Delete(token)
		log.FromContext(r.Context()).WithComponent(log.ComponentSession).Info("User logged out", log.FieldOperation, log.OpLogout)
	}
	s.clearSessionCookie(w)

	switch {
	case wantsJSON(r, nil):
		w.WriteHeader(http.StatusNoContent)
	case isHTMX(r):
		NewHTMXResponse().Redirect("/").Write(w)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.FromContext(r.Context()).Error("Template execution failed",
			log.FieldOperation, log.OpRender, log.FieldError, err, "template", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
