package http

import (
	"errors"
	"net/http"

	"pocket/internal/core"
	"pocket/internal/i18n"
	"pocket/internal/log"
	"pocket/internal/services"
	"pocket/internal/session"
)

// action applies one form submission to the session's tracker.
type action func(r *http.Request, tr *services.Tracker, in *RequestBodyParser) error

// handleAction runs act under the session lock and answers in the format
// the caller expects: JSON snapshot, htmx refresh or a redirect home.
func (s *Server) handleAction(op string, act action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		in := NewRequestBodyParser(r)
		if err := in.Parse(); err != nil {
			s.fail(w, r, in, op, err, http.StatusBadRequest)
			return
		}

		_, entry, ok := s.lookupSession(r)
		if !ok {
			s.fail(w, r, in, op, session.ErrNotAuthenticated, http.StatusUnauthorized)
			return
		}

		var snap services.Snapshot
		err := entry.Do(func(st *session.State) error {
			tr, err := st.Tracker()
			if err != nil {
				return err
			}
			if err := act(r, tr, in); err != nil {
				return err
			}
			snap = tr.Snapshot()
			return nil
		})
		if err != nil {
			s.fail(w, r, in, op, err, statusFor(err))
			return
		}

		switch {
		case wantsJSON(r, in):
			writeJSON(w, http.StatusOK, newSnapshotResponse(snap))
		case isHTMX(r):
			NewHTMXResponse().
				TriggerLedgerChanged(snap.Version).
				TriggerFormReset().
				Refresh().
				Write(w)
		default:
			http.Redirect(w, r, "/", http.StatusSeeOther)
		}
	}
}

// fail logs a rejected action and reports it. HTML form posts get the page
// re-rendered with an error banner.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, in *RequestBodyParser, op string, err error, status int) {
	logger := log.FromContext(r.Context())
	l := i18n.New(s.languageFor(r))

	if status >= http.StatusInternalServerError {
		logger.Error("Ledger action failed", log.FieldOperation, op, log.FieldError, err)
	} else {
		log.NewStructuredLogger(logger).LogRejected(r.Context(), op, err, nil)
	}

	unauthenticated := errors.Is(err, session.ErrNotAuthenticated)
	switch {
	case wantsJSON(r, in):
		writeJSON(w, status, errorBody{Error: err.Error()})
	case isHTMX(r) && unauthenticated:
		NewHTMXResponse().Status(status).Redirect("/").Write(w)
	case isHTMX(r):
		ErrorResponse(status, l.T(messageKey(err))).Write(w)
	case unauthenticated:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		s.renderDashboardError(w, r, l, status, l.T(messageKey(err)))
	}
}

func (s *Server) renderDashboardError(w http.ResponseWriter, r *http.Request, l i18n.Translator, status int, msg string) {
	var view dashboardView
	err := s.withTracker(r, func(tr *services.Tracker) error {
		var err error
		view, err = buildDashboard(tr, l)
		return err
	})
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	view.Error = msg
	s.render(w, r, status, "dashboard.html", view)
}

// createTransaction reads the direction from "kind", or from "type" as the
// JSON snapshot names it.
func createTransaction(_ *http.Request, tr *services.Tracker, in *RequestBodyParser) error {
	raw := in.Get("kind")
	if raw == "" {
		raw = in.Get("type")
	}
	kind, err := core.ParseKind(raw)
	if err != nil {
		return err
	}
	amount, err := in.Amount("amount")
	if err != nil {
		return err
	}
	_, err = tr.AddTransaction(kind, amount, in.Get("description"), in.Get("goal_id"))
	return err
}

func editTransaction(r *http.Request, tr *services.Tracker, in *RequestBodyParser) error {
	amount, err := in.Amount("amount")
	if err != nil {
		return err
	}
	_, err = tr.EditTransaction(r.PathValue("id"), amount, in.Get("description"))
	return err
}

func createGoal(_ *http.Request, tr *services.Tracker, in *RequestBodyParser) error {
	target, err := in.Amount("target")
	if err != nil {
		return err
	}
	current, err := in.OptionalAmount("current")
	if err != nil {
		return err
	}
	_, err = tr.AddGoal(in.Get("name"), target, current)
	return err
}

func editGoal(r *http.Request, tr *services.Tracker, in *RequestBodyParser) error {
	target, err := in.Amount("target")
	if err != nil {
		return err
	}
	current, err := in.OptionalAmount("current")
	if err != nil {
		return err
	}
	_, err = tr.EditGoal(r.PathValue("id"), in.Get("name"), target, current)
	return err
}

func createRecurring(_ *http.Request, tr *services.Tracker, in *RequestBodyParser) error {
	freq, err := core.ParseFrequency(in.Get("frequency"))
	if err != nil {
		return err
	}
	amount, err := in.Amount("amount")
	if err != nil {
		return err
	}
	_, _, err = tr.AddRecurring(in.Get("name"), amount, freq)
	return err
}

func setCurrency(_ *http.Request, tr *services.Tracker, in *RequestBodyParser) error {
	return tr.SetDisplayCurrency(in.Get("currency"))
}
