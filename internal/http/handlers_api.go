package http

import (
	"net/http"

	"pocket/internal/core"
	"pocket/internal/ledger"
	"pocket/internal/services"
	"pocket/internal/session"
)

// snapshotResponse is the JSON form of a snapshot. Stored amounts stay in
// base units; Display carries the same figures formatted for the session's
// currency.
type snapshotResponse struct {
	services.Snapshot
	Display displayStats `json:"display"`
}

type displayStats struct {
	Balance       string `json:"balance"`
	TotalEarned   string `json:"totalEarned"`
	TotalSpent    string `json:"totalSpent"`
	NextThreshold string `json:"nextThreshold"`
}

func newSnapshotResponse(snap services.Snapshot) snapshotResponse {
	return snapshotResponse{
		Snapshot: snap,
		Display: displayStats{
			Balance:       formatBase(snap.Stats.Balance, snap.Currency),
			TotalEarned:   formatBase(snap.Stats.TotalEarned, snap.Currency),
			TotalSpent:    formatBase(snap.Stats.TotalSpent, snap.Currency),
			NextThreshold: core.Format(snap.Stats.NextThreshold, core.Reference),
		},
	}
}

type seriesResponse struct {
	Mode     ledger.Mode     `json:"mode"`
	Currency core.Currency   `json:"currency"`
	Buckets  []ledger.Bucket `json:"buckets"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap services.Snapshot
	err := s.withTracker(r, func(tr *services.Tracker) error {
		snap = tr.Snapshot()
		return nil
	})
	if err != nil {
		writeJSON(w, statusFor(err), errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, newSnapshotResponse(snap))
}

// handleSeries returns chart buckets; mode defaults to weekly.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		raw = string(ledger.ModeWeekly)
	}
	mode, err := ledger.ParseMode(raw)
	if err != nil {
		writeJSON(w, statusFor(err), errorBody{Error: err.Error()})
		return
	}

	var resp seriesResponse
	err = s.withTracker(r, func(tr *services.Tracker) error {
		buckets, err := tr.Series(mode)
		if err != nil {
			return err
		}
		resp = seriesResponse{Mode: mode, Currency: tr.Currency(), Buckets: buckets}
		return nil
	})
	if err != nil {
		writeJSON(w, statusFor(err), errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// withTracker runs fn on the caller's tracker under the session lock.
func (s *Server) withTracker(r *http.Request, fn func(*services.Tracker) error) error {
	_, entry, ok := s.lookupSession(r)
	if !ok {
		return session.ErrNotAuthenticated
	}
	return entry.Do(func(st *session.State) error {
		tr, err := st.Tracker()
		if err != nil {
			return err
		}
		return fn(tr)
	})
}
