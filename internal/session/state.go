// Package session holds the two-screen application state of one browser
// session and the store that keeps those sessions in memory.
package session

import (
	"errors"
	"strings"

	"pocket/internal/services"
)

var (
	ErrEmptyUsername    = errors.New("username is required")
	ErrNotAuthenticated = errors.New("not logged in")
)

// State is either unauthenticated (no tracker) or authenticated with a
// tracker owned by the logged-in user.
type State struct {
	tracker *services.Tracker
	opts    []services.Option
}

// NewState returns an unauthenticated state. opts are applied to every
// tracker created by Login.
func NewState(opts ...services.Option) *State {
	return &State{opts: opts}
}

func (s *State) Authenticated() bool { return s.tracker != nil }

// Login starts a fresh tracker for username. Logging in again discards the
// previous user's data.
func (s *State) Login(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	s.tracker = services.NewTracker(username, s.opts...)
	return nil
}

// Logout returns to the login screen and drops all collections.
func (s *State) Logout() {
	s.tracker = nil
}

// Tracker returns the active tracker or ErrNotAuthenticated.
func (s *State) Tracker() (*services.Tracker, error) {
	if s.tracker == nil {
		return nil, ErrNotAuthenticated
	}
	return s.tracker, nil
}
