package services

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time for new entries and chart series.
//
//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks -source=ports.go
type Clock interface {
	Now() time.Time
}

// IDGenerator hands out identifiers unique for the lifetime of a session.
type IDGenerator interface {
	NewID() string
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// UUIDGenerator issues random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
