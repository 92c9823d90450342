package model

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode controls how lanes spend time while executing items.
type Mode string

const (
	// ModeAccelerated accumulates item durations without any real delay.
	ModeAccelerated Mode = "accelerated"
	// ModeRealtime suspends the lane for every item duration and measures
	// wall-clock time.
	ModeRealtime Mode = "realtime"
)

// IsRealtime returns true when lanes should actually wait.
func (m Mode) IsRealtime() bool {
	return m == ModeRealtime
}

// ParseMode parses a mode name; an empty name yields ModeAccelerated.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(ModeAccelerated), "simulated":
		return ModeAccelerated, nil
	case string(ModeRealtime), "real-time":
		return ModeRealtime, nil
	}
	return "", errors.Errorf("unsupported mode: %q", name)
}
