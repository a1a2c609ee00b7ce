package state

import (
	"strings"

	"antipode/internal/geom"
)

// Phase is the coarse interaction state.
type Phase int

const (
	Idle Phase = iota
	Hovering
	Locked
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Hovering:
		return "hovering"
	case Locked:
		return "locked"
	}
	return "unknown"
}

// Snapshot is a read-only copy of the interaction state. Country pointers
// refer to the immutable dataset and are safe to share.
type Snapshot struct {
	Hovered  *geom.Country
	Locked   *geom.Country
	IsLocked bool

	// HasPoint guards ActivePoint and AntipodePoint.
	HasPoint        bool
	ActivePoint     geom.GeoPoint
	AntipodePoint   geom.GeoPoint
	AntipodeCountry *geom.Country
}

func (s Snapshot) Phase() Phase {
	switch {
	case s.IsLocked:
		return Locked
	case s.HasPoint:
		return Hovering
	}
	return Idle
}

// Active is the country that rendering should treat as selected.
func (s Snapshot) Active() *geom.Country {
	if s.IsLocked {
		return s.Locked
	}
	return s.Hovered
}

// Change flags what differs between two snapshots.
type Change uint8

const (
	// ChangePoint: active point appeared, moved or vanished.
	ChangePoint Change = 1 << iota
	// ChangeFeature: the authoritative country changed.
	ChangeFeature
	// ChangeAntipode: antipode country or lock flag changed; markers are stale.
	ChangeAntipode
	// ChangeLock: the lock flag flipped.
	ChangeLock
)

func (c Change) Has(f Change) bool { return c&f != 0 }

// Diff reports what a consumer must refresh going from prev to next.
func Diff(prev, next Snapshot) Change {
	var c Change
	if prev.HasPoint != next.HasPoint || (next.HasPoint && prev.ActivePoint != next.ActivePoint) {
		c |= ChangePoint
	}
	if prev.Active() != next.Active() {
		c |= ChangeFeature
	}
	if prev.IsLocked != next.IsLocked {
		c |= ChangeLock | ChangeAntipode
	}
	if prev.AntipodeCountry != next.AntipodeCountry {
		c |= ChangeAntipode
	}
	return c
}

func (c Change) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		flag Change
		name string
	}{{ChangePoint, "point"}, {ChangeFeature, "feature"}, {ChangeAntipode, "antipode"}, {ChangeLock, "lock"}} {
		if c.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}
