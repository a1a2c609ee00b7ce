package state

import (
	"log/slog"

	"antipode/internal/geom"
)

// Machine owns the interaction state. It is not safe for concurrent use:
// every transition runs on the single event loop that owns it.
type Machine struct {
	idx    *geom.Index
	log    *slog.Logger
	strict bool
	s      Snapshot
}

type Option func(*Machine)

func WithLogger(l *slog.Logger) Option { return func(m *Machine) { m.log = l } }

// WithStrict makes precondition violations return a *PreconditionError
// instead of only being logged.
func WithStrict(strict bool) Option { return func(m *Machine) { m.strict = strict } }

// New returns an Idle machine over a fully loaded dataset.
func New(idx *geom.Index, opts ...Option) *Machine {
	m := &Machine{idx: idx, log: slog.Default()}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Machine) Snapshot() Snapshot { return m.s }

func (m *Machine) Index() *geom.Index { return m.idx }

// Hover sets the hovered country and active point. The point and antipode
// always follow the latest call; ChangeFeature is only reported when the
// hovered country differs from the previous one.
func (m *Machine) Hover(c *geom.Country, p geom.GeoPoint) (Change, error) {
	if m.s.IsLocked {
		return 0, m.violation("hover", "hover updates are ignored while locked")
	}
	if !p.Valid() {
		return 0, m.violation("hover", "point out of range")
	}
	prev := m.s
	m.s.Hovered = c
	m.activate(p)
	return Diff(prev, m.s), nil
}

// ClearHover drops the hover and every point field.
func (m *Machine) ClearHover() (Change, error) {
	if m.s.IsLocked {
		return 0, m.violation("clear hover", "hover updates are ignored while locked")
	}
	prev := m.s
	m.s.Hovered = nil
	m.clearPoint()
	return Diff(prev, m.s), nil
}

// Lock commits to (c, p). A nil c locks on open ocean, which requires p to
// lie outside every country.
func (m *Machine) Lock(c *geom.Country, p geom.GeoPoint) (Change, error) {
	if m.s.IsLocked {
		return 0, m.violation("lock", "already locked")
	}
	return m.lock("lock", c, p)
}

// ToggleLock releases the lock when c is the locked country, and locks on
// (c, p) otherwise, replacing any other lock.
func (m *Machine) ToggleLock(c *geom.Country, p geom.GeoPoint) (Change, error) {
	if m.s.IsLocked && m.s.Locked == c {
		return m.Unlock()
	}
	return m.lock("toggle lock", c, p)
}

// Unlock returns to hover. A remembered hover country is re-derived from its
// representative point; without one every point field is cleared.
func (m *Machine) Unlock() (Change, error) {
	if !m.s.IsLocked {
		return 0, m.violation("unlock", "not locked")
	}
	prev := m.s
	m.s.IsLocked = false
	m.s.Locked = nil
	if m.s.Hovered != nil {
		m.activate(m.s.Hovered.Centroid())
	} else {
		m.clearPoint()
	}
	return Diff(prev, m.s), nil
}

// Click is the single click contract. The target is resolved independently
// of any renderer hit test. While locked, clicking the locked country or
// open ocean releases the lock.
func (m *Machine) Click(p geom.GeoPoint) (Change, error) {
	if !p.Valid() {
		return 0, m.violation("click", "point out of range")
	}
	target := m.idx.ResolveClickTarget(p)
	if m.s.IsLocked && (target == nil || target == m.s.Locked) {
		return m.Unlock()
	}
	return m.ToggleLock(target, p)
}

// Select locks on p whatever the current phase. Used by geolocation, the
// country list and typed coordinates.
func (m *Machine) Select(c *geom.Country, p geom.GeoPoint) (Change, error) {
	return m.lock("select", c, p)
}

// PointerAt feeds a projected pointer position. ok == false means the
// pointer is off the globe and is the same as ClearHover. Pointer input is
// dropped while locked.
func (m *Machine) PointerAt(p geom.GeoPoint, ok bool) (Change, error) {
	if m.s.IsLocked {
		return 0, nil
	}
	if !ok {
		if !m.s.HasPoint && m.s.Hovered == nil {
			return 0, nil
		}
		return m.ClearHover()
	}
	return m.Hover(m.idx.CountryAtHint(p, m.s.Hovered), p)
}

// Escape unlocks while locked and is ignored otherwise.
func (m *Machine) Escape() (Change, error) {
	if !m.s.IsLocked {
		return 0, nil
	}
	return m.Unlock()
}

func (m *Machine) lock(op string, c *geom.Country, p geom.GeoPoint) (Change, error) {
	if !p.Valid() {
		return 0, m.violation(op, "point out of range")
	}
	if c == nil {
		if hit := m.idx.ResolveClickTarget(p); hit != nil {
			return 0, m.violation(op, "ocean lock on a point inside "+hit.DisplayName())
		}
	}
	prev := m.s
	m.s.IsLocked = true
	m.s.Locked = c
	m.activate(p)
	return Diff(prev, m.s), nil
}

func (m *Machine) activate(p geom.GeoPoint) {
	m.s.HasPoint = true
	m.s.ActivePoint = p
	m.s.AntipodePoint = geom.AntipodeOf(p)
	m.s.AntipodeCountry = m.idx.CountryAtHint(m.s.AntipodePoint, m.s.AntipodeCountry)
}

func (m *Machine) clearPoint() {
	m.s.HasPoint = false
	m.s.ActivePoint = geom.GeoPoint{}
	m.s.AntipodePoint = geom.GeoPoint{}
	m.s.AntipodeCountry = nil
}

func (m *Machine) violation(op, reason string) error {
	err := &PreconditionError{Op: op, Phase: m.s.Phase(), Reason: reason}
	m.log.Debug("state: precondition violation", "op", op, "phase", m.s.Phase().String(), "reason", reason)
	if m.strict {
		return err
	}
	return nil
}
