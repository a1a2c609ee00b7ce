package state

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/paulmach/orb"

	"antipode/internal/geom"
)

func square(name string, minLon, minLat, maxLon, maxLat float64) *geom.Country {
	ring := orb.Ring{{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat}}
	return geom.NewCountry(name, orb.MultiPolygon{{ring}}, nil)
}

type fixture struct {
	idx          *geom.Index
	alpha, bravo *geom.Country
}

// alpha holds (10, 20); bravo holds the antipode of (10, 35).
func newFixture() fixture {
	a := square("Alpha", 0, 10, 20, 30)
	b := square("Bravo", -180, -40, -160, -30)
	return fixture{idx: geom.NewIndex([]*geom.Country{a, b}), alpha: a, bravo: b}
}

func assertInvariants(t *testing.T, m *Machine) {
	t.Helper()
	s := m.Snapshot()
	if !s.HasPoint {
		if s.AntipodePoint != (geom.GeoPoint{}) || s.AntipodeCountry != nil || s.ActivePoint != (geom.GeoPoint{}) {
			t.Fatalf("point absent but antipode fields set: %+v", s)
		}
	} else {
		if s.AntipodePoint != geom.AntipodeOf(s.ActivePoint) {
			t.Fatalf("antipode %v != AntipodeOf(%v)", s.AntipodePoint, s.ActivePoint)
		}
		if want := m.Index().CountryAt(s.AntipodePoint); s.AntipodeCountry != want {
			t.Fatalf("antipode country = %v, want %v", s.AntipodeCountry.DisplayName(), want.DisplayName())
		}
	}
	if !s.IsLocked && s.Locked != nil {
		t.Fatalf("unlocked but locked country set: %+v", s)
	}
}

func TestNewIsIdle(t *testing.T) {
	f := newFixture()
	m := New(f.idx)
	s := m.Snapshot()
	if s.Phase() != Idle || s.HasPoint || s.IsLocked || s.Hovered != nil || s.Locked != nil {
		t.Fatalf("new machine not idle: %+v", s)
	}
}

func TestHoverComputesAntipode(t *testing.T) {
	f := newFixture()
	m := New(f.idx)

	ch, err := m.Hover(f.alpha, geom.Pt(10, 20))
	if err != nil {
		t.Fatalf("hover: %v", err)
	}
	s := m.Snapshot()
	if s.AntipodePoint != geom.Pt(-170, -20) {
		t.Errorf("antipode = %v, want (-170, -20)", s.AntipodePoint)
	}
	if s.AntipodeCountry != nil {
		t.Errorf("antipode country = %s, want ocean", s.AntipodeCountry.Name)
	}
	if !ch.Has(ChangeFeature) || !ch.Has(ChangePoint) {
		t.Errorf("change = %v, want feature and point", ch)
	}
	if s.Phase() != Hovering || s.Active() != f.alpha {
		t.Errorf("phase = %s active = %v", s.Phase(), s.Active())
	}

	if _, err := m.Hover(f.alpha, geom.Pt(10, 35)); err != nil {
		t.Fatalf("hover: %v", err)
	}
	if got := m.Snapshot().AntipodeCountry; got != f.bravo {
		t.Errorf("antipode country = %v, want Bravo", got.DisplayName())
	}
	assertInvariants(t, m)
}

func TestRapidHoverSameFeature(t *testing.T) {
	f := newFixture()
	m := New(f.idx)
	if _, err := m.Hover(f.alpha, geom.Pt(5, 15)); err != nil {
		t.Fatal(err)
	}
	points := []geom.GeoPoint{geom.Pt(5.1, 15), geom.Pt(5.2, 15.3), geom.Pt(7, 19)}
	for _, p := range points {
		ch, err := m.Hover(f.alpha, p)
		if err != nil {
			t.Fatal(err)
		}
		if ch.Has(ChangeFeature) {
			t.Errorf("hover at %v reported a feature change", p)
		}
		if !ch.Has(ChangePoint) {
			t.Errorf("hover at %v did not report a point change", p)
		}
		if got := m.Snapshot().ActivePoint; got != p {
			t.Errorf("active point = %v, want %v", got, p)
		}
		assertInvariants(t, m)
	}
}

func TestClearHover(t *testing.T) {
	f := newFixture()
	m := New(f.idx)

	ch, _ := m.ClearHover()
	if ch != 0 {
		t.Errorf("clear on idle reported %v", ch)
	}

	m.Hover(nil, geom.Pt(-100, 0))
	ch, _ = m.ClearHover()
	if ch.Has(ChangeFeature) {
		t.Error("clearing an ocean hover reported a feature change")
	}
	if !ch.Has(ChangePoint) {
		t.Error("clearing an ocean hover did not report a point change")
	}

	m.Hover(f.alpha, geom.Pt(10, 20))
	ch, _ = m.ClearHover()
	if !ch.Has(ChangeFeature) {
		t.Error("clearing a country hover did not report a feature change")
	}
	if m.Snapshot().Phase() != Idle {
		t.Errorf("phase = %s, want idle", m.Snapshot().Phase())
	}
	assertInvariants(t, m)
}

func TestLockOceanAtOrigin(t *testing.T) {
	f := newFixture()
	m := New(f.idx, WithStrict(true))
	if _, err := m.Lock(nil, geom.Pt(0, 0)); err != nil {
		t.Fatalf("lock: %v", err)
	}
	s := m.Snapshot()
	if !s.IsLocked || s.Locked != nil {
		t.Fatalf("state = %+v, want locked on ocean", s)
	}
	if s.AntipodePoint != geom.Pt(-180, 0) {
		t.Errorf("antipode = %v, want (-180, 0)", s.AntipodePoint)
	}
	if s.AntipodeCountry != nil {
		t.Errorf("antipode country = %s, want ocean", s.AntipodeCountry.Name)
	}
	assertInvariants(t, m)
}

func TestPreconditionViolations(t *testing.T) {
	f := newFixture()
	tests := []struct {
		name string
		prep func(m *Machine)
		op   func(m *Machine) (Change, error)
	}{
		{"hover while locked", func(m *Machine) { m.Lock(f.alpha, geom.Pt(10, 20)) }, func(m *Machine) (Change, error) { return m.Hover(nil, geom.Pt(-100, 0)) }},
		{"clear while locked", func(m *Machine) { m.Lock(f.alpha, geom.Pt(10, 20)) }, func(m *Machine) (Change, error) { return m.ClearHover() }},
		{"lock while locked", func(m *Machine) { m.Lock(f.alpha, geom.Pt(10, 20)) }, func(m *Machine) (Change, error) { return m.Lock(nil, geom.Pt(-100, 0)) }},
		{"unlock while idle", func(m *Machine) {}, func(m *Machine) (Change, error) { return m.Unlock() }},
		{"ocean lock inside country", func(m *Machine) {}, func(m *Machine) (Change, error) { return m.Lock(nil, geom.Pt(10, 20)) }},
		{"hover out of range", func(m *Machine) {}, func(m *Machine) (Change, error) { return m.Hover(nil, geom.Pt(200, 0)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strict := New(f.idx, WithStrict(true))
			tt.prep(strict)
			before := strict.Snapshot()
			ch, err := tt.op(strict)
			if !errors.Is(err, ErrPreconditionViolation) {
				t.Errorf("strict err = %v, want precondition violation", err)
			}
			var pe *PreconditionError
			if !errors.As(err, &pe) || pe.Op == "" {
				t.Errorf("strict err = %#v, want *PreconditionError", err)
			}
			if ch != 0 || strict.Snapshot() != before {
				t.Error("violation mutated state")
			}

			lenient := New(f.idx)
			tt.prep(lenient)
			before = lenient.Snapshot()
			if _, err := tt.op(lenient); err != nil {
				t.Errorf("lenient err = %v, want nil", err)
			}
			if lenient.Snapshot() != before {
				t.Error("violation mutated state")
			}
		})
	}
}

func TestUnlockWithoutHoverReturnsToIdle(t *testing.T) {
	f := newFixture()
	m := New(f.idx, WithStrict(true))
	if _, err := m.Lock(f.alpha, geom.Pt(10, 20)); err != nil {
		t.Fatal(err)
	}
	ch, err := m.Unlock()
	if err != nil {
		t.Fatal(err)
	}
	if !ch.Has(ChangeLock) || !ch.Has(ChangeAntipode) {
		t.Errorf("change = %v, want lock and antipode", ch)
	}
	if s := m.Snapshot(); s != (Snapshot{}) {
		t.Errorf("state = %+v, want zero", s)
	}
}

func TestToggleLockTwiceIsIdle(t *testing.T) {
	f := newFixture()
	for _, c := range []*geom.Country{f.alpha, nil} {
		m := New(f.idx, WithStrict(true))
		p := geom.Pt(10, 20)
		if c == nil {
			p = geom.Pt(-100, 0)
		}
		if _, err := m.ToggleLock(c, p); err != nil {
			t.Fatal(err)
		}
		if !m.Snapshot().IsLocked {
			t.Fatal("first toggle did not lock")
		}
		if _, err := m.ToggleLock(c, p); err != nil {
			t.Fatal(err)
		}
		if s := m.Snapshot(); s.Phase() != Idle || s.HasPoint {
			t.Errorf("after two toggles state = %+v, want idle", s)
		}
	}
}

func TestToggleLockOtherCountryRelocks(t *testing.T) {
	f := newFixture()
	m := New(f.idx, WithStrict(true))
	m.ToggleLock(f.alpha, geom.Pt(10, 20))
	if _, err := m.ToggleLock(f.bravo, geom.Pt(-170, -35)); err != nil {
		t.Fatal(err)
	}
	s := m.Snapshot()
	if !s.IsLocked || s.Locked != f.bravo || s.ActivePoint != geom.Pt(-170, -35) {
		t.Errorf("state = %+v, want locked on Bravo", s)
	}
	assertInvariants(t, m)
}

func TestUnlockRestoresHoverFromCentroid(t *testing.T) {
	f := newFixture()
	m := New(f.idx, WithStrict(true))
	m.PointerAt(geom.Pt(2, 12), true)
	if _, err := m.Click(geom.Pt(2, 12)); err != nil {
		t.Fatal(err)
	}
	if s := m.Snapshot(); !s.IsLocked || s.Locked != f.alpha {
		t.Fatalf("click did not lock Alpha: %+v", s)
	}
	// Pointer motion while locked is dropped.
	m.PointerAt(geom.Pt(-100, 0), true)
	if got := m.Snapshot().ActivePoint; got != geom.Pt(2, 12) {
		t.Fatalf("pointer moved locked point to %v", got)
	}
	if _, err := m.Escape(); err != nil {
		t.Fatal(err)
	}
	s := m.Snapshot()
	if s.IsLocked || s.Hovered != f.alpha {
		t.Fatalf("state = %+v, want hovering Alpha", s)
	}
	if s.ActivePoint != f.alpha.Centroid() {
		t.Errorf("active point = %v, want centroid %v", s.ActivePoint, f.alpha.Centroid())
	}
	assertInvariants(t, m)
}

func TestClickContract(t *testing.T) {
	f := newFixture()
	m := New(f.idx, WithStrict(true))

	// Ocean click while unlocked locks on ocean.
	if _, err := m.Click(geom.Pt(-100, 0)); err != nil {
		t.Fatal(err)
	}
	if s := m.Snapshot(); !s.IsLocked || s.Locked != nil {
		t.Fatalf("ocean click: %+v", s)
	}
	// Ocean click while locked unlocks.
	m.Click(geom.Pt(-90, 0))
	if m.Snapshot().IsLocked {
		t.Fatal("ocean click while locked did not unlock")
	}
	// A click inside a country is a country click even with no hover.
	m.Click(geom.Pt(10, 20))
	if s := m.Snapshot(); s.Locked != f.alpha {
		t.Fatalf("country click locked %v", s.Locked.DisplayName())
	}
	// Another country relocks.
	m.Click(geom.Pt(-170, -35))
	if s := m.Snapshot(); s.Locked != f.bravo || !s.IsLocked {
		t.Fatalf("relock: %+v", s)
	}
	// Same country again releases.
	m.Click(geom.Pt(-165, -32))
	if m.Snapshot().IsLocked {
		t.Fatal("second click on Bravo did not unlock")
	}
	assertInvariants(t, m)
}

func TestPointerAtOffGlobe(t *testing.T) {
	f := newFixture()
	m := New(f.idx)
	ch, _ := m.PointerAt(geom.GeoPoint{}, false)
	if ch != 0 {
		t.Errorf("off-globe on idle reported %v", ch)
	}
	m.PointerAt(geom.Pt(10, 20), true)
	if m.Snapshot().Hovered != f.alpha {
		t.Fatal("pointer did not resolve Alpha")
	}
	ch, _ = m.PointerAt(geom.GeoPoint{}, false)
	if !ch.Has(ChangeFeature) || m.Snapshot().Phase() != Idle {
		t.Errorf("off-globe did not clear hover: %v %+v", ch, m.Snapshot())
	}
}

func TestSelectReplacesLock(t *testing.T) {
	f := newFixture()
	m := New(f.idx, WithStrict(true))
	m.Lock(nil, geom.Pt(-100, 0))
	if _, err := m.Select(f.alpha, geom.Pt(10, 20)); err != nil {
		t.Fatal(err)
	}
	if s := m.Snapshot(); s.Locked != f.alpha || !s.IsLocked {
		t.Errorf("select: %+v", s)
	}
	if _, err := m.Escape(); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Escape(); err != nil {
		t.Errorf("escape while unlocked = %v, want ignored", err)
	}
}

func TestInvariantsUnderRandomInput(t *testing.T) {
	f := newFixture()
	m := New(f.idx)
	r := rand.New(rand.NewPCG(1, 2))
	countries := []*geom.Country{nil, f.alpha, f.bravo}
	for i := 0; i < 5000; i++ {
		p := geom.Pt(r.Float64()*360-180, r.Float64()*180-90)
		switch r.IntN(7) {
		case 0:
			m.PointerAt(p, r.IntN(5) != 0)
		case 1:
			m.Hover(m.Index().CountryAt(p), p)
		case 2:
			m.ClearHover()
		case 3:
			m.Click(p)
		case 4:
			m.ToggleLock(countries[r.IntN(len(countries))], p)
		case 5:
			m.Escape()
		case 6:
			m.Select(m.Index().CountryAt(p), p)
		}
		assertInvariants(t, m)
	}
}

func TestDiff(t *testing.T) {
	f := newFixture()
	base := Snapshot{Hovered: f.alpha, HasPoint: true, ActivePoint: geom.Pt(1, 11)}
	locked := base
	locked.IsLocked = true
	locked.Locked = f.alpha
	ch := Diff(base, locked)
	if ch.Has(ChangeFeature) {
		t.Error("locking the hovered country is not a feature change")
	}
	if !ch.Has(ChangeLock) || !ch.Has(ChangeAntipode) {
		t.Errorf("diff = %v, want lock and antipode", ch)
	}
	if Diff(base, base) != 0 {
		t.Error("identical snapshots differ")
	}
}

func TestChangeString(t *testing.T) {
	tests := []struct {
		c    Change
		want string
	}{
		{0, "none"},
		{ChangePoint, "point"},
		{ChangeLock | ChangeAntipode, "antipode|lock"},
		{ChangePoint | ChangeFeature | ChangeAntipode | ChangeLock, "point|feature|antipode|lock"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Change(%d).String() = %q, want %q", uint8(tt.c), got, tt.want)
		}
	}
}
