package world

import (
	"math"
	"testing"

	"skyfall/internal/body"
	"skyfall/internal/phys"
)

func newBody(t *testing.T, y float64) *body.Body {
	t.Helper()
	cfg := body.DefaultConfig()
	cfg.Position = phys.Vec3{Y: y}
	cfg.AirResistance = 0
	b, err := body.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestAddBody_NoDuplicates(t *testing.T) {
	w := New()
	b := newBody(t, 100)

	w.AddBody(b)
	w.AddBody(b)

	if got := w.Stats().Bodies; got != 1 {
		t.Errorf("body count = %d, want 1", got)
	}
}

func TestRemoveBody(t *testing.T) {
	w := New()
	b1 := newBody(t, 100)
	b2 := newBody(t, 200)

	w.AddBody(b1)
	w.AddBody(b2)
	w.RemoveBody(b1)

	if got := w.Stats().Bodies; got != 1 {
		t.Errorf("body count = %d, want 1", got)
	}

	// Removing an absent body is a no-op.
	w.RemoveBody(b1)
	if got := w.Stats().Bodies; got != 1 {
		t.Errorf("body count after double remove = %d, want 1", got)
	}
}

func TestStep_AdvancesAllBodies(t *testing.T) {
	w := New()
	b1 := newBody(t, 100)
	b2 := newBody(t, 200)
	w.AddBody(b1)
	w.AddBody(b2)

	w.Step(0.1)

	if b1.Position().Y >= 100 || b2.Position().Y >= 200 {
		t.Errorf("bodies did not fall: y1=%v y2=%v", b1.Position().Y, b2.Position().Y)
	}
	if math.Abs(w.Elapsed()-0.1) > 1e-12 {
		t.Errorf("elapsed = %v, want 0.1", w.Elapsed())
	}
}

func TestStep_SubStepsMatchTotalTime(t *testing.T) {
	single := New()
	b1 := newBody(t, 1000)
	single.AddBody(b1)

	multi := New()
	b2 := newBody(t, 1000)
	multi.AddBody(b2)
	multi.SetSubSteps(8)

	single.Step(0.4)
	multi.Step(0.4)

	if math.Abs(single.Elapsed()-multi.Elapsed()) > 1e-12 {
		t.Errorf("elapsed mismatch: %v vs %v", single.Elapsed(), multi.Elapsed())
	}

	// Sub-stepping must stay close to the coarse result for smooth motion.
	if diff := math.Abs(b1.Position().Y - b2.Position().Y); diff > 2.0 {
		t.Errorf("sub-stepped trajectory diverged: %v vs %v", b1.Position().Y, b2.Position().Y)
	}

	// More sub-steps means a smaller per-call dt, so the velocity update is
	// applied more often; both must agree on velocity within tolerance.
	if diff := math.Abs(b1.Velocity().Y - b2.Velocity().Y); diff > 0.5 {
		t.Errorf("velocity diverged: %v vs %v", b1.Velocity().Y, b2.Velocity().Y)
	}
}

func TestSetGravity_Broadcast(t *testing.T) {
	w := New()
	b := newBody(t, 100)
	w.AddBody(b)

	w.SetGravity(phys.Vec3{Y: -1.62}) // lunar
	w.Step(1.0)

	if math.Abs(b.Velocity().Y-(-1.62)) > 1e-9 {
		t.Errorf("vy under lunar gravity = %v, want -1.62", b.Velocity().Y)
	}
}

func TestStats_ActiveCount(t *testing.T) {
	w := New()
	b1 := newBody(t, 100)
	b2 := newBody(t, 200)
	w.AddBody(b1)
	w.AddBody(b2)
	b2.SetActive(false)

	s := w.Stats()
	if s.Bodies != 2 || s.Active != 1 {
		t.Errorf("stats = %+v, want 2 bodies / 1 active", s)
	}
}

func TestStep_IgnoresNonPositiveDt(t *testing.T) {
	w := New()
	b := newBody(t, 100)
	w.AddBody(b)

	w.Step(0)
	w.Step(-1)

	if w.Elapsed() != 0 || b.Position().Y != 100 {
		t.Error("non-positive dt should be a no-op")
	}
}

func TestResetClock(t *testing.T) {
	w := New()
	w.Step(2.5)
	w.ResetClock()
	if w.Elapsed() != 0 {
		t.Errorf("elapsed after reset = %v", w.Elapsed())
	}
}
