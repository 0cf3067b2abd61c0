package rotation

import (
	"math"
	"testing"
	"time"
)

const eps = 1e-5

// fakeClock is a manually advanced clock for timing drag sessions.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestController(t *testing.T, opts ...ControllerOption) (*fakeClock, Controller) {
	t.Helper()
	clk := newFakeClock()
	c := NewController(append([]ControllerOption{WithClock(clk.Now)}, opts...)...)
	return clk, c
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestFirstTickForcesInitialPose(t *testing.T) {
	_, c := newTestController(t)

	if c.Initialized() {
		t.Fatal("controller initialized before first tick")
	}
	c.Tick()

	if !c.Initialized() {
		t.Fatal("controller not initialized after first tick")
	}
	want := Rotation{Tilt: 0, Yaw: DefaultInitialYaw}
	if got := c.Rotation(); !approx(got.Tilt, want.Tilt) || !approx(got.Yaw, want.Yaw) {
		t.Fatalf("Rotation() = %+v, want %+v", got, want)
	}
	if got := c.Target(); !approx(got.Tilt, want.Tilt) || !approx(got.Yaw, want.Yaw) {
		t.Fatalf("Target() = %+v, want %+v", got, want)
	}
}

func TestInitializationRunsOnce(t *testing.T) {
	_, c := newTestController(t)
	c.Tick()

	c.PointerDown(Pointer{X: 0, Y: 0})
	c.PointerMove(Pointer{X: 100, Y: 0})
	c.PointerUp(Pointer{X: 100, Y: 0})
	before := c.Target()

	c.Tick()
	if c.Target().Yaw == DefaultInitialYaw {
		t.Fatalf("second tick reset target yaw to initial pose (before %+v)", before)
	}
}

func TestTickInterpolatesQuarterOfRemainingDelta(t *testing.T) {
	_, c := newTestController(t)
	c.Tick()

	c.PointerDown(Pointer{X: 0, Y: 0})
	c.PointerMove(Pointer{X: 100, Y: 0})

	start := c.Rotation()
	target := c.Target()
	c.Tick()
	got := c.Rotation()

	wantYaw := start.Yaw + (target.Yaw-start.Yaw)*DefaultLerpFactor
	if !approx(got.Yaw, wantYaw) {
		t.Fatalf("yaw after tick = %v, want %v", got.Yaw, wantYaw)
	}
}

func TestHorizontalDragChangesOnlyYaw(t *testing.T) {
	_, c := newTestController(t)
	c.Tick()

	before := c.Target()
	c.PointerDown(Pointer{X: 10, Y: 50})
	c.PointerMove(Pointer{X: 60, Y: 50})
	after := c.Target()

	if !approx(after.Yaw-before.Yaw, 50*DefaultPointerScale) {
		t.Fatalf("yaw delta = %v, want %v", after.Yaw-before.Yaw, 50*DefaultPointerScale)
	}
	if after.Tilt != before.Tilt {
		t.Fatalf("tilt changed from %v to %v on a horizontal move", before.Tilt, after.Tilt)
	}
}

func TestVerticalDragChangesTiltAndClamps(t *testing.T) {
	_, c := newTestController(t)
	c.Tick()

	c.PointerDown(Pointer{X: 0, Y: 0})
	c.PointerMove(Pointer{X: 0, Y: 20})
	if got := c.Target().Tilt; !approx(got, 20*DefaultPointerScale) {
		t.Fatalf("tilt = %v, want %v", got, 20*DefaultPointerScale)
	}

	c.PointerMove(Pointer{X: 0, Y: 2000})
	if got := c.Target().Tilt; got != DefaultMaxTilt {
		t.Fatalf("tilt = %v, want clamp at %v", got, DefaultMaxTilt)
	}

	c.PointerMove(Pointer{X: 0, Y: -5000})
	if got := c.Target().Tilt; got != DefaultMinTilt {
		t.Fatalf("tilt = %v, want clamp at %v", got, DefaultMinTilt)
	}
}

func TestVelocityIsOverwrittenByLastMove(t *testing.T) {
	_, c := newTestController(t)
	c.Tick()

	c.PointerDown(Pointer{X: 0, Y: 0})
	c.PointerMove(Pointer{X: 80, Y: 40})
	c.PointerMove(Pointer{X: 90, Y: 42})

	v := c.Velocity()
	wantYaw := 10 * DefaultPointerScale * DefaultYawVelocityScale
	wantTilt := 2 * DefaultPointerScale * DefaultTiltVelocityScale
	if !approx(v.Yaw, wantYaw) || !approx(v.Tilt, wantTilt) {
		t.Fatalf("Velocity() = %+v, want {Tilt:%v Yaw:%v}", v, wantTilt, wantYaw)
	}
}

func TestMomentumSuspendedWhileDragging(t *testing.T) {
	_, c := newTestController(t)
	c.Tick()

	c.PointerDown(Pointer{X: 0, Y: 0})
	c.PointerMove(Pointer{X: 30, Y: 0})
	target := c.Target()
	velocity := c.Velocity()

	for i := 0; i < 10; i++ {
		c.Tick()
	}
	if c.Target() != target {
		t.Fatalf("target moved while dragging: %+v -> %+v", target, c.Target())
	}
	if c.Velocity() != velocity {
		t.Fatalf("velocity decayed while dragging: %+v -> %+v", velocity, c.Velocity())
	}
}

func TestMomentumDecaysGeometricallyAfterRelease(t *testing.T) {
	clk, c := newTestController(t)
	c.Tick()

	c.PointerDown(Pointer{X: 0, Y: 0})
	clk.Advance(300 * time.Millisecond)
	c.PointerMove(Pointer{X: 40, Y: 10})
	if tap := c.PointerUp(Pointer{X: 40, Y: 10}); tap {
		t.Fatal("long drag classified as tap")
	}

	prevTarget := c.Target()
	prevVel := c.Velocity()
	if prevVel.Yaw <= 0 || prevVel.Tilt <= 0 {
		t.Fatalf("expected positive velocity after drag, got %+v", prevVel)
	}

	for i := 0; i < 100; i++ {
		c.Tick()
		tgt := c.Target()
		vel := c.Velocity()

		if tgt.Yaw < prevTarget.Yaw {
			t.Fatalf("tick %d: yaw moved against velocity: %v -> %v", i, prevTarget.Yaw, tgt.Yaw)
		}
		if !approx(vel.Yaw, prevVel.Yaw*DefaultYawDamping) {
			t.Fatalf("tick %d: yaw velocity %v, want %v", i, vel.Yaw, prevVel.Yaw*DefaultYawDamping)
		}
		if !approx(vel.Tilt, prevVel.Tilt*DefaultTiltDamping) {
			t.Fatalf("tick %d: tilt velocity %v, want %v", i, vel.Tilt, prevVel.Tilt*DefaultTiltDamping)
		}
		if vel.Yaw < 0 || vel.Tilt < 0 {
			t.Fatalf("tick %d: velocity changed sign: %+v", i, vel)
		}
		prevTarget, prevVel = tgt, vel
	}

	if prevVel.Yaw > 1e-6 || prevVel.Tilt > 1e-6 {
		t.Fatalf("momentum did not settle: %+v", prevVel)
	}

	// Current rotation converges to the settled target.
	for i := 0; i < 200; i++ {
		c.Tick()
	}
	cur, tgt := c.Rotation(), c.Target()
	if !approx(cur.Yaw, tgt.Yaw) || !approx(cur.Tilt, tgt.Tilt) {
		t.Fatalf("rotation %+v did not converge to target %+v", cur, tgt)
	}
}

func TestTargetTiltStaysInRangeWithoutInput(t *testing.T) {
	_, c := newTestController(t)
	c.Tick()

	// Launch a strong downward fling, then let it run out.
	c.PointerDown(Pointer{X: 0, Y: 0})
	c.PointerMove(Pointer{X: 0, Y: 150})
	c.PointerLeave()

	for i := 0; i < 500; i++ {
		c.Tick()
		if tilt := c.Target().Tilt; tilt < DefaultMinTilt || tilt > DefaultMaxTilt {
			t.Fatalf("tick %d: target tilt %v outside [%v, %v]", i, tilt, DefaultMinTilt, DefaultMaxTilt)
		}
	}
}

func TestTapClassification(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		moves    []Pointer
		wantTap  bool
	}{
		{name: "quick still press", duration: 50 * time.Millisecond, wantTap: true},
		{name: "quick small wiggle", duration: 150 * time.Millisecond, moves: []Pointer{{X: 5, Y: 0}, {X: 5, Y: 4}, {X: 0, Y: 4}}, wantTap: true},
		{name: "duration at threshold", duration: 200 * time.Millisecond, wantTap: false},
		{name: "duration over threshold", duration: 450 * time.Millisecond, wantTap: false},
		{name: "movement at threshold", duration: 50 * time.Millisecond, moves: []Pointer{{X: 10, Y: 0}, {X: 10, Y: 5}}, wantTap: false},
		{name: "back and forth accumulates", duration: 50 * time.Millisecond, moves: []Pointer{{X: 8, Y: 0}, {X: 0, Y: 0}}, wantTap: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk, c := newTestController(t)
			c.Tick()

			c.PointerDown(Pointer{X: 0, Y: 0})
			for _, m := range tt.moves {
				c.PointerMove(m)
			}
			clk.Advance(tt.duration)
			gotTap := c.PointerUp(Pointer{})

			if gotTap != tt.wantTap {
				t.Fatalf("PointerUp() tap = %v, want %v", gotTap, tt.wantTap)
			}
			wantIndex := 0
			if tt.wantTap {
				wantIndex = 1
			}
			if got := c.ColorIndex(); got != wantIndex {
				t.Fatalf("ColorIndex() = %d, want %d", got, wantIndex)
			}
			if c.Dragging() {
				t.Fatal("drag still active after PointerUp")
			}
		})
	}
}

func TestTapWrapsColorIndex(t *testing.T) {
	_, c := newTestController(t, WithColorIndex(len(LightPalette)-1))

	c.PointerDown(Pointer{})
	if !c.PointerUp(Pointer{}) {
		t.Fatal("expected tap")
	}
	if got := c.ColorIndex(); got != 0 {
		t.Fatalf("ColorIndex() = %d, want wrap to 0", got)
	}
}

func TestPointerLeaveEndsDragWithoutTap(t *testing.T) {
	_, c := newTestController(t)
	c.Tick()

	c.PointerDown(Pointer{X: 5, Y: 5})
	c.PointerMove(Pointer{X: 6, Y: 5})
	vel := c.Velocity()
	c.PointerLeave()

	if c.Dragging() {
		t.Fatal("drag still active after PointerLeave")
	}
	if c.ColorIndex() != 0 {
		t.Fatalf("ColorIndex() = %d after leave, want 0", c.ColorIndex())
	}
	if c.Velocity() != vel {
		t.Fatalf("velocity reset on leave: %+v -> %+v", vel, c.Velocity())
	}

	// A release after the leave belongs to no session.
	if c.PointerUp(Pointer{X: 6, Y: 5}) {
		t.Fatal("release after leave classified as tap")
	}
	if c.ColorIndex() != 0 {
		t.Fatalf("ColorIndex() = %d after orphan release, want 0", c.ColorIndex())
	}
}

func TestMoveWithoutDragIsIgnored(t *testing.T) {
	_, c := newTestController(t)
	c.Tick()

	before := c.Target()
	c.PointerMove(Pointer{X: 300, Y: 300})
	if c.Target() != before {
		t.Fatalf("target changed without an active drag: %+v -> %+v", before, c.Target())
	}
	if c.Velocity() != (Rotation{}) {
		t.Fatalf("velocity set without an active drag: %+v", c.Velocity())
	}
}

func TestNonFiniteCoordinatesDefaultToZero(t *testing.T) {
	_, c := newTestController(t)
	c.Tick()

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	before := c.Target()
	c.PointerDown(Pointer{X: nan, Y: inf})
	c.PointerMove(Pointer{X: 10, Y: 0})

	got := c.Target()
	if !approx(got.Yaw-before.Yaw, 10*DefaultPointerScale) {
		t.Fatalf("yaw delta = %v, want %v", got.Yaw-before.Yaw, 10*DefaultPointerScale)
	}
	if math.IsNaN(float64(got.Tilt)) || math.IsNaN(float64(got.Yaw)) {
		t.Fatalf("target became NaN: %+v", got)
	}
}

func TestPaletteSwapPreservesIndex(t *testing.T) {
	_, c := newTestController(t, WithColorIndex(3))

	if got, want := c.Color(false), LightPalette[3]; got != want {
		t.Fatalf("Color(false) = %v, want %v", got, want)
	}
	if got, want := c.Color(true), DarkPalette[3]; got != want {
		t.Fatalf("Color(true) = %v, want %v", got, want)
	}
	if c.ColorIndex() != 3 {
		t.Fatalf("ColorIndex() = %d after palette reads, want 3", c.ColorIndex())
	}
}

func TestSetColorIndexWraps(t *testing.T) {
	_, c := newTestController(t)

	c.SetColorIndex(-1)
	if got := c.ColorIndex(); got != len(LightPalette)-1 {
		t.Fatalf("ColorIndex() = %d, want %d", got, len(LightPalette)-1)
	}
	c.SetColorIndex(13)
	if got := c.ColorIndex(); got != 13%len(LightPalette) {
		t.Fatalf("ColorIndex() = %d, want %d", got, 13%len(LightPalette))
	}
}

func TestPaletteReturnsCopy(t *testing.T) {
	_, c := newTestController(t)

	p := c.Palette(false)
	p[0].R ^= 0xFF
	if c.Palette(false)[0] != LightPalette[0] {
		t.Fatal("Palette() exposed internal slice")
	}
}

func TestMismatchedPalettesPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for mismatched palettes")
		}
	}()
	NewController(WithPalettes(LightPalette, DarkPalette[:3]))
}

func TestConcurrentFramesAndPointerEvents(t *testing.T) {
	_, c := newTestController(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			c.Tick()
		}
	}()
	for i := 0; i < 200; i++ {
		c.PointerDown(Pointer{X: float32(i), Y: 0})
		c.PointerMove(Pointer{X: float32(i + 3), Y: float32(i % 7)})
		c.PointerUp(Pointer{})
	}
	<-done

	if tilt := c.Target().Tilt; tilt < DefaultMinTilt || tilt > DefaultMaxTilt {
		t.Fatalf("target tilt %v out of range after concurrent use", tilt)
	}
	if idx := c.ColorIndex(); idx < 0 || idx >= len(LightPalette) {
		t.Fatalf("ColorIndex() = %d out of range", idx)
	}
}
