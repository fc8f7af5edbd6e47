package game

import (
	"testing"
	"time"

	"github.com/pthm-cable/stormglass/atmosphere"
	"github.com/pthm-cable/stormglass/config"
	"github.com/pthm-cable/stormglass/physics"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func newTestSimulation(t *testing.T, cond Condition) *Simulation {
	t.Helper()
	sim, err := NewSimulation(testConfig(t), cond, 0)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	return sim
}

func TestParseCondition(t *testing.T) {
	cases := []struct {
		in   string
		want Condition
	}{
		{"rain", Rain},
		{"SNOW", Snow},
		{" hail ", Hail},
		{"clear", Clear},
		{"drizzle", Drizzle},
		{"storm", Storm},
		{"dust", Dust},
	}
	for _, tc := range cases {
		got, err := ParseCondition(tc.in)
		if err != nil {
			t.Errorf("ParseCondition(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCondition(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseCondition("tornado"); err == nil {
		t.Error("ParseCondition(tornado) succeeded, want error")
	}
}

func TestSimulation_RainSpawnsRaindrops(t *testing.T) {
	sim := newTestSimulation(t, Rain)

	for i := 0; i < 30; i++ {
		if err := sim.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	if sim.Particles().Size() == 0 {
		t.Fatal("no particles after a second of rain")
	}

	for _, snap := range sim.Frame(nil) {
		if snap.Kind != physics.KindRaindrop {
			t.Errorf("rain spawned kind %v", snap.Kind)
		}
	}
}

func TestSimulation_ClearSpawnsNothing(t *testing.T) {
	sim := newTestSimulation(t, Clear)

	for i := 0; i < 60; i++ {
		if err := sim.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	if got := sim.Particles().Size(); got != 0 {
		t.Errorf("clear weather spawned %d particles", got)
	}
}

func TestSimulation_SetConditionChangesNewSpawns(t *testing.T) {
	sim := newTestSimulation(t, Snow)

	for i := 0; i < 15; i++ {
		if err := sim.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	sawSnow := false
	for _, snap := range sim.Frame(nil) {
		if snap.Kind == physics.KindSnowflake {
			sawSnow = true
		}
	}
	if !sawSnow {
		t.Fatal("no snowflakes spawned under snow condition")
	}

	sim.SetCondition(Hail)
	if sim.Condition() != Hail {
		t.Fatalf("Condition = %v after SetCondition(Hail)", sim.Condition())
	}
	for i := 0; i < 15; i++ {
		if err := sim.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	sawHail := false
	for _, snap := range sim.Frame(nil) {
		if snap.Kind == physics.KindHailstone {
			sawHail = true
		}
	}
	if !sawHail {
		t.Error("no hailstones after switching condition")
	}
}

func TestSimulation_StormEmitsSparkBursts(t *testing.T) {
	sim := newTestSimulation(t, Storm)

	sawSpark := false
	for i := 0; i < 600 && !sawSpark; i++ {
		if err := sim.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		for _, snap := range sim.Frame(nil) {
			if snap.Kind == physics.KindSpark {
				sawSpark = true
				break
			}
		}
	}
	if !sawSpark {
		t.Error("no spark bursts over 20 seconds of storm")
	}
}

func TestSimulation_SpawnHonorsQualityCap(t *testing.T) {
	cfg := testConfig(t)
	cfg.Weather.SpawnRate = 10000 // saturate immediately
	sim, err := NewSimulation(cfg, Storm, 0)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	// Slow frames drive quality to 0; cap becomes a fifth of max.
	for i := 0; i < 300; i++ {
		sim.RecordFrame(200 * time.Millisecond)
	}
	if sim.Budget().Quality() != 0 {
		t.Fatalf("setup: quality = %d, want 0", sim.Budget().Quality())
	}
	cap := sim.Budget().Limits().ParticleCap

	for i := 0; i < 30; i++ {
		if err := sim.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if got := sim.Particles().Size(); got > cap {
			t.Fatalf("size %d exceeds quality cap %d", got, cap)
		}
	}
	if sim.Particles().Size() == 0 {
		t.Error("reduced quality suppressed spawning entirely")
	}
}

func TestSimulation_StaleSnapshotKeepsForces(t *testing.T) {
	sim := newTestSimulation(t, Rain)

	// The constructor consumed the initial snapshot; repeated steps without
	// a new publish must keep stepping on the same forces.
	seqBefore := sim.lastSeq
	for i := 0; i < 10; i++ {
		if err := sim.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if sim.lastSeq != seqBefore {
		t.Errorf("lastSeq moved from %d to %d without a publish", seqBefore, sim.lastSeq)
	}
}

func TestSimulation_FreshSnapshotRebuildsWind(t *testing.T) {
	sim := newTestSimulation(t, Rain)

	next := sim.Model().State()
	next.WindSpeedMS = 20
	next.WindDirectionDeg = 90
	sim.Slot().Publish(next)

	if err := sim.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if sim.Model().State().WindSpeedMS != 20 {
		t.Errorf("model wind = %v after publish, want 20", sim.Model().State().WindSpeedMS)
	}
}

func TestSimulation_FrameRecordFields(t *testing.T) {
	sim := newTestSimulation(t, Rain)
	for i := 0; i < 5; i++ {
		if err := sim.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	rec := sim.FrameRecord(10 * time.Millisecond)
	if rec.Tick != 5 {
		t.Errorf("Tick = %d, want 5", rec.Tick)
	}
	if rec.FrameMS != 10 {
		t.Errorf("FrameMS = %v, want 10", rec.FrameMS)
	}
	if rec.Particles != sim.Particles().Size() {
		t.Errorf("Particles = %d, want %d", rec.Particles, sim.Particles().Size())
	}
	if rec.Quality != sim.Budget().Quality() {
		t.Errorf("Quality = %d, want %d", rec.Quality, sim.Budget().Quality())
	}
}

func TestSimulation_DeterministicForSeed(t *testing.T) {
	cfg := testConfig(t)
	a, err := NewSimulation(cfg, Rain, 7)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	b, err := NewSimulation(cfg, Rain, 7)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	for i := 0; i < 30; i++ {
		if err := a.Step(); err != nil {
			t.Fatalf("Step a: %v", err)
		}
		if err := b.Step(); err != nil {
			t.Fatalf("Step b: %v", err)
		}
	}

	sa, sb := a.Frame(nil), b.Frame(nil)
	if len(sa) != len(sb) {
		t.Fatalf("particle counts diverge: %d vs %d", len(sa), len(sb))
	}
	for i := range sa {
		if sa[i].Position != sb[i].Position {
			t.Fatalf("particle %d diverges: %v vs %v", i, sa[i].Position, sb[i].Position)
		}
	}
}

func TestSimulation_RejectsUnknownIntegrator(t *testing.T) {
	cfg := testConfig(t)
	cfg.Physics.Integrator = "leapfrog"
	if _, err := NewSimulation(cfg, Rain, 0); err == nil {
		t.Error("NewSimulation accepted unknown integrator")
	}
}

func TestWeatherFeed_PublishesFreshStates(t *testing.T) {
	cfg := testConfig(t)
	var slot atmosphere.Slot
	feed := NewWeatherFeed(&slot, cfg, 42)

	// Drive next() directly rather than waiting on the ticker.
	state := feed.base
	for i := 0; i < 10; i++ {
		state = feed.next(state)
		feed.slot.Publish(state)
	}

	got, seq, ok := slot.Latest()
	if !ok || seq != 10 {
		t.Fatalf("Latest = ok %v seq %d, want ok/10", ok, seq)
	}
	if got.HumidityPercent < 0 || got.HumidityPercent > 100 {
		t.Errorf("humidity drifted out of range: %v", got.HumidityPercent)
	}
	if got.CloudCoverPercent < 0 || got.CloudCoverPercent > 100 {
		t.Errorf("cloud cover drifted out of range: %v", got.CloudCoverPercent)
	}
}
