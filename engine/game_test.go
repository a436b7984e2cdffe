package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/lixenwraith/petals/asset"
	"github.com/lixenwraith/petals/config"
	"github.com/lixenwraith/petals/core"
	"github.com/lixenwraith/petals/navigation"
	"github.com/lixenwraith/petals/section"
)

var epoch = time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)

const frame = 50 * time.Millisecond

type fakeOutput struct {
	initErr error
}

func (f *fakeOutput) Init(sr beep.SampleRate, bufferSize int) error { return f.initErr }
func (f *fakeOutput) Play(s ...beep.Streamer) {}
func (f *fakeOutput) Lock() {}
func (f *fakeOutput) Unlock() {}
func (f *fakeOutput) Close() {}

type harness struct {
	t      *testing.T
	screen tcell.SimulationScreen
	clock  *core.ManualClock
	game   *Game
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(100, 30)
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	clock := core.NewManualClock(epoch)
	g, err := New(Options{
		Config: cfg,
		Screen: screen,
		Clock:  clock,
		Audio:  &fakeOutput{},
		Assets: asset.FS(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(g.Close)
	return &harness{t: t, screen: screen, clock: clock, game: g}
}

func (h *harness) key(k tcell.Key) bool {
	return h.game.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (h *harness) rune(r rune) bool {
	return h.game.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.rune(r)
	}
}

func (h *harness) step(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		h.game.Step(h.clock.Advance(frame))
	}
}

// unlock passes the gate and waits for the first section to settle
func (h *harness) unlock() {
	h.t.Helper()
	h.typeText("161103")
	h.key(tcell.KeyEnter)
	h.step(h.game.cfg.Timing.UnlockDelay + 2*frame)
	if !h.game.Navigator().Transitioning() {
		h.t.Fatalf("unlock did not start a transition: %s", h.game)
	}
	h.settle()
}

// settle steps until the navigator is idle, the particle session is over and
// the progress bar has caught up
func (h *harness) settle() {
	h.t.Helper()
	for range 400 {
		h.game.Step(h.clock.Advance(frame))
		nav := h.game.Navigator()
		if !nav.Transitioning() && !h.game.Particles().Busy() &&
			h.game.Progress() == nav.Progress() {
			return
		}
	}
	h.t.Fatalf("session did not settle: %s", h.game)
}

func TestGateRejectsWrongPassphrase(t *testing.T) {
	h := newHarness(t, nil)
	h.typeText("161104")
	h.key(tcell.KeyEnter)

	in := h.game.Input()
	if in.Unlocked() || !in.Failed() || in.Len() != 0 {
		t.Errorf("after mismatch: unlocked=%t failed=%t len=%d", in.Unlocked(), in.Failed(), in.Len())
	}
	h.step(2 * time.Second)
	if h.game.Navigator().Current() != "welcome" || h.game.Navigator().Transitioning() {
		t.Error("mismatch must not navigate")
	}
	if h.game.Ambient().Playing() {
		t.Error("mismatch started audio")
	}

	h.rune('1')
	if in.Failed() {
		t.Error("editing should clear the error indicator")
	}
}

func TestGateKeysEditBuffer(t *testing.T) {
	h := newHarness(t, nil)
	h.typeText("1611")
	h.key(tcell.KeyBackspace2)
	if h.game.Input().Value() != "161" {
		t.Errorf("buffer = %q", h.game.Input().Value())
	}
	// Navigation keys are text while the gate is locked
	h.rune('l')
	h.rune('q')
	if h.game.Input().Value() != "161lq" {
		t.Errorf("buffer = %q", h.game.Input().Value())
	}
	if h.key(tcell.KeyEscape) {
		t.Error("escape on the gate should quit")
	}
}

func TestEndToEndNavigation(t *testing.T) {
	h := newHarness(t, nil)
	nav := h.game.Navigator()

	h.typeText("161103")
	h.key(tcell.KeyEnter)
	if !h.game.Input().Unlocked() {
		t.Fatal("site passphrase rejected")
	}
	if !h.game.Ambient().Playing() {
		t.Error("unlock should start ambient audio")
	}

	// Unlock delay, then one full transition
	cfg := config.Default()
	h.step(cfg.Timing.UnlockDelay + 2*cfg.Timing.Fade + cfg.Timing.Stagger + 8*frame)
	if nav.Current() != "journey" {
		t.Fatalf("first section not shown: %s", h.game)
	}
	h.settle()
	if h.game.Progress() != 1.0/6.0 {
		t.Errorf("progress at journey = %f, want 1/6", h.game.Progress())
	}

	for i := 0; i < 5; i++ {
		h.rune('l')
		h.settle()
	}
	if nav.Current() != "birthday-message" {
		t.Fatalf("forward navigation ended at %s", nav.Current())
	}
	if h.game.Progress() != 1.0 {
		t.Errorf("progress at last section = %v, want exactly 1", h.game.Progress())
	}

	h.rune('3')
	h.settle()
	if nav.Current() != "growing-together" {
		t.Fatalf("jump 3 landed on %s", nav.Current())
	}

	var dir section.Direction
	var target section.ID
	nav.OnPhase(func(from, to navigation.Phase) {
		if to == navigation.PhaseFadingIn {
			if s := h.game.Particles().Active(); s != nil {
				dir, target = s.Direction, s.Section
			}
		}
	})
	h.rune('1')
	h.settle()
	if target != "journey" || dir != section.Reverse {
		t.Errorf("3 -> 1 played %s %s, want journey reverse", target, dir)
	}
	if math.Abs(h.game.Progress()-1.0/6.0) > 1e-12 {
		t.Errorf("progress after going back = %f", h.game.Progress())
	}
}

func TestRapidNavigationDropsRequests(t *testing.T) {
	h := newHarness(t, nil)
	h.unlock()

	h.key(tcell.KeyRight)
	h.step(frame)
	h.key(tcell.KeyRight)
	h.key(tcell.KeyRight)
	h.settle()
	if got := h.game.Navigator().Current(); got != "first-moments" {
		t.Errorf("rapid presses landed on %s, want first-moments", got)
	}
}

func TestAudioToggleKey(t *testing.T) {
	h := newHarness(t, nil)
	h.typeText("161103")
	h.key(tcell.KeyEnter)
	h.step(3 * time.Second)

	amb := h.game.Ambient()
	if amb.Glyph() != "🔊" {
		t.Errorf("glyph = %q while playing", amb.Glyph())
	}
	h.rune('m')
	if amb.Playing() || amb.Glyph() != "🎵" {
		t.Error("m should pause the ambient loop")
	}
	h.step(2 * time.Second)
	if amb.Volume() != 0 {
		t.Errorf("volume after fade-out = %f", amb.Volume())
	}
	h.rune('m')
	if !amb.Playing() {
		t.Error("m should resume the ambient loop")
	}
}

func TestAudioFailureDoesNotBlockUnlock(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	clock := core.NewManualClock(epoch)
	g, err := New(Options{
		Screen: screen,
		Clock:  clock,
		Audio:  &fakeOutput{initErr: errors.New("no device")},
		Assets: asset.FS(),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	for _, r := range "161103" {
		g.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	g.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	for range 60 {
		g.Step(clock.Advance(frame))
	}
	if g.Ambient().Available() {
		t.Error("failed output should mark audio unavailable")
	}
	if g.Navigator().Current() != "journey" {
		t.Errorf("navigation blocked by audio failure: %s", g.Navigator().Current())
	}
}

func TestNoParticlesStillNavigates(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.NoParticles = true })
	if !h.game.Particles().Disabled() {
		t.Fatal("particles should be disabled")
	}
	h.unlock()
	h.rune(' ')
	h.settle()
	if h.game.Navigator().Current() != "first-moments" {
		t.Errorf("current = %s", h.game.Navigator().Current())
	}
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t, nil)
	if h.key(tcell.KeyCtrlC) {
		t.Error("ctrl-c should quit on the gate")
	}
	h.typeText("161103")
	h.key(tcell.KeyEnter)
	if h.rune('q') {
		t.Error("q should quit after unlock")
	}
}

func TestGateScreenRendersMask(t *testing.T) {
	h := newHarness(t, nil)
	h.typeText("161")
	h.step(frame)

	found := false
	w, ht := h.screen.Size()
	for y := 0; y < ht && !found; y++ {
		row := make([]rune, 0, w)
		for x := 0; x < w; x++ {
			r, _, _, _ := h.screen.GetContent(x, y)
			row = append(row, r)
		}
		for x := 0; x+7 <= len(row); x++ {
			if string(row[x:x+7]) == "[ ••• ]" {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("masked input not on screen")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.game.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	cfg := config.Default()
	cfg.Fallback.Law = "confetti"
	if _, err := New(Options{Config: cfg, Screen: screen}); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New = %v, want ErrInvalid", err)
	}
}

func TestResizePickedUpNextFrame(t *testing.T) {
	h := newHarness(t, nil)
	h.step(frame)

	h.screen.SetSize(60, 20)
	if !h.game.HandleEvent(tcell.NewEventResize(60, 20)) {
		t.Fatal("resize should not quit")
	}
	h.step(frame)

	if w, ht := h.game.renderer.Size(); w != 60 || ht != 20 {
		t.Errorf("renderer size = %dx%d, want 60x20", w, ht)
	}
	vp := h.game.renderer.Stage().Viewport()
	if vp.Width != 60 || vp.Height != 20 {
		t.Errorf("stage viewport = %+v", vp)
	}
}

// stepUntilIdle steps only until the navigator settles, leaving particles running
func (h *harness) stepUntilIdle(want section.ID) {
	h.t.Helper()
	for range 200 {
		h.game.Step(h.clock.Advance(frame))
		nav := h.game.Navigator()
		if !nav.Transitioning() && nav.Current() == want {
			return
		}
	}
	h.t.Fatalf("did not settle on %s: %s", want, h.game)
}

func TestNavigateWhileParticlesRunning(t *testing.T) {
	h := newHarness(t, nil)
	h.typeText("161103")
	h.key(tcell.KeyEnter)
	h.stepUntilIdle("journey")

	if !h.game.Particles().Busy() {
		t.Fatal("journey particles should outlast the section transition")
	}

	h.rune('l')
	h.stepUntilIdle("first-moments")

	s := h.game.Particles().Active()
	if s == nil || s.Section != "first-moments" {
		t.Fatalf("active session = %+v, want first-moments", s)
	}
	if s.Direction != section.Forward {
		t.Errorf("direction = %s", s.Direction)
	}

	h.rune('h')
	h.stepUntilIdle("journey")
	if s := h.game.Particles().Active(); s == nil || s.Section != "journey" || s.Direction != section.Reverse {
		t.Errorf("going back played %+v, want journey reverse", s)
	}
}
