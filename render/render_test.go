package render

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/petals/media"
	"github.com/lixenwraith/petals/particle"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var out []rune
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		out = append(out, r)
	}
	return string(out)
}

func countRune(screen tcell.Screen, y int, want rune) int {
	w, _ := screen.Size()
	n := 0
	for x := 0; x < w; x++ {
		if r, _, _, _ := screen.GetContent(x, y); r == want {
			n++
		}
	}
	return n
}

func TestBlend(t *testing.T) {
	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}

	tests := []struct {
		name  string
		alpha float64
		want  color.RGBA
	}{
		{"Zero alpha keeps destination", 0, black},
		{"Negative alpha keeps destination", -1, black},
		{"Full alpha replaces", 1, white},
		{"Over full alpha replaces", 2, white},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blend(black, white, tt.alpha); got != tt.want {
				t.Errorf("Blend = %v, want %v", got, tt.want)
			}
		})
	}

	mid := Blend(black, white, 0.5)
	if mid.R < 125 || mid.R > 130 || mid.R != mid.G || mid.G != mid.B {
		t.Errorf("midpoint blend = %v", mid)
	}
	if Fade(white, black, 0) != black {
		t.Error("zero opacity text should match the background")
	}
}

func TestBufferWideRunes(t *testing.T) {
	b := NewBuffer(10, 1)
	if w := b.SetRune(2, 0, '🌸', RgbText); w != 2 {
		t.Fatalf("emoji width = %d, want 2", w)
	}
	if !b.At(3, 0).wide {
		t.Fatal("right half not marked")
	}

	// Overwriting the right half clears the head
	b.SetRune(3, 0, 'x', RgbText)
	if b.At(2, 0).Rune != ' ' || b.At(3, 0).Rune != 'x' {
		t.Errorf("cells = %q %q", b.At(2, 0).Rune, b.At(3, 0).Rune)
	}

	if w := b.SetRune(9, 0, '🌸', RgbText); w != 0 {
		t.Error("wide rune drawn across the right edge")
	}
	if w := b.SetRune(-1, 0, 'a', RgbText); w != 0 {
		t.Error("out of bounds rune drawn")
	}
}

func TestBufferDrawGridSkipsTransparent(t *testing.T) {
	b := NewBuffer(4, 2)
	g := media.NewGrid(2, 1)
	red := color.RGBA{255, 0, 0, 255}
	g.Set(0, 0, media.Cell{Rune: '▀', Fg: red, Bg: red})

	b.DrawGrid(g, 1, 1, 1)
	if c := b.At(1, 1); c.Rune != '▀' || c.Fg != red || c.Bg != red {
		t.Errorf("opaque cell = %+v", c)
	}
	if c := b.At(2, 1); c.Rune != ' ' || c.Bg != RgbBackground {
		t.Errorf("transparent cell painted: %+v", c)
	}
}

func TestStageAttachDetach(t *testing.T) {
	s := NewStage(0, 0)
	if err := s.Attach([]*particle.Sprite{{}}); err == nil {
		t.Error("zero-area stage accepted sprites")
	}

	s.Resize(40, 10)
	a := []*particle.Sprite{{Index: 0}, {Index: 1}}
	c := []*particle.Sprite{{Index: 2}}
	s.Attach(a)
	s.Attach(c)
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	s.Detach(a)
	if s.Len() != 1 {
		t.Errorf("Len after detach = %d, want 1", s.Len())
	}
	if vp := s.Viewport(); vp.Width != 40 || vp.Height != 10 {
		t.Errorf("viewport = %+v", vp)
	}
}

func TestStageDrawsCenteredAndZOrdered(t *testing.T) {
	s := NewStage(20, 10)
	b := NewBuffer(20, 10)
	tint := color.RGBA{0, 255, 0, 255}

	back := &particle.Sprite{
		Visual: &particle.Visual{Glyphs: []rune{'b'}, Color: tint},
		State:  particle.VisualState{Z: 0.9, Opacity: 1, Scale: 1},
	}
	front := &particle.Sprite{
		Visual: &particle.Visual{Glyphs: []rune{'a'}, Color: tint},
		State:  particle.VisualState{Z: 0.1, Opacity: 1, Scale: 1},
	}
	hidden := &particle.Sprite{
		Visual: &particle.Visual{Glyphs: []rune{'h'}, Color: tint},
		State:  particle.VisualState{X: 3, Opacity: 0, Scale: 1},
	}
	s.Attach([]*particle.Sprite{back, front, hidden})
	s.Draw(b)

	if c := b.At(10, 5); c.Rune != 'b' || c.Fg != tint {
		t.Errorf("center cell = %+v, want highest Z sprite", c)
	}
	if b.At(13, 5).Rune != ' ' {
		t.Error("invisible sprite drawn")
	}
}

func TestStageStreak(t *testing.T) {
	s := NewStage(20, 5)
	b := NewBuffer(20, 5)
	star := &particle.Sprite{
		Visual: &particle.Visual{Glyphs: []rune{'*'}, Color: color.RGBA{255, 255, 255, 255}},
		State:  particle.VisualState{Opacity: 1, Scale: 1, Stretch: 3},
	}
	s.Attach([]*particle.Sprite{star})
	s.Draw(b)

	// Heading +X leaves the streak to the left
	for x := 7; x <= 9; x++ {
		if b.At(x, 2).Rune != '─' {
			t.Errorf("streak missing at x=%d: %q", x, b.At(x, 2).Rune)
		}
	}
	if b.At(10, 2).Rune != '*' {
		t.Error("head missing")
	}
}

func TestStageTexture(t *testing.T) {
	s := NewStage(20, 10)
	b := NewBuffer(20, 10)
	tex := media.NewGrid(2, 2)
	gold := color.RGBA{255, 200, 0, 255}
	for y := range 2 {
		for x := range 2 {
			tex.Set(x, y, media.Cell{Rune: '▀', Fg: gold})
		}
	}
	sp := &particle.Sprite{
		Visual: &particle.Visual{Glyphs: []rune{'*'}, Texture: tex},
		State:  particle.VisualState{Opacity: 1, Scale: 1},
	}
	s.Attach([]*particle.Sprite{sp})
	s.Draw(b)

	for y := 4; y <= 5; y++ {
		for x := 9; x <= 10; x++ {
			if c := b.At(x, y); c.Rune != '▀' || c.Fg != gold {
				t.Errorf("texture cell (%d,%d) = %+v", x, y, c)
			}
		}
	}
}

func TestRendererDrawsSection(t *testing.T) {
	screen := newTestScreen(t, 60, 20)
	r := NewRenderer(screen)
	theme := color.RGBA{255, 143, 177, 255}

	r.Draw(Frame{
		Section: &SectionView{
			Title:   "Our Journey",
			Body:    []string{"line one"},
			Hint:    "press → to continue",
			Theme:   theme,
			Opacity: 1,
		},
		ShowProgress: true,
		Progress:     0.5,
		AudioGlyph:   "🔊",
	})

	// 5 lines centered in 20 rows start at row 7
	if got := rowText(screen, 7); !containsRun(got, "Our Journey") {
		t.Errorf("title row = %q", got)
	}
	_, style := cellAt(screen, 24, 7)
	if fg, _, _ := style.Decompose(); fg != Tcell(theme) {
		t.Errorf("title color = %v, want theme", fg)
	}
	if got := rowText(screen, 9); !containsRun(got, "line one") {
		t.Errorf("body row = %q", got)
	}
	if n := countRune(screen, 19, '━'); n != 28 {
		t.Errorf("progress fill = %d cells, want 28", n)
	}
	if rr, _ := cellAt(screen, 56, 0); rr != '🔊' {
		t.Errorf("audio glyph cell = %q", rr)
	}
}

func TestRendererGatePrompt(t *testing.T) {
	screen := newTestScreen(t, 40, 12)
	r := NewRenderer(screen)
	r.Draw(Frame{
		Section: &SectionView{
			Title:   "Welcome",
			Opacity: 1,
			Input:   &InputView{Masked: "•••", Width: 3, Failed: true, Error: "try again"},
		},
	})

	found := false
	for y := 0; y < 12; y++ {
		if containsRun(rowText(screen, y), "[ ••• ]") {
			found = true
		}
	}
	if !found {
		t.Error("masked input not drawn")
	}
	if n := countRune(screen, 11, '─'); n != 0 {
		t.Error("progress bar drawn on the gate")
	}
}

func TestRendererFadedSectionInvisible(t *testing.T) {
	screen := newTestScreen(t, 40, 10)
	r := NewRenderer(screen)
	r.Draw(Frame{Section: &SectionView{Title: "Hidden", Opacity: 0}})
	for y := 0; y < 10; y++ {
		if containsRun(rowText(screen, y), "Hidden") {
			t.Fatal("zero opacity section drawn")
		}
	}
}

func TestRendererResize(t *testing.T) {
	screen := newTestScreen(t, 40, 10)
	r := NewRenderer(screen)
	screen.SetSize(50, 12)
	if !r.Sync() {
		t.Fatal("resize not detected")
	}
	if w, h := r.Size(); w != 50 || h != 12 {
		t.Errorf("size = %dx%d", w, h)
	}
	if vp := r.Stage().Viewport(); vp.Width != 50 || vp.Height != 12 {
		t.Errorf("stage viewport = %+v", vp)
	}
	if r.Sync() {
		t.Error("unchanged size reported as resize")
	}
}

func cellAt(screen tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := screen.GetContent(x, y)
	return r, style
}

func containsRun(row, want string) bool {
	rr, wr := []rune(row), []rune(want)
	for i := 0; i+len(wr) <= len(rr); i++ {
		match := true
		for j := range wr {
			if rr[i+j] != wr[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func TestRendererGatePromptCenteredOnMaskWidth(t *testing.T) {
	screen := newTestScreen(t, 40, 12)
	r := NewRenderer(screen)
	r.Draw(Frame{
		Section: &SectionView{
			Title:   "Welcome",
			Opacity: 1,
			Input:   &InputView{Masked: "•••", Width: 3},
		},
	})

	for y := 0; y < 12; y++ {
		row := []rune(rowText(screen, y))
		if !containsRun(string(row), "[ ••• ]") {
			continue
		}
		// "[ ••• ]" spans 7 cells: (40-7)/2
		if row[16] != '[' || row[22] != ']' {
			t.Errorf("prompt at %q, want it starting at column 16", string(row))
		}
		return
	}
	t.Error("masked input not drawn")
}
