package config

import "time"

// Section identifiers of the site, in display order
const (
	SectionWelcome         = "welcome"
	SectionJourney         = "journey"
	SectionFirstMoments    = "first-moments"
	SectionGrowingTogether = "growing-together"
	SectionWhatILove       = "what-i-love"
	SectionOurFuture       = "our-future"
	SectionBirthdayMessage = "birthday-message"
)

// Default reproduces the original site
func Default() *Config {
	return &Config{
		Gate: Gate{
			Digest: "38c69d88e8c0798840b4c4e3a69bec0e03b37329c97fdb9cf190bcffed22d4bf",
			Error:  "That's not quite it. Try again, love.",
		},
		Order: []string{
			SectionWelcome,
			SectionJourney,
			SectionFirstMoments,
			SectionGrowingTogether,
			SectionWhatILove,
			SectionOurFuture,
			SectionBirthdayMessage,
		},
		Sections: map[string]Section{
			SectionWelcome: {
				Title: "Welcome",
				Body: []string{
					"Something small was made for you.",
					"Enter our special date to open it.",
				},
				Hint:  "enter to unlock",
				Theme: "#ffb7c5",
			},
			SectionJourney: {
				Title: "Our Journey",
				Body: []string{
					"Every story has a first page.",
					"Ours started with a hello and never stopped.",
				},
				Hint:  "→ next   ← back   m music",
				Theme: "#a9c7ff",
			},
			SectionFirstMoments: {
				Title: "First Moments",
				Body: []string{
					"The nervous laughs, the long walks,",
					"the first time your hand found mine.",
				},
				Hint:  "→ next   ← back",
				Theme: "#ffc0d9",
			},
			SectionGrowingTogether: {
				Title: "Growing Together",
				Body: []string{
					"Seasons changed and so did we,",
					"always a little closer than before.",
				},
				Hint:  "→ next   ← back",
				Theme: "#f0b775",
			},
			SectionWhatILove: {
				Title: "What I Love",
				Body: []string{
					"Your kindness. Your stubborn courage.",
					"The way you make ordinary days glow.",
				},
				Hint:  "→ next   ← back",
				Theme: "#ff8fb1",
			},
			SectionOurFuture: {
				Title: "Our Future",
				Body: []string{
					"So many wishes left to make,",
					"and every one of them has you in it.",
				},
				Hint:  "→ next   ← back",
				Theme: "#fff0c8",
			},
			SectionBirthdayMessage: {
				Title: "Happy Birthday",
				Body: []string{
					"Thank you for being you.",
					"Here's to another year of us.",
				},
				Hint:  "← back   1-6 jump   q quit",
				Theme: "#d7b8ff",
			},
		},
		Timing: Timing{
			Fade:           800 * time.Millisecond,
			FadeEase:       "power2.inOut",
			Stagger:        100 * time.Millisecond,
			UnlockDelay:    300 * time.Millisecond,
			Progress:       500 * time.Millisecond,
			ProgressEase:   "power2.out",
			OverlayFadeIn:  600 * time.Millisecond,
			OverlayFadeOut: time.Second,
			OverlayHold:    8 * time.Second,
			OverlayOpacity: 0.45,
		},
		Particles: map[string]Particles{
			SectionJourney:         {Law: "birds", Count: 120, Duration: 4 * time.Second, Glyphs: "v", Color: "#dfe6ff"},
			SectionFirstMoments:    {Law: "petals", Count: 140, Duration: 5 * time.Second, Glyphs: "🌸"},
			SectionGrowingTogether: {Law: "leaves", Count: 120, Duration: 5 * time.Second, Glyphs: "🍂🍁🍃🍂"},
			SectionWhatILove:       {Law: "hearts", Count: 80, Duration: 4 * time.Second, Glyphs: "💖"},
			SectionOurFuture:       {Law: "shooting-stars", Count: 40, Duration: 4 * time.Second, Glyphs: "✦", Color: "#fff0c8", Texture: "star"},
			SectionBirthdayMessage: {Law: "butterflies", Count: 60, Duration: 6 * time.Second, Glyphs: "🦋"},
		},
		Fallback: Particles{Law: "sparkles", Count: 60, Duration: 3 * time.Second, Glyphs: "·✧✦*", Color: "#ffe9a8"},
		Overlays: map[string][]string{
			SectionJourney:         {"embed:overlays/journey.gif"},
			SectionFirstMoments:    {"embed:overlays/first-moments.gif", "embed:overlays/first-moments.png"},
			SectionGrowingTogether: {"embed:overlays/growing-together.gif"},
			SectionWhatILove:       {"embed:overlays/what-i-love.gif", "embed:overlays/what-i-love.png"},
			SectionOurFuture:       {"embed:overlays/our-future.gif"},
			SectionBirthdayMessage: {"embed:overlays/birthday-message.gif"},
		},
		Textures: map[string]Texture{
			"star": {Sources: []string{"embed:textures/star.png"}, Cols: 3, Rows: 2},
		},
		Audio: Audio{
			Volume:  0.3,
			FadeIn:  2 * time.Second,
			FadeOut: time.Second,
		},
		FPS: 30,
	}
}
