package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/petals/asset"
	"github.com/lixenwraith/petals/audio"
	"github.com/lixenwraith/petals/config"
	"github.com/lixenwraith/petals/engine"
)

// options are the command-line overrides; only flags actually given are applied
type options struct {
	configPath  string
	debug       bool
	mute        bool
	fps         int
	noParticles bool
	audio       string
	dumpConfig  bool

	set map[string]bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("petals", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.BoolVar(&o.debug, "debug", false, "Write debug logs to "+logDir)
	fs.BoolVar(&o.mute, "mute", false, "Disable ambient audio")
	fs.IntVar(&o.fps, "fps", 0, "Frame rate")
	fs.BoolVar(&o.noParticles, "no-particles", false, "Disable particle effects")
	fs.StringVar(&o.audio, "audio", "", "Ambient audio WAV file")
	fs.BoolVar(&o.dumpConfig, "dump-config", false, "Print the effective configuration and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// loadConfig layers defaults or file, then environment, then flags
func loadConfig(o *options, environ map[string]string) (*config.Config, error) {
	e, err := config.ParseEnv(environ)
	if err != nil {
		return nil, err
	}

	path := e.Config
	if o.set["config"] {
		path = o.configPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(e)

	if o.set["debug"] {
		cfg.Debug = o.debug
	}
	if o.set["mute"] {
		cfg.Audio.Mute = o.mute
	}
	if o.set["fps"] {
		cfg.FPS = o.fps
	}
	if o.set["no-particles"] {
		cfg.NoParticles = o.noParticles
	}
	if o.set["audio"] {
		cfg.Audio.Source = o.audio
	}
	return cfg, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	cfg, err := loadConfig(opts, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "petals: %v\n", err)
		os.Exit(1)
	}

	if opts.dumpConfig {
		out, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "petals: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPETALS CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, screen, audio.SpeakerOutput{}); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "petals: %v\n", err)
		os.Exit(1)
	}
	screen.Fini()
}

// run plays one session on screen until ctx ends or the user quits
// The game is closed on every exit path, panics included
func run(ctx context.Context, cfg *config.Config, screen tcell.Screen, out audio.Output) error {
	game, err := engine.New(engine.Options{
		Config: cfg,
		Screen: screen,
		Audio:  out,
		Assets: asset.FS(),
	})
	if err != nil {
		return err
	}
	defer game.Close()

	log.Printf("petals: starting %s", game)
	if err := game.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
