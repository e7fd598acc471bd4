// Command slidepuzzle runs the slide puzzle.
//
// It supports several commands:
//  1. "play" (default) – opens the game window with the title screen
//  2. "mcp" – serves headless puzzle sessions over MCP stdio
//  3. "shuffle" – prints a shuffled board, optionally with a solution
//  4. "presets" – lists the difficulty presets
//  5. "validate" – checks the preset files against the window size
//
// Settings come from settings.toml, SLIDEPUZZLE_* environment variables and
// an optional .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/slide-puzzle/desktop"
	"github.com/wricardo/slide-puzzle/game/config"
	"github.com/wricardo/slide-puzzle/game/engine"
	"github.com/wricardo/slide-puzzle/game/geom"
	"github.com/wricardo/slide-puzzle/game/imagery"
	"github.com/wricardo/slide-puzzle/game/screen"
	"github.com/wricardo/slide-puzzle/game/service"
	"github.com/wricardo/slide-puzzle/game/session"
	"github.com/wricardo/slide-puzzle/transport/mcp"
	"github.com/wricardo/slide-puzzle/validate"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Slide Puzzle"
)

const (
	sessionCleanupInterval = time.Hour
	sessionMaxAge          = 24 * time.Hour
)

// app carries what the Before hook prepares for every command.
type app struct {
	settings *config.Settings
	log      zerolog.Logger
	stdout   io.Writer
}

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(stdout io.Writer) *cli.Command {
	a := &app{stdout: stdout, log: zerolog.Nop()}

	return &cli.Command{
		Name:    "slidepuzzle",
		Usage:   "slide the tiles back into the picture",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "settings", Value: "settings.toml", Usage: "settings file", Sources: cli.EnvVars("SLIDEPUZZLE_SETTINGS")},
			&cli.StringFlag{Name: "log-level", Usage: "override the settings log level"},
			&cli.BoolFlag{Name: "debug", Usage: "shorthand for --log-level debug"},
			&cli.BoolFlag{Name: "json-logs", Usage: "write JSON logs instead of console output"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			s, err := config.LoadSettings(cmd.String("settings"))
			if err != nil {
				return ctx, err
			}
			level := s.Logging.Level
			if l := cmd.String("log-level"); l != "" {
				level = l
			}
			if cmd.Bool("debug") {
				level = "debug"
			}
			logger, err := newLogger(os.Stderr, level, cmd.Bool("json-logs"))
			if err != nil {
				return ctx, err
			}
			a.settings = s
			a.log = logger
			return ctx, nil
		},
		Action: a.play,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "open the game window",
				Action: a.play,
			},
			{
				Name:   "mcp",
				Usage:  "serve puzzle sessions over MCP stdio",
				Action: a.serveMCP,
			},
			{
				Name:  "shuffle",
				Usage: "print a shuffled board",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "preset", Usage: "difficulty preset (settings default when empty)"},
					&cli.Uint64Flag{Name: "seed", Usage: "shuffle seed (settings seed when 0)"},
					&cli.BoolFlag{Name: "hint", Usage: "also print a solution plan"},
				},
				Action: a.shuffle,
			},
			{
				Name:   "presets",
				Usage:  "list difficulty presets",
				Action: a.presets,
			},
			{
				Name:   "validate",
				Usage:  "check preset files against the window size",
				Action: a.validate,
			},
		},
	}
}

// newLogger builds the process logger. Logs go to stderr because stdout
// carries the MCP protocol.
func newLogger(w io.Writer, level string, jsonLogs bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)

	if !jsonLogs {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).With().Timestamp().Logger(), nil
}

func (a *app) windowSize() geom.Size {
	return geom.Size{W: a.settings.Window.Width, H: a.settings.Window.Height}
}

// pictures loads the image directory, falling back to generated pictures,
// and fits every picture to the window.
func (a *app) pictures() []imagery.Picture {
	size := a.windowSize()
	pictures, skipped, err := imagery.LoadDir(a.settings.Assets.ImageDir)
	for _, name := range skipped {
		a.log.Warn().Str("file", name).Msg("skipping unreadable picture")
	}
	if err != nil || len(pictures) == 0 {
		a.log.Info().Str("dir", a.settings.Assets.ImageDir).Msg("no pictures found, using generated ones")
		return imagery.Generated(size.W, size.H)
	}

	for i := range pictures {
		pictures[i].Image = imagery.Fit(pictures[i].Image, size.W, size.H)
	}
	a.log.Info().Int("count", len(pictures)).Msg("pictures loaded")
	return pictures
}

// presetManager serves built-ins only when the preset directory is missing.
func (a *app) presetManager() (*config.Manager, error) {
	dir := a.settings.Assets.PresetDir
	if _, err := os.Stat(dir); err != nil {
		a.log.Debug().Str("dir", dir).Msg("preset directory missing, using built-in presets")
		dir = ""
	}
	return config.NewManager(dir)
}

// choices returns the presets that cut the window into whole cells.
func (a *app) choices(m *config.Manager) ([]screen.Choice, error) {
	infos, err := m.ListPresets()
	if err != nil {
		return nil, err
	}

	size := a.windowSize()
	var choices []screen.Choice
	for _, info := range infos {
		p, err := m.LoadPreset(info.ID)
		if err != nil {
			continue
		}
		if err := p.Fits(size.W, size.H); err != nil {
			a.log.Warn().Str("preset", info.ID).Err(err).Msg("skipping preset")
			continue
		}
		choices = append(choices, screen.Choice{ID: info.ID, Preset: *p})
	}
	if len(choices) == 0 {
		return nil, screen.ErrNoPresets
	}
	return choices, nil
}

// engineOptions applies the configured shift duration and seed.
func (a *app) engineOptions() ([]engine.Option, error) {
	d, err := a.settings.ShiftDuration()
	if err != nil {
		return nil, err
	}
	opts := []engine.Option{engine.WithShiftDuration(d)}
	if a.settings.Puzzle.Seed != 0 {
		opts = append(opts, engine.WithSeed(a.settings.Puzzle.Seed))
	}
	return opts, nil
}

// controller wires the title and puzzling screens.
func (a *app) controller() (*screen.Controller, error) {
	m, err := a.presetManager()
	if err != nil {
		return nil, err
	}
	choices, err := a.choices(m)
	if err != nil {
		return nil, err
	}
	opts, err := a.engineOptions()
	if err != nil {
		return nil, err
	}
	hold, err := a.settings.PreviewHold()
	if err != nil {
		return nil, err
	}

	size := a.windowSize()
	title, err := screen.NewTitle(size, a.pictures(), choices, screen.TitleOptions{
		CellSize:    a.settings.Title.CellSize,
		PreviewHold: hold,
		Default:     a.settings.Puzzle.DefaultPreset,
		Logger:      a.log,
		PreviewOpts: opts,
	})
	if err != nil {
		return nil, err
	}

	states := map[screen.StateName]screen.State{
		screen.StateTitle:    title,
		screen.StatePuzzling:  screen.NewPuzzling(size, a.log, opts...),
	}
	return screen.NewController(states, screen.StateTitle, a.log)
}

func (a *app) play(ctx context.Context, cmd *cli.Command) error {
	a.log.Info().Str("version", Version).Msgf("Starting %s", AppName)

	c, err := a.controller()
	if err != nil {
		return fmt.Errorf("failed to set up screens: %w", err)
	}
	return desktop.Run(desktop.NewGame(c, a.windowSize(), a.log), a.settings.Window.Title)
}

// newService wires the session manager, presets and pictures for headless play.
func (a *app) newService() (service.PuzzleService, *session.Manager, error) {
	m, err := a.presetManager()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create preset manager: %w", err)
	}
	sessions := session.NewManagerWithLogger(a.log)
	svc := service.NewGameService(sessions, m,
		service.WithBoardSize(a.windowSize()),
		service.WithPictures(a.pictures()),
		service.WithLogger(a.log),
	)
	return svc, sessions, nil
}

func (a *app) serveMCP(ctx context.Context, cmd *cli.Command) error {
	svc, sessions, err := a.newService()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.sessionCleanupRoutine(ctx, sessions)

	return mcp.NewServer(svc, a.log).ServeStdio()
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within sessionMaxAge.
func (a *app) sessionCleanupRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(sessionMaxAge); removed > 0 {
				a.log.Info().Int("removed", removed).Msg("cleaned up expired sessions")
			}
		}
	}
}

func (a *app) shuffle(ctx context.Context, cmd *cli.Command) error {
	svc, _, err := a.newService()
	if err != nil {
		return err
	}

	preset := cmd.String("preset")
	if preset == "" {
		preset = a.settings.Puzzle.DefaultPreset
	}
	seed := cmd.Uint64("seed")
	if seed == 0 {
		seed = a.settings.Puzzle.Seed
	}

	info, err := svc.CreateSession(ctx, preset, seed)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Preset: %s (%dx%d, %d shuffle moves), seed %d\n",
		info.PresetID, info.Preset.Columns, info.Preset.Rows, info.Preset.Moves, info.Seed)
	fmt.Fprint(a.stdout, service.RenderBoard(info.State))

	if !cmd.Bool("hint") {
		return nil
	}
	hint, err := svc.Hint(ctx, info.ID)
	if err != nil {
		return fmt.Errorf("no solution: %w", err)
	}
	if hint.Solved {
		fmt.Fprintln(a.stdout, "Already solved")
		return nil
	}
	fmt.Fprintf(a.stdout, "Solution (%d slides):\n", hint.Remaining)
	for i, step := range hint.Steps {
		fmt.Fprintf(a.stdout, "%3d. slide %v %s\n", i+1, step.From, service.DirectionName(step.Direction()))
	}
	return nil
}

func (a *app) presets(ctx context.Context, cmd *cli.Command) error {
	m, err := a.presetManager()
	if err != nil {
		return err
	}
	infos, err := m.ListPresets()
	if err != nil {
		return err
	}

	size := a.windowSize()
	for _, info := range infos {
		source := "built-in"
		if !info.BuiltIn {
			source = info.Filename
		}
		fit := ""
		p := config.Preset{Columns: info.Columns, Rows: info.Rows}
		if err := p.Fits(size.W, size.H); err != nil {
			fit = " (does not fit the window)"
		}
		fmt.Fprintf(a.stdout, "%-10s %-10s %dx%d, %d moves, %s%s\n",
			info.ID, info.Name, info.Columns, info.Rows, info.Moves, source, fit)
	}
	return nil
}

var errInvalidPresets = errors.New("some presets are invalid")

func (a *app) validate(ctx context.Context, cmd *cli.Command) error {
	results, err := validate.Dir(a.settings.Assets.PresetDir, a.windowSize())
	if err != nil {
		return err
	}
	if !validate.Report(a.stdout, results) {
		return errInvalidPresets
	}
	return nil
}
