// Package cli implements the pitchmap command line tool.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/okian/pitchmap/internal/adapters/provider"
	"github.com/okian/pitchmap/internal/adapters/render"
	service "github.com/okian/pitchmap/internal/app"
	"github.com/okian/pitchmap/internal/config"
	"github.com/okian/pitchmap/internal/domain/model"
	"github.com/okian/pitchmap/internal/domain/network"
	"github.com/okian/pitchmap/pkg/logger"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const (
	flagTeam   = "team"
	flagPlayer = "player"
	flagMatch  = "match"
	flagOut    = "out"
	flagJSON   = "json"
)

type command struct {
	name  string
	flags []string
	run   func(ctx context.Context, e *env, o *Options) error
}

var commands = []command{ //nolint:gochecknoglobals // static command table
	{name: "matches", flags: []string{flagTeam}, run: runMatches},
	{name: "shots", flags: []string{flagTeam, flagOut}, run: runShots},
	{name: "passes", flags: []string{flagMatch, flagPlayer, flagOut}, run: runPasses},
	{name: "grid", flags: []string{flagMatch, flagTeam, flagOut}, run: runGrid},
	{name: "network", flags: []string{flagMatch, flagTeam, flagOut, flagJSON}, run: runNetwork},
}

// env carries what a command needs to do its work.
type env struct {
	svc      *service.Service
	renderer *render.Renderer
	stdout   io.Writer
	log      logger.Logger
}

// Run executes the command named by args[0] and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "-help" || args[0] == "help" {
		ShowHelp(stderr)
		if len(args) == 0 {
			return ExitUsage
		}
		return ExitOK
	}

	cmd, ok := lookup(args[0])
	if !ok {
		fmt.Fprintf(stderr, "pitchmap: %v: %s\n", ErrUnknownCommand, args[0])
		ShowHelp(stderr)
		return ExitUsage
	}

	var o Options
	fs := newFlagSet(cmd.name, stderr, &o, cmd.flags...)
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	if err := requireFlags(&o, cmd.flags); err != nil {
		fmt.Fprintf(stderr, "pitchmap %s: %v\n", cmd.name, err)
		fs.Usage()
		return ExitUsage
	}

	e, err := newEnv(ctx, &o, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "pitchmap: %v\n", err)
		return ExitError
	}

	if err := cmd.run(ctx, e, &o); err != nil {
		e.log.Debug(ctx, "command failed", logger.String("command", cmd.name), logger.Error(err))
		fmt.Fprintf(stderr, "pitchmap %s: %s: %v\n", cmd.name, model.KindName(err), err)
		return ExitError
	}
	return ExitOK
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func requireFlags(o *Options, names []string) error {
	for _, n := range names {
		missing := false
		switch n {
		case flagTeam:
			missing = o.Team == ""
		case flagPlayer:
			missing = o.Player == ""
		case flagMatch:
			missing = o.MatchID <= 0
		}
		if missing {
			return fmt.Errorf("%w: -%s", ErrMissingFlag, n)
		}
	}
	return nil
}

// newEnv loads configuration, applies flag overrides and builds the service.
// Logs go to stderr so stdout stays clean for JSON and SVG output.
func newEnv(ctx context.Context, o *Options, stdout, stderr io.Writer) (*env, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.BaseURL != "" {
		cfg.ProviderBaseURL = o.BaseURL
		cfg.DataDir = ""
	}

	if err := logger.InitWithOptions(logger.WithWriter(stderr), logger.WithFormat(logger.Format(cfg.LogFormat))); err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if o.Verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		_ = logger.SetLevelString("info")
	}
	log := logger.Get()

	var src provider.Source
	if cfg.DataDir != "" {
		src = provider.NewDirSource(cfg.DataDir, provider.WithDirLogger(log.Named("provider")))
	} else {
		src = provider.NewHTTPSource(
			provider.WithBaseURL(cfg.ProviderBaseURL),
			provider.WithTimeout(cfg.HTTPTimeout()),
			provider.WithLogger(log.Named("provider")),
		)
	}

	svc := service.New(src,
		service.WithCompetition(cfg.CompetitionID, cfg.SeasonID),
		service.WithAggregator(network.NewAggregator(
			network.WithMaxMarkerSize(cfg.MaxMarkerSize),
			network.WithMaxLineWidth(cfg.MaxLineWidth),
		)),
		service.WithPitch(cfg.PitchLength, cfg.PitchWidth),
		service.WithGrid(cfg.GridColumns, cfg.GridRows),
		service.WithLogger(log.Named("service")),
	)
	r := render.New(
		render.WithPitch(cfg.PitchLength, cfg.PitchWidth),
		render.WithScale(cfg.RenderScale),
		render.WithLogger(log.Named("render")),
	)

	return &env{svc: svc, renderer: r, stdout: stdout, log: log}, nil
}

// ShowHelp prints usage information.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `pitchmap draws shots, passes and pass networks from football event data.

Usage:
  pitchmap <command> [flags]

Commands:
  matches  -team T                      List a team's matches as JSON
  shots    -team T [-out F]             Shot map over every match the team played
  passes   -match M -player P [-out F]  One player's passes in one match
  grid     -match M -team T [-out F]    One pitch per passing player of a team
  network  -match M -team T [-out F]    Pass network up to the first substitution
           [-json]                      Print the network as JSON instead

Common flags:
  -data-dir string   Local open-data checkout (default: remote provider)
  -url string        Provider base URL
  -verbose           Enable verbose logging

Examples:
  pitchmap matches -team England
  pitchmap passes -match 3857256 -player "Declan Rice" -out rice.svg
  pitchmap network -match 3857256 -team England -json
`)
}
