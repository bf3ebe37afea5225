package cli

import (
	"flag"
	"io"
)

// Options holds the flags shared by every subcommand.
type Options struct {
	DataDir string // Local open-data checkout; overrides the remote provider
	BaseURL string // Remote provider base URL
	Team    string // Team name as spelled by the provider
	Player  string // Full player name as spelled by the provider
	MatchID int    // Provider match identifier
	Out     string // Output SVG path; "-" writes to stdout
	JSON    bool   // Print JSON instead of drawing (network only)
	Verbose bool   // Enable debug logging
}

// newFlagSet registers the flags a subcommand accepts.
func newFlagSet(name string, stderr io.Writer, o *Options, need ...string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.DataDir, "data-dir", "", "Local open-data checkout (default: remote provider)")
	fs.StringVar(&o.BaseURL, "url", "", "Provider base URL (default from config)")
	fs.BoolVar(&o.Verbose, "verbose", false, "Enable verbose logging")

	for _, n := range need {
		switch n {
		case flagTeam:
			fs.StringVar(&o.Team, flagTeam, "", "Team name, e.g. England")
		case flagPlayer:
			fs.StringVar(&o.Player, flagPlayer, "", "Player name, e.g. \"Declan Rice\"")
		case flagMatch:
			fs.IntVar(&o.MatchID, flagMatch, 0, "Match identifier, e.g. 3857256")
		case flagOut:
			fs.StringVar(&o.Out, flagOut, "", "Output SVG file (default: <figure>.svg, - for stdout)")
		case flagJSON:
			fs.BoolVar(&o.JSON, flagJSON, false, "Print the network as JSON instead of drawing it")
		}
	}
	return fs
}
