package cli

import (
	"bytes"
	"context"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/okian/pitchmap/internal/domain/figure"
	"github.com/okian/pitchmap/internal/domain/types"
	"github.com/okian/pitchmap/pkg/logger"
)

const filePermission = 0o644

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // shared encoder config

func runMatches(ctx context.Context, e *env, o *Options) error {
	matches, err := e.svc.Matches(ctx, o.Team)
	if err != nil {
		return err
	}
	return writeJSON(e.stdout, types.NewMatchList(o.Team, matches))
}

func runShots(ctx context.Context, e *env, o *Options) error {
	f, err := e.svc.ShotMap(ctx, o.Team)
	if err != nil {
		return err
	}
	return e.save(ctx, o.Out, figure.KindShotMap, func(w io.Writer) error {
		return e.renderer.ShotMap(ctx, w, f)
	})
}

func runPasses(ctx context.Context, e *env, o *Options) error {
	f, err := e.svc.PlayerPasses(ctx, o.MatchID, o.Player)
	if err != nil {
		return err
	}
	return e.save(ctx, o.Out, figure.KindPlayerPass, func(w io.Writer) error {
		return e.renderer.PlayerPasses(ctx, w, f)
	})
}

func runGrid(ctx context.Context, e *env, o *Options) error {
	f, err := e.svc.PassGrid(ctx, o.MatchID, o.Team)
	if err != nil {
		return err
	}
	return e.save(ctx, o.Out, figure.KindPassGrid, func(w io.Writer) error {
		return e.renderer.PassGrid(ctx, w, f)
	})
}

func runNetwork(ctx context.Context, e *env, o *Options) error {
	f, err := e.svc.PassNetwork(ctx, o.MatchID, o.Team)
	if err != nil {
		return err
	}
	if o.JSON {
		return writeJSON(e.stdout, f)
	}
	return e.save(ctx, o.Out, figure.KindPassNetwork, func(w io.Writer) error {
		return e.renderer.PassNetwork(ctx, w, f)
	})
}

// save draws into memory first so a failed render never leaves a partial file.
func (e *env) save(ctx context.Context, out string, kind figure.Kind, draw func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		return err
	}

	if out == "-" {
		_, err := e.stdout.Write(buf.Bytes())
		return err
	}
	if out == "" {
		out = string(kind) + ".svg"
	}
	if err := os.WriteFile(out, buf.Bytes(), filePermission); err != nil {
		return err
	}
	e.log.Info(ctx, "figure written", logger.String("kind", string(kind)), logger.String("path", out), logger.Int("bytes", buf.Len()))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
