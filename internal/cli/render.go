package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-buildwaterfall/pkg/waterfall"
	"github.com/askiada/go-buildwaterfall/pkg/waterfall/drawer"
	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

// renderConcurrency bounds how many log files are processed at once.
const renderConcurrency = 4

type renderFlags struct {
	dialect string
	format  string
	outDir  string
}

func newRenderCmd(a *app) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <log-file>...",
		Short: "Parse build logs and write waterfall artifacts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect, err := parseDialect(flags.dialect)
			if err != nil {
				return err
			}
			if !validFormat(flags.format) {
				return errors.Errorf("unknown format %q, expected svg, dot or json", flags.format)
			}

			grp := &errgroup.Group{}
			grp.SetLimit(renderConcurrency)
			for _, path := range args {
				path := path
				grp.Go(func() error {
					return renderFile(a, flags, dialect, path)
				})
			}

			return grp.Wait()
		},
	}

	cmd.Flags().StringVar(&flags.dialect, "dialect", string(model.DialectAuto), "log dialect: auto, buildkit or legacy")
	cmd.Flags().StringVar(&flags.format, "format", "svg", "artifact format: svg, dot or json")
	cmd.Flags().StringVar(&flags.outDir, "out", ".", "output directory")

	return cmd
}

func renderFile(a *app, flags *renderFlags, dialect model.Dialect, path string) error {
	content, err := os.ReadFile(path) //nolint:gosec // user-supplied log path
	if err != nil {
		return errors.Wrapf(err, "unable to read %s", path)
	}

	result, err := waterfall.Parse(string(content), waterfall.WithDialect(dialect))
	if err != nil {
		return errors.Wrapf(err, "unable to parse %s", path)
	}

	for _, warning := range result.Warnings {
		a.logger.Warn().Str("file", path).Int("line", warning.Line).Msg(warning.Message)
	}

	outPath := outputPath(flags, path)
	out, err := os.Create(outPath) //nolint:gosec // derived from user-supplied path
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", outPath)
	}
	defer out.Close() //nolint:errcheck

	err = writeArtifact(flags.format, result, out)
	if err != nil {
		return errors.Wrapf(err, "unable to render %s", outPath)
	}

	a.logger.Info().
		Str("file", path).
		Str("out", outPath).
		Str("dialect", string(result.Dialect)).
		Int("steps", result.TotalSteps).
		Int("rows", result.Rows()).
		Dur("total", result.TotalDuration).
		Msg("rendered build waterfall")

	return nil
}

func writeArtifact(format string, result *model.Result, w io.Writer) error {
	switch format {
	case "svg":
		return drawer.NewSVGDrawer().Render(result, w)
	case "dot":
		return drawer.NewDOTDrawer().Render(result, w)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return errors.Wrap(enc.Encode(result), "unable to encode result")
	}
}

func outputPath(flags *renderFlags, logPath string) string {
	base := filepath.Base(logPath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	return filepath.Join(flags.outDir, base+"."+flags.format)
}

func parseDialect(value string) (model.Dialect, error) {
	switch model.Dialect(value) {
	case model.DialectAuto, model.DialectBuildKit, model.DialectLegacy:
		return model.Dialect(value), nil
	default:
		return "", errors.Errorf("unknown dialect %q, expected auto, buildkit or legacy", value)
	}
}

func validFormat(format string) bool {
	switch format {
	case "svg", "dot", "json":
		return true
	default:
		return false
	}
}
