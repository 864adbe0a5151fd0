package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-tmplfit/pkg/config"
	"github.com/goliatone/go-tmplfit/pkg/interpolate/pongo"
	"github.com/goliatone/go-tmplfit/pkg/orchestrator"
	"github.com/goliatone/go-tmplfit/pkg/selector"
)

const (
	engineReplace = "replace"
	enginePongo   = "pongo"
)

type dependencies struct {
	Out      io.Writer
	Err      io.Writer
	Prompter Prompter
}

// CLI defines the flags parsed by kong.
type CLI struct {
	Config      string `short:"c" required:"" type:"existingfile" help:"Render configuration (JSON or YAML)."`
	Data        string `short:"d" required:"" type:"existingfile" help:"Data record (JSON or YAML)."`
	Strategy    string `short:"s" help:"Selection strategy: fittest, longest or shortest. Overrides the configuration."`
	Max         *int   `short:"m" help:"Maximum rendered length, 0 for none. Overrides the configuration."`
	Limit       int    `help:"Tuples enumerated per template, 0 disables the cap."`
	Engine      string `default:"replace" enum:"replace,pongo" help:"Interpolation engine (replace or pongo)."`
	Interactive bool   `short:"i" help:"Prompt for the strategy and length bound."`
	Verbose     bool   `short:"v" help:"Log template attempts to stderr."`
}

func run(args []string, deps dependencies) int {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Err == nil {
		deps.Err = os.Stderr
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name("tmplfit-cli"),
		kong.Description("Render the best fitting template for a data record."),
		kong.Writers(deps.Out, deps.Err),
	)
	if err != nil {
		return exitWithError(deps.Err, err)
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(deps.Err, err)
		return 2
	}

	text, found, err := execute(context.Background(), cli, deps)
	if err != nil {
		return exitWithError(deps.Err, err)
	}
	if !found {
		fmt.Fprintln(deps.Err, "no template fits")
		return 1
	}
	fmt.Fprintln(deps.Out, text)
	return 0
}

func execute(ctx context.Context, cli CLI, deps dependencies) (string, bool, error) {
	file, err := config.LoadFS(os.DirFS(filepath.Dir(cli.Config)), filepath.Base(cli.Config))
	if err != nil {
		return "", false, err
	}
	record, err := loadRecord(cli.Data)
	if err != nil {
		return "", false, err
	}

	if strategy := strings.TrimSpace(cli.Strategy); strategy != "" {
		file.Strategy = strategy
	}
	if cli.Max != nil {
		if *cli.Max < 0 {
			return "", false, fmt.Errorf("--max must not be negative, got %d", *cli.Max)
		}
		file.MaxLength = *cli.Max
	}
	if cli.Limit > 0 {
		file.Limit = cli.Limit
	}

	registry := selector.DefaultRegistry()
	if cli.Interactive {
		if err := prompt(deps.Prompter, registry, &file); err != nil {
			return "", false, err
		}
	}

	cfg, err := file.RenderConfig(nil)
	if err != nil {
		return "", false, err
	}
	sel, err := file.Selector(registry)
	if err != nil {
		return "", false, err
	}

	options := []orchestrator.Option{
		orchestrator.WithSelector(sel),
		orchestrator.WithIterationLimit(file.Limit),
	}
	if cli.Engine == enginePongo {
		engine, err := pongo.New(pongo.WithSprig(), pongo.WithBaseDir(filepath.Dir(cli.Config)))
		if err != nil {
			return "", false, err
		}
		options = append(options, orchestrator.WithInterpolator(engine))
	}
	if cli.Verbose {
		logger := slog.New(slog.NewTextHandler(deps.Err, &slog.HandlerOptions{Level: slog.LevelDebug}))
		options = append(options, orchestrator.WithLogger(logger))
	}

	result, err := orchestrator.New(options...).Render(ctx, cfg, record)
	if err != nil {
		return "", false, err
	}
	return result.Text, result.Found, nil
}

func prompt(p Prompter, registry *selector.Registry, file *config.File) error {
	if p == nil {
		return fmt.Errorf("tmplfit-cli: interactive mode needs a prompter")
	}
	strategy, err := p.Select("Selection strategy", registry.List(), file.StrategyName())
	if err != nil {
		return err
	}
	file.Strategy = strategy
	if strategy != selector.StrategyLongest {
		return nil
	}

	raw, err := p.Input("Maximum rendered length (0 for none)", cast.ToString(file.MaxLength), validateLength)
	if err != nil {
		return err
	}
	if err := validateLength(raw); err != nil {
		return err
	}
	file.MaxLength = cast.ToInt(raw)
	return nil
}

func loadRecord(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tmplfit-cli: read data %s: %w", path, err)
	}
	var record any
	if err := json.Unmarshal(data, &record); err == nil {
		return record, nil
	}
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("tmplfit-cli: parse data %s: invalid JSON or YAML: %w", path, err)
	}
	return record, nil
}

func exitWithError(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}
