package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/tv-fixtures/internal/config"
	"github.com/pfrederiksen/tv-fixtures/internal/fixture"
	"github.com/pfrederiksen/tv-fixtures/internal/logger"
	"github.com/pfrederiksen/tv-fixtures/internal/pipeline"
	"github.com/pfrederiksen/tv-fixtures/internal/scraper"
	"github.com/pfrederiksen/tv-fixtures/internal/storage"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitNoFixtures = 2
)

// ErrNoFixtures is returned when every input was processed but no fixture
// survived extraction and filtering.
var ErrNoFixtures = errors.New("no fixtures found")

type options struct {
	urls            []string
	htmlFiles       []string
	textFiles       []string
	team            string
	allCompetitions bool
	render          bool
	now             string
	configPath      string
	format          string
	sortOrder       string
	concurrency     int
	dataDir         string
	newOnly         bool
	verbose         bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "tv-fixtures [-]",
		Short: "Extract televised football fixtures from listings pages",
		Long: `A CLI tool to extract televised football fixtures from TV listings pages.
Reads pages by URL, from saved HTML or plain text captures, or from stdin (-),
resolves kick-off times to UTC and filters by competition and team.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.urls, "url", nil, "Listings page URL (repeatable)")
	cmd.Flags().StringArrayVar(&opts.htmlFiles, "html", nil, "Saved HTML page (repeatable)")
	cmd.Flags().StringArrayVar(&opts.textFiles, "text", nil, "Plain text capture, one line per row (repeatable)")
	cmd.Flags().StringVar(&opts.team, "team", "", "Only keep fixtures involving this team")
	cmd.Flags().BoolVar(&opts.allCompetitions, "all-competitions", false, "Keep non-UK competitions")
	cmd.Flags().BoolVar(&opts.render, "render", false, "Render URLs in headless Chrome instead of fetching")
	cmd.Flags().StringVar(&opts.now, "now", "", "Reference time for season-year inference (RFC3339)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json or ics")
	cmd.Flags().StringVar(&opts.sortOrder, "sort", "date", "Sort by: date, competition or home")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "Inputs processed at once")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", storage.DefaultDataDir, "Data directory for seen-fixture snapshots")
	cmd.Flags().BoolVar(&opts.newOnly, "new-only", false, "Only report fixtures not seen on a previous run")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runExtract is the main command logic
func runExtract(cmd *cobra.Command, args []string, opts *options) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if !format.valid() {
		return errors.Newf("invalid format: %s (must be 'text', 'json' or 'ics')", opts.format)
	}
	sortOrder := SortOrder(strings.ToLower(opts.sortOrder))
	if !sortOrder.valid() {
		return errors.Newf("invalid sort order: %s (must be 'date', 'competition' or 'home')", opts.sortOrder)
	}
	if opts.concurrency < 1 {
		return errors.Newf("invalid concurrency: %d", opts.concurrency)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}
	applyFlags(cmd, cfg, opts)

	now := time.Now()
	if opts.now != "" {
		if now, err = time.Parse(time.RFC3339, opts.now); err != nil {
			return errors.Wrap(err, "parsing --now")
		}
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if opts.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	defer logger.Default().Sync()

	inputs, err := collectInputs(args, opts)
	if err != nil {
		return err
	}

	competitions := cfg.CompetitionFilter()
	logger.Debug("Starting extraction", logger.Fields{
		"inputs": len(inputs),
		"filter": competitions.String(),
		"team":   cfg.Team,
		"now":    now.UTC().Format(time.RFC3339),
	})

	metrics := logger.NewMetrics()
	start := time.Now()

	runOpts := pipeline.Options{
		TeamFilter: cfg.Team,
		UKOnly:     cfg.UKOnly,
		Now:        now,
		Filter:     competitions,
	}
	results, err := process(cmd.Context(), inputs, newSource(cfg), cmd.InOrStdin(), runOpts, opts.concurrency, metrics)
	if err != nil {
		return err
	}

	result := &OutputResult{
		CheckedAt: now.UTC(),
		Filter:    competitions.String(),
		Team:      cfg.Team,
		NewOnly:   opts.newOnly,
	}

	var all []*fixture.Fixture
	for _, r := range results {
		result.Sources = append(result.Sources, SourceResult{
			Input:    r.input.String(),
			Strategy: r.result.Source,
			Fixtures: len(r.result.Fixtures),
		})
		for _, d := range r.result.Diagnostics {
			result.Diagnostics = append(result.Diagnostics, fmt.Sprintf("[%s] %s", r.input, d))
		}
		all = append(all, r.result.Fixtures...)
	}

	fixtures, merged := fixture.Dedupe(all)
	if merged > 0 {
		result.Diagnostics = append(result.Diagnostics, fmt.Sprintf("merged %d duplicate fixtures across inputs", merged))
	}
	if opts.newOnly {
		if fixtures, err = onlyNew(fixtures, opts.dataDir, cfg.Team, now); err != nil {
			return err
		}
		metrics.AddCounter("fixtures.new", int64(len(fixtures)))
	}
	sortFixtures(fixtures, sortOrder)
	result.Fixtures = fixtures
	result.FixtureCount = len(fixtures)

	metrics.AddCounter("fixtures.kept", int64(len(fixtures)))
	metrics.AddCounter("fixtures.merged", int64(merged))
	metrics.RecordTiming("run.duration", time.Since(start))

	for _, d := range result.Diagnostics {
		logger.Debug("Diagnostic", logger.Fields{"detail": d})
	}
	if len(fixtures) == 0 {
		logger.Warn("No fixtures extracted", logger.Fields{"diagnostics": result.Diagnostics})
	}
	logger.Info("Extraction finished", logger.Fields{
		"inputs":   len(inputs),
		"fixtures": len(fixtures),
		"duration": time.Since(start).String(),
	})
	logger.Debug("Run metrics", logger.Fields{"metrics": metrics.GetSnapshot()})

	if err := WriteOutput(cmd.OutOrStdout(), result, format, opts.verbose); err != nil {
		return errors.Wrap(err, "writing output")
	}

	if len(fixtures) == 0 {
		return ErrNoFixtures
	}
	return nil
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *options) {
	if cmd.Flags().Changed("team") {
		cfg.Team = opts.team
	}
	if opts.allCompetitions {
		cfg.UKOnly = false
	}
	if opts.render {
		cfg.Scraper.Render = true
	}
}

// onlyNew drops fixtures reported by earlier runs and records this run's
// fixtures for the next one.
func onlyNew(fixtures []*fixture.Fixture, dataDir, team string, now time.Time) ([]*fixture.Fixture, error) {
	store, err := storage.New(dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "initializing storage")
	}

	previous, err := store.LoadSnapshot(team)
	if err != nil {
		return nil, errors.Wrap(err, "loading snapshot")
	}

	fresh := storage.Diff(previous, fixtures)
	previous.Record(fixtures, now)

	if err := store.SaveSnapshot(previous, team, now); err != nil {
		return nil, errors.Wrap(err, "saving snapshot")
	}

	logger.Debug("Compared with snapshot", logger.Fields{
		"data_dir": dataDir,
		"seen":     len(fixtures) - len(fresh),
		"new":      len(fresh),
	})
	return fresh, nil
}

func newSource(cfg *config.Config) scraper.Source {
	if cfg.Scraper.Render {
		return scraper.NewRenderer(cfg.Scraper.UserAgent, cfg.Scraper.Timeout, cfg.Scraper.RenderWait)
	}
	return scraper.New(cfg.Scraper.UserAgent, cfg.Scraper.Timeout)
}

type inputResult struct {
	index  int
	input  input
	result pipeline.Result
}

// process captures and extracts every input concurrently. Results come back
// in input order.
func process(ctx context.Context, inputs []input, src scraper.Source, stdin io.Reader, runOpts pipeline.Options, concurrency int, metrics *logger.Metrics) ([]inputResult, error) {
	p := pool.NewWithResults[inputResult]().
		WithContext(ctx).
		WithMaxGoroutines(concurrency)

	for i, in := range inputs {
		p.Go(func(ctx context.Context) (inputResult, error) {
			started := time.Now()

			capture, err := in.capture(ctx, src, stdin)
			if err != nil {
				logger.Error("Capture failed", logger.Fields{"input": in.String()}, err)
				return inputResult{}, errors.Wrapf(err, "input %s", in)
			}

			o := runOpts
			o.Fallback = capture.Text
			res := pipeline.Run(capture.Leaves, o)

			metrics.IncrCounter("inputs.processed")
			metrics.AddCounter("lines.primary", int64(len(capture.Leaves)))
			metrics.RecordTiming("input.duration", time.Since(started))
			logger.Debug("Input processed", logger.Fields{
				"input":    in.String(),
				"lines":    len(capture.Leaves),
				"strategy": res.Source,
				"fixtures": len(res.Fixtures),
			})

			return inputResult{index: i, input: in, result: res}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].index < results[b].index })
	return results, nil
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoFixtures):
		return ExitNoFixtures
	default:
		return ExitError
	}
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().Execute()
	code := ExitCode(err)
	if code == ExitError {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}
