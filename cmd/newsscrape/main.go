package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hyperifyio/newsscrape/internal/app"
	"github.com/hyperifyio/newsscrape/internal/verify"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "newsscrape:", err)
		os.Exit(1)
	}
}

type options struct {
	configPath   string
	envFiles     []string
	input        string
	articles     string
	logPath      string
	userAgent    string
	timeout      time.Duration
	containers   []string
	readability  bool
	minBodyChars int
	cacheDir     string
	cacheMaxAge  time.Duration
	cacheClear   bool
	stopwords    string
	verbose      bool
	logFile      string
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&options{})
}

func buildRootCmd(opts *options) *cobra.Command {
	def := app.DefaultConfig()

	root := &cobra.Command{
		Use:           "newsscrape",
		Short:         "Fetch news articles listed in a spreadsheet and save their text",
		Long:          "newsscrape reads URL_ID/URL rows from an .xlsx or .csv file, extracts each article's title and body, writes <URL_ID>.txt per row and a CSV status log.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := resolve(cmd, opts)
			if err != nil {
				return err
			}
			defer closeLog()
			return run(cmd.Context(), cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to YAML or JSON config file")
	pf.StringSliceVar(&opts.envFiles, "env", []string{".env"}, "Dotenv files to load before reading NEWSSCRAPE_* variables")
	pf.StringVar(&opts.articles, "articles", def.ArticlesDir, "Directory receiving one <URL_ID>.txt per row")
	pf.StringVar(&opts.stopwords, "stopwords", def.StopwordDir, "Directory holding the stopword lists")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")
	pf.StringVar(&opts.logFile, "log.file", "", "Also write JSON logs to this file, rotated by size")

	f := root.Flags()
	f.StringVar(&opts.input, "input", def.InputPath, "Input .xlsx or .csv with URL_ID and URL columns")
	f.StringVar(&opts.logPath, "log", def.LogPath, "Path of the CSV status log")
	f.StringVar(&opts.userAgent, "user-agent", def.UserAgent, "User-Agent header sent with every request")
	f.DurationVar(&opts.timeout, "timeout", def.Timeout, "Per-request timeout")
	f.StringSliceVar(&opts.containers, "container", def.Containers, "Body container CSS selectors tried in order; \"readability\" selects the readability extractor")
	f.BoolVar(&opts.readability, "readability", false, "Append the readability extractor after the container selectors")
	f.IntVar(&opts.minBodyChars, "min-body-chars", def.MinBodyChars, "Body length under which the <article> element is preferred")
	f.StringVar(&opts.cacheDir, "cache.dir", "", "Cache fetched pages in this directory (disabled when empty)")
	f.DurationVar(&opts.cacheMaxAge, "cache.maxAge", 0, "Purge cache entries older than this before the run; 0 disables")
	f.BoolVar(&opts.cacheClear, "cache.clear", false, "Clear the cache directory before the run")

	root.AddCommand(newVerifyCmd(opts), newVersionCmd())
	return root
}

func newVerifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check scraped articles and stopword lists are in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := resolve(cmd, opts)
			if err != nil {
				return err
			}
			defer closeLog()

			res, err := verify.Check(verify.Options{ArticlesDir: cfg.ArticlesDir, StopwordDir: cfg.StopwordDir})
			if err != nil {
				return err
			}
			res.Print(cmd.OutOrStdout())
			if !res.OK() {
				return errors.New("verification failed")
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "newsscrape %s (commit: %s, built: %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		},
	}
}

// resolve builds the effective config: defaults, then the config file, then
// NEWSSCRAPE_* env, then any flag given on the command line.
func resolve(cmd *cobra.Command, opts *options) (app.Config, func(), error) {
	cfg := app.DefaultConfig()
	if err := app.LoadEnvFiles(opts.envFiles...); err != nil {
		return cfg, func() {}, fmt.Errorf("load env: %w", err)
	}
	if opts.configPath != "" {
		fc, err := app.LoadConfigFile(opts.configPath)
		if err != nil {
			return cfg, func() {}, fmt.Errorf("load config: %w", err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)
	applyFlags(cmd.Flags(), opts, &cfg)

	closeLog := setupLogging(os.Stderr, cfg.Verbose, cfg.LogFile)
	return cfg, closeLog, nil
}

func applyFlags(fs *pflag.FlagSet, opts *options, cfg *app.Config) {
	set := func(name string, apply func()) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			apply()
		}
	}
	set("input", func() { cfg.InputPath = opts.input })
	set("articles", func() { cfg.ArticlesDir = opts.articles })
	set("log", func() { cfg.LogPath = opts.logPath })
	set("user-agent", func() { cfg.UserAgent = opts.userAgent })
	set("timeout", func() { cfg.Timeout = opts.timeout })
	set("container", func() { cfg.Containers = append([]string{}, opts.containers...) })
	set("readability", func() { cfg.Readability = opts.readability })
	set("min-body-chars", func() { cfg.MinBodyChars = opts.minBodyChars })
	set("cache.dir", func() { cfg.CacheDir = opts.cacheDir })
	set("cache.maxAge", func() { cfg.CacheMaxAge = opts.cacheMaxAge })
	set("cache.clear", func() { cfg.CacheClear = opts.cacheClear })
	set("stopwords", func() { cfg.StopwordDir = opts.stopwords })
	set("verbose", func() { cfg.Verbose = opts.verbose })
	set("log.file", func() { cfg.LogFile = opts.logFile })
}

// setupLogging points the global logger at a console writer on out and,
// when logFile is set, a rotated JSON file. The returned func closes the file.
func setupLogging(out io.Writer, verbose bool, logFile string) func() {
	zerolog.TimeFieldFormat = time.RFC3339
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	console := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	if logFile == "" {
		log.Logger = log.Output(console)
		return func() {}
	}
	rotated := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, rotated)).With().Timestamp().Logger()
	return func() { _ = rotated.Close() }
}

func run(ctx context.Context, cfg app.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	if _, err := a.Run(ctx); err != nil {
		if errors.Is(err, app.ErrNoRequests) {
			log.Warn().Str("input", cfg.InputPath).Msg("input has no rows; nothing to do")
			return nil
		}
		return err
	}
	return nil
}
