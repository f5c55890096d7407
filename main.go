package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"nobaidu/internal/config"
	"nobaidu/internal/formatter"
	"nobaidu/internal/logging"
	"nobaidu/internal/pipeline"
	"nobaidu/internal/scraper"
	"nobaidu/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	mode           string
	outputFormat   string
	outputFile     string
	configFile     string
	dbPath         string
	timeout        time.Duration
	resultsTimeout time.Duration
	verifyTimeout  time.Duration
	delay          time.Duration
	showUI         bool
	proxyURL       string
	verbose        bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:     "nobaidu [QUERY]",
		Short:   "Find content reachable through Bing that Baidu has not indexed",
		Version: version,
		Long: `nobaidu drives a real browser to search Bing, reads the paragraphs of
every result page, drops boilerplate and asks Baidu whether each paragraph
is already indexed. What Baidu cannot find is printed.

Without QUERY the keyword is read from standard input.`,
		Example: `  # Paragraphs on Bing results that Baidu has not indexed
  nobaidu "量子计算 最新进展"

  # Bing result URLs missing from Baidu's results
  nobaidu --mode diff "golang tutorial"

  # Show the browser so a Baidu verification page can be solved by hand
  nobaidu --showui --verify-timeout 10m "开源 大模型"

  # Save as JSON and record the run
  nobaidu -o findings.json --db nobaidu.db "keyword"`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&mode, "mode", "m", pipeline.ModePlus, "Workflow (plus, diff)")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, markdown, html, json, csv)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (format inferred from extension if -f not specified)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML settings file")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database to record runs in")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Page load timeout")
	rootCmd.Flags().DurationVar(&resultsTimeout, "results-timeout", 10*time.Second, "How long to wait for a results list")
	rootCmd.Flags().DurationVar(&verifyTimeout, "verify-timeout", 5*time.Minute, "How long to wait for a manual verification (0 waits until interrupted)")
	rootCmd.Flags().DurationVar(&delay, "delay", 200*time.Millisecond, "Pause between result links")
	rootCmd.Flags().BoolVar(&showUI, "showui", false, "Show browser UI (disable headless mode)")
	rootCmd.Flags().StringVarP(&proxyURL, "proxy", "p", os.Getenv("NOBAIDU_PROXY"), "Proxy URL (e.g. http://127.0.0.1:7890), defaults to NOBAIDU_PROXY env var")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every cross-check step")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// If output file is specified but format is not, infer format from file extension
	if outputFile != "" && !cmd.Flags().Changed("format") {
		if inferred := formatter.FromExtension(outputFile); inferred != "" {
			outputFormat = inferred
		}
	}

	if err := validateFlags(); err != nil {
		return err
	}

	settings, err := config.Load(configFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, settings)

	s, _ := scraper.Get(mode)

	var query string
	if len(args) == 1 {
		query = strings.TrimSpace(args[0])
	} else {
		query, err = readQuery(os.Stdin, os.Stderr)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(os.Stderr, verbose)
	opts := buildOptions(settings, logger)
	opts.OnVerification = verificationNotice(os.Stderr, showUI)

	content, runErr := s.Scrape(ctx, query, opts)
	if content == nil {
		return fmt.Errorf("failed to scrape: %w", runErr)
	}

	if err := record(dbPath, content); err != nil {
		return err
	}

	outputContent, err := formatter.Format(content, outputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(outputContent), 0644); err != nil {
			return fmt.Errorf("failed to write to file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Output written to: %s\n", outputFile)
	} else {
		fmt.Println(outputContent)
	}

	return runErr
}

func validateFlags() error {
	if _, ok := scraper.Get(mode); !ok {
		return fmt.Errorf("invalid mode: %s (valid: %s)", mode, strings.Join(scraper.Names(), ", "))
	}

	valid := false
	for _, f := range formatter.Formats {
		if f == outputFormat {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("invalid output format: %s", outputFormat)
	}

	if timeout < 0 || verifyTimeout < 0 || delay < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if resultsTimeout <= 0 {
		return fmt.Errorf("--results-timeout must be positive")
	}
	return nil
}

// applyFlags overrides settings with the flags given on the command line.
func applyFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		s.PageLoadTimeout = config.Duration(timeout)
	}
	if flags.Changed("results-timeout") {
		s.ResultsTimeout = config.Duration(resultsTimeout)
	}
	if flags.Changed("verify-timeout") {
		s.VerifyTimeout = config.Duration(verifyTimeout)
	}
	if flags.Changed("delay") {
		s.Delay = config.Duration(delay)
	}
	if proxyURL != "" || flags.Changed("proxy") {
		s.Proxy = proxyURL
	}
}

func buildOptions(s *config.Settings, logger *slog.Logger) scraper.Options {
	return scraper.Options{
		ShowUI:          showUI,
		ProxyURL:        s.Proxy,
		PageLoadTimeout: time.Duration(s.PageLoadTimeout),
		ReadyTimeout:    time.Duration(s.ReadyTimeout),
		ResultsTimeout:  time.Duration(s.ResultsTimeout),
		VerifyTimeout:   time.Duration(s.VerifyTimeout),
		VerifyPoll:      time.Duration(s.VerifyPoll),
		Delay:           time.Duration(s.Delay),
		DenyDomains:     s.DenyDomains,
		Keywords:        s.Keywords,
		MinLength:       s.MinLength,
		OnState:         logging.StateFunc(logger),
		Logger:          logger,
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// readQuery prompts on w and reads one non-empty line from r.
func readQuery(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, "请输入搜索关键词：")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read query: %w", err)
	}
	query := strings.TrimSpace(line)
	if query == "" {
		return "", fmt.Errorf("query is required")
	}
	return query, nil
}

func verificationNotice(w io.Writer, headed bool) func(url string) {
	warn := color.New(color.FgYellow, color.Bold)
	return func(url string) {
		warn.Fprintln(w, "检测到百度安全验证，请手动完成验证...")
		if !headed {
			fmt.Fprintln(w, "The browser is headless; rerun with --showui to solve the verification.")
		}
	}
}

// record saves the run when a database path is given.
func record(path string, content scraper.Content) error {
	if path == "" {
		return nil
	}
	rec, ok := content.(interface{ Record() *store.Run })
	if !ok {
		return nil
	}

	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveRun(context.Background(), rec.Record()); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}
