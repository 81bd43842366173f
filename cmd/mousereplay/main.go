package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/v0xg/mousereplay/internal/config"
	"github.com/v0xg/mousereplay/internal/executor"
	"github.com/v0xg/mousereplay/internal/gifgen"
	"github.com/v0xg/mousereplay/internal/locate"
	"github.com/v0xg/mousereplay/internal/logging"
	"github.com/v0xg/mousereplay/internal/overlay"
	"github.com/v0xg/mousereplay/internal/pointer"
	"github.com/v0xg/mousereplay/internal/pointer/browser"
	"github.com/v0xg/mousereplay/internal/pointer/desktop"
	"github.com/v0xg/mousereplay/internal/script"
)

var (
	configPath string
	driverName string
	url        string
	width      int
	height     int
	profile    string
	record     string
	fps        int
	logLevel   string
	verbose    bool
)

func main() {
	// Load .env file if present (silently ignore if not found)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "mousereplay [file]",
		Short: "Replay a CSV timeline of mouse actions",
		Long: `mousereplay reads a CSV file of mouse actions (move, click, drag, scroll, wait)
and performs them in order against the desktop pointer.

With no argument it uses mouse_actions.csv, creating a sample file if none exists.

Columns:
  action,x_position,y_position,delay_ms,button,modifiers,repeat_count`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file (default: mousereplay.yaml if present)")
	rootCmd.Flags().StringVar(&driverName, "driver", "", "Pointer driver: desktop, browser, log (default: desktop)")
	rootCmd.Flags().StringVar(&url, "url", "", "Page to open with the browser driver")
	rootCmd.Flags().IntVar(&width, "width", 0, "Browser viewport width")
	rootCmd.Flags().IntVar(&height, "height", 0, "Browser viewport height")
	rootCmd.Flags().StringVar(&profile, "profile", "", "Chrome/Chromium profile directory for the browser driver (close browser first)")
	rootCmd.Flags().StringVarP(&record, "record", "o", "", "Write a GIF of the replay (browser driver only)")
	rootCmd.Flags().IntVar(&fps, "fps", 0, "Frames per second for --record")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show every pointer operation")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", "source", cfg.Source, "driver", cfg.Driver)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if wd, err := os.Getwd(); err == nil {
		fmt.Printf("Current directory: %s\n", wd)
	}

	// Step 1: Find the action file
	resolver := locate.NewResolver(logger)
	resolver.Name = cfg.Script.File
	resolver.Candidates = cfg.Script.SearchPaths
	if len(resolver.Candidates) == 0 {
		resolver.Candidates = locate.DefaultCandidates(cfg.Script.File)
	}

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	path, err := resolver.Resolve(arg)
	if err != nil {
		return err
	}
	if resolver.Created {
		fmt.Printf("→ Created sample action file %s\n", cfg.Script.File)
	}
	fmt.Printf("→ Using action file: %s\n", path)

	// Step 2: Parse it
	steps, err := readSteps(path)
	if err != nil {
		return err
	}
	for _, w := range script.Lint(steps) {
		logger.Warn(w.Message, "line", w.Line)
	}

	// Step 3: Open the pointer driver
	driver, closeDriver, err := openDriver(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDriver()

	// Step 4: Play
	fmt.Printf("→ Replaying %d actions via %s driver...\n", len(steps), cfg.Driver)
	result, err := executor.Play(ctx, steps, driver, executor.Options{
		Out:     os.Stdout,
		Logger:  logger,
		Verbose: verbose,
	})
	if err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	logger.Debug("playback finished", "steps", result.Steps, "ops", result.Ops, "skipped", result.Skipped)

	// Step 5: Optional recording
	if b, ok := driver.(*browser.Driver); ok && cfg.Browser.Record != "" {
		if err := writeRecording(b, cfg.Browser); err != nil {
			return err
		}
	}

	fmt.Println("✓ Automation completed successfully!")
	return nil
}

// loadConfig layers defaults, the config file, the environment and flags
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Driver = driverName
	}
	if flags.Changed("url") {
		cfg.Browser.URL = url
	}
	if flags.Changed("width") {
		cfg.Browser.Width = width
	}
	if flags.Changed("height") {
		cfg.Browser.Height = height
	}
	if flags.Changed("profile") {
		cfg.Browser.Profile = profile
	}
	if flags.Changed("record") {
		cfg.Browser.Record = record
		if !flags.Changed("driver") && cfg.Driver == config.DriverDesktop {
			cfg.Driver = config.DriverBrowser
		}
	}
	if flags.Changed("fps") {
		cfg.Browser.FPS = fps
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	cfg.Driver = strings.ToLower(cfg.Driver)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func readSteps(path string) ([]script.Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open action file: %w", err)
	}
	defer f.Close()

	steps, err := script.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return steps, nil
}

func openDriver(cfg config.Config, logger *slog.Logger) (pointer.Driver, func(), error) {
	switch cfg.Driver {
	case config.DriverLog:
		return pointer.NewLogDriver(logger), func() {}, nil
	case config.DriverBrowser:
		fmt.Printf("→ Launching browser at %s... ", cfg.Browser.URL)
		d, err := browser.Launch(browser.Options{
			URL:        cfg.Browser.URL,
			Width:      cfg.Browser.Width,
			Height:     cfg.Browser.Height,
			Headless:   cfg.Browser.Headless,
			ProfileDir: cfg.Browser.Profile,
			Record:     cfg.Browser.Record != "",
		})
		if err != nil {
			fmt.Println("failed")
			return nil, nil, err
		}
		fmt.Println("done")
		return d, d.Close, nil
	default:
		return desktop.New(), func() {}, nil
	}
}

func writeRecording(d *browser.Driver, opts config.BrowserConfig) error {
	captured := d.Frames()
	if len(captured) == 0 {
		fmt.Println("⚠ No frames captured, skipping GIF")
		return nil
	}
	frames := make([]image.Image, len(captured))
	cursors := make([]overlay.Cursor, len(captured))
	for i, f := range captured {
		frames[i] = f.Image
		cursors[i] = f.Cursor
	}

	fmt.Printf("→ Applying cursor overlay... ")
	frames, err := overlay.ApplyCursor(frames, cursors)
	if err != nil {
		fmt.Println("failed")
		return fmt.Errorf("overlay failed: %w", err)
	}
	fmt.Println("done")

	fmt.Printf("→ Generating GIF (%d frames)... ", len(frames))
	size, err := gifgen.Generate(frames, opts.Record, gifgen.Options{
		FPS:      opts.FPS,
		MaxWidth: opts.MaxWidth,
		Hold:     opts.FPS,
	})
	if err != nil {
		fmt.Println("failed")
		return fmt.Errorf("GIF generation failed: %w", err)
	}
	fmt.Println("done")

	fmt.Printf("✓ Saved to %s (%.1f MB)\n", opts.Record, float64(size)/(1024*1024))
	return nil
}
