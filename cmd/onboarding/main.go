package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/app"
)

const usage = `usage: onboarding <command> [flags]

commands:
  generate   read a page brief, generate and persist the page, write its HTML
  import     parse an existing HTML document into blocks and persist them
  render     serialize the stored page back to a full HTML document
  export     write a PDF snapshot of the stored page
  delete     remove the stored page and its blocks
`

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	var (
		project     string
		page        string
		inputPath   string
		outputPath  string
		llmBaseURL  string
		llmModel    string
		llmKey      string
		dbPath      string
		cacheDir    string
		cacheAge    time.Duration
		cacheClear  bool
		cacheStrict bool
		configPath  string
		envFile     string
		verbose     bool
		version     bool
	)

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	fs.StringVar(&project, "project", app.DefaultProject, "Project scope of the page")
	fs.StringVar(&page, "page", app.DefaultPage, "Page id within the project")
	fs.StringVar(&inputPath, "input", "", "Input path (brief for generate, HTML for import)")
	fs.StringVar(&outputPath, "output", "", "Output path (HTML or PDF depending on command)")
	fs.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	fs.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	fs.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	fs.StringVar(&dbPath, "db", app.DefaultDBPath, "SQLite database path")
	fs.StringVar(&cacheDir, "cache.dir", app.DefaultCacheDir, "Generation cache directory")
	fs.DurationVar(&cacheAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	fs.BoolVar(&cacheClear, "cache.clear", false, "Clear cache directory before run")
	fs.BoolVar(&cacheStrict, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	fs.StringVar(&configPath, "config", "", "Optional YAML/JSON config file")
	fs.StringVar(&envFile, "env", ".env", "Optional dotenv file")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")
	fs.BoolVar(&version, "version", false, "Print version and exit")
	_ = fs.Parse(os.Args[2:])

	if version {
		fmt.Printf("onboarding %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.LoadEnvFiles(envFile); err != nil {
		log.Warn().Err(err).Str("path", envFile).Msg("dotenv load failed")
	}

	cfg := app.Config{
		ProjectID:        project,
		PageID:           page,
		LLMBaseURL:       llmBaseURL,
		LLMModel:         llmModel,
		LLMAPIKey:        llmKey,
		DBPath:           dbPath,
		CacheDir:         cacheDir,
		CacheMaxAge:      cacheAge,
		CacheClear:       cacheClear,
		CacheStrictPerms: cacheStrict,
		Verbose:          verbose,
	}
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file load failed")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)

	if err := run(command, cfg, inputPath, outputPath); err != nil {
		log.Error().Err(err).Str("command", command).Msg("run failed")
		os.Exit(1)
	}
}

func run(command string, cfg app.Config, inputPath, outputPath string) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	switch command {
	case "generate", "import":
		if inputPath == "" {
			return fmt.Errorf("%s requires -input", command)
		}
		raw, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if command == "generate" {
			parsed, err := a.GenerateFromBrief(ctx, string(raw))
			if err != nil {
				return err
			}
			log.Info().Int("blocks", len(parsed.Blocks)).Msg("page generated")
		} else {
			parsed, err := a.ImportDocument(ctx, string(raw))
			if err != nil {
				return err
			}
			log.Info().Int("blocks", len(parsed.Blocks)).Msg("page imported")
		}
		if outputPath != "" {
			return writeRendered(a, outputPath)
		}
		return nil

	case "render":
		if outputPath == "" {
			return fmt.Errorf("render requires -output")
		}
		if err := a.Open(ctx); err != nil {
			return err
		}
		return writeRendered(a, outputPath)

	case "export":
		if outputPath == "" {
			return fmt.Errorf("export requires -output")
		}
		if err := a.Open(ctx); err != nil {
			return err
		}
		return a.ExportPDF(outputPath)

	case "delete":
		return a.DeletePage(ctx)

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func writeRendered(a *app.App, outputPath string) error {
	doc, err := a.RenderHTML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("path", outputPath).Msg("document written")
	return nil
}
