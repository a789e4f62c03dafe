// Package app wires the page builder together: the chat-model client that
// generates the initial document, the parser that splits it into blocks and
// theme, the ordered store that absorbs edits, and the SQLite page store
// that persists them.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/blocks"
	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/brief"
	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/cache"
	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/export"
	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/generate"
	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/htmldoc"
	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/llm"
	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/storage"
	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/store"
)

// ErrPageNotFound is returned by Open when neither a page row nor block rows
// exist for the configured page.
var ErrPageNotFound = errors.New("page not found")

// App owns one open page and the collaborators around it.
type App struct {
	cfg   Config
	ai    llm.Client
	db    *storage.DB
	pages *storage.PageStore
	store *store.Store
	gen   *generate.Generator
}

// New builds the application from config: OpenAI-compatible client, page
// cache, SQLite store, and the in-memory ordered store bound to the
// configured page.
func New(ctx context.Context, cfg Config) (*App, error) {
	transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	if cfg.LLMBaseURL != "" {
		transportCfg.BaseURL = cfg.LLMBaseURL
	}
	transportCfg.HTTPClient = &http.Client{Timeout: 120 * time.Second}
	client := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}

	var pageCache *cache.PageCache
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			_ = cache.ClearDir(cfg.CacheDir)
		}
		if cfg.CacheMaxAge > 0 {
			_, _ = cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
		}
		pageCache = &cache.PageCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open page store: %w", err)
	}

	pages := &storage.PageStore{DB: db, Project: cfg.ProjectID, Page: cfg.PageID}
	a := &App{
		cfg:   cfg,
		ai:    client,
		db:    db,
		pages: pages,
		store: store.New(pages),
		gen: &generate.Generator{
			Client: client,
			Model:  cfg.LLMModel,
			Cache:  pageCache,
		},
	}

	// Best-effort preflight: list models so a misconfigured endpoint shows
	// up at startup instead of on the first generation.
	preflightCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if lister, ok := a.ai.(llm.ModelLister); ok {
		models, err := lister.ListModels(preflightCtx)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("LLM model list failed; continuing")
		case len(models.Models) == 0:
			log.Warn().Msg("LLM returned zero models")
		default:
			log.Info().Int("count", len(models.Models)).Msg("LLM models available")
		}
	}

	return a, nil
}

// Close flushes pending saves and releases the database.
func (a *App) Close() {
	a.store.Flush()
	if a.db != nil {
		_ = a.db.Close()
	}
}

// Store exposes the ordered block store; all edit operations go through it.
func (a *App) Store() *store.Store {
	return a.store
}

// GenerateFromBrief runs the full intake pipeline: brief text to generated
// document, document to blocks and theme, both loaded into the store and
// persisted. Structural parse warnings are logged and returned alongside the
// result; they do not fail the pipeline.
func (a *App) GenerateFromBrief(ctx context.Context, briefText string) (htmldoc.ParseResult, error) {
	b := brief.ParseBrief(briefText)
	log.Info().Str("app", b.AppName).Int("features", len(b.Features)).Msg("generating page")

	doc, err := a.gen.Generate(ctx, b)
	if err != nil {
		return htmldoc.ParseResult{}, fmt.Errorf("generate page: %w", err)
	}
	return a.ImportDocument(ctx, doc)
}

// ImportDocument parses an existing HTML document into the store and
// persists the result. Used both by generation and by direct HTML import.
func (a *App) ImportDocument(ctx context.Context, doc string) (htmldoc.ParseResult, error) {
	res, err := htmldoc.Parse(doc)
	if err != nil {
		return res, fmt.Errorf("parse page: %w", err)
	}
	if res.Warning != nil {
		log.Warn().Err(res.Warning).Msg("page parsed with structural warning")
	}

	a.store.Load(res.Blocks, res.Theme)
	if err := a.pages.SavePage(ctx, store.Snapshot{Blocks: res.Blocks, Theme: res.Theme}); err != nil {
		// Same policy as edit-time saves: report, keep in-memory state.
		log.Warn().Err(err).Msg("initial page save failed")
	}
	return res, nil
}

// Open loads the configured page from storage into the store.
func (a *App) Open(ctx context.Context) error {
	theme, found, err := a.db.GetPage(ctx, a.cfg.ProjectID, a.cfg.PageID)
	if err != nil {
		return err
	}
	list, err := a.db.ListBlocks(ctx, a.cfg.ProjectID, a.cfg.PageID)
	if err != nil {
		return err
	}
	if !found && len(list) == 0 {
		return fmt.Errorf("%w: %s/%s", ErrPageNotFound, a.cfg.ProjectID, a.cfg.PageID)
	}
	a.store.Load(list, theme)
	return nil
}

// RenderHTML serializes the store's current blocks back into the theme.
func (a *App) RenderHTML() (string, error) {
	return htmldoc.Serialize(a.store.Blocks(), a.store.Theme())
}

// ExportPDF writes a PDF snapshot of the current block sequence.
func (a *App) ExportPDF(path string) error {
	return export.WritePDF(a.store.Blocks(), path)
}

// DeletePage clears the page from storage and empties the store.
func (a *App) DeletePage(ctx context.Context) error {
	if err := a.db.DeletePage(ctx, a.cfg.ProjectID, a.cfg.PageID); err != nil {
		return err
	}
	a.store.Load(nil, blocks.Theme{})
	return nil
}
