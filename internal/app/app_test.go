package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/blocks"
)

const testPage = `<!doctype html><html><head><title>TaskPilot</title></head><body>
<main>
<h1 data-element="headline">Meet TaskPilot</h1>
<ul data-element="feature"><li>Fast</li><li>Secure</li></ul>
<button data-element="call-to-action">Start</button>
</main>
</body></html>`

// newStubServer serves a fixed page over the OpenAI chat protocol.
func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"test-model","object":"model"}]}`))
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": testPage}},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, srv *httptest.Server) Config {
	t.Helper()
	return Config{
		ProjectID:  "p1",
		PageID:     "home",
		LLMBaseURL: srv.URL + "/v1",
		LLMModel:   "test-model",
		LLMAPIKey:  "test-key",
		DBPath:     filepath.Join(t.TempDir(), "pages.db"),
	}
}

func TestApp_GenerateEditReopen(t *testing.T) {
	srv := newStubServer(t)
	cfg := testConfig(t, srv)
	ctx := context.Background()

	a, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	res, err := a.GenerateFromBrief(ctx, "# TaskPilot\n- Fast\n- Secure\n")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(res.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(res.Blocks))
	}

	// Drag the call-to-action to the top, then close.
	a.Store().MoveTo(res.Blocks[2].ID, 0)
	a.Close()

	// A fresh app sees the persisted edit.
	b, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen app: %v", err)
	}
	defer b.Close()
	if err := b.Open(ctx); err != nil {
		t.Fatalf("open page: %v", err)
	}
	list := b.Store().Blocks()
	if len(list) != 3 {
		t.Fatalf("expected 3 persisted blocks, got %d", len(list))
	}
	if list[0].Type != blocks.TypeCallToAction {
		t.Fatalf("expected call-to-action first, got %q", list[0].Type)
	}

	doc, err := b.RenderHTML()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(doc, "<title>TaskPilot</title>") {
		t.Fatalf("rendered document lost the theme: %q", doc)
	}
	ctaPos := strings.Index(doc, `data-element="call-to-action"`)
	headPos := strings.Index(doc, `data-element="headline"`)
	if ctaPos < 0 || headPos < 0 || ctaPos > headPos {
		t.Fatalf("rendered order wrong: cta=%d headline=%d", ctaPos, headPos)
	}
}

func TestApp_OpenMissingPage(t *testing.T) {
	srv := newStubServer(t)
	cfg := testConfig(t, srv)
	ctx := context.Background()

	a, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()
	if err := a.Open(ctx); err == nil {
		t.Fatalf("expected ErrPageNotFound")
	}
}

func TestApp_ImportDocumentWithWarning(t *testing.T) {
	srv := newStubServer(t)
	cfg := testConfig(t, srv)
	ctx := context.Background()

	a, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	res, err := a.ImportDocument(ctx, `<body><div>nothing recognizable</div></body>`)
	if err != nil {
		t.Fatalf("import must degrade, not fail: %v", err)
	}
	if res.Warning == nil {
		t.Fatalf("expected a structural warning")
	}
	if len(res.Blocks) != 0 {
		t.Fatalf("expected zero blocks, got %d", len(res.Blocks))
	}
}

func TestApp_DeletePage(t *testing.T) {
	srv := newStubServer(t)
	cfg := testConfig(t, srv)
	ctx := context.Background()

	a, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	if _, err := a.GenerateFromBrief(ctx, "# TaskPilot"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := a.DeletePage(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := a.Open(ctx); err == nil {
		t.Fatalf("deleted page must not reopen")
	}
	if a.Store().Len() != 0 {
		t.Fatalf("store must be emptied, got %d blocks", a.Store().Len())
	}
}
