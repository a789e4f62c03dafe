// openai-stub is a minimal OpenAI-compatible server used for offline runs
// and end-to-end tests. It answers every chat completion with a canned
// onboarding page document that satisfies the input contract.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

const pageDocument = `<!doctype html>
<html>
<head>
<title>Stub App</title>
<style>body { font-family: sans-serif; background: #f6f6ff; }</style>
</head>
<body>
<main>
<h1 data-element="headline">Welcome to Stub App</h1>
<h2 data-element="subheadline">Everything you need to get started</h2>
<p data-element="paragraph">Stub App keeps your work in one place.</p>
<ul data-element="feature-list"><li>Fast setup</li><li>Works offline</li><li>Private by default</li></ul>
<blockquote data-element="testimonial">Saved me hours every week.<cite class="author">Alex Kim</cite><span class="role">Designer</span><span class="company">Acme</span></blockquote>
<button data-element="call-to-action">Get started</button>
<footer data-element="footer">Made with care.</footer>
</main>
</body>
</html>`

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		sys := ""
		if len(req.Messages) > 0 {
			sys = strings.TrimSpace(req.Messages[0].Content)
		}
		if !strings.Contains(sys, "landing page generator") {
			http.Error(w, "unexpected system", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": pageDocument}},
			},
		})
	})

	log.Printf("openai-stub listening on %s (model=%s)", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
