// Command ollama-mock runs a deterministic Ollama-compatible server for
// local development and integration testing. It speaks the native
// /api/chat NDJSON protocol with cumulative message content, which is
// exactly the shape the gateway's ollama backend has to diff into
// incremental tokens.
//
// Configuration:
//
//	OLLAMA_MOCK_PORT - Listen port (default: 11435)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

func main() {
	port := os.Getenv("OLLAMA_MOCK_PORT")
	if port == "" {
		port = "11435"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", handleChat)
	mux.HandleFunc("GET /api/tags", handleTags)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("ollama mock starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("ollama mock failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("ollama mock shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

// --- Wire types ---

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatLine struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// --- Handler ---

func handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintln(w, `{"error":"invalid request"}`)
		return
	}

	if req.Model == "" {
		req.Model = "llama3.2"
	}

	reply := replyFor(&req)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/x-ndjson")

	// Real Ollama servers have been observed sending cumulative message
	// content, so this mock does the same: each line repeats everything
	// emitted so far plus one more word.
	enc := json.NewEncoder(w)
	words := strings.SplitAfter(reply, " ")
	cumulative := ""
	for _, word := range words {
		cumulative += word
		enc.Encode(chatLine{
			Model:   req.Model,
			Message: chatMessage{Role: "assistant", Content: cumulative},
		})
		flusher.Flush()
		time.Sleep(20 * time.Millisecond)
	}

	enc.Encode(chatLine{
		Model:   req.Model,
		Message: chatMessage{Role: "assistant", Content: cumulative},
		Done:    true,
	})
	flusher.Flush()
}

func replyFor(req *chatRequest) string {
	last := ""
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			last = req.Messages[i].Content
			break
		}
	}

	switch {
	case strings.Contains(strings.ToLower(last), "count from 1 to 5"):
		return "1, 2, 3, 4, 5"
	case last == "":
		return "Hello! How can I help you today?"
	default:
		return "You asked about " + strings.ToLower(firstWords(last, 6)) + " and this is a canned local reply."
	}
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// --- Models endpoint ---

func handleTags(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"models": []map[string]any{
			{"name": "llama3.2", "model": "llama3.2:latest"},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
