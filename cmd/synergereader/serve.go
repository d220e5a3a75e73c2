package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rqlite/gorqlite"
	"github.com/rs/cors"
	"github.com/synerge/synergereader/db"
	"github.com/synerge/synergereader/docstore"
	"github.com/synerge/synergereader/embedder"
	"github.com/synerge/synergereader/generate"
	askpost "github.com/synerge/synergereader/handlers/ask/post"
	healthget "github.com/synerge/synergereader/handlers/health/get"
	historyget "github.com/synerge/synergereader/handlers/history/get"
	uploadpost "github.com/synerge/synergereader/handlers/upload/post"
	"github.com/synerge/synergereader/history"
	"github.com/synerge/synergereader/history/memory"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

type ServeCommand struct {
	RqliteURL        string        `help:"The URL of the rqlite server." env:"RQLITE_URL" default:"http://localhost:4001"`
	InMemory         bool          `help:"Keep history in memory instead of rqlite (for local development)." env:"IN_MEMORY" default:"false"`
	OllamaURL        string        `help:"The URL of the Ollama server." env:"OLLAMA_URL" default:"http://127.0.0.1:11434/"`
	EmbeddingModel   string        `help:"The model to use for embeddings." env:"EMBEDDING_MODEL" default:"nomic-embed-text"`
	LLMBaseURL       string        `help:"The base URL of the OpenAI-compatible chat completion API." env:"LLM_BASE_URL" default:"https://openrouter.ai/api/v1"`
	LLMModel         string        `help:"The model to answer questions with." env:"LLM_MODEL" default:"meta-llama/llama-3.3-70b-instruct:free"`
	LLMAPIKey        string        `help:"The API key for the chat completion API." env:"OPENROUTER_API_KEY"`
	LLMTimeout       time.Duration `help:"The timeout for a single answer generation call." env:"LLM_TIMEOUT" default:"60s"`
	MaxChunkChars    int           `help:"The chunk character budget used when splitting documents." env:"MAX_CHUNK_CHARS" default:"500"`
	MaxContextChunks int           `help:"The maximum number of context chunks to use per question." env:"MAX_CONTEXT_CHUNKS" default:"5"`
	ListenAddr       string        `help:"The address to listen on." env:"LISTEN_ADDR" default:"localhost:9020"`
	TLSCertFile      string        `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile       string        `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	LogLevel         string        `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	var store history.Store
	if c.InMemory {
		log.Info("using in-memory history store")
		store = memory.New()
	} else {
		log.Info("connecting to database", slog.String("url", c.RqliteURL))
		databaseURL, err := db.ParseRqliteURL(c.RqliteURL)
		if err != nil {
			return fmt.Errorf("failed to parse rqlite URL: %w", err)
		}
		conn, err := gorqlite.Open(databaseURL.DataSourceName())
		if err != nil {
			return fmt.Errorf("failed to open connection: %w", err)
		}
		defer conn.Close()

		log.Info("migrating database schema", slog.String("url", databaseURL.MigrateDatabaseURL()))
		if err = db.Migrate(databaseURL); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		store = db.New(conn)
	}

	log.Info("creating embedding client", slog.String("model", c.EmbeddingModel))
	httpClient := &http.Client{}
	ec, err := ollama.New(
		ollama.WithModel(c.EmbeddingModel),
		ollama.WithHTTPClient(httpClient),
		ollama.WithServerURL(c.OllamaURL))
	if err != nil {
		return fmt.Errorf("failed to create embedding client: %w", err)
	}
	emb, err := embeddings.NewEmbedder(ec)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	embeddingService := embedder.New(emb)

	if c.LLMAPIKey == "" {
		return fmt.Errorf("no LLM API key provided: set OPENROUTER_API_KEY")
	}
	log.Info("creating LLM client", slog.String("model", c.LLMModel))
	llm, err := openai.New(
		openai.WithBaseURL(c.LLMBaseURL),
		openai.WithModel(c.LLMModel),
		openai.WithToken(c.LLMAPIKey),
		openai.WithHTTPClient(httpClient))
	if err != nil {
		return fmt.Errorf("failed to create LLM: %w", err)
	}
	generator := generate.New(llm, c.LLMTimeout)

	docs := docstore.New()

	mux := http.NewServeMux()
	mux.Handle("POST /upload", uploadpost.New(log, embeddingService, docs, c.MaxChunkChars))
	mux.Handle("POST /ask", askpost.New(log, docs, store, generator, c.MaxContextChunks))
	mux.Handle("GET /history", historyget.New(log, store))
	mux.Handle("GET /test", healthget.New())

	withCORSMux := cors.AllowAll().Handler(mux)

	log.Info("Listening", slog.String("addr", c.ListenAddr))
	s := &http.Server{
		Addr:    c.ListenAddr,
		Handler: withCORSMux,
	}
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		return s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	}
	return s.ListenAndServe()
}
