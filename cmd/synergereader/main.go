package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type CLI struct {
	Serve   ServeCommand   `cmd:"serve" help:"Start the SynergeReader server."`
	Upload  UploadCommand  `cmd:"upload" help:"Upload documents to a SynergeReader server."`
	Ask     AskCommand     `cmd:"ask" help:"Ask a question about a selected passage."`
	History HistoryCommand `cmd:"history" help:"List recent question/answer exchanges."`
	Read    ReadCommand    `cmd:"read" help:"Read a document and ask questions interactively."`
	Version VersionCommand `cmd:"version" help:"Print the version of the server."`
}

func main() {
	// Local development secrets, e.g. OPENROUTER_API_KEY.
	_ = godotenv.Load()

	var cli CLI
	ctx := context.Background()
	kctx := kong.Parse(&cli, kong.UsageOnError(), kong.BindTo(ctx, (*context.Context)(nil)))
	if err := kctx.Run(); err != nil {
		log := getLogger("error")
		log.Error("error", slog.Any("error", err))
		os.Exit(1)
	}
}

func getLogger(level string) *slog.Logger {
	ll := slog.LevelInfo
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ll,
	}))
}
