package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/synerge/synergereader/client"
	"github.com/tmc/langchaingo/documentloaders"
	"gopkg.in/yaml.v3"
)

type UploadCommand struct {
	ServerURL string   `help:"The URL of the SynergeReader server." env:"SYNERGEREADER_URL" default:"http://localhost:9020"`
	Manifest  string   `help:"A YAML manifest listing documents to upload." env:"MANIFEST" default:""`
	Paths     []string `arg:"" optional:"" help:"Paths of documents to upload."`
	DryRun    bool     `help:"Extract and print document text without uploading." env:"DRY_RUN" default:"false"`
	LogLevel  string   `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

type uploadManifest struct {
	Documents []uploadManifestEntry `yaml:"documents"`
}

type uploadManifestEntry struct {
	Path string `yaml:"path"`
}

func (c UploadCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	paths := c.Paths
	if c.Manifest != "" {
		manifestPaths, err := readManifest(c.Manifest)
		if err != nil {
			return fmt.Errorf("failed to read manifest: %w", err)
		}
		paths = append(paths, manifestPaths...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents to upload: pass file paths or a --manifest")
	}

	sc := client.New(c.ServerURL)
	for _, path := range paths {
		text, err := extractText(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to extract text from %s: %w", path, err)
		}
		if c.DryRun {
			log.Info("skipping upload in dry run mode", slog.String("path", path))
			fmt.Println(text)
			continue
		}
		resp, err := sc.Upload(ctx, filepath.Base(path), strings.NewReader(text))
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", path, err)
		}
		log.Info("document uploaded",
			slog.String("path", path),
			slog.String("document_id", resp.DocumentID),
			slog.Int("chunks", resp.ChunkCount))
	}
	return nil
}

func readManifest(path string) (paths []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var manifest uploadManifest
	if err = yaml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	for _, entry := range manifest.Documents {
		if entry.Path == "" {
			continue
		}
		p := entry.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// extractText performs client-side extraction so the server only ever
// receives decoded text. PDFs are extracted locally; other formats are read
// as-is.
func extractText(ctx context.Context, path string) (text string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		docs, err := documentloaders.NewPDF(bytes.NewReader(content), int64(len(content))).Load(ctx)
		if err != nil {
			return "", fmt.Errorf("pdf extraction failed: %w", err)
		}
		var pages []string
		for _, doc := range docs {
			pages = append(pages, doc.PageContent)
		}
		return strings.Join(pages, "\n\n"), nil
	default:
		docs, err := documentloaders.NewText(bytes.NewReader(content)).Load(ctx)
		if err != nil {
			return "", err
		}
		var parts []string
		for _, doc := range docs {
			parts = append(parts, doc.PageContent)
		}
		return strings.Join(parts, "\n\n"), nil
	}
}
