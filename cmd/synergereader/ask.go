package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/synerge/synergereader/client"
	"github.com/synerge/synergereader/models"
)

type AskCommand struct {
	ServerURL    string `help:"The URL of the SynergeReader server." env:"SYNERGEREADER_URL" default:"http://localhost:9020"`
	SelectedText string `help:"The passage the question is about." default:""`
	Question     string `help:"The question to ask." required:""`
	JSON         bool   `help:"Print the full JSON response instead of just the answer." default:"false"`
	LogLevel     string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c AskCommand) Run(ctx context.Context) (err error) {
	sc := client.New(c.ServerURL)
	resp, err := sc.Ask(ctx, models.AskRequest{
		SelectedText: c.SelectedText,
		Question:     c.Question,
	})
	if err != nil {
		return fmt.Errorf("failed to ask question: %w", err)
	}
	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	fmt.Println(resp.Answer)
	if resp.HistoryError != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", resp.HistoryError)
	}
	return nil
}
