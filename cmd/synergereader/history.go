package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/synerge/synergereader/client"
)

type HistoryCommand struct {
	ServerURL string `help:"The URL of the SynergeReader server." env:"SYNERGEREADER_URL" default:"http://localhost:9020"`
	Pretty    bool   `help:"Pretty print the JSON output." default:"true"`
	LogLevel  string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c HistoryCommand) Run(ctx context.Context) (err error) {
	sc := client.New(c.ServerURL)
	resp, err := sc.History(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}
