package main

import (
	"context"
	"fmt"

	"github.com/synerge/synergereader"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(synergereader.Version)
	return nil
}
