package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/wepost/internal/cli"
)

func main() {
	root := cli.NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
