package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"fjacquet/smart-finance/cmd/ask"
	"fjacquet/smart-finance/cmd/categorize"
	"fjacquet/smart-finance/cmd/export"
	"fjacquet/smart-finance/cmd/root"
	"fjacquet/smart-finance/cmd/shell"
	"fjacquet/smart-finance/cmd/view"
)

func init() {
	// Initialize root command flags
	root.Init()

	// Add all subcommands
	root.Cmd.AddCommand(view.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(ask.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(shell.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
