package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/localtranslator/internal/cli"
	"codeberg.org/snonux/localtranslator/internal/processor"
)

func main() {
	// API keys may live in a local .env file
	_ = godotenv.Load()

	flags := cli.NewFlags()
	proc := processor.NewProcessor(flags)
	rootCmd := cli.CreateRootCommand(flags, proc)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
