package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"codeberg.org/uigen/server/internal/client"
	"codeberg.org/uigen/server/internal/config"
	"codeberg.org/uigen/server/internal/logger"
	"codeberg.org/uigen/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() //nolint:errcheck // a .env file is optional

	flags, err := config.ParseClientFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	apiClient := client.New(flags.Endpoint)

	// the interactive screen owns the terminal, so logs go elsewhere
	if flags.LogFile != "" {
		f, err := os.OpenFile(flags.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close() //nolint:errcheck

		logger.SetOutput(f)
		logger.Info("client configured", "endpoint", apiClient.Endpoint())
	}

	if flags.Prompt != "" || !term.IsTerminal(os.Stdout.Fd()) {
		os.Exit(runOnce(apiClient, flags))
	}

	if flags.LogFile == "" {
		logger.SetOutput(io.Discard)
	}

	app := tui.NewApp(apiClient, tui.Options{
		ParseFailure: flags.ParseFailure,
		PreviewPath:  flags.PreviewPath,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running uigen: %v\n", err)
		os.Exit(1)
	}
}

func runOnce(apiClient *client.Client, flags config.ClientFlags) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prompt := flags.Prompt
	if prompt == "" && !term.IsTerminal(os.Stdin.Fd()) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read prompt from stdin: %v\n", err)
			return 1
		}
		prompt = strings.TrimRight(string(data), "\r\n")
	}

	if prompt == "" {
		fmt.Fprintln(os.Stderr, "a -prompt is required when output is not a terminal")
		return 2
	}

	if err := tui.RunOnce(ctx, apiClient, prompt, os.Stderr, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	return 0
}
