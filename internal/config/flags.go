package config

import (
	"flag"
	"fmt"
	"os"
)

const defaultEndpoint = "http://localhost:8080"

// parses CLI flags for the terminal client; environment supplies the defaults
func ParseClientFlags(args []string) (ClientFlags, error) {
	defaults := DefaultClientFlags()

	fs := flag.NewFlagSet("uigen", flag.ContinueOnError)
	endpoint := fs.String("endpoint", defaults.Endpoint, "base URL of the uigen server")
	prompt := fs.String("prompt", "", "describe the UI and run once without the interactive screen")
	parseFailure := fs.String("parse-failure", defaults.ParseFailure, "what to do with unparseable output: alert or silent")
	previewPath := fs.String("preview-out", defaults.PreviewPath, "file the preview document is written to")
	logFile := fs.String("log-file", defaults.LogFile, "file to write client logs to")

	if err := fs.Parse(args); err != nil {
		return ClientFlags{}, err
	}

	if *parseFailure != ParseFailureAlert && *parseFailure != ParseFailureSilent {
		return ClientFlags{}, fmt.Errorf("invalid -parse-failure %q: want %s or %s", *parseFailure, ParseFailureAlert, ParseFailureSilent)
	}

	return ClientFlags{
		Endpoint:     *endpoint,
		Prompt:       *prompt,
		ParseFailure: *parseFailure,
		PreviewPath:  *previewPath,
		LogFile:      *logFile,
	}, nil
}

// returns client defaults, honouring UIGEN_* environment variables
func DefaultClientFlags() ClientFlags {
	return ClientFlags{
		Endpoint:     envOr("UIGEN_API_ENDPOINT", defaultEndpoint),
		ParseFailure: envOr("UIGEN_PARSE_FAILURE", ParseFailureAlert),
		PreviewPath:  envOr("UIGEN_PREVIEW_PATH", "preview.html"),
		LogFile:      os.Getenv("UIGEN_LOG_FILE"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
