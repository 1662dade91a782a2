package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

const stdIOPath = "-"

func getFileOrStdin(path string) (io.ReadCloser, error) {
	if path == stdIOPath || path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// Sets the default logger from the "log-level" flag. Accepts slog level names, case-insensitive.
func configLogger(cctx *cli.Context, writer io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cctx.String("log-level"))); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger, nil
}

func printJSON(cctx *cli.Context, val any) error {
	b, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cctx.App.Writer, string(b))
	return err
}
