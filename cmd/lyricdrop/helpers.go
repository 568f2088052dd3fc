package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"lyricdrop/internal/config"
)

// parseSeconds parses a timeline position given in seconds, e.g. "12.5".
func parseSeconds(arg string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected seconds, e.g. 12.5", arg)
	}
	return value, nil
}

// resolveLyricsText resolves lyric input from, in order of preference,
// command arguments (one line each), a file, the system clipboard, or stdin.
func resolveLyricsText(cmd *cobra.Command, args []string, filePath string, fromClipboard bool) (string, error) {
	if filePath != "" && fromClipboard {
		return "", errors.New("specify only one of --file or --clipboard")
	}

	if len(args) > 0 {
		if filePath != "" || fromClipboard {
			return "", errors.New("lyric arguments cannot be combined with --file or --clipboard")
		}
		return strings.Join(args, "\n"), nil
	}

	if filePath != "" {
		expanded, err := config.ExpandPath(filePath)
		if err != nil {
			return "", err
		}
		data, err := os.ReadFile(expanded)
		if err != nil {
			return "", fmt.Errorf("read lyrics file: %w", err)
		}
		return string(data), nil
	}

	if fromClipboard {
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("read clipboard: %w", err)
		}
		return text, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read lyrics from stdin: %w", err)
	}
	return string(data), nil
}

func resolveVideoPath(arg string) (string, error) {
	path, err := config.ExpandPath(arg)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("inspect video %q: %w", arg, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%q is a directory, expected a video file", arg)
	}
	return path, nil
}
