package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/Northroot-Labs/northroot-kernel/pkg/canonicalize"
	"github.com/Northroot-Labs/northroot-kernel/pkg/config"
)

// newCanonicalizer builds the canonicalizer every subcommand shares, tagged
// with the profile ID from config.Load().
func newCanonicalizer() *canonicalize.Canonicalizer {
	cfg := config.Load()
	return canonicalize.New(cfg.ProfileID)
}

// readInput reads a single JSON document from path, or from stdin when path
// is "" or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// printErr writes a sanitized error line to stderr: "Error: <message>".
// Paths formatted into the message are passed through sanitizePath by the
// caller; for an error argument carrying an *fs.PathError, the path inside
// the error text is reduced the same way, to its last two components.
func printErr(stderr io.Writer, format string, args ...any) {
	for i, a := range args {
		var pe *fs.PathError
		if err, ok := a.(error); ok && errors.As(err, &pe) && pe.Path != "" {
			args[i] = strings.ReplaceAll(err.Error(), pe.Path, sanitizePath(pe.Path))
		}
	}
	_, _ = fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkMaxSize(path string, maxSize int64) error {
	if maxSize <= 0 || path == "" || path == "-" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxSize {
		return fmt.Errorf("file size %d exceeds --max-size %d", info.Size(), maxSize)
	}
	return nil
}
