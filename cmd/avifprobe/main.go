// Command avifprobe decodes an AVIF still image's AV1 tile payload far
// enough to report its entropy-coded structure, without reconstructing
// pixels.
//
// Usage:
//
//	avifprobe <input.avif>
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/deepteams/avifcore"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: avifprobe <input.avif>")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(os.Args[1], logger); err != nil {
		fmt.Fprintf(os.Stderr, "avifprobe: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := avifcore.Decode(data, avifcore.DefaultOptions())
	if err != nil {
		return err
	}

	for i, tile := range result.Tiles {
		logger.Info("tile decoded",
			"tile", i,
			"status", tile.Status.String(),
			"superblocks", tile.SuperblocksWalked,
			"blocks", tile.BlocksDecoded,
		)
		if tile.Err != nil {
			logger.Warn("tile reported error", "tile", i, "err", tile.Err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
