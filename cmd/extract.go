package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Beastly713/pixelstash/pkg/compression"
	"github.com/Beastly713/pixelstash/pkg/imageio"
	"github.com/Beastly713/pixelstash/pkg/stego"
	"github.com/spf13/cobra"
)

// ErrNotRecovered is returned when a carrier yields no usable payload.
var ErrNotRecovered = errors.New("could not recover data")

var (
	extractStrategy strategyFlags
	extractCompress string
	extractOutput   string
)

var extractCmd = &cobra.Command{
	Use:   "extract [stego.png]",
	Short: "Recover the payload hidden in a PNG",
	Long: `Extract reads back a payload written by embed. The mode flags (and
--password / --compress) must match the ones used to embed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		s, err := extractStrategy.strategy()
		if err != nil {
			return err
		}
		codec, err := compression.New(extractCompress)
		if err != nil {
			return err
		}

		img, err := imageio.Load(args[0])
		if err != nil {
			return err
		}

		streams, err := recoverStreams(img.Pix, s, codec)
		if err != nil {
			fmt.Fprintln(out, "could not recover data")
			return fmt.Errorf("%w: %w", ErrNotRecovered, err)
		}

		if extractOutput != "" {
			if len(streams) != 1 {
				return fmt.Errorf("--output takes a single stream, carrier holds %d", len(streams))
			}
			if err := os.WriteFile(extractOutput, streams[0], 0644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			fmt.Fprintf(out, "Recovered %d bytes to %s\n", len(streams[0]), extractOutput)
			return nil
		}

		if len(streams) == 1 {
			fmt.Fprintln(out, string(streams[0]))
			return nil
		}
		for i, p := range streams {
			fmt.Fprintf(out, "[%d] %s\n", i+1, p)
		}
		return nil
	},
}

// recoverStreams extracts every stream of pix and decompresses it.
func recoverStreams(pix []byte, s stego.Strategy, codec compression.Compressor) ([][]byte, error) {
	var streams [][]byte
	if split, ok := s.(*stego.FixedSplit); ok {
		var err error
		if streams, err = split.ExtractStreams(pix); err != nil {
			return nil, err
		}
	} else {
		p, err := s.Extract(pix)
		if err != nil {
			return nil, err
		}
		streams = [][]byte{p}
	}

	for i, p := range streams {
		plain, err := codec.Decompress(p)
		if err != nil {
			return nil, fmt.Errorf("stream %d: %w", i+1, err)
		}
		streams[i] = plain
	}
	return streams, nil
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractStrategy.register(extractCmd)
	extractCmd.Flags().StringVar(&extractCompress, "compress", compression.None, "Codec the payload was compressed with: none|gzip|zstd")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Write the payload to this file instead of printing it")
}
