package cmd

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"

	"github.com/Beastly713/pixelstash/pkg/compression"
	"github.com/Beastly713/pixelstash/pkg/imageio"
	"github.com/Beastly713/pixelstash/pkg/quality"
	"github.com/Beastly713/pixelstash/pkg/stego"
	"github.com/spf13/cobra"
)

var (
	embedStrategy strategyFlags
	embedMessages []string
	embedFile     string
	embedCompress string
	embedOutput   string
)

var embedCmd = &cobra.Command{
	Use:   "embed [carrier.png]",
	Short: "Hide a message or file inside a PNG carrier",
	Long: `Embed writes a payload into the colour channels of a carrier image and
saves the result as a new PNG.

Examples:
  pixelstash embed photo.png -m "meet at noon"
  pixelstash embed photo.png --mode split -m first -m second
  pixelstash embed photo.png --mode layered --password hunter2 -m "sealed"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		carrierPath := args[0]
		out := cmd.OutOrStdout()

		// 1. Collect payload streams
		streams, err := embedPayloads()
		if err != nil {
			return err
		}

		s, err := embedStrategy.strategy()
		if err != nil {
			return err
		}
		if len(streams) > 1 && s.Mode() != stego.ModeSplit {
			return fmt.Errorf("%d messages need --mode split", len(streams))
		}
		if s.Mode() == stego.ModeLayered && embedCompress != compression.None {
			return errors.New("layered mode carries text only; use --compress none")
		}

		// 2. Compress
		codec, err := compression.New(embedCompress)
		if err != nil {
			return err
		}
		payloadBits := 0
		for i, p := range streams {
			if streams[i], err = codec.Compress(p); err != nil {
				return fmt.Errorf("compression failed: %w", err)
			}
			payloadBits += len(streams[i]) * 8
		}

		// 3. Embed into a copy of the carrier
		carrier, err := imageio.Load(carrierPath)
		if err != nil {
			return err
		}
		bounds := carrier.Bounds()

		var encoded *image.NRGBA
		if split, ok := s.(*stego.FixedSplit); ok {
			encoded, err = stego.EmbedStreamsImage(carrier, split, streams)
		} else {
			encoded, err = stego.EmbedImage(carrier, s, streams[0])
		}
		if err != nil {
			return fmt.Errorf("embedding failed: %w", err)
		}

		// 4. Save
		output := embedOutput
		if output == "" {
			output = defaultOutput(carrierPath, "stego")
		}
		if err := imageio.Save(output, encoded); err != nil {
			return err
		}

		capacity := s.Capacity(bounds.Dx(), bounds.Dy())
		fmt.Fprintf(out, "Mode: %s\n", s.Mode())
		fmt.Fprintf(out, "Payload: %d bits\n", payloadBits)
		fmt.Fprintf(out, "Capacity: %d bits (%.2f%% used)\n", capacity, percent(payloadBits, capacity))
		if psnr, err := quality.PSNR(carrier.Pix, encoded.Pix); err == nil {
			fmt.Fprintf(out, "PSNR: %s\n", formatPSNR(psnr))
		}
		fmt.Fprintf(out, "Saved %s\n", output)
		return nil
	},
}

func embedPayloads() ([][]byte, error) {
	switch {
	case embedFile != "" && len(embedMessages) > 0:
		return nil, errors.New("use either --message or --file, not both")
	case embedFile != "":
		data, err := os.ReadFile(embedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}
		return [][]byte{data}, nil
	case len(embedMessages) > 0:
		streams := make([][]byte, len(embedMessages))
		for i, m := range embedMessages {
			streams[i] = []byte(m)
		}
		return streams, nil
	}
	return nil, errors.New("nothing to embed: pass --message or --file")
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func formatPSNR(db float64) string {
	if math.IsInf(db, 1) {
		return "inf dB (identical)"
	}
	return fmt.Sprintf("%.2f dB", db)
}

func init() {
	rootCmd.AddCommand(embedCmd)

	embedStrategy.register(embedCmd)
	embedCmd.Flags().StringArrayVarP(&embedMessages, "message", "m", nil, "Message to embed (repeat for split mode streams)")
	embedCmd.Flags().StringVarP(&embedFile, "file", "f", "", "File whose contents are embedded")
	embedCmd.Flags().StringVar(&embedCompress, "compress", compression.None, "Compress the payload first: none|gzip|zstd")
	embedCmd.Flags().StringVarP(&embedOutput, "output", "o", "", "Output PNG (default <carrier>_stego.png)")
}
