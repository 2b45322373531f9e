package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Beastly713/pixelstash/pkg/compression"
	"github.com/Beastly713/pixelstash/pkg/imageio"
	"github.com/Beastly713/pixelstash/pkg/pipeline"
	"github.com/Beastly713/pixelstash/pkg/stego"
	"github.com/spf13/cobra"
)

var (
	scatterStrategy strategyFlags
	scatterCarriers []string
	threshold       int
	destDir         string
	scatterCompress string
)

var scatterCmd = &cobra.Command{
	Use:   "scatter [file]",
	Short: "Spread a file over several carrier images",
	Long: `Scatter compresses a file, splits it into one Reed-Solomon shard per
carrier and hides each shard in its carrier. Any T of the resulting
images rebuild the file.

Example:
  pixelstash scatter diary.txt --carrier a.png --carrier b.png --carrier c.png -t 2

  This writes a_shard_1.png, b_shard_2.png and c_shard_3.png.
  Any 2 of them are enough to gather diary.txt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]
		out := cmd.OutOrStdout()

		// 1. Validation
		total := len(scatterCarriers)
		if total < 1 {
			return errors.New("at least one --carrier is required")
		}
		if threshold < 1 || threshold > total {
			return fmt.Errorf("threshold (-t) must be between 1 and %d", total)
		}

		s, err := scatterStrategy.strategy()
		if err != nil {
			return err
		}
		if s.Mode() == stego.ModeLayered {
			return errors.New("layered mode carries text only and cannot hold shards")
		}

		// 2. Prepare Output Directory
		if err := os.MkdirAll(destDir, 0755); err != nil {
			return fmt.Errorf("failed to create destination directory: %w", err)
		}

		// 3. Compress and shard
		payload, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		envelopes, err := pipeline.Scatter(payload, pipeline.Config{
			Total:       total,
			Threshold:   threshold,
			Compression: scatterCompress,
			Name:        filepath.Base(filePath),
			Timestamp:   time.Now().Unix(),
		})
		if err != nil {
			return fmt.Errorf("pipeline failed: %w", err)
		}

		fmt.Fprintf(out, "Splitting %s into %d shards (any %d recover it)...\n", filepath.Base(filePath), total, threshold)

		// 4. Hide each shard in its carrier
		for i, carrierPath := range scatterCarriers {
			index := i + 1

			carrier, err := imageio.Load(carrierPath)
			if err != nil {
				return fmt.Errorf("carrier %d: %w", index, err)
			}
			encoded, err := stego.EmbedImage(carrier, s, envelopes[i])
			if err != nil {
				return fmt.Errorf("carrier %s: %w", carrierPath, err)
			}

			outPath := filepath.Join(destDir, filepath.Base(defaultOutput(carrierPath, fmt.Sprintf("shard_%d", index))))
			if err := imageio.Save(outPath, encoded); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", filepath.Base(outPath))
		}

		fmt.Fprintln(out, "Done! Keep your carriers apart.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scatterCmd)

	scatterStrategy.register(scatterCmd)
	scatterCmd.Flags().StringArrayVar(&scatterCarriers, "carrier", nil, "Carrier PNG (repeat once per shard)")
	scatterCmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "Number of carriers required to gather the file")
	scatterCmd.Flags().StringVarP(&destDir, "destination", "d", ".", "Directory for the stego images")
	scatterCmd.Flags().StringVar(&scatterCompress, "compress", compression.Zstd, "Codec applied before sharding: none|gzip|zstd")

	scatterCmd.MarkFlagRequired("carrier")
	scatterCmd.MarkFlagRequired("threshold")
}
