package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Beastly713/pixelstash/pkg/format"
	"github.com/Beastly713/pixelstash/pkg/imageio"
	"github.com/Beastly713/pixelstash/pkg/pipeline"
	"github.com/Beastly713/pixelstash/pkg/stego"
	"github.com/spf13/cobra"
)

var (
	gatherStrategy strategyFlags
	outDir         string
	overwrite      bool
)

// gatheredName is used when a scatter recorded no file name.
const gatheredName = "gathered.bin"

var gatherCmd = &cobra.Command{
	Use:   "gather [directory]",
	Short: "Rebuild a scattered file from its carrier images",
	Long: `Gather scans the PNG files of a directory (or the current directory if
not provided), extracts every shard it finds and rebuilds each scattered file
for which at least T (threshold) shards survive.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		sourceDir := "."
		if len(args) > 0 {
			sourceDir = args[0]
		}

		s, err := gatherStrategy.strategy()
		if err != nil {
			return err
		}

		paths, err := imageio.ListPNGs(sourceDir)
		if err != nil {
			return fmt.Errorf("failed to read directory: %w", err)
		}

		fmt.Fprintf(out, "Scanning for shards in %s...\n", sourceDir)

		// Group envelopes by session (name + timestamp)
		type group struct {
			header    *format.Header
			envelopes [][]byte
		}
		groups := make(map[string]*group)
		var order []string

		for _, path := range paths {
			img, err := imageio.Load(path)
			if err != nil {
				fmt.Fprintf(out, "Skipping invalid image %s: %v\n", filepath.Base(path), err)
				continue
			}
			envelope, err := stego.ExtractImage(img, s)
			if err != nil {
				continue
			}
			header, _, err := format.Parse(envelope)
			if err != nil {
				fmt.Fprintf(out, "Skipping %s: %v\n", filepath.Base(path), err)
				continue
			}

			id := fmt.Sprintf("%s|%d", header.Name, header.Timestamp)
			g, ok := groups[id]
			if !ok {
				g = &group{header: header}
				groups[id] = g
				order = append(order, id)
			}
			g.envelopes = append(g.envelopes, envelope)
		}

		if len(groups) == 0 {
			return fmt.Errorf("no shards found in %s", sourceDir)
		}

		for _, id := range order {
			g := groups[id]
			name := g.header.Name
			if name == "" {
				name = gatheredName
			}
			fmt.Fprintf(out, "\nFound shards for: %s (%d/%d needed)\n", name, len(g.envelopes), g.header.Threshold)

			payload, _, err := pipeline.Gather(g.envelopes)
			if err != nil {
				fmt.Fprintf(out, "Could not rebuild %s: %v\n", name, err)
				continue
			}

			finalPath := filepath.Join(outDir, filepath.Base(name))
			if _, err := os.Stat(finalPath); err == nil && !overwrite {
				fmt.Fprintf(out, "File %s already exists. Use --overwrite to replace it.\n", finalPath)
				continue
			}
			if err := os.WriteFile(finalPath, payload, 0644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			fmt.Fprintf(out, "Gathered %s\n", finalPath)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(gatherCmd)

	gatherStrategy.register(gatherCmd)
	gatherCmd.Flags().StringVarP(&outDir, "destination", "d", ".", "Directory to write the gathered file")
	gatherCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing file if present")
}
