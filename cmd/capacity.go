package cmd

import (
	"fmt"

	"github.com/Beastly713/pixelstash/pkg/imageio"
	"github.com/Beastly713/pixelstash/pkg/stego"
	"github.com/spf13/cobra"
)

var capacityStrategy strategyFlags

var capacityCmd = &cobra.Command{
	Use:   "capacity [image]",
	Short: "Show how many bits each mode can hide in an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := imageio.Load(args[0])
		if err != nil {
			return err
		}
		w, h := img.Bounds().Dx(), img.Bounds().Dy()

		cfg, err := capacityStrategy.config()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %dx%d (%d pixels)\n", args[0], w, h, w*h)
		for _, m := range stego.Modes() {
			cfg.Mode = m
			s, err := stego.New(cfg)
			if err != nil {
				return err
			}
			bits := s.Capacity(w, h)
			fmt.Fprintf(out, "  %-8s %10d bits  %9d bytes\n", m, bits, bits/8)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(capacityCmd)
	capacityStrategy.register(capacityCmd)
}
