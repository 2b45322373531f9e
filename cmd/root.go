package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pixelstash",
	Short: "Hide data in the pixels of PNG images",
	Long: `Pixelstash: embed text or files in the colour channels of PNG carriers
and recover them later. Four embedding modes trade capacity for robustness:
lsb, split, hsv and layered (cipher chain, optional password).`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}
