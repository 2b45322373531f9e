package cmd

import (
	"fmt"

	"github.com/Beastly713/pixelstash/pkg/imageio"
	"github.com/Beastly713/pixelstash/pkg/quality"
	"github.com/spf13/cobra"
)

var psnrCmd = &cobra.Command{
	Use:   "psnr [original] [encoded]",
	Short: "Compare a carrier with its stego image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := imageio.Load(args[0])
		if err != nil {
			return err
		}
		b, err := imageio.Load(args[1])
		if err != nil {
			return err
		}
		if a.Bounds() != b.Bounds() {
			return fmt.Errorf("image sizes differ: %v vs %v", a.Bounds().Size(), b.Bounds().Size())
		}

		mse, err := quality.MSE(a.Pix, b.Pix)
		if err != nil {
			return err
		}
		psnr, err := quality.PSNR(a.Pix, b.Pix)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "MSE: %.6f\n", mse)
		fmt.Fprintf(out, "PSNR: %s\n", formatPSNR(psnr))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(psnrCmd)
}
