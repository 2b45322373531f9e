package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Beastly713/pixelstash/pkg/crypto/encryptor"
	"github.com/Beastly713/pixelstash/pkg/stego"
	"github.com/spf13/cobra"
)

// PasswordEnv supplies the password when --password is not given.
const PasswordEnv = "PIXELSTASH_PASSWORD"

// strategyFlags are shared by every command that embeds or extracts.
type strategyFlags struct {
	mode        string
	bits        int
	alloc       []int
	password    string
	kdf         string
	maxAttempts int
}

func (f *strategyFlags) register(c *cobra.Command) {
	modes := make([]string, 0, 4)
	for _, m := range stego.Modes() {
		modes = append(modes, string(m))
	}
	c.Flags().StringVar(&f.mode, "mode", string(stego.ModeLSB), "Embedding mode: "+strings.Join(modes, "|"))
	c.Flags().IntVar(&f.bits, "bits", stego.DefaultBitsPerChannel, "Bits per channel for lsb mode (1-8)")
	c.Flags().IntSliceVar(&f.alloc, "alloc", nil, "R,G,B bit table for split mode (default 2,2,4)")
	c.Flags().StringVar(&f.password, "password", "", "Password for layered mode (or $"+PasswordEnv+")")
	c.Flags().StringVar(&f.kdf, "kdf", string(encryptor.PBKDF2), "Key derivation for layered mode: pbkdf2|scrypt")
	c.Flags().IntVar(&f.maxAttempts, "max-attempts", stego.DefaultMaxAttempts, "Per-pixel retry ceiling for hsv mode")
}

func (f *strategyFlags) config() (stego.Config, error) {
	mode, err := stego.ParseMode(f.mode)
	if err != nil {
		return stego.Config{}, err
	}
	password := f.password
	if password == "" {
		password = os.Getenv(PasswordEnv)
	}
	return stego.Config{
		Mode:           mode,
		BitsPerChannel: f.bits,
		Allocation:     f.alloc,
		Password:       password,
		KDF:            encryptor.KDF(f.kdf),
		MaxAttempts:    f.maxAttempts,
	}, nil
}

func (f *strategyFlags) strategy() (stego.Strategy, error) {
	cfg, err := f.config()
	if err != nil {
		return nil, err
	}
	return stego.New(cfg)
}

// defaultOutput derives "<dir>/<name>_<suffix>.png" from path.
func defaultOutput(path, suffix string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(path), fmt.Sprintf("%s_%s.png", name, suffix))
}
