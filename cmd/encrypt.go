package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fcrypt/fcrypt/internal/config"
	"github.com/fcrypt/fcrypt/internal/container"
	"github.com/fcrypt/fcrypt/internal/display"
	"github.com/spf13/cobra"
)

type encryptOptions struct {
	cost       int
	workers    int
	configPath string
}

var encryptOpts encryptOptions

var encryptCmd = &cobra.Command{
	Use:                   "encrypt <filepath> <password> [output_file]",
	Short:                 "Encrypt a file into a container",
	Long:                  "Encrypt derives a key from password (C1-C3), transforms the file\nthrough the keyed round schedule (C4-C6), and writes an encrypted ZIP\ncontainer (C7).",
	Args:                  cobra.RangeArgs(2, 3),
	RunE:                  runEncrypt,
	DisableFlagsInUseLine: true,
	SilenceUsage:          true,
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().SortFlags = false
	encryptCmd.Flags().IntVar(&encryptOpts.cost, "cost", 0, "iteration cost, 2^cost rounds (default from config, or 10)")
	encryptCmd.Flags().IntVar(&encryptOpts.workers, "workers", 0, "chunk worker pool size (default from config, or automatic)")
	encryptCmd.Flags().StringVar(&encryptOpts.configPath, "config", "", "path to a config file (default: search known locations)")

	encryptCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}} <filepath> <password> [output_file] [flags]

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`)
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	password := args[1]
	outputPath := inputPath + ".enc"
	if len(args) == 3 {
		outputPath = args[2]
	}

	defaults := loadConfigDefaults(encryptOpts.configPath)

	cost := encryptOpts.cost
	if !cmd.Flags().Changed("cost") {
		cost = defaults.ResolveCost()
	}
	workers := encryptOpts.workers
	if !cmd.Flags().Changed("workers") {
		workers = defaults.ResolveWorkers()
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}

	disp := display.NewDisplay()
	disp.ShowFile(inputPath, info.Size())

	start := time.Now()
	opts := container.EncryptOptions{Cost: cost, Workers: workers, Progress: disp}
	if err := container.Encrypt(inputPath, outputPath, password, opts); err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}

	var fm display.Formatter
	outInfo, statErr := os.Stat(outputPath)
	if statErr == nil {
		disp.ShowMessage(fmt.Sprintf("wrote %s (%s) in %s", outputPath, fm.FormatBytes(outInfo.Size()), fm.FormatDuration(time.Since(start))))
	} else {
		disp.ShowMessage(fmt.Sprintf("wrote %s in %s", outputPath, fm.FormatDuration(time.Since(start))))
	}
	return nil
}

// loadConfigDefaults returns the resolved configuration defaults, or a nil
// *config.Defaults (which resolves to the package's built-in values) when
// no config file is found or readable.
func loadConfigDefaults(explicitPath string) *config.Defaults {
	path, err := config.FindConfigFile(explicitPath)
	if err != nil {
		return nil
	}
	d, err := config.Load(path)
	if err != nil {
		return nil
	}
	return d
}
