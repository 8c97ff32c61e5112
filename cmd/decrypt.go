package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fcrypt/fcrypt/internal/container"
	"github.com/fcrypt/fcrypt/internal/display"
	"github.com/spf13/cobra"
)

var decryptCmd = &cobra.Command{
	Use:                   "decrypt <filepath> <password> [output_file]",
	Short:                 "Decrypt a container back to a file",
	Long:                  "Decrypt verifies password against the container's stored verifier\nhash, then reverses the keyed round schedule over every chunk (C4-C6),\nstrictly in index order, to recover the original file.",
	Args:                  cobra.RangeArgs(2, 3),
	RunE:                  runDecrypt,
	DisableFlagsInUseLine: true,
	SilenceUsage:          true,
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}} <filepath> <password> [output_file]
`)
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	password := args[1]
	outputPath := inputPath + ".dec"
	if len(args) == 3 {
		outputPath = args[2]
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}

	disp := display.NewDisplay()
	disp.ShowFile(inputPath, info.Size())

	start := time.Now()
	err = container.Decrypt(inputPath, outputPath, password)
	if errors.Is(err, container.ErrWrongPassword) {
		disp.ShowError("Wrong password")
		return err
	}
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}

	var fm display.Formatter
	disp.ShowMessage(fmt.Sprintf("wrote %s in %s", outputPath, fm.FormatDuration(time.Since(start))))
	return nil
}
