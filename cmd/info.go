package cmd

import (
	"fmt"

	"github.com/fcrypt/fcrypt/internal/container"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:                   "info <container>",
	Short:                 "Print a container's metadata without a password",
	Long:                  "Info reads a container's plaintext metadata record and reports the\noriginal file name, salt, cost and chunk count. No password is needed -\nthe metadata record is stored unencrypted by construction.",
	Args:                  cobra.ExactArgs(1),
	RunE:                  runInfo,
	DisableFlagsInUseLine: true,
	SilenceUsage:          true,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}} <container>
`)
}

func runInfo(cmd *cobra.Command, args []string) error {
	meta, chunks, err := container.Inspect(args[0])
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	fmt.Printf("file   : %s\n", meta.File)
	fmt.Printf("salt   : %s\n", meta.Salt)
	fmt.Printf("cost   : %d\n", meta.Cost)
	fmt.Printf("chunks : %d\n", chunks)
	return nil
}
