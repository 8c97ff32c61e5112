package cmd

import (
	"fmt"
	"strconv"

	"github.com/fcrypt/fcrypt/internal/hashpw"
	"github.com/spf13/cobra"
)

var hashCmd = &cobra.Command{
	Use:                   "hash <password> [cost] [salt]",
	Short:                 "Hash a password with the iterated password hash",
	Long:                  "Hash derives the iterated verifier hash (C1-C3) used by encrypted\ncontainers. cost defaults to 10; salt defaults to a freshly generated\nvalue on every iteration when omitted.",
	Args:                  cobra.RangeArgs(1, 3),
	RunE:                  runHash,
	DisableFlagsInUseLine: true,
	SilenceUsage:          true,
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}} <password> [cost] [salt]
`)
}

func runHash(cmd *cobra.Command, args []string) error {
	password := args[0]

	cost := 10
	if len(args) >= 2 {
		c, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid cost %q: %w", args[1], err)
		}
		cost = c
	}

	salt := ""
	if len(args) >= 3 {
		salt = args[2]
	}

	hash, err := hashpw.Hash(password, cost, salt)
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}

	fmt.Printf("Hash: %s\n", hash)
	return nil
}
