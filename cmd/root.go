package cmd

import (
	"github.com/spf13/cobra"
)

const appName = "fcrypt"

const banner = `  ____                  _
 / ___|_ __ _   _ _ __ | |_
| |   | '__| | | | '_ \| __|
| |___| |  | |_| | |_) | |_
 \____|_|   \__, | .__/ \__|
            |___/|_|`

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "A bespoke file-encryption CLI",
	Long:  banner + "\n\n" + appName + " hashes passwords, encrypts files and inspects encrypted containers.",
}

func Execute() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = false

	rootCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}} [command]

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}

Use "{{.CommandPath}} [command] --help" for more information about a command.
`)

	return rootCmd.Execute()
}
