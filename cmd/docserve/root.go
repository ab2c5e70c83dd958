package main

import (
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "docserve",
	Short: "Serve documents from PostgreSQL over HTTP",
	Long: `docserve answers GET /<id> with the content of the matching row in the
documents table, adding permissive CORS and five minute caching headers.
Running it without a subcommand is the same as "docserve serve".`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.SetVersionTemplate("docserve version {{.Version}}\n")
}
