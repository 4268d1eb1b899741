package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "retrodesk",
	Short: "Serve a retro desktop portfolio",
	Long:  "retrodesk serves a Windows 98 style desktop whose windows are driven over a WebSocket.",
	// serve is the default so a bare binary starts the site
	RunE:         runServe,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("catalog", "", "Directory of program manifests (overrides CATALOG_DIR)")
	addServeFlags(rootCmd)
}
