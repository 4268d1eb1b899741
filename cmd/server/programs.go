package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/retrodesk/internal/domain/catalog"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/server"
)

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List the programs a desktop can launch",
	Long:  "Print the built-in programs merged with the manifests in the catalog directory.",
	RunE:  runPrograms,
}

func init() {
	rootCmd.AddCommand(programsCmd)
	programsCmd.Flags().StringP("format", "f", "table", "Output format: table, yaml, json")
}

func runPrograms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cat, err := server.LoadCatalog(cfg.Desktop.CatalogDir, nil)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	return printPrograms(cmd.OutOrStdout(), cat, format)
}

func printPrograms(w io.Writer, cat *catalog.Catalog, format string) error {
	programs := cat.List()

	switch format {
	case "yaml":
		data, err := yaml.Marshal(map[string]any{"programs": programs})
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "json":
		data, err := sonic.ConfigDefault.MarshalIndent(programs, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tSIZE\tLINKS")
		for _, p := range programs {
			fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%d\n", p.ID, p.Title, p.Width, p.Height, len(p.Links))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
