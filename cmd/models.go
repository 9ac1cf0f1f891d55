package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/clickexp/clickexp/internal/clickmodel"
	"github.com/spf13/cobra"
)

var (
	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var modelDescriptions = map[string]string{
	"GCTR": "global click-through rate",
	"RCTR": "click-through rate per rank",
	"DCTR": "click-through rate per query and result",
	"CM":   "cascade model",
	"PBM":  "position-based model (EM)",
	"UBM":  "user browsing model (EM)",
	"DCM":  "dependent click model",
	"SDBN": "simplified dynamic Bayesian network",
	"DBN":  "dynamic Bayesian network (EM)",
	"CCM":  "click chain model (EM)",
}

// modelsCmd represents the models command
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available click models",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range clickmodel.DefaultRegistry(clickmodel.Options{}).Names() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n",
				nameStyle.Render(name), descStyle.Render(modelDescriptions[name]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
