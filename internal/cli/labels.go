package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tapemark/tapemark/internal/label"
)

func newLabelsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List the label taxonomy",
		Long: `List the labels the editor offers in its assignment dialog, grouped
the way the dialog groups them. Reads --file, then the labels_file from
config, then the built-in defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tax, src, err := resolveTaxonomy(file)
			if err != nil {
				return err
			}

			if jsonOutput {
				out := struct {
					Source string   `json:"source"`
					Labels []string `json:"labels"`
				}{Source: src, Labels: tax.Labels()}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			t := newStyledTable("GROUP", "LABEL")
			for _, g := range tax.Groups() {
				for _, e := range g.Labels {
					t.addRow(g.Name, e.Leaf)
				}
			}
			t.withTitle(fmt.Sprintf("labels from %s", src))
			fmt.Fprint(cmd.OutOrStdout(), t.render())
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Label taxonomy YAML to read")
	return cmd
}

// resolveTaxonomy loads labels with the same precedence the editor uses.
func resolveTaxonomy(file string) (*label.Taxonomy, string, error) {
	if file == "" {
		file = cfg.LabelsFile
	}
	if file != "" {
		tax, err := label.LoadFile(file)
		if err != nil {
			return nil, "", fmt.Errorf("load labels: %w", err)
		}
		if !tax.Empty() {
			return tax, file, nil
		}
	}
	return label.New(cfg.DefaultLabels), "built-in defaults", nil
}
