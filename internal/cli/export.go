package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tapemark/tapemark/internal/project"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <project-file>",
		Short: "Export annotations as time_marks JSON",
		Long: `Export a project's annotations as a time_marks document, the format
consumed by the analysis pipeline:

  {"name": "game1", "time_marks": [{"time": "1:30", "label": "夜晚"}, ...]}

With --out the document is written to a file, otherwise to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(args[0])
			if err != nil {
				return fmt.Errorf("load project: %w", err)
			}
			if out != "" {
				if err := p.ExportTimeMarks(out); err != nil {
					return err
				}
				if !jsonOutput {
					fmt.Fprintf(cmd.OutOrStdout(), "wrote %d marks to %s\n", len(p.TimeMarks()), out)
				}
				return nil
			}

			doc := struct {
				Name      string             `json:"name"`
				TimeMarks []project.TimeMark `json:"time_marks"`
			}{Name: p.Name, TimeMarks: p.TimeMarks()}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the document to a file instead of stdout")
	return cmd
}
