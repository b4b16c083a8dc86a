package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tapemark/tapemark/internal/project"
)

func newTracksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tracks <project-file>",
		Short: "List a project's tracks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(args[0])
			if err != nil {
				return fmt.Errorf("load project: %w", err)
			}

			counts := make(map[int]int)
			for _, a := range p.Annotations {
				counts[a.TrackIndex]++
			}

			if jsonOutput {
				type row struct {
					Index       int    `json:"index"`
					Name        string `json:"name"`
					Locked      bool   `json:"locked"`
					Hidden      bool   `json:"hidden"`
					Annotations int    `json:"annotations"`
				}
				rows := make([]row, 0, len(p.Tracks))
				for i, tr := range p.Tracks {
					rows = append(rows, row{i, tr.Name, tr.Locked, tr.Hidden, counts[i]})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			t := newStyledTable("#", "NAME", "FLAGS", "MARKS")
			for i, tr := range p.Tracks {
				flags := ""
				if tr.Locked {
					flags += "locked "
				}
				if tr.Hidden {
					flags += "hidden"
				}
				t.addRow(fmt.Sprintf("%d", i), tr.Name, flags, fmt.Sprintf("%d", counts[i]))
			}
			t.withTitle(fmt.Sprintf("%s — %s, %d annotations",
				p.Name, project.FormatTime(p.Duration), len(p.Annotations)))
			fmt.Fprint(cmd.OutOrStdout(), t.render())
			return nil
		},
	}
}
