package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tapemark/tapemark/internal/label"
	"github.com/tapemark/tapemark/internal/player"
	"github.com/tapemark/tapemark/internal/project"
	"github.com/tapemark/tapemark/internal/session"
	"github.com/tapemark/tapemark/internal/tui"
	"github.com/tapemark/tapemark/internal/watcher"
)

func newEditCmd() *cobra.Command {
	var (
		duration   string
		mediaPath  string
		labelsFile string
	)

	cmd := &cobra.Command{
		Use:   "edit <project-file>",
		Short: "Open the timeline editor",
		Long: `Open a project file in the interactive editor. If the file does not
exist it is created; pass --duration to size the timeline of a new
project (m:ss, h:mm:ss, or a bare number read as a frame count at the
configured fps).

Examples:
  tapemark edit game1.tapemark.json
  tapemark edit game1.tapemark.json --duration 45:00 --media game1.mp4
  tapemark edit game1.tapemark.json --labels werewolf.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("edit needs an interactive terminal; use 'tapemark export' for scripted access")
			}
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (w < 60 || h < 16) {
				return fmt.Errorf("terminal is %dx%d; the editor needs at least 60x16", w, h)
			}
			return runEdit(args[0], duration, mediaPath, labelsFile)
		},
	}

	cmd.Flags().StringVar(&duration, "duration", "", "Timeline duration for a new project")
	cmd.Flags().StringVar(&mediaPath, "media", "", "Path to the media file this project annotates")
	cmd.Flags().StringVar(&labelsFile, "labels", "", "Label taxonomy YAML (overrides config)")
	return cmd
}

func runEdit(path, duration, mediaPath, labelsFile string) error {
	p, err := openOrCreateProject(path, duration, mediaPath)
	if err != nil {
		return err
	}

	sess := session.New(p, player.NewClock(p.Duration))

	if labelsFile == "" {
		labelsFile = cfg.LabelsFile
	}
	var tax *label.Taxonomy
	if labelsFile != "" {
		tax, err = label.LoadFile(labelsFile)
		if err != nil {
			return fmt.Errorf("load labels: %w", err)
		}
	}

	// Live-reload the taxonomy while the editor runs. The watcher callback
	// runs off the Bubble Tea loop, so it only forwards over a channel the
	// editor drains as a command.
	var labelCh chan *label.Taxonomy
	var w *watcher.LabelsWatcher
	if labelsFile != "" {
		labelCh = make(chan *label.Taxonomy, 1)
		w, err = watcher.WatchLabels(labelsFile, func(t *label.Taxonomy) {
			select {
			case labelCh <- t:
			default:
			}
		})
		if err != nil {
			slog.Warn("labels watcher unavailable", "path", labelsFile, "error", err)
			w = nil
		}
	}
	if w != nil {
		defer w.Close()
	}

	var ch <-chan *label.Taxonomy
	if labelCh != nil {
		ch = labelCh
	}
	e, err := tui.NewEditor(cfg, sess, tax, path, ch)
	if err != nil {
		return err
	}
	slog.Info("editor opened", "project", path, "duration", p.Duration, "tracks", len(p.Tracks))
	return tui.Run(e)
}

func openOrCreateProject(path, duration, mediaPath string) (*project.Project, error) {
	if _, err := os.Stat(path); err == nil {
		p, err := project.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load project: %w", err)
		}
		if mediaPath != "" {
			p.MediaPath = mediaPath
		}
		return p, nil
	}

	if duration == "" {
		return nil, fmt.Errorf("%s does not exist; pass --duration to create it", path)
	}
	secs, err := project.ParseTime(duration, cfg.FPS)
	if err != nil {
		return nil, fmt.Errorf("parse --duration: %w", err)
	}
	p := project.New(projectName(path), secs)
	p.MediaPath = mediaPath
	p.FPS = cfg.FPS
	if err := p.Save(path); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	slog.Info("project created", "path", path, "duration", secs)
	return p, nil
}
