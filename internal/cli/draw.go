package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/idilsaglam/gacha/internal/errors"
	"github.com/idilsaglam/gacha/internal/model"
	"github.com/idilsaglam/gacha/internal/store"
	"github.com/idilsaglam/gacha/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newDrawCmd(opt *Options) *cobra.Command {
	var noWait bool
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw one topic at random",
		Args:  usageArgs(cobra.NoArgs),
		RunE: withEnv(opt, func(cmd *cobra.Command, e *env, _ []string) error {
			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			topics := s.Load(cmd.Context())
			if len(topics) == 0 {
				return errors.New(errors.ErrValidation, "No topics to draw from",
					"Add one with `gacha add <text>`")
			}

			eng := e.engine(noWait)
			if eng.Delay() > 0 {
				fmt.Fprintln(e.out, ui.C(ui.Pending(), ui.Current().SymDraw+" Drawing..."))
			}
			res, _ := eng.Draw(topics)
			ui.Panel(e.out, ui.ResultLines(res))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "reveal the result immediately")
	return cmd
}

func newExportCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write the list as indented JSON",
		Long: `Write the current list as indented JSON.

Without a path the file goes to the configured export location, the same
file every change updates when export.enabled is set.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: withEnv(opt, func(cmd *cobra.Command, e *env, args []string) error {
			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			topics := s.Load(cmd.Context())

			dir, name := e.cfg.ExportDir(), e.cfg.Export.FileName
			if len(args) == 1 {
				dir, name = exportTarget(args[0], e.cfg.Export.FileName)
			}
			path, err := store.NewFileExporter(afero.NewOsFs(), dir, name).Export(cmd.Context(), topics)
			if err != nil {
				return err
			}
			ui.OK(e.out, fmt.Sprintf("exported %d topics to %s", len(topics), path))
			return nil
		}),
	}
}

// exportTarget splits a user path into dir and file name. A directory
// (existing, or written with a trailing separator) gets the configured name.
func exportTarget(path, defaultName string) (dir, name string) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return path, defaultName
	}
	dir, name = filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	if name == "" {
		name = defaultName
	}
	return dir, name
}

func newWatchCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the list every time it changes",
		Long: `Print the list, then print it again every time another gacha process
changes it. Stops on ctrl+c.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: withEnv(opt, func(cmd *cobra.Command, e *env, _ []string) error {
			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			current := s.Load(ctx)
			printList(e, current)

			for l := range e.watcher(s).Run(ctx, current) {
				printChange(e, l)
			}
			return nil
		}),
	}
}

func printChange(e *env, l model.TopicList) {
	fmt.Fprintln(e.out, ui.C(ui.Dim(), time.Now().Format("15:04:05")+" list changed"))
	printList(e, l)
}
