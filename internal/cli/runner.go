package cli

import (
	goerrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/idilsaglam/gacha/internal/model"
	"github.com/idilsaglam/gacha/internal/store"
	"github.com/idilsaglam/gacha/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// maxTopicWidth truncates long topics in `ls`.
const maxTopicWidth = 80

// usageError marks bad invocations, which exit with code 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func isUsage(err error) bool {
	var u usageError
	return goerrors.As(err, &u)
}

// usageArgs turns cobra's argument errors into usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{fmt.Sprintf("%s\nusage: %s", err, cmd.UseLine())}
		}
		return nil
	}
}

// parseOrdinal reads a 1-based position from the command line.
func parseOrdinal(cmdName, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usageError{fmt.Sprintf("%s: not a number: %s", cmdName, s)}
	}
	return n - 1, nil
}

// -------------- subcommands ----------------

func newListCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List topics",
		Args:    usageArgs(cobra.NoArgs),
		RunE: withEnv(opt, func(cmd *cobra.Command, e *env, _ []string) error {
			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			printList(e, s.Load(cmd.Context()))
			return nil
		}),
	}
}

func printList(e *env, topics model.TopicList) {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d",
		ui.C(t.Title, "Topics"),
		ui.C(t.Accent, "Total"), len(topics),
	)
	lines := []string{header, ""}
	lines = append(lines, ui.TopicLines(topics, maxTopicWidth)...)
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: draw one with `gacha draw`"))
	ui.Panel(e.out, lines)
}

func newAddCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Append a topic (text can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: withEnv(opt, func(cmd *cobra.Command, e *env, args []string) error {
			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			topics, err := s.Append(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			ui.OK(e.out, fmt.Sprintf("added #%d", len(topics)))
			reportExport(e, s)
			return nil
		}),
	}
}

func newEditCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <n> <text...>",
		Short: "Replace the topic at 1-based position n",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: withEnv(opt, func(cmd *cobra.Command, e *env, args []string) error {
			idx, err := parseOrdinal("edit", args[0])
			if err != nil {
				return err
			}
			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.UpdateAt(cmd.Context(), idx, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			ui.OK(e.out, fmt.Sprintf("updated #%d", idx+1))
			reportExport(e, s)
			return nil
		}),
	}
}

func newRemoveCmd(opt *Options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <n>",
		Aliases: []string{"remove"},
		Short:   "Delete the topic at 1-based position n",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: withEnv(opt, func(cmd *cobra.Command, e *env, args []string) error {
			idx, err := parseOrdinal("rm", args[0])
			if err != nil {
				return err
			}
			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			// the confirmation and the delete see the same loaded list
			topics := s.List(cmd.Context())
			if !topics.InBounds(idx) {
				// let the store produce the bounds error
				_, err := s.DeleteAt(cmd.Context(), idx)
				return err
			}

			if !yes && interactive() {
				ok, err := confirmDelete(topics[idx])
				if err != nil {
					return err
				}
				if !ok {
					ui.Hint(e.out, "delete cancelled")
					return nil
				}
			}

			if _, err := s.DeleteAt(cmd.Context(), idx); err != nil {
				return err
			}
			ui.OK(e.out, fmt.Sprintf("removed #%d", idx+1))
			reportExport(e, s)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// -------------- helpers --------------

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func confirmDelete(text string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title("Delete this topic?").
		Description(text).
		Affirmative("Delete").
		Negative("Keep").
		Value(&ok).
		Run()
	if err != nil {
		if goerrors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

func reportExport(e *env, s *store.Store) {
	if p := s.LastExport(); p != "" {
		ui.Hint(e.out, "exported to "+p)
	}
}
