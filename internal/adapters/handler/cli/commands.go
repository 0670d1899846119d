// Package cli is the terminal front end: a cobra command tree over the services.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type Dependencies struct {
	Habits      *services.HabitService
	Completions *services.CompletionService
	Stats       *services.StatsService
}

func NewRootCommand(deps Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:           "habits",
		Short:         "Track daily habits and streaks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, deps, "")
		},
	}

	root.AddCommand(
		newAddCommand(deps),
		newListCommand(deps),
		newDoneCommand(deps),
		newShowCommand(deps),
		newDeleteCommand(deps),
	)
	return root
}

func newAddCommand(deps Dependencies) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a habit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := deps.Habits.Create(cmd.Context(), services.CreateHabitInput{
				Name:  strings.Join(args, " "),
				Color: color,
			})
			if err != nil {
				return err
			}

			s := newStyles(cmd.OutOrStdout())
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", s.habitName(h), s.muted.Render(h.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "hex colour, e.g. #22C55E")
	return cmd
}

func newListCommand(deps Dependencies) *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show every habit with today's status",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, deps, today)
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "evaluate as of this day (YYYY-MM-DD)")
	return cmd
}

func runList(cmd *cobra.Command, deps Dependencies, today string) error {
	board, err := deps.Stats.GetBoard(cmd.Context(), domain.SummaryInput{Today: today})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	s := newStyles(out)

	if board.TotalHabits == 0 {
		fmt.Fprintln(out, s.muted.Render("No habits yet. Add one with: habits add NAME"))
		return nil
	}

	fmt.Fprintln(out, s.boardHeader(board))
	for _, sum := range board.Habits {
		fmt.Fprintln(out, s.line(sum))
	}
	return nil
}

func newDoneCommand(deps Dependencies) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "done HABIT_ID",
		Short: "Toggle a habit for today or --date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := deps.Completions.Toggle(cmd.Context(), services.ToggleInput{
				HabitID: args[0],
				Date:    date,
			})
			if err != nil {
				return err
			}

			s := newStyles(cmd.OutOrStdout())
			if res.Completed {
				fmt.Fprintln(cmd.OutOrStdout(), s.done.Render("✓ Marked "+res.Date))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), s.muted.Render("Unmarked "+res.Date))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to toggle (YYYY-MM-DD), defaults to today")
	return cmd
}

func newShowCommand(deps Dependencies) *cobra.Command {
	var (
		days  int
		today string
	)

	cmd := &cobra.Command{
		Use:   "show HABIT_ID",
		Short: "Show streaks and recent days for a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := deps.Stats.GetHabitSummary(cmd.Context(), args[0], domain.SummaryInput{
				Today: today,
				Days:  days,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout()).detail(*sum))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", services.DefaultDays, "number of days in the grid")
	cmd.Flags().StringVar(&today, "today", "", "evaluate as of this day (YYYY-MM-DD)")
	return cmd
}

var errAborted = errors.New("aborted")

func newDeleteCommand(deps Dependencies) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete HABIT_ID",
		Aliases: []string{"rm"},
		Short:   "Delete a habit and its history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := deps.Habits.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintf(out, "Delete %q and all its history? [y/N] ", h.Name)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					return errAborted
				}
			}

			if err := deps.Habits.Delete(cmd.Context(), h.ID); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted %s\n", h.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
