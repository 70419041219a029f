package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/dayframe/internal/cli/formatter"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/service"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show and tick off today's plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showPlan(cmd, app, app.today())
		},
	}

	cmd.AddCommand(
		newPlanShowCmd(app),
		newPlanDoneCmd(app),
		newPlanCarryoverCmd(app),
	)

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the plan for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := app.today()
			if date != "" {
				d, err := time.ParseInLocation(domain.DateLayout, date, day.Location())
				if err != nil {
					return fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", date)
				}
				day = d
			}
			return showPlan(cmd, app, day)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default today)")
	return cmd
}

func showPlan(cmd *cobra.Command, app *App, day time.Time) error {
	note, err := app.Plans.Today(cmd.Context(), app.userID(), day)
	if errors.Is(err, service.ErrNoPlanToday) {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No plan for "+formatter.HumanDate(day, app.today())+". Run `dayframe checkin` to make one."))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(note, app.today()))
	return nil
}

func newPlanDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <n>",
		Short: "Mark Top 3 item n of today's plan done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("item number must be a positive integer, got %q", args[0])
			}
			note, err := app.Plans.CompleteItem(cmd.Context(), app.userID(), app.today(), n-1)
			if err != nil {
				return err
			}
			item := note.Plan.Top3[n-1]
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔"), item.Text)
			return nil
		},
	}
}

func newPlanCarryoverCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "carryover",
		Short: "List unfinished items from yesterday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Plans.Carryover(cmd.Context(), app.userID(), app.today())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCarryover(items))
			return nil
		},
	}
}
