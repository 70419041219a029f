package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/dayframe/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newChallengeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "challenge",
		Aliases: []string{"foundation"},
		Short:   "Work through the foundation challenges",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := app.Challenges.Active(cmd.Context(), app.userID(), app.today())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActiveChallenge(ac))
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all challenges and your progress",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := app.Challenges.List(cmd.Context(), app.userID())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChallengeList(list))
				return nil
			},
		},
		&cobra.Command{
			Use:   "start <n>",
			Short: "Start challenge n, finishing the current one",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("challenge number must be an integer, got %q", args[0])
				}
				ac, err := app.Challenges.Start(cmd.Context(), app.userID(), n)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Started %s\n", formatter.Bold(fmt.Sprintf("#%d %s", ac.Challenge.Number, ac.Challenge.Title)))
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Run `dayframe checkin --flow challenge_intro` to talk it through."))
				return nil
			},
		},
	)

	return cmd
}
