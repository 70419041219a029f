package cli

import (
	"fmt"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/spf13/cobra"
)

// newPromptCmd prints the system prompt a new conversation would open
// with, which is handy when tuning copy or debugging context.
func newPromptCmd(app *App) *cobra.Command {
	var flow domain.Flow

	cmd := &cobra.Command{
		Use:    "prompt",
		Short:  "Print the coaching prompt for a flow",
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine := app.newEngine()
			defer engine.Close()

			session, err := engine.Start(ctx, app.userID(), flow)
			if err != nil {
				return err
			}
			prompt, err := engine.Prompt(ctx, session.ID)
			if _, abandonErr := engine.Abandon(ctx, session.ID); err == nil {
				err = abandonErr
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	cmd.Flags().Var(newFlowValue(domain.FlowMorning, &flow), "flow", "Conversation flow: "+flowList())
	return cmd
}
