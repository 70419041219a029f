package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayframe/internal/cli/formatter"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile and streaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Profiles.Profile(ctx, app.userID())
			if err != nil {
				return err
			}
			streaks, err := app.Profiles.Streaks(ctx, app.userID())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if p == nil {
				fmt.Fprintln(out, formatter.Dim("No profile yet. Run `dayframe profile set --name <name>`."))
			} else {
				fmt.Fprintln(out, formatter.Header(domain.CoalesceStr(p.Name, app.userID())))
				if len(p.ActiveProjects) > 0 {
					fmt.Fprintf(out, "  %s %s\n", formatter.Bold("Projects"), strings.Join(p.ActiveProjects, ", "))
				}
				if p.Timezone != "" {
					fmt.Fprintf(out, "  %s %s\n", formatter.Bold("Timezone"), p.Timezone)
				}
			}
			if line := formatter.FormatStreaks(streaks); line != "" {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.AddCommand(newProfileSetCmd(app))
	return cmd
}

func newProfileSetCmd(app *App) *cobra.Command {
	var name, timezone string
	var projects []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the name and projects the coach knows about",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timezone != "" {
				if _, err := time.LoadLocation(timezone); err != nil {
					return fmt.Errorf("invalid --timezone %q: %w", timezone, err)
				}
			}

			p, err := app.Profiles.Profile(ctx, app.userID())
			if err != nil {
				return err
			}
			if p == nil {
				p = &domain.UserProfile{UserID: app.userID()}
			}
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("project") {
				p.ActiveProjects = projects
			}
			if cmd.Flags().Changed("timezone") {
				p.Timezone = timezone
			}
			if err := app.Profiles.SaveProfile(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved for %s\n", domain.CoalesceStr(p.Name, p.UserID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "What the coach calls you")
	cmd.Flags().StringArrayVar(&projects, "project", nil, "An active project (repeatable, replaces the list)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone, e.g. Europe/Berlin")
	return cmd
}
