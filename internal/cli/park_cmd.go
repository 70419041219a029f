package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayframe/internal/cli/formatter"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// reviewable are the statuses shown in the parking lot.
var reviewable = []domain.ParkedStatus{domain.ParkedParked, domain.ParkedUnderReview}

func newParkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "park",
		Short: "Manage the parking lot of ideas that are not for today",
	}

	cmd.AddCommand(
		newParkAddCmd(app),
		newParkListCmd(app),
		newParkReviewCmd(app),
		newParkResolveCmd(app, "reactivate", "Bring a parked item back into play", domain.ParkedReactivated),
		newParkResolveCmd(app, "repark", "Put a reviewed item back in the lot", domain.ParkedParked),
		newParkResolveCmd(app, "delete", "Drop a parked item", domain.ParkedDeleted),
	)

	return cmd
}

func newParkAddCmd(app *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Park an idea",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := app.Parking.Park(cmd.Context(), app.userID(), strings.Join(args, " "), reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Parked %q (%s)\n", item.Text, formatter.TruncID(item.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why it is parked")
	return cmd
}

func newParkListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List parked items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := reviewable
			if all {
				statuses = nil
			}
			items, err := app.Parking.List(cmd.Context(), app.userID(), statuses...)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatParkedList(items, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include reactivated and deleted items")
	return cmd
}

func newParkResolveCmd(app *App, use, short string, to domain.ParkedStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveParkedID(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := resolveParked(ctx, app, id, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.ParkedStatusPill(item.Status), item.Text)
			return nil
		},
	}
}

func newParkReviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Walk through parked items one by one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("park review needs a terminal; use park reactivate|repark|delete <id>")
			}
			ctx := cmd.Context()
			items, err := app.Parking.List(ctx, app.userID(), reviewable...)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatParkedList(nil, app.now()))
				return nil
			}

			for _, item := range items {
				var choice string
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewSelect[string]().
							Title(formatter.FormatParkedOption(item, app.now())).
							Description(item.Reason).
							Options(
								huh.NewOption("Keep it parked", string(domain.ParkedParked)),
								huh.NewOption("Reactivate", string(domain.ParkedReactivated)),
								huh.NewOption("Delete", string(domain.ParkedDeleted)),
								huh.NewOption("Stop reviewing", ""),
							).
							Value(&choice),
					),
				).WithTheme(huhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
				if choice == "" {
					return nil
				}
				updated, err := resolveParked(ctx, app, item.ID, domain.ParkedStatus(choice))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.ParkedStatusPill(updated.Status), updated.Text)
			}
			return nil
		},
	}
}

// resolveParked moves an item through review to its final status. Items
// still parked enter review first.
func resolveParked(ctx context.Context, app *App, id string, to domain.ParkedStatus) (*domain.ParkedItem, error) {
	items, err := app.Parking.List(ctx, app.userID(), reviewable...)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == id && it.Status == domain.ParkedParked {
			if _, err := app.Parking.BeginReview(ctx, id); err != nil {
				return nil, err
			}
		}
	}

	switch to {
	case domain.ParkedReactivated:
		return app.Parking.Reactivate(ctx, id)
	case domain.ParkedDeleted:
		return app.Parking.Delete(ctx, id)
	default:
		return app.Parking.Repark(ctx, id)
	}
}

// resolveParkedID matches a full ID or a unique ID prefix among the
// user's open parked items.
func resolveParkedID(ctx context.Context, app *App, input string) (string, error) {
	items, err := app.Parking.List(ctx, app.userID(), reviewable...)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, it := range items {
		if it.ID == input {
			return it.ID, nil
		}
		if strings.HasPrefix(it.ID, input) {
			matches = append(matches, it.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("parked item not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("parked item ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
