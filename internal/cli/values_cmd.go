package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayframe/internal/cli/formatter"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newValuesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "values",
		Short: "Show the core values the coach keeps in mind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Profiles.Values(cmd.Context(), app.userID())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatValues(v))
			return nil
		},
	}

	cmd.AddCommand(newValuesSetCmd(app))
	return cmd
}

func newValuesSetCmd(app *App) *cobra.Command {
	var values []string
	var vision string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Record your core values and vision",
		Long: `Records the result of the core values exercise. Without flags a form
asks for them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(values) == 0 && vision == "" {
				if !app.interactive() {
					return errors.New("pass --value and --vision, or run in a terminal")
				}
				current, err := app.Profiles.Values(ctx, app.userID())
				if err != nil {
					return err
				}
				if values, vision, err = valuesForm(current); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
			}

			v := &domain.ValuesData{CoreValues: values, Vision: vision}
			if err := app.Profiles.SaveValues(ctx, app.userID(), v); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatValues(v))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&values, "value", nil, "A core value (repeatable)")
	cmd.Flags().StringVar(&vision, "vision", "", "One sentence on where you are heading")
	return cmd
}

func valuesForm(current *domain.ValuesData) ([]string, string, error) {
	var list, vision string
	if current != nil {
		list = strings.Join(current.CoreValues, ", ")
		vision = current.Vision
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Core values").
				Description("Comma separated, three to five is plenty").
				Placeholder("health, craft, family").
				Value(&list).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name at least one value")
					}
					return nil
				}),
			huh.NewText().
				Title("Vision").
				Description("Where are you heading?").
				Value(&vision),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return nil, "", err
	}
	return strings.Split(list, ","), vision, nil
}

func formatValues(v *domain.ValuesData) string {
	if v == nil || len(v.CoreValues) == 0 {
		return formatter.Dim("No values recorded yet. Run `dayframe values set`.") + "\n"
	}
	var b strings.Builder
	b.WriteString(formatter.Header("Core values"))
	b.WriteString("\n")
	for _, val := range v.CoreValues {
		fmt.Fprintf(&b, "  • %s\n", val)
	}
	if v.Vision != "" {
		fmt.Fprintf(&b, "\n  %s %s\n", formatter.Bold("Vision"), v.Vision)
	}
	return b.String()
}
