package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/dayframe/internal/cli/formatter"
	"github.com/alexanderramin/dayframe/internal/coaching"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/spf13/cobra"
)

func newCheckinCmd(app *App) *cobra.Command {
	var flow domain.Flow
	var plain bool

	cmd := &cobra.Command{
		Use:     "checkin",
		Aliases: []string{"chat"},
		Short:   "Talk through your day with the coach",
		Long: `Starts a coaching conversation. Morning check-ins turn a brain dump
into a Top 3, evening check-ins reflect on the day. Without --flow the
check-in follows the time of day.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("flow") {
				flow = flowForTime(app.now())
			}
			return runChat(cmd, app, flow, plain)
		},
	}

	cmd.Flags().Var(newFlowValue(domain.FlowMorning, &flow), "flow", "Conversation flow: "+flowList())
	cmd.Flags().BoolVar(&plain, "plain", false, "Use line-by-line chat even in a terminal")

	return cmd
}

func runCheckin(cmd *cobra.Command, app *App, flow domain.Flow) error {
	return runChat(cmd, app, flow, false)
}

func runChat(cmd *cobra.Command, app *App, flow domain.Flow, plain bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	engine := app.newEngine()
	defer engine.Close()

	session, err := engine.Start(ctx, app.userID(), flow)
	if err != nil {
		return err
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepIdle(sweepCtx, engine, app.now, app.logger())

	intro := chatIntro(ctx, app, flow)

	if app.interactive() && !plain {
		return runChatView(ctx, engine, session, intro, cmd.OutOrStdout())
	}
	return runLineChat(ctx, engine, session.ID, intro, app.input(), cmd.OutOrStdout(), app.interactive())
}

// errSessionGone ends line chat once the session has expired.
var errSessionGone = errors.New("session expired")

// runLineChat drives a conversation over plain reader and writer. End of
// input behaves like /quit.
func runLineChat(ctx context.Context, engine *coaching.Engine, sessionID, intro string, in io.Reader, out io.Writer, spin bool) error {
	fmt.Fprintln(out, intro)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, formatter.StyleBlue.Render("you")+formatter.Dim("> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			res, err := quitChat(ctx, engine, sessionID)
			printLines(out, res.lines)
			if err != nil {
				return err
			}
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		if c := parseChatCommand(text); c != chatCmdNone {
			res, err := runChatCommand(ctx, engine, sessionID, c)
			printLines(out, res.lines)
			if err != nil {
				return err
			}
			if res.ended {
				return nil
			}
			continue
		}

		if err := lineTurn(ctx, engine, sessionID, text, out, spin); err != nil {
			if errors.Is(err, errSessionGone) {
				return nil
			}
			return err
		}
	}
}

func lineTurn(ctx context.Context, engine *coaching.Engine, sessionID, text string, out io.Writer, spin bool) error {
	stop := func() {}
	if spin {
		stop = formatter.StartSpinner(out, "thinking...")
	}

	streamed := false
	reply, err := engine.Send(ctx, sessionID, text, func(chunk string) {
		if !streamed {
			stop()
			fmt.Fprint(out, formatter.CoachPrefix())
			streamed = true
		}
		fmt.Fprint(out, chunk)
	})
	stop()
	if streamed {
		fmt.Fprintln(out)
	}

	if err != nil {
		notice := turnNotice(err)
		if notice == "" {
			return err
		}
		printLines(out, []string{formatter.SystemLine(notice)})
		if sessionGone(err) {
			return errSessionGone
		}
		return nil
	}
	printLines(out, replyLines(reply, streamed))
	return nil
}

func printLines(out io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
}
