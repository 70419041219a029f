package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayframe/internal/cli/formatter"
	"github.com/alexanderramin/dayframe/internal/coaching"
	"github.com/alexanderramin/dayframe/internal/config"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/llm"
	"go.uber.org/zap"
)

func (a *App) now() time.Time {
	if a.Config == nil {
		return time.Now()
	}
	return a.Config.Now()
}

func (a *App) userID() string {
	if a.Config == nil || a.Config.UserID == "" {
		return config.DefaultUserID
	}
	return a.Config.UserID
}

func (a *App) today() time.Time {
	return domain.TruncateDate(a.now())
}

// newEngine wires a coaching engine to the configured model. A model that
// cannot be built is logged and the engine answers with static replies.
func (a *App) newEngine() *coaching.Engine {
	log := a.logger()

	observers := llm.MultiObserver{}
	if a.LLM.LogCalls {
		observers = append(observers, llm.NewLogObserver(log))
	}
	if a.Metrics != nil {
		observers = append(observers, a.Metrics)
	}

	newClient := a.NewChatClient
	if newClient == nil {
		newClient = llm.NewClient
	}
	client, err := newClient(a.LLM, observers)
	if err != nil {
		log.Warn("chat model unavailable, using static replies", zap.Error(err))
		client = nil
	}

	opts := []coaching.Option{
		coaching.WithLogger(log),
		coaching.WithClock(a.now),
	}
	if a.Metrics != nil {
		opts = append(opts, coaching.WithTurnObserver(a.Metrics))
	}
	if a.LLM.ContextTokens > 0 {
		window, err := coaching.NewTranscriptWindow(a.LLM.ContextTokens)
		if err != nil {
			log.Warn("transcript window disabled", zap.Error(err))
		} else {
			opts = append(opts, coaching.WithTranscriptWindow(window))
		}
	}
	return coaching.NewEngine(a.Store, client, opts...)
}

// chatIntro is printed above a new conversation: a greeting, yesterday's
// unfinished items for check-ins, and current streaks.
func chatIntro(ctx context.Context, app *App, flow domain.Flow) string {
	name := ""
	if app.Config != nil {
		name = app.Config.UserName
	}
	if app.Profiles != nil {
		if p, err := app.Profiles.Profile(ctx, app.userID()); err == nil && p != nil && p.Name != "" {
			name = p.Name
		}
	}

	var b strings.Builder
	b.WriteString(formatter.ChatWelcome(flow, name))
	b.WriteString("\n")

	if flow == domain.FlowMorning && app.Plans != nil {
		items, err := app.Plans.Carryover(ctx, app.userID(), app.today())
		if err != nil {
			app.logger().Warn("loading carryover", zap.Error(err))
		} else if len(items) > 0 {
			b.WriteString("\n")
			b.WriteString(formatter.FormatCarryover(items))
		}
	}
	if app.Profiles != nil {
		if streaks, err := app.Profiles.Streaks(ctx, app.userID()); err == nil {
			if line := formatter.FormatStreaks(streaks); line != "" {
				b.WriteString("\n")
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// chatCommand is a slash command typed into the chat prompt.
type chatCommand int

const (
	chatCmdNone chatCommand = iota
	chatCmdQuit
	chatCmdDone
	chatCmdPlan
	chatCmdHelp
)

func parseChatCommand(input string) chatCommand {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "/quit", "/exit", "/q":
		return chatCmdQuit
	case "/done":
		return chatCmdDone
	case "/plan", "/save":
		return chatCmdPlan
	case "/help", "/?":
		return chatCmdHelp
	}
	return chatCmdNone
}

const chatHelpText = "/plan saves the plan discussed so far, /done saves it and ends the session, /quit leaves."

// chatResult is what a slash command or turn produced for display.
type chatResult struct {
	lines []string
	ended bool
}

// runChatCommand applies a slash command to the session.
func runChatCommand(ctx context.Context, engine *coaching.Engine, sessionID string, c chatCommand) (chatResult, error) {
	switch c {
	case chatCmdQuit:
		return quitChat(ctx, engine, sessionID)
	case chatCmdDone:
		return finishChat(ctx, engine, sessionID)
	case chatCmdPlan:
		return confirmPlan(ctx, engine, sessionID)
	case chatCmdHelp:
		return chatResult{lines: []string{formatter.SystemLine(chatHelpText)}}, nil
	}
	return chatResult{}, nil
}

func confirmPlan(ctx context.Context, engine *coaching.Engine, sessionID string) (chatResult, error) {
	s, ok := engine.Session(sessionID)
	if !ok {
		return chatResult{ended: true}, nil
	}
	if s.State == domain.SessionPlanConfirmed {
		return chatResult{lines: []string{formatter.SystemLine("Plan already saved. /done to finish.")}}, nil
	}
	plan, err := engine.Confirm(ctx, sessionID)
	switch {
	case errors.Is(err, coaching.ErrNoPlan), errors.Is(err, coaching.ErrInvalidTransition):
		return chatResult{lines: []string{formatter.SystemLine("No plan in the conversation yet. Keep going, or /quit to leave without one.")}}, nil
	case err != nil:
		return chatResult{}, err
	}
	return chatResult{lines: []string{formatter.FormatPlanSaved(&plan)}}, nil
}

// finishChat saves the plan if needed and completes the session.
func finishChat(ctx context.Context, engine *coaching.Engine, sessionID string) (chatResult, error) {
	s, ok := engine.Session(sessionID)
	if !ok {
		return chatResult{ended: true}, nil
	}

	var res chatResult
	switch s.State {
	case domain.SessionCreated:
		return quitChat(ctx, engine, sessionID)
	case domain.SessionInProgress:
		saved, err := confirmPlan(ctx, engine, sessionID)
		if err != nil {
			return chatResult{}, err
		}
		res.lines = saved.lines
		if cur, _ := engine.Session(sessionID); cur.State != domain.SessionPlanConfirmed {
			return res, nil
		}
	}

	final, err := engine.Complete(ctx, sessionID)
	if err != nil {
		return res, err
	}
	res.lines = append(res.lines, formatter.SystemLine(fmt.Sprintf("Session complete after %s.", formatter.Plural(final.TurnCount, "turn"))))
	res.ended = true
	return res, nil
}

// quitChat leaves the session. A session with a saved plan is completed
// rather than abandoned.
func quitChat(ctx context.Context, engine *coaching.Engine, sessionID string) (chatResult, error) {
	s, ok := engine.Session(sessionID)
	if !ok {
		return chatResult{ended: true}, nil
	}
	if s.State == domain.SessionPlanConfirmed {
		return finishChat(ctx, engine, sessionID)
	}
	if _, err := engine.Abandon(ctx, sessionID); err != nil {
		return chatResult{}, err
	}
	return chatResult{lines: []string{formatter.SystemLine("Session ended without a plan.")}, ended: true}, nil
}

// idleSweepInterval is how often an open chat checks for idle sessions.
const idleSweepInterval = time.Minute

// sweepIdle expires idle sessions until ctx is done.
func sweepIdle(ctx context.Context, engine *coaching.Engine, now func() time.Time, log *zap.Logger) {
	ticker := time.NewTicker(idleSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range engine.ExpireIdle(now()) {
				log.Info("idle session expired", zap.String("session_id", id))
			}
		}
	}
}

// turnNotice explains a rejected turn, or returns "" for errors the
// caller must surface.
func turnNotice(err error) string {
	switch {
	case errors.Is(err, coaching.ErrSessionNotFound):
		return "This session timed out after a long quiet spell. Start a new check-in to continue."
	case errors.Is(err, coaching.ErrTurnLimitExceeded):
		return "That's the end of this conversation. /done to save your plan or /quit to leave."
	case errors.Is(err, coaching.ErrInvalidTransition):
		return "Your plan is saved. /done to finish."
	case errors.Is(err, coaching.ErrTurnInFlight):
		return "The coach is still replying."
	}
	return ""
}

// sessionGone reports whether err means the session no longer exists.
func sessionGone(err error) bool {
	return errors.Is(err, coaching.ErrSessionNotFound)
}

// replyLines renders the end of a turn. streamed is true when chunks were
// already shown for a model reply.
func replyLines(reply coaching.Reply, streamed bool) []string {
	var lines []string
	if !streamed || reply.Fallback {
		lines = append(lines, formatter.CoachLine(reply.Message.Content, reply.Fallback))
	}
	if reply.Plan != nil {
		lines = append(lines, formatter.FormatPlanSaved(reply.Plan), formatter.SystemLine("/done to finish."))
	}
	return lines
}
