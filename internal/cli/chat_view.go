package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/dayframe/internal/cli/formatter"
	"github.com/alexanderramin/dayframe/internal/coaching"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// streamPollInterval is how often the view redraws a reply in flight.
const streamPollInterval = 80 * time.Millisecond

type turnDoneMsg struct {
	reply coaching.Reply
	err   error
}

type streamTickMsg struct{}

// chatView is the full-terminal conversation. Replies run in a tea.Cmd
// and the partial text is polled from the engine while they stream.
type chatView struct {
	ctx       context.Context
	cancel    context.CancelFunc
	engine    *coaching.Engine
	sessionID string

	input    textinput.Model
	viewport viewport.Model
	ready    bool
	width    int

	lines     []string
	waiting   bool
	streaming string
	quitting  bool
	ended     bool
	err       error
}

func newChatView(ctx context.Context, engine *coaching.Engine, session domain.CoachingSession, intro string) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 2000

	ctx, cancel := context.WithCancel(ctx)
	return &chatView{
		ctx:       ctx,
		cancel:    cancel,
		engine:    engine,
		sessionID: session.ID,
		input:     ti,
		lines:     []string{strings.TrimRight(intro, "\n")},
	}
}

func runChatView(ctx context.Context, engine *coaching.Engine, session domain.CoachingSession, intro string, out io.Writer) error {
	v := newChatView(ctx, engine, session, intro)
	defer v.cancel()
	if _, err := tea.NewProgram(v, tea.WithContext(ctx), tea.WithOutput(out)).Run(); err != nil {
		return fmt.Errorf("running chat: %w", err)
	}
	if !v.ended {
		// Interrupted without /quit; release the session the same way.
		if _, err := quitChat(context.Background(), engine, v.sessionID); err != nil {
			return err
		}
	}
	return v.err
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		height := max(msg.Height-3, 3)
		if !v.ready {
			v.viewport = viewport.New(msg.Width, height)
			v.ready = true
		} else {
			v.viewport.Width = msg.Width
			v.viewport.Height = height
		}
		v.input.Width = max(msg.Width-6, 10)
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if v.waiting {
				// Stop the reply; the session is released once it returns.
				v.quitting = true
				v.cancel()
				return v, nil
			}
			return v.apply(chatCmdQuit)
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			v.viewport, cmd = v.viewport.Update(msg)
			return v, cmd
		case tea.KeyEnter:
			if v.waiting {
				return v, nil
			}
			input := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if input == "" {
				return v, nil
			}
			return v.handleInput(input)
		}

	case streamTickMsg:
		if !v.waiting {
			return v, nil
		}
		if text, ok := v.engine.Streaming(v.sessionID); ok {
			v.streaming = text
			v.refresh()
		}
		return v, streamTick()

	case turnDoneMsg:
		v.waiting = false
		v.streaming = ""
		if v.quitting {
			return v.apply(chatCmdQuit)
		}
		if msg.err != nil {
			notice := turnNotice(msg.err)
			if notice == "" {
				v.err = msg.err
				v.ended = true
				return v, tea.Quit
			}
			v.lines = append(v.lines, formatter.SystemLine(notice))
			if sessionGone(msg.err) {
				v.ended = true
				v.refresh()
				return v, tea.Quit
			}
		} else {
			v.lines = append(v.lines, replyLines(msg.reply, false)...)
		}
		v.refresh()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) View() string {
	var b strings.Builder

	if v.ready {
		b.WriteString(v.viewport.View())
	} else {
		b.WriteString(v.content())
	}
	b.WriteString("\n")

	if v.waiting {
		b.WriteString(formatter.Dim("coach is typing..."))
	}
	b.WriteString("\n")
	b.WriteString(formatter.StyleBlue.Render("you") + formatter.Dim("> "))
	b.WriteString(v.input.View())

	return b.String()
}

// ── input handling ───────────────────────────────────────────────────────────

func (v *chatView) handleInput(input string) (tea.Model, tea.Cmd) {
	if c := parseChatCommand(input); c != chatCmdNone {
		return v.apply(c)
	}

	v.lines = append(v.lines, formatter.UserLine(input))
	v.waiting = true
	v.refresh()
	return v, tea.Batch(v.send(input), streamTick())
}

func (v *chatView) apply(c chatCommand) (tea.Model, tea.Cmd) {
	if v.waiting && c != chatCmdHelp {
		v.lines = append(v.lines, formatter.SystemLine(turnNotice(coaching.ErrTurnInFlight)))
		v.refresh()
		return v, nil
	}
	// v.ctx is cancelled once the user interrupts a reply; the session
	// still has to be released.
	res, err := runChatCommand(context.WithoutCancel(v.ctx), v.engine, v.sessionID, c)
	v.lines = append(v.lines, res.lines...)
	v.refresh()
	if err != nil {
		v.err = err
		v.ended = true
		return v, tea.Quit
	}
	if res.ended {
		v.ended = true
		return v, tea.Quit
	}
	return v, nil
}

func (v *chatView) send(text string) tea.Cmd {
	ctx, engine, id := v.ctx, v.engine, v.sessionID
	return func() tea.Msg {
		reply, err := engine.Send(ctx, id, text, nil)
		return turnDoneMsg{reply: reply, err: err}
	}
}

func streamTick() tea.Cmd {
	return tea.Tick(streamPollInterval, func(time.Time) tea.Msg { return streamTickMsg{} })
}

func (v *chatView) content() string {
	text := strings.Join(v.lines, "\n")
	if v.streaming != "" {
		text += "\n" + formatter.CoachPrefix() + v.streaming
	}
	if v.width > 0 {
		text = lipgloss.NewStyle().Width(v.width).Render(text)
	}
	return text
}

func (v *chatView) refresh() {
	if !v.ready {
		return
	}
	v.viewport.SetContent(v.content())
	v.viewport.GotoBottom()
}
