package coaching

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/llm"
	"github.com/alexanderramin/dayframe/internal/planparse"
)

// ErrNoPlan indicates the transcript holds nothing that parses as a plan.
var ErrNoPlan = errors.New("no plan found in conversation")

// errNoModel is the fallback cause when no chat client is configured.
var errNoModel = fmt.Errorf("%w: no model configured", llm.ErrUnavailable)

// Turn outcomes reported to the TurnObserver.
const (
	OutcomeReply    = "reply"
	OutcomeFallback = "fallback"
	OutcomeRejected = "rejected"
)

// TurnObserver receives conversation-level events for metrics.
type TurnObserver interface {
	OnTurn(flow domain.Flow, outcome string)
	OnFallback(flow domain.Flow, phase domain.Phase)
	OnPlanSaved(flow domain.Flow)
}

type noopTurnObserver struct{}

func (noopTurnObserver) OnTurn(domain.Flow, string)           {}
func (noopTurnObserver) OnFallback(domain.Flow, domain.Phase) {}
func (noopTurnObserver) OnPlanSaved(domain.Flow)              {}

// Reply is the result of one user turn.
type Reply struct {
	Message domain.Message
	Session domain.CoachingSession

	// Fallback is set when Message holds static copy instead of a model
	// reply. Any chunks already streamed should be replaced by Message.
	Fallback bool

	// Plan is set when this turn confirmed and saved a plan.
	Plan *domain.DailyNotePlan
}

type activeSession struct {
	session  domain.CoachingSession
	seed     Seed
	messages []domain.Message
	inflight *InFlightReply
}

// Engine runs coaching conversations. Turns within one session are
// strictly sequential; different sessions may be driven concurrently.
type Engine struct {
	store    Store
	client   llm.ChatClient
	loader   *ContextLoader
	window   *TranscriptWindow
	log      *zap.Logger
	observer TurnObserver
	now      func() time.Time
	newID    func() string
	persist  *persistQueue

	mu       sync.Mutex
	sessions map[string]*activeSession
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

func WithTurnObserver(o TurnObserver) Option {
	return func(e *Engine) { e.observer = o }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides uuid generation, for tests.
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// WithTranscriptWindow limits how much history is sent to the model.
func WithTranscriptWindow(w *TranscriptWindow) Option {
	return func(e *Engine) { e.window = w }
}

// NewEngine creates an engine. A nil client makes every reply a fallback.
// Close must be called to stop the background writer.
func NewEngine(store Store, client llm.ChatClient, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		client:   client,
		log:      zap.NewNop(),
		observer: noopTurnObserver{},
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: make(map[string]*activeSession),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.observer == nil {
		e.observer = noopTurnObserver{}
	}
	e.log = e.log.Named("coaching")
	e.loader = NewContextLoader(store, e.log)
	e.persist = newPersistQueue(e.log)
	return e
}

// Start creates a session for flow and computes its carryover.
func (e *Engine) Start(ctx context.Context, userID string, flow domain.Flow) (domain.CoachingSession, error) {
	if !domain.ValidFlows[flow] {
		return domain.CoachingSession{}, fmt.Errorf("unknown flow %q", flow)
	}
	now := e.now()
	s := domain.CoachingSession{
		ID:             e.newID(),
		UserID:         userID,
		Flow:           flow,
		State:          domain.SessionCreated,
		StartedAt:      now,
		LastActivityAt: now,
	}
	e.persistSession(s)
	seed := e.loader.Seed(ctx, userID, domain.TruncateDate(now))

	e.mu.Lock()
	e.sessions[s.ID] = &activeSession{session: s, seed: seed}
	e.mu.Unlock()

	e.log.Info("session started",
		zap.String("session_id", s.ID),
		zap.String("user_id", userID),
		zap.String("flow", string(flow)),
		zap.Int("carryover", len(seed.Carryover)),
	)
	return s, nil
}

// Send runs one user turn. onChunk, when non-nil, receives reply fragments
// as they stream. A second Send for the same session while a reply is
// streaming fails with ErrTurnInFlight. State errors are returned before
// anything is recorded.
func (e *Engine) Send(ctx context.Context, sessionID, text string, onChunk func(string)) (Reply, error) {
	e.mu.Lock()
	as, ok := e.sessions[sessionID]
	if !ok {
		e.mu.Unlock()
		return Reply{}, ErrSessionNotFound
	}
	if as.inflight != nil {
		e.mu.Unlock()
		e.observer.OnTurn(as.session.Flow, OutcomeRejected)
		return Reply{}, ErrTurnInFlight
	}
	if err := Transition(&as.session, domain.SessionInProgress); err != nil {
		flow := as.session.Flow
		e.mu.Unlock()
		e.observer.OnTurn(flow, OutcomeRejected)
		return Reply{}, err
	}

	now := e.now()
	prevAssistant := lastAssistant(as.messages)
	userMsg := domain.Message{
		ID:        e.newID(),
		SessionID: as.session.ID,
		UserID:    as.session.UserID,
		Role:      domain.RoleUser,
		Content:   text,
		Metadata:  map[string]string{"turn": strconv.Itoa(as.session.TurnCount + 1)},
		CreatedAt: now,
	}
	as.messages = append(as.messages, userMsg)
	as.session.LastActivityAt = now
	as.inflight = newInFlightReply(as.session, now)

	snapshot := as.session
	seed := as.seed
	transcript := append([]domain.Message(nil), as.messages...)
	inflight := as.inflight
	e.mu.Unlock()

	e.persistMessage(userMsg)

	cctx := e.loader.Load(ctx, snapshot, seed, now)
	prompt := BuildPrompt(cctx)

	meta := map[string]string{"turn": strconv.Itoa(snapshot.TurnCount + 1)}
	fallback := false
	resp, err := e.stream(ctx, snapshot.Flow, prompt, transcript, func(chunk string) {
		inflight.Append(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	})
	if err != nil {
		phase := PhaseFor(snapshot.Flow, snapshot.TurnCount)
		fb := &FallbackError{
			Fallback: FallbackResponse(snapshot.Flow, phase),
			Flow:     snapshot.Flow,
			Phase:    phase,
			Cause:    err,
		}
		e.log.Warn("model reply replaced by fallback",
			zap.String("session_id", snapshot.ID),
			zap.String("user_id", snapshot.UserID),
			zap.Error(fb),
		)
		inflight.Replace(fb.Fallback)
		meta["fallback"] = string(phase)
		fallback = true
		e.observer.OnFallback(snapshot.Flow, phase)
	} else if resp.Model != "" {
		meta["model"] = resp.Model
	}

	reply := inflight.Finalize(e.newID(), meta, e.now())

	e.mu.Lock()
	as.session.TurnCount++
	as.session.LastActivityAt = reply.CreatedAt
	as.messages = append(as.messages, reply)
	as.inflight = nil

	var saved *domain.DailyNotePlan
	var rawDump string
	if ShouldSavePlan(text, prevAssistant) {
		res := planparse.Extract(as.messages)
		if !res.Empty() && Transition(&as.session, domain.SessionPlanConfirmed) == nil {
			plan := res.Plan()
			saved = &plan
			rawDump = res.RawDump
		}
	}
	final := as.session
	e.mu.Unlock()

	e.persistMessage(reply)
	if saved != nil {
		e.persistPlan(final, *saved, rawDump)
		e.observer.OnPlanSaved(final.Flow)
	}
	e.persistSession(final)

	outcome := OutcomeReply
	if fallback {
		outcome = OutcomeFallback
	}
	e.observer.OnTurn(final.Flow, outcome)

	return Reply{Message: reply, Session: final, Fallback: fallback, Plan: saved}, nil
}

func (e *Engine) stream(ctx context.Context, flow domain.Flow, prompt string, transcript []domain.Message, onChunk func(string)) (*llm.ChatResponse, error) {
	if e.client == nil {
		return nil, errNoModel
	}
	var msgs []llm.ChatMessage
	if e.window != nil {
		msgs = e.window.Fit(prompt, transcript)
	} else {
		msgs = toChatMessages(transcript)
	}
	return e.client.Stream(ctx, llm.ChatRequest{
		Task:         taskFor(flow),
		SystemPrompt: prompt,
		Messages:     msgs,
	}, onChunk)
}

// Confirm extracts and saves the plan from the whole transcript without
// waiting for a confirmation phrase.
func (e *Engine) Confirm(ctx context.Context, sessionID string) (domain.DailyNotePlan, error) {
	e.mu.Lock()
	as, ok := e.sessions[sessionID]
	if !ok {
		e.mu.Unlock()
		return domain.DailyNotePlan{}, ErrSessionNotFound
	}
	if as.inflight != nil {
		e.mu.Unlock()
		return domain.DailyNotePlan{}, ErrTurnInFlight
	}
	if err := Validate(&as.session, domain.SessionPlanConfirmed); err != nil {
		e.mu.Unlock()
		return domain.DailyNotePlan{}, err
	}
	res := planparse.Extract(as.messages)
	if res.Empty() {
		e.mu.Unlock()
		return domain.DailyNotePlan{}, ErrNoPlan
	}
	as.session.State = domain.SessionPlanConfirmed
	as.session.LastActivityAt = e.now()
	final := as.session
	e.mu.Unlock()

	plan := res.Plan()
	e.persistPlan(final, plan, res.RawDump)
	e.persistSession(final)
	e.observer.OnPlanSaved(final.Flow)
	return plan, nil
}

// Complete closes a session whose plan is confirmed and records the
// user's streak for check-in flows.
func (e *Engine) Complete(ctx context.Context, sessionID string) (domain.CoachingSession, error) {
	final, err := e.finish(sessionID, domain.SessionCompleted)
	if err != nil {
		return domain.CoachingSession{}, err
	}
	if final.Flow == domain.FlowMorning || final.Flow == domain.FlowEvening {
		day := domain.TruncateDate(*final.CompletedAt)
		e.persist.submit("record_streak", final.UserID, func(ctx context.Context) error {
			return e.store.RecordStreak(ctx, final.UserID, final.Flow, day)
		})
	}
	return final, nil
}

// Abandon ends an in-progress session. A session that never received a
// turn is released without a transition.
func (e *Engine) Abandon(ctx context.Context, sessionID string) (domain.CoachingSession, error) {
	e.mu.Lock()
	as, ok := e.sessions[sessionID]
	if ok && as.session.State == domain.SessionCreated && as.inflight == nil {
		delete(e.sessions, sessionID)
		e.mu.Unlock()
		return as.session, nil
	}
	e.mu.Unlock()
	return e.finish(sessionID, domain.SessionAbandoned)
}

func (e *Engine) finish(sessionID string, to domain.SessionState) (domain.CoachingSession, error) {
	e.mu.Lock()
	as, ok := e.sessions[sessionID]
	if !ok {
		e.mu.Unlock()
		return domain.CoachingSession{}, ErrSessionNotFound
	}
	if as.inflight != nil {
		e.mu.Unlock()
		return domain.CoachingSession{}, ErrTurnInFlight
	}
	if err := Transition(&as.session, to); err != nil {
		e.mu.Unlock()
		return domain.CoachingSession{}, err
	}
	now := e.now()
	as.session.LastActivityAt = now
	as.session.CompletedAt = &now
	final := as.session
	delete(e.sessions, sessionID)
	e.mu.Unlock()

	e.persistSession(final)
	e.log.Info("session ended",
		zap.String("session_id", final.ID),
		zap.String("user_id", final.UserID),
		zap.String("state", string(final.State)),
		zap.Int("turns", final.TurnCount),
	)
	return final, nil
}

// ExpireIdle abandons in-progress sessions with no turn for IdleTimeout
// and releases untouched ones. Sessions with a streaming reply are left
// alone. It returns the IDs it ended.
func (e *Engine) ExpireIdle(now time.Time) []string {
	e.mu.Lock()
	var idle []string
	for id, as := range e.sessions {
		if as.inflight != nil || now.Sub(as.session.LastActivityAt) < IdleTimeout {
			continue
		}
		switch as.session.State {
		case domain.SessionInProgress:
			idle = append(idle, id)
		case domain.SessionCreated:
			delete(e.sessions, id)
		}
	}
	e.mu.Unlock()

	expired := make([]string, 0, len(idle))
	for _, id := range idle {
		if _, err := e.finish(id, domain.SessionAbandoned); err == nil {
			expired = append(expired, id)
		}
	}
	return expired
}

// Session returns a snapshot of an active session.
func (e *Engine) Session(sessionID string) (domain.CoachingSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	as, ok := e.sessions[sessionID]
	if !ok {
		return domain.CoachingSession{}, false
	}
	return as.session, true
}

// Transcript returns a copy of the finalized messages of an active session.
func (e *Engine) Transcript(sessionID string) []domain.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	as, ok := e.sessions[sessionID]
	if !ok {
		return nil
	}
	return append([]domain.Message(nil), as.messages...)
}

// Streaming returns the partial reply of the turn in flight, if any.
func (e *Engine) Streaming(sessionID string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	as, ok := e.sessions[sessionID]
	if !ok || as.inflight == nil {
		return "", false
	}
	return as.inflight.Text(), true
}

// Prompt assembles the instruction the next turn of sessionID would use.
func (e *Engine) Prompt(ctx context.Context, sessionID string) (string, error) {
	e.mu.Lock()
	as, ok := e.sessions[sessionID]
	if !ok {
		e.mu.Unlock()
		return "", ErrSessionNotFound
	}
	snapshot, seed := as.session, as.seed
	e.mu.Unlock()
	return BuildPrompt(e.loader.Load(ctx, snapshot, seed, e.now())), nil
}

// Wait blocks until all queued writes have reached the store.
func (e *Engine) Wait() {
	e.persist.wait()
}

// Close drains queued writes and stops the background writer.
func (e *Engine) Close() {
	e.persist.close()
}

func (e *Engine) persistMessage(msg domain.Message) {
	e.persist.submit("append_message", msg.UserID, func(ctx context.Context) error {
		return e.store.AppendMessage(ctx, msg)
	})
}

func (e *Engine) persistSession(s domain.CoachingSession) {
	e.persist.submit("save_session", s.UserID, func(ctx context.Context) error {
		return e.store.SaveSession(ctx, s)
	})
}

func (e *Engine) persistPlan(s domain.CoachingSession, plan domain.DailyNotePlan, rawDump string) {
	date := domain.TruncateDate(s.LastActivityAt)
	// The caller keeps its own copy of the plan; the store may rewrite
	// completion flags on this one.
	plan = plan.Clone()
	e.persist.submit("upsert_plan", s.UserID, func(ctx context.Context) error {
		return e.store.UpsertPlan(ctx, s.UserID, date, plan, rawDump)
	})
}

func lastAssistant(msgs []domain.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == domain.RoleAssistant {
			return msgs[i].Content
		}
	}
	return ""
}

func toChatMessages(msgs []domain.Message) []llm.ChatMessage {
	out := make([]llm.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case domain.RoleUser:
			out = append(out, llm.ChatMessage{Role: llm.RoleUser, Content: m.Content})
		case domain.RoleAssistant:
			out = append(out, llm.ChatMessage{Role: llm.RoleAssistant, Content: m.Content})
		}
	}
	return out
}

func taskFor(flow domain.Flow) llm.TaskType {
	if flow == domain.FlowMorning || flow == domain.FlowEvening {
		return llm.TaskCheckin
	}
	return llm.TaskChat
}
