// Package explorer drives an interactive topic-exploration session: it
// owns the navigation trail, issues generation requests, and publishes
// rendered views while discarding results from superseded requests.
package explorer

import (
	"context"
	"sync"
	"time"

	"topictrail/internal/history"
	"topictrail/internal/logger"
	"topictrail/internal/oracle"
	"topictrail/internal/textspan"
	"topictrail/internal/topic"
)

// Generator produces the content for a topic. *oracle.Service satisfies
// it; tests supply controllable fakes.
type Generator interface {
	Answer(ctx context.Context, subject string) (oracle.Result, error)
	Art(ctx context.Context, subject string) (string, error)
}

// View is an immutable snapshot of session state, safe to hand to
// callbacks and to serialize for clients.
type View struct {
	Topic       string              `json:"topic"`
	Loading     bool                `json:"loading"`
	Explanation []textspan.Fragment `json:"explanation,omitempty"`
	Suggestion  []textspan.Fragment `json:"suggestion,omitempty"`
	Links       []topic.Link        `json:"links,omitempty"`
	Art         string              `json:"art,omitempty"`
	ArtPending  bool                `json:"artPending"`
	Error       string              `json:"error,omitempty"`
	Elapsed     time.Duration       `json:"elapsed"`
	Model       string              `json:"model,omitempty"`
	CanBack     bool                `json:"canBack"`
	CanForward  bool                `json:"canForward"`
	Trail       []string            `json:"trail"`
	Cursor      int                 `json:"cursor"`
}

// Explorer is safe for concurrent use. Every navigation starts a new
// request generation; results carrying an older generation are dropped
// on arrival, so a stale answer can never overwrite a newer topic.
type Explorer struct {
	gen Generator

	mu       sync.Mutex
	trail    *history.Trail
	view     View
	seq      uint64
	cancel   context.CancelFunc
	onChange func(View)
}

// New creates an Explorer with an empty trail.
func New(gen Generator) *Explorer {
	return &Explorer{
		gen:   gen,
		trail: history.New(),
		view:  View{Cursor: -1, Trail: []string{}},
	}
}

// OnChange registers a callback invoked with a snapshot after every
// state change. The callback runs outside the explorer's lock, so it
// may call back into the Explorer.
func (e *Explorer) OnChange(fn func(View)) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

// View returns the current snapshot.
func (e *Explorer) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view
}

// Submit visits a topic typed or clicked by the user and reports
// whether a fetch started. Re-submitting the topic already on screen is
// a no-op (false) unless the previous attempt failed; callers rely on
// the return to avoid waiting for an update that will never come.
func (e *Explorer) Submit(ctx context.Context, raw string) bool {
	s := topic.Normalize(raw)
	if s == "" {
		return false
	}

	e.mu.Lock()
	pushed := e.trail.Push(s)
	if !pushed && topic.Equal(e.view.Topic, s) && e.view.Error == "" && !e.view.Loading {
		e.mu.Unlock()
		return false
	}
	e.fetchLocked(ctx, s)
	return true
}

// Back navigates to the previous topic and refetches its content.
// Returns false at the start of the trail.
func (e *Explorer) Back(ctx context.Context) bool {
	e.mu.Lock()
	s, ok := e.trail.Back()
	if !ok {
		e.mu.Unlock()
		return false
	}
	e.fetchLocked(ctx, s)
	return true
}

// Forward navigates to the next topic and refetches its content.
// Returns false at the end of the trail.
func (e *Explorer) Forward(ctx context.Context) bool {
	e.mu.Lock()
	s, ok := e.trail.Forward()
	if !ok {
		e.mu.Unlock()
		return false
	}
	e.fetchLocked(ctx, s)
	return true
}

// Random visits a random starter topic and returns it. The second
// return is false when the draw happened to be the topic already on
// screen, in which case nothing was fetched.
func (e *Explorer) Random(ctx context.Context) (string, bool) {
	s := topic.Random()
	return s, e.Submit(ctx, s)
}

// fetchLocked starts a new request generation for subject. The caller
// holds e.mu; fetchLocked releases it before notifying.
func (e *Explorer) fetchLocked(ctx context.Context, subject string) {
	if e.cancel != nil {
		e.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.seq++
	mySeq := e.seq

	e.view = View{
		Topic:      subject,
		Loading:    true,
		ArtPending: true,
		CanBack:    e.trail.CanBack(),
		CanForward: e.trail.CanForward(),
		Trail:      e.trail.Topics(),
		Cursor:     e.trail.Cursor(),
	}
	snapshot := e.view
	fn := e.onChange
	e.mu.Unlock()
	notify(fn, snapshot)

	go e.fetchAnswer(reqCtx, mySeq, subject)
	go e.fetchArt(reqCtx, mySeq, subject)
}

func (e *Explorer) fetchAnswer(ctx context.Context, mySeq uint64, subject string) {
	res, err := e.gen.Answer(ctx, subject)

	e.mu.Lock()
	if mySeq != e.seq {
		e.mu.Unlock()
		logger.Debugf("discarding stale answer for %q", subject)
		return
	}

	e.view.Loading = false
	e.view.Elapsed = res.Elapsed
	if err != nil {
		logger.Warnf("answer for %q failed: %v", subject, err)
		e.view.Error = err.Error()
	} else {
		used := textspan.NewUsedSet()
		e.view.Explanation = textspan.Render(res.Answer.Explanation, res.Answer.Links, used)
		e.view.Suggestion = textspan.Render(res.Answer.Suggestion, res.Answer.Links, used)
		e.view.Links = res.Answer.Links
		e.view.Model = res.Model
	}
	snapshot := e.view
	fn := e.onChange
	e.mu.Unlock()
	notify(fn, snapshot)
}

func (e *Explorer) fetchArt(ctx context.Context, mySeq uint64, subject string) {
	art, err := e.gen.Art(ctx, subject)
	if err != nil {
		logger.Debugf("art for %q failed, using fallback: %v", subject, err)
		art = oracle.FallbackArt(subject)
	}

	e.mu.Lock()
	if mySeq != e.seq {
		e.mu.Unlock()
		return
	}
	e.view.Art = art
	e.view.ArtPending = false
	snapshot := e.view
	fn := e.onChange
	e.mu.Unlock()
	notify(fn, snapshot)
}

func notify(fn func(View), v View) {
	if fn != nil {
		fn(v)
	}
}
