package explorer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"topictrail/internal/oracle"
	"topictrail/internal/textspan"
	"topictrail/internal/topic"
)

// fakeGenerator answers instantly unless a per-topic gate is installed,
// which lets tests hold one request open while another overtakes it.
type fakeGenerator struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	answers map[string]topic.Answer
	artErr  error
	ansErr  error
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{
		gates:   make(map[string]chan struct{}),
		answers: make(map[string]topic.Answer),
	}
}

func (f *fakeGenerator) gate(subject string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[subject] = ch
	return ch
}

func (f *fakeGenerator) answerFor(subject string) topic.Answer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.answers[subject]; ok {
		return a
	}
	return topic.Answer{
		Explanation: "All about " + subject + " in brief.",
		Suggestion:  "Consider a related idea.",
		Links:       []topic.Link{{Title: subject, URL: "https://example.com/" + subject}},
	}
}

func (f *fakeGenerator) wait(ctx context.Context, subject string) error {
	f.mu.Lock()
	ch := f.gates[subject]
	f.mu.Unlock()
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeGenerator) Answer(ctx context.Context, subject string) (oracle.Result, error) {
	if err := f.wait(ctx, subject); err != nil {
		return oracle.Result{}, err
	}
	f.mu.Lock()
	err := f.ansErr
	f.mu.Unlock()
	if err != nil {
		return oracle.Result{}, err
	}
	return oracle.Result{
		Answer:  f.answerFor(subject),
		Elapsed: time.Millisecond,
		Model:   "fake-model",
	}, nil
}

func (f *fakeGenerator) Art(ctx context.Context, subject string) (string, error) {
	if err := f.wait(ctx, subject); err != nil {
		return "", err
	}
	f.mu.Lock()
	err := f.artErr
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	return "art:" + subject, nil
}

// watcher collects snapshots and signals when a predicate holds.
type watcher struct {
	mu    sync.Mutex
	views []View
	cond  *sync.Cond
}

func newWatcher() *watcher {
	w := &watcher{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *watcher) record(v View) {
	w.mu.Lock()
	w.views = append(w.views, v)
	w.cond.Broadcast()
	w.mu.Unlock()
}

// awaitView blocks until some recorded snapshot satisfies pred.
func (w *watcher) awaitView(t *testing.T, pred func(View) bool) View {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	timer := time.AfterFunc(5*time.Second, func() {
		w.mu.Lock()
		w.cond.Broadcast()
		w.mu.Unlock()
	})
	defer timer.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		for _, v := range w.views {
			if pred(v) {
				return v
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for view; saw %d snapshots", len(w.views))
		}
		w.cond.Wait()
	}
}

func settled(subject string) func(View) bool {
	return func(v View) bool {
		return topic.Equal(v.Topic, subject) && !v.Loading && !v.ArtPending
	}
}

func TestSubmitProducesRenderedView(t *testing.T) {
	gen := newFakeGenerator()
	exp := New(gen)
	w := newWatcher()
	exp.OnChange(w.record)

	exp.Submit(context.Background(), "Entropy")
	v := w.awaitView(t, settled("Entropy"))

	if v.Error != "" {
		t.Fatalf("unexpected error: %s", v.Error)
	}
	if textspan.Flatten(v.Explanation) != "All about Entropy in brief." {
		t.Errorf("explanation round-trip broken: %q", textspan.Flatten(v.Explanation))
	}
	if v.Art != "art:Entropy" {
		t.Errorf("art = %q", v.Art)
	}
	if v.Elapsed <= 0 {
		t.Error("elapsed not propagated")
	}
	if v.CanBack || v.CanForward {
		t.Error("single-entry trail must not navigate")
	}
}

func TestSubmitShowsLoadingBeforeContent(t *testing.T) {
	gen := newFakeGenerator()
	exp := New(gen)
	w := newWatcher()
	exp.OnChange(w.record)

	exp.Submit(context.Background(), "Umami")
	w.awaitView(t, settled("Umami"))

	w.mu.Lock()
	first := w.views[0]
	w.mu.Unlock()
	if !first.Loading || !first.ArtPending {
		t.Errorf("first snapshot should be the loading state, got %+v", first)
	}
	if first.Topic != "Umami" {
		t.Errorf("loading snapshot topic = %q", first.Topic)
	}
}

func TestStaleAnswerIsDiscarded(t *testing.T) {
	gen := newFakeGenerator()
	slowGate := gen.gate("Slow Topic")
	exp := New(gen)
	w := newWatcher()
	exp.OnChange(w.record)

	exp.Submit(context.Background(), "Slow Topic")
	exp.Submit(context.Background(), "Fast Topic")
	w.awaitView(t, settled("Fast Topic"))

	// Release the first request; its result must not surface.
	close(slowGate)
	time.Sleep(50 * time.Millisecond)

	v := exp.View()
	if !topic.Equal(v.Topic, "Fast Topic") {
		t.Fatalf("view overwritten by stale result: %q", v.Topic)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, snap := range w.views {
		if strings.Contains(textspan.Flatten(snap.Explanation), "Slow Topic") {
			t.Fatal("stale explanation was published")
		}
	}
}

func TestArtFailureFallsBackToBox(t *testing.T) {
	gen := newFakeGenerator()
	gen.artErr = errors.New("art model down")
	exp := New(gen)
	w := newWatcher()
	exp.OnChange(w.record)

	exp.Submit(context.Background(), "Entropy")
	v := w.awaitView(t, settled("Entropy"))

	if v.Error != "" {
		t.Fatalf("art failure must not fail the view: %s", v.Error)
	}
	if v.Art != oracle.FallbackArt("Entropy") {
		t.Errorf("art = %q, want fallback box", v.Art)
	}
}

func TestAnswerFailureSurfacesError(t *testing.T) {
	gen := newFakeGenerator()
	gen.ansErr = errors.New("provider exploded")
	exp := New(gen)
	w := newWatcher()
	exp.OnChange(w.record)

	exp.Submit(context.Background(), "Entropy")
	v := w.awaitView(t, func(v View) bool { return v.Error != "" })

	if !strings.Contains(v.Error, "provider exploded") {
		t.Errorf("error = %q", v.Error)
	}
	if v.Loading {
		t.Error("loading must clear on failure")
	}
}

func TestBackForwardRefetchAndTrailFlags(t *testing.T) {
	gen := newFakeGenerator()
	exp := New(gen)
	w := newWatcher()
	exp.OnChange(w.record)

	exp.Submit(context.Background(), "Alpha")
	w.awaitView(t, settled("Alpha"))
	exp.Submit(context.Background(), "Beta")
	w.awaitView(t, settled("Beta"))

	if !exp.Back(context.Background()) {
		t.Fatal("Back should succeed")
	}
	v := w.awaitView(t, func(v View) bool {
		return topic.Equal(v.Topic, "Alpha") && !v.Loading && v.CanForward
	})
	if v.CanBack {
		t.Error("at trail start, CanBack must be false")
	}

	if !exp.Forward(context.Background()) {
		t.Fatal("Forward should succeed")
	}
	v = w.awaitView(t, func(v View) bool {
		return topic.Equal(v.Topic, "Beta") && !v.Loading && v.CanBack
	})
	if v.CanForward {
		t.Error("at trail end, CanForward must be false")
	}

	if exp.Forward(context.Background()) {
		t.Error("Forward at trail end must be a no-op")
	}
}

func TestBackOnEmptyTrailIsNoOp(t *testing.T) {
	exp := New(newFakeGenerator())
	if exp.Back(context.Background()) {
		t.Error("Back on empty trail should return false")
	}
	if exp.Forward(context.Background()) {
		t.Error("Forward on empty trail should return false")
	}
}

func TestResubmitCurrentTopicIsNoOp(t *testing.T) {
	gen := newFakeGenerator()
	exp := New(gen)
	w := newWatcher()
	exp.OnChange(w.record)

	if !exp.Submit(context.Background(), "Entropy") {
		t.Fatal("first submit should start a fetch")
	}
	w.awaitView(t, settled("Entropy"))

	w.mu.Lock()
	before := len(w.views)
	w.mu.Unlock()

	// A terminal loop waits for an update only when this returns true;
	// a silent no-op here would leave it hanging until its timeout.
	if exp.Submit(context.Background(), " ENTROPY ") {
		t.Error("resubmitting current topic should report no fetch started")
	}
	time.Sleep(50 * time.Millisecond)

	w.mu.Lock()
	after := len(w.views)
	w.mu.Unlock()
	if after != before {
		t.Errorf("resubmitting current topic triggered %d extra updates", after-before)
	}
}

func TestResubmitAfterFailureRetries(t *testing.T) {
	gen := newFakeGenerator()
	gen.ansErr = errors.New("flaky")
	exp := New(gen)
	w := newWatcher()
	exp.OnChange(w.record)

	exp.Submit(context.Background(), "Entropy")
	w.awaitView(t, func(v View) bool { return v.Error != "" })

	gen.mu.Lock()
	gen.ansErr = nil
	gen.mu.Unlock()

	if !exp.Submit(context.Background(), "Entropy") {
		t.Fatal("resubmit after a failure should start a fetch")
	}
	v := w.awaitView(t, func(v View) bool {
		return !v.Loading && v.Error == "" && len(v.Explanation) > 0
	})
	if !topic.Equal(v.Topic, "Entropy") {
		t.Errorf("retry view topic = %q", v.Topic)
	}
}

func TestRandomVisitsStarterTopic(t *testing.T) {
	gen := newFakeGenerator()
	exp := New(gen)
	w := newWatcher()
	exp.OnChange(w.record)

	picked, started := exp.Random(context.Background())
	if picked == "" {
		t.Fatal("Random returned empty topic")
	}
	if !started {
		t.Fatal("Random on a fresh explorer should start a fetch")
	}
	v := w.awaitView(t, settled(picked))
	if !topic.Equal(v.Topic, picked) {
		t.Errorf("view topic = %q, want %q", v.Topic, picked)
	}
}

func TestUsedLinksSharedAcrossPanes(t *testing.T) {
	gen := newFakeGenerator()
	gen.answers["Entropy"] = topic.Answer{
		Explanation: "Entropy measures disorder.",
		Suggestion:  "Entropy also appears in information theory.",
		Links:       []topic.Link{{Title: "Entropy", URL: "https://example.com/e"}},
	}
	exp := New(gen)
	w := newWatcher()
	exp.OnChange(w.record)

	exp.Submit(context.Background(), "Entropy")
	v := w.awaitView(t, settled("Entropy"))

	count := 0
	for _, f := range append(append([]textspan.Fragment{}, v.Explanation...), v.Suggestion...) {
		if f.Kind == textspan.FragmentLink {
			count++
		}
	}
	if count != 1 {
		t.Errorf("link embedded %d times across panes, want 1", count)
	}
}
