package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"topictrail/internal/explorer"
	"topictrail/internal/oracle"
	"topictrail/internal/topic"
)

// stubGenerator answers instantly with deterministic content.
type stubGenerator struct{}

func (stubGenerator) Answer(ctx context.Context, subject string) (oracle.Result, error) {
	return oracle.Result{
		Answer: topic.Answer{
			Explanation: "A short note on " + subject + ".",
			Suggestion:  "Maybe look sideways.",
			Links:       []topic.Link{{Title: subject, URL: "https://example.com/" + subject}},
		},
		Elapsed: time.Millisecond,
		Model:   "stub-model",
	}, nil
}

func (stubGenerator) Art(ctx context.Context, subject string) (string, error) {
	return "art:" + subject, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *Server) {
	t.Helper()
	s := New(Config{Host: "127.0.0.1", Port: 0}, stubGenerator{})
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts, s
}

func createSession(t *testing.T, base string) string {
	t.Helper()
	resp, err := http.Post(base+"/api/sessions", "application/json", nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session status = %d", resp.StatusCode)
	}
	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	if sr.SessionID == "" {
		t.Fatal("empty session id")
	}
	return sr.SessionID
}

func getView(t *testing.T, base, id string) explorer.View {
	t.Helper()
	resp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s", base, id))
	if err != nil {
		t.Fatalf("get view: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get view status = %d", resp.StatusCode)
	}
	var v explorer.View
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return v
}

// awaitSettled polls the view endpoint until the fetch completes.
func awaitSettled(t *testing.T, base, id string) explorer.View {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		v := getView(t, base, id)
		if v.Topic != "" && !v.Loading && !v.ArtPending {
			return v
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("view never settled")
	return explorer.View{}
}

func postNav(t *testing.T, base, id, action string) navResponse {
	t.Helper()
	resp, err := http.Post(fmt.Sprintf("%s/api/sessions/%s/%s", base, id, action), "application/json", nil)
	if err != nil {
		t.Fatalf("post %s: %v", action, err)
	}
	defer resp.Body.Close()
	var nr navResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		t.Fatalf("decode nav response: %v", err)
	}
	return nr
}

func submitTopic(t *testing.T, base, id, subject string) {
	t.Helper()
	body, _ := json.Marshal(topicRequest{Topic: subject})
	resp, err := http.Post(fmt.Sprintf("%s/api/sessions/%s/topic", base, id), "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("submit topic: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("submit status = %d, want 202", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestIndexServed(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}

func TestSubmitTopicAndFetchView(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createSession(t, ts.URL)

	submitTopic(t, ts.URL, id, "Entropy")
	v := awaitSettled(t, ts.URL, id)

	if !topic.Equal(v.Topic, "Entropy") {
		t.Errorf("topic = %q", v.Topic)
	}
	if v.Art != "art:Entropy" {
		t.Errorf("art = %q", v.Art)
	}
	if len(v.Explanation) == 0 {
		t.Error("explanation fragments missing")
	}
}

func TestSubmitRejectsEmptyTopic(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createSession(t, ts.URL)

	body := strings.NewReader(`{"topic": "   "}`)
	resp, err := http.Post(fmt.Sprintf("%s/api/sessions/%s/topic", ts.URL, id), "application/json", body)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUnknownSessionIs404(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/sessions/no-such-session")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestBackForwardNavigation(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createSession(t, ts.URL)

	submitTopic(t, ts.URL, id, "Alpha")
	awaitSettled(t, ts.URL, id)
	submitTopic(t, ts.URL, id, "Beta")
	awaitSettled(t, ts.URL, id)

	if nr := postNav(t, ts.URL, id, "back"); !nr.Moved {
		t.Fatal("back should move")
	}
	v := awaitSettled(t, ts.URL, id)
	if !topic.Equal(v.Topic, "Alpha") {
		t.Errorf("after back, topic = %q", v.Topic)
	}

	if nr := postNav(t, ts.URL, id, "forward"); !nr.Moved {
		t.Fatal("forward should move")
	}
	v = awaitSettled(t, ts.URL, id)
	if !topic.Equal(v.Topic, "Beta") {
		t.Errorf("after forward, topic = %q", v.Topic)
	}

	if nr := postNav(t, ts.URL, id, "forward"); nr.Moved {
		t.Error("forward at trail end must not move")
	}
}

func TestRandomStartsExploration(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createSession(t, ts.URL)

	nr := postNav(t, ts.URL, id, "random")
	if !nr.Moved || nr.Topic == "" {
		t.Fatalf("random response = %+v", nr)
	}
	v := awaitSettled(t, ts.URL, id)
	if !topic.Equal(v.Topic, nr.Topic) {
		t.Errorf("view topic %q != picked %q", v.Topic, nr.Topic)
	}
}

func TestTrailEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createSession(t, ts.URL)

	submitTopic(t, ts.URL, id, "Alpha")
	awaitSettled(t, ts.URL, id)
	submitTopic(t, ts.URL, id, "Beta")
	awaitSettled(t, ts.URL, id)

	resp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s/trail", ts.URL, id))
	if err != nil {
		t.Fatalf("trail: %v", err)
	}
	defer resp.Body.Close()
	var tr trailResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		t.Fatalf("decode trail: %v", err)
	}
	if len(tr.Topics) != 2 || tr.Cursor != 1 {
		t.Errorf("trail = %+v", tr)
	}
	if !tr.CanBack || tr.CanForward {
		t.Errorf("flags = back %v forward %v", tr.CanBack, tr.CanForward)
	}
}

func TestExportHTML(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createSession(t, ts.URL)

	submitTopic(t, ts.URL, id, "Entropy")
	awaitSettled(t, ts.URL, id)

	resp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s/export", ts.URL, id))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	page := buf.String()
	if !strings.Contains(page, "<h1") || !strings.Contains(page, "Entropy") {
		t.Errorf("export missing topic heading:\n%s", page)
	}
	if !strings.Contains(page, "https://example.com/Entropy") {
		t.Error("export missing resource link")
	}
}

func TestExportBeforeAnyTopicIs409(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createSession(t, ts.URL)

	resp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s/export", ts.URL, id))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
}

func TestDeleteSession(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createSession(t, ts.URL)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/sessions/%s", ts.URL, id), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	resp2, err := http.Get(fmt.Sprintf("%s/api/sessions/%s", ts.URL, id))
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", resp2.StatusCode)
	}
}

func TestIdleSessionsAreSwept(t *testing.T) {
	ts, srv := newTestServer(t)
	id := createSession(t, ts.URL)

	if n := srv.sweepIdle(time.Now()); n != 0 {
		t.Fatalf("fresh session swept: %d removed", n)
	}

	srv.mu.Lock()
	srv.sessions[id].lastActive = time.Now().Add(-srv.ttl - time.Minute)
	srv.mu.Unlock()

	if n := srv.sweepIdle(time.Now()); n != 1 {
		t.Fatalf("expected 1 session swept, got %d", n)
	}

	resp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s", ts.URL, id))
	if err != nil {
		t.Fatalf("get after sweep: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status after sweep = %d, want 404", resp.StatusCode)
	}
}

func TestSweepKeepsSessionsWithListeners(t *testing.T) {
	ts, srv := newTestServer(t)
	id := createSession(t, ts.URL)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/sessions/" + id
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Wait for the connection to register before backdating.
	deadline := time.Now().Add(5 * time.Second)
	for {
		srv.mu.Lock()
		registered := srv.sessions[id].hub.clients() > 0
		srv.mu.Unlock()
		if registered {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("websocket never registered with hub")
		}
		time.Sleep(10 * time.Millisecond)
	}

	srv.mu.Lock()
	srv.sessions[id].lastActive = time.Now().Add(-srv.ttl - time.Minute)
	srv.mu.Unlock()

	if n := srv.sweepIdle(time.Now()); n != 0 {
		t.Errorf("session with live listener swept: %d removed", n)
	}
	if _, ok := srv.session(id); !ok {
		t.Error("session disappeared despite connected client")
	}
}

func TestWebSocketStreamsViews(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createSession(t, ts.URL)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/sessions/" + id
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The first message is the current (empty) state.
	var msg viewMessage
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read initial view: %v", err)
	}
	if msg.Type != "view" {
		t.Fatalf("message type = %q", msg.Type)
	}

	submitTopic(t, ts.URL, id, "Entropy")

	// Read until the settled view for the topic arrives.
	deadline := time.Now().Add(5 * time.Second)
	for {
		conn.SetReadDeadline(deadline)
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read view update: %v", err)
		}
		v := msg.View
		if topic.Equal(v.Topic, "Entropy") && !v.Loading && !v.ArtPending {
			if v.Art != "art:Entropy" {
				t.Errorf("streamed art = %q", v.Art)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("never received settled view over websocket")
		}
	}
}
