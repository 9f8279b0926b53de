package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agent-gateway/internal/routing"
	"agent-gateway/internal/routing/orchestrator"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, arg ...any)                    {}
func (nopLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Info(ctx context.Context, arg ...any)                     {}
func (nopLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Warn(ctx context.Context, arg ...any)                     {}
func (nopLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Error(ctx context.Context, arg ...any)                    {}
func (nopLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (nopLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (nopLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (nopLogger) Panic(ctx context.Context, arg ...any)                    {}
func (nopLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type mockCatalog struct {
	calls int
	cards []routing.AgentDescriptor
	err   error
}

func (m *mockCatalog) FetchAgentCards(ctx context.Context, token string) ([]routing.AgentDescriptor, error) {
	m.calls++
	return m.cards, m.err
}

// keywordEmbedder gives each known keyword its own axis so similarity
// is driven by keyword overlap between query and description.
type keywordEmbedder struct {
	calls    int
	keywords []string
}

func (m *keywordEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(m.keywords)+1)
		lower := strings.ToLower(text)
		matched := false
		for j, kw := range m.keywords {
			if strings.Contains(lower, kw) {
				vec[j] = 1
				matched = true
			}
		}
		if !matched {
			vec[len(m.keywords)] = 1
		}
		out[i] = vec
	}
	return out, nil
}

type mockSelector struct {
	calls    int
	gotCards []routing.TrimmedCard
	out      routing.RouterOutput
	err      error
}

func (m *mockSelector) Select(ctx context.Context, query string, cards []routing.TrimmedCard) (routing.RouterOutput, error) {
	m.calls++
	m.gotCards = cards
	return m.out, m.err
}

type mockInvoker struct {
	calls   int
	gotURL  string
	gotReq  routing.UserRequest
	reply   string
	err     error
	healthy bool
}

func (m *mockInvoker) SendRequest(ctx context.Context, agentURL string, req routing.UserRequest, files []routing.File, token string) (string, error) {
	m.calls++
	m.gotURL = agentURL
	m.gotReq = req
	return m.reply, m.err
}

func (m *mockInvoker) HealthCheck(ctx context.Context, agentURL string) bool { return m.healthy }

func collect(t *testing.T, ch <-chan routing.Event) []routing.Event {
	t.Helper()
	var events []routing.Event
	for ev := range ch {
		events = append(events, ev)
	}
	if len(events) == 0 {
		t.Fatal("expected at least one event")
	}
	return events
}

func castleCatalog() []routing.AgentDescriptor {
	cards := []routing.AgentDescriptor{
		{Name: "currency-converter", Description: "Converts currency amounts between denominations", URL: "http://currency:8080"},
		{Name: "image-generator", Description: "Generates an image from a text prompt", URL: "http://imager:8080"},
	}
	fillers := []string{"weather", "calendar", "summarizer", "sql", "email", "music", "maps", "notes"}
	for _, name := range fillers {
		cards = append(cards, routing.AgentDescriptor{
			Name:        name,
			Description: "Handles " + name + " workloads",
			URL:         "http://" + name + ":8080",
		})
	}
	return cards
}

func TestProcessEndToEnd(t *testing.T) {
	cat := &mockCatalog{cards: castleCatalog()}
	emb := &keywordEmbedder{keywords: []string{"image", "currency", "weather", "calendar"}}
	sel := &mockSelector{out: routing.RouterOutput{AgentName: "image-generator"}}
	inv := &mockInvoker{reply: "Here is your castle"}

	o := orchestrator.New(nopLogger{}, cat, emb, sel, inv)
	events := collect(t, o.Process(context.Background(), routing.UserRequest{SessionID: "s1", Query: "Generate an image of a castle"}, nil, "tok"))

	if inv.gotURL != "http://imager:8080" {
		t.Errorf("expected invocation of image-generator, got %s", inv.gotURL)
	}
	if inv.gotReq.Query != "Generate an image of a castle" {
		t.Errorf("query not forwarded: %s", inv.gotReq.Query)
	}

	if len(sel.gotCards) == 0 || len(sel.gotCards) > 2 {
		t.Fatalf("shortlist must have 1..2 entries, got %d", len(sel.gotCards))
	}
	names := map[string]bool{}
	for _, c := range sel.gotCards {
		names[c.Name] = true
	}
	if !names["image-generator"] {
		t.Errorf("shortlist must contain image-generator, got %v", sel.gotCards)
	}

	final := events[len(events)-1]
	if final.Message != "Here is your castle" || !final.IsInternalResponse {
		t.Errorf("final event must carry the agent reply as internal, got %+v", final)
	}

	var routeEvents []routing.Event
	for _, ev := range events {
		if !ev.IsInternalResponse {
			routeEvents = append(routeEvents, ev)
		}
	}
	if len(routeEvents) != 1 || routeEvents[0].URL != "http://imager:8080" {
		t.Errorf("expected exactly one route-announcing event with the agent URL, got %v", routeEvents)
	}
}

func TestProcessDeterministic(t *testing.T) {
	run := func() string {
		cat := &mockCatalog{cards: castleCatalog()}
		emb := &keywordEmbedder{keywords: []string{"image", "currency"}}
		sel := &mockSelector{out: routing.RouterOutput{AgentName: "image-generator"}}
		inv := &mockInvoker{reply: "ok"}
		o := orchestrator.New(nopLogger{}, cat, emb, sel, inv)
		collect(t, o.Process(context.Background(), routing.UserRequest{SessionID: "s1", Query: "Generate an image of a castle"}, nil, "tok"))
		return inv.gotURL
	}
	if first, second := run(), run(); first != second {
		t.Errorf("identical inputs must route identically: %s vs %s", first, second)
	}
}

func TestProcessStickyRoute(t *testing.T) {
	cat := &mockCatalog{cards: castleCatalog()}
	emb := &keywordEmbedder{keywords: []string{"image"}}
	sel := &mockSelector{out: routing.RouterOutput{AgentName: "image-generator"}}
	inv := &mockInvoker{reply: "again"}

	o := orchestrator.New(nopLogger{}, cat, emb, sel, inv)
	req := routing.UserRequest{SessionID: "s1", Query: "another castle", Route: "http://imager:8080"}
	events := collect(t, o.Process(context.Background(), req, nil, "tok"))

	if cat.calls != 0 || emb.calls != 0 || sel.calls != 0 {
		t.Errorf("sticky route must bypass catalog/shortlist/selection: %d %d %d", cat.calls, emb.calls, sel.calls)
	}
	if inv.calls != 1 || inv.gotURL != "http://imager:8080" {
		t.Errorf("expected direct invocation of the sticky route, got %d calls to %s", inv.calls, inv.gotURL)
	}
	if final := events[len(events)-1]; final.Message != "again" {
		t.Errorf("unexpected final event: %+v", final)
	}
}

func TestProcessEmptyCatalog(t *testing.T) {
	cat := &mockCatalog{}
	emb := &keywordEmbedder{}
	sel := &mockSelector{}
	inv := &mockInvoker{}

	o := orchestrator.New(nopLogger{}, cat, emb, sel, inv)
	events := collect(t, o.Process(context.Background(), routing.UserRequest{SessionID: "s1", Query: "anything"}, nil, "tok"))

	final := events[len(events)-1]
	if final.Message != "No agents available in registry" || final.IsInternalResponse || final.URL != "" {
		t.Errorf("unexpected terminal event: %+v", final)
	}
	if emb.calls != 0 || sel.calls != 0 || inv.calls != 0 {
		t.Errorf("empty catalog must stop the pipeline: %d %d %d", emb.calls, sel.calls, inv.calls)
	}
}

func TestProcessOutOfShortlistSelection(t *testing.T) {
	cat := &mockCatalog{cards: castleCatalog()}
	emb := &keywordEmbedder{keywords: []string{"image"}}
	sel := &mockSelector{out: routing.RouterOutput{AgentName: "agent-that-does-not-exist"}}
	inv := &mockInvoker{reply: "ok"}

	o := orchestrator.New(nopLogger{}, cat, emb, sel, inv)
	events := collect(t, o.Process(context.Background(), routing.UserRequest{SessionID: "s1", Query: "castle"}, nil, "tok"))

	// First catalog entry with a URL wins when the name does not resolve.
	if inv.gotURL != "http://currency:8080" {
		t.Errorf("expected fallback to first agent with a URL, got %s", inv.gotURL)
	}
	if final := events[len(events)-1]; final.Message != "ok" {
		t.Errorf("pipeline must complete through the fallback: %+v", final)
	}
}

func TestProcessStageFailures(t *testing.T) {
	t.Run("Catalog Failure", func(t *testing.T) {
		cat := &mockCatalog{err: &routing.CatalogError{Err: errors.New("registry down")}}
		o := orchestrator.New(nopLogger{}, cat, &keywordEmbedder{}, &mockSelector{}, &mockInvoker{})
		events := collect(t, o.Process(context.Background(), routing.UserRequest{SessionID: "s1", Query: "q"}, nil, "tok"))

		final := events[len(events)-1]
		if final.IsInternalResponse || !strings.Contains(final.Message, "registry down") {
			t.Errorf("unexpected terminal event: %+v", final)
		}
	})

	t.Run("Selection Failure", func(t *testing.T) {
		sel := &mockSelector{err: &routing.EngineError{Err: errors.New("model quota exceeded")}}
		inv := &mockInvoker{}
		o := orchestrator.New(nopLogger{}, &mockCatalog{cards: castleCatalog()}, &keywordEmbedder{keywords: []string{"image"}}, sel, inv)
		events := collect(t, o.Process(context.Background(), routing.UserRequest{SessionID: "s1", Query: "castle image"}, nil, "tok"))

		final := events[len(events)-1]
		if final.IsInternalResponse || !strings.Contains(final.Message, "model quota exceeded") {
			t.Errorf("unexpected terminal event: %+v", final)
		}
		if inv.calls != 0 {
			t.Errorf("no invocation after a selection failure, got %d", inv.calls)
		}
	})

	t.Run("Invocation Failure Carries URL", func(t *testing.T) {
		inv := &mockInvoker{err: &routing.AgentClientError{Err: errors.New("agent timed out")}}
		sel := &mockSelector{out: routing.RouterOutput{AgentName: "image-generator"}}
		o := orchestrator.New(nopLogger{}, &mockCatalog{cards: castleCatalog()}, &keywordEmbedder{keywords: []string{"image"}}, sel, inv)
		events := collect(t, o.Process(context.Background(), routing.UserRequest{SessionID: "s1", Query: "castle image"}, nil, "tok"))

		final := events[len(events)-1]
		if final.IsInternalResponse || final.URL != "http://imager:8080" || !strings.Contains(final.Message, "agent timed out") {
			t.Errorf("unexpected terminal event: %+v", final)
		}
	})
}

func TestProcessCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := orchestrator.New(nopLogger{}, &mockCatalog{cards: castleCatalog()}, &keywordEmbedder{}, &mockSelector{}, &mockInvoker{})
	ch := o.Process(ctx, routing.UserRequest{SessionID: "s1", Query: "q"}, nil, "tok")

	// Nobody reads events; the producer must still terminate and close.
	for range ch {
	}
}

func TestHealthCheck(t *testing.T) {
	o := orchestrator.New(nopLogger{}, &mockCatalog{}, &keywordEmbedder{}, &mockSelector{}, &mockInvoker{})
	status := o.HealthCheck(context.Background())
	if status.Router != "healthy" {
		t.Errorf("expected healthy router, got %+v", status)
	}
	for _, component := range []string{"agent_registry", "vector_store", "routing_engine", "agent_client"} {
		if status.Components[component] != "healthy" {
			t.Errorf("component %s unexpectedly %s", component, status.Components[component])
		}
	}
}
