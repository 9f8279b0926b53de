package orchestrator

import (
	"context"
	"fmt"

	"agent-gateway/internal/routing"
	"agent-gateway/internal/routing/catalog"
	"agent-gateway/internal/routing/index"
)

// Process runs the routing pipeline for one request and streams
// progress events. The channel is closed when the pipeline finishes,
// errors out, or the context is cancelled. Any stage failure becomes a
// single terminal event; no error crosses the channel boundary.
func (o *Orchestrator) Process(ctx context.Context, req routing.UserRequest, files []routing.File, token string) <-chan routing.Event {
	ch := make(chan routing.Event)

	go func() {
		defer close(ch)

		// A pre-resolved route skips catalog, shortlist and selection.
		if req.Route != "" {
			o.l.Infof(ctx, "%s: using sticky route %s", LogPrefixProcess, req.Route)
			o.invoke(ctx, ch, req, files, req.Route, token)
			return
		}

		if !o.emit(ctx, ch, internalEvent(MsgProcessing)) {
			return
		}
		if !o.emit(ctx, ch, internalEvent(MsgFetchingAgents)) {
			return
		}

		cards, err := o.catalog.FetchAgentCards(ctx, token)
		if err != nil {
			o.l.Errorf(ctx, "%s: catalog fetch failed: %v", LogPrefixProcess, err)
			o.emit(ctx, ch, terminalEvent(err.Error(), ""))
			return
		}
		if len(cards) == 0 {
			o.emit(ctx, ch, terminalEvent(MsgNoAgents, ""))
			return
		}
		if !o.emit(ctx, ch, internalEvent(MsgReceivedAgents)) {
			return
		}

		if !o.emit(ctx, ch, internalEvent(MsgDetermining)) {
			return
		}

		matches, err := o.shortlist(ctx, req.Query, cards)
		if err != nil {
			o.l.Errorf(ctx, "%s: shortlisting failed: %v", LogPrefixProcess, err)
			o.emit(ctx, ch, terminalEvent(err.Error(), ""))
			return
		}

		out, err := o.selector.Select(ctx, req.Query, trimmedShortlist(cards, matches))
		if err != nil {
			o.l.Errorf(ctx, "%s: selection failed: %v", LogPrefixProcess, err)
			o.emit(ctx, ch, terminalEvent(err.Error(), ""))
			return
		}

		selected := routing.Event{
			Message:            fmt.Sprintf(MsgSelectedFmt, out.AgentName),
			IsInternalResponse: true,
			AgentID:            out.AgentName,
		}
		if !o.emit(ctx, ch, selected) {
			return
		}

		url := catalog.AgentURL(cards, out.AgentName)
		if url == "" {
			// The selection did not resolve to an invocable agent.
			// Fall back to the first catalog entry with a URL.
			name, fallbackURL, ok := catalog.FallbackAgent(cards)
			if !ok {
				o.emit(ctx, ch, terminalEvent(MsgNoAgentURLs, ""))
				return
			}
			o.l.Warnf(ctx, "%s: agent %q not found or has no URL, falling back to %q", LogPrefixProcess, out.AgentName, name)
			url = fallbackURL
		}

		o.invoke(ctx, ch, req, files, url, token)
	}()

	return ch
}

// shortlist embeds the catalog descriptions and returns the top
// matches for the query.
func (o *Orchestrator) shortlist(ctx context.Context, query string, cards []routing.AgentDescriptor) ([]index.Match, error) {
	idx, err := index.Build(ctx, o.l, o.embedder, cards)
	if err != nil {
		return nil, err
	}
	return idx.Search(ctx, query, shortlistSize)
}

// invoke sends the request to the resolved agent URL. The event
// announcing the URL is the one sticky-routing callers must remember;
// it is the only non-internal event of a successful run.
func (o *Orchestrator) invoke(ctx context.Context, ch chan<- routing.Event, req routing.UserRequest, files []routing.File, url, token string) {
	routeEvent := routing.Event{
		Message:            MsgSendingToAgent,
		IsInternalResponse: false,
		URL:                url,
	}
	if !o.emit(ctx, ch, routeEvent) {
		return
	}

	reply, err := o.invoker.SendRequest(ctx, url, req, files, token)
	if err != nil {
		o.l.Errorf(ctx, "%s: agent invocation failed: %v", LogPrefixProcess, err)
		o.emit(ctx, ch, terminalEvent(err.Error(), url))
		return
	}

	o.emit(ctx, ch, routing.Event{
		Message:            reply,
		IsInternalResponse: true,
		URL:                url,
	})
}

// emit delivers one event, giving up when the caller is gone.
func (o *Orchestrator) emit(ctx context.Context, ch chan<- routing.Event, ev routing.Event) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// trimmedShortlist filters the full catalog down to the shortlisted
// names and strips each card to its routing-relevant fields.
func trimmedShortlist(cards []routing.AgentDescriptor, matches []index.Match) []routing.TrimmedCard {
	names := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		names[m.Name] = struct{}{}
	}

	shortlisted := make([]routing.AgentDescriptor, 0, len(matches))
	for _, card := range cards {
		if _, ok := names[card.Name]; ok {
			shortlisted = append(shortlisted, card)
		}
	}
	return catalog.TrimForRouting(shortlisted)
}

func internalEvent(message string) routing.Event {
	return routing.Event{Message: message, IsInternalResponse: true}
}

// terminalEvent is the last event of a failed (or agent-less) run.
func terminalEvent(message, url string) routing.Event {
	return routing.Event{Message: message, IsInternalResponse: false, URL: url}
}
