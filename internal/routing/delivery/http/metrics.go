package http

import "sync/atomic"

// metrics holds simple request counters for the /metrics endpoint.
type metrics struct {
	requestsProcessed atomic.Int64
	requestsFailed    atomic.Int64
	eventsStreamed    atomic.Int64
}

type metricsResp struct {
	RequestsProcessed int64 `json:"requests_processed"`
	RequestsFailed    int64 `json:"requests_failed"`
	EventsStreamed    int64 `json:"events_streamed"`
}

func (m *metrics) snapshot() metricsResp {
	return metricsResp{
		RequestsProcessed: m.requestsProcessed.Load(),
		RequestsFailed:    m.requestsFailed.Load(),
		EventsStreamed:    m.eventsStreamed.Load(),
	}
}
