package events

import (
	"sync"

	"github.com/rs/zerolog"

	"crowdfund/pkg/campaign"
)

// LogSink writes campaign events to a structured log. It never fails and
// never blocks the emitting operation.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a sink that logs events through the given logger
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit logs the event
func (s *LogSink) Emit(event campaign.Event) {
	entry := s.logger.Info().
		Str("event_id", event.ID).
		Str("type", string(event.Type)).
		Str("address", event.Address).
		Time("time", event.Time)
	if event.Amount != nil {
		entry = entry.Str("amount", event.Amount.String())
	}
	if event.RequestIndex >= 0 {
		entry = entry.Int("request", event.RequestIndex)
	}
	entry.Msg("campaign event")
}

// CaptureSink records every emitted event in order, for assertions in tests
type CaptureSink struct {
	events []campaign.Event
	mutex  sync.Mutex
}

// NewCaptureSink creates an empty capture sink
func NewCaptureSink() *CaptureSink {
	return &CaptureSink{}
}

// Emit records the event
func (s *CaptureSink) Emit(event campaign.Event) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.events = append(s.events, event)
}

// Events returns the recorded events in emission order
func (s *CaptureSink) Events() []campaign.Event {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	out := make([]campaign.Event, len(s.events))
	copy(out, s.events)
	return out
}

// ByType returns the recorded events of the given type
func (s *CaptureSink) ByType(eventType campaign.EventType) []campaign.Event {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var out []campaign.Event
	for _, event := range s.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}
