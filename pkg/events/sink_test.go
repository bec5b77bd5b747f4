package events_test

import (
	"bytes"
	"math/big"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"crowdfund/pkg/campaign"
	"crowdfund/pkg/events"
)

func TestCaptureSink(t *testing.T) {
	sink := events.NewCaptureSink()

	sink.Emit(campaign.Event{ID: "1", Type: campaign.EventContribution, RequestIndex: -1})
	sink.Emit(campaign.Event{ID: "2", Type: campaign.EventVoteCast, RequestIndex: 0})
	sink.Emit(campaign.Event{ID: "3", Type: campaign.EventContribution, RequestIndex: -1})

	all := sink.Events()
	assert.Len(t, all, 3)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "3", all[2].ID)

	contributions := sink.ByType(campaign.EventContribution)
	assert.Len(t, contributions, 2)
	assert.Empty(t, sink.ByType(campaign.EventRefund))
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := events.NewLogSink(zerolog.New(&buf))

	sink.Emit(campaign.Event{
		ID:           "abc",
		Type:         campaign.EventPayment,
		Address:      "0xrecipient",
		Amount:       big.NewInt(700),
		RequestIndex: 2,
		Time:         time.Unix(1700000000, 0),
	})

	out := buf.String()
	assert.Contains(t, out, `"type":"payment"`)
	assert.Contains(t, out, `"amount":"700"`)
	assert.Contains(t, out, `"request":2`)
}
