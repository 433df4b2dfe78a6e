package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(sec int64) time.Time { return time.Unix(sec, 0).UTC() }

func row(id, sender, receiver, content string, t time.Time) ConversationRow {
	return ConversationRow{
		ID: id, SenderID: sender, ReceiverID: receiver, Content: content, Timestamp: t,
		SenderName: "name-" + sender, SenderAvatar: "pic-" + sender,
		ReceiverName: "name-" + receiver, ReceiverAvatar: "pic-" + receiver,
	}
}

func TestAggregateConversationsScenario(t *testing.T) {
	// A<->B at t1 and t2, A->C at t3, supplied newest-first.
	rows := []ConversationRow{
		row("m3", "A", "C", "to c", ts(3)),
		row("m2", "B", "A", "from b", ts(2)),
		row("m1", "A", "B", "to b", ts(1)),
	}

	out := AggregateConversations("A", rows)
	require.Len(t, out, 2)
	assert.Equal(t, "C", out[0].PartnerID)
	assert.Equal(t, ts(3), out[0].LastTimestamp)
	assert.Equal(t, "B", out[1].PartnerID)
	assert.Equal(t, ts(2), out[1].LastTimestamp)
	assert.Equal(t, "from b", out[1].LastMessage)
	assert.Equal(t, "name-B", out[1].PartnerName)
	assert.Equal(t, "pic-B", out[1].PartnerAvatar)
}

func TestAggregateConversationsUnsortedInput(t *testing.T) {
	// Same set fed out of order: the aggregator sorts internally, so the
	// result cannot depend on caller-supplied ordering.
	rows := []ConversationRow{
		row("m1", "A", "B", "to b", ts(1)),
		row("m3", "A", "C", "to c", ts(3)),
		row("m2", "B", "A", "from b", ts(2)),
	}

	out := AggregateConversations("A", rows)
	require.Len(t, out, 2)
	assert.Equal(t, "C", out[0].PartnerID)
	assert.Equal(t, "B", out[1].PartnerID)
	assert.Equal(t, "from b", out[1].LastMessage)
}

func TestAggregateConversationsOnePerPartner(t *testing.T) {
	rows := []ConversationRow{
		row("m4", "B", "A", "latest", ts(4)),
		row("m3", "A", "B", "older", ts(3)),
		row("m2", "B", "A", "oldest", ts(2)),
	}

	out := AggregateConversations("A", rows)
	require.Len(t, out, 1)
	assert.Equal(t, "B", out[0].PartnerID)
	assert.Equal(t, "latest", out[0].LastMessage)
	for _, s := range out {
		assert.NotEqual(t, "A", s.PartnerID)
	}
}

func TestAggregateConversationsSkipsMalformedRows(t *testing.T) {
	rows := []ConversationRow{
		row("m1", "A", "A", "self loop", ts(5)),
		row("m2", "A", "", "unresolved partner", ts(4)),
		row("m3", "B", "A", "fine", ts(3)),
	}

	out := AggregateConversations("A", rows)
	require.Len(t, out, 1)
	assert.Equal(t, "B", out[0].PartnerID)
}

func TestAggregateConversationsEmptyInput(t *testing.T) {
	out := AggregateConversations("A", nil)
	assert.NotNil(t, out)
	assert.Len(t, out, 0)
}

func TestAggregateConversationsTieStableByInputOrder(t *testing.T) {
	same := ts(7)
	rows := []ConversationRow{
		row("m1", "B", "A", "first in input", same),
		row("m2", "B", "A", "second in input", same),
		row("m3", "C", "A", "other partner", same),
	}

	out := AggregateConversations("A", rows)
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].PartnerID)
	assert.Equal(t, "first in input", out[0].LastMessage)
	assert.Equal(t, "C", out[1].PartnerID)
}
