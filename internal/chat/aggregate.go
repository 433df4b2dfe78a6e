package chat

import (
	"sort"
	"time"
)

// ConversationSummary is derived, never persisted: the most recent exchange
// with one distinct partner of the current user.
type ConversationSummary struct {
	PartnerID     string    `json:"partner_id"`
	PartnerName   string    `json:"partner_name"`
	PartnerAvatar string    `json:"partner_avatar"`
	LastMessage   string    `json:"last_message"`
	LastTimestamp time.Time `json:"last_timestamp"`
}

// AggregateConversations groups a flat set of message rows into one summary
// per conversation partner. The input is stable-sorted newest-first here, so
// callers owe no ordering contract; grouping is then first-seen-wins per
// partner. Rows whose partner is the user itself or whose partner identity
// did not resolve are skipped. Output is ordered by last message time
// descending, ties stable.
func AggregateConversations(userID string, rows []ConversationRow) []ConversationSummary {
	sorted := make([]ConversationRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	seen := make(map[string]struct{}, len(sorted))
	out := make([]ConversationSummary, 0, len(sorted))
	for _, row := range sorted {
		partnerID := row.SenderID
		name, avatar := row.SenderName, row.SenderAvatar
		if row.SenderID == userID {
			partnerID = row.ReceiverID
			name, avatar = row.ReceiverName, row.ReceiverAvatar
		}
		if partnerID == "" || partnerID == userID {
			continue
		}
		if _, ok := seen[partnerID]; ok {
			continue
		}
		seen[partnerID] = struct{}{}
		out = append(out, ConversationSummary{
			PartnerID:     partnerID,
			PartnerName:   name,
			PartnerAvatar: avatar,
			LastMessage:   row.Content,
			LastTimestamp: row.Timestamp,
		})
	}
	return out
}
