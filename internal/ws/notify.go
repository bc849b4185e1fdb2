package ws

import (
	"encoding/json"
	"time"
)

type FeedRefreshedEvent struct {
	Type      string `json:"type"`
	Source    string `json:"source"`
	Jobs      int    `json:"jobs"`
	Timestamp string `json:"timestamp"`
}

// Notifier satisfies the feed usecase's broadcaster with a typed event, so
// the usecase never deals in raw frames.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) BroadcastFeedRefresh(sourceName string, count int) {
	if n == nil || n.hub == nil {
		return
	}
	evt := FeedRefreshedEvent{
		Type:      "feed.refreshed",
		Source:    sourceName,
		Jobs:      count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
