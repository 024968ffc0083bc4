package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tradegate/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type messageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// AlertDispatcher broadcasts accepted decisions to subscribed chats. It
// implements service.DecisionNotifier.
type AlertDispatcher struct {
	sender messageSender

	mu          sync.RWMutex
	subscribers map[int64]struct{}
}

func NewAlertDispatcher(sender messageSender) *AlertDispatcher {
	return &AlertDispatcher{
		sender:      sender,
		subscribers: make(map[int64]struct{}),
	}
}

func (d *AlertDispatcher) Subscribe(chatID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.subscribers[chatID]; exists {
		return false
	}
	d.subscribers[chatID] = struct{}{}
	return true
}

func (d *AlertDispatcher) Unsubscribe(chatID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.subscribers[chatID]; !exists {
		return false
	}
	delete(d.subscribers, chatID)
	return true
}

func (d *AlertDispatcher) IsSubscribed(chatID int64) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, exists := d.subscribers[chatID]
	return exists
}

func (d *AlertDispatcher) SubscriberCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subscribers)
}

// NotifyDecision renders the decision and sends it to every subscribed chat.
// Rejected decisions are never dispatched.
func (d *AlertDispatcher) NotifyDecision(ctx context.Context, decision domain.Decision) error {
	_ = ctx
	if d == nil || d.sender == nil || !decision.Accepted {
		return nil
	}

	chatIDs := d.snapshotSubscribers()
	if len(chatIDs) == 0 {
		return nil
	}

	msg := FormatDecision(decision)
	var failures []string
	for _, chatID := range chatIDs {
		if _, err := d.sender.Send(&tele.Chat{ID: chatID}, msg); err != nil {
			failures = append(failures, fmt.Sprintf("chat %d: %v", chatID, err))
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("failed sending %d alerts: %s", len(failures), strings.Join(failures, "; "))
	}
	return nil
}

func (d *AlertDispatcher) snapshotSubscribers() []int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	chatIDs := make([]int64, 0, len(d.subscribers))
	for chatID := range d.subscribers {
		chatIDs = append(chatIDs, chatID)
	}
	sort.Slice(chatIDs, func(i, j int) bool { return chatIDs[i] < chatIDs[j] })
	return chatIDs
}

func parseAlertMode(args []string) (string, error) {
	if len(args) == 0 {
		return "status", nil
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "on":
		return "on", nil
	case "off":
		return "off", nil
	case "status":
		return "status", nil
	default:
		return "", fmt.Errorf("invalid mode")
	}
}

// FormatDecision renders the canonical decision fields into the message the
// notification layer delivers.
func FormatDecision(d domain.Decision) string {
	lines := []string{
		fmt.Sprintf("%s %s", strings.ToUpper(string(d.Direction)), d.Symbol),
	}
	if d.Interval != "" {
		lines[0] += " (" + d.Interval + ")"
	}
	if d.Levels != nil {
		lines = append(lines,
			fmt.Sprintf("Entry: %.2f", d.Levels.Entry),
			fmt.Sprintf("Stop: %.2f", d.Levels.StopLoss),
			fmt.Sprintf("TP1: %.2f", d.Levels.TakeProfit1),
			fmt.Sprintf("TP2: %.2f", d.Levels.TakeProfit2),
		)
	}
	if d.Review != "" {
		lines = append(lines, "Review: "+d.Review)
	}
	return strings.Join(lines, "\n")
}
