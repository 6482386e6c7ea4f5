package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"finsight/internal/core"
)

type EventKind string

const (
	EventCreated EventKind = "transaction.created"
	EventDeleted EventKind = "transaction.deleted"
)

// TransactionEvent announces a change to the transaction store. Year and Month
// locate the affected reporting window; they are zero when the record date is
// unreadable.
type TransactionEvent struct {
	Kind      EventKind            `json:"kind"`
	ID        string               `json:"id"`
	Year      int                  `json:"year"`
	Month     time.Month           `json:"month"`
	Amount    float64              `json:"amount"`
	Type      core.TransactionType `json:"type"`
	Category  core.Category        `json:"category"`
	Timestamp time.Time            `json:"timestamp"`
}

func NewTransactionEvent(kind EventKind, t core.Transaction, at time.Time) *TransactionEvent {
	ev := &TransactionEvent{
		Kind:      kind,
		ID:        t.ID,
		Amount:    t.Amount,
		Type:      t.Type,
		Category:  t.Category,
		Timestamp: at.UTC(),
	}
	if d, ok := t.When(); ok {
		ev.Year, ev.Month = d.Year(), d.Month()
	}
	return ev
}

func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON decodes and sanity-checks an event body.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var ev TransactionEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	switch ev.Kind {
	case EventCreated, EventDeleted:
	default:
		return nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
	if ev.ID == "" {
		return nil, fmt.Errorf("event without transaction id")
	}
	return &ev, nil
}
