// Package events publishes expense lifecycle notifications to RabbitMQ so
// downstream consumers (reporting, notifications) can react to mutations
// without the web app knowing about them.
package events

import (
	"encoding/json"
	"time"
)

const (
	ExpenseCreated = "expense.created"
	ExpenseUpdated = "expense.updated"
	ExpenseDeleted = "expense.deleted"
)

// ExpenseEvent is the wire format for expense mutation messages.
type ExpenseEvent struct {
	Name      string    `json:"event"`
	ExpenseID string    `json:"expense_id"`
	Owner     string    `json:"owner"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEvent builds an event with the current timestamp.
func NewExpenseEvent(name, expenseID, owner string) ExpenseEvent {
	return ExpenseEvent{
		Name:      name,
		ExpenseID: expenseID,
		Owner:     owner,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON decodes an event from JSON bytes.
func ExpenseEventFromJSON(data []byte) (ExpenseEvent, error) {
	var e ExpenseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return ExpenseEvent{}, err
	}
	return e, nil
}
