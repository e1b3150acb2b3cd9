package domain

import "time"

// JournalOperation names the commit that produced a change event.
type JournalOperation string

const (
	JournalCreated JournalOperation = "CREATED"
	JournalUpdated JournalOperation = "UPDATED"
	JournalDeleted JournalOperation = "DELETED"
)

// JournalEvent is handed to the change notifier after a journal transaction
// commits. Delivery is best-effort and never part of the transaction.
type JournalEvent struct {
	EventID       string           `json:"eventID"`
	Operation     JournalOperation `json:"operation"`
	JournalNumber string           `json:"journalNumber"`
	OccurredAt    time.Time        `json:"occurredAt"`
}
