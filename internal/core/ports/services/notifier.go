package services

import "github.com/kicho-app/kicho_backend/internal/core/domain"

// ChangeNotifier receives post-commit journal events. Delivery is
// fire-and-forget: Notify must never block the caller and is never invoked
// inside the persistence transaction.
type ChangeNotifier interface {
	Notify(event domain.JournalEvent)

	// Close drains buffered events and stops the notifier. Called once at
	// shutdown.
	Close()
}
