package repositories

import (
	"context"

	"github.com/kicho-app/kicho_backend/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByNumber retrieves a journal header by its 15-digit number.
	FindJournalByNumber(ctx context.Context, journalNumber string) (*domain.JournalHeader, error)

	// FindLinesByJournalNumber retrieves all detail lines of a journal,
	// ordered by line number.
	FindLinesByJournalNumber(ctx context.Context, journalNumber string) ([]domain.JournalLine, error)

	// ListJournals retrieves a paginated list of journal headers using
	// token-based pagination. It returns the headers, a token for the next
	// page, and an error.
	ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.JournalHeader, *string, error)
}

// JournalWriter defines write operations for journal data. Every method runs
// as a single database transaction: no partial header or partial detail set
// is ever observably persisted.
type JournalWriter interface {
	// SaveJournal allocates the next journal number for the header's date and
	// inserts the header with all lines atomically. It returns the allocated
	// journal number. A number collision surfaces as apperrors.ErrDuplicate;
	// callers may retry the whole call.
	SaveJournal(ctx context.Context, journal domain.JournalHeader, lines []domain.JournalLine) (string, error)

	// ReplaceJournal updates the header and replaces the full detail set
	// (delete then insert, not a diff) atomically.
	ReplaceJournal(ctx context.Context, journal domain.JournalHeader, lines []domain.JournalLine) error

	// DeleteJournal removes the detail rows then the header row atomically.
	// A missing journal number is apperrors.ErrNotFound.
	DeleteJournal(ctx context.Context, journalNumber string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
