package services

import (
	"context"
	"time"

	"github.com/kicho-app/kicho_backend/internal/core/domain"
	"github.com/kicho-app/kicho_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByNumber retrieves a journal header with its lines.
	GetJournalByNumber(ctx context.Context, journalNumber string) (*domain.JournalHeader, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)

	// PreviewNextNumber returns the journal number the next creation for the
	// date would most likely receive. Advisory only; stale the instant a
	// concurrent creation commits.
	PreviewNextNumber(ctx context.Context, date time.Time) (string, error)

	// CheckSequenceIntegrity audits committed numbers for gaps or duplicates.
	// date may be nil to audit every date. Reports only, never repairs.
	CheckSequenceIntegrity(ctx context.Context, date *time.Time) ([]domain.SequenceAnomaly, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal validates, allocates a number, and persists a new journal
	// with its lines atomically.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalHeader, error)

	// UpdateJournal patches header fields and fully replaces the detail set.
	UpdateJournal(ctx context.Context, journalNumber string, req dto.UpdateJournalRequest, userID string) (*domain.JournalHeader, error)

	// DeleteJournal removes a journal and its lines atomically.
	DeleteJournal(ctx context.Context, journalNumber string, userID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
