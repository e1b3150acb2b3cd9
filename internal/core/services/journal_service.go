package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kicho-app/kicho_backend/internal/apperrors"
	"github.com/kicho-app/kicho_backend/internal/core/domain"
	portsrepo "github.com/kicho-app/kicho_backend/internal/core/ports/repositories"
	portssvc "github.com/kicho-app/kicho_backend/internal/core/ports/services"
	"github.com/kicho-app/kicho_backend/internal/dto"
	"github.com/kicho-app/kicho_backend/internal/middleware"
	"github.com/kicho-app/kicho_backend/internal/utils/accounting"
	"github.com/kicho-app/kicho_backend/internal/utils/seqnum"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// journalService implements journal posting on top of the repositories.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	seqRepo     portsrepo.SequenceRepository
	masterRepo  portsrepo.MasterRepositoryFacade
	notifier    portssvc.ChangeNotifier
	maxRetries  int
}

// NewJournalService creates a new JournalService. maxRetries bounds the
// number-collision retry loop on creation.
func NewJournalService(repos *portsrepo.RepositoryProvider, notifier portssvc.ChangeNotifier, maxRetries int) portssvc.JournalSvcFacade {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &journalService{
		journalRepo: repos.JournalRepo,
		seqRepo:     repos.SequenceRepo,
		masterRepo:  repos.MasterRepo,
		notifier:    notifier,
		maxRetries:  maxRetries,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines validates the submitted lines against master data and produces
// the domain lines with server-computed tax and total amounts. Client-supplied
// tax or total values never survive this step.
func (s *journalService) buildLines(ctx context.Context, reqLines []dto.CreateJournalLineRequest) ([]domain.JournalLine, error) {
	if len(reqLines) == 0 {
		return nil, apperrors.NewValidationError("journal requires at least one line", nil)
	}

	accountCodes := make([]string, 0, len(reqLines))
	seen := make(map[string]struct{}, len(reqLines))
	collect := func(code string) {
		if _, ok := seen[code]; !ok {
			seen[code] = struct{}{}
			accountCodes = append(accountCodes, code)
		}
	}
	for i, line := range reqLines {
		field := fmt.Sprintf("lines[%d].baseAmount", i)
		if !line.BaseAmount.IsPositive() {
			return nil, apperrors.NewValidationError("base amount must be positive", map[string]string{field: line.BaseAmount.String()})
		}
		if !line.BaseAmount.IsInteger() {
			return nil, apperrors.NewValidationError("base amount must be a whole amount", map[string]string{field: line.BaseAmount.String()})
		}
		collect(line.AccountCode)
		if line.SubAccountCode != nil {
			collect(*line.SubAccountCode)
		}
	}

	accounts, err := s.masterRepo.FindAccountsByCodes(ctx, accountCodes)
	if err != nil {
		return nil, err
	}
	for _, code := range accountCodes {
		acc, ok := accounts[code]
		if !ok {
			return nil, apperrors.NewValidationError("account does not exist", map[string]string{"accountCode": code})
		}
		if !acc.IsActive {
			return nil, apperrors.NewValidationError("account is not active", map[string]string{"accountCode": code})
		}
	}

	// Resolve each line's tax code: explicit request value, then the
	// account's default, then the non-taxable code.
	taxCodes := make([]string, 0, len(reqLines))
	seenTax := make(map[string]struct{}, len(reqLines))
	resolved := make([]string, len(reqLines))
	for i, line := range reqLines {
		code := domain.NonTaxableCode
		if line.TaxCode != nil && *line.TaxCode != "" {
			code = *line.TaxCode
		} else if def := accounts[line.AccountCode].DefaultTaxCode; def != nil && *def != "" {
			code = *def
		}
		resolved[i] = code
		if _, ok := seenTax[code]; !ok {
			seenTax[code] = struct{}{}
			taxCodes = append(taxCodes, code)
		}
	}

	rates, err := s.masterRepo.FindTaxRatesByCodes(ctx, taxCodes)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.JournalLine, len(reqLines))
	for i, line := range reqLines {
		rate, ok := rates[resolved[i]]
		if !ok {
			return nil, apperrors.NewValidationError("tax code does not exist", map[string]string{fmt.Sprintf("lines[%d].taxCode", i): resolved[i]})
		}
		tax := accounting.ComputeTax(line.BaseAmount, rate.Rate, rate.Taxable)
		lines[i] = domain.JournalLine{
			LineNumber:      i + 1,
			DebitCredit:     domain.DebitCredit(line.DebitCredit),
			AccountCode:     line.AccountCode,
			SubAccountCode:  line.SubAccountCode,
			PartnerCode:     line.PartnerCode,
			DepartmentCode:  line.DepartmentCode,
			AnalysisCode:    line.AnalysisCode,
			BaseAmount:      line.BaseAmount,
			TaxAmount:       tax,
			TotalAmount:     accounting.ComputeTotal(line.BaseAmount, tax),
			TaxCode:         resolved[i],
			LineDescription: line.LineDescription,
		}
	}

	if !accounting.IsBalanced(lines) {
		debit, credit := accounting.SideTotals(lines)
		return nil, apperrors.NewBusinessError(
			fmt.Sprintf("journal does not balance: debit total %s, credit total %s", debit.String(), credit.String()),
			apperrors.ErrUnbalanced,
		)
	}

	return lines, nil
}

// CreateJournal validates the request, computes tax and totals, allocates the
// next journal number for the date, and persists everything atomically. The
// change notification fires only after the commit.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalHeader, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journalDate, err := time.Parse(dto.JournalDateLayout, req.JournalDate)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid journal date", map[string]string{"journalDate": req.JournalDate})
	}

	lines, err := s.buildLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	journal := domain.JournalHeader{
		JournalDate: journalDate,
		Description: req.Description,
		TotalAmount: accounting.JournalTotal(lines),
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// The allocation is atomic in the repository, but a collision with a
	// concurrently committed number is still possible. Retry the whole save
	// so each attempt draws a fresh sequence.
	var journalNumber string
	for attempt := 1; ; attempt++ {
		journalNumber, err = s.journalRepo.SaveJournal(ctx, journal, lines)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		if attempt >= s.maxRetries {
			logger.Error("Journal number allocation kept colliding",
				slog.String("date", req.JournalDate),
				slog.Int("attempts", attempt),
			)
			return nil, apperrors.NewBusinessError("journal number allocation failed after retries", err)
		}
		logger.Warn("Journal number collision, retrying",
			slog.String("date", req.JournalDate),
			slog.Int("attempt", attempt),
		)
	}

	journal.JournalNumber = journalNumber
	for i := range journal.Lines {
		journal.Lines[i].JournalNumber = journalNumber
	}

	logger.Info("Journal created",
		slog.String("journal_number", journalNumber),
		slog.Int("lines", len(journal.Lines)),
	)
	s.notifier.Notify(domain.JournalEvent{
		EventID:       uuid.NewString(),
		Operation:     domain.JournalCreated,
		JournalNumber: journalNumber,
		OccurredAt:    now,
	})

	return &journal, nil
}

// UpdateJournal patches header fields and replaces the complete line set. The
// journal number never changes, even when the date is edited.
func (s *journalService) UpdateJournal(ctx context.Context, journalNumber string, req dto.UpdateJournalRequest, userID string) (*domain.JournalHeader, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.journalRepo.FindJournalByNumber(ctx, journalNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("journal " + journalNumber + " not found")
		}
		return nil, err
	}

	journalDate := existing.JournalDate
	if req.JournalDate != nil {
		journalDate, err = time.Parse(dto.JournalDateLayout, *req.JournalDate)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid journal date", map[string]string{"journalDate": *req.JournalDate})
		}
	}
	description := existing.Description
	if req.Description != nil {
		description = *req.Description
	}

	lines, err := s.buildLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].JournalNumber = journalNumber
	}

	now := time.Now()
	journal := domain.JournalHeader{
		JournalNumber: journalNumber,
		JournalDate:   journalDate,
		Description:   description,
		TotalAmount:   accounting.JournalTotal(lines),
		Lines:         lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     existing.CreatedAt,
			CreatedBy:     existing.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.ReplaceJournal(ctx, journal, lines); err != nil {
		return nil, err
	}

	logger.Info("Journal updated", slog.String("journal_number", journalNumber))
	s.notifier.Notify(domain.JournalEvent{
		EventID:       uuid.NewString(),
		Operation:     domain.JournalUpdated,
		JournalNumber: journalNumber,
		OccurredAt:    now,
	})

	return &journal, nil
}

// DeleteJournal removes the journal and its lines atomically.
func (s *journalService) DeleteJournal(ctx context.Context, journalNumber string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.journalRepo.DeleteJournal(ctx, journalNumber); err != nil {
		return err
	}

	logger.Info("Journal deleted",
		slog.String("journal_number", journalNumber),
		slog.String("deleted_by", userID),
	)
	s.notifier.Notify(domain.JournalEvent{
		EventID:       uuid.NewString(),
		Operation:     domain.JournalDeleted,
		JournalNumber: journalNumber,
		OccurredAt:    time.Now(),
	})
	return nil
}

// GetJournalByNumber retrieves a journal header with its lines.
func (s *journalService) GetJournalByNumber(ctx context.Context, journalNumber string) (*domain.JournalHeader, error) {
	journal, err := s.journalRepo.FindJournalByNumber(ctx, journalNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("journal " + journalNumber + " not found")
		}
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByJournalNumber(ctx, journalNumber)
	if err != nil {
		return nil, err
	}
	journal.Lines = lines
	return journal, nil
}

// ListJournals retrieves one page of journal headers.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	headers, nextToken, err := s.journalRepo.ListJournals(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	journals := make([]dto.JournalResponse, len(headers))
	for i := range headers {
		journals[i] = dto.ToJournalResponse(&headers[i])
	}
	return &dto.ListJournalsResponse{Journals: journals, NextToken: nextToken}, nil
}

// PreviewNextNumber returns the journal number the next creation for the date
// would most likely receive. Advisory only, never a reservation.
func (s *journalService) PreviewNextNumber(ctx context.Context, date time.Time) (string, error) {
	seq, err := s.seqRepo.PeekNextSequence(ctx, seqnum.DatePrefix(date))
	if err != nil {
		return "", err
	}
	number, err := seqnum.Format(date, seq)
	if err != nil {
		return "", apperrors.NewBusinessError("no journal numbers left for "+seqnum.DatePrefix(date), apperrors.ErrSequenceExhausted)
	}
	return number, nil
}

// CheckSequenceIntegrity audits committed numbers for gaps or duplicates.
func (s *journalService) CheckSequenceIntegrity(ctx context.Context, date *time.Time) ([]domain.SequenceAnomaly, error) {
	datePrefix := ""
	if date != nil {
		datePrefix = seqnum.DatePrefix(*date)
	}
	return s.seqRepo.FindSequenceAnomalies(ctx, datePrefix)
}
