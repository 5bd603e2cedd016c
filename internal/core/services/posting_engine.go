package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	"github.com/atosolution/cash_treasury_backend/internal/middleware"
	"github.com/atosolution/cash_treasury_backend/internal/utils"
	"github.com/atosolution/cash_treasury_backend/internal/utils/accounting"
)

// Post runs the posting engine: document number draw, balanced ledger entry,
// amount-keyed reconciliation, residual updates, and the move to the terminal
// state. Everything runs in one transaction; a failure anywhere leaves no
// trace.
func (s *cashDocumentService) Post(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleApprover)
	if err != nil {
		return nil, err
	}
	doc, err := s.getDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureJournalVisible(ctx, membership, companyID, doc.JournalID, userID); err != nil {
		return nil, err
	}

	if doc.State != domain.StateApproved {
		return nil, fmt.Errorf("%w: %v (state is %s, expected %s)", apperrors.ErrConflict, ErrWrongState, doc.State, domain.StateApproved)
	}
	if doc.SettlementDate == nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConflict, ErrSettlementDateMissing)
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, doc.JournalID)
	if err != nil {
		return nil, err
	}
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, doc.CurrencyCode)
	if err != nil {
		return nil, err
	}
	var partner *domain.Partner
	if doc.PartnerID != nil {
		partner, err = s.partnerRepo.FindPartnerByID(ctx, *doc.PartnerID)
		if err != nil {
			return nil, err
		}
	}

	// Pre-posting guard: the standing invariants must hold here, not only on
	// save.
	if err := doc.Validate(*currency); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !doc.Amount().IsPositive() {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, domain.ErrAmountNotPositive)
	}

	newLines, err := s.buildEntryLines(doc, journal, partner, currency)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntryLines(newLines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := time.Now()
	tx, err := s.documentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.documentRepo.Rollback(ctx, tx)

	seq, err := s.sequenceRepo.NextSequenceValueInTx(ctx, tx, doc.JournalID, s.direction)
	if err != nil {
		return nil, fmt.Errorf("failed to draw document number: %w", err)
	}
	number := domain.FormatDocumentNumber(journal.Code, s.direction, *doc.SettlementDate, seq)

	entry := domain.LedgerEntry{
		EntryID:   uuid.NewString(),
		CompanyID: companyID,
		JournalID: doc.JournalID,
		EntryDate: *doc.SettlementDate,
		Reference: number,
		Status:    domain.EntryPosted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	entry.Lines = make([]domain.LedgerLine, len(newLines))
	for i, nl := range newLines {
		entry.Lines[i] = domain.LedgerLine{
			LineID:       uuid.NewString(),
			EntryID:      entry.EntryID,
			AccountID:    nl.AccountID,
			PartnerID:    nl.PartnerID,
			Label:        number,
			Debit:        nl.Debit,
			Credit:       nl.Credit,
			CurrencyCode: doc.CurrencyCode,
			AuditFields:  entry.AuditFields,
		}
	}

	if err := s.ledgerRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("failed to post ledger entry: %w", err)
	}

	if doc.AllocationsLoaded && doc.CounterpartyMode == domain.CounterpartyPartner {
		if err := s.reconcileAllocations(ctx, tx, doc, partner, currency, entry, userID, now); err != nil {
			return nil, err
		}
	}

	terminal := doc.TerminalState()
	if err := s.documentRepo.UpdateDocumentStateInTx(ctx, tx, doc.DocumentID, terminal, &number, doc.SettlementDate, &entry.EntryID, doc.ReversalEntryID, userID, now); err != nil {
		return nil, fmt.Errorf("failed to finalize document: %w", err)
	}

	if err := s.documentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	doc.State = terminal
	doc.Number = &number
	doc.PostedEntryID = &entry.EntryID
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = userID
	s.appendNote(ctx, doc.DocumentID, fmt.Sprintf("Posted as %s for %s %s", number, utils.FormatWithCurrencyPrecision(doc.Amount(), *currency), doc.CurrencyCode), userID)
	logger.Info("Document posted",
		slog.String("document_id", doc.DocumentID),
		slog.String("number", number),
		slog.String("entry_id", entry.EntryID))
	return doc, nil
}

// buildEntryLines constructs the balanced line set for the document: the
// journal's default cash/bank account on one side (debit for inbound, credit
// for outbound), the destination account(s) on the other.
func (s *cashDocumentService) buildEntryLines(doc *domain.CashDocument, journal *domain.CashJournal, partner *domain.Partner, currency *domain.Currency) ([]domain.NewLedgerLine, error) {
	if journal.DefaultAccountID == "" {
		return nil, fmt.Errorf("%w: journal %s has no default cash/bank account", apperrors.ErrValidation, journal.Code)
	}
	total := doc.Amount()
	inbound := s.direction == domain.Inbound

	side := func(accountID string, partnerID *string, amount decimal.Decimal, destination bool) domain.NewLedgerLine {
		// The destination carries the credit on inbound receipts and the
		// debit on outbound disbursements; the journal account the opposite.
		debit := destination != inbound
		line := domain.NewLedgerLine{AccountID: accountID, PartnerID: partnerID}
		if debit {
			line.Debit = amount
		} else {
			line.Credit = amount
		}
		return line
	}

	var lines []domain.NewLedgerLine
	switch source := doc.AmountSource().(type) {
	case domain.MultiAccountSplit:
		if len(source.Lines) == 0 {
			return nil, fmt.Errorf("%w: multi-account document has no lines", apperrors.ErrValidation)
		}
		for _, l := range source.Lines {
			if l.AccountID == "" || !l.Amount.IsPositive() {
				return nil, fmt.Errorf("%w: multi-account line needs an account and a positive amount", apperrors.ErrValidation)
			}
			lines = append(lines, side(l.AccountID, nil, l.Amount, true))
		}
	case domain.PartnerAllocation:
		destination, err := doc.DestinationAccountID(partner)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		allocated := decimal.Zero
		for _, l := range source.Lines {
			if !l.Counts() {
				continue
			}
			lines = append(lines, side(destination, doc.PartnerID, l.Amount, true))
			allocated = allocated.Add(l.Amount)
		}
		if len(lines) == 0 {
			return nil, fmt.Errorf("%w: no allocation line is selected", apperrors.ErrValidation)
		}
		if !currency.AmountsEqual(allocated, total) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, domain.ErrAllocationMismatch)
		}
	case domain.ManualAmount:
		destination, err := doc.DestinationAccountID(partner)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		lines = append(lines, side(destination, doc.PartnerID, total, true))
	}

	lines = append(lines, side(journal.DefaultAccountID, nil, total, false))
	return lines, nil
}

// reconcileAllocations links each selected allocation to the payment line
// carrying exactly its settled amount, then to the target invoice, and
// reduces the invoice residual. Matching is strictly by amount and
// fail-closed: an allocation that finds no remaining payment line of its
// exact amount aborts the posting rather than guessing, so equal-amount lines
// are never cross-linked to the wrong invoice.
func (s *cashDocumentService) reconcileAllocations(ctx context.Context, tx pgx.Tx, doc *domain.CashDocument, partner *domain.Partner, currency *domain.Currency, entry domain.LedgerEntry, userID string, now time.Time) error {
	destination, err := doc.DestinationAccountID(partner)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	invoiceIDs := make([]string, 0, len(doc.AllocationLines))
	for _, l := range doc.AllocationLines {
		if l.Counts() {
			invoiceIDs = append(invoiceIDs, l.InvoiceID)
		}
	}
	invoices, err := s.invoiceRepo.FindInvoicesByIDs(ctx, invoiceIDs)
	if err != nil {
		return fmt.Errorf("failed to load allocated invoices: %w", err)
	}

	// Lock every unreconciled line on the destination account for this
	// partner: the invoice lines we settle and the payment lines just
	// written.
	candidates, err := s.ledgerRepo.FindUnreconciledLinesForUpdate(ctx, tx, doc.CompanyID, destination, doc.PartnerID)
	if err != nil {
		return fmt.Errorf("failed to lock reconciliation candidates: %w", err)
	}

	paymentByAmount := make(map[string][]domain.LedgerLine)
	linesByEntry := make(map[string][]domain.LedgerLine)
	for _, line := range candidates {
		if line.EntryID == entry.EntryID {
			key := line.Amount().String()
			paymentByAmount[key] = append(paymentByAmount[key], line)
		} else {
			linesByEntry[line.EntryID] = append(linesByEntry[line.EntryID], line)
		}
	}

	for _, alloc := range doc.AllocationLines {
		if !alloc.Counts() {
			continue
		}
		invoice, ok := invoices[alloc.InvoiceID]
		if !ok {
			return fmt.Errorf("%w: invoice %s no longer exists", apperrors.ErrConflict, alloc.InvoiceNumber)
		}
		if !invoice.Open() {
			return fmt.Errorf("%w: invoice %s is no longer open", apperrors.ErrConflict, alloc.InvoiceNumber)
		}
		if alloc.Amount.GreaterThan(invoice.AmountResidual) {
			return fmt.Errorf("%w: allocation for invoice %s exceeds its residual %s", apperrors.ErrConflict, alloc.InvoiceNumber, invoice.AmountResidual)
		}

		key := alloc.Amount.String()
		bucket := paymentByAmount[key]
		if len(bucket) == 0 {
			return fmt.Errorf("%w: %v (invoice %s, amount %s)", apperrors.ErrConflict, ErrUnmatchedAllocation, alloc.InvoiceNumber, alloc.Amount)
		}
		payment := bucket[0]
		paymentByAmount[key] = bucket[1:]

		groupLineIDs := []string{payment.LineID}
		// The invoice's own receivable/payable line joins the group when this
		// allocation settles it in full; a partial settlement leaves it open
		// for the remainder.
		if currency.AmountsEqual(alloc.Amount, invoice.AmountResidual) {
			for _, line := range linesByEntry[invoice.LedgerEntryID] {
				groupLineIDs = append(groupLineIDs, line.LineID)
			}
		}

		invoiceID := alloc.InvoiceID
		group := domain.ReconcileGroup{
			GroupID:   uuid.NewString(),
			InvoiceID: &invoiceID,
			Amount:    alloc.Amount,
			CreatedAt: now,
			CreatedBy: userID,
		}
		if err := s.ledgerRepo.SaveReconcileGroupInTx(ctx, tx, group, groupLineIDs); err != nil {
			return fmt.Errorf("failed to reconcile invoice %s: %w", alloc.InvoiceNumber, err)
		}
		if err := s.invoiceRepo.ApplyResidualDeltaInTx(ctx, tx, alloc.InvoiceID, alloc.Amount.Neg()); err != nil {
			return fmt.Errorf("failed to settle invoice %s: %w", alloc.InvoiceNumber, err)
		}
	}
	return nil
}

// ResetToDraft reverses a posted/paid document back to draft. Restricted to
// super approvers. The compensating entry keeps the ledger history intact;
// nothing is deleted.
func (s *cashDocumentService) ResetToDraft(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleSuperApprover)
	if err != nil {
		return nil, err
	}
	doc, err := s.getDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureJournalVisible(ctx, membership, companyID, doc.JournalID, userID); err != nil {
		return nil, err
	}
	if doc.State != doc.TerminalState() || doc.PostedEntryID == nil {
		return nil, fmt.Errorf("%w: %v (state is %s, expected %s)", apperrors.ErrConflict, ErrWrongState, doc.State, doc.TerminalState())
	}

	original, err := s.ledgerRepo.FindEntryByID(ctx, *doc.PostedEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load posted entry: %w", err)
	}
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, doc.CurrencyCode)
	if err != nil {
		return nil, err
	}
	groups, err := s.ledgerRepo.FindReconcileGroupsByEntry(ctx, original.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reconcile groups: %w", err)
	}

	now := time.Now()
	tx, err := s.documentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.documentRepo.Rollback(ctx, tx)

	// 1. Unwind reconciliation and restore invoice residuals.
	for _, g := range groups {
		deleted, err := s.ledgerRepo.DeleteReconcileGroupInTx(ctx, tx, g.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to unreconcile group %s: %w", g.GroupID, err)
		}
		if deleted.InvoiceID != nil {
			if err := s.invoiceRepo.ApplyResidualDeltaInTx(ctx, tx, *deleted.InvoiceID, deleted.Amount); err != nil {
				return nil, fmt.Errorf("failed to restore invoice residual: %w", err)
			}
		}
	}

	// 2. Compensating entry: every line mirrored with debit/credit swapped,
	// dated today.
	reversal := domain.LedgerEntry{
		EntryID:   uuid.NewString(),
		CompanyID: companyID,
		JournalID: original.JournalID,
		EntryDate: now,
		Reference: fmt.Sprintf("Reversal of %s", original.Reference),
		Status:    domain.EntryPosted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	reversal.Lines = make([]domain.LedgerLine, len(original.Lines))
	for i, line := range original.Lines {
		reversal.Lines[i] = domain.LedgerLine{
			LineID:       uuid.NewString(),
			EntryID:      reversal.EntryID,
			AccountID:    line.AccountID,
			PartnerID:    line.PartnerID,
			Label:        reversal.Reference,
			Debit:        line.Credit,
			Credit:       line.Debit,
			CurrencyCode: line.CurrencyCode,
			AuditFields:  reversal.AuditFields,
		}
	}
	if err := s.ledgerRepo.SaveEntryInTx(ctx, tx, reversal); err != nil {
		return nil, fmt.Errorf("failed to post compensating entry: %w", err)
	}

	// 3. Cross-reconcile original against compensating lines, pairing by
	// (account, partner) with equal and opposite balances. A pair that fails
	// is logged and skipped, never fatal.
	s.crossReconcile(ctx, tx, original, &reversal, currency, userID, now)

	// 4. Reset to draft: number and posted-entry ref cleared, settlement date
	// cleared, reversal ref kept as a permanent audit pointer.
	if err := s.documentRepo.UpdateDocumentStateInTx(ctx, tx, doc.DocumentID, domain.StateDraft, nil, nil, nil, &reversal.EntryID, userID, now); err != nil {
		return nil, fmt.Errorf("failed to reset document: %w", err)
	}

	if err := s.documentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	doc.State = domain.StateDraft
	doc.Number = nil
	doc.PostedEntryID = nil
	doc.SettlementDate = nil
	doc.ReversalEntryID = &reversal.EntryID
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = userID
	s.appendNote(ctx, doc.DocumentID, fmt.Sprintf("Reset to draft, reversed by %s", reversal.Reference), userID)
	logger.Info("Document reset to draft",
		slog.String("document_id", doc.DocumentID),
		slog.String("reversal_entry_id", reversal.EntryID))
	return doc, nil
}

// crossReconcile pairs each original line with the compensating line on the
// same (account, partner) carrying the opposite balance.
func (s *cashDocumentService) crossReconcile(ctx context.Context, tx pgx.Tx, original *domain.LedgerEntry, reversal *domain.LedgerEntry, currency *domain.Currency, userID string, now time.Time) {
	logger := middleware.GetLoggerFromCtx(ctx)

	type pairKey struct {
		accountID string
		partnerID string
	}
	keyOf := func(line domain.LedgerLine) pairKey {
		k := pairKey{accountID: line.AccountID}
		if line.PartnerID != nil {
			k.partnerID = *line.PartnerID
		}
		return k
	}

	remaining := make(map[pairKey][]domain.LedgerLine)
	for _, line := range reversal.Lines {
		k := keyOf(line)
		remaining[k] = append(remaining[k], line)
	}

	for _, origLine := range original.Lines {
		k := keyOf(origLine)
		matched := false
		bucket := remaining[k]
		for i, revLine := range bucket {
			if currency.AmountsEqual(origLine.Balance().Neg(), revLine.Balance()) {
				matched = true
				group := domain.ReconcileGroup{
					GroupID:   uuid.NewString(),
					Amount:    origLine.Amount(),
					CreatedAt: now,
					CreatedBy: userID,
				}
				err := s.ledgerRepo.SaveReconcileGroupInTx(ctx, tx, group, []string{origLine.LineID, revLine.LineID})
				if err != nil {
					logger.Warn("Skipping reversal pair that failed to reconcile",
						slog.String("line_id", origLine.LineID),
						slog.String("error", err.Error()))
				} else {
					remaining[k] = append(bucket[:i], bucket[i+1:]...)
				}
				break
			}
		}
		if !matched {
			logger.Warn("No compensating line matched for cross-reconciliation",
				slog.String("line_id", origLine.LineID),
				slog.String("account_id", origLine.AccountID))
		}
	}
}
