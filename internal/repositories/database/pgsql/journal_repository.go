package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	"github.com/atosolution/cash_treasury_backend/internal/models"
	"github.com/atosolution/cash_treasury_backend/internal/utils/mapping"
)

const journalColumns = `journal_id, company_id, code, name, kind, default_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal, grant and
// payment method data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanCashJournal(row pgx.Row) (models.CashJournal, error) {
	var m models.CashJournal
	err := row.Scan(
		&m.JournalID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.Kind,
		&m.DefaultAccountID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveJournal inserts a new journal and seeds its sequence counters.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.CashJournal) error {
	m := mapping.ToModelCashJournal(journal)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO cash_journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.JournalID, m.CompanyID, m.Code, m.Name, m.Kind, m.DefaultAccountID,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal %s: %w", m.JournalID, err)
	}

	// One counter per direction, starting at 1.
	counterQuery := `
		INSERT INTO sequence_counters (journal_id, direction, next_value)
		VALUES ($1, $2, 1), ($1, $3, 1);
	`
	if _, err := tx.Exec(ctx, counterQuery, m.JournalID, string(domain.Inbound), string(domain.Outbound)); err != nil {
		return fmt.Errorf("failed to seed sequence counters for journal %s: %w", m.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateJournal updates an existing journal's details.
func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.CashJournal) error {
	m := mapping.ToModelCashJournal(journal)
	query := `
		UPDATE cash_journals
		SET name = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE journal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.JournalID, m.Name, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update journal %s: %w", m.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindJournalByID retrieves a journal by its unique identifier.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.CashJournal, error) {
	query := `SELECT ` + journalColumns + ` FROM cash_journals WHERE journal_id = $1;`
	m, err := scanCashJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	j := mapping.ToDomainCashJournal(m)
	return &j, nil
}

// FindJournalsByIDs retrieves multiple journals keyed by ID.
func (r *PgxJournalRepository) FindJournalsByIDs(ctx context.Context, journalIDs []string) (map[string]domain.CashJournal, error) {
	if len(journalIDs) == 0 {
		return map[string]domain.CashJournal{}, nil
	}
	query := `SELECT ` + journalColumns + ` FROM cash_journals WHERE journal_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, journalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.CashJournal, len(journalIDs))
	for rows.Next() {
		m, err := scanCashJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal: %w", err)
		}
		result[m.JournalID] = mapping.ToDomainCashJournal(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journals: %w", err)
	}
	return result, nil
}

// ListJournalsByCompany retrieves all journals of a company ordered by code.
func (r *PgxJournalRepository) ListJournalsByCompany(ctx context.Context, companyID string) ([]domain.CashJournal, error) {
	query := `SELECT ` + journalColumns + ` FROM cash_journals WHERE company_id = $1 ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var journals []domain.CashJournal
	for rows.Next() {
		m, err := scanCashJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal: %w", err)
		}
		journals = append(journals, mapping.ToDomainCashJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journals: %w", err)
	}
	return journals, nil
}

// ListGrantedJournalIDs retrieves the IDs of all journals granted to a user.
func (r *PgxJournalRepository) ListGrantedJournalIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT journal_id FROM journal_grants WHERE user_id = $1 ORDER BY journal_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal grants for user %s: %w", userID, err)
	}
	defer rows.Close()

	journalIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan journal grant: %w", err)
		}
		journalIDs = append(journalIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal grants: %w", err)
	}
	return journalIDs, nil
}

// SaveGrant persists a journal grant for a user.
func (r *PgxJournalRepository) SaveGrant(ctx context.Context, grant domain.JournalGrant) error {
	m := mapping.ToModelJournalGrant(grant)
	query := `
		INSERT INTO journal_grants (user_id, journal_id, granted_at, granted_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, journal_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query, m.UserID, m.JournalID, m.GrantedAt, m.GrantedBy)
	if err != nil {
		return fmt.Errorf("failed to save journal grant for user %s: %w", m.UserID, err)
	}
	return nil
}

// DeleteGrant removes a journal grant from a user.
func (r *PgxJournalRepository) DeleteGrant(ctx context.Context, userID string, journalID string) error {
	query := `DELETE FROM journal_grants WHERE user_id = $1 AND journal_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, userID, journalID)
	if err != nil {
		return fmt.Errorf("failed to delete journal grant for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPaymentMethodByID retrieves a payment method.
func (r *PgxJournalRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	query := `
		SELECT payment_method_id, name, direction, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_methods
		WHERE payment_method_id = $1;
	`
	var m models.PaymentMethod
	err := r.Pool.QueryRow(ctx, query, paymentMethodID).Scan(
		&m.PaymentMethodID, &m.Name, &m.Direction,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment method %s: %w", paymentMethodID, err)
	}
	method := mapping.ToDomainPaymentMethod(m)
	return &method, nil
}

// ListPaymentMethods retrieves payment methods for a direction.
func (r *PgxJournalRepository) ListPaymentMethods(ctx context.Context, direction domain.PaymentDirection) ([]domain.PaymentMethod, error) {
	query := `
		SELECT payment_method_id, name, direction, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_methods
		WHERE direction = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, string(direction))
	if err != nil {
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer rows.Close()

	var methods []domain.PaymentMethod
	for rows.Next() {
		var m models.PaymentMethod
		if err := rows.Scan(&m.PaymentMethodID, &m.Name, &m.Direction, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		methods = append(methods, mapping.ToDomainPaymentMethod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payment methods: %w", err)
	}
	return methods, nil
}
