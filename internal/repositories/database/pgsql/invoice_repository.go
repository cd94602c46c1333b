package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	"github.com/bizfolio/biz_management_app/internal/models"
	"github.com/bizfolio/biz_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `invoice_id, company_id, number, customer_name, issue_date, due_date, total, paid_amount, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for customer invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CompanyID,
		&m.Number,
		&m.CustomerName,
		&m.IssueDate,
		&m.DueDate,
		&m.Total,
		&m.PaidAmount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// SaveInvoice persists a new invoice.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.CompanyID,
		m.Number,
		m.CustomerName,
		m.IssueDate,
		m.DueDate,
		m.Total,
		m.PaidAmount,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, m.Number)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves a single invoice scoped to the company.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE invoice_id = $1 AND company_id = $2;
	`
	invoice, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// ListOpenInvoices retrieves all invoices with an outstanding balance,
// oldest due date first.
func (r *PgxInvoiceRepository) ListOpenInvoices(ctx context.Context, companyID string) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1 AND status = 'OPEN'
		ORDER BY due_date;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open invoices for company %s: %w", companyID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

// ApplyPayment increases an invoice's paid amount, flipping it to PAID when
// the outstanding balance reaches zero. The row is locked so concurrent
// payments against one invoice serialize.
func (r *PgxInvoiceRepository) ApplyPayment(ctx context.Context, companyID, invoiceID string, amount decimal.Decimal, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT total, paid_amount
		FROM invoices
		WHERE invoice_id = $1 AND company_id = $2
		FOR UPDATE;
	`
	var total, paid decimal.Decimal
	if err := tx.QueryRow(ctx, lockQuery, invoiceID, companyID).Scan(&total, &paid); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock invoice %s: %w", invoiceID, err)
	}

	newPaid := paid.Add(amount)
	status := models.InvoiceOpen
	if newPaid.GreaterThanOrEqual(total) {
		status = models.InvoicePaid
	}

	updateQuery := `
		UPDATE invoices
		SET paid_amount = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE invoice_id = $1 AND company_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, invoiceID, companyID, newPaid, status, time.Now().UTC(), userID); err != nil {
		return fmt.Errorf("failed to apply payment to invoice %s: %w", invoiceID, err)
	}

	return r.Commit(ctx, tx)
}
