package pgsql

import (
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	fiscalPeriodRepo := newPgxFiscalPeriodRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		JournalRepo:      journalRepo,
		FiscalPeriodRepo: fiscalPeriodRepo,
		InventoryRepo:    inventoryRepo,
		InvoiceRepo:      invoiceRepo,
		ReportingRepo:    reportingRepo,
	}
}
