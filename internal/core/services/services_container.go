package services

import (
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.FiscalPeriod = NewFiscalPeriodService(repos.FiscalPeriodRepo)

	// The journal engine is initialized before the posting helpers since
	// every helper posts through it.
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.FiscalPeriodRepo)
	container.Posting = NewPostingService(container.Journal, repos.AccountRepo, repos.InvoiceRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.FiscalPeriodRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.InvoiceRepo, repos.AccountRepo)

	return container
}
