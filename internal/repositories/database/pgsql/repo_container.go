package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		EmployeeRepo:        newPgxEmployeeRepository(dbPool),
		PurchaseRequestRepo: newPgxPurchaseRequestRepository(dbPool),
		TaskRepo:            newPgxTaskRepository(dbPool),
		LeaveRepo:           newPgxLeaveRepository(dbPool),
		AnnouncementRepo:    newPgxAnnouncementRepository(dbPool),
		EventRepo:           newPgxEventRepository(dbPool),
		VendorRepo:          newPgxVendorRepository(dbPool),
	}
}
