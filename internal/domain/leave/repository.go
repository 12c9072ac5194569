package leave

import "context"

type LeaveRepository interface {
	CreateRequest(ctx context.Context, req Request) error
	GetRequestByID(ctx context.Context, id string, companyID string) (Request, error)
	UpdateRequest(ctx context.Context, req Request) error

	CreateRecord(ctx context.Context, record Record) error
	ListRecordsByEmployee(ctx context.Context, employeeID string) ([]Record, error)
}
