package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/company"
	"github.com/kudu-hr/payroll-engine-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository. leave_settings is stored as
// a jsonb map of leave type to annual day entitlement.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, country, leave_settings, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var found company.Company
	var settingsRaw []byte
	err := q.QueryRow(ctx, query, id).
		Scan(&found.ID, &found.Name, &found.Country, &settingsRaw, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company with id %s: %w", id, err)
	}

	if len(settingsRaw) > 0 {
		if err := json.Unmarshal(settingsRaw, &found.LeaveSettings); err != nil {
			return company.Company{}, fmt.Errorf("failed to decode leave settings for company %s: %w", id, err)
		}
	}

	return found, nil
}
