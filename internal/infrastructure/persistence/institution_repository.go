package persistence

import (
	"context"
	"errors"

	"github.com/contable/backoffice/internal/domain/payroll"
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInstitutionRepository implements payroll.InstitutionRepository using GORM
type GormInstitutionRepository struct {
	db *gorm.DB
}

// NewGormInstitutionRepository creates a new institution repository
func NewGormInstitutionRepository(db *gorm.DB) *GormInstitutionRepository {
	return &GormInstitutionRepository{db: db}
}

// Save creates or updates an institution
func (r *GormInstitutionRepository) Save(ctx context.Context, institution *payroll.Institution) error {
	return r.db.WithContext(ctx).Save(institution).Error
}

// FindByID finds an institution by ID
func (r *GormInstitutionRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Institution, error) {
	var institution payroll.Institution
	err := r.db.WithContext(ctx).First(&institution, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &institution, nil
}

// FindAll returns all institutions ordered by name
func (r *GormInstitutionRepository) FindAll(ctx context.Context) ([]payroll.Institution, error) {
	var institutions []payroll.Institution
	err := r.db.WithContext(ctx).Order("name asc").Find(&institutions).Error
	if err != nil {
		return nil, err
	}
	return institutions, nil
}
