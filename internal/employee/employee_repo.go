package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Empleado) error
	FindByPhone(ctx context.Context, phone string) (*Empleado, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Empleado, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Empleado, error)
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, empl *Empleado) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

// FindByPhone is the directory lookup the webhook runs on every message.
// Phone numbers are globally unique, so no company scope applies here.
func (r *repository) FindByPhone(ctx context.Context, phone string) (*Empleado, error) {
	var empl Empleado
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Where("is_active = ?", true).
		First(&empl).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Empleado, error) {
	var empls []Empleado
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Empleado, error) {
	var empl Empleado
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&Empleado{}, "id = ?", id).Error
}
