package employee

import (
	"context"
	"database/sql"
	"testing"

	employeeerrors "go-checador/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn             func(ctx context.Context, empl *Empleado) error
	findByPhoneFn        func(ctx context.Context, phone string) (*Empleado, error)
	findAllByCompanyFn   func(ctx context.Context, companyID string) ([]Empleado, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*Empleado, error)
	deleteFn             func(ctx context.Context, companyID, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, empl *Empleado) error {
	return f.createFn(ctx, empl)
}
func (f *fakeRepo) FindByPhone(ctx context.Context, phone string) (*Empleado, error) {
	return f.findByPhoneFn(ctx, phone)
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Empleado, error) {
	return f.findAllByCompanyFn(ctx, companyID)
}
func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Empleado, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}
func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+5215512345678", NormalizePhone("whatsapp:+5215512345678"))
	assert.Equal(t, "+5215512345678", NormalizePhone("  +52 1 55 1234 5678 "))
	assert.Equal(t, "", NormalizePhone("whatsapp:"))
}

func TestService_Create_NormalizesPhone(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()

	var saved Empleado
	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *Empleado) error {
			saved = *empl
			return nil
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), companyID, CreateEmployeeRequest{
		FullName: "Ana Torres",
		Phone:    "whatsapp:+52 1 5512345678",
	})
	assert.NoError(t, err)
	assert.Equal(t, "+5215512345678", saved.Phone)
	assert.Equal(t, "+5215512345678", resp.Phone)
	assert.True(t, saved.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicatePhoneMapsToConflict(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *Empleado) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_empleados_phone"}
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.New().String(), CreateEmployeeRequest{
		FullName: "Ana Torres",
		Phone:    "+5215512345678",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrPhoneAlreadyRegistered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Empleado, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo)
	_, err := svc.GetByID(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestService_GetByID_InvalidID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})
	_, err := svc.GetByID(context.Background(), uuid.New().String(), "not-a-uuid")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}
