package company

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	companyerrors "go-checador/internal/company/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, emp *Empresa) error
	findByIDFn func(ctx context.Context, id string) (*Empresa, error)
	updateFn   func(ctx context.Context, emp *Empresa) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, emp *Empresa) error {
	return f.createFn(ctx, emp)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Empresa, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, emp *Empresa) error {
	return f.updateFn(ctx, emp)
}

func f64(v float64) *float64 { return &v }

func TestService_Create_RejectsHalfCoordinates(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, nil)
	_, err := svc.Create(context.Background(), CreateCompanyRequest{
		Name:     "Tacos El Norte",
		Latitude: f64(19.4326),
	})
	assert.ErrorIs(t, err, companyerrors.ErrInvalidCoordinates)
}

func TestService_Create_RejectsOutOfRangeCoordinates(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, nil)
	_, err := svc.Create(context.Background(), CreateCompanyRequest{
		Name:      "Tacos El Norte",
		Latitude:  f64(91),
		Longitude: f64(-99.1332),
	})
	assert.ErrorIs(t, err, companyerrors.ErrInvalidCoordinates)
}

func TestService_Site_CacheMissThenHit(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, mock := redismock.NewClientMock()
	companyID := uuid.New().String()
	cacheKey := GetSiteCacheKey(companyID)

	calls := 0
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Empresa, error) {
			calls++
			return &Empresa{Latitude: f64(19.4326), Longitude: f64(-99.1332)}, nil
		},
	}

	cached, _ := json.Marshal(cachedSite{Latitude: f64(19.4326), Longitude: f64(-99.1332)})

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSet(cacheKey, cached, 1*time.Hour).SetVal("OK")
	mock.ExpectGet(cacheKey).SetVal(string(cached))

	svc := NewService(db, repo, rdb)

	site, err := svc.Site(context.Background(), companyID)
	assert.NoError(t, err)
	assert.Equal(t, 19.4326, *site.Latitude)
	assert.Equal(t, 1, calls)

	// Second lookup is served from Redis, no repo call.
	site, err = svc.Site(context.Background(), companyID)
	assert.NoError(t, err)
	assert.Equal(t, -99.1332, *site.Longitude)
	assert.Equal(t, 1, calls)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Site_CompanyNotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Empresa, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo, nil)
	_, err := svc.Site(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
}

func TestService_UpdateLocation_InvalidatesSiteCache(t *testing.T) {
	db, sqlMock, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	companyID := uuid.New()

	emp := &Empresa{ID: companyID, Name: "Tacos El Norte", IsActive: true}
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Empresa, error) { return emp, nil },
		updateFn:   func(ctx context.Context, e *Empresa) error { return nil },
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	redisMock.ExpectDel(GetSiteCacheKey(companyID.String())).SetVal(1)

	svc := NewService(db, repo, rdb)
	resp, err := svc.UpdateLocation(context.Background(), companyID.String(), UpdateLocationRequest{
		Latitude:  f64(19.44),
		Longitude: f64(-99.14),
	})
	assert.NoError(t, err)
	assert.Equal(t, 19.44, *resp.Latitude)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
