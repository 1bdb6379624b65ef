package company

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"time"

	companyerrors "go-checador/internal/company/errors"
	"go-checador/internal/geofence"
	"go-checador/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const SiteCacheKeyPrefix = "empresa:site:"

func GetSiteCacheKey(companyID string) string {
	return SiteCacheKeyPrefix + companyID
}

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	UpdateLocation(ctx context.Context, id string, req UpdateLocationRequest) (CompanyResponse, error)
	// Site resolves the geofence reference point for a company. Backed by a
	// Redis cache because the webhook asks for it on every location share.
	Site(ctx context.Context, companyID string) (geofence.Site, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// cachedSite is the Redis representation of a company's coordinates.
type cachedSite struct {
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return CompanyResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create company begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp := &Empresa{
		ID:        uuid.New(),
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsActive:  true,
	}

	if err := qtx.Create(ctx, emp); err != nil {
		s.logger.Error("create company persist failed", zap.Error(err))
		return CompanyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create company commit failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, err
	}

	s.logger.Info("create company success",
		zap.String("request_id", rid),
		zap.String("company_id", emp.ID.String()),
	)

	return mapToResponse(*emp), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get company by id failed", zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

func (s *service) UpdateLocation(ctx context.Context, id string, req UpdateLocationRequest) (CompanyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}
	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return CompanyResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update location begin tx failed", zap.Error(err))
		return CompanyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	emp.Latitude = req.Latitude
	emp.Longitude = req.Longitude

	if err := qtx.Update(ctx, emp); err != nil {
		s.logger.Error("update location persist failed", zap.Error(err))
		return CompanyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update location commit failed", zap.Error(err))
		return CompanyResponse{}, err
	}

	// Stale coordinates would admit check-ins at the old address.
	if s.rdb != nil {
		cacheKey := GetSiteCacheKey(id)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate site cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}

	s.logger.Info("update location success", zap.String("company_id", id))
	return mapToResponse(*emp), nil
}

func (s *service) Site(ctx context.Context, companyID string) (geofence.Site, error) {
	cacheKey := GetSiteCacheKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cs cachedSite
			if json.Unmarshal([]byte(cached), &cs) == nil {
				return geofence.Site{Latitude: cs.Latitude, Longitude: cs.Longitude}, nil
			}
		}
	}

	// Singleflight so a burst of webhooks for one company hits the DB once.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		emp, err := s.repo.FindByID(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		site := geofence.Site{Latitude: emp.Latitude, Longitude: emp.Longitude}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(cachedSite{Latitude: emp.Latitude, Longitude: emp.Longitude}); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return site, nil
	})

	if err != nil {
		return geofence.Site{}, err
	}

	return v.(geofence.Site), nil
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, companyerrors.ErrInvalidCompanyID
	}

	_, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func validateCoordinates(lat, lng *float64) error {
	// One coordinate without the other is always a provisioning mistake.
	if (lat == nil) != (lng == nil) {
		return companyerrors.ErrInvalidCoordinates
	}
	if lat == nil {
		return nil
	}
	if math.IsNaN(*lat) || math.IsInf(*lat, 0) || math.IsNaN(*lng) || math.IsInf(*lng, 0) {
		return companyerrors.ErrInvalidCoordinates
	}
	if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
		return companyerrors.ErrInvalidCoordinates
	}
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}
	return err
}

func mapToResponse(emp Empresa) CompanyResponse {
	return CompanyResponse{
		ID:        emp.ID.String(),
		Name:      emp.Name,
		Latitude:  emp.Latitude,
		Longitude: emp.Longitude,
		IsActive:  emp.IsActive,
	}
}
