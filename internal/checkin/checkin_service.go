package checkin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	companyerrors "go-checador/internal/company/errors"
	"go-checador/internal/employee"
	"go-checador/internal/events"
	"go-checador/internal/geofence"
	"go-checador/internal/messaging/kafka"
	"go-checador/internal/notify"
	"go-checador/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=checkin_service.go -destination=mock/checkin_service_mock.go -package=mock
type Service interface {
	// ProcessInboundEvent runs one webhook delivery end to end and never
	// returns an error: every outcome, including internal failure, becomes
	// a reply text plus a record-written flag.
	ProcessInboundEvent(ctx context.Context, event InboundEvent) ProcessResult
}

// EmployeeDirectory is the slice of the employee repository the processor
// needs: phone number to employee.
type EmployeeDirectory interface {
	FindByPhone(ctx context.Context, phone string) (*employee.Empleado, error)
}

// CompanySites resolves a company's geofence reference point.
type CompanySites interface {
	Site(ctx context.Context, companyID string) (geofence.Site, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory EmployeeDirectory
	sites     CompanySites
	notifier  notify.Channel
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	policy    geofence.Policy
	loc       *time.Location
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	directory EmployeeDirectory,
	sites CompanySites,
	notifier notify.Channel,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	policy geofence.Policy,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("checkin.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("checkin.service")
	}
	if loc == nil {
		loc, _ = time.LoadLocation(DefaultTimezone)
		if loc == nil {
			loc = time.UTC
		}
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		sites:     sites,
		notifier:  notifier,
		outbox:    outbox,
		rdb:       rdb,
		policy:    policy,
		loc:       loc,
		logger:    l,
	}
}

func (s *service) ProcessInboundEvent(ctx context.Context, event InboundEvent) ProcessResult {
	log := contextutil.GetLogger(ctx, s.logger)

	phone := employee.NormalizePhone(event.From)
	if phone == "" {
		// Nobody to reply to.
		return ProcessResult{}
	}

	empl, err := s.directory.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.reply(ctx, phone, msgNotRegistered, false)
		}
		log.Error("employee lookup failed", zap.String("phone", phone), zap.Error(err))
		return s.reply(ctx, phone, msgInternalError, false)
	}

	switch event.Kind {
	case EventKindText:
		return s.processText(ctx, empl, phone, event.Body)
	case EventKindLocation:
		return s.processLocation(ctx, empl, phone, event)
	default:
		// Media, stickers, reactions: nothing to record, no reply owed.
		log.Debug("ignoring event kind", zap.String("kind", string(event.Kind)))
		return ProcessResult{}
	}
}

func (s *service) processText(ctx context.Context, empl *employee.Empleado, phone, body string) ProcessResult {
	var tipo RecordType
	switch strings.ToLower(strings.TrimSpace(body)) {
	case "entrada":
		tipo = RecordCheckIn
	case "salida":
		tipo = RecordCheckOut
	default:
		return s.reply(ctx, phone, msgUsageHint, false)
	}

	written, err := s.registrar(ctx, empl, phone, tipo, nil)
	if err != nil {
		return s.reply(ctx, phone, msgInternalError, false)
	}
	return s.reply(ctx, phone, msgTextRegistered(tipo), written)
}

func (s *service) processLocation(ctx context.Context, empl *employee.Empleado, phone string, event InboundEvent) ProcessResult {
	log := contextutil.GetLogger(ctx, s.logger)

	report := geofence.Report{
		Latitude:  parseCoordinate(event.Latitude),
		Longitude: parseCoordinate(event.Longitude),
		Accuracy:  parseAccuracy(event.Accuracy),
	}

	site, err := s.sites.Site(ctx, empl.CompanyID.String())
	if err != nil {
		if errors.Is(err, companyerrors.ErrCompanyNotFound) {
			return s.reply(ctx, phone, msgCompanyNoSite, false)
		}
		log.Error("company site lookup failed",
			zap.String("company_id", empl.CompanyID.String()),
			zap.Error(err),
		)
		return s.reply(ctx, phone, msgInternalError, false)
	}

	ev := s.policy.Evaluate(report, site)
	log.Debug("geofence evaluated",
		zap.String("phone", phone),
		zap.String("verdict", ev.Verdict.String()),
		zap.Float64("distance_m", ev.DistanceMeters),
	)

	switch ev.Verdict {
	case geofence.VerdictInvalidCoordinates:
		return s.reply(ctx, phone, msgInvalidLocation, false)
	case geofence.VerdictMissingSite:
		return s.reply(ctx, phone, msgCompanyBadCoords, false)
	case geofence.VerdictImprecise:
		return s.reply(ctx, phone, msgImprecise(ev.AccuracyMeters), false)
	case geofence.VerdictOutOfRange:
		return s.reply(ctx, phone, msgOutOfRange(ev.DistanceMeters, s.policy.MaxDistanceMeters), false)
	}

	distance := geofence.Round2(ev.DistanceMeters)
	extra := &locationExtra{
		Latitude:       report.Latitude,
		Longitude:      report.Longitude,
		DistanceMeters: distance,
		Accuracy:       report.Accuracy,
	}

	written, err := s.registrar(ctx, empl, phone, RecordLocationCheck, extra)
	if err != nil {
		return s.reply(ctx, phone, msgInternalError, false)
	}
	return s.reply(ctx, phone, msgLocationAccepted(distance), written)
}

type locationExtra struct {
	Latitude       float64
	Longitude      float64
	DistanceMeters float64
	Accuracy       *float64
}

// registrar appends the checada and queues its event in one transaction.
// Returns written=false with a nil error when the delivery was a duplicate:
// the employee still gets the confirmation, but no second row exists.
func (s *service) registrar(ctx context.Context, empl *employee.Empleado, phone string, tipo RecordType, extra *locationExtra) (bool, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	if !tipo.Valid() {
		log.Error("rejecting unknown record type", zap.String("tipo", string(tipo)))
		return false, fmt.Errorf("unknown record type %q", tipo)
	}

	now := time.Now()
	ts := now.UnixMilli()
	day, hora := LocalPartition(ts, s.loc)
	bucket := ts / 60_000

	// Twilio delivers at-least-once; the same message inside the same
	// minute bucket is suppressed here before touching the ledger.
	if s.rdb != nil {
		key := fmt.Sprintf("checada:dedupe:%s:%s:%d", phone, tipo, bucket)
		isNew, err := s.rdb.SetNX(ctx, key, "1", 90*time.Second).Result()
		if err != nil {
			log.Warn("dedupe check failed, proceeding", zap.Error(err))
		} else if !isNew {
			log.Warn("duplicate delivery suppressed",
				zap.String("phone", phone),
				zap.String("tipo", string(tipo)),
			)
			return false, nil
		}
	}

	row := &Checada{
		ID:              uuid.New(),
		CompanyID:       empl.CompanyID,
		EmployeeID:      empl.ID,
		Phone:           phone,
		EmployeeName:    empl.FullName,
		Tipo:            tipo,
		TimestampMillis: ts,
		Day:             day,
		LocalTime:       hora,
		MinuteBucket:    bucket,
	}
	if extra != nil {
		row.Latitude = &extra.Latitude
		row.Longitude = &extra.Longitude
		row.DistanceMeters = &extra.DistanceMeters
		row.Accuracy = extra.Accuracy
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("registrar begin tx failed", zap.Error(err))
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, row); err != nil {
		if isDedupeViolation(err) {
			log.Warn("duplicate checada rejected by unique index",
				zap.String("phone", phone),
				zap.String("tipo", string(tipo)),
			)
			return false, nil
		}
		log.Error("registrar persist failed", zap.Error(err))
		return false, err
	}

	if s.outbox != nil {
		event := events.ChecadaRecordedEvent{
			EventType:       "checada_recorded",
			RequestID:       rid,
			ChecadaID:       row.ID.String(),
			CompanyID:       row.CompanyID.String(),
			Phone:           phone,
			Tipo:            string(tipo),
			TimestampMillis: ts,
			OccurredAt:      now.UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			log.Error("marshal checada event failed", zap.Error(err))
			return false, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "checada",
			AggregateID:   row.ID.String(),
			EventType:     event.EventType,
			Topic:         events.ChecadaRecordedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			log.Error("registrar outbox persist failed",
				zap.String("checada_id", row.ID.String()),
				zap.Error(err),
			)
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("registrar commit failed", zap.Error(err))
		return false, err
	}

	log.Info("checada registered",
		zap.String("request_id", rid),
		zap.String("checada_id", row.ID.String()),
		zap.String("tipo", string(tipo)),
		zap.String("dia", day),
	)
	return true, nil
}

// reply sends the text best-effort and packages the result. A notifier
// failure is logged and swallowed: the ledger write already happened and
// the webhook must still acknowledge the provider.
func (s *service) reply(ctx context.Context, phone, text string, recordWritten bool) ProcessResult {
	if s.notifier != nil && text != "" {
		if err := s.notifier.Send(ctx, phone, text); err != nil {
			contextutil.GetLogger(ctx, s.logger).Error("send reply failed",
				zap.String("to", phone),
				zap.Error(err),
			)
		}
	}
	return ProcessResult{ReplyText: text, RecordWritten: recordWritten}
}

func parseCoordinate(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseAccuracy returns nil for absent or unparseable accuracy: the policy
// treats missing accuracy as trusted, matching the legacy behavior.
func parseAccuracy(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func isDedupeViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_checadas_dedupe"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_checadas_dedupe")
}
