package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go-checador/internal/checkin"
	"go-checador/internal/geofence"
	"go-checador/internal/notify"
	"go-checador/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp wires infrastructure and registers all routes on the router.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	notifier := notify.NewTwilioChannel(notify.TwilioConfig{
		AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		FromNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	})

	policy := geofence.NewPolicy(
		envFloat("GEOFENCE_MAX_ACCURACY_M"),
		envFloat("GEOFENCE_MAX_DISTANCE_M"),
	)

	loc, err := loadTimezone()
	if err != nil {
		return err
	}

	zap.L().Info("app configured",
		zap.Float64("max_accuracy_m", policy.MaxAccuracyMeters),
		zap.Float64("max_distance_m", policy.MaxDistanceMeters),
		zap.String("timezone", loc.String()),
	)

	return registerModules(router, db, gormDB, rdb, notifier, policy, loc)
}

// envFloat returns 0 for unset or malformed values; the policy constructor
// substitutes its defaults for zeros.
func envFloat(key string) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		zap.L().Warn("ignoring malformed env value", zap.String("key", key), zap.String("value", raw))
		return 0
	}
	return v
}

func loadTimezone() (*time.Location, error) {
	name := os.Getenv("CHECKIN_TIMEZONE")
	if name == "" {
		name = checkin.DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}
