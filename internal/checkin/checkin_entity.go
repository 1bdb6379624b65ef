package checkin

import (
	"time"

	"github.com/google/uuid"
)

// RecordType is the closed set of checada types. The values are the legacy
// strings the original checador stored, kept for storage compatibility.
type RecordType string

const (
	RecordCheckIn       RecordType = "ENTRADA"
	RecordCheckOut      RecordType = "SALIDA"
	RecordLocationCheck RecordType = "UBICACION"
)

func (t RecordType) Valid() bool {
	switch t {
	case RecordCheckIn, RecordCheckOut, RecordLocationCheck:
		return true
	default:
		return false
	}
}

// Checada is one attendance event. Append-only: rows are never updated or
// deleted by this service. Employee name and company are denormalized at
// write time so the record stays stable if provisioning changes later.
//
// Day and LocalTime are derived from TimestampMillis in the employer's
// timezone, never the server's; payroll groups by Day downstream.
type Checada struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID      uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	Phone           string     `gorm:"column:numero;type:varchar(20);not null;uniqueIndex:uq_checadas_dedupe"`
	EmployeeName    string     `gorm:"column:empleado;type:varchar(150);not null"`
	Tipo            RecordType `gorm:"column:tipo;type:varchar(12);not null;uniqueIndex:uq_checadas_dedupe"`
	Latitude        *float64   `gorm:"column:latitude"`
	Longitude       *float64   `gorm:"column:longitude"`
	DistanceMeters  *float64   `gorm:"column:distancia"`
	Accuracy        *float64   `gorm:"column:accuracy"`
	TimestampMillis int64      `gorm:"column:timestamp_millis;not null"`
	Day             string     `gorm:"column:dia;type:varchar(10);not null;index"`
	LocalTime       string     `gorm:"column:hora;type:varchar(8);not null"`
	MinuteBucket    int64      `gorm:"column:minute_bucket;not null;uniqueIndex:uq_checadas_dedupe"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
}

func (Checada) TableName() string {
	return "checadas"
}
