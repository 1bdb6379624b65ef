package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Empresa holds the geofence reference point employees must check in near.
// Coordinates are nullable: a company may exist before anyone registers its
// location, and that is a recoverable configuration state, not an error.
type Empresa struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"column:name;type:varchar(150);not null"`
	Latitude  *float64       `gorm:"column:latitude"`
	Longitude *float64       `gorm:"column:longitude"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Empresa) TableName() string {
	return "empresas"
}
