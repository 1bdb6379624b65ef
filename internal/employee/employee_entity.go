package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Empleado is an employee reachable over WhatsApp. Phone is the natural key
// the webhook resolves against: E.164 digits, no "whatsapp:" prefix.
type Empleado struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	FullName  string         `gorm:"column:full_name;type:varchar(150);not null"`
	Phone     string         `gorm:"column:phone;type:varchar(20);not null;uniqueIndex:uq_empleados_phone"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Empleado) TableName() string {
	return "empleados"
}

// NormalizePhone strips the transport prefix and whitespace so the same
// number always hits the same row ("whatsapp:+52 1 55..." -> "+5215...").
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "whatsapp:")
	return strings.ReplaceAll(s, " ", "")
}
