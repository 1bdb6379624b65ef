package checkin

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=checkin_repo.go -destination=mock/checkin_repo_mock.go -package=mock

// Repository is the attendance ledger. Append-only by design: nothing in
// this service reads, updates, or deletes checadas once written.
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, row *Checada) error
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

// Create inserts one checada. With a tx bound, the insert goes through that
// transaction so the row commits or rolls back together with the outbox
// event; gorm cannot adopt a database/sql transaction, so that path is raw.
func (r *repository) Create(ctx context.Context, row *Checada) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Create(row).Error
	}

	query := `
        INSERT INTO checadas (
            id, company_id, employee_id, numero, empleado, tipo,
            latitude, longitude, distancia, accuracy,
            timestamp_millis, dia, hora, minute_bucket, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
    `

	_, err := r.tx.ExecContext(
		ctx, query,
		row.ID, row.CompanyID, row.EmployeeID, row.Phone, row.EmployeeName, string(row.Tipo),
		row.Latitude, row.Longitude, row.DistanceMeters, row.Accuracy,
		row.TimestampMillis, row.Day, row.LocalTime, row.MinuteBucket,
	)
	return err
}
