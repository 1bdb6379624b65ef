package checkin

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The repository is built without a gorm handle here on purpose: an insert
// that escaped the bound transaction would have nowhere else to go, so the
// sqlmock expectations on the tx are the only path that can satisfy it.
func TestRepository_CreateJoinsBoundTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO checadas").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	row := &Checada{
		ID:              uuid.New(),
		CompanyID:       uuid.New(),
		EmployeeID:      uuid.New(),
		Phone:           "+5215512345678",
		EmployeeName:    "Ana Torres",
		Tipo:            RecordCheckIn,
		TimestampMillis: time.Now().UnixMilli(),
		Day:             "2024-3-1",
		LocalTime:       "23:50:00",
		MinuteBucket:    28400390,
	}

	require.NoError(t, NewRepository(nil).WithTx(tx).Create(context.Background(), row))

	// Rolling back must take the insert with it: no write may survive on
	// another connection.
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
