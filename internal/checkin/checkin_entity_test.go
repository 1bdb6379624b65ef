package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordTypeValid(t *testing.T) {
	assert.True(t, RecordCheckIn.Valid())
	assert.True(t, RecordCheckOut.Valid())
	assert.True(t, RecordLocationCheck.Valid())

	assert.False(t, RecordType("").Valid())
	assert.False(t, RecordType("PAUSA").Valid())
	assert.False(t, RecordType("entrada").Valid())
}
