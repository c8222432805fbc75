package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateFacultyNumber(t *testing.T) {
	for i := 0; i < 100; i++ {
		fn := GenerateFacultyNumber()
		assert.Len(t, fn, 7)
		assert.True(t, strings.HasPrefix(fn, "F"))
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, GetNullInt64(nil).Valid)
	id := int64(5)
	assert.Equal(t, int64(5), GetNullInt64(&id).Int64)

	assert.False(t, GetNullInt32(nil).Valid)
	grade := 4
	assert.Equal(t, int32(4), GetNullInt32(&grade).Int32)

	assert.False(t, GetNullString(nil).Valid)
	s := "Hall 210"
	assert.Equal(t, "Hall 210", GetNullString(&s).String)
}
