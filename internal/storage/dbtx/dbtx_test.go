package dbtx

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMicros_RoundTrip(t *testing.T) {
	in := time.Date(2025, 6, 1, 12, 0, 0, 123456000, time.UTC)
	assert.True(t, FromMicros(ToMicros(in)).Equal(in))

	assert.Nil(t, FromNullMicros(sql.NullInt64{}))
	got := FromNullMicros(sql.NullInt64{Int64: ToMicros(in), Valid: true})
	if assert.NotNil(t, got) {
		assert.True(t, got.Equal(in))
	}
}

func TestCeilMicro(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, CeilMicro(base).Equal(base))
	assert.True(t, CeilMicro(base.Add(5*time.Microsecond)).Equal(base.Add(5*time.Microsecond)))
	assert.True(t, CeilMicro(base.Add(5*time.Microsecond+1)).Equal(base.Add(6*time.Microsecond)))
}
