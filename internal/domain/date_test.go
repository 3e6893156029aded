package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-14")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 14, d.Day())
	assert.Equal(t, "2026-02-14", d.String())

	_, err = ParseDate("14/02/2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2026, time.August, 28)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-28"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-08-28"`), &parsed))
	assert.True(t, parsed.Equal(d.Time))

	assert.Error(t, json.Unmarshal([]byte(`"not a date"`), &parsed))
	assert.Error(t, json.Unmarshal([]byte(`42`), &parsed))
}

func TestDate_NilPointerMarshalsNull(t *testing.T) {
	var d *Date
	data, err := json.Marshal(struct {
		Checkout *Date `json:"checkout_date"`
	}{d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"checkout_date":null}`, string(data))
}
