package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Day Date `json:"day"`
	}

	d, err := ParseDate("2024-03-17")
	require.NoError(t, err)

	data, err := json.Marshal(wrapper{Day: d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"2024-03-17"}`, string(data))

	data, err = json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":null}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"day":"2023-12-31"}`), &w))
	assert.Equal(t, "2023-12-31", w.Day.String())

	require.NoError(t, json.Unmarshal([]byte(`{"day":null}`), &w))
	assert.True(t, w.Day.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"day":"17/03/2024"}`), &w))
}

func TestDate_Between(t *testing.T) {
	from, _ := ParseDate("2024-01-01")
	to, _ := ParseDate("2024-01-31")

	tests := []struct {
		day  string
		want bool
	}{
		{"2023-12-31", false},
		{"2024-01-01", true},
		{"2024-01-15", true},
		{"2024-01-31", true},
		{"2024-02-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			d, err := ParseDate(tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Between(from, to))
		})
	}
}

func TestDaysAgo(t *testing.T) {
	orig := NowFunc
	defer func() { NowFunc = orig }()
	NowFunc = func() time.Time { return time.Date(2024, 3, 3, 18, 30, 0, 0, time.UTC) }

	assert.Equal(t, "2024-03-03", Today().String())
	assert.Equal(t, "2024-02-25", DaysAgo(7).String())
	assert.Equal(t, "2024-02-29", DaysAgo(3).String())
}
