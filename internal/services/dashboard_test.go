// internal/services/dashboard_test.go
package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalStatsShape(t *testing.T) {
	data, err := json.Marshal(GlobalStats{})
	require.NoError(t, err)

	for _, key := range []string{
		`"suspended"`, `"rejected"`, `"activePercentage"`,
		`"today"`, `"revenue"`, `"categories"`, `"weeklyGrowth"`,
	} {
		assert.Contains(t, string(data), key)
	}
}

func TestActivityShape(t *testing.T) {
	data, err := json.Marshal(Activity{})
	require.NoError(t, err)

	for _, key := range []string{
		`"id"`, `"type"`, `"action"`, `"title"`,
		`"description"`, `"status"`, `"timestamp"`, `"relatedData"`,
	} {
		assert.Contains(t, string(data), key)
	}
}

func TestGrowthPercent(t *testing.T) {
	assert.Equal(t, 0.0, growthPercent(0, 0))
	assert.Equal(t, 100.0, growthPercent(0, 7))
	assert.Equal(t, 50.0, growthPercent(10, 15))
	assert.Equal(t, -50.0, growthPercent(10, 5))
	assert.Equal(t, 0.0, growthPercent(10, 10))
	assert.Equal(t, 33.3, growthPercent(3, 4))
}

func TestGrowthPercentF(t *testing.T) {
	assert.Equal(t, 0.0, growthPercentF(0, 0))
	assert.Equal(t, 100.0, growthPercentF(0, 1234.5))
	assert.Equal(t, 25.0, growthPercentF(1000, 1250))
	assert.Equal(t, -10.0, growthPercentF(1000, 900))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, percentage(5, 0))
	assert.Equal(t, 50.0, percentage(5, 10))
	assert.Equal(t, 66.7, percentage(2, 3))
	assert.Equal(t, 100.0, percentage(10, 10))
}

func TestDensifyDays(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	counts := map[string]DayBucket{
		"2026-08-02": {Date: "2026-08-02", Count: 3, Revenue: 120},
		"2026-08-05": {Date: "2026-08-05", Count: 1, Revenue: 40},
	}

	buckets := densifyDays(counts, start, 7)

	require.Len(t, buckets, 7)
	assert.Equal(t, "2026-08-01", buckets[0].Date)
	assert.Equal(t, "2026-08-07", buckets[6].Date)
	assert.Equal(t, int64(0), buckets[0].Count)
	assert.Equal(t, int64(3), buckets[1].Count)
	assert.Equal(t, 120.0, buckets[1].Revenue)
	assert.Equal(t, int64(1), buckets[4].Count)

	// Chronological order throughout.
	for i := 1; i < len(buckets); i++ {
		assert.Less(t, buckets[i-1].Date, buckets[i].Date)
	}
}

func TestDensifyMonthsCrossesYearBoundary(t *testing.T) {
	start := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	monthCounts := map[string]MonthBucket{
		"2026-01": {Month: "2026-01", Count: 4, Revenue: 900},
	}

	buckets := densifyMonths(monthCounts, start, 4)

	require.Len(t, buckets, 4)
	assert.Equal(t, "2025-11", buckets[0].Month)
	assert.Equal(t, "2025-12", buckets[1].Month)
	assert.Equal(t, "2026-01", buckets[2].Month)
	assert.Equal(t, "2026-02", buckets[3].Month)
	assert.Equal(t, int64(4), buckets[2].Count)
	assert.Equal(t, int64(0), buckets[3].Count)
}

func TestDayAndMonthStartUseUTCBoundary(t *testing.T) {
	east := time.FixedZone("UTC+5", 5*3600)
	// 02:30 local is still the previous day in UTC.
	ts := time.Date(2026, 8, 29, 2, 30, 0, 0, east)

	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), dayStart(ts))
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), monthStart(ts))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 33.3, round1(33.333))
	assert.Equal(t, 66.7, round1(66.666))
	assert.Equal(t, -50.0, round1(-50.0))
}
