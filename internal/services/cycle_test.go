package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCurrentWeek(t *testing.T) {
	t.Run("monday start and sunday end share a key", func(t *testing.T) {
		monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
		sunday := time.Date(2025, 1, 19, 23, 59, 59, int(999*time.Millisecond), time.UTC)

		first := CurrentWeek(monday)
		last := CurrentWeek(sunday)

		require.Equal(t, first.Key, last.Key)
		require.Equal(t, "2025-01-13T00:00:00.000Z", first.Key)
	})

	t.Run("sunday belongs to the week that started the previous monday", func(t *testing.T) {
		sunday := time.Date(2025, 1, 19, 8, 30, 0, 0, time.UTC)

		cycle := CurrentWeek(sunday)

		require.Equal(t, time.Monday, cycle.Start.Weekday())
		require.Equal(t, 13, cycle.Start.Day())
	})

	t.Run("next monday starts a new cycle", func(t *testing.T) {
		sunday := time.Date(2025, 1, 19, 23, 59, 59, 0, time.UTC)
		monday := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

		require.NotEqual(t, CurrentWeek(sunday).Key, CurrentWeek(monday).Key)
	})

	t.Run("bounds cover the whole week", func(t *testing.T) {
		wednesday := time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)

		cycle := CurrentWeek(wednesday)

		require.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), cycle.Start)
		require.Equal(t, time.Date(2025, 1, 19, 23, 59, 59, int(999*time.Millisecond), time.UTC), cycle.End)
		require.False(t, wednesday.Before(cycle.Start))
		require.False(t, wednesday.After(cycle.End))
	})

	t.Run("uses the calendar of the given location", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)
		// Sunday 20:00 UTC is already Monday morning in Tokyo.
		instant := time.Date(2025, 1, 19, 20, 0, 0, 0, time.UTC)

		utcCycle := CurrentWeek(instant)
		tokyoCycle := CurrentWeek(instant.In(tokyo))

		require.Equal(t, 13, utcCycle.Start.Day())
		require.Equal(t, 20, tokyoCycle.Start.Day())
		require.Equal(t, "2025-01-20T00:00:00.000+09:00", tokyoCycle.Key)
	})
}

func TestWeekStart_CrossesMonthBoundary(t *testing.T) {
	saturday := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	start := WeekStart(saturday)

	require.Equal(t, time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC), start)
}
