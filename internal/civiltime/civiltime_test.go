package civiltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEncodeShape(t *testing.T) {
	in := time.Date(2025, 9, 10, 11, 30, 0, 0, time.UTC)
	got := Encode(in)
	// Lisbon is UTC+1 in September (DST).
	require.Equal(t, "2025-09-10T12:30:00", got)
}

func TestRoundTrip(t *testing.T) {
	cases := []time.Time{
		time.Date(2025, 1, 15, 3, 4, 5, 0, time.UTC),
		time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 12, 31, 23, 0, 0, 0, Region),
	}
	for _, in := range cases {
		back, err := Decode(Encode(in))
		require.NoError(t, err)
		require.True(t, back.Equal(in.Truncate(time.Second)), "round trip %v -> %v", in, back)
	}
}

func TestDecodeFallback(t *testing.T) {
	got, err := Decode("2025-10-15T17:05:11.000Z")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 10, 15, 17, 5, 11, 0, time.UTC).Unix(), got.Unix())

	_, err = Decode("not a timestamp")
	require.Error(t, err)
}

func TestPeriodKeying(t *testing.T) {
	p := PeriodOf(time.Date(2025, 9, 10, 0, 0, 0, 0, Region))
	require.Equal(t, "2025-09", p.String())
	require.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, Region), p.Start())
	require.Equal(t, "2025-10", p.Next().String())

	parsed, err := ParsePeriod("2025-09")
	require.NoError(t, err)
	require.Equal(t, p, parsed)

	_, err = ParsePeriod("nope")
	require.Error(t, err)
}

func TestPeriodsBetween(t *testing.T) {
	start := time.Date(2025, 8, 20, 0, 0, 0, 0, Region)
	end := time.Date(2025, 10, 2, 0, 0, 0, 0, Region)
	ps := PeriodsBetween(start, end)
	require.Len(t, ps, 3)
	require.Equal(t, "2025-08", ps[0].String())
	require.Equal(t, "2025-09", ps[1].String())
	require.Equal(t, "2025-10", ps[2].String())

	require.Nil(t, PeriodsBetween(end, start))
	require.Len(t, PeriodsBetween(start, start), 1)
}
