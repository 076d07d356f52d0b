package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedNormalizer() DateNormalizer {
	return DateNormalizer{Now: func() time.Time {
		return time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	}}
}

func TestNormalizeAcceptedFormats(t *testing.T) {
	n := fixedNormalizer()
	cases := []struct {
		input string
		want  string
	}{
		{input: "2024-01-01", want: "2024-01-01"},
		{input: " 2024-01-02 ", want: "2024-01-02"},
		{input: "2024-01-03T10:11:12Z", want: "2024-01-03"},
		{input: "2024-01-04T23:30:00-05:00", want: "2024-01-05"},
		{input: "2024-01-06T08:00:00.123456789Z", want: "2024-01-06"},
		{input: "2024-01-07T08:00:00", want: "2024-01-07"},
		{input: "2024-01-08 08:00:00", want: "2024-01-08"},
		{input: "2024/01/09", want: "2024-01-09"},
	}
	for _, tc := range cases {
		got, ok := n.NormalizeField(tc.input)
		assert.True(t, ok, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestNormalizeAcceptsTimeValues(t *testing.T) {
	n := fixedNormalizer()
	ts := time.Date(2024, 6, 1, 22, 0, 0, 0, time.FixedZone("x", -4*3600))
	assert.Equal(t, "2024-06-02", n.Normalize(ts))
	assert.Equal(t, "2024-06-02", n.Normalize(&ts))
}

func TestNormalizeFallsBackToToday(t *testing.T) {
	n := fixedNormalizer()
	for _, input := range []any{nil, "", "yesterday", "2024-13-40", 20240101, true, map[string]any{}, time.Time{}} {
		got, ok := n.NormalizeField(input)
		assert.False(t, ok, "input %#v", input)
		assert.Equal(t, "2025-03-14", got, "input %#v", input)
	}
}

func TestNormalizeDefaultsToWallClock(t *testing.T) {
	got := DateNormalizer{}.Normalize("garbage")
	_, err := time.Parse(DateLayout, got)
	assert.NoError(t, err)
}
