package timeofday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Minutes
		wantErr bool
	}{
		{name: "24h morning", input: "09:00", want: 540},
		{name: "24h single digit hour", input: "9:30", want: 570},
		{name: "24h evening", input: "17:45", want: 1065},
		{name: "24h midnight", input: "00:00", want: 0},
		{name: "24h end of day boundary", input: "24:00", want: 1440},
		{name: "12h morning", input: "9:00 AM", want: 540},
		{name: "12h afternoon", input: "4:15 PM", want: 975},
		{name: "12 AM maps to midnight", input: "12:00 AM", want: 0},
		{name: "12 PM maps to noon", input: "12:00 PM", want: 720},
		{name: "12:30 AM stays before 1 AM", input: "12:30 AM", want: 30},
		{name: "lowercase meridiem", input: "10:00 pm", want: 1320},
		{name: "no space before meridiem", input: "10:00PM", want: 1320},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "noonish", wantErr: true},
		{name: "minute out of range", input: "10:75", wantErr: true},
		{name: "hour out of range 24h", input: "25:00", wantErr: true},
		{name: "hour out of range 12h", input: "13:00 PM", wantErr: true},
		{name: "24h past boundary", input: "24:01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "09:00", Minutes(540).String())
	assert.Equal(t, "00:05", Minutes(5).String())
	assert.Equal(t, "16:00", Minutes(960).String())
}

func TestClock12(t *testing.T) {
	assert.Equal(t, "9:00 AM", Minutes(540).Clock12())
	assert.Equal(t, "12:00 AM", Minutes(0).Clock12())
	assert.Equal(t, "12:00 PM", Minutes(720).Clock12())
	assert.Equal(t, "4:00 PM", Minutes(960).Clock12())
	assert.Equal(t, "11:59 PM", Minutes(1439).Clock12())
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd Minutes
		want                           bool
	}{
		{name: "partial overlap", aStart: 690, aEnd: 720, bStart: 680, bEnd: 700, want: true},
		{name: "containment", aStart: 600, aEnd: 720, bStart: 630, bEnd: 660, want: true},
		{name: "identical", aStart: 600, aEnd: 660, bStart: 600, bEnd: 660, want: true},
		{name: "adjacent before is not overlap", aStart: 690, aEnd: 720, bStart: 660, bEnd: 690, want: false},
		{name: "adjacent after is not overlap", aStart: 690, aEnd: 720, bStart: 720, bEnd: 750, want: false},
		{name: "disjoint", aStart: 540, aEnd: 600, bStart: 720, bEnd: 780, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Предикат симметричен по парам интервалов
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestScan(t *testing.T) {
	var m Minutes

	require.NoError(t, m.Scan("10:00"))
	assert.Equal(t, Minutes(600), m)

	// Легаси-записи с 12-часовым временем нормализуются при чтении
	require.NoError(t, m.Scan("2:30 PM"))
	assert.Equal(t, Minutes(870), m)

	require.NoError(t, m.Scan([]byte("08:15")))
	assert.Equal(t, Minutes(495), m)

	require.NoError(t, m.Scan(int64(75)))
	assert.Equal(t, Minutes(75), m)

	require.Error(t, m.Scan(3.14))
}

func TestJSONRoundTrip(t *testing.T) {
	m := Minutes(615)
	data, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"10:15"`, string(data))

	var parsed Minutes
	require.NoError(t, parsed.UnmarshalJSON([]byte(`"4:00 PM"`)))
	assert.Equal(t, Minutes(960), parsed)

	require.Error(t, parsed.UnmarshalJSON([]byte(`"soon"`)))
}

func TestWeekdayOf(t *testing.T) {
	// 2024-01-01 — понедельник
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Monday, WeekdayOf(monday))
	assert.Equal(t, Tuesday, WeekdayOf(monday.AddDate(0, 0, 1)))
	assert.Equal(t, Sunday, WeekdayOf(monday.AddDate(0, 0, 6)))
}
