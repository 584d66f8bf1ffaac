package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEventStatus(t *testing.T) {
	tests := []struct {
		in   string
		want EventStatus
	}{
		{"upcoming", StatusUpcoming},
		{"ongoing", StatusOngoing},
		{"completed", StatusCompleted},
		{"cancelled", StatusCancelled},
		{" Ongoing ", StatusOngoing},
		{"postponed", StatusUpcoming},
		{"", StatusUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEventStatus(tt.in))
		})
	}
}

func TestEventStatus_Label(t *testing.T) {
	assert.Equal(t, "Akan Datang", StatusUpcoming.Label(LocaleID))
	assert.Equal(t, "Berlangsung", StatusOngoing.Label(LocaleID))
	assert.Equal(t, "Selesai", StatusCompleted.Label(LocaleID))
	assert.Equal(t, "Dibatalkan", StatusCancelled.Label(LocaleID))
	assert.Equal(t, "Ongoing", StatusOngoing.Label(LocaleEN))
	assert.Equal(t, "postponed", EventStatus("postponed").Label(LocaleID))
	assert.Equal(t, "Selesai", StatusCompleted.Label(Locale("fr")))
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleEN, ParseLocale("EN"))
	assert.Equal(t, LocaleID, ParseLocale("id"))
	assert.Equal(t, LocaleID, ParseLocale("de"))
}

func TestComputeStatistics(t *testing.T) {
	events := []Event{
		{Status: StatusUpcoming},
		{Status: StatusUpcoming},
		{Status: StatusOngoing},
		{Status: StatusCancelled},
	}
	stats := ComputeStatistics(events)
	assert.Equal(t, Statistics{Total: 4, Upcoming: 2, Ongoing: 1, Cancelled: 1}, stats)
	assert.Equal(t, 2, stats.CountFor(StatusUpcoming))
	assert.Equal(t, 0, stats.CountFor(StatusCompleted))
}
