package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapacity(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"100", intPtr(100)},
		{" 25 ", intPtr(25)},
		{"0", nil},
		{"-3", nil},
		{"abc", nil},
		{"", nil},
		{"12.5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCapacity(tt.in))
		})
	}
}

func TestOptionalText(t *testing.T) {
	assert.Nil(t, OptionalText(""))
	assert.Nil(t, OptionalText("   "))
	require.NotNil(t, OptionalText("notes"))
	assert.Equal(t, "notes", *OptionalText("notes"))
}

func TestEventForm_ToEvent(t *testing.T) {
	form := EventForm{
		Title:       "Workshop",
		Date:        "2025-02-01",
		Time:        "09:30",
		Location:    "Lab 3",
		Description: " ",
		Capacity:    "0",
	}

	e := form.ToEvent(nil)
	assert.Nil(t, e.ID)
	assert.Nil(t, e.Description)
	assert.Nil(t, e.Capacity)
	assert.Equal(t, StatusUpcoming, e.Status)

	draft := &Event{ID: strPtr("9")}
	edited := form.ToEvent(draft)
	require.NotNil(t, edited.ID)
	assert.Equal(t, "9", *edited.ID)
}

func TestFormFromEvent(t *testing.T) {
	e := validEvent()
	e.Description = strPtr("desc")
	e.Capacity = intPtr(40)
	e.Status = StatusOngoing

	form := FormFromEvent(&e)
	assert.Equal(t, "Tech Talk", form.Title)
	assert.Equal(t, "desc", form.Description)
	assert.Equal(t, "40", form.Capacity)
	assert.Equal(t, StatusOngoing, form.Status)

	assert.Equal(t, StatusUpcoming, FormFromEvent(nil).Status)
}
