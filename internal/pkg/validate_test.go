package pkg

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"Community_Portal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() model.Event {
	date := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	return model.Event{
		Title:       "Summer Fair",
		Description: "Food trucks, music and games for all ages",
		Date:        date,
		Location:    "Central Park",
		Type:        "Social",
		StartTime:   date.Add(10 * time.Hour),
		EndTime:     date.Add(16 * time.Hour),
		Repeat:      model.RepeatNone,
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var appErr *AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	out := map[string]string{}
	for _, fe := range appErr.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestValidateEventTimes(t *testing.T) {
	e := validEvent()
	require.NoError(t, Validate(&e))

	e.EndTime = e.StartTime
	errs := fieldErrors(t, Validate(&e))
	assert.Equal(t, "endTime must be after startTime", errs["endTime"])
}

func TestValidateEventRepeat(t *testing.T) {
	e := validEvent()
	e.Repeat = model.RepeatWeekly
	errs := fieldErrors(t, Validate(&e))
	assert.Contains(t, errs, "repeatUntil")

	until := e.Date
	e.RepeatUntil = &until
	errs = fieldErrors(t, Validate(&e))
	assert.Equal(t, "repeatUntil must be after date", errs["repeatUntil"])

	later := e.Date.AddDate(0, 2, 0)
	e.RepeatUntil = &later
	assert.NoError(t, Validate(&e))

	e.Repeat = model.RepeatNone
	e.RepeatUntil = &until
	assert.NoError(t, Validate(&e))
}

func TestValidateCollectsAllErrors(t *testing.T) {
	s := model.School{Name: "AB", Type: "college", Phone: "12ab"}
	errs := fieldErrors(t, Validate(&s))

	assert.Equal(t, "name must be at least 3 characters", errs["name"])
	assert.Equal(t, "type must be one of: elementary, middle, high", errs["type"])
	assert.Equal(t, "phone must be 10-15 digits, spaces or dashes", errs["phone"])
	assert.Equal(t, "address is required", errs["address"])
	assert.NotContains(t, errs, "email")
}

func TestValidateSchoolEmail(t *testing.T) {
	email := "not-an-email"
	s := model.School{
		Name: "Oak Elementary", Type: "elementary", Address: "100 Main Street",
		Phone: "555 123 4567", Email: &email, Website: "https://oak.example",
		Direction: "Behind the library", District: "North",
	}
	errs := fieldErrors(t, Validate(&s))
	assert.Equal(t, "email must be a valid email", errs["email"])

	email = "office@oak.example"
	assert.NoError(t, Validate(&s))
}

func TestDecodeJSON(t *testing.T) {
	var link model.Link
	require.NoError(t, DecodeJSON(strings.NewReader(`{"title":"City","link":"https://city.example"}`), &link))
	assert.Equal(t, "City", link.Title)

	err := DecodeJSON(strings.NewReader(`{"title":"City","color":"red"}`), &link)
	errs := fieldErrors(t, err)
	assert.Equal(t, `"color" is not allowed`, errs["color"])

	var appErr *AppError
	require.True(t, errors.As(DecodeJSON(strings.NewReader(`{"title":`), &link), &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Status)

	require.True(t, errors.As(DecodeJSON(strings.NewReader(``), &link), &appErr))
	assert.Equal(t, "Request body is required", appErr.Message)
}
