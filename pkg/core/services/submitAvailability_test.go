package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-select/pkg/db"
)

func TestSubmitAvailability_TokenNotFound(t *testing.T) {
	tokens := &fakeTokens{err: db.ErrNotFound}

	_, err := SubmitAvailability(context.Background(), tokens, &fakeStore{}, zap.NewNop(), "nope", nil, nil)

	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestSubmitAvailability_TokenExpired(t *testing.T) {
	data := validToken()
	data.ExpiresAt = time.Now().Add(-time.Minute)
	tokens := &fakeTokens{data: data}

	_, err := SubmitAvailability(context.Background(), tokens, &fakeStore{}, zap.NewNop(), "tok-abc", nil, nil)

	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSubmitAvailability_StoresValidWindows(t *testing.T) {
	tokens := &fakeTokens{data: validToken()}
	store := &fakeStore{}

	windows := []AvailabilityWindowInput{
		{Date: "2025-01-06", StartTime: "09:00", EndTime: "15:00"},
		{Date: "2025-01-08", StartTime: "22:00", EndTime: "02:00"},
	}

	result, err := SubmitAvailability(context.Background(), tokens, store, zap.NewNop(), "tok-abc", windows, []int{2, 4})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "sub-new", result.SubmissionID)
	assert.Equal(t, 2, result.Windows)
	assert.Empty(t, result.Rejected)

	assert.Equal(t, "emp-1", store.savedSubmission.EmployeeID)
	assert.Equal(t, "2025-01-05", store.savedSubmission.WeekStart)
	assert.Equal(t, []int{2, 4}, store.savedSubmission.OptionalMorningDays)

	// The stored payload round-trips through the weekly computation's parser.
	parsed := parseAvailabilityPayload(store.savedSubmission.Payload, zap.NewNop())
	require.Len(t, parsed, 2)
	assert.Equal(t, 1, parsed[0].DayOfWeek)
	assert.Equal(t, "09:00", parsed[0].StartTime)
	assert.Equal(t, 3, parsed[1].DayOfWeek)
}

func TestSubmitAvailability_RejectsInvalidWindowsInline(t *testing.T) {
	tokens := &fakeTokens{data: validToken()}
	store := &fakeStore{}

	windows := []AvailabilityWindowInput{
		{Date: "2025-01-06", StartTime: "09:00", EndTime: "15:00"},
		{Date: "not-a-date", StartTime: "09:00", EndTime: "15:00"},
		{Date: "2025-02-01", StartTime: "09:00", EndTime: "15:00"},
		{Date: "2025-01-07", StartTime: "9am", EndTime: "15:00"},
	}

	result, err := SubmitAvailability(context.Background(), tokens, store, zap.NewNop(), "tok-abc", windows, nil)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Windows)
	require.Len(t, result.Rejected, 3)
	assert.Equal(t, "invalid date", result.Rejected[0].Reason)
	assert.Equal(t, "date outside the selection week", result.Rejected[1].Reason)
	assert.Equal(t, "invalid time window", result.Rejected[2].Reason)

	var stored []AvailabilityWindowInput
	require.NoError(t, json.Unmarshal(store.savedSubmission.Payload, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "2025-01-06", stored[0].Date)
}

func TestSubmitAvailability_FiltersOutOfRangeMorningDays(t *testing.T) {
	tokens := &fakeTokens{data: validToken()}
	store := &fakeStore{}

	result, err := SubmitAvailability(context.Background(), tokens, store, zap.NewNop(), "tok-abc", nil, []int{-1, 3, 7})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []int{3}, store.savedSubmission.OptionalMorningDays)
}
