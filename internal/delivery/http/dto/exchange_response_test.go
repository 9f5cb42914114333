package dto

import (
	"encoding/json"
	"testing"

	"skillswap/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeResponseCarriesRequestFields(t *testing.T) {
	reqID := uuid.New()
	title := "Need a Go study partner"
	description := "Weekly pairing on goroutines and channels"
	urgency := "high"
	timeframe := "next two weeks"

	res := NewExchangeResponse(usecase.ExchangeItem{
		ID:                 uuid.New(),
		Status:             "pending",
		RequestID:          &reqID,
		RequestTitle:       &title,
		RequestDescription: &description,
		RequestUrgency:     &urgency,
		RequestTimeframe:   &timeframe,
	})

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, title, decoded["request_title"])
	assert.Equal(t, description, decoded["request_description"])
	assert.Equal(t, urgency, decoded["request_urgency"])
	assert.Equal(t, timeframe, decoded["request_timeframe"])
}

func TestExchangeResponseOmitsEmptyRequest(t *testing.T) {
	raw, err := json.Marshal(NewExchangeResponse(usecase.ExchangeItem{
		ID:     uuid.New(),
		Status: "pending",
	}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.NotContains(t, decoded, "request_id")
	assert.NotContains(t, decoded, "request_title")
	assert.NotContains(t, decoded, "request_description")
}
