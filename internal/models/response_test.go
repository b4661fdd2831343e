package models

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"askdata.insights.org/internal/catalog"
)

func nowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

func TestNewResponse(t *testing.T) {
	testData := map[string]string{"key": "value"}

	before := nowMillis()
	response := NewResponse(http.StatusCreated, testData, "Resource Created")
	after := nowMillis()

	assert.Equal(t, http.StatusCreated, response.Code, "Response code should match input")
	assert.Equal(t, testData, response.Data, "Response data should match input")
	assert.Equal(t, "Resource Created", response.Text, "Response text should match input")
	assert.Equal(t, 2, response.Version, "Response version should be 2")
	assert.GreaterOrEqual(t, response.CurrentTime, before)
	assert.LessOrEqual(t, response.CurrentTime, after)
}

func TestNewEntryResponse(t *testing.T) {
	entry := map[string]string{"indicator": "youth unemployment"}
	references := NewDatasetReferences(catalog.DatasetKPI)

	response := NewEntryResponse(entry, references)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	assert.InDelta(t, nowMillis(), response.CurrentTime, 100)

	responseData, ok := response.Data.(map[string]interface{})
	assert.True(t, ok, "Response data should be a map")
	assert.Equal(t, entry, responseData["entry"])
	assert.Equal(t, references, responseData["references"])
}

func TestNewListResponse(t *testing.T) {
	list := []string{"youth unemployment", "poverty rate"}
	references := NewEmptyReferences()

	response := NewListResponse(list, references)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, 2, response.Version)

	responseData, ok := response.Data.(map[string]interface{})
	assert.True(t, ok, "Response data should be a map")
	assert.Equal(t, list, responseData["list"])
	assert.Equal(t, references, responseData["references"])
	assert.False(t, responseData["limitExceeded"].(bool), "limitExceeded should be false")
}
