package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"clinic_agenda_go/models"
	"clinic_agenda_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestCreateBlockHandler(t *testing.T) {
	database := setupTestDB(t)

	t.Run("Success", func(t *testing.T) {
		body := `{
			"start_at": "2026-03-16T12:00:00Z",
			"end_at": "2026-03-16T13:00:00Z",
			"title": "Lunch"
		}`
		_, c, rec := setupEcho(http.MethodPost, "/api/blocks", strings.NewReader(body))
		professional := createTestProfessional(t, database, c)

		err := CreateBlockHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var block models.Block
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &block))
		assert.NotEmpty(t, block.ID)
		assert.Equal(t, professional.ID, block.ProfessionalID)
	})

	t.Run("Missing title", func(t *testing.T) {
		body := `{
			"start_at": "2026-03-16T12:00:00Z",
			"end_at": "2026-03-16T13:00:00Z"
		}`
		_, c, _ := setupEcho(http.MethodPost, "/api/blocks", strings.NewReader(body))
		createTestProfessional(t, database, c)

		err := CreateBlockHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, err.(*echo.HTTPError).Code)
	})

	t.Run("Bad time format", func(t *testing.T) {
		body := `{"start_at": "noon", "end_at": "2026-03-16T13:00:00Z", "title": "Lunch"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/blocks", strings.NewReader(body))
		createTestProfessional(t, database, c)

		err := CreateBlockHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})
}

func TestListBlocksHandler(t *testing.T) {
	database := setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/blocks?start=2026-03-16&end=2026-03-17", nil)
	professional := createTestProfessional(t, database, c)

	assert.NoError(t, services.CreateBlock(database, &models.Block{
		ProfessionalID: professional.ID,
		StartAt:        testMonday.Add(9*time.Hour),
		EndAt:          testMonday.Add(11*time.Hour),
		Title:          "Vacation",
	}))

	err := ListBlocksHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var blocks []models.Block
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blocks))
	assert.Len(t, blocks, 1)
	assert.Equal(t, "Vacation", blocks[0].Title)
}

func TestUpdateBlockHandler(t *testing.T) {
	database := setupTestDB(t)

	body := `{
		"start_at": "2026-03-16T12:00:00Z",
		"end_at": "2026-03-16T14:00:00Z",
		"title": "Conference"
	}`
	_, c, rec := setupEcho(http.MethodPut, "/api/blocks/x", strings.NewReader(body))
	professional := createTestProfessional(t, database, c)

	block := &models.Block{
		ProfessionalID: professional.ID,
		StartAt:        testMonday.Add(12*time.Hour),
		EndAt:          testMonday.Add(13*time.Hour),
		Title:          "Lunch",
	}
	assert.NoError(t, services.CreateBlock(database, block))

	c.SetParamNames("id")
	c.SetParamValues(block.ID)

	err := UpdateBlockHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	reloaded, err := services.GetBlockByID(database, block.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Conference", reloaded.Title)
	assert.Equal(t, 14, reloaded.EndAt.UTC().Hour())
}

func TestDeleteBlockHandler(t *testing.T) {
	database := setupTestDB(t)

	_, c, rec := setupEcho(http.MethodDelete, "/api/blocks/x", nil)
	professional := createTestProfessional(t, database, c)

	block := &models.Block{
		ProfessionalID: professional.ID,
		StartAt:        testMonday.Add(12*time.Hour),
		EndAt:          testMonday.Add(13*time.Hour),
		Title:          "Lunch",
	}
	assert.NoError(t, services.CreateBlock(database, block))

	c.SetParamNames("id")
	c.SetParamValues(block.ID)

	err := DeleteBlockHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	t.Run("Not found", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodDelete, "/api/blocks/missing", nil)
		c.SetParamNames("id")
		c.SetParamValues("missing")

		err := DeleteBlockHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, err.(*echo.HTTPError).Code)
	})
}

func TestCheckBlockOverlapHandler(t *testing.T) {
	database := setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/blocks/overlap?start=2026-03-16T10:00:00Z&end=2026-03-16T12:00:00Z", nil)
	professional := createTestProfessional(t, database, c)

	assert.NoError(t, services.CreateBlock(database, &models.Block{
		ProfessionalID: professional.ID,
		StartAt:        testMonday.Add(9*time.Hour),
		EndAt:          testMonday.Add(11*time.Hour),
		Title:          "Vacation",
	}))

	err := CheckBlockOverlapHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result map[string]bool
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result["overlaps"])
}
