package handlers

import (
	"net/http"
	"time"

	"clinic_agenda_go/db"
	"clinic_agenda_go/middleware"
	"clinic_agenda_go/models"
	"clinic_agenda_go/services"

	"github.com/labstack/echo/v4"
)

// BlockRequest is the create/update payload for agenda blocks
type BlockRequest struct {
	ProfessionalID string  `json:"professional_id"`
	StartAt        string  `json:"start_at"` // RFC3339
	EndAt          string  `json:"end_at"`   // RFC3339
	Title          string  `json:"title"`
	Description    *string `json:"description"`
}

func (r *BlockRequest) toBlock(c echo.Context) (*models.Block, error) {
	start, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid start_at format")
	}
	end, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid end_at format")
	}

	professionalID := r.ProfessionalID
	if professionalID == "" {
		professionalID = middleware.CurrentProfessionalID(c)
	}

	return &models.Block{
		ProfessionalID: professionalID,
		StartAt:        start.UTC(),
		EndAt:          end.UTC(),
		Title:          r.Title,
		Description:    r.Description,
	}, nil
}

// ListBlocksHandler returns blocks overlapping a date range, or all upcoming
// blocks when no range is given
func ListBlocksHandler(c echo.Context) error {
	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	if c.QueryParam("start") == "" && c.QueryParam("end") == "" {
		blocks, err := services.ListUpcomingBlocks(db.DB, professionalID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load blocks")
		}
		return c.JSON(http.StatusOK, blocks)
	}

	start, end, err := parseRangeParams(c)
	if err != nil {
		return err
	}

	blocks, err := services.ListBlocks(db.DB, professionalID, start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load blocks")
	}
	return c.JSON(http.StatusOK, blocks)
}

// GetBlockHandler returns a single block
func GetBlockHandler(c echo.Context) error {
	block, err := services.GetBlockByID(db.DB, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Block not found")
	}
	return c.JSON(http.StatusOK, block)
}

// CreateBlockHandler adds a block to a professional's agenda
func CreateBlockHandler(c echo.Context) error {
	var req BlockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	block, err := req.toBlock(c)
	if err != nil {
		return err
	}

	if err := services.CreateBlock(db.DB, block); err != nil {
		services.RecordError(db.DB, "blocks", "create", err, nil)
		notifier.Error("Could not create the block")
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	notifier.Success("Block created")
	return c.JSON(http.StatusCreated, block)
}

// UpdateBlockHandler updates an existing block
func UpdateBlockHandler(c echo.Context) error {
	existing, err := services.GetBlockByID(db.DB, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Block not found")
	}

	var req BlockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	block, err := req.toBlock(c)
	if err != nil {
		return err
	}
	block.ID = existing.ID
	block.CreatedAt = existing.CreatedAt

	if err := services.UpdateBlock(db.DB, block); err != nil {
		services.RecordError(db.DB, "blocks", "update", err, nil)
		notifier.Error("Could not update the block")
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	notifier.Success("Block updated")
	return c.JSON(http.StatusOK, block)
}

// DeleteBlockHandler removes a block
func DeleteBlockHandler(c echo.Context) error {
	if _, err := services.GetBlockByID(db.DB, c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Block not found")
	}

	if err := services.DeleteBlock(db.DB, c.Param("id")); err != nil {
		services.RecordError(db.DB, "blocks", "delete", err, nil)
		notifier.Error("Could not delete the block")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete block")
	}

	notifier.Success("Block deleted")
	return c.NoContent(http.StatusNoContent)
}

// CheckBlockOverlapHandler probes whether a candidate time range collides
// with existing blocks
func CheckBlockOverlapHandler(c echo.Context) error {
	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	start, end, err := parseRangeParams(c)
	if err != nil {
		return err
	}

	overlaps, err := services.CheckBlockOverlap(db.DB, professionalID, start, end, c.QueryParam("exclude_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check overlap")
	}

	return c.JSON(http.StatusOK, map[string]bool{"overlaps": overlaps})
}
