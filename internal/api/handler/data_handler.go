package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sharedcustody/custody-calendar/internal/api/metrics"
	"github.com/sharedcustody/custody-calendar/internal/core/domain"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
)

type DataHandler struct {
	documents ports.DocumentService
}

func NewDataHandler(documents ports.DocumentService) *DataHandler {
	return &DataHandler{documents: documents}
}

type saveResponse struct {
	Success bool `json:"success"`
}

// Get returns the user's whole custody document.
//
// @Summary      Load custody document
// @Tags         data
// @Produce      json
// @Security     BearerAuth
// @Param        username  query     string  true  "Username"
// @Success      200       {object}  map[string]domain.DayEntry
// @Failure      400       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/data [get]
func (h *DataHandler) Get(c echo.Context) error {
	username, err := queryUsername(c)
	if err != nil {
		return err
	}

	doc, err := h.documents.Load(c.Request().Context(), username)
	if err != nil {
		metrics.DocumentLoadsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.DocumentLoadsTotal.WithLabelValues("ok").Inc()

	if doc == nil {
		doc = domain.Document{}
	}
	return c.JSON(http.StatusOK, doc)
}

// Save replaces the user's custody document wholesale.
//
// @Summary      Save custody document
// @Tags         data
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  query     string                      true  "Username"
// @Param        body      body      map[string]domain.DayEntry  true  "Document keyed by YYYY-MM-DD"
// @Success      200       {object}  saveResponse
// @Failure      400       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/data [post]
func (h *DataHandler) Save(c echo.Context) error {
	username, err := queryUsername(c)
	if err != nil {
		return err
	}

	var doc domain.Document
	if err := c.Echo().JSONSerializer.Deserialize(c, &doc); err != nil {
		metrics.DocumentSavesTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if doc == nil {
		doc = domain.Document{}
	}

	start := time.Now()
	err = h.documents.Save(c.Request().Context(), username, doc)
	metrics.DocumentSaveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DocumentSavesTotal.WithLabelValues(saveResult(err)).Inc()
		return err
	}
	metrics.DocumentSavesTotal.WithLabelValues("ok").Inc()
	metrics.DocumentEntries.Observe(float64(len(doc)))

	return c.JSON(http.StatusOK, saveResponse{Success: true})
}

func saveResult(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return "invalid"
	}
	return "error"
}
