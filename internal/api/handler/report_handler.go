package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sharedcustody/custody-calendar/internal/api/metrics"
	"github.com/sharedcustody/custody-calendar/internal/core/domain"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
	"github.com/sharedcustody/custody-calendar/internal/core/service"
)

type ReportHandler struct {
	documents ports.DocumentService
	reports   ports.ReportService
}

func NewReportHandler(documents ports.DocumentService, reports ports.ReportService) *ReportHandler {
	return &ReportHandler{documents: documents, reports: reports}
}

type reportQuery struct {
	Kind   string `query:"kind" validate:"required,oneof=month quarter year"`
	Year   int    `query:"year" validate:"required,min=1,max=9999"`
	Index  int    `query:"index" validate:"min=0,max=11"`
	Format string `query:"format" validate:"omitempty,oneof=json csv"`
}

// Get renders a month, quarter or year report of the user's document.
//
// @Summary      Custody report
// @Tags         reports
// @Produce      json
// @Produce      text/csv
// @Security     BearerAuth
// @Param        username  query     string  true   "Username"
// @Param        kind      query     string  true   "month, quarter or year"
// @Param        year      query     int     true   "Four-digit year"
// @Param        index     query     int     false  "0-based month or quarter"
// @Param        format    query     string  false  "json (default) or csv"
// @Success      200       {object}  domain.Report
// @Failure      400       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/reports [get]
func (h *ReportHandler) Get(c echo.Context) error {
	username, err := queryUsername(c)
	if err != nil {
		return err
	}

	var q reportQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	if q.Format == "" {
		q.Format = "json"
	}

	doc, err := h.documents.Load(c.Request().Context(), username)
	if err != nil {
		return err
	}

	report, err := h.reports.Build(doc, domain.ReportRequest{
		Kind:  domain.ReportKind(q.Kind),
		Year:  q.Year,
		Index: q.Index,
	})
	if err != nil {
		return err
	}
	metrics.ReportsGeneratedTotal.WithLabelValues(q.Kind, q.Format).Inc()

	if q.Format == "csv" {
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename+".csv"))
		c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		c.Response().WriteHeader(http.StatusOK)
		return service.RenderCSV(c.Response(), report)
	}
	return c.JSON(http.StatusOK, report)
}
