package domain

import "time"

// ReportKind selects the period a report covers.
type ReportKind string

const (
	ReportMonth   ReportKind = "month"
	ReportQuarter ReportKind = "quarter"
	ReportYear    ReportKind = "year"
)

// ReportRequest identifies a period. Index is the 0-based month for
// ReportMonth, the 0-based quarter for ReportQuarter and ignored for ReportYear.
type ReportRequest struct {
	Kind  ReportKind
	Year  int
	Index int
}

type ReportDay struct {
	Date      DateKey   `json:"date"`
	Weekday   string    `json:"weekday"`
	Custodian Custodian `json:"custodian"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
}

type ReportMonthSection struct {
	Month  string        `json:"month"`
	Year   int           `json:"year"`
	Days   []ReportDay   `json:"days"`
	Totals CustodyTotals `json:"totals"`
}

type LegendItem struct {
	Custodian Custodian `json:"custodian"`
	Name      string    `json:"name"`
}

// Report is the printable summary of one period of a document.
type Report struct {
	Title       string               `json:"title"`
	Filename    string               `json:"filename"`
	Legend      []LegendItem         `json:"legend"`
	Months      []ReportMonthSection `json:"months"`
	Totals      CustodyTotals        `json:"totals"`
	GeneratedAt time.Time            `json:"generated_at"`
}
