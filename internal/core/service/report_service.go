package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

// ReportService assembles printable per-period summaries of a document.
type ReportService struct {
	names domain.Names
	now   func() time.Time
}

func NewReportService(names domain.Names) *ReportService {
	return &ReportService{names: names, now: time.Now}
}

// Build validates req and summarises doc over the requested period.
func (s *ReportService) Build(doc domain.Document, req domain.ReportRequest) (domain.Report, error) {
	if req.Year < 1 || req.Year > 9999 {
		return domain.Report{}, domain.Invalid("year must be between 1 and 9999")
	}

	var (
		months   []int
		title    string
		filename string
	)
	switch req.Kind {
	case domain.ReportMonth:
		if req.Index < 0 || req.Index > 11 {
			return domain.Report{}, domain.Invalid("month index must be between 0 and 11")
		}
		months = []int{req.Index}
		title = fmt.Sprintf("Custody Report: %s %d", domain.MonthNames[req.Index], req.Year)
		filename = fmt.Sprintf("custody-report-month-%d-%d", req.Year, req.Index+1)
	case domain.ReportQuarter:
		if req.Index < 0 || req.Index >= len(domain.Quarters) {
			return domain.Report{}, domain.Invalid("quarter index must be between 0 and 3")
		}
		q := domain.Quarters[req.Index]
		months = q.Months[:]
		title = fmt.Sprintf("Custody Report: %s %d", q.Name, req.Year)
		filename = fmt.Sprintf("custody-report-quarter-%d-%d", req.Year, req.Index+1)
	case domain.ReportYear:
		months = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
		title = fmt.Sprintf("Custody Report: %d", req.Year)
		filename = fmt.Sprintf("custody-report-year-%d", req.Year)
	default:
		return domain.Report{}, domain.Invalid(fmt.Sprintf("unknown report kind %q", req.Kind))
	}

	r := domain.Report{
		Title:       title,
		Filename:    filename,
		GeneratedAt: s.now().UTC(),
	}
	for _, c := range domain.Custodians {
		r.Legend = append(r.Legend, domain.LegendItem{Custodian: c, Name: s.names.Of(c)})
	}

	var all []domain.DateKey
	for _, m := range months {
		keys := domain.MonthDateKeys(req.Year, m)
		all = append(all, keys...)

		section := domain.ReportMonthSection{
			Month:  domain.MonthNames[m],
			Year:   req.Year,
			Totals: domain.Totals(doc, keys),
			Days:   make([]domain.ReportDay, 0, len(keys)),
		}
		for i, day := range domain.DaysInMonth(req.Year, m) {
			e := doc.Entry(keys[i])
			section.Days = append(section.Days, domain.ReportDay{
				Date:      keys[i],
				Weekday:   domain.WeekdayNames[(int(day.Weekday())+6)%7],
				Custodian: e.Custodian,
				Name:      s.names.Of(e.Custodian),
				Notes:     e.Notes,
			})
		}
		r.Months = append(r.Months, section)
	}
	r.Totals = domain.Totals(doc, all)

	return r, nil
}

// RenderCSV writes one row per day followed by one totals row per custodian.
func RenderCSV(w io.Writer, r domain.Report) error {
	cw := csv.NewWriter(w)

	rows := [][]string{{r.Title}, {"month", "date", "weekday", "custodian", "notes"}}
	for _, m := range r.Months {
		for _, d := range m.Days {
			rows = append(rows, []string{m.Month, string(d.Date), d.Weekday, d.Name, d.Notes})
		}
	}
	rows = append(rows, []string{})
	for _, item := range r.Legend {
		rows = append(rows, []string{"total", item.Name, strconv.Itoa(r.Totals.Of(item.Custodian))})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("render csv: %w", err)
	}
	return nil
}
