package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

const cellWidth = 5

// renderMonth writes a Monday-first month grid. Each day shows its number,
// the custodian tag (A, B or .) and a * when the day has notes.
func renderMonth(w io.Writer, doc domain.Document, year, month0 int, names domain.Names) {
	title := fmt.Sprintf("%s %d", domain.MonthNames[month0], year)
	width := cellWidth * len(domain.WeekdayNames)
	fmt.Fprintf(w, "%*s\n", (width+len(title))/2, title)

	var b strings.Builder
	for _, wd := range domain.WeekdayNames {
		fmt.Fprintf(&b, "%-*s", cellWidth, wd[:3])
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))

	b.Reset()
	col := domain.FirstWeekdayOffset(year, month0)
	b.WriteString(strings.Repeat(" ", col*cellWidth))
	keys := domain.MonthDateKeys(year, month0)
	for i, key := range keys {
		b.WriteString(cell(i+1, doc.Entry(key)))
		col++
		if col == len(domain.WeekdayNames) {
			fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
			b.Reset()
			col = 0
		}
	}
	if b.Len() > 0 {
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	t := domain.Totals(doc, keys)
	fmt.Fprintf(w, "A = %s, B = %s, * = notes\n", names.Of(domain.GuardianA), names.Of(domain.GuardianB))
	fmt.Fprintln(w, formatTotals(t, names))
}

func cell(day int, e domain.DayEntry) string {
	tag := "."
	if e.Custodian != domain.Unassigned {
		tag = string(e.Custodian)
	}
	note := " "
	if e.Notes != "" {
		note = "*"
	}
	return fmt.Sprintf("%2d%s%s ", day, tag, note)
}

func formatTotals(t domain.CustodyTotals, names domain.Names) string {
	return fmt.Sprintf("%s: %d  %s: %d  %s: %d",
		names.Of(domain.GuardianA), t.A, names.Of(domain.GuardianB), t.B, names.Of(domain.Unassigned), t.Unassigned)
}
