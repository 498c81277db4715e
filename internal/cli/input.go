package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// readPIN prompts for a PIN without echoing it.
func readPIN(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "PIN: "); err != nil {
		return "", err
	}
	pin, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pin)), nil
}

// parsePeriod reads "<kind> <year> [n]" where n is the 1-based month or
// quarter. The year kind takes no n.
func parsePeriod(args []string) (domain.ReportRequest, []string, error) {
	if len(args) < 2 {
		return domain.ReportRequest{}, nil, fmt.Errorf("usage: month|quarter|year <year> [n]")
	}
	req := domain.ReportRequest{Kind: domain.ReportKind(strings.ToLower(args[0]))}

	year, err := strconv.Atoi(args[1])
	if err != nil {
		return domain.ReportRequest{}, nil, fmt.Errorf("invalid year %q", args[1])
	}
	req.Year = year
	rest := args[2:]

	switch req.Kind {
	case domain.ReportYear:
	case domain.ReportMonth, domain.ReportQuarter:
		if len(rest) == 0 {
			return domain.ReportRequest{}, nil, fmt.Errorf("%s needs a number", req.Kind)
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			return domain.ReportRequest{}, nil, fmt.Errorf("invalid %s %q", req.Kind, rest[0])
		}
		req.Index = n - 1
		rest = rest[1:]
	default:
		return domain.ReportRequest{}, nil, fmt.Errorf("unknown period %q", args[0])
	}
	return req, rest, nil
}

// parseMonth reads "[year month]" with a 1-based month, falling back to the
// month of now.
func parseMonth(args []string, year, month0 int) (int, int, error) {
	if len(args) == 0 {
		return year, month0, nil
	}
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("usage: show [year month]")
	}
	y, err := strconv.Atoi(args[0])
	if err != nil || y < 1 || y > 9999 {
		return 0, 0, fmt.Errorf("invalid year %q", args[0])
	}
	m, err := strconv.Atoi(args[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("invalid month %q", args[1])
	}
	return y, m - 1, nil
}
