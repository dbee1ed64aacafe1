// Package recipients normalizes recipient input from raw text or CSV files
// into lists of email addresses.
package recipients

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMissingEmailColumn is returned when a CSV file has no column named
// "Email" (matched case-insensitively).
var ErrMissingEmailColumn = errors.New(`csv file must have a column named "Email"`)

// FromText splits a comma-separated string of emails into a list. Entries
// are trimmed, empty entries are dropped and input order is preserved.
// Duplicates are kept as entered.
func FromText(raw string) []string {
	var emails []string
	for _, part := range strings.Split(raw, ",") {
		if email := strings.TrimSpace(part); email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}

// FromCSV extracts the "Email" column from a CSV file. The column name is
// matched case-insensitively. Rows with an empty email cell are dropped and
// duplicates are removed, keeping first-seen order.
func FromCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	emailCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "Email") {
			emailCol = i
			break
		}
	}
	if emailCol == -1 {
		return nil, ErrMissingEmailColumn
	}

	seen := make(map[string]struct{})
	var emails []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		if emailCol >= len(record) {
			continue
		}

		email := strings.TrimSpace(record[emailCol])
		if email == "" {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}

	return emails, nil
}
