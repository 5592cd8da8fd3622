// Package seed loads the locally seeded profile rows used as a fallback when
// the live API is unavailable. The file is plain CSV with the fixed column
// order: name, role, bio, email, phone, linkedin, github, photoUrl, username.
package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mferrerdev/gitfolio/internal/domain"
)

const columns = 9

// Load reads seed profiles from a CSV file on disk.
func Load(path string) ([]domain.SeedProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads seed profiles from CSV data. A first row whose leading column
// is "name" is treated as a header and skipped.
func Parse(r io.Reader) ([]domain.SeedProfile, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	profiles := []domain.SeedProfile{}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse seed row %d: %w", row, err)
		}
		row++
		if row == 1 && isHeader(record) {
			continue
		}
		if len(record) < columns {
			padded := make([]string, columns)
			copy(padded, record)
			record = padded
		}
		profiles = append(profiles, domain.SeedProfile{
			Name:     strings.TrimSpace(record[0]),
			Role:     strings.TrimSpace(record[1]),
			Bio:      strings.TrimSpace(record[2]),
			Email:    strings.TrimSpace(record[3]),
			Phone:    strings.TrimSpace(record[4]),
			LinkedIn: strings.TrimSpace(record[5]),
			GitHub:   strings.TrimSpace(record[6]),
			PhotoURL: strings.TrimSpace(record[7]),
			Username: strings.TrimSpace(record[8]),
		})
	}
	return profiles, nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "name")
}
