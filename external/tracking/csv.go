package tracking

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/bitmark-inc/covid-chart/schema"
	"github.com/bitmark-inc/covid-chart/utils"
)

const (
	columnDate             = "date"
	columnPositive         = "positive"
	columnNegative         = "negative"
	columnPositiveIncrease = "positiveIncrease"
	columnDeathIncrease    = "deathIncrease"
	columnDeath            = "death"
)

var requiredColumns = []string{
	columnDate,
	columnPositive,
	columnNegative,
	columnPositiveIncrease,
	columnDeathIncrease,
	columnDeath,
}

// MissingColumnError is returned when the header lacks a required column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

// Parse reads a daily feed with a header row. Column order is free and extra
// columns are ignored. Blank numeric cells become schema.Missing. The result
// is sorted by ascending date.
func Parse(r io.Reader) ([]schema.DailyRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyResponse
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, &MissingColumnError{Column: c}
		}
	}

	var records []schema.DailyRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		record, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return records, nil
}

func parseRow(row []string, index map[string]int) (schema.DailyRecord, error) {
	var record schema.DailyRecord

	cell := func(column string) string {
		i := index[column]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := utils.ParseCompactDate(cell(columnDate))
	if err != nil {
		return record, fmt.Errorf("invalid date %q: %w", cell(columnDate), err)
	}
	record.Date = date

	fields := []struct {
		column string
		value  *float64
	}{
		{columnPositive, &record.Positive},
		{columnNegative, &record.Negative},
		{columnPositiveIncrease, &record.PositiveIncrease},
		{columnDeathIncrease, &record.DeathIncrease},
		{columnDeath, &record.Death},
	}
	for _, f := range fields {
		v, err := parseCount(cell(f.column))
		if err != nil {
			return record, fmt.Errorf("invalid %s: %w", f.column, err)
		}
		*f.value = v
	}

	return record, nil
}

func parseCount(s string) (float64, error) {
	if s == "" {
		return schema.Missing, nil
	}
	return strconv.ParseFloat(s, 64)
}
