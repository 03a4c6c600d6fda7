// Package hsnseed reads the government HSN/SAC master workbook into
// HSN entries that can be imported into the hsn_codes table.
//
// The workbook has two relevant sheets. The first sheet lists goods (HSN)
// with 4, 6 and 8 digit codes on each row and a percentage rate. The
// SAC_Master sheet lists services with a free-text rate column that may
// name several rates ("5% (without ITC) or 18%").
package hsnseed

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"billbook/internal/gst"
)

// SACSheet is the sheet holding service codes.
const SACSheet = "SAC_Master"

const (
	hsnFirstRow = 5
	sacFirstRow = 3
)

// Column positions on the goods sheet.
const (
	hsnCode4 = 5
	hsnDesc4 = 7
	hsnCode6 = 8
	hsnDesc6 = 9
	hsnCode8 = 10
	hsnDesc8 = 12
	hsnRate  = 13
)

// Column positions on the services sheet.
const (
	sacCode4 = 0
	sacDesc4 = 1
	sacCode6 = 2
	sacDesc6 = 3
	sacRate  = 4
)

var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// Read extracts every distinct (code, rate) pair from the workbook. The
// services sheet is optional.
func Read(f *excelize.File) ([]gst.HSNEntry, error) {
	c := newCollector()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading HSN sheet: %w", err)
	}
	readGoods(c, rows)

	if idx, _ := f.GetSheetIndex(SACSheet); idx >= 0 {
		rows, err := f.GetRows(SACSheet)
		if err != nil {
			return nil, fmt.Errorf("reading SAC sheet: %w", err)
		}
		readServices(c, rows)
	}
	return c.entries, nil
}

func readGoods(c *collector, rows [][]string) {
	for i := hsnFirstRow; i < len(rows); i++ {
		row := rows[i]
		rateStr := strings.TrimSuffix(strings.TrimSpace(cell(row, hsnRate)), "%")
		if rateStr == "" {
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(rateStr))
		if err != nil {
			continue
		}
		c.add(cell(row, hsnCode8), cell(row, hsnDesc8), rate)
		c.add(cell(row, hsnCode6), cell(row, hsnDesc6), rate)
		c.add(cell(row, hsnCode4), cell(row, hsnDesc4), rate)
	}
}

func readServices(c *collector, rows [][]string) {
	for i := sacFirstRow; i < len(rows); i++ {
		row := rows[i]
		for _, rate := range ParseRates(cell(row, sacRate)) {
			c.add(cell(row, sacCode6), cell(row, sacDesc6), rate)
			c.add(cell(row, sacCode4), cell(row, sacDesc4), rate)
		}
	}
}

// ParseRates extracts the GST rates named in a free-text rate cell.
// "Exempt" and "Nil" mean 0; duplicates are dropped; order is preserved.
func ParseRates(s string) []decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "exempt", "nil":
		return []decimal.Decimal{decimal.Zero}
	}

	var rates []decimal.Decimal
	seen := make(map[string]bool)
	for _, m := range ratePattern.FindAllStringSubmatch(s, -1) {
		rate, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		key := rate.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		rates = append(rates, rate)
	}
	return rates
}

type collector struct {
	seen    map[string]bool
	entries []gst.HSNEntry
}

func newCollector() *collector {
	return &collector{seen: make(map[string]bool)}
}

func (c *collector) add(code, description string, rate decimal.Decimal) {
	code = strings.TrimSpace(code)
	if !gst.ValidHSN(code) {
		return
	}
	key := code + "|" + rate.String()
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.entries = append(c.entries, gst.HSNEntry{
		Code:        code,
		Description: strings.TrimSpace(description),
		GSTRate:     rate,
	})
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
