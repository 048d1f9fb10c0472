package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

// ParseCurrency parses currency-like text. It strips "$", "," and whitespace,
// reads "(1.00)" as negative and returns 0 for anything it cannot parse,
// including the accounting "$ -" placeholder.
func ParseCurrency(s string) float64 {
	s = strings.Map(func(r rune) rune {
		if r == '$' || r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" || strings.Trim(s, "-") == "" {
		return 0
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if neg {
		v = -v
	}
	return v
}

// CellValue returns the numeric value of a cell, parsing text as currency.
func CellValue(c models.Cell) float64 {
	if c.Kind == models.CellNumber {
		return c.Number
	}
	return ParseCurrency(c.Text)
}

// CellManhours returns nil for an empty cell. Non-numeric text returns nil and
// an error describing the cell.
func CellManhours(c models.Cell) (*float64, error) {
	if c.IsEmpty() {
		return nil, nil
	}
	if c.Kind == models.CellNumber {
		v := c.Number
		return &v, nil
	}
	s := strings.ReplaceAll(strings.TrimSpace(c.Text), ",", "")
	if strings.Trim(s, "-") == "" {
		return nil, nil
	}
	v, ok := parseNumber(s)
	if !ok {
		return nil, fmt.Errorf("invalid manhours %q", c.Text)
	}
	return &v, nil
}
