package models

import (
	"fmt"
	"strings"
)

// Column selects one of the five daily price fields returned by the provider.
//
// The zero value is not a valid column so that a missing "column" in a request
// body fails the `required` binding rule.
//
// swagger:model Column
type Column uint8

const (
	ColumnOpen Column = iota + 1
	ColumnHigh
	ColumnLow
	ColumnClose
	ColumnVolume
)

// Columns lists every valid column in declaration order.
var Columns = []Column{ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnVolume}

// ErrInvalidColumn is returned when a column literal is not one of the known fields.
type ErrInvalidColumn struct {
	Value string
}

func (e *ErrInvalidColumn) Error() string {
	return fmt.Sprintf("invalid column %q: must be one of %s", e.Value, columnNames())
}

// ParseColumn converts a literal such as "Close" into a Column.
// Matching is exact; "close" is rejected like any other unknown value.
func ParseColumn(s string) (Column, error) {
	for _, c := range Columns {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, &ErrInvalidColumn{Value: s}
}

func (c Column) String() string {
	switch c {
	case ColumnOpen:
		return "Open"
	case ColumnHigh:
		return "High"
	case ColumnLow:
		return "Low"
	case ColumnClose:
		return "Close"
	case ColumnVolume:
		return "Volume"
	default:
		return fmt.Sprintf("Column(%d)", uint8(c))
	}
}

// Valid reports whether c is one of the five known columns.
func (c Column) Valid() bool {
	return c >= ColumnOpen && c <= ColumnVolume
}

func (c Column) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, &ErrInvalidColumn{Value: c.String()}
	}
	return []byte(c.String()), nil
}

func (c *Column) UnmarshalText(b []byte) error {
	parsed, err := ParseColumn(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func columnNames() string {
	names := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
