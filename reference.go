package gridcalc

import (
	"regexp"
	"strconv"
	"strings"
)

// referencePattern matches the canonical textual form of a reference:
// one or more column letters followed by a 1-based row number.
var referencePattern = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// CellReference identifies a cell by column letters and 1-based row
// number, e.g. "A1" or "AB10". Values are immutable and compared by
// value; construct them through ParseReference or ReferenceFromIndices.
type CellReference struct {
	Column string
	Row    int
}

// ParseReference builds a CellReference from text. Input is trimmed and
// case-normalized before matching, so " a1 " parses as "A1". Returns a
// FormatError when the text does not match the reference pattern or the
// row is not representable.
func ParseReference(text string) (CellReference, error) {
	match := referencePattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(text)))
	if match == nil {
		return CellReference{}, &FormatError{Input: text}
	}

	row, err := strconv.Atoi(match[2])
	if err != nil || row < 1 {
		return CellReference{}, &FormatError{Input: text}
	}

	return CellReference{Column: match[1], Row: row}, nil
}

// ReferenceFromIndices builds a CellReference from zero-based row and
// column indices: (0, 0) -> "A1", (9, 26) -> "AA10".
func ReferenceFromIndices(rowIndex, colIndex int) CellReference {
	return CellReference{
		Column: indexToColumn(colIndex),
		Row:    rowIndex + 1,
	}
}

// String returns the canonical uppercase form, column then row.
func (r CellReference) String() string {
	return r.Column + strconv.Itoa(r.Row)
}

// ToIndices converts the reference to zero-based (row, col) indices.
func (r CellReference) ToIndices() (rowIndex, colIndex int) {
	return r.Row - 1, columnToIndex(r.Column)
}

// columnToIndex maps column letters to a zero-based index using
// bijective base-26 with no zero digit: A=0, Z=25, AA=26, AB=27.
func columnToIndex(column string) int {
	index := 0
	for _, ch := range column {
		index = index*26 + int(ch-'A') + 1
	}
	return index - 1
}

// indexToColumn is the inverse of columnToIndex.
func indexToColumn(index int) string {
	var column []byte
	index++
	for index > 0 {
		index--
		column = append([]byte{byte('A' + index%26)}, column...)
		index /= 26
	}
	return string(column)
}
