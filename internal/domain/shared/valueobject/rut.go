package valueobject

import (
	"strings"

	"github.com/contable/backoffice/internal/domain/shared"
)

// RUT is a value object for the Chilean national tax identifier.
// It is immutable and always holds the canonical formatted representation
// (grouped numeric body, dash, uppercase check character).
type RUT struct {
	value string
}

// NewRUT creates a RUT from raw input, validating the mod-11 check digit.
// Both canonical ("76.523.829-3") and compact ("76523829-3") input are
// accepted.
func NewRUT(raw string) (RUT, error) {
	if !ValidateRUT(raw) {
		return RUT{}, shared.NewValidationError("rut", "check digit does not match")
	}
	return RUT{value: FormatRUT(raw)}, nil
}

// String returns the canonical formatted representation
func (r RUT) String() string {
	return r.value
}

// Compact returns the RUT without thousands separators ("76523829-3")
func (r RUT) Compact() string {
	return strings.ReplaceAll(r.value, ".", "")
}

// IsZero returns true for the zero-value RUT
func (r RUT) IsZero() bool {
	return r.value == ""
}

// ValidateRUT reports whether the given identifier carries a correct
// mod-11 check digit. Thousands separators are tolerated; any other
// malformed input returns false. It never panics.
func ValidateRUT(id string) bool {
	body, check, ok := splitRUT(strings.ReplaceAll(id, ".", ""))
	if !ok {
		return false
	}
	return computeCheckDigit(body) == check
}

// FormatRUT strips everything but digits and the check character,
// uppercases the check character and regroups the numeric body in blocks
// of three. Formatting is idempotent: FormatRUT(FormatRUT(x)) == FormatRUT(x).
// It does not validate; use ValidateRUT for that.
func FormatRUT(raw string) string {
	clean := compactRUT(raw)
	if len(clean) < 2 {
		return clean
	}
	body := clean[:len(clean)-1]
	check := clean[len(clean)-1]

	var sb strings.Builder
	for i, ch := range body {
		rest := len(body) - i
		if i > 0 && rest%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(ch)
	}
	sb.WriteByte('-')
	sb.WriteByte(check)
	return sb.String()
}

// compactRUT keeps only [0-9kK] characters, uppercasing a trailing 'k'
func compactRUT(raw string) string {
	var sb strings.Builder
	for _, ch := range raw {
		switch {
		case ch >= '0' && ch <= '9':
			sb.WriteRune(ch)
		case ch == 'k' || ch == 'K':
			sb.WriteByte('K')
		}
	}
	return sb.String()
}

// splitRUT splits "body-check" and verifies the shape digits '-' (digit|k|K)
func splitRUT(id string) (body string, check byte, ok bool) {
	dash := strings.LastIndexByte(id, '-')
	if dash <= 0 || dash != len(id)-2 {
		return "", 0, false
	}
	body = id[:dash]
	for _, ch := range body {
		if ch < '0' || ch > '9' {
			return "", 0, false
		}
	}
	check = id[len(id)-1]
	switch {
	case check >= '0' && check <= '9':
	case check == 'k':
		check = 'K'
	case check == 'K':
	default:
		return "", 0, false
	}
	return body, check, true
}

// computeCheckDigit runs the statutory mod-11 scheme: cyclic multipliers
// 2..7 over the body from the least significant digit, remainder 11 maps
// to '0' and 10 to 'K'.
func computeCheckDigit(body string) byte {
	sum := 0
	mult := 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * mult
		mult++
		if mult > 7 {
			mult = 2
		}
	}
	switch r := 11 - sum%11; r {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + r)
	}
}
