package vm

import (
	"strconv"
	"strings"
)

// ParseValue recognizes an integer literal: NNNNNh (hex), NNNNNb
// (binary), or plain decimal, optionally sign-prefixed. The returned
// width is inferred from the magnitude: <=0xFF is byte, <=0xFFFF is word,
// <=0xFFFFFFFF is dword. Values outside the dword range fail with
// InvalidValue.
func ParseValue(tok string, line int) (uint32, Width, error) {
	t := strings.TrimSpace(tok)
	if t == "" {
		return 0, 0, &InvalidValueError{Line: line, Msg: "empty literal"}
	}

	negative := false
	body := t
	if strings.HasPrefix(body, "-") {
		negative = true
		body = body[1:]
	} else if strings.HasPrefix(body, "+") {
		body = body[1:]
	}

	var magnitude uint64
	var err error
	lower := strings.ToLower(body)
	switch {
	case strings.HasSuffix(lower, "h"):
		magnitude, err = strconv.ParseUint(lower[:len(lower)-1], 16, 64)
	case strings.HasSuffix(lower, "b") && isBinaryLiteral(lower):
		magnitude, err = strconv.ParseUint(lower[:len(lower)-1], 2, 64)
	default:
		magnitude, err = strconv.ParseUint(lower, 10, 64)
	}
	if err != nil {
		return 0, 0, &InvalidValueError{Line: line, Msg: "unparseable literal " + strconv.Quote(tok)}
	}

	value := magnitude
	if negative {
		if magnitude > 1<<31 {
			return 0, 0, &InvalidValueError{Line: line, Msg: "literal out of dword range: " + tok}
		}
		value = uint64(uint32(-int64(magnitude)))
	}
	if value > 0xFFFFFFFF {
		return 0, 0, &InvalidValueError{Line: line, Msg: "literal out of dword range: " + tok}
	}

	v := uint32(value)
	return v, widthFor(v), nil
}

// isBinaryLiteral reports whether a lower-cased, 'b'-suffixed token's
// digits are all 0/1 (so e.g. "deadbeefb", which ends in 'b' but is a hex
// digit run, is not mistaken for a binary literal without an explicit
// suffix check against its digit alphabet).
func isBinaryLiteral(lower string) bool {
	digits := lower[:len(lower)-1]
	if digits == "" {
		return false
	}
	for _, c := range digits {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}

// widthFor infers the narrowest width that can hold v.
func widthFor(v uint32) Width {
	switch {
	case v <= 0xFF:
		return WidthByte
	case v <= 0xFFFF:
		return WidthWord
	default:
		return WidthDword
	}
}
