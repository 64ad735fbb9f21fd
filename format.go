// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package jpegexif

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// refLookup returns the formatted value of an ASCII tag in the same IFD, or "".
type refLookup func(tag uint16) string

type float64Provider interface {
	Float64() float64
}

// formatValue maps a decoded value to its display string.
func formatValue(spec fieldSpec, v any, ref refLookup) string {
	switch spec.kind {
	case kindASCII:
		return printableString(toString(v))
	case kindRational:
		return numberString(v) + spec.unit
	case kindRawRational:
		return ratString(v)
	case kindAPEX:
		return ratString(v) + " (APEX)"
	case kindEnum:
		return enumString(spec, v)
	case kindFlash:
		return flashString(v)
	case kindVersion:
		return printableString(toString(v))
	case kindDMS:
		return dmsString(spec, v, ref)
	case kindTime:
		f := toFloats(v)
		if len(f) != 3 {
			return numberString(v)
		}
		return fmt.Sprintf("%s:%s:%s", formatFloat(f[0]), formatFloat(f[1]), formatFloat(f[2]))
	default:
		if u, ok := toUint(v); ok && u == 0 && spec.zero != "" {
			return spec.zero
		}
		return numberString(v) + spec.unit
	}
}

func enumString(spec fieldSpec, v any) string {
	u, ok := toUint(v)
	if !ok {
		return numberString(v)
	}
	if s, found := spec.enum[uint16(u)]; found && u <= math.MaxUint16 {
		return s
	}
	if spec.fallback != "" {
		return spec.fallback
	}
	return numberString(v)
}

// Flash bits: 0 is fired, 3-4 is the mode.
func flashString(v any) string {
	bits, ok := toUint(v)
	if !ok {
		return numberString(v)
	}

	var sb strings.Builder
	if bits&0x01 == 0 {
		sb.WriteString("Did not fire")
	} else {
		sb.WriteString("Fired")
	}

	switch (bits & 0x18) >> 3 {
	case 0:
		sb.WriteString(" (unknown mode)")
	case 1:
		sb.WriteString(" (compulsory flash firing)")
	case 2:
		sb.WriteString(" (compulsory flash suppression)")
	case 3:
		sb.WriteString(" (auto mode)")
	}

	return sb.String()
}

// dmsString formats a degrees, minutes, seconds triple as D°M'S" followed by the hemisphere.
func dmsString(spec fieldSpec, v any, ref refLookup) string {
	f := toFloats(v)
	if len(f) != 3 {
		return numberString(v)
	}
	hemisphere := ""
	if ref != nil {
		hemisphere = ref(spec.refTag)
	}
	if hemisphere == "" {
		hemisphere = spec.defaultRef
	}
	return fmt.Sprintf("%s°%s'%s\"%s", formatFloat(f[0]), formatFloat(f[1]), formatFloat(f[2]), hemisphere)
}

// ratString formats rationals as num/den, also when den is 1.
func ratString(v any) string {
	switch vv := v.(type) {
	case Rat[uint32]:
		return fmt.Sprintf("%d/%d", vv.Num(), vv.Den())
	case Rat[int32]:
		return fmt.Sprintf("%d/%d", vv.Num(), vv.Den())
	case []Rat[uint32]:
		return joinValues(vv, func(r Rat[uint32]) string { return ratString(r) })
	case []Rat[int32]:
		return joinValues(vv, func(r Rat[int32]) string { return ratString(r) })
	default:
		return numberString(v)
	}
}

func numberString(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case uint8, uint16, uint32, int8, int16, int32:
		return fmt.Sprintf("%d", vv)
	case float32:
		return strconv.FormatFloat(float64(vv), 'f', -1, 32)
	case float64:
		return formatFloat(vv)
	case float64Provider:
		return formatFloat(vv.Float64())
	case string:
		return printableString(vv)
	case []byte:
		return joinValues(vv, func(b byte) string { return strconv.Itoa(int(b)) })
	case []int8:
		return joinValues(vv, func(n int8) string { return numberString(n) })
	case []uint16:
		return joinValues(vv, func(n uint16) string { return numberString(n) })
	case []int16:
		return joinValues(vv, func(n int16) string { return numberString(n) })
	case []uint32:
		return joinValues(vv, func(n uint32) string { return numberString(n) })
	case []int32:
		return joinValues(vv, func(n int32) string { return numberString(n) })
	case []float32:
		return joinValues(vv, func(n float32) string { return numberString(n) })
	case []float64:
		return joinValues(vv, formatFloat)
	case []Rat[uint32]:
		return joinValues(vv, func(r Rat[uint32]) string { return formatFloat(r.Float64()) })
	case []Rat[int32]:
		return joinValues(vv, func(r Rat[int32]) string { return formatFloat(r.Float64()) })
	default:
		return fmt.Sprintf("%v", vv)
	}
}

func joinValues[T any](vals []T, f func(T) string) string {
	var sb strings.Builder
	for i, v := range vals {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(f(v))
	}
	return sb.String()
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "undef"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// toUint returns the first element of an unsigned integer value.
func toUint(v any) (uint64, bool) {
	switch vv := v.(type) {
	case uint8:
		return uint64(vv), true
	case uint16:
		return uint64(vv), true
	case uint32:
		return uint64(vv), true
	case []byte:
		if len(vv) > 0 {
			return uint64(vv[0]), true
		}
	case []uint16:
		if len(vv) > 0 {
			return uint64(vv[0]), true
		}
	case []uint32:
		if len(vv) > 0 {
			return uint64(vv[0]), true
		}
	}
	return 0, false
}

func toFloats(v any) []float64 {
	switch vv := v.(type) {
	case []Rat[uint32]:
		f := make([]float64, len(vv))
		for i, r := range vv {
			f[i] = r.Float64()
		}
		return f
	case []Rat[int32]:
		f := make([]float64, len(vv))
		for i, r := range vv {
			f[i] = r.Float64()
		}
		return f
	case []float64:
		return vv
	case float64Provider:
		return []float64{vv.Float64()}
	default:
		return nil
	}
}

func toString(v any) string {
	switch vv := v.(type) {
	case string:
		return vv
	case []byte:
		return string(trimBytesNulls(vv))
	default:
		return numberString(vv)
	}
}

func printableString(s string) string {
	ss := strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, s)

	return strings.TrimSpace(ss)
}

func trimBytesNulls(b []byte) []byte {
	var lo, hi int
	for lo = 0; lo < len(b) && b[lo] == 0; lo++ {
	}
	for hi = len(b) - 1; hi >= 0 && b[hi] == 0; hi-- {
	}
	if lo > hi {
		return nil
	}
	return b[lo : hi+1]
}
