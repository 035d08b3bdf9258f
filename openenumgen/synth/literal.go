package synth

import (
	"fmt"
	"math"
	"strconv"

	"github.com/broady/openenum/openenumgen/definition"
	"github.com/broady/openenum/openenumgen/ir"
)

// convertLiteral converts a normalized literal to the Go type the backing
// kind is represented by: string, int64, uint64, float64 or bool.
func convertLiteral(v any, b *ir.PrimitiveDescriptor) (any, error) {
	switch b.PrimitiveKind {
	case ir.PrimitiveString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return definition.FormatRaw(v), nil

	case ir.PrimitiveBool:
		switch v := v.(type) {
		case bool:
			return v, nil
		case string:
			return strconv.ParseBool(v)
		}

	case ir.PrimitiveInt:
		bits := bitSize(b)
		switch v := v.(type) {
		case int64:
			if !fitsInt(v, bits) {
				return nil, fmt.Errorf("%d overflows int%d", v, bits)
			}
			return v, nil
		case uint64:
			return nil, fmt.Errorf("%d overflows int%d", v, bits)
		case float64:
			if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
				return nil, fmt.Errorf("%v is not an integer", v)
			}
			return convertLiteral(int64(v), b)
		case string:
			return strconv.ParseInt(v, 10, bits)
		}

	case ir.PrimitiveUint:
		bits := bitSize(b)
		switch v := v.(type) {
		case int64:
			if v < 0 {
				return nil, fmt.Errorf("%d is negative", v)
			}
			return convertLiteral(uint64(v), b)
		case uint64:
			if bits < 64 && v>>bits != 0 {
				return nil, fmt.Errorf("%d overflows uint%d", v, bits)
			}
			return v, nil
		case float64:
			if v != math.Trunc(v) || v < 0 || v >= math.MaxUint64 {
				return nil, fmt.Errorf("%v is not an unsigned integer", v)
			}
			return convertLiteral(uint64(v), b)
		case string:
			return strconv.ParseUint(v, 10, bits)
		}

	case ir.PrimitiveFloat:
		var f float64
		switch v := v.(type) {
		case int64:
			f = float64(v)
		case uint64:
			f = float64(v)
		case float64:
			f = v
		case string:
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, err
			}
			f = parsed
		default:
			return nil, fmt.Errorf("%v (%T) is not a number", v, v)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%v is not a finite number", f)
		}
		if b.BitSize == 32 {
			if math.Abs(f) > math.MaxFloat32 {
				return nil, fmt.Errorf("%v overflows float32", f)
			}
			// Keep the float64 of the float32's shortest form, so literals
			// equal at float32 precision convert equally and print as written.
			f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'g', -1, 32), 64)
		}
		return f, nil
	}
	return nil, fmt.Errorf("%v (%T) is not a %s value", v, v, b.PrimitiveKind)
}

// inexact reports whether converting v produced a different number, as
// when a float rounds a large integer or a float32 cannot hold the literal.
func inexact(v, converted any) bool {
	f, ok := converted.(float64)
	if !ok {
		return false
	}
	switch v := v.(type) {
	case int64:
		return f < math.MinInt64 || f >= math.MaxInt64 || int64(f) != v
	case uint64:
		return f >= math.MaxUint64 || uint64(f) != v
	case float64:
		return f != v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		return err == nil && parsed != f
	}
	return false
}

// bitSize treats platform-sized integers as 64 bits wide.
func bitSize(b *ir.PrimitiveDescriptor) int {
	if b.BitSize == 0 {
		return 64
	}
	return b.BitSize
}

func fitsInt(v int64, bits int) bool {
	if bits >= 64 {
		return true
	}
	shift := 64 - bits
	return v<<shift>>shift == v
}
