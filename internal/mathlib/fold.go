package mathlib

// FoldBinary folds `a op b` where op is one of the arithmetic, comparison,
// bitwise, or shift operators the simplifier's constant-folding phase
// recognizes. The second return value is false when op isn't a foldable
// binary operator or would divide by zero, in which case the caller must
// leave the expression untouched rather than guess.
func FoldBinary(op string, a, b Value) (Value, bool) {
	if a.Kind == KindFloat || b.Kind == KindFloat {
		return foldFloatBinary(op, a.AsFloat(), b.AsFloat())
	}
	return foldIntBinary(op, a, b)
}

func foldIntBinary(op string, a, b Value) (Value, bool) {
	x, y := a.I, b.I
	unsigned := a.Unsigned || b.Unsigned
	long := a.Long || b.Long

	intResult := func(v int64) (Value, bool) {
		return Value{Kind: KindInt, I: v, Unsigned: unsigned, Long: long}, true
	}
	boolResult := func(v bool) (Value, bool) {
		if v {
			return Value{Kind: KindInt, I: 1}, true
		}
		return Value{Kind: KindInt, I: 0}, true
	}

	switch op {
	case "+":
		return intResult(x + y)
	case "-":
		return intResult(x - y)
	case "*":
		return intResult(x * y)
	case "/":
		if y == 0 {
			return Value{}, false
		}
		return intResult(x / y)
	case "%":
		if y == 0 {
			return Value{}, false
		}
		return intResult(x % y)
	case "<<":
		return intResult(x << uint64(y))
	case ">>":
		return intResult(x >> uint64(y))
	case "&":
		return intResult(x & y)
	case "|":
		return intResult(x | y)
	case "^":
		return intResult(x ^ y)
	case "==":
		return boolResult(x == y)
	case "!=":
		return boolResult(x != y)
	case "<":
		return boolResult(x < y)
	case "<=":
		return boolResult(x <= y)
	case ">":
		return boolResult(x > y)
	case ">=":
		return boolResult(x >= y)
	case "&&":
		return boolResult(x != 0 && y != 0)
	case "||":
		return boolResult(x != 0 || y != 0)
	default:
		return Value{}, false
	}
}

func foldFloatBinary(op string, x, y float64) (Value, bool) {
	floatResult := func(v float64) (Value, bool) {
		return Value{Kind: KindFloat, F: v}, true
	}
	boolResult := func(v bool) (Value, bool) {
		if v {
			return Value{Kind: KindInt, I: 1}, true
		}
		return Value{Kind: KindInt, I: 0}, true
	}

	switch op {
	case "+":
		return floatResult(x + y)
	case "-":
		return floatResult(x - y)
	case "*":
		return floatResult(x * y)
	case "/":
		if y == 0 {
			return Value{}, false
		}
		return floatResult(x / y)
	case "==":
		return boolResult(x == y)
	case "!=":
		return boolResult(x != y)
	case "<":
		return boolResult(x < y)
	case "<=":
		return boolResult(x <= y)
	case ">":
		return boolResult(x > y)
	case ">=":
		return boolResult(x >= y)
	default:
		// %, shifts, and bitwise ops are integer-only in C/C++.
		return Value{}, false
	}
}

// FoldUnary folds `op a` for the unary operators `+`, `-`, `!`, and `~`.
func FoldUnary(op string, a Value) (Value, bool) {
	switch op {
	case "+":
		return a, true
	case "-":
		if a.Kind == KindFloat {
			return Value{Kind: KindFloat, F: -a.F}, true
		}
		return Value{Kind: KindInt, I: -a.I, Unsigned: a.Unsigned, Long: a.Long}, true
	case "!":
		if a.AsFloat() == 0 {
			return Value{Kind: KindInt, I: 1}, true
		}
		return Value{Kind: KindInt, I: 0}, true
	case "~":
		if a.Kind == KindFloat {
			return Value{}, false
		}
		return Value{Kind: KindInt, I: ^a.I, Unsigned: a.Unsigned, Long: a.Long}, true
	default:
		return Value{}, false
	}
}

// SizeOf returns the platform-dependent size in bytes of a fixed set of
// built-in C types, per the settings' platform table (spec.md §3's
// `platform` option; see internal/settings.Platform).
func SizeOf(typeName string, platform Platform) (int, bool) {
	sizes, ok := platformSizes[platform]
	if !ok {
		sizes = platformSizes[PlatformUnspecified]
	}
	n, ok := sizes[typeName]
	return n, ok
}

// Platform mirrors internal/settings.Platform without importing it, so
// mathlib stays a leaf package with no dependency on the settings layer.
type Platform int

const (
	PlatformUnspecified Platform = iota
	PlatformUnix32
	PlatformUnix64
	PlatformWin32A
	PlatformWin32W
	PlatformWin64
)

var platformSizes = map[Platform]map[string]int{
	PlatformUnspecified: {"char": 1, "short": 2, "int": 4, "long": 4, "long long": 8, "float": 4, "double": 8, "void *": 8},
	PlatformUnix32:      {"char": 1, "short": 2, "int": 4, "long": 4, "long long": 8, "float": 4, "double": 8, "void *": 4},
	PlatformUnix64:      {"char": 1, "short": 2, "int": 4, "long": 8, "long long": 8, "float": 4, "double": 8, "void *": 8},
	PlatformWin32A:      {"char": 1, "short": 2, "int": 4, "long": 4, "long long": 8, "float": 4, "double": 8, "void *": 4},
	PlatformWin32W:      {"char": 2, "short": 2, "int": 4, "long": 4, "long long": 8, "float": 4, "double": 8, "void *": 4},
	PlatformWin64:       {"char": 1, "short": 2, "int": 4, "long": 4, "long long": 8, "float": 4, "double": 8, "void *": 8},
}
