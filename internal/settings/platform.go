package settings

import "github.com/cppscan/cppscan/internal/mathlib"

// ToMathlib converts a settings.Platform into the mathlib.Platform the
// constant-folding layer understands. The two enums are kept separate so
// that mathlib (a dependency-free leaf package) never imports settings.
func (p Platform) ToMathlib() mathlib.Platform {
	switch p {
	case PlatformUnix32:
		return mathlib.PlatformUnix32
	case PlatformUnix64:
		return mathlib.PlatformUnix64
	case PlatformWin32A:
		return mathlib.PlatformWin32A
	case PlatformWin32W:
		return mathlib.PlatformWin32W
	case PlatformWin64:
		return mathlib.PlatformWin64
	default:
		return mathlib.PlatformUnspecified
	}
}
