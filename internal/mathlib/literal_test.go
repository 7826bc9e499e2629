package mathlib

import "testing"

func TestParseLiteralDecimal(t *testing.T) {
	v, err := ParseLiteral("123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindInt || v.I != 123 {
		t.Fatalf("unexpected value: %+v", v)
	}
}

func TestParseLiteralHexWithSuffix(t *testing.T) {
	v, err := ParseLiteral("0x7fUL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.I != 0x7f || !v.Unsigned || !v.Long {
		t.Fatalf("unexpected value: %+v", v)
	}
}

func TestParseLiteralOctal(t *testing.T) {
	v, err := ParseLiteral("010")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.I != 8 {
		t.Fatalf("expected octal 010 == 8, got %d", v.I)
	}
}

func TestParseLiteralBinary(t *testing.T) {
	v, err := ParseLiteral("0b101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.I != 5 {
		t.Fatalf("expected 0b101 == 5, got %d", v.I)
	}
}

func TestParseLiteralDigitSeparators(t *testing.T) {
	v, err := ParseLiteral("1'000'000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.I != 1000000 {
		t.Fatalf("expected 1000000, got %d", v.I)
	}
}

func TestParseLiteralFloat(t *testing.T) {
	v, err := ParseLiteral("3.14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindFloat || v.F != 3.14 {
		t.Fatalf("unexpected value: %+v", v)
	}
}

func TestParseLiteralFloatExponent(t *testing.T) {
	v, err := ParseLiteral("1e10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindFloat || v.F != 1e10 {
		t.Fatalf("unexpected value: %+v", v)
	}
}

func TestParseLiteralHexIsNotFloat(t *testing.T) {
	v, err := ParseLiteral("0xE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindInt || v.I != 14 {
		t.Fatalf("0xE should parse as hex int 14, got %+v", v)
	}
}

func TestParseLiteralEmptyIsError(t *testing.T) {
	if _, err := ParseLiteral(""); err == nil {
		t.Fatalf("expected error for empty literal")
	}
}
