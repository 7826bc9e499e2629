package mathlib

import "testing"

func TestFoldBinaryArithmetic(t *testing.T) {
	cases := []struct {
		op   string
		a, b int64
		want int64
	}{
		{"+", 2, 3, 5},
		{"-", 5, 3, 2},
		{"*", 4, 3, 12},
		{"/", 10, 3, 3},
		{"%", 10, 3, 1},
		{"<<", 1, 4, 16},
		{">>", 16, 4, 1},
		{"&", 0b1100, 0b1010, 0b1000},
		{"|", 0b1100, 0b1010, 0b1110},
		{"^", 0b1100, 0b1010, 0b0110},
	}
	for _, c := range cases {
		got, ok := FoldBinary(c.op, Value{Kind: KindInt, I: c.a}, Value{Kind: KindInt, I: c.b})
		if !ok {
			t.Fatalf("%s: fold reported not ok", c.op)
		}
		if got.I != c.want {
			t.Fatalf("%d %s %d = %d, want %d", c.a, c.op, c.b, got.I, c.want)
		}
	}
}

func TestFoldBinaryDivideByZero(t *testing.T) {
	if _, ok := FoldBinary("/", Value{Kind: KindInt, I: 1}, Value{Kind: KindInt, I: 0}); ok {
		t.Fatalf("expected division by zero to not fold")
	}
}

func TestFoldBinaryComparison(t *testing.T) {
	got, ok := FoldBinary("<", Value{Kind: KindInt, I: 1}, Value{Kind: KindInt, I: 2})
	if !ok || got.I != 1 {
		t.Fatalf("expected 1 < 2 to fold true, got %+v ok=%v", got, ok)
	}
}

func TestFoldBinaryFloatPromotion(t *testing.T) {
	got, ok := FoldBinary("+", Value{Kind: KindInt, I: 1}, Value{Kind: KindFloat, F: 0.5})
	if !ok || got.Kind != KindFloat || got.F != 1.5 {
		t.Fatalf("expected mixed int/float add to promote to float 1.5, got %+v", got)
	}
}

func TestFoldUnary(t *testing.T) {
	got, ok := FoldUnary("-", Value{Kind: KindInt, I: 5})
	if !ok || got.I != -5 {
		t.Fatalf("expected -5, got %+v", got)
	}
	got, ok = FoldUnary("~", Value{Kind: KindInt, I: 0})
	if !ok || got.I != -1 {
		t.Fatalf("expected ~0 == -1, got %+v", got)
	}
	got, ok = FoldUnary("!", Value{Kind: KindInt, I: 0})
	if !ok || got.I != 1 {
		t.Fatalf("expected !0 == 1, got %+v", got)
	}
}

func TestSizeOf(t *testing.T) {
	n, ok := SizeOf("int", PlatformUnix64)
	if !ok || n != 4 {
		t.Fatalf("expected sizeof(int) == 4, got %d ok=%v", n, ok)
	}
	n, ok = SizeOf("long", PlatformUnix64)
	if !ok || n != 8 {
		t.Fatalf("expected sizeof(long) == 8 on unix64, got %d", n)
	}
	n, ok = SizeOf("long", PlatformWin64)
	if !ok || n != 4 {
		t.Fatalf("expected sizeof(long) == 4 on win64, got %d", n)
	}
}
