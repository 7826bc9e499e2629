package preprocessor

import "testing"

func TestStripCommentsLineComment(t *testing.T) {
	got := stripComments("int a = 1; // trailing\nint b = 2;")
	want := "int a = 1;  \nint b = 2;"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestStripCommentsBlockCommentPreservesLines(t *testing.T) {
	got := stripComments("int a /* one\ntwo */ = 1;")
	want := "int a \n  = 1;"
	if got != want {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestStripCommentsIgnoresInsideStrings(t *testing.T) {
	got := stripComments(`char *s = "http://example.com";`)
	if got != `char *s = "http://example.com";` {
		t.Fatalf("string literal was mangled: %q", got)
	}
}

func TestJoinContinuations(t *testing.T) {
	got := joinContinuations("#define FOO \\\n  1")
	if got != "#define FOO   1" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestPpScanOperators(t *testing.T) {
	toks := ppScan("a << b && c")
	want := []string{"a", "<<", "b", "&&", "c"}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].text != w {
			t.Fatalf("token %d: got %q want %q", i, toks[i].text, w)
		}
	}
}

func TestPpScanString(t *testing.T) {
	toks := ppScan(`"hello world"`)
	if len(toks) != 1 || !toks[0].isStr {
		t.Fatalf("expected single string token, got %+v", toks)
	}
}

func TestJoinTokensRoundTrips(t *testing.T) {
	toks := ppScan("a + b")
	if joinTokens(toks) != "a + b" {
		t.Fatalf("unexpected roundtrip: %q", joinTokens(toks))
	}
}
