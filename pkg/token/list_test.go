package token

import "testing"

func build(lexemes ...string) *List {
	l := New()
	for _, lex := range lexemes {
		l.PushBack(&Token{Lexeme: lex})
	}
	return l
}

func lexemes(l *List) []string {
	out := make([]string, 0, l.Len())
	for _, t := range l.All() {
		out = append(out, t.Lexeme)
	}
	return out
}

func TestPushBackOrder(t *testing.T) {
	l := build("int", "x", ";")
	if got := lexemes(l); got[0] != "int" || got[1] != "x" || got[2] != ";" {
		t.Fatalf("unexpected order: %v", got)
	}
	if l.Front().Lexeme != "int" || l.Back().Lexeme != ";" {
		t.Fatalf("front/back wrong: %q %q", l.Front().Lexeme, l.Back().Lexeme)
	}
}

func TestInsertBeforeAndAfter(t *testing.T) {
	l := build("int", "x", ";")
	mid := l.Front().Next()
	l.InsertBefore(mid, &Token{Lexeme: "="})
	l.InsertAfter(mid, &Token{Lexeme: "0"})
	if got := lexemes(l); got[0] != "int" || got[1] != "=" || got[2] != "x" || got[3] != "0" || got[4] != ";" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestInsertAfterNilPrependsHead(t *testing.T) {
	l := build("x", ";")
	l.InsertAfter(nil, &Token{Lexeme: "int"})
	if got := lexemes(l); got[0] != "int" {
		t.Fatalf("expected int to become new head, got %v", got)
	}
	if l.Front().Lexeme != "int" {
		t.Fatalf("front not updated")
	}
}

func TestDeleteRemovesLinkedPartner(t *testing.T) {
	l := build("(", "1", ")")
	open, close_ := l.Front(), l.Back()
	Link(open, close_)

	l.Delete(open)

	if l.Len() != 1 {
		t.Fatalf("expected 1 token left, got %d: %v", l.Len(), lexemes(l))
	}
	if got := lexemes(l); got[0] != "1" {
		t.Fatalf("unexpected remaining tokens: %v", got)
	}
}

func TestDeleteRangeClearsDanglingLinks(t *testing.T) {
	l := build("(", "a", ")", "b")
	toks := l.All()
	Link(toks[0], toks[2])

	// Delete "a )" -- leaves "(" and "b"; the "(" loses its partner since
	// the ")" fell inside the deleted range.
	l.DeleteRange(toks[1], toks[2])

	remaining := lexemes(l)
	if len(remaining) != 2 || remaining[0] != "(" || remaining[1] != "b" {
		t.Fatalf("unexpected remaining tokens: %v", remaining)
	}
	if l.Front().Link != nil {
		t.Fatalf("expected dangling link cleared on surviving open paren")
	}
}

func TestFindMatch(t *testing.T) {
	l := build("{", "x", "}")
	toks := l.All()
	Link(toks[0], toks[2])
	if FindMatch(toks[0]) != toks[2] {
		t.Fatalf("FindMatch did not return linked partner")
	}
	if FindMatch(toks[1]) != nil {
		t.Fatalf("expected nil link for unlinked token")
	}
}
