package token

// List owns a chain of Tokens. Head and Tail are O(1); InsertBefore,
// InsertAfter, and Delete splice around a cursor in O(1) without touching any
// other token. Deleting one end of a linked bracket pair deletes the other,
// preserving invariant (1) from the data model (every open bracket's link
// points to a close of the matching kind, and vice versa).
//
// A List is created by the lexer, mutated only by the simplifier while it
// runs, and treated as read-only by every checker once simplification has
// finished.
type List struct {
	head, tail *Token
	len        int
}

// New returns an empty token list.
func New() *List {
	return &List{}
}

// Len returns the number of tokens currently in the list.
func (l *List) Len() int { return l.len }

// Front returns the first token, or nil if the list is empty.
func (l *List) Front() *Token { return l.head }

// Back returns the last token, or nil if the list is empty.
func (l *List) Back() *Token { return l.tail }

// PushBack appends tok to the end of the list. tok must not already belong
// to a list.
func (l *List) PushBack(tok *Token) {
	tok.list = l
	tok.prev = l.tail
	tok.next = nil
	if l.tail != nil {
		l.tail.next = tok
	} else {
		l.head = tok
	}
	l.tail = tok
	l.len++
}

// InsertBefore inserts tok immediately before at. If at is nil, tok is
// appended to the list.
func (l *List) InsertBefore(at, tok *Token) {
	if at == nil {
		l.PushBack(tok)
		return
	}
	tok.list = l
	tok.next = at
	tok.prev = at.prev
	if at.prev != nil {
		at.prev.next = tok
	} else {
		l.head = tok
	}
	at.prev = tok
	l.len++
}

// InsertAfter inserts tok immediately after at. If at is nil, tok becomes the
// new head.
func (l *List) InsertAfter(at, tok *Token) {
	if at == nil {
		tok.list = l
		tok.prev = nil
		tok.next = l.head
		if l.head != nil {
			l.head.prev = tok
		} else {
			l.tail = tok
		}
		l.head = tok
		l.len++
		return
	}
	tok.list = l
	tok.prev = at
	tok.next = at.next
	if at.next != nil {
		at.next.prev = tok
	} else {
		l.tail = tok
	}
	at.next = tok
	l.len++
}

// Delete removes tok from the list. If tok has a Link, the linked partner is
// also removed (invariant: a bracket pair is deleted atomically).
func (l *List) Delete(tok *Token) {
	if tok == nil || tok.list != l {
		return
	}
	partner := tok.Link
	l.unlink(tok)
	if partner != nil && partner.list == l {
		partner.Link = nil
		l.unlink(partner)
	}
}

func (l *List) unlink(tok *Token) {
	if tok.prev != nil {
		tok.prev.next = tok.next
	} else {
		l.head = tok.next
	}
	if tok.next != nil {
		tok.next.prev = tok.prev
	} else {
		l.tail = tok.prev
	}
	tok.next, tok.prev, tok.list = nil, nil, nil
	l.len--
}

// DeleteRange removes every token from 'from' to 'to' inclusive. Any bracket
// whose partner falls outside the range has its Link cleared instead of
// following the partner out of the list.
func (l *List) DeleteRange(from, to *Token) {
	if from == nil || from.list != l {
		return
	}
	cur := from
	for cur != nil {
		next := cur.next
		if cur.Link != nil && (cur.Link.list != l || !inRange(cur.Link, from, to)) {
			cur.Link.Link = nil
		}
		l.unlink(cur)
		if cur == to {
			break
		}
		cur = next
	}
}

func inRange(tok, from, to *Token) bool {
	for c := from; c != nil; c = c.next {
		if c == tok {
			return true
		}
		if c == to {
			break
		}
	}
	return false
}

// FindMatch returns the bracket partner of open, i.e. open.Link. It exists
// as a named operation to keep call sites self-documenting even though the
// link is already cached on the token.
func FindMatch(open *Token) *Token {
	if open == nil {
		return nil
	}
	return open.Link
}

// Link records that a and b are a matched bracket pair.
func Link(a, b *Token) {
	a.Link = b
	b.Link = a
}

// All returns every token from head to tail, for tests and debugging. Not
// used on any hot path.
func (l *List) All() []*Token {
	out := make([]*Token, 0, l.len)
	for t := l.head; t != nil; t = t.next {
		out = append(out, t)
	}
	return out
}
