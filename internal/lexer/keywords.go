package lexer

// keywords is the C/C++ reserved-word vocabulary. Unlike the teacher's
// TokenType enum (one constant per keyword, since DWScript's parser branches
// on keyword identity), pkg/token.Kind only needs to know "this identifier is
// a keyword" -- the simplifier and checkers match keyword text directly via
// the pattern matcher's literal-word rule, so a single set suffices here.
var keywords = map[string]bool{
	"alignas": true, "alignof": true, "and": true, "and_eq": true, "asm": true,
	"auto": true, "bitand": true, "bitor": true, "break": true, "case": true,
	"catch": true, "class": true, "compl": true, "concept": true, "const": true,
	"consteval": true, "constexpr": true, "constinit": true, "const_cast": true,
	"continue": true, "co_await": true, "co_return": true, "co_yield": true,
	"decltype": true, "default": true, "delete": true, "do": true,
	"dynamic_cast": true, "else": true, "enum": true, "explicit": true,
	"export": true, "extern": true, "for": true, "friend": true, "goto": true,
	"if": true, "inline": true, "mutable": true, "namespace": true, "new": true,
	"noexcept": true, "not": true, "not_eq": true, "nullptr": true,
	"operator": true, "or": true, "or_eq": true, "private": true,
	"protected": true, "public": true, "register": true,
	"reinterpret_cast": true, "requires": true, "return": true, "sizeof": true,
	"static": true, "static_assert": true, "static_cast": true, "struct": true,
	"switch": true, "template": true, "this": true, "thread_local": true,
	"throw": true, "try": true, "typedef": true, "typeid": true,
	"typename": true, "union": true, "using": true, "virtual": true,
	"volatile": true, "while": true, "xor": true, "xor_eq": true,
	"true": true, "false": true,
}

// standardTypeNames are the built-in type keywords recognized by
// internal/mathlib.SizeOf and by the pattern matcher's %type% class.
var standardTypeNames = map[string]bool{
	"void": true, "bool": true, "char": true, "char8_t": true,
	"char16_t": true, "char32_t": true, "wchar_t": true, "short": true,
	"int": true, "long": true, "float": true, "double": true,
	"signed": true, "unsigned": true,
	"size_t": true, "ptrdiff_t": true, "int8_t": true, "int16_t": true,
	"int32_t": true, "int64_t": true, "uint8_t": true, "uint16_t": true,
	"uint32_t": true, "uint64_t": true,
}

func isKeyword(lexeme string) bool { return keywords[lexeme] }

func isStandardTypeName(lexeme string) bool { return standardTypeNames[lexeme] }
