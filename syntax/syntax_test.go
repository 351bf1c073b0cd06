package syntax_test

import (
	"testing"

	"github.com/byteglush/rex/dfa"
	"github.com/byteglush/rex/rxopt"
	"github.com/byteglush/rex/syntax"
)

// compileAndMatch parses pattern, builds its DFA, and reports whether input
// is a full match — end to end through component A-D-F.
func compileAndMatch(t *testing.T, pattern string, opts rxopt.Options, input string) bool {
	t.Helper()
	_, full, table, err := syntax.Parse([]byte(pattern), opts)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	d, err := dfa.Build(table, full.First, 1, opts.DeterminizationLimit)
	if err != nil {
		t.Fatalf("Build(%q): %v", pattern, err)
	}
	return dfa.FullMatch(d, []byte(input))
}

func TestParseLiteralAndConcat(t *testing.T) {
	tests := []struct {
		pattern, input string
		want           bool
	}{
		{"hello", "hello", true},
		{"hello", "hell", false},
		{"hello", "helloo", false},
		{"ab", "ba", false},
	}
	opts := rxopt.Default()
	for _, tt := range tests {
		if got := compileAndMatch(t, tt.pattern, opts, tt.input); got != tt.want {
			t.Errorf("%q on %q = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestParseQuantifiers(t *testing.T) {
	tests := []struct {
		pattern, input string
		want           bool
	}{
		{"a*", "", true},
		{"a*", "aaaa", true},
		{"a+", "", false},
		{"a+", "a", true},
		{"a?", "", true},
		{"a?", "a", true},
		{"a?", "aa", false},
		{"a{2,4}", "a", false},
		{"a{2,4}", "aa", true},
		{"a{2,4}", "aaaa", true},
		{"a{2,4}", "aaaaa", false},
		{"a{3,}", "aaa", true},
		{"a{3,}", "aaaaaaaa", true},
		{"a{3,}", "aa", false},
	}
	opts := rxopt.Default()
	for _, tt := range tests {
		if got := compileAndMatch(t, tt.pattern, opts, tt.input); got != tt.want {
			t.Errorf("%q on %q = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestParseCharClasses(t *testing.T) {
	tests := []struct {
		pattern, input string
		want           bool
	}{
		{`\d+`, "123", true},
		{`\d+`, "abc", false},
		{`[a-c]+`, "abcba", true},
		{`[a-c]+`, "abd", false},
		{`[^a-c]+`, "xyz", true},
		{`[^a-c]+`, "xac", false},
		{".", "x", true},
		{".", "", false},
	}
	opts := rxopt.Default()
	for _, tt := range tests {
		if got := compileAndMatch(t, tt.pattern, opts, tt.input); got != tt.want {
			t.Errorf("%q on %q = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestParseUnion(t *testing.T) {
	tests := []struct {
		pattern, input string
		want           bool
	}{
		{"foo|bar", "foo", true},
		{"foo|bar", "bar", true},
		{"foo|bar", "baz", false},
	}
	opts := rxopt.Default()
	for _, tt := range tests {
		if got := compileAndMatch(t, tt.pattern, opts, tt.input); got != tt.want {
			t.Errorf("%q on %q = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestParseIntersection(t *testing.T) {
	opts := rxopt.Default()
	opts.IntersectionExt = true
	tests := []struct {
		pattern, input string
		want           bool
	}{
		{`.*a.*&.*b.*`, "ab", true},
		{`.*a.*&.*b.*`, "ba", true},
		{`.*a.*&.*b.*`, "aa", false},
		{`.*a.*&.*b.*`, "cc", false},
	}
	for _, tt := range tests {
		if got := compileAndMatch(t, tt.pattern, opts, tt.input); got != tt.want {
			t.Errorf("%q on %q = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestParseIntersectionDisabledByDefault(t *testing.T) {
	_, _, _, err := syntax.Parse([]byte("a&b"), rxopt.Default())
	if err == nil {
		t.Fatal("expected ErrExtensionDisabled, got nil")
	}
}

func TestParseComplement(t *testing.T) {
	opts := rxopt.Default()
	opts.ComplementExt = true
	tests := []struct {
		pattern, input string
		want           bool
	}{
		{"!a", "a", false},
		{"!a", "b", true},
		{"!a", "", true},
	}
	for _, tt := range tests {
		if got := compileAndMatch(t, tt.pattern, opts, tt.input); got != tt.want {
			t.Errorf("%q on %q = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestParseXOR(t *testing.T) {
	opts := rxopt.Default()
	opts.XORExt = true
	tests := []struct {
		pattern, input string
		want           bool
	}{
		{`a.*&&.*b`, "ab", false}, // both match -> XOR rejects
		{`a.*&&.*b`, "ac", true},  // only the left matches
		{`a.*&&.*b`, "cb", true},  // only the right matches
		{`a.*&&.*b`, "cc", false}, // neither matches
	}
	for _, tt := range tests {
		if got := compileAndMatch(t, tt.pattern, opts, tt.input); got != tt.want {
			t.Errorf("%q on %q = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestParseBackRef(t *testing.T) {
	opts := rxopt.Default()
	tests := []struct {
		pattern, input string
		want           bool
	}{
		{`(a)\1`, "aa", true},
		{`(a)\1`, "ab", false},
		{`(ab)\1`, "abab", true},
	}
	for _, tt := range tests {
		if got := compileAndMatch(t, tt.pattern, opts, tt.input); got != tt.want {
			t.Errorf("%q on %q = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestParseBackRefUnresolved(t *testing.T) {
	_, _, _, err := syntax.Parse([]byte(`\1`), rxopt.Default())
	if err == nil {
		t.Fatal("expected BackRefError, got nil")
	}
}

func TestParseRecursion(t *testing.T) {
	opts := rxopt.Default()
	opts.RecursionExt = true
	opts.RecursiveLimit = 2
	// "a(?R)?b" recurses into balanced runs of 'a's and 'b's. With
	// RecursiveLimit=2, (?R) may expand twice beyond the base occurrence,
	// so up to 3 nested a/b pairs are reachable but not a 4th.
	tests := []struct {
		input string
		want  bool
	}{
		{"ab", true},
		{"aabb", true},
		{"aaabbb", true},
		{"aaaabbbb", false}, // exceeds RecursiveLimit of 2
	}
	for _, tt := range tests {
		if got := compileAndMatch(t, "a(?R)?b", opts, tt.input); got != tt.want {
			t.Errorf("a(?R)?b on %q = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLexRepetitionRewrite(t *testing.T) {
	lex := syntax.NewLexer([]byte("{0,}{1,}{0,1}{1,1}x"), rxopt.Default())
	wantKinds := []syntax.TokenKind{syntax.TStar, syntax.TPlus, syntax.TQmark, syntax.TLiteral, syntax.TEOP}
	for _, want := range wantKinds {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("Next(): %v", err)
		}
		if tok.Kind != want {
			t.Errorf("got token kind %v, want %v", tok.Kind, want)
		}
	}
}

func TestLexBadRepetitionRange(t *testing.T) {
	lex := syntax.NewLexer([]byte("{4,2}"), rxopt.Default())
	if _, err := lex.Next(); err == nil {
		t.Fatal("expected a lex error for {4,2}, got nil")
	}
}
