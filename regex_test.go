package pregex

import (
	"testing"

	"github.com/byteglush/rex/rxopt"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"simple literal", "hello", false},
		{"digit", `\d`, false},
		{"word", `\w+`, false},
		{"alternation", "foo|bar", false},
		{"repetition", "a+", false},
		{"unbalanced paren", "(", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Compile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && re == nil {
				t.Error("Compile() returned nil")
			}
		})
	}
}

func TestMustCompilePanicsOnInvalidPattern(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCompile() did not panic on invalid pattern")
		}
	}()
	MustCompile("(")
}

func TestMatchIsSubstringByDefault(t *testing.T) {
	tests := []struct {
		pattern, input string
		want           bool
	}{
		{"hello", "hello world", true},
		{"hello", "goodbye world", false},
		{`\d+`, "age 42", true},
		{`\d+`, "no digits here", false},
	}
	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		if got := re.Match([]byte(tt.input)); got != tt.want {
			t.Errorf("Compile(%q).Match(%q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestMatchNoPrefixNoSuffixIsAnchored(t *testing.T) {
	re, err := Compile("abc", rxopt.WithNoPrefixMatch(true), rxopt.WithNoSuffixMatch(true))
	if err != nil {
		t.Fatal(err)
	}
	if !re.Match([]byte("abc")) {
		t.Error("expected exact anchored match to accept \"abc\"")
	}
	if re.Match([]byte("xabc")) {
		t.Error("expected exact anchored match to reject \"xabc\"")
	}
	if re.Match([]byte("abcx")) {
		t.Error("expected exact anchored match to reject \"abcx\"")
	}
}

func TestMatchParallelAgreesWithMatch(t *testing.T) {
	re := MustCompile(`a.*b`)
	inputs := []string{
		"ab",
		"axxxxxxxxxxxxxxxxxxxxb",
		"no match here",
		"",
	}
	for _, in := range inputs {
		want := re.Match([]byte(in))
		for _, w := range []int{1, 2, 4} {
			if got := re.MatchParallel([]byte(in), w); got != want {
				t.Errorf("MatchParallel(%q, %d) = %v, want %v", in, w, got, want)
			}
		}
	}
}

func TestMatchContextCapturesSpan(t *testing.T) {
	re, err := Compile(`b+`, rxopt.WithCapturedMatch(true))
	if err != nil {
		t.Fatal(err)
	}
	var ctx MatchContext
	if !re.MatchContext([]byte("aabbbcc"), &ctx) {
		t.Fatal("expected a match")
	}
	if ctx.Begin != 2 || ctx.End != 5 {
		t.Errorf("span = [%d,%d), want [2,5)", ctx.Begin, ctx.End)
	}
}

func TestMatchContextNoSpanWithoutCapturedMatch(t *testing.T) {
	re := MustCompile(`b+`)
	var ctx MatchContext
	if !re.MatchContext([]byte("aabbbcc"), &ctx) {
		t.Fatal("expected a match")
	}
	if ctx.Begin != 0 || ctx.End != 0 {
		t.Errorf("expected untouched span without CapturedMatch, got [%d,%d)", ctx.Begin, ctx.End)
	}
}

func TestCapturedMatchRejectsIntersectionPattern(t *testing.T) {
	_, err := Compile(`.*a.*&.*b.*`, rxopt.WithIntersectionExt(true), rxopt.WithCapturedMatch(true))
	if err == nil {
		t.Fatal("expected ast.ErrUnsupportedInModel for CapturedMatch + intersection")
	}
}

func TestReverseMatchReversesInput(t *testing.T) {
	re, err := Compile("abc", rxopt.WithNoPrefixMatch(true), rxopt.WithNoSuffixMatch(true), rxopt.WithReverseMatch(true))
	if err != nil {
		t.Fatal(err)
	}
	if !re.Match([]byte("cba")) {
		t.Error("expected ReverseMatch to accept the input read backward")
	}
	if re.Match([]byte("abc")) {
		t.Error("expected ReverseMatch to reject the input read forward")
	}
}

func TestReverseRegexReversesPattern(t *testing.T) {
	re, err := Compile("ab", rxopt.WithNoPrefixMatch(true), rxopt.WithNoSuffixMatch(true))
	if err != nil {
		t.Fatal(err)
	}
	if !re.Match([]byte("ab")) {
		t.Error("expected the forward pattern to accept \"ab\"")
	}

	reversed, err := Compile("ab", rxopt.WithNoPrefixMatch(true), rxopt.WithNoSuffixMatch(true), rxopt.WithReverseRegex(true))
	if err != nil {
		t.Fatal(err)
	}
	if !reversed.Match([]byte("ba")) {
		t.Error("expected ReverseRegex to compile the pattern whose language is \"ba\"")
	}
	if reversed.Match([]byte("ab")) {
		t.Error("expected ReverseRegex(\"ab\") to reject the original \"ab\"")
	}
}

func TestCompileLevelRebuildsWithoutReparsing(t *testing.T) {
	re := MustCompile(`a+b`)
	for _, level := range []rxopt.Level{rxopt.O0, rxopt.O1, rxopt.O2, rxopt.O3} {
		if err := re.CompileLevel(level); err != nil {
			t.Fatalf("CompileLevel(%v): %v", level, err)
		}
		if !re.Match([]byte("aaab")) {
			t.Errorf("level %v: expected \"aaab\" to match", level)
		}
		if re.Match([]byte("b")) {
			t.Errorf("level %v: expected \"b\" alone not to match", level)
		}
	}
}

func TestString(t *testing.T) {
	re := MustCompile(`a+b`)
	if re.String() != `a+b` {
		t.Errorf("String() = %q, want %q", re.String(), `a+b`)
	}
}

func TestPrefilterTransparency(t *testing.T) {
	withPF := MustCompile("hello world", rxopt.WithPrefilter(true))
	withoutPF, err := Compile("hello world", rxopt.WithPrefilter(false))
	if err != nil {
		t.Fatal(err)
	}
	inputs := []string{"say hello world now", "say hello only", ""}
	for _, in := range inputs {
		a := withPF.Match([]byte(in))
		b := withoutPF.Match([]byte(in))
		if a != b {
			t.Errorf("prefilter transparency violated on %q: with=%v without=%v", in, a, b)
		}
	}
}
