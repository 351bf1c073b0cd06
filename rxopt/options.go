// Package rxopt defines the flag bundle threaded through the parser, the
// DFA builder, and both matchers (component H of the design). It has no
// dependency on any other package in the module so every stage can import
// it without creating a cycle.
package rxopt

// Level selects the DFA peephole/JIT-substitute optimization stage used by
// Regex.CompileLevel. O0 is the plain subset-constructed DFA; each
// successive level adds one more peephole pass from section 4.D.
type Level uint8

const (
	// O0 performs subset construction only.
	O0 Level = iota
	// O1 additionally runs Hopcroft minimization.
	O1
	// O2 additionally runs EliminateBranch (default-next folding).
	O2
	// O3 additionally runs Reduce/AlterTrans (two-range compare form).
	O3
)

// Options is the flag bundle described in spec section 4.H. It is a plain
// value type: copying an Options is always safe and cheap.
type Options struct {
	IgnoreCase      bool
	OneLine         bool
	ReverseRegex    bool
	ReverseMatch    bool
	ShortestMatch   bool
	NoPrefixMatch   bool
	NoSuffixMatch   bool
	ParallelMatch   bool
	CapturedMatch   bool
	ComplementExt   bool
	IntersectionExt bool
	XORExt          bool
	ShuffleExt      bool
	PermutationExt  bool
	ReverseExt      bool
	WeakBackRefExt  bool
	RecursionExt    bool
	EncodingUTF8    bool
	NonNullable     bool

	Level Level

	// Delim is the record-delimiter byte. It is stored but not consulted:
	// BegLine/EndLine always match '\n'.
	Delim byte

	// RecursiveLimit bounds how many times (?R) may expand itself by a
	// fresh sub-parse of the pattern. The innermost expansion beyond the
	// limit lowers to None
	// (matches nothing) rather than erroring, matching the original
	// engine's recursive_limit field.
	RecursiveLimit int

	// DeterminizationLimit caps the number of distinct position sets the
	// DFA builder's subset construction will enqueue before returning
	// dfa.ErrTooComplex. Zero means unbounded.
	DeterminizationLimit int

	// UsePrefilter enables the Aho-Corasick literal prefilter ahead of the
	// DFA/SFA match loop (package prefilter). Never changes the result of
	// a match, only how quickly "obviously absent" inputs are rejected.
	UsePrefilter bool

	// MinPrefilterLen is the minimum required-literal length the prefilter
	// will act on; shorter literals are not worth the Aho-Corasick setup.
	MinPrefilterLen int

	// Workers is the default worker count passed to the parallel matcher
	// when Regex.MatchParallel is called with workers <= 0.
	Workers int
}

// Default returns the engine's default option bundle.
func Default() Options {
	return Options{
		Delim:                '\n',
		RecursiveLimit:       2,
		DeterminizationLimit: 0,
		UsePrefilter:         true,
		MinPrefilterLen:      3,
		Workers:              4,
		Level:                O3,
	}
}

// Reverse reports the product of ReverseRegex and ReverseMatch, per
// spec section 4.H ("Reverse is the product of ReverseRegex and
// ReverseMatch").
func (o Options) Reverse() bool {
	return o.ReverseRegex && o.ReverseMatch
}

// FilteredMatch reports whether prefix-filtered matching is in effect.
// FilteredMatch implies !NoPrefixMatch (spec section 4.H).
func (o Options) FilteredMatch() bool {
	return !o.NoPrefixMatch
}

// Option mutates an Options value; used with Default() by the facade's
// Compile(pattern, opts...) entry point.
type Option func(*Options)

func WithIgnoreCase(v bool) Option      { return func(o *Options) { o.IgnoreCase = v } }
func WithOneLine(v bool) Option         { return func(o *Options) { o.OneLine = v } }
func WithReverseRegex(v bool) Option    { return func(o *Options) { o.ReverseRegex = v } }
func WithReverseMatch(v bool) Option    { return func(o *Options) { o.ReverseMatch = v } }
func WithShortestMatch(v bool) Option   { return func(o *Options) { o.ShortestMatch = v } }
func WithNoPrefixMatch(v bool) Option   { return func(o *Options) { o.NoPrefixMatch = v } }
func WithNoSuffixMatch(v bool) Option   { return func(o *Options) { o.NoSuffixMatch = v } }
func WithComplementExt(v bool) Option   { return func(o *Options) { o.ComplementExt = v } }
func WithIntersectionExt(v bool) Option { return func(o *Options) { o.IntersectionExt = v } }
func WithXORExt(v bool) Option          { return func(o *Options) { o.XORExt = v } }
func WithShuffleExt(v bool) Option      { return func(o *Options) { o.ShuffleExt = v } }
func WithPermutationExt(v bool) Option  { return func(o *Options) { o.PermutationExt = v } }
func WithWeakBackRefExt(v bool) Option  { return func(o *Options) { o.WeakBackRefExt = v } }
func WithRecursionExt(v bool) Option    { return func(o *Options) { o.RecursionExt = v } }
func WithCapturedMatch(v bool) Option   { return func(o *Options) { o.CapturedMatch = v } }
func WithDelim(b byte) Option           { return func(o *Options) { o.Delim = b } }
func WithRecursiveLimit(n int) Option   { return func(o *Options) { o.RecursiveLimit = n } }
func WithLevel(l Level) Option          { return func(o *Options) { o.Level = l } }
func WithPrefilter(v bool) Option       { return func(o *Options) { o.UsePrefilter = v } }
func WithDeterminizationLimit(n int) Option {
	return func(o *Options) { o.DeterminizationLimit = n }
}
