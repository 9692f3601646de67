// Package constraint rewrites layout-constraint strings so their
// pixel-denominated values stay proportionally correct across display
// densities.
//
// The constraint mini-language mixes density-sensitive tokens (pixel gaps,
// insets, absolute sizes, bracketed column/row ranges) with density-resilient
// ones (percentages, flow keywords like grow/fill/push/wrap). Transform
// scales the former and passes the latter through byte-identical, preserving
// all whitespace, separators and ordering of non-matching text.
//
//	constraint.Transform("insets 10, gap 5", 2.0)  // "insets 20, gap 10"
//	constraint.Transform("width 50%", 2.0)         // "width 50%" (never scaled)
//	constraint.Transform("[100][grow, fill]", 2.0) // "[200][grow, fill]"
//
// The recognizer is a small explicit scanner over a fixed keyword set rather
// than a regex pipeline, so behavior is predictable and independent of any
// regex engine's greediness or replacement-order quirks.
//
// Transform is a pure function: output depends only on (input, factor).
package constraint

import "math"

// identityEpsilon matches the scale state's change-detection threshold:
// factors within it of 1.0 are treated as the identity transform.
const identityEpsilon = 0.001

// Keyword classes and their argument arity. Gap keywords take 1-2
// whitespace-separated numeric arguments; insets and pad take 1-4.
var argArity = map[string]int{
	"gap":       2,
	"gapx":      2,
	"gapy":      2,
	"gaptop":    2,
	"gapbottom": 2,
	"gapleft":   2,
	"gapright":  2,
	"gapbefore": 2,
	"gapafter":  2,
	"insets":    4,
	"pad":       4,
}

// Size keywords take a single value: plain, forced ("100!"), or a
// colon-separated min:pref:max range with optional empty parts.
var sizeKeywords = map[string]bool{
	"width":  true,
	"height": true,
	"w":      true,
	"h":      true,
	"wmin":   true,
	"wmax":   true,
	"hmin":   true,
	"hmax":   true,
}

// Transform rewrites s, scaling every scalable-numeric and bracketed-range
// token by factor. Percentages and flow keywords are never scaled; numeric
// tokens that fail to parse pass through unchanged. Empty input and factors
// within identityEpsilon of 1.0 return s as-is.
//
// Scaled values are rounded half away from zero to an integer; a recognized
// two-letter unit suffix on the raw token is preserved verbatim.
func Transform(s string, factor float64) string {
	if s == "" {
		return s
	}
	if math.Abs(factor-1.0) < identityEpsilon {
		return s
	}

	sc := scanner{src: s, factor: factor}
	return sc.run()
}

// HasScalable reports whether s contains any token Transform would scale.
func HasScalable(s string) bool {
	if s == "" {
		return false
	}

	sc := scanner{src: s, factor: 2.0}
	sc.run()
	return sc.matched
}
