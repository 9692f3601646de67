package constraint

import (
	"math"
	"strconv"
	"strings"
)

// scanner walks a constraint string once, copying non-matching text
// verbatim and rewriting the numeric arguments of recognized tokens.
type scanner struct {
	src     string
	factor  float64
	out     strings.Builder
	matched bool
}

func (sc *scanner) run() string {
	sc.out.Grow(len(sc.src) + 16)
	s := sc.src
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case isLetter(c):
			start := i
			for i < len(s) && isLetter(s[i]) {
				i++
			}
			word := s[start:i]
			if maxArgs, ok := argArity[word]; ok {
				i = sc.scaleArgs(word, i, maxArgs)
			} else if sizeKeywords[word] {
				i = sc.scaleSizeValue(word, i)
			} else {
				// Flow keyword or other literal: verbatim.
				sc.out.WriteString(word)
			}
		case c == '[':
			i = sc.scaleBracket(i)
		default:
			sc.out.WriteByte(c)
			i++
		}
	}
	return sc.out.String()
}

// scaleArgs consumes up to maxArgs whitespace-separated numeric arguments
// after a gap/insets/pad keyword. A keyword without a numeric argument is
// emitted verbatim. Arguments beyond maxArgs are left for the main loop
// and pass through unscaled.
func (sc *scanner) scaleArgs(word string, i, maxArgs int) int {
	s := sc.src
	j := skipSpace(s, i)
	if j == i || j >= len(s) || !isDigit(s[j]) {
		sc.out.WriteString(word)
		return i
	}

	sc.out.WriteString(word)

	for n := 0; n < maxArgs; n++ {
		// Separator run between keyword/arguments, verbatim.
		sc.out.WriteString(s[i:j])

		end := scanNumber(s, j)
		if end < len(s) && s[end] == '%' {
			// Percentages are never scaled.
			sc.out.WriteString(s[j : end+1])
			i = end + 1
		} else {
			sc.matched = true
			sc.out.WriteString(sc.scaleNumber(s[j:end]))
			i = end
		}

		j = skipSpace(s, i)
		if j == i || j >= len(s) || !isDigit(s[j]) {
			return i
		}
	}
	return i
}

// scaleSizeValue consumes the single value after a size keyword: plain,
// forced, or a colon-separated range. Values containing a percent sign
// pass through whole.
func (sc *scanner) scaleSizeValue(word string, i int) int {
	s := sc.src
	j := skipSpace(s, i)
	if j == i || j >= len(s) || !isSizeValueChar(s[j]) {
		sc.out.WriteString(word)
		return i
	}

	end := j
	for end < len(s) && isSizeValueChar(s[end]) {
		end++
	}
	value := s[j:end]

	sc.out.WriteString(word)
	sc.out.WriteString(s[i:j])

	if strings.IndexByte(value, '%') >= 0 {
		sc.out.WriteString(value)
		return end
	}

	sc.matched = true
	sc.out.WriteString(sc.scaleRange(value))
	return end
}

// scaleBracket handles a bracketed range such as [100] or [100:150:200!].
// Bracket bodies containing anything beyond digits, colons and a trailing
// force marker are not ranges; the bracket is reopened and its content
// rescanned, since it may still hold scalable keyword tokens.
func (sc *scanner) scaleBracket(i int) int {
	s := sc.src
	rel := strings.IndexByte(s[i+1:], ']')
	if rel < 0 {
		sc.out.WriteByte('[')
		return i + 1
	}

	content := s[i+1 : i+1+rel]
	if !bracketScalable(content) {
		sc.out.WriteByte('[')
		return i + 1
	}

	sc.matched = true
	sc.out.WriteByte('[')
	sc.out.WriteString(sc.scaleRange(content))
	sc.out.WriteByte(']')
	return i + 1 + rel + 1
}

// scaleRange scales a value of the form "100", "100!", "100:150:200" or
// "100::200", preserving empty parts and the force marker.
func (sc *scanner) scaleRange(value string) string {
	forced := strings.HasSuffix(value, "!")
	if forced {
		value = strings.TrimSuffix(value, "!")
	}

	parts := strings.Split(value, ":")
	for k, p := range parts {
		if p != "" {
			parts[k] = sc.scaleNumber(p)
		}
	}

	out := strings.Join(parts, ":")
	if forced {
		out += "!"
	}
	return out
}

// scaleNumber scales a single numeric token, rounding half away from zero.
// A token that fails to parse passes through unchanged.
func (sc *scanner) scaleNumber(tok string) string {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return tok
	}
	return strconv.Itoa(int(math.Round(v * sc.factor)))
}

// bracketScalable reports whether a bracket body is a pure numeric range:
// digit groups separated by colons with an optional trailing force marker.
// Percent signs, letters, decimals and empty parts all disqualify it.
func bracketScalable(content string) bool {
	content = strings.TrimSuffix(content, "!")
	if content == "" {
		return false
	}
	for _, group := range strings.Split(content, ":") {
		if group == "" {
			return false
		}
		for k := 0; k < len(group); k++ {
			if !isDigit(group[k]) {
				return false
			}
		}
	}
	return true
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isSizeValueChar(c byte) bool {
	return isDigit(c) || c == ':' || c == '!' || c == '.' || c == '%'
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

// scanNumber advances past an unsigned decimal number: digits with an
// optional fraction. The dot is consumed only when a digit follows it, so
// "10." stays a number followed by a literal dot.
func scanNumber(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i
}
