package match

import (
	"unicode/utf8"

	"github.com/oxhq/sgrep/pattern"
)

// canonicalize collapses every run of whitespace in s to a single ' ', except
// inside the byte ranges listed in protected (string-literal token spans,
// relative to the start of s), which pass through byte-for-byte.
//
// It returns the canonical text plus toOrig, a slice the same length as the
// canonical text plus one trailing entry: toOrig[i] is the byte offset in s
// that produced canonical byte i, and toOrig[len(canon)] == len(s). Every
// canonical byte maps to an exact original byte — there is never an
// unmapped gap, since canon is derived directly from s.
func canonicalize(s string, protected []pattern.Span) (canon string, toOrig []int) {
	inProtected := func(i int) bool {
		for _, p := range protected {
			if i >= p.Start && i < p.End {
				return true
			}
		}
		return false
	}

	var out []byte
	i := 0
	for i < len(s) {
		if inProtected(i) {
			out = append(out, s[i])
			toOrig = append(toOrig, i)
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if isCanonWhitespace(r) {
			start := i
			for i < len(s) && !inProtected(i) {
				r, size = utf8.DecodeRuneInString(s[i:])
				if !isCanonWhitespace(r) {
					break
				}
				i += size
			}
			out = append(out, ' ')
			toOrig = append(toOrig, start)
			continue
		}
		for j := 0; j < size; j++ {
			out = append(out, s[i+j])
			toOrig = append(toOrig, i+j)
		}
		i += size
	}
	toOrig = append(toOrig, len(s))
	return string(out), toOrig
}

func isCanonWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// stringLiteralSpans extracts, relative to nodeStart, the byte ranges of any
// token in tokens whose Kind marks it as a string literal.
func stringLiteralSpans(tokens []Token, nodeStart int) []pattern.Span {
	var spans []pattern.Span
	for _, t := range tokens {
		if t.Kind == "string" {
			spans = append(spans, pattern.Span{Start: t.Start - nodeStart, End: t.End - nodeStart})
		}
	}
	return spans
}

// quotedSpans finds double-quoted substrings within a pattern literal's own
// text, honoring '\\' escapes. Pattern literals carry no token stream of
// their own, so this is the matcher's heuristic for deciding which parts of
// a literal fragment are "inside a string" for canonicalization purposes.
func quotedSpans(s string) []pattern.Span {
	var spans []pattern.Span
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if inQuote {
				i++
			}
		case '"':
			if inQuote {
				spans = append(spans, pattern.Span{Start: start, End: i + 1})
				inQuote = false
			} else {
				start = i
				inQuote = true
			}
		}
	}
	return spans
}

// canonicalizeLiteral canonicalizes a pattern literal's text using its own
// quoted substrings as protected spans.
func canonicalizeLiteral(s string) string {
	canon, _ := canonicalize(s, quotedSpans(s))
	return canon
}

// canonicalizeValue canonicalizes text captured from n's own surface
// rendering, protecting n's string-literal token spans the same way
// unifyWholeLiteral does. Used to build the canonical form a Candidate
// and a Binding compare on (spec §4.1/§8 property 3).
func canonicalizeValue(oracle Oracle, n ASTNode, text string) string {
	canon, _ := canonicalize(text, stringLiteralSpans(oracle.TokensOf(n), spanStart(oracle, n)))
	return canon
}

// canonicalizeArgs canonicalizes each rendered argument's own surface text,
// using that argument node's own token spans to protect its string
// literals, so an Arguments capture's Candidate/Binding also compare
// canonically rather than on raw surface text.
func canonicalizeArgs(oracle Oracle, args []ASTNode, rendered []string) []string {
	out := make([]string, len(rendered))
	for i, r := range rendered {
		out[i] = canonicalizeValue(oracle, args[i], r)
	}
	return out
}
