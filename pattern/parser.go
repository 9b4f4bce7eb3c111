package pattern

import (
	"regexp"
	"strconv"
	"strings"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parse turns a pattern string into a Pattern AST. It never panics: every
// malformed pattern is reported as a *Error.
func Parse(raw string) (*Pattern, error) {
	p := &Pattern{Raw: raw}
	i := 0
	litStart := 0

	flushLiteral := func(end int) {
		if end > litStart {
			p.Nodes = append(p.Nodes, NewLiteral(raw[litStart:end], Span{litStart, end}))
		}
	}

	for i < len(raw) {
		if raw[i] != '$' {
			i++
			continue
		}

		// "$$" is an escaped literal '$'.
		if i+1 < len(raw) && raw[i+1] == '$' {
			flushLiteral(i)
			p.Nodes = append(p.Nodes, NewLiteral("$", Span{i, i + 2}))
			i += 2
			litStart = i
			continue
		}

		flushLiteral(i)

		content, next, err := scanPlaceholder(raw, i)
		if err != nil {
			return nil, err
		}

		ph, err := parsePlaceholderContent(content, i)
		if err != nil {
			return nil, err
		}
		ph.span = Span{i, next}
		p.Nodes = append(p.Nodes, ph)

		i = next
		litStart = i
	}

	flushLiteral(len(raw))
	return p, nil
}

// scanPlaceholder scans from the '$' at start to the terminating '$',
// treating a double-quoted exact=TEXT span as opaque so a '$' inside a
// quoted constraint value never terminates the placeholder early.
func scanPlaceholder(s string, start int) (content string, next int, err error) {
	i := start + 1
	inQuote := false
	for i < len(s) {
		c := s[i]
		if inQuote {
			if c == '\\' && i+1 < len(s) {
				i += 2
				continue
			}
			if c == '"' {
				inQuote = false
			}
			i++
			continue
		}
		if c == '"' {
			inQuote = true
			i++
			continue
		}
		if c == '$' {
			return s[start+1 : i], i + 1, nil
		}
		i++
	}
	return "", 0, newError(ErrUnterminatedPlaceholder, start, "missing closing '$'")
}

// parsePlaceholderContent parses NAME(:KIND)?(=TAIL)? into a Placeholder.
// A constraint may also follow the ':' directly, with no kind
// ("v:regex=temp.*"); the placeholder then keeps the default kind.
// offset is the byte offset of the opening '$', used for error reporting.
func parsePlaceholderContent(content string, offset int) (*Placeholder, error) {
	idxColon := topLevelIndex(content, ':')
	idxEq := topLevelIndex(content, '=')

	nameEnd := len(content)
	if idxColon >= 0 {
		nameEnd = idxColon
	}
	if idxEq >= 0 && idxEq < nameEnd {
		nameEnd = idxEq
	}
	name := content[:nameEnd]
	if name == "" {
		return nil, newError(ErrEmptyName, offset, "placeholder name is empty")
	}
	if !identRe.MatchString(name) {
		return nil, newError(ErrInvalidName, offset, "placeholder name "+strconv.Quote(name)+" is not identifier-like")
	}

	kind := KindExpression
	tailStart := -1
	if idxEq >= 0 {
		tailStart = idxEq + 1
	}
	if idxColon >= 0 {
		kindEnd := len(content)
		if idxEq >= 0 && idxEq > idxColon {
			kindEnd = idxEq
		}
		kindStr := content[idxColon+1 : kindEnd]
		k, ok := ParseKind(kindStr)
		switch {
		case ok:
			kind = k
		case kindEnd < len(content) && (kindStr == "regex" || kindStr == "count" || kindStr == "exact"):
			tailStart = idxColon + 1
		default:
			return nil, newError(ErrUnknownKind, offset, "unknown placeholder kind "+strconv.Quote(kindStr))
		}
	}

	var constraints []Constraint
	if tailStart >= 0 {
		tail := content[tailStart:]
		cs, err := parseConstraints(tail, kind, offset)
		if err != nil {
			return nil, err
		}
		constraints = cs
	}

	return &Placeholder{Name: name, Kind: kind, Constraints: constraints}, nil
}

// topLevelIndex finds the first occurrence of b in s that is not inside a
// double-quoted span.
func topLevelIndex(s string, b byte) int {
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == '\\' && i+1 < len(s) {
				i++
				continue
			}
			if c == '"' {
				inQuote = false
			}
			continue
		}
		if c == '"' {
			inQuote = true
			continue
		}
		if c == b {
			return i
		}
	}
	return -1
}

// parseConstraints splits a constraint tail on top-level commas and parses
// each "kind=value" piece.
func parseConstraints(tail string, kind Kind, offset int) ([]Constraint, error) {
	pieces := splitTopLevel(tail, ',')
	constraints := make([]Constraint, 0, len(pieces))
	for _, piece := range pieces {
		c, err := parseOneConstraint(piece, kind, offset)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c)
	}
	return constraints, nil
}

func splitTopLevel(s string, sep byte) []string {
	var out []string
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == '\\' && i+1 < len(s) {
				i++
				continue
			}
			if c == '"' {
				inQuote = false
			}
			continue
		}
		if c == '"' {
			inQuote = true
			continue
		}
		if c == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func parseOneConstraint(piece string, kind Kind, offset int) (Constraint, error) {
	eq := strings.IndexByte(piece, '=')
	if eq < 0 {
		return nil, newError(ErrUnknownConstraint, offset, "constraint "+strconv.Quote(piece)+" missing '='")
	}
	ctype := piece[:eq]
	value := piece[eq+1:]

	switch ctype {
	case "regex":
		re, err := NewRegexConstraint(value)
		if err != nil {
			return nil, newError(ErrMalformedRegex, offset, err.Error())
		}
		return re, nil
	case "type":
		return &TypeConstraint{Name: value}, nil
	case "count":
		if kind != KindArguments {
			return nil, newError(ErrConstraintIncompatibleWithKind, offset, "count constraint requires kind=args")
		}
		return parseCount(value, offset)
	case "exact":
		text, ignoreCase, err := parseExact(value, offset)
		if err != nil {
			return nil, err
		}
		return &ExactMatchConstraint{Text: text, IgnoreCase: ignoreCase}, nil
	default:
		return nil, newError(ErrUnknownConstraint, offset, "unknown constraint type "+strconv.Quote(ctype))
	}
}

func parseCount(value string, offset int) (*CountConstraint, error) {
	if !strings.Contains(value, "-") {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, newError(ErrMalformedCount, offset, "malformed count "+strconv.Quote(value))
		}
		return &CountConstraint{Min: &n, Max: &n}, nil
	}

	idx := strings.IndexByte(value, '-')
	leftStr, rightStr := value[:idx], value[idx+1:]

	var min, max *int
	if leftStr != "" {
		n, err := strconv.Atoi(leftStr)
		if err != nil {
			return nil, newError(ErrMalformedCount, offset, "malformed count lower bound "+strconv.Quote(leftStr))
		}
		min = &n
	}
	if rightStr != "" {
		n, err := strconv.Atoi(rightStr)
		if err != nil {
			return nil, newError(ErrMalformedCount, offset, "malformed count upper bound "+strconv.Quote(rightStr))
		}
		max = &n
	}
	return &CountConstraint{Min: min, Max: max}, nil
}

// parseExact unquotes a double-quote delimited exact match value,
// processing \" and \\ escapes per spec §4.1. The grammar has no syntax
// for case folding, so ignoreCase is always false.
func parseExact(value string, offset int) (text string, ignoreCase bool, err error) {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", false, newError(ErrMalformedExact, offset, "exact constraint must be double-quote delimited")
	}
	inner := value[1 : len(value)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) && (inner[i+1] == '"' || inner[i+1] == '\\') {
			b.WriteByte(inner[i+1])
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), false, nil
}
