package match

import "github.com/oxhq/sgrep/pattern"

// kindCompatible reports whether n satisfies the syntactic category a
// placeholder declared with kind. KindAny accepts anything without
// consulting the oracle at all.
func kindCompatible(oracle Oracle, n ASTNode, kind pattern.Kind) bool {
	switch kind {
	case pattern.KindAny:
		return true
	case pattern.KindExpression:
		return oracle.IsExpression(n)
	case pattern.KindIdentifier:
		return oracle.IsIdentifier(n)
	case pattern.KindStatement:
		return oracle.IsStatement(n)
	case pattern.KindType:
		return oracle.IsTypeRef(n)
	case pattern.KindMember:
		return oracle.IsMemberAccessSelector(n)
	case pattern.KindArguments:
		_, ok := oracle.ArgumentsOf(n)
		return ok
	}
	return false
}
