package match

// ASTNode is an opaque handle to a node in some target-language AST. The
// matcher never inspects it directly; it only ever passes it back to an AST
// or Oracle implementation.
type ASTNode = any

// Token is one lexical unit aligned to a span of the original source. Kind
// is provider-defined; the only value the matcher itself cares about is
// "string", which marks a token whose interior whitespace must never be
// canonicalized (spec: "except inside string-literal tokens, which compare
// byte-for-byte").
type Token struct {
	Kind  string
	Text  string
	Start int
	End   int
}

// AST exposes the structural shape of a parsed file: a root node and a way
// to walk its children in source order. Concrete language front-ends
// (package providers/...) wrap a *sitter.Tree to satisfy this.
type AST interface {
	Root() ASTNode
	Children(n ASTNode) []ASTNode
}

// Oracle answers the semantic and syntactic questions the matcher needs
// about a node, without the matcher knowing the concrete language or AST
// shape behind it.
type Oracle interface {
	// ResolveType reports the statically-resolved type name of n, if the
	// language front-end can determine one.
	ResolveType(n ASTNode) (name string, ok bool)

	IsExpression(n ASTNode) bool
	IsStatement(n ASTNode) bool
	IsIdentifier(n ASTNode) bool
	IsTypeRef(n ASTNode) bool
	IsMemberAccessSelector(n ASTNode) bool

	// ArgumentsOf reports the ordered child argument nodes of n, if n is
	// a call (or declaration parameter list) that has one.
	ArgumentsOf(n ASTNode) (args []ASTNode, ok bool)

	// SourceSpan reports n's byte extent in the file's source text.
	SourceSpan(n ASTNode) (start, end int)

	// TokensOf reports the lexical tokens spanning n, in source order.
	TokensOf(n ASTNode) []Token

	// PrintSurface renders n's original surface text, including any
	// interior trivia (whitespace, comments) the node's span covers.
	PrintSurface(n ASTNode) string
}
