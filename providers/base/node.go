package base

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/sgrep/match"
	"github.com/oxhq/sgrep/pattern"
)

// fileAST adapts a single parsed *sitter.Tree to match.AST.
type fileAST struct {
	tree *sitter.Tree
}

func (a fileAST) Root() match.ASTNode { return a.tree.RootNode() }

func (a fileAST) Children(n match.ASTNode) []match.ASTNode {
	nd := n.(*sitter.Node)
	count := int(nd.ChildCount())
	out := make([]match.ASTNode, 0, count)
	for i := 0; i < count; i++ {
		if c := nd.Child(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// fileOracle adapts a Classifier plus the raw source it was parsed from to
// match.Oracle. One fileOracle is bound to exactly one source buffer, so
// PrintSurface/SourceSpan/TokensOf can slice directly into it.
type fileOracle struct {
	source     []byte
	classifier Classifier
}

func (o *fileOracle) ResolveType(n match.ASTNode) (string, bool) {
	// No language here runs a real type-checker; type resolution needs
	// whole-program semantic analysis no tree-sitter grammar provides.
	// A :type= constraint is therefore never satisfiable against these
	// front-ends, which is documented rather than faked with a guess.
	return "", false
}

func (o *fileOracle) IsExpression(n match.ASTNode) bool {
	kind, ok := o.classifier.Classify(n.(*sitter.Node).Type())
	return ok && kind != pattern.KindStatement
}

func (o *fileOracle) IsStatement(n match.ASTNode) bool {
	kind, ok := o.classifier.Classify(n.(*sitter.Node).Type())
	return ok && kind == pattern.KindStatement
}

func (o *fileOracle) IsIdentifier(n match.ASTNode) bool {
	kind, ok := o.classifier.Classify(n.(*sitter.Node).Type())
	return ok && kind == pattern.KindIdentifier
}

func (o *fileOracle) IsTypeRef(n match.ASTNode) bool {
	kind, ok := o.classifier.Classify(n.(*sitter.Node).Type())
	return ok && kind == pattern.KindType
}

func (o *fileOracle) IsMemberAccessSelector(n match.ASTNode) bool {
	kind, ok := o.classifier.Classify(n.(*sitter.Node).Type())
	return ok && kind == pattern.KindMember
}

func (o *fileOracle) ArgumentsOf(n match.ASTNode) ([]match.ASTNode, bool) {
	args, ok := o.classifier.CallArguments(n.(*sitter.Node))
	if !ok {
		return nil, false
	}
	out := make([]match.ASTNode, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out, true
}

func (o *fileOracle) SourceSpan(n match.ASTNode) (int, int) {
	nd := n.(*sitter.Node)
	return int(nd.StartByte()), int(nd.EndByte())
}

func (o *fileOracle) TokensOf(n match.ASTNode) []match.Token {
	nd := n.(*sitter.Node)
	var tokens []match.Token
	var walk func(*sitter.Node)
	walk = func(x *sitter.Node) {
		if x.ChildCount() == 0 {
			kind := x.Type()
			if o.classifier.IsStringLiteral(kind) {
				kind = "string"
			}
			tokens = append(tokens, match.Token{
				Kind:  kind,
				Text:  string(o.source[x.StartByte():x.EndByte()]),
				Start: int(x.StartByte()),
				End:   int(x.EndByte()),
			})
			return
		}
		for i := 0; i < int(x.ChildCount()); i++ {
			if c := x.Child(i); c != nil {
				walk(c)
			}
		}
	}
	walk(nd)
	return tokens
}

func (o *fileOracle) PrintSurface(n match.ASTNode) string {
	nd := n.(*sitter.Node)
	return string(o.source[nd.StartByte():nd.EndByte()])
}
