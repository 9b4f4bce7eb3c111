// Package cache is the compilation cache external collaborator named in
// spec.md §1 and §5: a concurrent, keyed `(language, source) -> *sitter.Tree`
// cache, shared by every providers/<lang> front-end rather than duplicated
// per language. Concurrent misses on the same key are not coalesced: each
// caller parses, and only the first tree stored is kept.
package cache
