package compiler

import "github.com/CryZe/livesplit-auto-splitting/internal/ir"

// Span is a half-open source range expressed as 1-indexed (line, column)
// pairs, the query-facing counterpart to the byte-offset ir.ByteRange every
// entity carries internally.
type Span struct {
	FromLine, FromColumn int
	ToLine, ToColumn     int
}

func spanOf(src string, r ir.ByteRange) Span {
	fl, fc := lineColumn(src, r.Start)
	tl, tc := lineColumn(src, r.End)
	return Span{FromLine: fl, FromColumn: fc, ToLine: tl, ToColumn: tc}
}

// HoverResult is what Hover reports about the narrowest entity under a cursor
// position: its type, its span, and — when it names a function — the
// parameter types of that function.
type HoverResult struct {
	Entity ir.Entity
	Type   ir.Type
	Params []ir.Type
	Span   Span
}

// Hover finds the innermost typed entity whose ByteRange contains the given
// 1-indexed cursor position, grounded on debug_info.rs's HoverSystem: among
// every entity whose range contains the cursor, the one with the smallest
// range wins.
func Hover(store *ir.Store, src string, line, column int) (HoverResult, bool) {
	pos := byteOffset(src, line, column)

	var (
		found   ir.Entity
		foundOk bool
		bestLen = -1
		bestRng ir.ByteRange
	)
	for _, e := range store.Type.Keys() {
		rng, ok := store.Range.Get(e)
		if !ok {
			continue
		}
		if pos < rng.Start || pos >= rng.End {
			continue
		}
		length := rng.End - rng.Start
		if bestLen == -1 || length < bestLen {
			found, foundOk = e, true
			bestLen = length
			bestRng = rng
		}
	}
	if !foundOk {
		return HoverResult{}, false
	}

	ty := store.Type.MustGet(found)
	var params []ir.Type
	if decl, ok := store.FunctionDecl.Get(found); ok {
		for _, p := range decl.Params {
			if pt, ok := store.Type.Get(p); ok {
				params = append(params, pt)
			}
		}
	}

	return HoverResult{Entity: found, Type: ty, Params: params, Span: spanOf(src, bestRng)}, true
}

// GoToDefinition resolves the variable or function a name-use entity under
// the cursor refers to, and returns the span of its declaration. Grounded
// on debug_info.rs's GoToDefinition: take the first resolved use (the
// variable/function an identifier's NameUses entry bound to), then prefer
// its own declared range, falling back to the range of whatever declared
// it (DeclaredBy) if it has none of its own.
func GoToDefinition(store *ir.Store, src string, line, column int) (Span, bool) {
	h, ok := Hover(store, src, line, column)
	if !ok {
		return Span{}, false
	}

	resolved, ok := store.ResolvedUses.Get(h.Entity)
	if !ok || len(resolved) == 0 {
		return Span{}, false
	}
	target := resolved[0]

	if rng, ok := store.Range.Get(target); ok {
		return spanOf(src, rng), true
	}
	if by, ok := store.DeclaredBy.Get(target); ok {
		if rng, ok := store.Range.Get(by); ok {
			return spanOf(src, rng), true
		}
	}
	return Span{}, false
}

// FindAllReferences returns the span of every name-use entity anywhere in
// the program whose first resolved use targets the same variable or
// function as the one under the cursor, including the cursor's own use.
// Grounded on debug_info.rs's FindAllVariableReferences.
func FindAllReferences(store *ir.Store, src string, line, column int) ([]Span, bool) {
	h, ok := Hover(store, src, line, column)
	if !ok {
		return nil, false
	}

	resolved, ok := store.ResolvedUses.Get(h.Entity)
	if !ok || len(resolved) == 0 {
		return nil, false
	}
	target := resolved[0]

	var spans []Span
	for _, e := range store.ResolvedUses.Keys() {
		uses := store.ResolvedUses.MustGet(e)
		if len(uses) == 0 || uses[0] != target {
			continue
		}
		rng, ok := store.Range.Get(e)
		if !ok {
			continue
		}
		spans = append(spans, spanOf(src, rng))
	}
	return spans, true
}
