package typeinfer

import "github.com/CryZe/livesplit-auto-splitting/internal/ir"

// Default runs C5: every type aspect left open after C4 is closed down to
// its default concrete member — Int and Number both become I32, Float
// becomes F64. A leftover Bits is an internal compiler error: it must have
// already resolved to Int or Bool via spread against some concrete operand
// (a literal, a state field, a cast target), since nothing else in this
// language produces a bare Bits.
func Default(store *ir.Store) {
	ids := store.Type.Keys()
	for _, e := range ids {
		t, _ := store.Type.Get(e)
		switch t {
		case ir.Int, ir.Number:
			store.Type.Insert(e, ir.I32)
		case ir.Float:
			store.Type.Insert(e, ir.F64)
		case ir.Bits:
			panic("typeinfer: Bits left unresolved after C4 — spread should have narrowed it to Int or Bool")
		}
	}
}
