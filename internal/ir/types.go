package ir

// Type is one member of the type lattice. Concrete members denote exactly
// one WASM-representable type; Int, Float, Number and Bits are "open" types
// that denote a set of concrete types and await narrowing by inference.
type Type int

const (
	TypeNone Type = iota // absent — no aspect value yet, distinct from Unit
	Unit
	Bool
	U8
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	Int    // any signed/unsigned integer width
	Float  // F32 or F64
	Number // Int ∪ Float
	Bits   // Int ∪ Bool
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "<none>"
	case Unit:
		return "Unit"
	case Bool:
		return "Bool"
	case U8:
		return "U8"
	case U16:
		return "U16"
	case U32:
		return "U32"
	case U64:
		return "U64"
	case I8:
		return "I8"
	case I16:
		return "I16"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case F32:
		return "F32"
	case F64:
		return "F64"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Number:
		return "Number"
	case Bits:
		return "Bits"
	default:
		return "<invalid type>"
	}
}

// IsOpen reports whether t is a lattice member that still denotes a set of
// concrete types rather than exactly one.
func (t Type) IsOpen() bool {
	switch t {
	case Int, Float, Number, Bits:
		return true
	default:
		return false
	}
}

// IsSpecificInt reports whether t is one of the eight concrete integer
// types (signed or unsigned, any width).
func (t Type) IsSpecificInt() bool {
	switch t {
	case U8, U16, U32, U64, I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// IsSpecificFloat reports whether t is F32 or F64.
func (t Type) IsSpecificFloat() bool {
	return t == F32 || t == F64
}

// IsUnsigned reports whether t is one of the unsigned concrete integer
// types.
func (t Type) IsUnsigned() bool {
	switch t {
	case U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

// IsMoreSpecificNumber reports whether t is strictly narrower than Number:
// any concrete int, any concrete float, or one of Int/Float themselves.
func (t Type) IsMoreSpecificNumber() bool {
	switch t {
	case Int, Float:
		return true
	default:
		return t.IsSpecificInt() || t.IsSpecificFloat()
	}
}

// IsMoreSpecificBits reports whether t is strictly narrower than Bits: Bool,
// Int, or any concrete int.
func (t Type) IsMoreSpecificBits() bool {
	if t == Bool || t == Int {
		return true
	}
	return t.IsSpecificInt()
}

// RegisterClass is the WASM local/parameter class a type maps onto.
type RegisterClass int

const (
	RegNone RegisterClass = iota
	RegI32
	RegI64
	RegF32
	RegF64
)

func (r RegisterClass) String() string {
	switch r {
	case RegNone:
		return "none"
	case RegI32:
		return "i32"
	case RegI64:
		return "i64"
	case RegF32:
		return "f32"
	case RegF64:
		return "f64"
	default:
		return "<invalid register class>"
	}
}

// Class returns the register class a concrete type maps onto. The type must
// not be open (call only after C5's default-type pass, or on an already
// concrete type).
func (t Type) Class() RegisterClass {
	switch t {
	case Bool, U8, U16, U32, I8, I16, I32:
		return RegI32
	case U64, I64:
		return RegI64
	case F32:
		return RegF32
	case F64:
		return RegF64
	case Unit:
		return RegNone
	default:
		panic("ir: Class called on open or absent type " + t.String())
	}
}

// BitWidth returns the bit width of a concrete integer or float type.
func (t Type) BitWidth() int {
	switch t {
	case U8, I8:
		return 8
	case U16, I16:
		return 16
	case U32, I32, F32:
		return 32
	case U64, I64, F64:
		return 64
	default:
		panic("ir: BitWidth called on non-concrete type " + t.String())
	}
}

// Spread narrows a against b per the type-lattice meet rule. It returns the
// narrower type, or (TypeNone, false) if a and b are incompatible.
func Spread(a, b Type) (Type, bool) {
	if a == TypeNone {
		return b, true
	}
	if b == TypeNone {
		return a, true
	}
	if a == b {
		return a, true
	}
	// Int meets any concrete int.
	if a == Int && b.IsSpecificInt() {
		return b, true
	}
	if b == Int && a.IsSpecificInt() {
		return a, true
	}
	// Float meets any concrete float.
	if a == Float && b.IsSpecificFloat() {
		return b, true
	}
	if b == Float && a.IsSpecificFloat() {
		return a, true
	}
	// Number meets any more specific number.
	if a == Number && b.IsMoreSpecificNumber() {
		return b, true
	}
	if b == Number && a.IsMoreSpecificNumber() {
		return a, true
	}
	// Bits meets any more specific bits type.
	if a == Bits && b.IsMoreSpecificBits() {
		return b, true
	}
	if b == Bits && a.IsMoreSpecificBits() {
		return a, true
	}
	// Number meets Bits (either order) -> Int.
	if (a == Number && b == Bits) || (a == Bits && b == Number) {
		return Int, true
	}
	return TypeNone, false
}
