package instruction

import "github.com/CryZe/livesplit-auto-splitting/internal/wasm/encoding"

// simple is a zero-immediate instruction identified only by its opcode
// byte; every comparison, arithmetic and conversion instruction below
// embeds one of these rather than repeating an Encode method.
type simple byte

func (s simple) Encode(w *encoding.Writer) { w.WriteByte(byte(s)) }

// i32 comparisons
type I32Eqz struct{ simple }
type I32Eq struct{ simple }
type I32Ne struct{ simple }
type I32LtS struct{ simple }
type I32LtU struct{ simple }
type I32GtS struct{ simple }
type I32GtU struct{ simple }
type I32LeS struct{ simple }
type I32LeU struct{ simple }
type I32GeS struct{ simple }
type I32GeU struct{ simple }

// i64 comparisons
type I64Eqz struct{ simple }
type I64Eq struct{ simple }
type I64Ne struct{ simple }
type I64LtS struct{ simple }
type I64LtU struct{ simple }
type I64GtS struct{ simple }
type I64GtU struct{ simple }
type I64LeS struct{ simple }
type I64LeU struct{ simple }
type I64GeS struct{ simple }
type I64GeU struct{ simple }

// float comparisons
type F32Eq struct{ simple }
type F32Ne struct{ simple }
type F32Lt struct{ simple }
type F32Gt struct{ simple }
type F32Le struct{ simple }
type F32Ge struct{ simple }
type F64Eq struct{ simple }
type F64Ne struct{ simple }
type F64Lt struct{ simple }
type F64Gt struct{ simple }
type F64Le struct{ simple }
type F64Ge struct{ simple }

// i32 arithmetic/bitwise
type I32Add struct{ simple }
type I32Sub struct{ simple }
type I32Mul struct{ simple }
type I32DivS struct{ simple }
type I32DivU struct{ simple }
type I32And struct{ simple }
type I32Or struct{ simple }
type I32Xor struct{ simple }
type I32Shl struct{ simple }
type I32ShrS struct{ simple }
type I32ShrU struct{ simple }

// i64 arithmetic/bitwise
type I64Add struct{ simple }
type I64Sub struct{ simple }
type I64Mul struct{ simple }
type I64DivS struct{ simple }
type I64DivU struct{ simple }
type I64And struct{ simple }
type I64Or struct{ simple }
type I64Xor struct{ simple }
type I64Shl struct{ simple }
type I64ShrS struct{ simple }
type I64ShrU struct{ simple }

// float arithmetic
type F32Neg struct{ simple }
type F32Add struct{ simple }
type F32Sub struct{ simple }
type F32Mul struct{ simple }
type F32Div struct{ simple }
type F64Neg struct{ simple }
type F64Add struct{ simple }
type F64Sub struct{ simple }
type F64Mul struct{ simple }
type F64Div struct{ simple }

// conversions
type I32WrapI64 struct{ simple }
type I32TruncF32S struct{ simple }
type I32TruncF32U struct{ simple }
type I32TruncF64S struct{ simple }
type I32TruncF64U struct{ simple }
type I64ExtendI32S struct{ simple }
type I64ExtendI32U struct{ simple }
type I64TruncF32S struct{ simple }
type I64TruncF32U struct{ simple }
type I64TruncF64S struct{ simple }
type I64TruncF64U struct{ simple }
type F32ConvertI32S struct{ simple }
type F32ConvertI32U struct{ simple }
type F32ConvertI64S struct{ simple }
type F32ConvertI64U struct{ simple }
type F32DemoteF64 struct{ simple }
type F64ConvertI32S struct{ simple }
type F64ConvertI32U struct{ simple }
type F64ConvertI64S struct{ simple }
type F64ConvertI64U struct{ simple }
type F64PromoteF32 struct{ simple }

// Each constructor pins the WASM opcode byte for its instruction; defined
// as functions rather than struct literals with a magic byte at every call
// site so the opcode table lives in exactly one place.
func NewI32Eqz() I32Eqz   { return I32Eqz{0x45} }
func NewI32Eq() I32Eq     { return I32Eq{0x46} }
func NewI32Ne() I32Ne     { return I32Ne{0x47} }
func NewI32LtS() I32LtS   { return I32LtS{0x48} }
func NewI32LtU() I32LtU   { return I32LtU{0x49} }
func NewI32GtS() I32GtS   { return I32GtS{0x4A} }
func NewI32GtU() I32GtU   { return I32GtU{0x4B} }
func NewI32LeS() I32LeS   { return I32LeS{0x4C} }
func NewI32LeU() I32LeU   { return I32LeU{0x4D} }
func NewI32GeS() I32GeS   { return I32GeS{0x4E} }
func NewI32GeU() I32GeU   { return I32GeU{0x4F} }

func NewI64Eqz() I64Eqz { return I64Eqz{0x50} }
func NewI64Eq() I64Eq   { return I64Eq{0x51} }
func NewI64Ne() I64Ne   { return I64Ne{0x52} }
func NewI64LtS() I64LtS { return I64LtS{0x53} }
func NewI64LtU() I64LtU { return I64LtU{0x54} }
func NewI64GtS() I64GtS { return I64GtS{0x55} }
func NewI64GtU() I64GtU { return I64GtU{0x56} }
func NewI64LeS() I64LeS { return I64LeS{0x57} }
func NewI64LeU() I64LeU { return I64LeU{0x58} }
func NewI64GeS() I64GeS { return I64GeS{0x59} }
func NewI64GeU() I64GeU { return I64GeU{0x5A} }

func NewF32Eq() F32Eq { return F32Eq{0x5B} }
func NewF32Ne() F32Ne { return F32Ne{0x5C} }
func NewF32Lt() F32Lt { return F32Lt{0x5D} }
func NewF32Gt() F32Gt { return F32Gt{0x5E} }
func NewF32Le() F32Le { return F32Le{0x5F} }
func NewF32Ge() F32Ge { return F32Ge{0x60} }
func NewF64Eq() F64Eq { return F64Eq{0x61} }
func NewF64Ne() F64Ne { return F64Ne{0x62} }
func NewF64Lt() F64Lt { return F64Lt{0x63} }
func NewF64Gt() F64Gt { return F64Gt{0x64} }
func NewF64Le() F64Le { return F64Le{0x65} }
func NewF64Ge() F64Ge { return F64Ge{0x66} }

func NewI32Add() I32Add   { return I32Add{0x6A} }
func NewI32Sub() I32Sub   { return I32Sub{0x6B} }
func NewI32Mul() I32Mul   { return I32Mul{0x6C} }
func NewI32DivS() I32DivS { return I32DivS{0x6D} }
func NewI32DivU() I32DivU { return I32DivU{0x6E} }
func NewI32And() I32And   { return I32And{0x71} }
func NewI32Or() I32Or     { return I32Or{0x72} }
func NewI32Xor() I32Xor   { return I32Xor{0x73} }
func NewI32Shl() I32Shl   { return I32Shl{0x74} }
func NewI32ShrS() I32ShrS { return I32ShrS{0x75} }
func NewI32ShrU() I32ShrU { return I32ShrU{0x76} }

func NewI64Add() I64Add   { return I64Add{0x7C} }
func NewI64Sub() I64Sub   { return I64Sub{0x7D} }
func NewI64Mul() I64Mul   { return I64Mul{0x7E} }
func NewI64DivS() I64DivS { return I64DivS{0x7F} }
func NewI64DivU() I64DivU { return I64DivU{0x80} }
func NewI64And() I64And   { return I64And{0x83} }
func NewI64Or() I64Or     { return I64Or{0x84} }
func NewI64Xor() I64Xor   { return I64Xor{0x85} }
func NewI64Shl() I64Shl   { return I64Shl{0x86} }
func NewI64ShrS() I64ShrS { return I64ShrS{0x87} }
func NewI64ShrU() I64ShrU { return I64ShrU{0x88} }

func NewF32Neg() F32Neg { return F32Neg{0x8C} }
func NewF32Add() F32Add { return F32Add{0x92} }
func NewF32Sub() F32Sub { return F32Sub{0x93} }
func NewF32Mul() F32Mul { return F32Mul{0x94} }
func NewF32Div() F32Div { return F32Div{0x95} }
func NewF64Neg() F64Neg { return F64Neg{0x9A} }
func NewF64Add() F64Add { return F64Add{0xA0} }
func NewF64Sub() F64Sub { return F64Sub{0xA1} }
func NewF64Mul() F64Mul { return F64Mul{0xA2} }
func NewF64Div() F64Div { return F64Div{0xA3} }

func NewI32WrapI64() I32WrapI64       { return I32WrapI64{0xA7} }
func NewI32TruncF32S() I32TruncF32S   { return I32TruncF32S{0xA8} }
func NewI32TruncF32U() I32TruncF32U   { return I32TruncF32U{0xA9} }
func NewI32TruncF64S() I32TruncF64S   { return I32TruncF64S{0xAA} }
func NewI32TruncF64U() I32TruncF64U   { return I32TruncF64U{0xAB} }
func NewI64ExtendI32S() I64ExtendI32S { return I64ExtendI32S{0xAC} }
func NewI64ExtendI32U() I64ExtendI32U { return I64ExtendI32U{0xAD} }
func NewI64TruncF32S() I64TruncF32S   { return I64TruncF32S{0xAE} }
func NewI64TruncF32U() I64TruncF32U   { return I64TruncF32U{0xAF} }
func NewI64TruncF64S() I64TruncF64S   { return I64TruncF64S{0xB0} }
func NewI64TruncF64U() I64TruncF64U   { return I64TruncF64U{0xB1} }
func NewF32ConvertI32S() F32ConvertI32S { return F32ConvertI32S{0xB2} }
func NewF32ConvertI32U() F32ConvertI32U { return F32ConvertI32U{0xB3} }
func NewF32ConvertI64S() F32ConvertI64S { return F32ConvertI64S{0xB4} }
func NewF32ConvertI64U() F32ConvertI64U { return F32ConvertI64U{0xB5} }
func NewF32DemoteF64() F32DemoteF64     { return F32DemoteF64{0xB6} }
func NewF64ConvertI32S() F64ConvertI32S { return F64ConvertI32S{0xB7} }
func NewF64ConvertI32U() F64ConvertI32U { return F64ConvertI32U{0xB8} }
func NewF64ConvertI64S() F64ConvertI64S { return F64ConvertI64S{0xB9} }
func NewF64ConvertI64U() F64ConvertI64U { return F64ConvertI64U{0xBA} }
func NewF64PromoteF32() F64PromoteF32   { return F64PromoteF32{0xBB} }
