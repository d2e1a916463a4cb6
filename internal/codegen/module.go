package codegen

import (
	"github.com/CryZe/livesplit-auto-splitting/internal/host"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/instruction"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/module"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/types"
)

// Generate assembles the complete WASM module for a fully resolved, typed,
// numbered and register-allocated store: the fixed host-import signature
// table and imports, a synthesized configure function, one function per
// user fn declaration, and one exported function per action.
//
// Callers must have already run, in order: resolve.Run, arity.Check,
// typeinfer.Infer, typeinfer.Default, extend.Run, NumberFunctions,
// AssignParamRegisters, AllocateLocals.
func Generate(store *ir.Store) *module.Module {
	m := &module.Module{
		MemoryName: "memory",
		Memories:   []module.Limits{{Min: 1}},
	}

	// Entries 0..6 are the fixed host-call signatures; every import
	// references one of them.
	m.Types = []module.FunctionType{
		{Params: []types.ValueType{types.I32, types.I32}},                                 // TypeSetProcessName
		{Params: []types.ValueType{types.I32, types.I32, types.I32}, Results: []types.ValueType{types.I32}}, // TypePushPointerPath
		{Params: []types.ValueType{types.I32, types.I64}},                                 // TypePushOffset
		{Params: []types.ValueType{types.I32, types.I32}, Results: []types.ValueType{types.I32}}, // TypeGetSmallInt
		{Params: []types.ValueType{types.I32, types.I32}, Results: []types.ValueType{types.I64}}, // TypeGet64
		{Params: []types.ValueType{types.I32, types.I32}, Results: []types.ValueType{types.F32}}, // TypeGetF32
		{Params: []types.ValueType{types.I32, types.I32}, Results: []types.ValueType{types.F64}}, // TypeGetF64
	}

	for i, name := range host.ImportName {
		m.Imports = append(m.Imports, module.Import{
			Module: host.Module,
			Name:   name,
			Type:   host.ImportTypeIndex(uint32(i)),
		})
	}

	data, offsets := buildData(store.Source.State)

	g := &generator{store: store}

	configureType := uint32(len(m.Types))
	m.Types = append(m.Types, module.FunctionType{})
	configureIdx := uint32(len(m.Imports))
	m.Functions = append(m.Functions, module.Function{
		TypeIndex: configureType,
		Instrs:    buildConfigure(store.Source.State, offsets),
	})

	items := store.Source.CodeItems()
	nextIndex := configureIdx + 1

	for _, item := range items {
		body := functionBody(store, item)
		sig := store.ParamSignature.MustGet(item.Body)
		counts := store.LocalCounts.MustGet(item.Body)

		var params []types.ValueType
		for _, c := range sig {
			params = append(params, classToValueType(c))
		}

		var results []types.ValueType
		resultTy := resultTypeFor(store, item)
		if resultTy != ir.Unit {
			results = append(results, classToValueType(resultTy.Class()))
		}

		typeIdx := uint32(len(m.Types))
		m.Types = append(m.Types, module.FunctionType{Params: params, Results: results})

		instrs := g.lowerOps(body)
		instrs = coerceTail(store, body, resultTy, instrs)

		m.Functions = append(m.Functions, module.Function{
			TypeIndex: typeIdx,
			Locals:    localDecls(counts),
			Instrs:    instrs,
		})

		if item.Kind == ir.ItemAction {
			m.Exports = append(m.Exports, module.Export{
				Name:  host.ActionExportName(item.Action),
				Kind:  module.ExportFunc,
				Index: nextIndex,
			})
		}
		nextIndex++
	}

	m.Exports = append(m.Exports,
		module.Export{Name: "memory", Kind: module.ExportMemory, Index: 0},
		module.Export{Name: "configure", Kind: module.ExportFunc, Index: configureIdx},
	)

	m.Data = []module.DataSegment{{Offset: 0, Bytes: data}}

	return m
}

// resultTypeFor reports the value type a code item's exported/callable
// WASM function signature returns: an action's fixed ResultType, or a
// function's own inferred-and-defaulted type (which tracks its body's tail
// value via the SameAsMe edge set up at parse time).
func resultTypeFor(store *ir.Store, item ir.Item) ir.Type {
	if item.Kind == ir.ItemAction {
		return item.Action.ResultType()
	}
	return store.Type.MustGet(item.Body)
}

// coerceTail pads a function body whose tail value came out Unit (a
// function/action whose block has no trailing expression) with a zero
// constant of the declared result type, so every code item leaves exactly
// what its signature promises on the stack.
func coerceTail(store *ir.Store, body ir.Entity, resultTy ir.Type, instrs []instruction.Instruction) []instruction.Instruction {
	bodyTy := store.Type.MustGet(body)
	if resultTy == ir.Unit || bodyTy != ir.Unit {
		return instrs
	}
	switch resultTy.Class() {
	case ir.RegI64:
		return append(instrs, instruction.I64Const{})
	case ir.RegF32:
		return append(instrs, instruction.F32Const{})
	case ir.RegF64:
		return append(instrs, instruction.F64Const{})
	default:
		return append(instrs, instruction.I32Const{})
	}
}

func localDecls(c ir.LocalCounts) []module.LocalDeclaration {
	var out []module.LocalDeclaration
	if c.I32 > 0 {
		out = append(out, module.LocalDeclaration{Count: uint32(c.I32), Type: types.I32})
	}
	if c.I64 > 0 {
		out = append(out, module.LocalDeclaration{Count: uint32(c.I64), Type: types.I64})
	}
	if c.F32 > 0 {
		out = append(out, module.LocalDeclaration{Count: uint32(c.F32), Type: types.F32})
	}
	if c.F64 > 0 {
		out = append(out, module.LocalDeclaration{Count: uint32(c.F64), Type: types.F64})
	}
	return out
}

// buildData lays out the data section: the process name bytes at offset 0,
// then each pointer path's module name bytes concatenated in declaration
// order. It returns the byte offset and length of every path's module name,
// keyed by path index, for the configure function to push.
func buildData(state *ir.State) (data []byte, offsets []dataRange) {
	data = append(data, state.ProcessName...)
	offsets = make([]dataRange, len(state.Paths))
	for i, p := range state.Paths {
		offsets[i] = dataRange{offset: len(data), length: len(p.Module)}
		data = append(data, p.Module...)
	}
	return data, offsets
}

type dataRange struct {
	offset, length int
}

// buildConfigure synthesizes the configure function's body (index 13): it
// registers the process name, then for every pointer path pushes its
// module-name slice to the host (discarding the assigned id, since the
// host assigns ids sequentially matching path declaration order) followed
// by each of its offsets.
func buildConfigure(state *ir.State, offsets []dataRange) []instruction.Instruction {
	var instrs []instruction.Instruction
	instrs = append(instrs,
		instruction.I32Const{Value: 0},
		instruction.I32Const{Value: int32(len(state.ProcessName))},
		instruction.Call{Index: host.SetProcessName},
	)

	for i, p := range state.Paths {
		r := offsets[i]
		instrs = append(instrs,
			instruction.I32Const{Value: int32(r.offset)},
			instruction.I32Const{Value: int32(r.length)},
			instruction.I32Const{Value: 0},
			instruction.Call{Index: host.PushPointerPath},
			instruction.Drop{},
		)
		for _, off := range p.Offsets {
			instrs = append(instrs,
				instruction.I32Const{Value: int32(i)},
				instruction.I64Const{Value: off},
				instruction.Call{Index: host.PushOffset},
			)
		}
	}

	return instrs
}
