package ir

// Store is the entity store plus every aspect table a pass can read or
// write. One Store is built per compilation by the parser and threaded
// through the whole pipeline; nothing here is safe across compilations.
type Store struct {
	entities Entity // next unallocated entity; 0 is a valid entity

	Source *Source

	Range            *Table[ByteRange]
	Children         *Table[[]Entity]
	ScopeBoundary    *Table[struct{}]
	NameUses         *Table[[]string]
	DeclIndex        *Table[int]
	ResolvedUses     *Table[[]Entity]
	DeclaredBy       *Table[Entity]
	FunctionDecl     *Table[FunctionDecl]
	FunctionCall     *Table[FunctionCall]
	Type             *Table[Type]
	TypeConstraints  *Table[[]TypeEdge]
	NeedsExtend      *Table[struct{}]
	ExtendConstraints *Table[[]ExtendEdge]
	CodeGenOps       *Table[[]Op]
	FunctionIndex    *Table[int]
	ParamSignature   *Table[[]RegisterClass]
	LocalRegister    *Table[int]
	LocalCounts      *Table[LocalCounts]
}

// LocalCounts is the per-function aspect C9 records: the number of locals
// needed in each register-class bucket, beyond the parameters.
type LocalCounts struct {
	I32, I64, F32, F64 int
}

// NewStore returns an empty Store ready for the parser to populate.
func NewStore() *Store {
	return &Store{
		Range:             NewTable[ByteRange](),
		Children:          NewTable[[]Entity](),
		ScopeBoundary:     NewTable[struct{}](),
		NameUses:          NewTable[[]string](),
		DeclIndex:         NewTable[int](),
		ResolvedUses:      NewTable[[]Entity](),
		DeclaredBy:        NewTable[Entity](),
		FunctionDecl:      NewTable[FunctionDecl](),
		FunctionCall:      NewTable[FunctionCall](),
		Type:              NewTable[Type](),
		TypeConstraints:   NewTable[[]TypeEdge](),
		NeedsExtend:       NewTable[struct{}](),
		ExtendConstraints: NewTable[[]ExtendEdge](),
		CodeGenOps:        NewTable[[]Op](),
		FunctionIndex:     NewTable[int](),
		ParamSignature:    NewTable[[]RegisterClass](),
		LocalRegister:     NewTable[int](),
		LocalCounts:       NewTable[LocalCounts](),
	}
}

// NewEntity allocates and returns a fresh Entity.
func (s *Store) NewEntity() Entity {
	e := s.entities
	s.entities++
	return e
}

// Len reports how many entities have been allocated so far.
func (s *Store) Len() int {
	return int(s.entities)
}

// MarkScopeBoundary sets the ScopeBoundary marker on e.
func (s *Store) MarkScopeBoundary(e Entity) {
	s.ScopeBoundary.Insert(e, struct{}{})
}

// MarkNeedsExtend sets the NeedsExtend marker on e, returning whether it
// was already set (passes use this to detect a fixpoint-changing write).
func (s *Store) MarkNeedsExtend(e Entity) (already bool) {
	_, already = s.NeedsExtend.Insert(e, struct{}{})
	return already
}
