package ast

type (
	// top-level entities
	FileID      uint32
	ModuleID    uint32
	StructID    uint32
	ClassID     uint32
	ExceptionID uint32
	InterfaceID uint32
	EnumID      uint32
	TraitID     uint32
	CustomID    uint32
	AliasID     uint32
	// members
	OperationID  uint32
	ParameterID  uint32
	FieldID      uint32
	EnumeratorID uint32
	// leaves
	TypeRefID uint32
	AttrID    uint32
	DocID     uint32
)

const (
	NoFileID       FileID       = 0
	NoModuleID     ModuleID     = 0
	NoStructID     StructID     = 0
	NoClassID      ClassID      = 0
	NoExceptionID  ExceptionID  = 0
	NoInterfaceID  InterfaceID  = 0
	NoEnumID       EnumID       = 0
	NoTraitID      TraitID      = 0
	NoCustomID     CustomID     = 0
	NoAliasID      AliasID      = 0
	NoOperationID  OperationID  = 0
	NoParameterID  ParameterID  = 0
	NoFieldID      FieldID      = 0
	NoEnumeratorID EnumeratorID = 0
	NoTypeRefID    TypeRefID    = 0
	NoAttrID       AttrID       = 0
	NoDocID        DocID        = 0
)

func (id FileID) IsValid() bool       { return id != NoFileID }
func (id ModuleID) IsValid() bool     { return id != NoModuleID }
func (id StructID) IsValid() bool     { return id != NoStructID }
func (id ClassID) IsValid() bool      { return id != NoClassID }
func (id ExceptionID) IsValid() bool  { return id != NoExceptionID }
func (id InterfaceID) IsValid() bool  { return id != NoInterfaceID }
func (id EnumID) IsValid() bool       { return id != NoEnumID }
func (id TraitID) IsValid() bool      { return id != NoTraitID }
func (id CustomID) IsValid() bool     { return id != NoCustomID }
func (id AliasID) IsValid() bool      { return id != NoAliasID }
func (id OperationID) IsValid() bool  { return id != NoOperationID }
func (id ParameterID) IsValid() bool  { return id != NoParameterID }
func (id FieldID) IsValid() bool      { return id != NoFieldID }
func (id EnumeratorID) IsValid() bool { return id != NoEnumeratorID }
func (id TypeRefID) IsValid() bool    { return id != NoTypeRefID }
func (id AttrID) IsValid() bool       { return id != NoAttrID }
func (id DocID) IsValid() bool        { return id != NoDocID }
