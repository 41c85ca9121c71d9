package ast

// Builder owns the arenas of one compilation. All nodes of every file in
// the compilation live here; the rest of the compiler passes IDs around.
type Builder struct {
	Files       *Arena[File]
	Modules     *Arena[Module]
	Structs     *Arena[Struct]
	Classes     *Arena[Class]
	Exceptions  *Arena[Exception]
	Interfaces  *Arena[Interface]
	Enums       *Arena[Enum]
	Enumerators *Arena[Enumerator]
	Traits      *Arena[Trait]
	Customs     *Arena[Custom]
	Aliases     *Arena[Alias]
	Operations  *Arena[Operation]
	Parameters  *Arena[Parameter]
	Fields      *Arena[Field]
	TypeRefs    *Arena[TypeRef]
	Attrs       *Arena[Attr]
	Docs        *Arena[DocComment]
}

func NewBuilder() *Builder {
	return &Builder{
		Files:       NewArena[File](4),
		Modules:     NewArena[Module](16),
		Structs:     NewArena[Struct](16),
		Classes:     NewArena[Class](8),
		Exceptions:  NewArena[Exception](8),
		Interfaces:  NewArena[Interface](8),
		Enums:       NewArena[Enum](8),
		Enumerators: NewArena[Enumerator](32),
		Traits:      NewArena[Trait](4),
		Customs:     NewArena[Custom](4),
		Aliases:     NewArena[Alias](8),
		Operations:  NewArena[Operation](16),
		Parameters:  NewArena[Parameter](32),
		Fields:      NewArena[Field](64),
		TypeRefs:    NewArena[TypeRef](64),
		Attrs:       NewArena[Attr](16),
		Docs:        NewArena[DocComment](16),
	}
}

func (b *Builder) AddFile(f File) FileID             { return FileID(b.Files.Allocate(f)) }
func (b *Builder) AddModule(m Module) ModuleID       { return ModuleID(b.Modules.Allocate(m)) }
func (b *Builder) AddStruct(s Struct) StructID       { return StructID(b.Structs.Allocate(s)) }
func (b *Builder) AddClass(c Class) ClassID          { return ClassID(b.Classes.Allocate(c)) }
func (b *Builder) AddException(e Exception) ExceptionID {
	return ExceptionID(b.Exceptions.Allocate(e))
}
func (b *Builder) AddInterface(i Interface) InterfaceID {
	return InterfaceID(b.Interfaces.Allocate(i))
}
func (b *Builder) AddEnum(e Enum) EnumID { return EnumID(b.Enums.Allocate(e)) }
func (b *Builder) AddEnumerator(e Enumerator) EnumeratorID {
	return EnumeratorID(b.Enumerators.Allocate(e))
}
func (b *Builder) AddTrait(t Trait) TraitID    { return TraitID(b.Traits.Allocate(t)) }
func (b *Builder) AddCustom(c Custom) CustomID { return CustomID(b.Customs.Allocate(c)) }
func (b *Builder) AddAlias(a Alias) AliasID    { return AliasID(b.Aliases.Allocate(a)) }
func (b *Builder) AddOperation(o Operation) OperationID {
	return OperationID(b.Operations.Allocate(o))
}
func (b *Builder) AddParameter(p Parameter) ParameterID {
	return ParameterID(b.Parameters.Allocate(p))
}
func (b *Builder) AddField(f Field) FieldID       { return FieldID(b.Fields.Allocate(f)) }
func (b *Builder) AddTypeRef(t TypeRef) TypeRefID { return TypeRefID(b.TypeRefs.Allocate(t)) }
func (b *Builder) AddAttr(a Attr) AttrID          { return AttrID(b.Attrs.Allocate(a)) }
func (b *Builder) AddDoc(d DocComment) DocID      { return DocID(b.Docs.Allocate(d)) }

// DeclOf returns the shared declaration header of any named definition, or
// nil for an invalid handle.
func (b *Builder) DeclOf(id DefID) *Decl {
	switch id.Kind {
	case KindModule:
		if m := b.Modules.Get(id.Index); m != nil {
			return &m.Decl
		}
	case KindStruct:
		if s := b.Structs.Get(id.Index); s != nil {
			return &s.Decl
		}
	case KindClass:
		if c := b.Classes.Get(id.Index); c != nil {
			return &c.Decl
		}
	case KindException:
		if e := b.Exceptions.Get(id.Index); e != nil {
			return &e.Decl
		}
	case KindInterface:
		if i := b.Interfaces.Get(id.Index); i != nil {
			return &i.Decl
		}
	case KindEnum:
		if e := b.Enums.Get(id.Index); e != nil {
			return &e.Decl
		}
	case KindEnumerator:
		if e := b.Enumerators.Get(id.Index); e != nil {
			return &e.Decl
		}
	case KindTrait:
		if t := b.Traits.Get(id.Index); t != nil {
			return &t.Decl
		}
	case KindCustom:
		if c := b.Customs.Get(id.Index); c != nil {
			return &c.Decl
		}
	case KindAlias:
		if a := b.Aliases.Get(id.Index); a != nil {
			return &a.Decl
		}
	case KindOperation:
		if o := b.Operations.Get(id.Index); o != nil {
			return &o.Decl
		}
	case KindParameter:
		if p := b.Parameters.Get(id.Index); p != nil {
			return &p.Decl
		}
	case KindField:
		if f := b.Fields.Get(id.Index); f != nil {
			return &f.Decl
		}
	}
	return nil
}
