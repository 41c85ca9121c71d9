package ast

// Visitor is a generic pre-order traversal over the AST. Supply observers
// for the node kinds you care about; unset fields are skipped. Parents are
// visited before their children, and the walk follows insertion order, so
// two runs over the same builder see nodes in the same sequence.
//
// Unpatched named type references are skipped unless VisitUnpatched is set;
// validators that run after patching can therefore dereference Target
// without checking.
type Visitor struct {
	File       func(FileID, *File)
	Module     func(ModuleID, *Module)
	Struct     func(StructID, *Struct)
	Class      func(ClassID, *Class)
	Exception  func(ExceptionID, *Exception)
	Interface  func(InterfaceID, *Interface)
	Enum       func(EnumID, *Enum)
	Enumerator func(EnumeratorID, *Enumerator)
	Trait      func(TraitID, *Trait)
	Custom     func(CustomID, *Custom)
	Alias      func(AliasID, *Alias)
	Operation  func(OperationID, *Operation)
	Parameter  func(ParameterID, *Parameter)
	Field      func(FieldID, *Field)
	TypeRef    func(TypeRefID, *TypeRef)

	VisitUnpatched bool
}

// Walk traverses every file of the builder in compilation order.
func (v *Visitor) Walk(b *Builder) {
	for i, file := range b.Files.Slice() {
		id := FileID(i + 1) //nolint:gosec // arena indices are 1-based
		if v.File != nil {
			v.File(id, b.Files.Get(uint32(id)))
		}
		for _, def := range file.Defs {
			v.walkDef(b, def)
		}
	}
}

func (v *Visitor) walkDef(b *Builder, id DefID) {
	switch id.Kind {
	case KindModule:
		m := b.Modules.Get(id.Index)
		if m == nil {
			return
		}
		if v.Module != nil {
			v.Module(ModuleID(id.Index), m)
		}
		for _, child := range m.Defs {
			v.walkDef(b, child)
		}
	case KindStruct:
		s := b.Structs.Get(id.Index)
		if s == nil {
			return
		}
		if v.Struct != nil {
			v.Struct(StructID(id.Index), s)
		}
		v.walkFields(b, s.Fields)
	case KindClass:
		c := b.Classes.Get(id.Index)
		if c == nil {
			return
		}
		if v.Class != nil {
			v.Class(ClassID(id.Index), c)
		}
		v.walkTypeRefs(b, c.Bases)
		v.walkFields(b, c.Fields)
	case KindException:
		e := b.Exceptions.Get(id.Index)
		if e == nil {
			return
		}
		if v.Exception != nil {
			v.Exception(ExceptionID(id.Index), e)
		}
		v.walkTypeRefs(b, e.Bases)
		v.walkFields(b, e.Fields)
	case KindInterface:
		i := b.Interfaces.Get(id.Index)
		if i == nil {
			return
		}
		if v.Interface != nil {
			v.Interface(InterfaceID(id.Index), i)
		}
		v.walkTypeRefs(b, i.Bases)
		for _, opID := range i.Operations {
			op := b.Operations.Get(uint32(opID))
			if op == nil {
				continue
			}
			if v.Operation != nil {
				v.Operation(opID, op)
			}
			v.walkParams(b, op.Params)
			v.walkParams(b, op.Returns)
		}
	case KindEnum:
		e := b.Enums.Get(id.Index)
		if e == nil {
			return
		}
		if v.Enum != nil {
			v.Enum(EnumID(id.Index), e)
		}
		if e.Underlying.IsValid() {
			v.walkTypeRef(b, e.Underlying)
		}
		for _, enID := range e.Enumerators {
			en := b.Enumerators.Get(uint32(enID))
			if en == nil {
				continue
			}
			if v.Enumerator != nil {
				v.Enumerator(enID, en)
			}
			v.walkFields(b, en.Fields)
		}
	case KindTrait:
		t := b.Traits.Get(id.Index)
		if t == nil {
			return
		}
		if v.Trait != nil {
			v.Trait(TraitID(id.Index), t)
		}
	case KindCustom:
		c := b.Customs.Get(id.Index)
		if c == nil {
			return
		}
		if v.Custom != nil {
			v.Custom(CustomID(id.Index), c)
		}
	case KindAlias:
		a := b.Aliases.Get(id.Index)
		if a == nil {
			return
		}
		if v.Alias != nil {
			v.Alias(AliasID(id.Index), a)
		}
		v.walkTypeRef(b, a.Underlying)
	}
}

func (v *Visitor) walkFields(b *Builder, ids []FieldID) {
	for _, fieldID := range ids {
		f := b.Fields.Get(uint32(fieldID))
		if f == nil {
			continue
		}
		if v.Field != nil {
			v.Field(fieldID, f)
		}
		v.walkTypeRef(b, f.Type)
	}
}

func (v *Visitor) walkParams(b *Builder, ids []ParameterID) {
	for _, paramID := range ids {
		p := b.Parameters.Get(uint32(paramID))
		if p == nil {
			continue
		}
		if v.Parameter != nil {
			v.Parameter(paramID, p)
		}
		v.walkTypeRef(b, p.Type)
	}
}

func (v *Visitor) walkTypeRefs(b *Builder, ids []TypeRefID) {
	for _, id := range ids {
		v.walkTypeRef(b, id)
	}
}

func (v *Visitor) walkTypeRef(b *Builder, id TypeRefID) {
	ref := b.TypeRefs.Get(uint32(id))
	if ref == nil {
		return
	}
	if ref.NeedsPatching() && !v.VisitUnpatched {
		return
	}
	if v.TypeRef != nil {
		v.TypeRef(id, ref)
	}
	switch ref.Kind {
	case TypeRefSequence:
		v.walkTypeRef(b, ref.Elem)
	case TypeRefDictionary:
		v.walkTypeRef(b, ref.Key)
		v.walkTypeRef(b, ref.Value)
	}
}
