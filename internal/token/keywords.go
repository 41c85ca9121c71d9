package token

var keywords = map[string]Kind{
	"module":     KwModule,
	"struct":     KwStruct,
	"exception":  KwException,
	"class":      KwClass,
	"interface":  KwInterface,
	"enum":       KwEnum,
	"trait":      KwTrait,
	"custom":     KwCustom,
	"type":       KwType,
	"Sequence":   KwSequence,
	"Dictionary": KwDictionary,
	"bool":       KwBool,
	"int8":       KwInt8,
	"uint8":      KwUInt8,
	"int16":      KwInt16,
	"uint16":     KwUInt16,
	"int32":      KwInt32,
	"uint32":     KwUInt32,
	"varint32":   KwVarInt32,
	"varuint32":  KwVarUInt32,
	"int64":      KwInt64,
	"uint64":     KwUInt64,
	"varint62":   KwVarInt62,
	"varuint62":  KwVarUInt62,
	"float32":    KwFloat32,
	"float64":    KwFloat64,
	"string":     KwString,
	"AnyClass":   KwAnyClass,
	"compact":    KwCompact,
	"idempotent": KwIdempotent,
	"encoding":   KwEncoding,
	"stream":     KwStream,
	"tag":        KwTag,
	"unchecked":  KwUnchecked,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
