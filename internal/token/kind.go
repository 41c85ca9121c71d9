package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal token.
	IntLit
	// StringLit represents a string literal token.
	StringLit

	// Definition keywords

	KwModule    // module
	KwStruct    // struct
	KwException // exception
	KwClass     // class
	KwInterface // interface
	KwEnum      // enum
	KwTrait     // trait
	KwCustom    // custom
	KwType      // type

	// Collection keywords

	KwSequence   // Sequence
	KwDictionary // Dictionary

	// Primitive type keywords

	KwBool      // bool
	KwInt8      // int8
	KwUInt8     // uint8
	KwInt16     // int16
	KwUInt16    // uint16
	KwInt32     // int32
	KwUInt32    // uint32
	KwVarInt32  // varint32
	KwVarUInt32 // varuint32
	KwInt64     // int64
	KwUInt64    // uint64
	KwVarInt62  // varint62
	KwVarUInt62 // varuint62
	KwFloat32   // float32
	KwFloat64   // float64
	KwString    // string
	KwAnyClass  // AnyClass

	// Modifier keywords

	KwCompact    // compact
	KwIdempotent // idempotent
	KwEncoding   // encoding
	KwStream     // stream
	KwTag        // tag
	KwUnchecked  // unchecked

	// Brackets

	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LLBracket // [[
	RRBracket // ]]
	LBrace    // {
	RBrace    // }
	LAngle    // <
	RAngle    // >

	// Symbols

	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Equals     // =
	Question   // ?
	Arrow      // ->
	Minus      // -
)

var kindNames = map[Kind]string{
	Invalid:      "invalid",
	EOF:          "end of file",
	Ident:        "identifier",
	IntLit:       "integer literal",
	StringLit:    "string literal",
	KwModule:     "module",
	KwStruct:     "struct",
	KwException:  "exception",
	KwClass:      "class",
	KwInterface:  "interface",
	KwEnum:       "enum",
	KwTrait:      "trait",
	KwCustom:     "custom",
	KwType:       "type",
	KwSequence:   "Sequence",
	KwDictionary: "Dictionary",
	KwBool:       "bool",
	KwInt8:       "int8",
	KwUInt8:      "uint8",
	KwInt16:      "int16",
	KwUInt16:     "uint16",
	KwInt32:      "int32",
	KwUInt32:     "uint32",
	KwVarInt32:   "varint32",
	KwVarUInt32:  "varuint32",
	KwInt64:      "int64",
	KwUInt64:     "uint64",
	KwVarInt62:   "varint62",
	KwVarUInt62:  "varuint62",
	KwFloat32:    "float32",
	KwFloat64:    "float64",
	KwString:     "string",
	KwAnyClass:   "AnyClass",
	KwCompact:    "compact",
	KwIdempotent: "idempotent",
	KwEncoding:   "encoding",
	KwStream:     "stream",
	KwTag:        "tag",
	KwUnchecked:  "unchecked",
	LParen:       "(",
	RParen:       ")",
	LBracket:     "[",
	RBracket:     "]",
	LLBracket:    "[[",
	RRBracket:    "]]",
	LBrace:       "{",
	RBrace:       "}",
	LAngle:       "<",
	RAngle:       ">",
	Comma:        ",",
	Semicolon:    ";",
	Colon:        ":",
	ColonColon:   "::",
	Equals:       "=",
	Question:     "?",
	Arrow:        "->",
	Minus:        "-",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
