package ast

// Primitive enumerates the built-in Slice types.
type Primitive uint8

const (
	PrimBool Primitive = iota
	PrimInt8
	PrimUInt8
	PrimInt16
	PrimUInt16
	PrimInt32
	PrimUInt32
	PrimVarInt32
	PrimVarUInt32
	PrimInt64
	PrimUInt64
	PrimVarInt62
	PrimVarUInt62
	PrimFloat32
	PrimFloat64
	PrimString
	PrimAnyClass
)

func (p Primitive) String() string {
	switch p {
	case PrimBool:
		return "bool"
	case PrimInt8:
		return "int8"
	case PrimUInt8:
		return "uint8"
	case PrimInt16:
		return "int16"
	case PrimUInt16:
		return "uint16"
	case PrimInt32:
		return "int32"
	case PrimUInt32:
		return "uint32"
	case PrimVarInt32:
		return "varint32"
	case PrimVarUInt32:
		return "varuint32"
	case PrimInt64:
		return "int64"
	case PrimUInt64:
		return "uint64"
	case PrimVarInt62:
		return "varint62"
	case PrimVarUInt62:
		return "varuint62"
	case PrimFloat32:
		return "float32"
	case PrimFloat64:
		return "float64"
	case PrimString:
		return "string"
	case PrimAnyClass:
		return "AnyClass"
	}
	return "unknown"
}

func (p Primitive) IsNumeric() bool {
	return p >= PrimInt8 && p <= PrimFloat64
}

func (p Primitive) IsIntegral() bool {
	return p >= PrimInt8 && p <= PrimVarUInt62
}

func (p Primitive) IsUnsigned() bool {
	switch p {
	case PrimUInt8, PrimUInt16, PrimUInt32, PrimVarUInt32, PrimUInt64, PrimVarUInt62:
		return true
	default:
		return false
	}
}

const (
	varInt62Min  = -2_305_843_009_213_693_952 // -2^61
	varInt62Max  = 2_305_843_009_213_693_951  // 2^61 - 1
	varUInt62Max = 4_611_686_018_427_387_903  // 2^62 - 1
)

// Bounds returns the inclusive numeric range of an integral primitive.
// The maximum is returned as uint64 so uint64's own range fits.
func (p Primitive) Bounds() (minVal int64, maxVal uint64, ok bool) {
	switch p {
	case PrimInt8:
		return -128, 127, true
	case PrimUInt8:
		return 0, 255, true
	case PrimInt16:
		return -32768, 32767, true
	case PrimUInt16:
		return 0, 65535, true
	case PrimInt32, PrimVarInt32:
		return -2147483648, 2147483647, true
	case PrimUInt32, PrimVarUInt32:
		return 0, 4294967295, true
	case PrimInt64:
		return -9223372036854775808, 9223372036854775807, true
	case PrimUInt64:
		return 0, 18446744073709551615, true
	case PrimVarInt62:
		return varInt62Min, varInt62Max, true
	case PrimVarUInt62:
		return 0, varUInt62Max, true
	default:
		return 0, 0, false
	}
}

// Encoding selects a Slice wire format.
type Encoding uint8

const (
	EncodingSlice1 Encoding = 1
	EncodingSlice2 Encoding = 2
)

func (e Encoding) String() string {
	switch e {
	case EncodingSlice1:
		return "Slice1"
	case EncodingSlice2:
		return "Slice2"
	}
	return "unknown"
}

// SupportedIn reports whether the primitive is legal under the encoding.
// Slice1 knows neither int8, nor the unsigned fixed-size types (except
// uint8), nor the variable-size integers; AnyClass exists only in Slice1.
func (p Primitive) SupportedIn(e Encoding) bool {
	switch e {
	case EncodingSlice1:
		switch p {
		case PrimBool, PrimUInt8, PrimInt16, PrimInt32, PrimInt64,
			PrimFloat32, PrimFloat64, PrimString, PrimAnyClass:
			return true
		default:
			return false
		}
	case EncodingSlice2:
		return p != PrimAnyClass
	}
	return false
}
