package diag

// Code is the stable identifier of a diagnostic kind. Codes are part of the
// tool's output contract and never change spelling once released.
type Code string

const (
	// Syntax is reported when the lexer or a parser recovery point is reached.
	Syntax Code = "Syntax"
	// DoesNotExist is reported for an unresolved identifier.
	DoesNotExist Code = "DoesNotExist"
	// Redefinition is reported for a duplicate definition in a scope.
	Redefinition Code = "Redefinition"
	// InfiniteType is reported for self-referential non-optional composition.
	InfiniteType Code = "InfiniteType"
	// InvalidTag is reported for a tag out of range, duplicated, or in a
	// disallowed context.
	InvalidTag Code = "InvalidTag"
	// InvalidEnum is reported for an enum structural violation.
	InvalidEnum Code = "InvalidEnum"
	// InvalidDictionaryKey is reported for an illegal dictionary key type.
	InvalidDictionaryKey Code = "InvalidDictionaryKey"
	// IncompatibleEncoding is reported for a type not permitted in the
	// declared encoding.
	IncompatibleEncoding Code = "IncompatibleEncoding"
	// IllegalInheritance is reported for a wrong base kind or an
	// inheritance cycle.
	IllegalInheritance Code = "IllegalInheritance"
	// InvalidAttribute is reported when a known attribute's required
	// argument is missing or malformed.
	InvalidAttribute Code = "InvalidAttribute"
	// StyleWarning is reported for identifier naming convention mismatches.
	StyleWarning Code = "StyleWarning"
	// DeprecatedUsage is reported at use sites of deprecated definitions.
	DeprecatedUsage Code = "DeprecatedUsage"
	// IO is reported when a source or reference file cannot be loaded.
	IO Code = "IO"
	// Unknown is the catch-all for validator-specific checks.
	Unknown Code = "Unknown"
)

func (c Code) String() string {
	if c == "" {
		return string(Unknown)
	}
	return string(c)
}

// KnownCodes lists every stable code, for allow-list validation.
func KnownCodes() []Code {
	return []Code{
		Syntax, DoesNotExist, Redefinition, InfiniteType, InvalidTag,
		InvalidEnum, InvalidDictionaryKey, IncompatibleEncoding,
		IllegalInheritance, InvalidAttribute, StyleWarning,
		DeprecatedUsage, IO, Unknown,
	}
}
