package token

// NumType names the concrete numeric type a literal's suffix selects
// (spec §4.B). Width/signedness/family are packed into one small value type
// so the lexer, parser, and `types` package can all key off the same tag.
type NumType int

const (
	NumNone NumType = iota // no suffix: default to Signed64 / Float64

	Signed8
	Signed16
	Signed32
	Signed64
	Signed128

	Unsigned8
	Unsigned16
	Unsigned32
	Unsigned64
	Unsigned128

	Float16
	Float32
	Float64
	Float128

	Decimal32
	Decimal64
	Decimal128
)

var numTypeSuffixes = map[string]NumType{
	"s8": Signed8, "s16": Signed16, "s32": Signed32, "s64": Signed64, "s128": Signed128,
	"u8": Unsigned8, "u16": Unsigned16, "u32": Unsigned32, "u64": Unsigned64, "u128": Unsigned128,
	"f16": Float16, "f32": Float32, "f64": Float64, "f128": Float128,
	"d32": Decimal32, "d64": Decimal64, "d128": Decimal128,
}

// LookupNumSuffix resolves a literal suffix (e.g. "u32") to its NumType.
func LookupNumSuffix(suffix string) (NumType, bool) {
	t, ok := numTypeSuffixes[suffix]
	return t, ok
}

func (n NumType) IsSigned() bool {
	switch n {
	case Signed8, Signed16, Signed32, Signed64, Signed128:
		return true
	}
	return false
}

func (n NumType) IsUnsigned() bool {
	switch n {
	case Unsigned8, Unsigned16, Unsigned32, Unsigned64, Unsigned128:
		return true
	}
	return false
}

func (n NumType) IsFloat() bool {
	switch n {
	case Float16, Float32, Float64, Float128:
		return true
	}
	return false
}

func (n NumType) IsDecimal() bool {
	switch n {
	case Decimal32, Decimal64, Decimal128:
		return true
	}
	return false
}

func (n NumType) IsInteger() bool {
	return n.IsSigned() || n.IsUnsigned()
}

// BitWidth returns the operand width in bits for integer and float types.
func (n NumType) BitWidth() int {
	switch n {
	case Signed8, Unsigned8:
		return 8
	case Signed16, Unsigned16, Float16:
		return 16
	case Signed32, Unsigned32, Float32, Decimal32:
		return 32
	case Signed64, Unsigned64, Float64, Decimal64:
		return 64
	case Signed128, Unsigned128, Float128, Decimal128:
		return 128
	default:
		return 0
	}
}

func (n NumType) String() string {
	for suffix, t := range numTypeSuffixes {
		if t == n {
			return suffix
		}
	}
	return "<default>"
}

// MemUnit names a memory-size literal suffix (spec §4.B).
type MemUnit int

const (
	MemNone MemUnit = iota
	MemBytes
	MemKB
	MemMB
	MemGB
	MemTB
	MemPB
	MemKiB
	MemMiB
	MemGiB
	MemTiB
	MemPiB
)

var memUnitSuffixes = map[string]MemUnit{
	"b": MemBytes, "kb": MemKB, "mb": MemMB, "gb": MemGB, "tb": MemTB, "pb": MemPB,
	"kib": MemKiB, "mib": MemMiB, "gib": MemGiB, "tib": MemTiB, "pib": MemPiB,
}

func LookupMemUnit(suffix string) (MemUnit, bool) {
	u, ok := memUnitSuffixes[suffix]
	return u, ok
}

// Bytes returns the multiplier to convert a count in this unit to bytes.
func (u MemUnit) Bytes() int64 {
	const (
		kb = 1000
		mb = kb * 1000
		gb = mb * 1000
		tb = gb * 1000
		pb = tb * 1000
		kib = 1024
		mib = kib * 1024
		gib = mib * 1024
		tib = gib * 1024
		pib = tib * 1024
	)
	switch u {
	case MemBytes:
		return 1
	case MemKB:
		return kb
	case MemMB:
		return mb
	case MemGB:
		return gb
	case MemTB:
		return tb
	case MemPB:
		return pb
	case MemKiB:
		return kib
	case MemMiB:
		return mib
	case MemGiB:
		return gib
	case MemTiB:
		return tib
	case MemPiB:
		return pib
	default:
		return 0
	}
}

func (u MemUnit) String() string {
	for suffix, v := range memUnitSuffixes {
		if v == u {
			return suffix
		}
	}
	return "<none>"
}

// DurationUnit names a duration literal suffix (spec §4.B).
type DurationUnit int

const (
	DurNone DurationUnit = iota
	DurNanos
	DurMicros
	DurMillis
	DurSeconds
	DurMinutes
	DurHours
	DurDays
	DurWeeks
)

var durationSuffixes = map[string]DurationUnit{
	"ns": DurNanos, "us": DurMicros, "ms": DurMillis, "s": DurSeconds,
	"m": DurMinutes, "h": DurHours, "d": DurDays, "w": DurWeeks,
}

func LookupDurationUnit(suffix string) (DurationUnit, bool) {
	u, ok := durationSuffixes[suffix]
	return u, ok
}

// Nanos returns the multiplier to convert a count in this unit to nanoseconds.
func (u DurationUnit) Nanos() int64 {
	const (
		us = 1000
		ms = us * 1000
		s  = ms * 1000
		m  = s * 60
		h  = m * 60
		d  = h * 24
		w  = d * 7
	)
	switch u {
	case DurNanos:
		return 1
	case DurMicros:
		return us
	case DurMillis:
		return ms
	case DurSeconds:
		return s
	case DurMinutes:
		return m
	case DurHours:
		return h
	case DurDays:
		return d
	case DurWeeks:
		return w
	default:
		return 0
	}
}

// TextEncoding names the code-unit width of a text or letter literal
// (spec §4.B: default/t8/t16/t32, raw r"...", formatted f"...{expr}...").
type TextEncoding int

const (
	EncodingDefault TextEncoding = iota // UTF-32 code units ("letters")
	Encoding8
	Encoding16
	Encoding32
	EncodingRaw
	EncodingFormat
)
