// internal/edal/layout.go
package edal

// Kind is the value kind of an attribute field.
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindU8
	KindU16
	KindU32
	KindU64
	KindStr
	KindBuffer
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindStr:
		return "str"
	case KindBuffer:
		return "buffer"
	}
	return "unknown"
}

// effect is what a changed value does to the record's tracking flags.
type effect uint8

const (
	effectTracked effect = iota // raises StateChange
	effectQuiet                 // no side effect
	effectControl               // raises WriteData, clears WriteDataSent
)

type field struct {
	attr   Attribute
	kind   Kind
	off    int // relative to the start of the record
	size   int
	effect effect
	def    uint64
}

// Layout is the sub-record schema of one component type in one family.
// Offsets are fixed once the layout is built.
type Layout struct {
	size   int
	order  []Attribute
	fields map[Attribute]field
}

// Size is the full record size, header included.
func (l *Layout) Size() int {
	return ComponentHeaderSize + l.size
}

// Attributes lists the sub-record attributes in layout order.
func (l *Layout) Attributes() []Attribute {
	out := make([]Attribute, len(l.order))
	copy(out, l.order)
	return out
}

// KindOf reports the kind of an attribute, header attributes included.
func (l *Layout) KindOf(attr Attribute) (Kind, bool) {
	if _, ok := headerFlags[attr]; ok {
		return KindBool, true
	}
	if _, ok := headerBytes[attr]; ok {
		return KindU8, true
	}
	f, ok := l.fields[attr]
	return f.kind, ok
}

func (l *Layout) lookup(attr Attribute, kind Kind) (field, bool) {
	f, ok := l.fields[attr]
	if !ok || f.kind != kind {
		return field{}, false
	}
	return f, true
}

// ---- layout construction ----

func newLayout(specs ...field) *Layout {
	l := &Layout{fields: make(map[Attribute]field, len(specs))}
	off := ComponentHeaderSize
	for _, f := range specs {
		f.off = off
		off += f.size
		l.fields[f.attr] = f
		l.order = append(l.order, f.attr)
	}
	l.size = off - ComponentHeaderSize
	return l
}

func kindSize(k Kind) int {
	switch k {
	case KindU16:
		return 2
	case KindU32:
		return 4
	case KindU64:
		return 8
	}
	return 1
}

func tracked(attr Attribute, k Kind) field {
	return field{attr: attr, kind: k, size: kindSize(k), effect: effectTracked}
}

func quiet(attr Attribute, k Kind) field {
	return field{attr: attr, kind: k, size: kindSize(k), effect: effectQuiet}
}

func control(attr Attribute, k Kind) field {
	return field{attr: attr, kind: k, size: kindSize(k), effect: effectControl}
}

func str(attr Attribute, n int) field {
	return field{attr: attr, kind: KindStr, size: n, effect: effectQuiet}
}

func buffer(attr Attribute, n int) field {
	return field{attr: attr, kind: KindBuffer, size: n, effect: effectQuiet}
}

func (f field) withDefault(v uint64) field {
	f.def = v
	return f
}

// initRecord stamps a fresh record: canary, header defaults, field defaults.
func (l *Layout) initRecord(rec []byte) {
	clear(rec)
	putU32(rec[0:4], ComponentCanary)
	rec[hdrContainerIndex] = ContainerSelfContained
	for _, a := range l.order {
		f := l.fields[a]
		if f.def != 0 {
			putUint(rec[f.off:f.off+f.size], f.def)
		}
	}
}
