// internal/edal/component.go
package edal

import (
	"encoding/binary"
	"log/slog"
)

// ------------------------------------------------------------
// GENERIC COMPONENT HEADER
// ------------------------------------------------------------
//
// bytes 0-3   instance canary
// bytes 4-5   flag bits
// byte  6     element index
// byte  7     sub-enclosure id
// byte  8     container index
// byte  9     side id
// byte  10    additional status
// byte  11    location
// bytes 12-15 reserved

const (
	hdrFlags          = 4
	hdrElemIndex      = 6
	hdrSubEnclID      = 7
	hdrContainerIndex = 8
	hdrSideID         = 9
	hdrAddlStatus     = 10
	hdrLocation       = 11
)

const (
	flagInserted uint16 = 1 << iota
	flagInsertedPriorConfig
	flagFaulted
	flagPoweredOff
	flagFaultLedOn
	flagMarked
	flagTurnOnFaultLed
	flagMarkComponent
	flagStateChange
	flagWriteData
	flagWriteDataSent
	flagEmcWriteData
	flagEmcWriteDataSent
	flagStatusValid
	flagIsLocal
)

var headerFlags = map[Attribute]uint16{
	AttrInserted:                 flagInserted,
	AttrInsertedPriorConfig:      flagInsertedPriorConfig,
	AttrFaulted:                  flagFaulted,
	AttrPoweredOff:               flagPoweredOff,
	AttrFaultLedOn:               flagFaultLedOn,
	AttrMarked:                   flagMarked,
	AttrTurnOnFaultLed:           flagTurnOnFaultLed,
	AttrMarkComponent:            flagMarkComponent,
	AttrStateChange:              flagStateChange,
	AttrWriteData:                flagWriteData,
	AttrWriteDataSent:            flagWriteDataSent,
	AttrEmcEnclCtrlWriteData:     flagEmcWriteData,
	AttrEmcEnclCtrlWriteDataSent: flagEmcWriteDataSent,
	AttrStatusValid:              flagStatusValid,
	AttrIsLocal:                  flagIsLocal,
}

var headerBytes = map[Attribute]int{
	AttrElemIndex:        hdrElemIndex,
	AttrSubEnclID:        hdrSubEnclID,
	AttrContainerIndex:   hdrContainerIndex,
	AttrSideID:           hdrSideID,
	AttrAdditionalStatus: hdrAddlStatus,
	AttrLocation:         hdrLocation,
}

// ------------------------------------------------------------
// COMPONENT HANDLE
// ------------------------------------------------------------

// Component is a reference to one component record that has passed
// canary validation. The zero value is not usable; handles come from
// the chain or from AttachComponent.
type Component struct {
	rec    []byte
	ct     ComponentType
	layout *Layout
	log    *slog.Logger
}

// AttachComponent validates a raw record obtained outside the chain
// (debug tools, decoded images) and returns a handle for direct access.
func AttachComponent(rec []byte, enclosure EnclosureType, ct ComponentType) (Component, error) {
	fam, err := FamilyFor(enclosure)
	if err != nil {
		return Component{}, err
	}
	l := fam.Layout(ct)
	if l == nil {
		return Component{}, ErrTypeUnsupported
	}
	if rec == nil {
		return Component{}, ErrNullComponentData
	}
	if len(rec) < l.Size() {
		return Component{}, ErrSizeMismatch
	}
	return validateComponent(rec[:l.Size()], ct, l, slog.Default())
}

// Type is the component type of the record.
func (c Component) Type() ComponentType { return c.ct }

// Layout is the family layout the record is read through.
func (c Component) Layout() *Layout { return c.layout }

// Raw returns a copy of the record bytes.
func (c Component) Raw() []byte {
	out := make([]byte, len(c.rec))
	copy(out, c.rec)
	return out
}

func (c Component) check() error {
	if c.rec == nil {
		return ErrNullComponentData
	}
	if binary.LittleEndian.Uint32(c.rec[0:4]) != ComponentCanary {
		c.log.Error("edal: invalid component canary",
			"type", c.ct.String(),
			"canary", binary.LittleEndian.Uint32(c.rec[0:4]),
		)
		return ErrInvalidComponentCanary
	}
	return nil
}

func (c Component) flags() uint16 {
	return binary.LittleEndian.Uint16(c.rec[hdrFlags:])
}

func (c Component) flag(bit uint16) bool {
	return c.flags()&bit != 0
}

func (c Component) setFlag(bit uint16, v bool) {
	f := c.flags()
	if v {
		f |= bit
	} else {
		f &^= bit
	}
	binary.LittleEndian.PutUint16(c.rec[hdrFlags:], f)
}

// ---- bool ----

// Bool reads a boolean attribute.
func (c Component) Bool(attr Attribute) (bool, error) {
	if err := c.check(); err != nil {
		return false, err
	}
	if bit, ok := headerFlags[attr]; ok {
		return c.flag(bit), nil
	}
	f, ok := c.layout.lookup(attr, KindBool)
	if !ok {
		return false, ErrAttributeNotFound
	}
	return c.rec[f.off] != 0, nil
}

// SetBool writes a boolean attribute and applies its tracking side effects.
func (c Component) SetBool(attr Attribute, v bool) error {
	if err := c.check(); err != nil {
		return err
	}
	if bit, ok := headerFlags[attr]; ok {
		c.setHeaderFlag(attr, bit, v)
		return nil
	}
	f, ok := c.layout.lookup(attr, KindBool)
	if !ok {
		return ErrAttributeNotFound
	}
	var b uint64
	if v {
		b = 1
	}
	c.store(f, b)
	return nil
}

func (c Component) setHeaderFlag(attr Attribute, bit uint16, v bool) {
	switch attr {
	case AttrInserted, AttrFaulted, AttrPoweredOff, AttrFaultLedOn, AttrMarked, AttrStatusValid:
		if c.flag(bit) != v {
			c.setFlag(bit, v)
			c.setFlag(flagStateChange, true)
		}

	case AttrTurnOnFaultLed:
		// compare against both the reported and the requested state
		if v != c.flag(flagFaultLedOn) || v != c.flag(flagTurnOnFaultLed) {
			c.setFlag(bit, v)
			c.requestWrite()
		}

	case AttrMarkComponent:
		if v != c.flag(flagMarked) {
			c.setFlag(bit, v)
			c.requestWrite()
		}

	case AttrWriteData:
		c.setFlag(bit, v)
		c.setFlag(flagWriteDataSent, false)

	case AttrEmcEnclCtrlWriteData:
		c.setFlag(bit, v)
		c.setFlag(flagEmcWriteDataSent, false)

	default:
		c.setFlag(bit, v)
	}
}

func (c Component) requestWrite() {
	c.setFlag(flagWriteData, true)
	c.setFlag(flagWriteDataSent, false)
}

// ---- integers ----

func (c Component) getUint(attr Attribute, k Kind) (uint64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	if k == KindU8 {
		if off, ok := headerBytes[attr]; ok {
			return uint64(c.rec[off]), nil
		}
	}
	f, ok := c.layout.lookup(attr, k)
	if !ok {
		return 0, ErrAttributeNotFound
	}
	return getUint(c.rec[f.off : f.off+f.size]), nil
}

func (c Component) setUint(attr Attribute, k Kind, v uint64) error {
	if err := c.check(); err != nil {
		return err
	}
	if k == KindU8 {
		if off, ok := headerBytes[attr]; ok {
			if attr == AttrAdditionalStatus && c.rec[off] != uint8(v) {
				c.setFlag(flagStateChange, true)
			}
			c.rec[off] = uint8(v)
			return nil
		}
	}
	f, ok := c.layout.lookup(attr, k)
	if !ok {
		return ErrAttributeNotFound
	}
	c.store(f, v)
	return nil
}

func (c Component) store(f field, v uint64) {
	dst := c.rec[f.off : f.off+f.size]
	if getUint(dst) == v {
		return
	}
	putUint(dst, v)
	switch f.effect {
	case effectTracked:
		c.setFlag(flagStateChange, true)
	case effectControl:
		c.requestWrite()
	}
}

func (c Component) U8(attr Attribute) (uint8, error) {
	v, err := c.getUint(attr, KindU8)
	return uint8(v), err
}

func (c Component) SetU8(attr Attribute, v uint8) error {
	return c.setUint(attr, KindU8, uint64(v))
}

func (c Component) U16(attr Attribute) (uint16, error) {
	v, err := c.getUint(attr, KindU16)
	return uint16(v), err
}

func (c Component) SetU16(attr Attribute, v uint16) error {
	return c.setUint(attr, KindU16, uint64(v))
}

func (c Component) U32(attr Attribute) (uint32, error) {
	v, err := c.getUint(attr, KindU32)
	return uint32(v), err
}

func (c Component) SetU32(attr Attribute, v uint32) error {
	return c.setUint(attr, KindU32, uint64(v))
}

func (c Component) U64(attr Attribute) (uint64, error) {
	return c.getUint(attr, KindU64)
}

func (c Component) SetU64(attr Attribute, v uint64) error {
	return c.setUint(attr, KindU64, v)
}

// ---- string / buffer ----

// Str copies a fixed-length string attribute into buf and returns the
// number of bytes copied. A buf smaller than the field is filled and
// ErrSizeMismatch is returned.
func (c Component) Str(attr Attribute, buf []byte) (int, error) {
	return c.getBytes(attr, KindStr, buf)
}

// SetStr writes a string attribute, zero-padding the rest of the field.
func (c Component) SetStr(attr Attribute, s string) error {
	return c.setBytes(attr, KindStr, []byte(s))
}

// Buffer is the raw-buffer form of Str.
func (c Component) Buffer(attr Attribute, buf []byte) (int, error) {
	return c.getBytes(attr, KindBuffer, buf)
}

func (c Component) SetBuffer(attr Attribute, b []byte) error {
	return c.setBytes(attr, KindBuffer, b)
}

func (c Component) getBytes(attr Attribute, k Kind, buf []byte) (int, error) {
	if buf == nil {
		return 0, ErrNullReturn
	}
	if err := c.check(); err != nil {
		return 0, err
	}
	f, ok := c.layout.lookup(attr, k)
	if !ok {
		return 0, ErrAttributeNotFound
	}
	n := copy(buf, c.rec[f.off:f.off+f.size])
	if len(buf) < f.size {
		return n, ErrSizeMismatch
	}
	return n, nil
}

func (c Component) setBytes(attr Attribute, k Kind, b []byte) error {
	if b == nil {
		return ErrNullReturn
	}
	if err := c.check(); err != nil {
		return err
	}
	f, ok := c.layout.lookup(attr, k)
	if !ok {
		return ErrAttributeNotFound
	}
	if len(b) > f.size {
		return ErrSizeMismatch
	}
	dst := c.rec[f.off : f.off+f.size]
	copy(dst, b)
	clear(dst[len(b):])
	return nil
}

// ---- little-endian helpers ----

func getUint(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func putUint(b []byte, v uint64) {
	switch len(b) {
	case 1:
		b[0] = uint8(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(b, v)
	}
}

func putU32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}
