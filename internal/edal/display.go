// internal/edal/display.go
package edal

// DisplayType selects one of the enclosure's front displays.
type DisplayType uint8

const (
	DisplayBus DisplayType = iota
	DisplayEnclosure
)

// Display instance indices.
const (
	DisplayBus0  = 0
	DisplayBus1  = 1
	DisplayEncl0 = 2
)

// DisplayModeChar puts a display in character mode.
const DisplayModeChar uint8 = 0x01

// EncodeDisplayValue splits 0..99 into two ASCII digits.
func EncodeDisplayValue(v int) (byte, byte, error) {
	if v < 0 || v > 99 {
		return 0, 0, ErrGeneric
	}
	return byte('0' + v/10), byte('0' + v%10), nil
}

// DecodeDisplayValue joins two ASCII digits into 0..99.
func DecodeDisplayValue(c0, c1 byte) (int, error) {
	if c0 < '0' || c0 > '9' || c1 < '0' || c1 > '9' {
		return 0, ErrGeneric
	}
	return int(c0-'0')*10 + int(c1-'0'), nil
}

// SetDisplayValue shows a number on a display. flash marks the display.
// The enclosure display has a single character and shows the low digit.
func (c *Chain) SetDisplayValue(dt DisplayType, v int, flash bool) error {
	c0, c1, err := EncodeDisplayValue(v)
	if err != nil {
		return err
	}
	return c.SetDisplayChars(dt, c0, c1, flash)
}

// SetDisplayChars writes raw characters to a display.
func (c *Chain) SetDisplayChars(dt DisplayType, c0, c1 byte, flash bool) error {
	switch dt {
	case DisplayBus:
		if err := c.setDisplayChar(DisplayBus0, c0, flash); err != nil {
			return err
		}
		return c.setDisplayChar(DisplayBus1, c1, flash)
	case DisplayEnclosure:
		return c.setDisplayChar(DisplayEncl0, c1, flash)
	}
	return ErrAttributeNotFound
}

func (c *Chain) setDisplayChar(idx int, ch byte, flash bool) error {
	comp, err := c.SpecificComponent(TypeDisplay, idx)
	if err != nil {
		return err
	}
	if err := comp.SetU8(AttrDisplayChar, ch); err != nil {
		return err
	}
	if err := comp.SetU8(AttrDisplayMode, DisplayModeChar); err != nil {
		return err
	}
	return comp.SetBool(AttrMarkComponent, flash)
}

// DisplayValue reads back the number a display reports.
func (c *Chain) DisplayValue(dt DisplayType) (int, error) {
	switch dt {
	case DisplayBus:
		c0, err := c.GetU8(AttrDisplayCharStatus, TypeDisplay, DisplayBus0)
		if err != nil {
			return 0, err
		}
		c1, err := c.GetU8(AttrDisplayCharStatus, TypeDisplay, DisplayBus1)
		if err != nil {
			return 0, err
		}
		return DecodeDisplayValue(c0, c1)
	case DisplayEnclosure:
		c1, err := c.GetU8(AttrDisplayCharStatus, TypeDisplay, DisplayEncl0)
		if err != nil {
			return 0, err
		}
		return DecodeDisplayValue('0', c1)
	}
	return 0, ErrAttributeNotFound
}
