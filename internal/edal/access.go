// internal/edal/access.go
package edal

// Generic attribute accessor.
//
// Every operation runs the same checks in the same order and stops at the
// first failure: chain handle, head block canary, family support for the
// component type, index resolution across the chain (each visited block's
// canary included), instance canary, attribute lookup in the family layout.

func (c *Chain) GetBool(attr Attribute, ct ComponentType, idx int) (bool, error) {
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return false, err
	}
	return comp.Bool(attr)
}

func (c *Chain) SetBool(attr Attribute, ct ComponentType, idx int, v bool) error {
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return err
	}
	return comp.SetBool(attr, v)
}

func (c *Chain) GetU8(attr Attribute, ct ComponentType, idx int) (uint8, error) {
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return 0, err
	}
	return comp.U8(attr)
}

func (c *Chain) SetU8(attr Attribute, ct ComponentType, idx int, v uint8) error {
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return err
	}
	return comp.SetU8(attr, v)
}

func (c *Chain) GetU16(attr Attribute, ct ComponentType, idx int) (uint16, error) {
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return 0, err
	}
	return comp.U16(attr)
}

func (c *Chain) SetU16(attr Attribute, ct ComponentType, idx int, v uint16) error {
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return err
	}
	return comp.SetU16(attr, v)
}

func (c *Chain) GetU32(attr Attribute, ct ComponentType, idx int) (uint32, error) {
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return 0, err
	}
	return comp.U32(attr)
}

func (c *Chain) SetU32(attr Attribute, ct ComponentType, idx int, v uint32) error {
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return err
	}
	return comp.SetU32(attr, v)
}

func (c *Chain) GetU64(attr Attribute, ct ComponentType, idx int) (uint64, error) {
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return 0, err
	}
	return comp.U64(attr)
}

func (c *Chain) SetU64(attr Attribute, ct ComponentType, idx int, v uint64) error {
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return err
	}
	return comp.SetU64(attr, v)
}

// GetStr copies at most len(buf) bytes of a string attribute.
// ErrSizeMismatch reports a buf shorter than the field; buf is still filled.
func (c *Chain) GetStr(attr Attribute, ct ComponentType, idx int, buf []byte) (int, error) {
	if buf == nil {
		return 0, ErrNullReturn
	}
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return 0, err
	}
	return comp.Str(attr, buf)
}

// SetStr rejects values longer than the field with ErrSizeMismatch.
func (c *Chain) SetStr(attr Attribute, ct ComponentType, idx int, s string) error {
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return err
	}
	return comp.SetStr(attr, s)
}

func (c *Chain) GetBuffer(attr Attribute, ct ComponentType, idx int, buf []byte) (int, error) {
	if buf == nil {
		return 0, ErrNullReturn
	}
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return 0, err
	}
	return comp.Buffer(attr, buf)
}

func (c *Chain) SetBuffer(attr Attribute, ct ComponentType, idx int, b []byte) error {
	comp, err := c.SpecificComponent(ct, idx)
	if err != nil {
		return err
	}
	return comp.SetBuffer(attr, b)
}

// FieldSize is the declared capacity of a string or buffer attribute.
func (c *Chain) FieldSize(attr Attribute, ct ComponentType) (int, error) {
	if err := c.checkHead(); err != nil {
		return 0, err
	}
	l := c.family.Layout(ct)
	if l == nil {
		return 0, ErrTypeUnsupported
	}
	f, ok := l.fields[attr]
	if !ok {
		return 0, ErrAttributeNotFound
	}
	return f.size, nil
}
