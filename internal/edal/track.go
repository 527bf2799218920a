// internal/edal/track.go
package edal

import "errors"

// ------------------------------------------------------------
// CHAIN-WIDE COUNTERS
// ------------------------------------------------------------

// OverallStateChangeCount reads the head block counter.
func (c *Chain) OverallStateChangeCount() (uint32, error) {
	if err := c.checkHead(); err != nil {
		return 0, err
	}
	return c.blocks[0].stateChangeCount, nil
}

// IncrementOverallStateChange bumps the counter of every block.
func (c *Chain) IncrementOverallStateChange() error {
	if err := c.checkHead(); err != nil {
		return err
	}
	for _, b := range c.blocks {
		if err := checkBlock(b, c.log); err != nil {
			return err
		}
		b.stateChangeCount++
	}
	return nil
}

// GenerationCount lives in the head block only.
func (c *Chain) GenerationCount() (uint32, error) {
	if err := c.checkHead(); err != nil {
		return 0, err
	}
	return c.blocks[0].generation, nil
}

func (c *Chain) SetGenerationCount(v uint32) error {
	if err := c.checkHead(); err != nil {
		return err
	}
	c.blocks[0].generation = v
	return nil
}

// IncrementGenerationCount marks a structural commit.
func (c *Chain) IncrementGenerationCount() error {
	if err := c.checkHead(); err != nil {
		return err
	}
	c.blocks[0].generation++
	return nil
}

// Locale is which side/SP this copy of the chain represents.
func (c *Chain) Locale() (uint8, error) {
	if err := c.checkHead(); err != nil {
		return 0, err
	}
	return c.blocks[0].locale, nil
}

// SetLocale stamps every block.
func (c *Chain) SetLocale(v uint8) error {
	if err := c.checkHead(); err != nil {
		return err
	}
	for _, b := range c.blocks {
		if err := checkBlock(b, c.log); err != nil {
			return err
		}
		b.locale = v
	}
	return nil
}

// ------------------------------------------------------------
// PER-TYPE AGGREGATES
// ------------------------------------------------------------

// ComponentOverallStatus reads the first descriptor of ct in chain order.
func (c *Chain) ComponentOverallStatus(ct ComponentType) (OverallStatus, error) {
	d, err := c.firstDescriptor(ct)
	if err != nil {
		return OverallOK, err
	}
	return d.Status, nil
}

// SetComponentOverallStatus writes every descriptor of ct.
func (c *Chain) SetComponentOverallStatus(ct ComponentType, s OverallStatus) error {
	return c.eachDescriptor(ct, func(d *Descriptor) { d.Status = s })
}

func (c *Chain) ComponentOverallStateChangeCount(ct ComponentType) (uint32, error) {
	d, err := c.firstDescriptor(ct)
	if err != nil {
		return 0, err
	}
	return d.StateChangeCount, nil
}

// IncrementComponentOverallStateChange bumps every descriptor of ct.
func (c *Chain) IncrementComponentOverallStateChange(ct ComponentType) error {
	return c.eachDescriptor(ct, func(d *Descriptor) { d.StateChangeCount++ })
}

func (c *Chain) firstDescriptor(ct ComponentType) (*Descriptor, error) {
	if err := c.checkHead(); err != nil {
		return nil, err
	}
	for _, b := range c.blocks {
		if err := checkBlock(b, c.log); err != nil {
			return nil, err
		}
		if d := b.descriptor(ct); d != nil {
			return d, nil
		}
	}
	return nil, ErrComponentNotFound
}

func (c *Chain) eachDescriptor(ct ComponentType, fn func(*Descriptor)) error {
	if err := c.checkHead(); err != nil {
		return err
	}
	for _, b := range c.blocks {
		if err := checkBlock(b, c.log); err != nil {
			return err
		}
		if d := b.descriptor(ct); d != nil {
			fn(d)
		}
	}
	return nil
}

// ------------------------------------------------------------
// SWEEPS
// ------------------------------------------------------------

// ClearStateChanges clears the per-instance state-change flag on every
// record of every block. It does not stop on a bad record; the first
// failure is returned after the sweep.
func (c *Chain) ClearStateChanges() error {
	if err := c.checkHead(); err != nil {
		return err
	}
	var first error
	for _, b := range c.blocks {
		if err := checkBlock(b, c.log); err != nil {
			first = worse(first, err)
			continue
		}
		for _, d := range b.descs {
			l := c.family.Layout(d.Type)
			if l == nil {
				first = worse(first, ErrTypeUnsupported)
				continue
			}
			for i := 0; i < d.Count; i++ {
				comp, err := validateComponent(d.record(i), d.Type, l, c.log)
				if err != nil {
					first = worse(first, err)
					continue
				}
				comp.setFlag(flagStateChange, false)
			}
		}
	}
	return first
}

// CheckForWriteData scans every type for an instance with WriteData set.
// Types with a pending write get OverallWriteNeeded. A type the family
// does not support is skipped. A record that fails to read is logged and
// skipped; only head, block and status update failures are returned.
func (c *Chain) CheckForWriteData() (bool, error) {
	types, err := c.ComponentTypes()
	if err != nil {
		return false, err
	}

	pending := false

	for _, ct := range types {
		count, err := c.SpecificComponentCount(ct)
		if err != nil {
			return pending, err
		}
		for i := 0; i < count; i++ {
			v, err := c.GetBool(AttrWriteData, ct, i)
			if errors.Is(err, ErrTypeUnsupported) {
				break
			}
			if instanceFault(err) {
				c.skipInstance(ct, i, err)
				continue
			}
			if err != nil {
				return pending, err
			}
			if v {
				pending = true
				if err := c.SetComponentOverallStatus(ct, OverallWriteNeeded); err != nil {
					return pending, err
				}
				break
			}
		}
	}
	return pending, nil
}

// ------------------------------------------------------------
// FIRMWARE TARGETS
// ------------------------------------------------------------

// FwTarget names an upgradeable firmware image.
type FwTarget uint8

const (
	FwTargetLCCExpander FwTarget = iota
	FwTargetLCCBootLoader
	FwTargetLCCInitString
	FwTargetLCCFPGA
	FwTargetLCCMain
	FwTargetPS
	FwTargetCooling
	FwTargetSPSPrimary
	FwTargetSPSSecondary
	FwTargetSPSBattery
)

// FwTargetComponent maps a firmware target to the component type and
// buffer attribute holding its revision info.
func FwTargetComponent(t FwTarget) (ComponentType, Attribute, error) {
	switch t {
	case FwTargetLCCExpander:
		return TypeLCC, AttrLCCExpFwInfo, nil
	case FwTargetLCCBootLoader:
		return TypeLCC, AttrLCCBootFwInfo, nil
	case FwTargetLCCInitString:
		return TypeLCC, AttrLCCInitFwInfo, nil
	case FwTargetLCCFPGA:
		return TypeLCC, AttrLCCFPGAFwInfo, nil
	case FwTargetLCCMain:
		return TypeLCC, AttrCompFwInfo, nil
	case FwTargetPS:
		return TypePowerSupply, AttrCompFwInfo, nil
	case FwTargetCooling:
		return TypeCooling, AttrCompFwInfo, nil
	case FwTargetSPSPrimary:
		return TypeSPS, AttrCompFwInfo, nil
	case FwTargetSPSSecondary:
		return TypeSPS, AttrSPSSecondaryFwInfo, nil
	case FwTargetSPSBattery:
		return TypeSPS, AttrSPSBatteryFwInfo, nil
	}
	return TypeInvalid, AttrInvalid, ErrGeneric
}
