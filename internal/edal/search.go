// internal/edal/search.go
package edal

import "errors"

// IndexNotFound is returned by scans that found no match.
const IndexNotFound = -1

// instanceFault reports failures confined to one record. Scans skip such
// records and keep going; anything else ends the scan.
func instanceFault(err error) bool {
	return errors.Is(err, ErrInvalidComponentCanary) || errors.Is(err, ErrNullComponentData)
}

func (c *Chain) skipInstance(ct ComponentType, idx int, err error) {
	c.log.Warn("edal: scan skipped instance",
		"type", ct.String(),
		"index", idx,
		"err", err,
	)
}

// ------------------------------------------------------------
// FIRST MATCH
// ------------------------------------------------------------

// FindFirstBool returns the first index >= start whose attr equals v.
func (c *Chain) FindFirstBool(attr Attribute, ct ComponentType, start int, v bool) (int, error) {
	count, err := c.SpecificComponentCount(ct)
	if err != nil {
		return IndexNotFound, err
	}
	for i := max(start, 0); i < count; i++ {
		got, err := c.GetBool(attr, ct, i)
		if instanceFault(err) {
			c.skipInstance(ct, i, err)
			continue
		}
		if err != nil {
			return IndexNotFound, err
		}
		if got == v {
			return i, nil
		}
	}
	return IndexNotFound, nil
}

// FindFirstU8 returns the first index >= start whose attr equals v.
func (c *Chain) FindFirstU8(attr Attribute, ct ComponentType, start int, v uint8) (int, error) {
	count, err := c.SpecificComponentCount(ct)
	if err != nil {
		return IndexNotFound, err
	}
	for i := max(start, 0); i < count; i++ {
		got, err := c.GetU8(attr, ct, i)
		if instanceFault(err) {
			c.skipInstance(ct, i, err)
			continue
		}
		if err != nil {
			return IndexNotFound, err
		}
		if got == v {
			return i, nil
		}
	}
	return IndexNotFound, nil
}

// ------------------------------------------------------------
// MATCHING COMPONENT (walks the whole chain)
// ------------------------------------------------------------

// BoolMatchingComponent returns the first record of ct, in chain order,
// whose attr equals v, together with its chain-wide index.
func (c *Chain) BoolMatchingComponent(attr Attribute, ct ComponentType, v bool) (Component, int, error) {
	return c.matching(ct, func(comp Component) (bool, error) {
		got, err := comp.Bool(attr)
		return got == v, err
	})
}

// U8MatchingComponent is the u8 form of BoolMatchingComponent.
func (c *Chain) U8MatchingComponent(attr Attribute, ct ComponentType, v uint8) (Component, int, error) {
	return c.matching(ct, func(comp Component) (bool, error) {
		got, err := comp.U8(attr)
		return got == v, err
	})
}

func (c *Chain) matching(ct ComponentType, match func(Component) (bool, error)) (Component, int, error) {
	if err := c.checkHead(); err != nil {
		return Component{}, IndexNotFound, err
	}
	l := c.family.Layout(ct)
	if l == nil {
		return Component{}, IndexNotFound, ErrTypeUnsupported
	}
	for _, b := range c.blocks {
		if err := checkBlock(b, c.log); err != nil {
			return Component{}, IndexNotFound, err
		}
		d := b.descriptor(ct)
		if d == nil {
			continue
		}
		for i := 0; i < d.Count; i++ {
			comp, err := validateComponent(d.record(i), ct, l, c.log)
			if err != nil {
				c.skipInstance(ct, d.First+i, err)
				continue
			}
			ok, err := match(comp)
			if instanceFault(err) {
				c.skipInstance(ct, d.First+i, err)
				continue
			}
			if err != nil {
				return Component{}, IndexNotFound, err
			}
			if ok {
				return comp, d.First + i, nil
			}
		}
	}
	return Component{}, IndexNotFound, ErrComponentNotFound
}

// ------------------------------------------------------------
// DRIVES
// ------------------------------------------------------------

// DriveBool reads attr of the drive slot whose slot number is slot.
func (c *Chain) DriveBool(attr Attribute, slot uint8) (bool, error) {
	comp, _, err := c.U8MatchingComponent(AttrDriveSlotNumber, TypeDriveSlot, slot)
	if err != nil {
		return false, err
	}
	return comp.Bool(attr)
}

func (c *Chain) SetDriveBool(attr Attribute, slot uint8, v bool) error {
	comp, _, err := c.U8MatchingComponent(AttrDriveSlotNumber, TypeDriveSlot, slot)
	if err != nil {
		return err
	}
	return comp.SetBool(attr, v)
}

func (c *Chain) drivePhy(drive int) (int, error) {
	phy, err := c.GetU8(AttrDrivePhyIndex, TypeDriveSlot, drive)
	if err != nil {
		return 0, err
	}
	return int(phy), nil
}

// DrivePhyBool reads attr of the expander phy wired to drive instance drive.
func (c *Chain) DrivePhyBool(attr Attribute, drive int) (bool, error) {
	phy, err := c.drivePhy(drive)
	if err != nil {
		return false, err
	}
	return c.GetBool(attr, TypeExpanderPhy, phy)
}

func (c *Chain) DrivePhyU8(attr Attribute, drive int) (uint8, error) {
	phy, err := c.drivePhy(drive)
	if err != nil {
		return 0, err
	}
	return c.GetU8(attr, TypeExpanderPhy, phy)
}

func (c *Chain) SetDrivePhyBool(attr Attribute, drive int, v bool) error {
	phy, err := c.drivePhy(drive)
	if err != nil {
		return err
	}
	return c.SetBool(attr, TypeExpanderPhy, phy, v)
}

// ------------------------------------------------------------
// CONNECTORS
// ------------------------------------------------------------

// ConnectorPort selects the local primary or the local expansion connector.
type ConnectorPort uint8

const (
	PortPrimary ConnectorPort = iota
	PortExpansion
)

// localConnector returns the instance that represents the whole local
// connector on the requested port.
func (c *Chain) localConnector(port ConnectorPort) (Component, int, error) {
	count, err := c.SpecificComponentCount(TypeConnector)
	if err != nil {
		return Component{}, IndexNotFound, err
	}
	for i := 0; i < count; i++ {
		comp, err := c.SpecificComponent(TypeConnector, i)
		if instanceFault(err) {
			c.skipInstance(TypeConnector, i, err)
			continue
		}
		if err != nil {
			return Component{}, IndexNotFound, err
		}
		local, err := comp.Bool(AttrIsLocal)
		if err != nil || !local {
			continue
		}
		entire, err := comp.Bool(AttrConnectorIsEntire)
		if err != nil || !entire {
			continue
		}
		primary, err := comp.Bool(AttrConnectorPrimaryPort)
		if err != nil {
			continue
		}
		if primary == (port == PortPrimary) {
			return comp, i, nil
		}
	}
	return Component{}, IndexNotFound, ErrAttributeNotFound
}

func (c *Chain) ConnectorBool(attr Attribute, port ConnectorPort) (bool, error) {
	comp, _, err := c.localConnector(port)
	if err != nil {
		return false, err
	}
	return comp.Bool(attr)
}

func (c *Chain) SetConnectorBool(attr Attribute, port ConnectorPort, v bool) error {
	comp, _, err := c.localConnector(port)
	if err != nil {
		return err
	}
	return comp.SetBool(attr, v)
}

func (c *Chain) ConnectorU64(attr Attribute, port ConnectorPort) (uint64, error) {
	comp, _, err := c.localConnector(port)
	if err != nil {
		return 0, err
	}
	return comp.U64(attr)
}

// ConnectorIndex is the index of the whole local expansion connector.
func (c *Chain) ConnectorIndex() (int, error) {
	_, i, err := c.localConnector(PortExpansion)
	if err != nil {
		return IndexNotFound, ErrGeneric
	}
	return i, nil
}

// ConnectorControl enables or disables every expander phy behind the local
// connector with the given id. Local connectors are contiguous; the scan
// stops at the first match that is not local. With no local connector
// there is nothing to do.
func (c *Chain) ConnectorControl(connectorID uint8, disable bool) error {
	start, err := c.FindFirstBool(AttrIsLocal, TypeConnector, 0, true)
	if err != nil {
		return err
	}
	if start == IndexNotFound {
		return nil
	}

	for i := start; ; i++ {
		m, err := c.FindFirstU8(AttrConnectorID, TypeConnector, i, connectorID)
		if err != nil {
			return err
		}
		if m == IndexNotFound {
			return nil
		}
		i = m

		comp, err := c.SpecificComponent(TypeConnector, m)
		if instanceFault(err) {
			c.skipInstance(TypeConnector, m, err)
			continue
		}
		if err != nil {
			return err
		}
		local, err := comp.Bool(AttrIsLocal)
		if err != nil {
			c.skipInstance(TypeConnector, m, err)
			continue
		}
		if !local {
			return nil
		}
		entire, err := comp.Bool(AttrConnectorIsEntire)
		if err != nil {
			c.skipInstance(TypeConnector, m, err)
			continue
		}
		if entire {
			continue
		}
		phy, err := comp.U8(AttrConnectorPhyIndex)
		if err != nil {
			c.skipInstance(TypeConnector, m, err)
			continue
		}
		if phy == InvalidIndex {
			continue
		}
		if err := c.SetBool(AttrPhyDisable, TypeExpanderPhy, int(phy), disable); err != nil {
			return err
		}
	}
}

// ------------------------------------------------------------
// TEMPERATURE SENSORS / COOLING
// ------------------------------------------------------------

// SensorScope is the addressing mode of sensor and cooling lookups.
type SensorScope uint8

const (
	// ScopeChassisOverall is the midplane, self-contained aggregate.
	ScopeChassisOverall SensorScope = iota
	// ScopeSideOverall is the self-contained aggregate of one side.
	ScopeSideOverall
	// ScopeIndividual is the nth element of an assembly on one side.
	ScopeIndividual
	// ScopeChassisIndividual is the nth element of a midplane assembly.
	ScopeChassisIndividual
	// ScopeChassisOverall12G addresses the chassis aggregate of 12G
	// enclosures directly: n is the instance index and side is ignored.
	ScopeChassisOverall12G
)

// locateBySide classifies instances of ct by container index and side id.
// No instances at all is not an error and yields IndexNotFound. A corrupt
// instance is skipped and does not count towards n.
func (c *Chain) locateBySide(ct ComponentType, scope SensorScope, side uint8, n int) (int, error) {
	count, err := c.SpecificComponentCount(ct)
	if err != nil {
		return IndexNotFound, err
	}
	if count == 0 {
		return IndexNotFound, nil
	}

	if scope == ScopeChassisOverall12G {
		if n < 0 || n >= count {
			return IndexNotFound, ErrIndexInvalid
		}
		return n, nil
	}

	seen := 0
	for i := 0; i < count; i++ {
		comp, err := c.SpecificComponent(ct, i)
		if instanceFault(err) {
			c.skipInstance(ct, i, err)
			continue
		}
		if err != nil {
			return IndexNotFound, err
		}
		container, err := comp.U8(AttrContainerIndex)
		if err != nil {
			return IndexNotFound, ErrGeneric
		}
		sid, err := comp.U8(AttrSideID)
		if err != nil {
			return IndexNotFound, ErrGeneric
		}
		self := container == ContainerSelfContained

		switch scope {
		case ScopeChassisOverall:
			if self && sid == SideMidplane {
				return i, nil
			}
		case ScopeSideOverall:
			if self && sid == side {
				return i, nil
			}
		case ScopeIndividual:
			if !self && sid == side {
				if seen == n {
					return i, nil
				}
				seen++
			}
		case ScopeChassisIndividual:
			if !self && sid == SideMidplane {
				if seen == n {
					return i, nil
				}
				seen++
			}
		default:
			return IndexNotFound, ErrGeneric
		}
	}

	c.log.Debug("edal: no instance for scope",
		"type", ct.String(),
		"scope", scope,
		"side", side,
		"n", n,
	)
	return IndexNotFound, ErrComponentNotFound
}

// LocateTempSensor resolves a temperature sensor address to an index.
func (c *Chain) LocateTempSensor(scope SensorScope, side uint8, n int) (int, error) {
	return c.locateBySide(TypeTempSensor, scope, side, n)
}

// LocateCooling resolves a cooling address; cooling has no chassis-individual scope.
func (c *Chain) LocateCooling(scope SensorScope, side uint8, n int) (int, error) {
	if scope == ScopeChassisIndividual {
		return IndexNotFound, ErrGeneric
	}
	return c.locateBySide(TypeCooling, scope, side, n)
}

// TempSensorBool reads attr of the addressed sensor. With no sensors at
// all it returns false and no error.
func (c *Chain) TempSensorBool(attr Attribute, scope SensorScope, side uint8, n int) (bool, error) {
	i, err := c.LocateTempSensor(scope, side, n)
	if err != nil || i == IndexNotFound {
		return false, err
	}
	return c.GetBool(attr, TypeTempSensor, i)
}

func (c *Chain) TempSensorU8(attr Attribute, scope SensorScope, side uint8, n int) (uint8, error) {
	i, err := c.LocateTempSensor(scope, side, n)
	if err != nil || i == IndexNotFound {
		return 0, err
	}
	return c.GetU8(attr, TypeTempSensor, i)
}

func (c *Chain) TempSensorU16(attr Attribute, scope SensorScope, side uint8, n int) (uint16, error) {
	i, err := c.LocateTempSensor(scope, side, n)
	if err != nil || i == IndexNotFound {
		return 0, err
	}
	return c.GetU16(attr, TypeTempSensor, i)
}

func (c *Chain) CoolingBool(attr Attribute, scope SensorScope, side uint8, n int) (bool, error) {
	i, err := c.LocateCooling(scope, side, n)
	if err != nil || i == IndexNotFound {
		return false, err
	}
	return c.GetBool(attr, TypeCooling, i)
}
