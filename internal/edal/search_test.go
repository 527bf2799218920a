// internal/edal/search_test.go
package edal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sideA, sideB uint8 = 0, 1

func TestMatchingComponent_FirstMatchAcrossBlocks(t *testing.T) {
	c := splitCooling(t)

	_, _, err := c.U8MatchingComponent(AttrCoolingSubtype, TypeCooling, 7)
	assert.ErrorIs(t, err, ErrComponentNotFound)

	require.NoError(t, c.SetU8(AttrCoolingSubtype, TypeCooling, 2, 7))
	_, idx, err := c.U8MatchingComponent(AttrCoolingSubtype, TypeCooling, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	require.NoError(t, c.SetU8(AttrCoolingSubtype, TypeCooling, 1, 7))
	comp, idx, err := c.U8MatchingComponent(AttrCoolingSubtype, TypeCooling, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	v, err := comp.U8(AttrCoolingSubtype)
	require.NoError(t, err)
	assert.Equal(t, uint8(7), v)

	require.NoError(t, c.SetBool(AttrIsLocal, TypeCooling, 2, true))
	_, idx, err = c.BoolMatchingComponent(AttrIsLocal, TypeCooling, true)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestFindFirst(t *testing.T) {
	c := splitCooling(t)
	require.NoError(t, c.SetU8(AttrCoolingSubtype, TypeCooling, 0, 3))
	require.NoError(t, c.SetU8(AttrCoolingSubtype, TypeCooling, 2, 3))

	i, err := c.FindFirstU8(AttrCoolingSubtype, TypeCooling, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	i, err = c.FindFirstU8(AttrCoolingSubtype, TypeCooling, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	i, err = c.FindFirstBool(AttrIsLocal, TypeCooling, 0, true)
	require.NoError(t, err)
	assert.Equal(t, IndexNotFound, i)
}

func TestLocateCooling_ChassisOverall(t *testing.T) {
	c := newChain(t, EnclosureViper, 1024, 4)
	fit(t, c, TypeCooling, 2)

	require.NoError(t, c.SetBool(AttrIsLocal, TypeCooling, 0, true))
	require.NoError(t, c.SetU8(AttrSideID, TypeCooling, 0, sideA))
	require.NoError(t, c.SetBool(AttrIsLocal, TypeCooling, 1, false))

	i, err := c.LocateCooling(ScopeChassisOverall, sideA, 0)
	assert.ErrorIs(t, err, ErrComponentNotFound)
	assert.Equal(t, IndexNotFound, i)

	require.NoError(t, c.SetU8(AttrSideID, TypeCooling, 0, SideMidplane))
	i, err = c.LocateCooling(ScopeChassisOverall, sideA, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	require.NoError(t, c.SetBool(AttrCoolingMultiFanFault, TypeCooling, 0, true))
	fault, err := c.CoolingBool(AttrCoolingMultiFanFault, ScopeChassisOverall, sideA, 0)
	require.NoError(t, err)
	assert.True(t, fault)

	_, err = c.LocateCooling(ScopeChassisIndividual, sideA, 0)
	assert.ErrorIs(t, err, ErrGeneric)
}

func TestLocateTempSensor_Scopes(t *testing.T) {
	c := newChain(t, EnclosureViper, 1024, 4)
	fit(t, c, TypeTempSensor, 5)

	// 0: side A overall, 1-2: side A individuals, 3: chassis overall,
	// 4: midplane individual
	require.NoError(t, c.SetU8(AttrSideID, TypeTempSensor, 0, sideA))
	for _, i := range []int{1, 2} {
		require.NoError(t, c.SetU8(AttrContainerIndex, TypeTempSensor, i, 0))
		require.NoError(t, c.SetU8(AttrSideID, TypeTempSensor, i, sideA))
	}
	require.NoError(t, c.SetU8(AttrSideID, TypeTempSensor, 3, SideMidplane))
	require.NoError(t, c.SetU8(AttrContainerIndex, TypeTempSensor, 4, 1))
	require.NoError(t, c.SetU8(AttrSideID, TypeTempSensor, 4, SideMidplane))

	cases := []struct {
		scope SensorScope
		side  uint8
		n     int
		want  int
	}{
		{ScopeSideOverall, sideA, 0, 0},
		{ScopeIndividual, sideA, 0, 1},
		{ScopeIndividual, sideA, 1, 2},
		{ScopeChassisOverall, sideA, 0, 3},
		{ScopeChassisIndividual, sideA, 0, 4},
	}
	for _, tc := range cases {
		got, err := c.LocateTempSensor(tc.scope, tc.side, tc.n)
		require.NoError(t, err, "scope=%d n=%d", tc.scope, tc.n)
		assert.Equal(t, tc.want, got, "scope=%d n=%d", tc.scope, tc.n)
	}

	_, err := c.LocateTempSensor(ScopeSideOverall, sideB, 0)
	assert.ErrorIs(t, err, ErrComponentNotFound)

	_, err = c.LocateTempSensor(ScopeIndividual, sideA, 2)
	assert.ErrorIs(t, err, ErrComponentNotFound)

	require.NoError(t, c.SetU16(AttrTemperature, TypeTempSensor, 2, 41))
	temp, err := c.TempSensorU16(AttrTemperature, ScopeIndividual, sideA, 1)
	require.NoError(t, err)
	assert.Equal(t, uint16(41), temp)

	require.NoError(t, c.SetBool(AttrTempOTWarning, TypeTempSensor, 3, true))
	warn, err := c.TempSensorBool(AttrTempOTWarning, ScopeChassisOverall, sideA, 0)
	require.NoError(t, err)
	assert.True(t, warn)

	side, err := c.TempSensorU8(AttrSideID, ScopeChassisIndividual, sideA, 0)
	require.NoError(t, err)
	assert.Equal(t, SideMidplane, side)
}

func TestTempSensor_NoneIsNotAnError(t *testing.T) {
	c := newChain(t, EnclosureViper, 1024, 4)
	fit(t, c, TypeCooling, 1)

	i, err := c.LocateTempSensor(ScopeChassisOverall, sideA, 0)
	require.NoError(t, err)
	assert.Equal(t, IndexNotFound, i)

	v, err := c.TempSensorBool(AttrTempOTFailure, ScopeChassisOverall, sideA, 0)
	require.NoError(t, err)
	assert.False(t, v)
}

func TestDriveComposites(t *testing.T) {
	c := newChain(t, EnclosureViper, 1024, 4)
	fit(t, c, TypeDriveSlot, 2)
	fit(t, c, TypeExpanderPhy, 4)

	require.NoError(t, c.SetU8(AttrDriveSlotNumber, TypeDriveSlot, 0, 5))
	require.NoError(t, c.SetU8(AttrDriveSlotNumber, TypeDriveSlot, 1, 6))
	require.NoError(t, c.SetU8(AttrDrivePhyIndex, TypeDriveSlot, 1, 3))

	require.NoError(t, c.SetDriveBool(AttrDriveBypassed, 6, true))
	v, err := c.GetBool(AttrDriveBypassed, TypeDriveSlot, 1)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = c.DriveBool(AttrDriveBypassed, 5)
	require.NoError(t, err)
	assert.False(t, v)

	_, err = c.DriveBool(AttrDriveBypassed, 9)
	assert.ErrorIs(t, err, ErrComponentNotFound)

	require.NoError(t, c.SetBool(AttrPhyReady, TypeExpanderPhy, 3, true))
	require.NoError(t, c.SetU8(AttrPhyID, TypeExpanderPhy, 3, 12))

	ready, err := c.DrivePhyBool(AttrPhyReady, 1)
	require.NoError(t, err)
	assert.True(t, ready)

	id, err := c.DrivePhyU8(AttrPhyID, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(12), id)

	require.NoError(t, c.SetDrivePhyBool(AttrPhyDisable, 1, true))
	dis, err := c.GetBool(AttrPhyDisable, TypeExpanderPhy, 3)
	require.NoError(t, err)
	assert.True(t, dis)

	// drive 0 was never wired to a phy
	_, err = c.DrivePhyBool(AttrPhyReady, 0)
	assert.ErrorIs(t, err, ErrIndexInvalid)
}

// connectorChain lays out: 0 local entire primary (id 0), 1 local phy of
// connector 0 on expander phy 2, 2 local entire expansion (id 1),
// 3 peer phy of connector 0 on expander phy 1.
func connectorChain(t *testing.T) *Chain {
	t.Helper()
	c := newChain(t, EnclosureViper, 1024, 4)
	fit(t, c, TypeConnector, 4)
	fit(t, c, TypeExpanderPhy, 4)

	set := func(i int, local, entire, primary bool, id, phy uint8) {
		require.NoError(t, c.SetBool(AttrIsLocal, TypeConnector, i, local))
		require.NoError(t, c.SetBool(AttrConnectorIsEntire, TypeConnector, i, entire))
		require.NoError(t, c.SetBool(AttrConnectorPrimaryPort, TypeConnector, i, primary))
		require.NoError(t, c.SetU8(AttrConnectorID, TypeConnector, i, id))
		require.NoError(t, c.SetU8(AttrConnectorPhyIndex, TypeConnector, i, phy))
	}
	set(0, true, true, true, 0, InvalidIndex)
	set(1, true, false, true, 0, 2)
	set(2, true, true, false, 1, InvalidIndex)
	set(3, false, false, true, 0, 1)
	return c
}

func TestConnectorComposites(t *testing.T) {
	c := connectorChain(t)

	i, err := c.ConnectorIndex()
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	require.NoError(t, c.SetConnectorBool(AttrConnectorDegraded, PortPrimary, true))
	deg, err := c.GetBool(AttrConnectorDegraded, TypeConnector, 0)
	require.NoError(t, err)
	assert.True(t, deg)

	deg, err = c.ConnectorBool(AttrConnectorDegraded, PortExpansion)
	require.NoError(t, err)
	assert.False(t, deg)

	require.NoError(t, c.SetU64(AttrConnectorAttachedSAS, TypeConnector, 2, 0x5000CCA01234ABCD))
	sas, err := c.ConnectorU64(AttrConnectorAttachedSAS, PortExpansion)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x5000CCA01234ABCD), sas)
}

func TestConnectorComposites_NoLocal(t *testing.T) {
	c := newChain(t, EnclosureViper, 1024, 4)
	fit(t, c, TypeConnector, 2)

	_, err := c.ConnectorBool(AttrConnectorDegraded, PortPrimary)
	assert.ErrorIs(t, err, ErrAttributeNotFound)

	_, err = c.ConnectorIndex()
	assert.ErrorIs(t, err, ErrGeneric)

	// nothing local to switch
	assert.NoError(t, c.ConnectorControl(0, true))
}

func TestConnectorControl(t *testing.T) {
	c := connectorChain(t)

	require.NoError(t, c.ConnectorControl(0, true))

	dis, err := c.GetBool(AttrPhyDisable, TypeExpanderPhy, 2)
	require.NoError(t, err)
	assert.True(t, dis)

	dis, err = c.GetBool(AttrPhyDisable, TypeExpanderPhy, 1)
	require.NoError(t, err)
	assert.False(t, dis, "peer connector phy must not be touched")

	require.NoError(t, c.ConnectorControl(0, false))
	dis, err = c.GetBool(AttrPhyDisable, TypeExpanderPhy, 2)
	require.NoError(t, err)
	assert.False(t, dis)
}

func TestLocate_ChassisOverall12G(t *testing.T) {
	c := newChain(t, EnclosureViper, 1024, 4)
	fit(t, c, TypeTempSensor, 3)
	fit(t, c, TypeCooling, 2)

	// direct index, side and container are not consulted
	i, err := c.LocateTempSensor(ScopeChassisOverall12G, sideB, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = c.LocateTempSensor(ScopeChassisOverall12G, sideA, 3)
	assert.ErrorIs(t, err, ErrIndexInvalid)

	require.NoError(t, c.SetU16(AttrTemperature, TypeTempSensor, 2, 38))
	temp, err := c.TempSensorU16(AttrTemperature, ScopeChassisOverall12G, sideA, 2)
	require.NoError(t, err)
	assert.Equal(t, uint16(38), temp)

	require.NoError(t, c.SetBool(AttrCoolingMultiFanFault, TypeCooling, 1, true))
	fault, err := c.CoolingBool(AttrCoolingMultiFanFault, ScopeChassisOverall12G, sideA, 1)
	require.NoError(t, err)
	assert.True(t, fault)

	empty := newChain(t, EnclosureViper, 1024, 4)
	fit(t, empty, TypeCooling, 1)
	i, err = empty.LocateTempSensor(ScopeChassisOverall12G, sideA, 0)
	require.NoError(t, err)
	assert.Equal(t, IndexNotFound, i)
}

// driveChain holds three drive slots; slot number 9 sits on instance 2.
func driveChain(t *testing.T) *Chain {
	t.Helper()
	c := newChain(t, EnclosureViper, 1024, 4)
	fit(t, c, TypeDriveSlot, 3)
	fit(t, c, TypeExpanderPhy, 2)
	require.NoError(t, c.SetU8(AttrDriveSlotNumber, TypeDriveSlot, 1, 4))
	require.NoError(t, c.SetU8(AttrDriveSlotNumber, TypeDriveSlot, 2, 9))
	require.NoError(t, c.SetU8(AttrDrivePhyIndex, TypeDriveSlot, 2, 1))
	require.NoError(t, c.SetBool(AttrDriveBypassed, TypeDriveSlot, 2, true))
	require.NoError(t, c.SetBool(AttrPhyReady, TypeExpanderPhy, 1, true))
	return c
}

func TestSearches_SkipCorruptInstance(t *testing.T) {
	cases := []struct {
		name    string
		build   func(*testing.T) *Chain
		ct      ComponentType
		corrupt int
		check   func(*testing.T, *Chain)
	}{
		{"find first u8", driveChain, TypeDriveSlot, 0, func(t *testing.T, c *Chain) {
			i, err := c.FindFirstU8(AttrDriveSlotNumber, TypeDriveSlot, 0, 9)
			require.NoError(t, err)
			assert.Equal(t, 2, i)

			i, err = c.FindFirstU8(AttrDriveSlotNumber, TypeDriveSlot, 0, 77)
			require.NoError(t, err)
			assert.Equal(t, IndexNotFound, i)
		}},
		{"find first bool", driveChain, TypeDriveSlot, 1, func(t *testing.T, c *Chain) {
			i, err := c.FindFirstBool(AttrDriveBypassed, TypeDriveSlot, 0, true)
			require.NoError(t, err)
			assert.Equal(t, 2, i)
		}},
		{"u8 matching component", driveChain, TypeDriveSlot, 0, func(t *testing.T, c *Chain) {
			comp, i, err := c.U8MatchingComponent(AttrDriveSlotNumber, TypeDriveSlot, 9)
			require.NoError(t, err)
			assert.Equal(t, 2, i)
			phy, err := comp.U8(AttrDrivePhyIndex)
			require.NoError(t, err)
			assert.Equal(t, uint8(1), phy)

			_, _, err = c.U8MatchingComponent(AttrDriveSlotNumber, TypeDriveSlot, 77)
			assert.ErrorIs(t, err, ErrComponentNotFound)
		}},
		{"bool matching component across blocks", splitCooling, TypeCooling, 0, func(t *testing.T, c *Chain) {
			require.NoError(t, c.SetBool(AttrIsLocal, TypeCooling, 2, true))
			_, i, err := c.BoolMatchingComponent(AttrIsLocal, TypeCooling, true)
			require.NoError(t, err)
			assert.Equal(t, 2, i)
		}},
		{"drive composites", driveChain, TypeDriveSlot, 0, func(t *testing.T, c *Chain) {
			v, err := c.DriveBool(AttrDriveBypassed, 9)
			require.NoError(t, err)
			assert.True(t, v)

			require.NoError(t, c.SetDriveBool(AttrDriveBypassed, 4, true))
			v, err = c.GetBool(AttrDriveBypassed, TypeDriveSlot, 1)
			require.NoError(t, err)
			assert.True(t, v)

			ready, err := c.DrivePhyBool(AttrPhyReady, 2)
			require.NoError(t, err)
			assert.True(t, ready)
		}},
		{"drive phy", driveChain, TypeExpanderPhy, 0, func(t *testing.T, c *Chain) {
			ready, err := c.DrivePhyBool(AttrPhyReady, 2)
			require.NoError(t, err)
			assert.True(t, ready)
		}},
		{"connector composites", connectorChain, TypeConnector, 0, func(t *testing.T, c *Chain) {
			i, err := c.ConnectorIndex()
			require.NoError(t, err)
			assert.Equal(t, 2, i)

			require.NoError(t, c.SetConnectorBool(AttrConnectorDegraded, PortExpansion, true))
			deg, err := c.ConnectorBool(AttrConnectorDegraded, PortExpansion)
			require.NoError(t, err)
			assert.True(t, deg)

			// the only whole primary connector is the corrupt one
			_, err = c.ConnectorBool(AttrConnectorDegraded, PortPrimary)
			assert.ErrorIs(t, err, ErrAttributeNotFound)
		}},
		{"connector control", connectorChain, TypeConnector, 0, func(t *testing.T, c *Chain) {
			require.NoError(t, c.ConnectorControl(0, true))

			dis, err := c.GetBool(AttrPhyDisable, TypeExpanderPhy, 2)
			require.NoError(t, err)
			assert.True(t, dis)

			dis, err = c.GetBool(AttrPhyDisable, TypeExpanderPhy, 1)
			require.NoError(t, err)
			assert.False(t, dis)
		}},
		{"temp sensor", tempChain, TypeTempSensor, 0, func(t *testing.T, c *Chain) {
			i, err := c.LocateTempSensor(ScopeChassisOverall, sideA, 0)
			require.NoError(t, err)
			assert.Equal(t, 3, i)

			// instance 1 is now the first side A individual
			i, err = c.LocateTempSensor(ScopeIndividual, sideA, 0)
			require.NoError(t, err)
			assert.Equal(t, 1, i)

			i, err = c.LocateTempSensor(ScopeIndividual, sideA, 1)
			require.NoError(t, err)
			assert.Equal(t, 2, i)
		}},
		{"cooling", splitCooling, TypeCooling, 0, func(t *testing.T, c *Chain) {
			require.NoError(t, c.SetU8(AttrSideID, TypeCooling, 2, SideMidplane))
			i, err := c.LocateCooling(ScopeChassisOverall, sideA, 0)
			require.NoError(t, err)
			assert.Equal(t, 2, i)

			require.NoError(t, c.SetBool(AttrCoolingMultiFanFault, TypeCooling, 2, true))
			fault, err := c.CoolingBool(AttrCoolingMultiFanFault, ScopeChassisOverall, sideA, 0)
			require.NoError(t, err)
			assert.True(t, fault)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.build(t)
			corruptComponent(t, c, tc.ct, tc.corrupt)
			tc.check(t, c)
		})
	}
}

// tempChain: 0-2 side A individuals, 3 chassis overall.
func tempChain(t *testing.T) *Chain {
	t.Helper()
	c := newChain(t, EnclosureViper, 1024, 4)
	fit(t, c, TypeTempSensor, 4)
	for _, i := range []int{0, 1, 2} {
		require.NoError(t, c.SetU8(AttrContainerIndex, TypeTempSensor, i, 0))
		require.NoError(t, c.SetU8(AttrSideID, TypeTempSensor, i, sideA))
	}
	require.NoError(t, c.SetU8(AttrSideID, TypeTempSensor, 3, SideMidplane))
	return c
}
