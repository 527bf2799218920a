// internal/edal/track_test.go
package edal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearStateChanges_Idempotent(t *testing.T) {
	c := esesChain(t)
	require.NoError(t, c.SetBool(AttrInserted, TypeCooling, 0, true))
	require.NoError(t, c.SetBool(AttrFaulted, TypePowerSupply, 1, true))

	for round := 0; round < 2; round++ {
		require.NoError(t, c.ClearStateChanges(), "round %d", round)

		for _, ct := range []ComponentType{TypeEnclosure, TypePowerSupply, TypeCooling} {
			n, err := c.SpecificComponentCount(ct)
			require.NoError(t, err)
			for i := 0; i < n; i++ {
				sc, err := c.GetBool(AttrStateChange, ct, i)
				require.NoError(t, err)
				assert.False(t, sc, "round %d %s[%d]", round, ct, i)
			}
		}
	}
}

func TestClearStateChanges_ContinuesPastBadRecord(t *testing.T) {
	c := splitCooling(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, c.SetBool(AttrFaulted, TypeCooling, i, true))
	}
	corruptComponent(t, c, TypeCooling, 0)

	assert.ErrorIs(t, c.ClearStateChanges(), ErrInvalidComponentCanary)

	for _, i := range []int{1, 2} {
		sc, err := c.GetBool(AttrStateChange, TypeCooling, i)
		require.NoError(t, err)
		assert.False(t, sc, "cooling[%d]", i)
	}
}

func TestCheckForWriteData(t *testing.T) {
	c := esesChain(t)

	pending, err := c.CheckForWriteData()
	require.NoError(t, err)
	assert.False(t, pending)

	require.NoError(t, c.SetBool(AttrTurnOnFaultLed, TypePowerSupply, 1, true))

	pending, err = c.CheckForWriteData()
	require.NoError(t, err)
	assert.True(t, pending)

	st, err := c.ComponentOverallStatus(TypePowerSupply)
	require.NoError(t, err)
	assert.Equal(t, OverallWriteNeeded, st)

	st, err = c.ComponentOverallStatus(TypeCooling)
	require.NoError(t, err)
	assert.Equal(t, OverallOK, st)
}

func TestCheckForWriteData_SkipsBadRecord(t *testing.T) {
	c := esesChain(t)
	corruptComponent(t, c, TypePowerSupply, 0)
	require.NoError(t, c.SetBool(AttrWriteData, TypeCooling, 1, true))

	pending, err := c.CheckForWriteData()
	require.NoError(t, err)
	assert.True(t, pending)

	st, err := c.ComponentOverallStatus(TypeCooling)
	require.NoError(t, err)
	assert.Equal(t, OverallWriteNeeded, st)
}

func TestOverallStatus_PropagatesToEveryBlock(t *testing.T) {
	c := splitCooling(t)

	require.NoError(t, c.SetComponentOverallStatus(TypeCooling, OverallFailed))
	require.NoError(t, c.IncrementComponentOverallStateChange(TypeCooling))
	require.NoError(t, c.IncrementComponentOverallStateChange(TypeCooling))

	for blk := 0; blk < 2; blk++ {
		ds, err := c.Descriptors(blk)
		require.NoError(t, err)
		require.Len(t, ds, 1)
		assert.Equal(t, OverallFailed, ds[0].Status)
		assert.Equal(t, uint32(2), ds[0].StateChangeCount)
	}

	n, err := c.ComponentOverallStateChangeCount(TypeCooling)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)

	_, err = c.ComponentOverallStatus(TypeLCC)
	assert.ErrorIs(t, err, ErrComponentNotFound)

	// absent type is not an error for the chain-wide setter
	assert.NoError(t, c.SetComponentOverallStatus(TypeLCC, OverallFailed))
}

func TestChainCounters(t *testing.T) {
	c := splitCooling(t)

	require.NoError(t, c.IncrementOverallStateChange())
	require.NoError(t, c.IncrementOverallStateChange())
	n, err := c.OverallStateChangeCount()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)
	assert.Equal(t, uint32(2), c.blocks[1].stateChangeCount)

	require.NoError(t, c.SetGenerationCount(10))
	require.NoError(t, c.IncrementGenerationCount())
	g, err := c.GenerationCount()
	require.NoError(t, err)
	assert.Equal(t, uint32(11), g)
	assert.Zero(t, c.blocks[1].generation)

	require.NoError(t, c.SetLocale(1))
	loc, err := c.Locale()
	require.NoError(t, err)
	assert.Equal(t, uint8(1), loc)
	assert.Equal(t, uint8(1), c.blocks[1].locale)
}

func TestFwTargetComponent(t *testing.T) {
	cases := []struct {
		target FwTarget
		ct     ComponentType
		attr   Attribute
	}{
		{FwTargetLCCExpander, TypeLCC, AttrLCCExpFwInfo},
		{FwTargetLCCBootLoader, TypeLCC, AttrLCCBootFwInfo},
		{FwTargetLCCInitString, TypeLCC, AttrLCCInitFwInfo},
		{FwTargetLCCFPGA, TypeLCC, AttrLCCFPGAFwInfo},
		{FwTargetLCCMain, TypeLCC, AttrCompFwInfo},
		{FwTargetPS, TypePowerSupply, AttrCompFwInfo},
		{FwTargetCooling, TypeCooling, AttrCompFwInfo},
		{FwTargetSPSPrimary, TypeSPS, AttrCompFwInfo},
		{FwTargetSPSSecondary, TypeSPS, AttrSPSSecondaryFwInfo},
		{FwTargetSPSBattery, TypeSPS, AttrSPSBatteryFwInfo},
	}
	for _, tc := range cases {
		ct, attr, err := FwTargetComponent(tc.target)
		require.NoError(t, err)
		assert.Equal(t, tc.ct, ct)
		assert.Equal(t, tc.attr, attr)

		// every mapped attribute exists in the eses layout
		kind, ok := esesFamily.Layout(ct).KindOf(attr)
		assert.True(t, ok, attr.String())
		assert.Equal(t, KindBuffer, kind)
	}

	_, _, err := FwTargetComponent(FwTarget(99))
	assert.ErrorIs(t, err, ErrGeneric)
}
