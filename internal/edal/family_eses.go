// internal/edal/family_eses.go
package edal

// esesFamily covers every SAS/ESES disk and IO enclosure.
var esesFamily Family = &tableFamily{
	name: "eses",
	layouts: map[ComponentType]*Layout{
		TypeEnclosure: newLayout(
			str(AttrSerialNumber, serialNumberLen),
			str(AttrProductID, productIDLen),
			quiet(AttrSASAddress, KindU64),
			quiet(AttrEnclPosition, KindU8),
			quiet(AttrEnclAddress, KindU8),
			tracked(AttrEnclResetRideThru, KindU8),
		),
		TypeLCC: newLayout(join(
			[]field{
				tracked(AttrLCCFaultMasked, KindBool),
			},
			identity(),
			[]field{
				buffer(AttrLCCExpFwInfo, fwInfoLen),
				buffer(AttrLCCBootFwInfo, fwInfoLen),
				buffer(AttrLCCInitFwInfo, fwInfoLen),
				buffer(AttrLCCFPGAFwInfo, fwInfoLen),
			},
		)...),
		TypePowerSupply: newLayout(join(
			[]field{
				tracked(AttrPSACFail, KindBool),
				tracked(AttrPSDCDetected, KindBool),
				tracked(AttrPSInputPowerStatus, KindU8),
				control(AttrPSMarginTestMode, KindU8),
				quiet(AttrPSInputPower, KindU32),
			},
			identity(),
		)...),
		TypeCooling: newLayout(join(
			[]field{
				tracked(AttrCoolingMultiFanFault, KindBool),
				quiet(AttrCoolingSubtype, KindU8),
				quiet(AttrCoolingFanSpeed, KindU16),
			},
			identity(),
		)...),
		TypeTempSensor: newLayout(
			tracked(AttrTempOTWarning, KindBool),
			tracked(AttrTempOTFailure, KindBool),
			quiet(AttrTempValid, KindBool),
			quiet(AttrTemperature, KindU16),
			quiet(AttrTempMax, KindU16),
		),
		TypeDriveSlot: newLayout(
			quiet(AttrDriveSlotNumber, KindU8),
			quiet(AttrDrivePhyIndex, KindU8).withDefault(uint64(InvalidIndex)),
			tracked(AttrDriveBypassed, KindBool),
			control(AttrDriveDeviceOff, KindBool),
			tracked(AttrDriveLoggedIn, KindBool),
			quiet(AttrSASAddress, KindU64),
		),
		TypeExpanderPhy: newLayout(
			quiet(AttrPhyID, KindU8),
			control(AttrPhyDisable, KindBool),
			tracked(AttrPhyReady, KindBool),
			tracked(AttrPhyLinkReady, KindBool),
			tracked(AttrPhyForceDisabled, KindBool),
		),
		TypeConnector: newLayout(
			quiet(AttrConnectorID, KindU8),
			quiet(AttrConnectorPhyIndex, KindU8).withDefault(uint64(InvalidIndex)),
			quiet(AttrConnectorIsEntire, KindBool),
			quiet(AttrConnectorPrimaryPort, KindBool),
			tracked(AttrConnectorDegraded, KindBool),
			tracked(AttrConnectorAttachedSAS, KindU64),
		),
		TypeExpander: newLayout(
			quiet(AttrSASAddress, KindU64),
		),
		TypeDisplay: newLayout(
			control(AttrDisplayMode, KindU8),
			tracked(AttrDisplayModeStatus, KindU8),
			control(AttrDisplayChar, KindU8),
			tracked(AttrDisplayCharStatus, KindU8),
		),
		TypeSPS: newLayout(peSPS()...),
		TypeSSC: newLayout(),
	},
}
