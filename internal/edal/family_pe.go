// internal/edal/family_pe.go
package edal

// peFamily is the processor enclosure: the SP chassis and its
// IO modules, power, cooling, management and cache hardware.
var peFamily Family = &tableFamily{
	name: "processor enclosure",
	layouts: map[ComponentType]*Layout{
		TypeEnclosure: newLayout(
			str(AttrSerialNumber, serialNumberLen),
			str(AttrProductID, productIDLen),
			quiet(AttrUniqueID, KindU32),
		),
		TypeIOModule:  newLayout(peIOComponent()...),
		TypeBEM:       newLayout(peIOComponent()...),
		TypeMezzanine: newLayout(peIOComponent()...),
		TypeIOPort: newLayout(
			tracked(AttrIOPortRole, KindU8),
			tracked(AttrIOPortProtocol, KindU8),
			quiet(AttrUniqueID, KindU32),
		),
		TypePowerSupply: newLayout(join(
			[]field{
				tracked(AttrPSACFail, KindBool),
				tracked(AttrPSDCDetected, KindBool),
				tracked(AttrPSSupported, KindBool),
				tracked(AttrPSInputPowerStatus, KindU8),
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
		TypeMgmtModule: newLayout(
			control(AttrMgmtVLANMode, KindU8),
			tracked(AttrMgmtPortSpeed, KindU32),
			str(AttrSerialNumber, serialNumberLen),
		),
		TypePlatform: newLayout(
			quiet(AttrPlatformType, KindU32),
			str(AttrProductID, productIDLen),
		),
		TypeMisc: newLayout(
			tracked(AttrMiscEngineIDFault, KindBool),
		),
		TypeFltReg: newLayout(
			tracked(AttrFltRegAnyFaults, KindBool),
		),
		TypeSlavePort: newLayout(
			tracked(AttrSlavePortStatus, KindU8),
		),
		TypeSuitcase: newLayout(
			tracked(AttrSuitcaseShutdownWarn, KindBool),
			tracked(AttrSuitcaseAmbientOT, KindBool),
		),
		TypeBMC: newLayout(
			tracked(AttrBMCShutdownWarn, KindBool),
		),
		TypeTemperature: newLayout(
			tracked(AttrTempOTWarning, KindBool),
			tracked(AttrTempOTFailure, KindBool),
			quiet(AttrTemperature, KindU16),
		),
		TypeSPS: newLayout(peSPS()...),
		TypeBattery: newLayout(
			tracked(AttrBatteryReady, KindBool),
			quiet(AttrBatteryEnergyReq, KindU32),
			str(AttrSerialNumber, serialNumberLen),
		),
		TypeResumeProm: newLayout(
			tracked(AttrResumePromStatus, KindU32),
		),
		TypeCacheCard: newLayout(
			quiet(AttrUniqueID, KindU32),
			str(AttrSerialNumber, serialNumberLen),
		),
		TypeDIMM: newLayout(
			quiet(AttrDIMMSize, KindU32),
			str(AttrSerialNumber, serialNumberLen),
		),
		TypeSSD: newLayout(
			tracked(AttrSSDRemainingLife, KindU32),
			str(AttrSerialNumber, serialNumberLen),
		),
	},
}

func peIOComponent() []field {
	return []field{
		quiet(AttrUniqueID, KindU32),
		tracked(AttrIOPortCount, KindU8),
		str(AttrSerialNumber, serialNumberLen),
	}
}

func peSPS() []field {
	return join(
		[]field{
			tracked(AttrSPSStatus, KindU32),
			tracked(AttrSPSFaults, KindBool),
		},
		identity(),
		[]field{
			buffer(AttrSPSSecondaryFwInfo, fwInfoLen),
			buffer(AttrSPSBatteryFwInfo, fwInfoLen),
		},
	)
}
