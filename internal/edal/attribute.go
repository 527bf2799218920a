// internal/edal/attribute.go
package edal

import (
	"fmt"
	"strings"
)

// Attribute tags a named field of a component record.
// Header attributes exist on every component; the rest are resolved
// through the family layout of the component type.
type Attribute uint16

const (
	AttrInvalid Attribute = iota

	// ---- generic header: bool ----
	AttrInserted
	AttrInsertedPriorConfig
	AttrFaulted
	AttrPoweredOff
	AttrFaultLedOn
	AttrMarked
	AttrTurnOnFaultLed
	AttrMarkComponent
	AttrStateChange
	AttrWriteData
	AttrWriteDataSent
	AttrEmcEnclCtrlWriteData
	AttrEmcEnclCtrlWriteDataSent
	AttrStatusValid
	AttrIsLocal

	// ---- generic header: u8 ----
	AttrElemIndex
	AttrSubEnclID
	AttrContainerIndex
	AttrSideID
	AttrAdditionalStatus
	AttrLocation

	// ---- identity / firmware ----
	AttrUniqueID
	AttrSerialNumber
	AttrPartNumber
	AttrProductID
	AttrCompFwInfo
	AttrSASAddress

	// ---- power supply ----
	AttrPSACFail
	AttrPSDCDetected
	AttrPSSupported
	AttrPSInputPower
	AttrPSInputPowerStatus
	AttrPSMarginTestMode

	// ---- cooling ----
	AttrCoolingMultiFanFault
	AttrCoolingSubtype
	AttrCoolingFanSpeed

	// ---- temperature ----
	AttrTempOTWarning
	AttrTempOTFailure
	AttrTempValid
	AttrTemperature
	AttrTempMax

	// ---- drive slot ----
	AttrDriveSlotNumber
	AttrDrivePhyIndex
	AttrDriveBypassed
	AttrDriveDeviceOff
	AttrDriveLoggedIn

	// ---- expander phy ----
	AttrPhyID
	AttrPhyDisable
	AttrPhyReady
	AttrPhyLinkReady
	AttrPhyForceDisabled

	// ---- connector ----
	AttrConnectorID
	AttrConnectorPhyIndex
	AttrConnectorIsEntire
	AttrConnectorPrimaryPort
	AttrConnectorDegraded
	AttrConnectorAttachedSAS

	// ---- enclosure ----
	AttrEnclPosition
	AttrEnclAddress
	AttrEnclResetRideThru

	// ---- lcc ----
	AttrLCCExpFwInfo
	AttrLCCBootFwInfo
	AttrLCCInitFwInfo
	AttrLCCFPGAFwInfo
	AttrLCCFaultMasked

	// ---- display ----
	AttrDisplayMode
	AttrDisplayModeStatus
	AttrDisplayChar
	AttrDisplayCharStatus

	// ---- sps / battery ----
	AttrSPSStatus
	AttrSPSFaults
	AttrSPSSecondaryFwInfo
	AttrSPSBatteryFwInfo
	AttrBatteryReady
	AttrBatteryEnergyReq

	// ---- processor enclosure ----
	AttrIOPortCount
	AttrIOPortRole
	AttrIOPortProtocol
	AttrMgmtVLANMode
	AttrMgmtPortSpeed
	AttrPlatformType
	AttrMiscEngineIDFault
	AttrFltRegAnyFaults
	AttrSlavePortStatus
	AttrSuitcaseShutdownWarn
	AttrSuitcaseAmbientOT
	AttrBMCShutdownWarn
	AttrResumePromStatus
	AttrDIMMSize
	AttrSSDRemainingLife

	attrCount
)

var attributeNames = [...]string{
	AttrInvalid:                  "Invalid",
	AttrInserted:                 "Inserted",
	AttrInsertedPriorConfig:      "InsertedPriorConfig",
	AttrFaulted:                  "Faulted",
	AttrPoweredOff:               "PoweredOff",
	AttrFaultLedOn:               "FaultLedOn",
	AttrMarked:                   "Marked",
	AttrTurnOnFaultLed:           "TurnOnFaultLed",
	AttrMarkComponent:            "MarkComponent",
	AttrStateChange:              "StateChange",
	AttrWriteData:                "WriteData",
	AttrWriteDataSent:            "WriteDataSent",
	AttrEmcEnclCtrlWriteData:     "EmcEnclCtrlWriteData",
	AttrEmcEnclCtrlWriteDataSent: "EmcEnclCtrlWriteDataSent",
	AttrStatusValid:              "StatusValid",
	AttrIsLocal:                  "IsLocal",
	AttrElemIndex:                "ElemIndex",
	AttrSubEnclID:                "SubEnclId",
	AttrContainerIndex:           "ContainerIndex",
	AttrSideID:                   "SideId",
	AttrAdditionalStatus:         "AdditionalStatus",
	AttrLocation:                 "Location",
	AttrUniqueID:                 "UniqueId",
	AttrSerialNumber:             "SerialNumber",
	AttrPartNumber:               "PartNumber",
	AttrProductID:                "ProductId",
	AttrCompFwInfo:               "CompFwInfo",
	AttrSASAddress:               "SasAddress",
	AttrPSACFail:                 "PsAcFail",
	AttrPSDCDetected:             "PsDcDetected",
	AttrPSSupported:              "PsSupported",
	AttrPSInputPower:             "PsInputPower",
	AttrPSInputPowerStatus:       "PsInputPowerStatus",
	AttrPSMarginTestMode:         "PsMarginTestMode",
	AttrCoolingMultiFanFault:     "CoolingMultiFanFault",
	AttrCoolingSubtype:           "CoolingSubtype",
	AttrCoolingFanSpeed:          "CoolingFanSpeed",
	AttrTempOTWarning:            "TempOtWarning",
	AttrTempOTFailure:            "TempOtFailure",
	AttrTempValid:                "TempValid",
	AttrTemperature:              "Temperature",
	AttrTempMax:                  "TempMax",
	AttrDriveSlotNumber:          "DriveSlotNumber",
	AttrDrivePhyIndex:            "DrivePhyIndex",
	AttrDriveBypassed:            "DriveBypassed",
	AttrDriveDeviceOff:           "DriveDeviceOff",
	AttrDriveLoggedIn:            "DriveLoggedIn",
	AttrPhyID:                    "PhyId",
	AttrPhyDisable:               "PhyDisable",
	AttrPhyReady:                 "PhyReady",
	AttrPhyLinkReady:             "PhyLinkReady",
	AttrPhyForceDisabled:         "PhyForceDisabled",
	AttrConnectorID:              "ConnectorId",
	AttrConnectorPhyIndex:        "ConnectorPhyIndex",
	AttrConnectorIsEntire:        "ConnectorIsEntire",
	AttrConnectorPrimaryPort:     "ConnectorPrimaryPort",
	AttrConnectorDegraded:        "ConnectorDegraded",
	AttrConnectorAttachedSAS:     "ConnectorAttachedSas",
	AttrEnclPosition:             "EnclPosition",
	AttrEnclAddress:              "EnclAddress",
	AttrEnclResetRideThru:        "EnclResetRideThru",
	AttrLCCExpFwInfo:             "LccExpFwInfo",
	AttrLCCBootFwInfo:            "LccBootFwInfo",
	AttrLCCInitFwInfo:            "LccInitFwInfo",
	AttrLCCFPGAFwInfo:            "LccFpgaFwInfo",
	AttrLCCFaultMasked:           "LccFaultMasked",
	AttrDisplayMode:              "DisplayMode",
	AttrDisplayModeStatus:        "DisplayModeStatus",
	AttrDisplayChar:              "DisplayChar",
	AttrDisplayCharStatus:        "DisplayCharStatus",
	AttrSPSStatus:                "SpsStatus",
	AttrSPSFaults:                "SpsFaults",
	AttrSPSSecondaryFwInfo:       "SpsSecondaryFwInfo",
	AttrSPSBatteryFwInfo:         "SpsBatteryFwInfo",
	AttrBatteryReady:             "BatteryReady",
	AttrBatteryEnergyReq:         "BatteryEnergyReq",
	AttrIOPortCount:              "IoPortCount",
	AttrIOPortRole:               "IoPortRole",
	AttrIOPortProtocol:           "IoPortProtocol",
	AttrMgmtVLANMode:             "MgmtVlanMode",
	AttrMgmtPortSpeed:            "MgmtPortSpeed",
	AttrPlatformType:             "PlatformType",
	AttrMiscEngineIDFault:        "MiscEngineIdFault",
	AttrFltRegAnyFaults:          "FltRegAnyFaults",
	AttrSlavePortStatus:          "SlavePortStatus",
	AttrSuitcaseShutdownWarn:     "SuitcaseShutdownWarn",
	AttrSuitcaseAmbientOT:        "SuitcaseAmbientOt",
	AttrBMCShutdownWarn:          "BmcShutdownWarn",
	AttrResumePromStatus:         "ResumePromStatus",
	AttrDIMMSize:                 "DimmSize",
	AttrSSDRemainingLife:         "SsdRemainingLife",
}

func (a Attribute) String() string {
	if a < attrCount {
		return attributeNames[a]
	}
	return fmt.Sprintf("attr(%d)", uint16(a))
}

// ParseAttribute resolves an attribute by its display name (case-insensitive).
func ParseAttribute(s string) (Attribute, error) {
	for i, n := range attributeNames {
		if i != int(AttrInvalid) && strings.EqualFold(n, s) {
			return Attribute(i), nil
		}
	}
	return AttrInvalid, fmt.Errorf("edal: unknown attribute %q", s)
}
