// internal/edal/types.go
package edal

import (
	"fmt"
	"strings"
)

// ------------------------------------------------------------
// COMPONENT TYPES
// ------------------------------------------------------------

// ComponentType tags a category of hardware element.
type ComponentType uint8

const (
	TypeInvalid ComponentType = iota
	TypePowerSupply
	TypeCooling
	TypeMgmtModule
	TypeDriveSlot
	TypeTempSensor
	TypeConnector
	TypeExpander
	TypeExpanderPhy
	TypeEnclosure
	TypeLCC
	TypeDisplay
	TypeIOModule
	TypeIOPort
	TypeBEM
	TypeMezzanine
	TypePlatform
	TypeMisc
	TypeFltReg
	TypeSlavePort
	TypeSuitcase
	TypeBMC
	TypeTemperature
	TypeSPS
	TypeBattery
	TypeResumeProm
	TypeCacheCard
	TypeDIMM
	TypeSSC
	TypeSSD

	typeCount
)

var componentTypeNames = [...]string{
	TypeInvalid:     "Invalid Component",
	TypePowerSupply: "Power Supply",
	TypeCooling:     "Cooling Component",
	TypeMgmtModule:  "Management Module",
	TypeDriveSlot:   "Drive Slot",
	TypeTempSensor:  "Temp Sensor",
	TypeConnector:   "Connector",
	TypeExpander:    "Expander",
	TypeExpanderPhy: "Exp PHY",
	TypeEnclosure:   "Enclosure",
	TypeLCC:         "LCC",
	TypeDisplay:     "Display",
	TypeIOModule:    "IO Module",
	TypeIOPort:      "IO Port",
	TypeBEM:         "Base Module",
	TypeMezzanine:   "Mezzanine",
	TypePlatform:    "Platform",
	TypeMisc:        "Misc",
	TypeFltReg:      "FltReg",
	TypeSlavePort:   "SlavePort",
	TypeSuitcase:    "Suitcase",
	TypeBMC:         "BMC",
	TypeTemperature: "Temperature",
	TypeSPS:         "SPS",
	TypeBattery:     "Battery",
	TypeResumeProm:  "ResumeProm",
	TypeCacheCard:   "Cache Card",
	TypeDIMM:        "DIMM",
	TypeSSC:         "SSC",
	TypeSSD:         "SSD",
}

// configuration keys for ParseComponentType
var componentTypeKeys = map[string]ComponentType{
	"power_supply": TypePowerSupply,
	"cooling":      TypeCooling,
	"mgmt_module":  TypeMgmtModule,
	"drive_slot":   TypeDriveSlot,
	"temp_sensor":  TypeTempSensor,
	"connector":    TypeConnector,
	"expander":     TypeExpander,
	"expander_phy": TypeExpanderPhy,
	"enclosure":    TypeEnclosure,
	"lcc":          TypeLCC,
	"display":      TypeDisplay,
	"io_module":    TypeIOModule,
	"io_port":      TypeIOPort,
	"bem":          TypeBEM,
	"mezzanine":    TypeMezzanine,
	"platform":     TypePlatform,
	"misc":         TypeMisc,
	"flt_reg":      TypeFltReg,
	"slave_port":   TypeSlavePort,
	"suitcase":     TypeSuitcase,
	"bmc":          TypeBMC,
	"temperature":  TypeTemperature,
	"sps":          TypeSPS,
	"battery":      TypeBattery,
	"resume_prom":  TypeResumeProm,
	"cache_card":   TypeCacheCard,
	"dimm":         TypeDIMM,
	"ssc":          TypeSSC,
	"ssd":          TypeSSD,
}

func (t ComponentType) String() string {
	if t < typeCount {
		return componentTypeNames[t]
	}
	return "Unknown Component"
}

// ParseComponentType resolves a configuration key such as "power_supply".
func ParseComponentType(s string) (ComponentType, error) {
	if t, ok := componentTypeKeys[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return TypeInvalid, fmt.Errorf("edal: unknown component type %q", s)
}

// ------------------------------------------------------------
// ENCLOSURE TYPES
// ------------------------------------------------------------

// EnclosureType is the hardware-family tag stored in every block header.
type EnclosureType uint16

const (
	EnclosureInvalid EnclosureType = iota
	EnclosurePE
	EnclosureCitadel
	EnclosureBunker
	EnclosureDerringer
	EnclosureViper
	EnclosureMagnum
	EnclosureFallback
	EnclosureBoxwood
	EnclosureKnot
	EnclosurePinecone
	EnclosureSteeljaw
	EnclosureRamhorn
	EnclosureAncho
	EnclosureVoyagerICM
	EnclosureVoyagerEE
	EnclosureVikingIOSXP
	EnclosureVikingDRVSXP
	EnclosureCayenneIOSXP
	EnclosureCayenneDRVSXP
	EnclosureNagaIOSXP
	EnclosureNagaDRVSXP
	EnclosureTabasco
	EnclosureCalypso
	EnclosureMiranda
	EnclosureRhea

	enclosureCount
)

var enclosureNames = [...]string{
	EnclosureInvalid:       "invalid",
	EnclosurePE:            "pe",
	EnclosureCitadel:       "citadel",
	EnclosureBunker:        "bunker",
	EnclosureDerringer:     "derringer",
	EnclosureViper:         "viper",
	EnclosureMagnum:        "magnum",
	EnclosureFallback:      "fallback",
	EnclosureBoxwood:       "boxwood",
	EnclosureKnot:          "knot",
	EnclosurePinecone:      "pinecone",
	EnclosureSteeljaw:      "steeljaw",
	EnclosureRamhorn:       "ramhorn",
	EnclosureAncho:         "ancho",
	EnclosureVoyagerICM:    "voyager_icm",
	EnclosureVoyagerEE:     "voyager_ee",
	EnclosureVikingIOSXP:   "viking_iosxp",
	EnclosureVikingDRVSXP:  "viking_drvsxp",
	EnclosureCayenneIOSXP:  "cayenne_iosxp",
	EnclosureCayenneDRVSXP: "cayenne_drvsxp",
	EnclosureNagaIOSXP:     "naga_iosxp",
	EnclosureNagaDRVSXP:    "naga_drvsxp",
	EnclosureTabasco:       "tabasco",
	EnclosureCalypso:       "calypso",
	EnclosureMiranda:       "miranda",
	EnclosureRhea:          "rhea",
}

func (e EnclosureType) String() string {
	if e < enclosureCount {
		return enclosureNames[e]
	}
	return fmt.Sprintf("enclosure(%d)", uint16(e))
}

// ParseEnclosureType resolves a configuration key such as "viper".
func ParseEnclosureType(s string) (EnclosureType, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	for i, n := range enclosureNames {
		if i != int(EnclosureInvalid) && n == k {
			return EnclosureType(i), nil
		}
	}
	return EnclosureInvalid, fmt.Errorf("edal: unknown enclosure type %q", s)
}

// ------------------------------------------------------------
// OVERALL STATUS
// ------------------------------------------------------------

// OverallStatus is the aggregate status a descriptor carries for its type.
type OverallStatus uint8

const (
	OverallOK OverallStatus = iota
	OverallWriteNeeded
	OverallFailed
)

func (s OverallStatus) String() string {
	switch s {
	case OverallOK:
		return "OK"
	case OverallWriteNeeded:
		return "WRITE_NEEDED"
	case OverallFailed:
		return "FAILED"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}
