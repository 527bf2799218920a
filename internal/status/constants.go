// internal/status/constants.go
package status

// Mirror status block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerBlock is the fixed number of registers in the status block.
// The chain image starts right after it.
const SlotsPerBlock = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the shadow health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the Code() of the last failure.
const SlotLastErrorCode = 1

// SlotSecondsInError holds the duration (in seconds) the shadow has been in error.
const SlotSecondsInError = 2

// SlotGenerationHi and SlotGenerationLo hold the chain generation count.
const (
	SlotGenerationHi = 3
	SlotGenerationLo = 4
)

// SlotImageLenHi and SlotImageLenLo hold the image length in bytes.
const (
	SlotImageLenHi = 5
	SlotImageLenLo = 6
)

// SlotStateChanges holds the low 16 bits of the overall state-change count.
const SlotStateChanges = 7

// ---- RESERVED RANGE ----

const SlotReservedStart = 8
const SlotReservedEnd = 11

// ---- ENCLOSURE NAME ----

// SlotNameStart is the first slot used for the enclosure name.
// The name is always placed at the END of the status block.
const SlotNameStart = 12

// SlotNameSlots is the number of slots reserved for the name.
const SlotNameSlots = 8

// SlotNameEnd is the last slot used for the name (inclusive).
const SlotNameEnd = SlotNameStart + SlotNameSlots - 1

// ---- LIMITS ----

// NameMaxChars is the maximum number of ASCII characters stored for the name.
const NameMaxChars = 16

// SecondsInErrorMax is where the seconds counter saturates.
const SecondsInErrorMax uint16 = 65535

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a healthy chain.
const HealthOK uint16 = 1

// HealthError represents a failed sweep or canary.
const HealthError uint16 = 2

// HealthStale represents a mirror that could not be refreshed.
const HealthStale uint16 = 3

// HealthWritePending represents a chain with unsent write data.
const HealthWritePending uint16 = 4
