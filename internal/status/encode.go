// internal/status/encode.go
package status

import (
	"bytes"
	"fmt"
)

// Encode converts a Snapshot and name into a full status block.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot, name string) []uint16 {
	regs := make([]uint16, SlotsPerBlock)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotSecondsInError] = s.SecondsInError
	regs[SlotGenerationHi] = uint16(s.Generation >> 16)
	regs[SlotGenerationLo] = uint16(s.Generation)
	regs[SlotImageLenHi] = uint16(s.ImageLength >> 16)
	regs[SlotImageLenLo] = uint16(s.ImageLength)
	regs[SlotStateChanges] = s.StateChanges

	// Reserved slots stay zero.

	copy(regs[SlotNameStart:SlotNameEnd+1], EncodeName(name))
	return regs
}

// Decode is the inverse of Encode.
func Decode(regs []uint16) (Snapshot, string, error) {
	if len(regs) < SlotsPerBlock {
		return Snapshot{}, "", fmt.Errorf("status: block has %d registers, want %d", len(regs), SlotsPerBlock)
	}

	s := Snapshot{
		Health:         regs[SlotHealthCode],
		LastErrorCode:  regs[SlotLastErrorCode],
		SecondsInError: regs[SlotSecondsInError],
		Generation:     uint32(regs[SlotGenerationHi])<<16 | uint32(regs[SlotGenerationLo]),
		ImageLength:    uint32(regs[SlotImageLenHi])<<16 | uint32(regs[SlotImageLenLo]),
		StateChanges:   regs[SlotStateChanges],
	}
	return s, DecodeName(regs[SlotNameStart : SlotNameEnd+1]), nil
}

// EncodeName packs up to 16 ASCII characters into the name slots.
// Non-printable bytes become '?'; unused bytes stay NUL.
func EncodeName(name string) []uint16 {
	b := make([]byte, NameMaxChars)
	n := copy(b, name)
	for i := range b[:n] {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}
	return PackBytes(b)
}

// DecodeName unpacks name registers, stopping at the first NUL.
func DecodeName(regs []uint16) string {
	b := UnpackBytes(regs, len(regs)*2)
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// ---- byte packing ----

// PackBytes stores two bytes per register, high byte first. An odd
// trailing byte is padded with zero. Names, chain images and register
// payloads on the wire all use this order.
func PackBytes(b []byte) []uint16 {
	out := make([]uint16, (len(b)+1)/2)
	for i := range out {
		out[i] = uint16(b[2*i]) << 8
		if 2*i+1 < len(b) {
			out[i] |= uint16(b[2*i+1])
		}
	}
	return out
}

// UnpackBytes is the inverse of PackBytes. The result is cut to n bytes
// when the registers carry more.
func UnpackBytes(regs []uint16, n int) []byte {
	out := make([]byte, 0, len(regs)*2)
	for _, r := range regs {
		out = append(out, byte(r>>8), byte(r))
	}
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
