// internal/edal/canary.go
package edal

import (
	"encoding/binary"
	"log/slog"
)

// Integrity tags. A block or record whose tag differs is never trusted.
const (
	BlockCanary     uint32 = 0x4C414445 // "EDAL"
	ComponentCanary uint32 = 0x504D4F43 // "COMP"
)

// Header sentinels.
const (
	ContainerSelfContained uint8 = 0xFE
	SideMidplane           uint8 = 0x1F
	InvalidIndex           uint8 = 0xFF
)

// checkBlock is the first check of every chain operation.
func checkBlock(b *block, log *slog.Logger) error {
	if b == nil {
		return ErrNullBlock
	}
	if b.canary != BlockCanary {
		log.Error("edal: invalid block canary",
			"expected", BlockCanary,
			"actual", b.canary,
		)
		return ErrInvalidBlockCanary
	}
	return nil
}

// validateComponent is the only constructor of Component.
func validateComponent(rec []byte, ct ComponentType, l *Layout, log *slog.Logger) (Component, error) {
	if rec == nil {
		return Component{}, ErrNullComponentData
	}
	if got := binary.LittleEndian.Uint32(rec[0:4]); got != ComponentCanary {
		log.Error("edal: invalid component canary",
			"type", ct.String(),
			"expected", ComponentCanary,
			"actual", got,
		)
		return Component{}, ErrInvalidComponentCanary
	}
	return Component{rec: rec, ct: ct, layout: l, log: log}, nil
}
