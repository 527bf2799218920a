// internal/mirror/mirror.go
package mirror

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tamzrod/edal/internal/edal"
	"github.com/tamzrod/edal/internal/status"
)

// Protocol limits per request.
const (
	MaxWriteRegisters = 123
	MaxReadRegisters  = 125
)

// Config locates the mirror inside the peer memory.
type Config struct {
	UnitID      uint8
	BaseAddress uint16
	Name        string
}

// Mirror delivers the status block and chain image to a peer memory.
// The status block lives at BaseAddress, the image right after it.
type Mirror struct {
	cfg Config
	cli Client
	log *slog.Logger

	needFull bool
	last     status.Snapshot
	image    []uint16
	nameRegs []uint16
}

func New(cfg Config, cli Client, log *slog.Logger) (*Mirror, error) {
	if cli == nil {
		return nil, errors.New("mirror: client required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Mirror{
		cfg:      cfg,
		cli:      cli,
		log:      log,
		needFull: true, // full re-assert on first successful push
		nameRegs: status.EncodeName(cfg.Name),
	}, nil
}

func (m *Mirror) imageAddr() uint16 {
	return m.cfg.BaseAddress + status.SlotsPerBlock
}

// end is one past the last register used by an image of n registers.
func (m *Mirror) end(n int) int {
	return int(m.cfg.BaseAddress) + status.SlotsPerBlock + n
}

// Push delivers a snapshot and the encoded chain image.
// ImageLength is taken from the image. On any write failure the next
// successful call re-asserts the full status block and image.
func (m *Mirror) Push(s status.Snapshot, image []byte) error {
	s.ImageLength = uint32(len(image))
	regs := status.PackBytes(image)

	if end := m.end(len(regs)); end > 0x10000 {
		return fmt.Errorf("mirror: image of %d registers overruns the address space (end %d)", len(regs), end)
	}

	// ------------------------------------------------------------
	// Full write (identity re-assert)
	// ------------------------------------------------------------
	if m.needFull {
		block := status.Encode(s, "")
		copy(block[status.SlotNameStart:status.SlotNameEnd+1], m.nameRegs)
		if err := m.writeChunked(m.cfg.BaseAddress, block); err != nil {
			return fmt.Errorf("mirror: full status write failed: %w", err)
		}
		if err := m.writeChunked(m.imageAddr(), regs); err != nil {
			return fmt.Errorf("mirror: full image write failed: %w", err)
		}
		m.needFull = false
		m.last = s
		m.image = regs
		m.log.Debug("mirror re-asserted", "registers", status.SlotsPerBlock+len(regs))
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: changed runs only, name never rewritten
	// ------------------------------------------------------------
	var errs []error

	prevStatus := status.Encode(m.last, "")[:status.SlotNameStart]
	nextStatus := status.Encode(s, "")[:status.SlotNameStart]
	if err := m.writeRuns(m.cfg.BaseAddress, prevStatus, nextStatus); err != nil {
		errs = append(errs, fmt.Errorf("status: %w", err))
	}

	if len(m.image) != len(regs) {
		if err := m.writeChunked(m.imageAddr(), regs); err != nil {
			errs = append(errs, fmt.Errorf("image resize: %w", err))
		}
	} else if err := m.writeRuns(m.imageAddr(), m.image, regs); err != nil {
		errs = append(errs, fmt.Errorf("image: %w", err))
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt; re-assert on next success.
		m.needFull = true
		return fmt.Errorf("mirror: %w", errors.Join(errs...))
	}

	m.last = s
	m.image = regs
	return nil
}

// Invalidate forces the next Push to re-assert everything.
func (m *Mirror) Invalidate() {
	m.needFull = true
}

// Pull reads the status block and the image it describes.
func (m *Mirror) Pull() (status.Snapshot, string, []byte, error) {
	head, err := m.readChunked(m.cfg.BaseAddress, status.SlotsPerBlock)
	if err != nil {
		return status.Snapshot{}, "", nil, fmt.Errorf("mirror: status read failed: %w", err)
	}
	s, name, err := status.Decode(head)
	if err != nil {
		return status.Snapshot{}, "", nil, fmt.Errorf("mirror: %w", err)
	}

	n := (int(s.ImageLength) + 1) / 2
	if end := m.end(n); end > 0x10000 {
		return s, name, nil, fmt.Errorf("mirror: image length %d overruns the address space", s.ImageLength)
	}
	regs, err := m.readChunked(m.imageAddr(), n)
	if err != nil {
		return s, name, nil, fmt.Errorf("mirror: image read failed: %w", err)
	}
	return s, name, status.UnpackBytes(regs, int(s.ImageLength)), nil
}

// Restore pulls the image, repairs its block relations and decodes it.
func (m *Mirror) Restore(opts ...edal.Option) (*edal.Chain, status.Snapshot, error) {
	s, _, img, err := m.Pull()
	if err != nil {
		return nil, s, err
	}
	if len(img) == 0 {
		return nil, s, fmt.Errorf("mirror: no image published: %w", edal.ErrNullBlock)
	}
	if err := edal.RepairImage(img); err != nil {
		return nil, s, fmt.Errorf("mirror: repair: %w", err)
	}
	c, err := edal.Decode(img, opts...)
	if err != nil {
		return nil, s, fmt.Errorf("mirror: decode: %w", err)
	}
	return c, s, nil
}

// ---- transfer helpers ----

func (m *Mirror) writeChunked(addr uint16, regs []uint16) error {
	for off := 0; off < len(regs); off += MaxWriteRegisters {
		end := min(off+MaxWriteRegisters, len(regs))
		if err := m.cli.WriteRegisters(m.cfg.UnitID, addr+uint16(off), regs[off:end]); err != nil {
			return fmt.Errorf("write addr=%d qty=%d: %w", addr+uint16(off), end-off, err)
		}
	}
	return nil
}

func (m *Mirror) readChunked(addr uint16, qty int) ([]uint16, error) {
	out := make([]uint16, 0, qty)
	for off := 0; off < qty; off += MaxReadRegisters {
		n := min(MaxReadRegisters, qty-off)
		regs, err := m.cli.ReadRegisters(m.cfg.UnitID, addr+uint16(off), uint16(n))
		if err != nil {
			return nil, fmt.Errorf("read addr=%d qty=%d: %w", addr+uint16(off), n, err)
		}
		if len(regs) != n {
			return nil, fmt.Errorf("read addr=%d: got %d registers, want %d", addr+uint16(off), len(regs), n)
		}
		out = append(out, regs...)
	}
	return out, nil
}

// writeRuns writes each contiguous run of registers that differs.
func (m *Mirror) writeRuns(addr uint16, prev, next []uint16) error {
	var errs []error
	for i := 0; i < len(next); {
		if prev[i] == next[i] {
			i++
			continue
		}
		j := i
		for j < len(next) && prev[j] != next[j] {
			j++
		}
		if err := m.writeChunked(addr+uint16(i), next[i:j]); err != nil {
			errs = append(errs, err)
		}
		i = j
	}
	return errors.Join(errs...)
}
