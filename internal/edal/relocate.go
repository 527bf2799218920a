// internal/edal/relocate.go
package edal

import (
	"encoding/binary"
	"log/slog"
)

// ------------------------------------------------------------
// IMAGE LAYOUT
// ------------------------------------------------------------
//
// An image is the chain laid out contiguously, one block per blockSize
// bytes, little-endian. Each block is:
//
//   header       BlockHeaderSize bytes
//   descriptors  maxTypes * DescriptorSize bytes (unused slots zero)
//   records      descriptor order, Count * RecordSize each
//   free space   zero
//
// The header next field is the byte offset of the successor within the
// image; 0 terminates the chain.

const (
	offCanary     = 0
	offSize       = 4
	offEnclosure  = 8
	offNumTypes   = 10
	offMaxTypes   = 11
	offStateCount = 12
	offGeneration = 16
	offLocale     = 20
	offVersion    = 21
	offNext       = 24
	offFree       = 28

	dOffType       = 0
	dOffStatus     = 1
	dOffFirst      = 4
	dOffCount      = 6
	dOffRecordSize = 8
	dOffStateCount = 12
)

var le = binary.LittleEndian

// ImageSize is the number of bytes Encode produces.
func (c *Chain) ImageSize() int {
	return len(c.blocks) * c.blockSize
}

// Encode lays the chain out as a flat image.
func (c *Chain) Encode() ([]byte, error) {
	if err := c.checkHead(); err != nil {
		return nil, err
	}
	buf := make([]byte, c.ImageSize())
	n, err := c.CopyTo(buf)
	return buf[:n], err
}

// CopyTo copies the chain into buf block by block and returns the bytes
// used. When buf runs out the copied prefix is terminated at its last
// whole block and ErrInsufficientResource is returned.
func (c *Chain) CopyTo(buf []byte) (int, error) {
	if err := c.checkHead(); err != nil {
		return 0, err
	}
	if buf == nil {
		return 0, ErrNullReturn
	}

	off := 0
	for i, b := range c.blocks {
		if err := checkBlock(b, c.log); err != nil {
			return off, err
		}
		if off+b.size > len(buf) {
			if i > 0 {
				le.PutUint32(buf[off-c.blockSize+offNext:], 0)
			}
			c.log.Warn("edal: copy buffer exhausted",
				"blocks", len(c.blocks),
				"copied", i,
				"buffer", len(buf),
			)
			return off, ErrInsufficientResource
		}

		next := 0
		if i+1 < len(c.blocks) {
			next = off + b.size
		}
		encodeBlock(buf[off:off+b.size], b, next)
		off += b.size
	}
	return off, nil
}

func encodeBlock(dst []byte, b *block, next int) {
	clear(dst)
	le.PutUint32(dst[offCanary:], b.canary)
	le.PutUint32(dst[offSize:], uint32(b.size))
	le.PutUint16(dst[offEnclosure:], uint16(b.enclosure))
	dst[offNumTypes] = uint8(len(b.descs))
	dst[offMaxTypes] = uint8(b.maxTypes)
	le.PutUint32(dst[offStateCount:], b.stateChangeCount)
	le.PutUint32(dst[offGeneration:], b.generation)
	dst[offLocale] = b.locale
	dst[offVersion] = ImageVersion
	le.PutUint32(dst[offNext:], uint32(next))
	le.PutUint32(dst[offFree:], uint32(b.freeSpace))

	rec := BlockHeaderSize + b.maxTypes*DescriptorSize
	for i, d := range b.descs {
		p := dst[BlockHeaderSize+i*DescriptorSize:]
		p[dOffType] = uint8(d.Type)
		p[dOffStatus] = uint8(d.Status)
		le.PutUint16(p[dOffFirst:], uint16(d.First))
		le.PutUint16(p[dOffCount:], uint16(d.Count))
		le.PutUint16(p[dOffRecordSize:], uint16(d.RecordSize))
		le.PutUint32(p[dOffStateCount:], d.StateChangeCount)
		rec += copy(dst[rec:], d.data)
	}
}

// RepairImage rewrites every next field of a contiguous image from the
// declared block sizes. Only the presence of a successor is trusted.
func RepairImage(buf []byte) error {
	if buf == nil {
		return ErrNullBlock
	}
	off := 0
	for {
		if off+BlockHeaderSize > len(buf) {
			return ErrInsufficientResource
		}
		if le.Uint32(buf[off+offCanary:]) != BlockCanary {
			return ErrInvalidBlockCanary
		}
		if le.Uint32(buf[off+offNext:]) == 0 {
			return nil
		}
		size := int(le.Uint32(buf[off+offSize:]))
		if size < BlockHeaderSize {
			return ErrSizeMismatch
		}
		next := off + size
		if next+BlockHeaderSize > len(buf) {
			le.PutUint32(buf[off+offNext:], 0)
			return ErrInsufficientResource
		}
		le.PutUint32(buf[off+offNext:], uint32(next))
		off = next
	}
}

// Decode rebuilds a chain from an image. Instance canaries are kept
// as found so corruption surfaces on access.
func Decode(buf []byte, opts ...Option) (*Chain, error) {
	if len(buf) < BlockHeaderSize {
		return nil, ErrNullBlock
	}
	if le.Uint32(buf[offCanary:]) != BlockCanary {
		return nil, ErrInvalidBlockCanary
	}
	enclosure := EnclosureType(le.Uint16(buf[offEnclosure:]))
	blockSize := int(le.Uint32(buf[offSize:]))
	maxTypes := int(buf[offMaxTypes])

	c, err := NewChain(enclosure, blockSize, maxTypes, opts...)
	if err != nil {
		return nil, err
	}
	c.blocks = c.blocks[:0]

	off := 0
	for {
		if off+blockSize > len(buf) {
			return nil, ErrInsufficientResource
		}
		b, next, err := decodeBlock(buf[off:off+blockSize], c.family)
		if err != nil {
			c.log.Error("edal: image decode failed", "offset", off, "err", err)
			return nil, err
		}
		if b.enclosure != enclosure || b.size != blockSize || b.maxTypes != maxTypes {
			return nil, ErrSizeMismatch
		}
		c.blocks = append(c.blocks, b)
		if next == 0 {
			return c, nil
		}
		if next <= off {
			return nil, ErrGeneric
		}
		off = next
	}
}

func decodeBlock(src []byte, fam Family) (*block, int, error) {
	b := &block{
		canary:           le.Uint32(src[offCanary:]),
		size:             int(le.Uint32(src[offSize:])),
		enclosure:        EnclosureType(le.Uint16(src[offEnclosure:])),
		maxTypes:         int(src[offMaxTypes]),
		stateChangeCount: le.Uint32(src[offStateCount:]),
		generation:       le.Uint32(src[offGeneration:]),
		locale:           src[offLocale],
		freeSpace:        int(le.Uint32(src[offFree:])),
	}
	if b.canary != BlockCanary {
		return nil, 0, ErrInvalidBlockCanary
	}
	if src[offVersion] != ImageVersion {
		return nil, 0, ErrGeneric
	}
	n := int(src[offNumTypes])
	if n > b.maxTypes {
		return nil, 0, ErrSizeMismatch
	}

	rec := BlockHeaderSize + b.maxTypes*DescriptorSize
	if rec > len(src) {
		return nil, 0, ErrSizeMismatch
	}
	for i := 0; i < n; i++ {
		p := src[BlockHeaderSize+i*DescriptorSize:]
		d := &Descriptor{
			Type:             ComponentType(p[dOffType]),
			Status:           OverallStatus(p[dOffStatus]),
			First:            int(le.Uint16(p[dOffFirst:])),
			Count:            int(le.Uint16(p[dOffCount:])),
			RecordSize:       int(le.Uint16(p[dOffRecordSize:])),
			StateChangeCount: le.Uint32(p[dOffStateCount:]),
		}
		l := fam.Layout(d.Type)
		if l == nil {
			return nil, 0, ErrTypeUnsupported
		}
		if d.RecordSize != l.Size() {
			return nil, 0, ErrSizeMismatch
		}
		size := d.Count * d.RecordSize
		if rec+size > len(src) {
			return nil, 0, ErrSizeMismatch
		}
		d.data = make([]byte, size)
		copy(d.data, src[rec:rec+size])
		rec += size
		b.descs = append(b.descs, d)
	}
	if b.size-rec != b.freeSpace {
		return nil, 0, ErrSizeMismatch
	}
	return b, int(le.Uint32(src[offNext:])), nil
}

// ------------------------------------------------------------
// BACKUP
// ------------------------------------------------------------

// Backup copies the generation count and then the used part of each
// block (descriptors and records) into dst, which must have the same
// shape. Block headers other than the generation are left alone.
func (c *Chain) Backup(dst *Chain) error {
	if err := c.checkHead(); err != nil {
		return err
	}
	if err := dst.checkHead(); err != nil {
		return err
	}
	if dst.enclosure != c.enclosure || dst.blockSize != c.blockSize || dst.maxTypes != c.maxTypes {
		return ErrSizeMismatch
	}
	if len(dst.blocks) < len(c.blocks) {
		return ErrInsufficientResource
	}

	dst.blocks[0].generation = c.blocks[0].generation
	for i, b := range c.blocks {
		d := dst.blocks[i]
		if err := checkBlock(b, c.log); err != nil {
			return err
		}
		if err := checkBlock(d, dst.log); err != nil {
			return err
		}
		d.descs = make([]*Descriptor, len(b.descs))
		for j, desc := range b.descs {
			d.descs[j] = desc.clone()
		}
		d.freeSpace = b.freeSpace
	}
	return nil
}

// NewBackup creates an empty chain shaped like c, ready for Backup.
func (c *Chain) NewBackup() (*Chain, error) {
	if err := c.checkHead(); err != nil {
		return nil, err
	}
	dst, err := NewChain(c.enclosure, c.blockSize, c.maxTypes, WithLogger(c.log))
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(c.blocks); i++ {
		if err := dst.AppendBlock(); err != nil {
			return nil, err
		}
	}
	loc, _ := c.Locale()
	if err := dst.SetLocale(loc); err != nil {
		return nil, err
	}
	return dst, nil
}

// Logger exposes the diagnostics sink.
func (c *Chain) Logger() *slog.Logger {
	return c.log
}
