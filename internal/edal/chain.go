// internal/edal/chain.go
package edal

import (
	"log/slog"
)

// Chain is the ordered arena of blocks describing one enclosure.
// A chain has exactly one owner; nothing here locks.
type Chain struct {
	enclosure EnclosureType
	family    Family
	blockSize int
	maxTypes  int
	blocks    []*block
	log       *slog.Logger
}

// Option configures a chain at construction.
type Option func(*Chain)

// WithLogger routes EDAL diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Chain) {
		if l != nil {
			c.log = l
		}
	}
}

// NewChain creates a chain holding one empty head block.
func NewChain(enclosure EnclosureType, blockSize, maxTypes int, opts ...Option) (*Chain, error) {
	fam, err := FamilyFor(enclosure)
	if err != nil {
		return nil, err
	}
	if maxTypes <= 0 || maxTypes > 255 {
		return nil, ErrGeneric
	}
	if blockSize < BlockHeaderSize+maxTypes*DescriptorSize {
		return nil, ErrInsufficientResource
	}

	c := &Chain{
		enclosure: enclosure,
		family:    fam,
		blockSize: blockSize,
		maxTypes:  maxTypes,
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	c.blocks = append(c.blocks, newBlock(blockSize, enclosure, maxTypes))
	return c, nil
}

// SetLogger replaces the diagnostics sink, e.g. after Decode.
func (c *Chain) SetLogger(l *slog.Logger) {
	if c != nil && l != nil {
		c.log = l
	}
}

func (c *Chain) Enclosure() EnclosureType { return c.enclosure }
func (c *Chain) Family() Family           { return c.family }
func (c *Chain) BlockSize() int           { return c.blockSize }
func (c *Chain) MaxTypes() int            { return c.maxTypes }
func (c *Chain) Len() int                 { return len(c.blocks) }

// ------------------------------------------------------------
// BLOCK MANAGEMENT
// ------------------------------------------------------------

// AppendBlock links a new empty block at the tail.
func (c *Chain) AppendBlock() error {
	if err := c.checkHead(); err != nil {
		return err
	}
	b := newBlock(c.blockSize, c.enclosure, c.maxTypes)
	b.locale = c.blocks[0].locale
	c.blocks = append(c.blocks, b)
	return nil
}

// DropTailBlock unlinks the tail block. The head block is never dropped.
func (c *Chain) DropTailBlock() error {
	if err := c.checkHead(); err != nil {
		return err
	}
	if len(c.blocks) < 2 {
		return ErrGeneric
	}
	c.blocks[len(c.blocks)-1] = nil
	c.blocks = c.blocks[:len(c.blocks)-1]
	return nil
}

// CanComponentFit reports whether a single record of ct fits an empty block.
func (c *Chain) CanComponentFit(ct ComponentType) bool {
	l := c.family.Layout(ct)
	if l == nil {
		return false
	}
	return l.Size() <= c.blockSize-BlockHeaderSize-c.maxTypes*DescriptorSize
}

// FitComponent reserves count records of ct, splitting them across
// blocks in chain order. New records carry a valid canary and header
// defaults; new descriptors start with OverallOK.
func (c *Chain) FitComponent(ct ComponentType, count int) error {
	if err := c.checkHead(); err != nil {
		return err
	}
	if count < 0 {
		return ErrGeneric
	}
	l := c.family.Layout(ct)
	if l == nil {
		return ErrTypeUnsupported
	}
	size := l.Size()

	capacity, slot := 0, false
	for _, b := range c.blocks {
		if b.descriptor(ct) != nil {
			c.log.Error("edal: component type already placed", "type", ct.String())
			return ErrGeneric
		}
		if r := b.room(size); r >= 0 {
			slot = true
			capacity += r
		}
	}
	if !slot || capacity < count {
		return ErrInsufficientResource
	}

	if count == 0 {
		for _, b := range c.blocks {
			if b.room(size) >= 0 {
				b.descs = append(b.descs, &Descriptor{Type: ct, RecordSize: size})
				return nil
			}
		}
	}

	first := 0
	for _, b := range c.blocks {
		if first == count {
			break
		}
		r := b.room(size)
		if r <= 0 {
			continue
		}
		n := min(r, count-first)
		d := &Descriptor{
			Type:       ct,
			First:      first,
			Count:      n,
			RecordSize: size,
			Status:     OverallOK,
			data:       make([]byte, n*size),
		}
		for i := 0; i < n; i++ {
			l.initRecord(d.record(i))
		}
		b.descs = append(b.descs, d)
		b.freeSpace -= n * size
		first += n
	}
	return nil
}

// Clone deep-copies the arena. The copy shares the logger.
func (c *Chain) Clone() *Chain {
	cp := *c
	cp.blocks = make([]*block, len(c.blocks))
	for i, b := range c.blocks {
		nb := *b
		nb.descs = make([]*Descriptor, len(b.descs))
		for j, d := range b.descs {
			nb.descs[j] = d.clone()
		}
		cp.blocks[i] = &nb
	}
	return &cp
}

// ------------------------------------------------------------
// RESOLUTION
// ------------------------------------------------------------

func (c *Chain) checkHead() error {
	if c == nil || len(c.blocks) == 0 {
		return ErrNullBlock
	}
	return checkBlock(c.blocks[0], c.log)
}

// locate finds the block and local index holding the chain-wide
// instance idx of ct.
func (c *Chain) locate(ct ComponentType, idx int) (*Descriptor, int, error) {
	found := false
	for _, b := range c.blocks {
		if err := checkBlock(b, c.log); err != nil {
			return nil, 0, err
		}
		d := b.descriptor(ct)
		if d == nil {
			continue
		}
		found = true
		if idx >= d.First && idx < d.First+d.Count {
			return d, idx - d.First, nil
		}
	}
	if !found {
		return nil, 0, ErrComponentNotFound
	}
	return nil, 0, ErrIndexInvalid
}

// SpecificComponent resolves instance idx of ct anywhere in the chain.
func (c *Chain) SpecificComponent(ct ComponentType, idx int) (Component, error) {
	if err := c.checkHead(); err != nil {
		return Component{}, err
	}
	l := c.family.Layout(ct)
	if l == nil {
		c.log.Debug("edal: component type unsupported by family",
			"type", ct.String(),
			"family", c.family.Name(),
		)
		return Component{}, ErrTypeUnsupported
	}
	if idx < 0 {
		return Component{}, ErrIndexInvalid
	}
	d, local, err := c.locate(ct, idx)
	if err != nil {
		return Component{}, err
	}
	return validateComponent(d.record(local), ct, l, c.log)
}

// BlockComponent resolves instance idx of ct inside block blk only.
// idx is relative to that block's descriptor; the chain is not followed.
func (c *Chain) BlockComponent(blk int, ct ComponentType, idx int) (Component, error) {
	if err := c.checkHead(); err != nil {
		return Component{}, err
	}
	if blk < 0 || blk >= len(c.blocks) {
		return Component{}, ErrNullBlock
	}
	b := c.blocks[blk]
	if err := checkBlock(b, c.log); err != nil {
		return Component{}, err
	}
	l := c.family.Layout(ct)
	if l == nil {
		return Component{}, ErrTypeUnsupported
	}
	d := b.descriptor(ct)
	if d == nil {
		return Component{}, ErrComponentNotFound
	}
	if idx < 0 || idx >= d.Count {
		return Component{}, ErrIndexInvalid
	}
	return validateComponent(d.record(idx), ct, l, c.log)
}

// SpecificComponentCount sums the instances of ct over every block.
// A type placed nowhere counts 0.
func (c *Chain) SpecificComponentCount(ct ComponentType) (int, error) {
	if err := c.checkHead(); err != nil {
		return 0, err
	}
	n := 0
	for _, b := range c.blocks {
		if err := checkBlock(b, c.log); err != nil {
			return 0, err
		}
		if d := b.descriptor(ct); d != nil {
			n += d.Count
		}
	}
	return n, nil
}

// NumberOfComponentTypes counts the descriptors of the head block.
func (c *Chain) NumberOfComponentTypes() (int, error) {
	if err := c.checkHead(); err != nil {
		return 0, err
	}
	return len(c.blocks[0].descs), nil
}

// ComponentTypeAt returns the type of head-block descriptor i.
func (c *Chain) ComponentTypeAt(i int) (ComponentType, error) {
	if err := c.checkHead(); err != nil {
		return TypeInvalid, err
	}
	if i < 0 || i >= len(c.blocks[0].descs) {
		return TypeInvalid, ErrIndexInvalid
	}
	return c.blocks[0].descs[i].Type, nil
}

// ComponentTypes lists every type placed anywhere in the chain, in
// first-seen chain order.
func (c *Chain) ComponentTypes() ([]ComponentType, error) {
	if err := c.checkHead(); err != nil {
		return nil, err
	}
	seen := make(map[ComponentType]bool)
	var out []ComponentType
	for _, b := range c.blocks {
		if err := checkBlock(b, c.log); err != nil {
			return nil, err
		}
		for _, d := range b.descs {
			if !seen[d.Type] {
				seen[d.Type] = true
				out = append(out, d.Type)
			}
		}
	}
	return out, nil
}

// Descriptors returns copies of the descriptors of block blk.
func (c *Chain) Descriptors(blk int) ([]Descriptor, error) {
	if err := c.checkHead(); err != nil {
		return nil, err
	}
	if blk < 0 || blk >= len(c.blocks) {
		return nil, ErrNullBlock
	}
	b := c.blocks[blk]
	if err := checkBlock(b, c.log); err != nil {
		return nil, err
	}
	out := make([]Descriptor, len(b.descs))
	for i, d := range b.descs {
		out[i] = *d
		out[i].data = nil
	}
	return out, nil
}

// FreeSpace is the unused byte count of block blk.
func (c *Chain) FreeSpace(blk int) (int, error) {
	if err := c.checkHead(); err != nil {
		return 0, err
	}
	if blk < 0 || blk >= len(c.blocks) {
		return 0, ErrNullBlock
	}
	return c.blocks[blk].freeSpace, nil
}

// EnclosureSide is the side id of enclosure instance 0.
func (c *Chain) EnclosureSide() (uint8, error) {
	return c.GetU8(AttrSideID, TypeEnclosure, 0)
}
