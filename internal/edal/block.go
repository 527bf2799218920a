// internal/edal/block.go
package edal

// Fixed image geometry, stable for ImageVersion.
const (
	BlockHeaderSize     = 32
	DescriptorSize      = 16
	ComponentHeaderSize = 16
	ImageVersion        = 1
)

// Descriptor describes one component type held by a block.
type Descriptor struct {
	Type             ComponentType
	First            int // chain-wide index of the first record held here
	Count            int
	RecordSize       int
	Status           OverallStatus
	StateChangeCount uint32

	data []byte
}

func (d *Descriptor) record(local int) []byte {
	off := local * d.RecordSize
	return d.data[off : off+d.RecordSize : off+d.RecordSize]
}

func (d *Descriptor) clone() *Descriptor {
	cp := *d
	cp.data = make([]byte, len(d.data))
	copy(cp.data, d.data)
	return &cp
}

// block is one fixed-capacity region of the chain arena.
// Its successor is the next arena slot.
type block struct {
	canary           uint32
	size             int
	enclosure        EnclosureType
	maxTypes         int
	stateChangeCount uint32
	generation       uint32
	locale           uint8
	freeSpace        int

	descs []*Descriptor
}

func newBlock(size int, enclosure EnclosureType, maxTypes int) *block {
	return &block{
		canary:    BlockCanary,
		size:      size,
		enclosure: enclosure,
		maxTypes:  maxTypes,
		freeSpace: size - BlockHeaderSize - maxTypes*DescriptorSize,
	}
}

func (b *block) descriptor(ct ComponentType) *Descriptor {
	for _, d := range b.descs {
		if d.Type == ct {
			return d
		}
	}
	return nil
}

// room is how many records of recSize this block can still take,
// or -1 when it has no free descriptor slot.
func (b *block) room(recSize int) int {
	if len(b.descs) >= b.maxTypes {
		return -1
	}
	if recSize <= 0 {
		return 0
	}
	return b.freeSpace / recSize
}

// used is the size of the descriptor table and records.
func (b *block) used() int {
	return b.size - BlockHeaderSize - b.freeSpace
}
