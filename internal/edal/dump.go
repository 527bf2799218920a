// internal/edal/dump.go
package edal

import (
	"bytes"
	"fmt"
	"io"
)

// Dump prints the chain: block headers, descriptors and every record.
// Records with a bad canary are reported and skipped.
func (c *Chain) Dump(w io.Writer) error {
	if err := c.checkHead(); err != nil {
		return err
	}
	p := &printer{w: w}

	p.printf("EDAL chain: enclosure=%s family=%q blocks=%d blockSize=%d\n",
		c.enclosure, c.family.Name(), len(c.blocks), c.blockSize)

	for bi, b := range c.blocks {
		if err := checkBlock(b, c.log); err != nil {
			p.printf("block %d: %v\n", bi, err)
			return err
		}
		p.printf("block %d: types=%d/%d free=%d stateChanges=%d generation=%d locale=%d\n",
			bi, len(b.descs), b.maxTypes, b.freeSpace, b.stateChangeCount, b.generation, b.locale)

		for _, d := range b.descs {
			p.printf("  %s: first=%d count=%d size=%d status=%s stateChanges=%d\n",
				d.Type, d.First, d.Count, d.RecordSize, d.Status, d.StateChangeCount)

			l := c.family.Layout(d.Type)
			for i := 0; i < d.Count; i++ {
				comp, err := validateComponent(d.record(i), d.Type, l, c.log)
				if err != nil {
					p.printf("    [%d] %v\n", d.First+i, err)
					continue
				}
				p.printf("    [%d] %s\n", d.First+i, formatComponent(comp))
			}
		}
	}
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func formatComponent(comp Component) string {
	var sb bytes.Buffer

	flags := comp.flags()
	for _, a := range []Attribute{
		AttrInserted, AttrFaulted, AttrPoweredOff, AttrFaultLedOn, AttrMarked,
		AttrIsLocal, AttrStateChange, AttrWriteData, AttrWriteDataSent, AttrStatusValid,
	} {
		if flags&headerFlags[a] != 0 {
			fmt.Fprintf(&sb, "%s ", a)
		}
	}
	fmt.Fprintf(&sb, "side=%d container=%d", comp.rec[hdrSideID], comp.rec[hdrContainerIndex])

	for _, a := range comp.layout.order {
		f := comp.layout.fields[a]
		raw := comp.rec[f.off : f.off+f.size]
		switch f.kind {
		case KindBool:
			fmt.Fprintf(&sb, " %s=%t", a, raw[0] != 0)
		case KindStr:
			fmt.Fprintf(&sb, " %s=%q", a, string(bytes.TrimRight(raw, "\x00")))
		case KindBuffer:
			fmt.Fprintf(&sb, " %s=%x", a, bytes.TrimRight(raw, "\x00"))
		default:
			fmt.Fprintf(&sb, " %s=%d", a, getUint(raw))
		}
	}
	return sb.String()
}
