// internal/config/build.go
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tamzrod/edal/internal/edal"
)

// Build materializes a chain from a validated, normalized configuration.
//
// Components are fitted in configuration order. When the chain runs out of
// room blocks are appended until the fit succeeds. Seed values do not
// count as state changes.
func Build(cfg *Config, log *slog.Logger) (*edal.Chain, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config: nil")
	}
	if log == nil {
		log = slog.Default()
	}
	e := cfg.Enclosure

	encl, err := edal.ParseEnclosureType(e.Type)
	if err != nil {
		return nil, err
	}

	chain, err := edal.NewChain(encl, e.BlockSize, e.MaxTypes, edal.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("enclosure %q: %w", e.Name, err)
	}

	for _, c := range e.Components {
		ct, err := edal.ParseComponentType(c.Type)
		if err != nil {
			return nil, err
		}
		if err := fit(chain, ct, c.Count); err != nil {
			return nil, fmt.Errorf("enclosure %q: fit %s x%d: %w", e.Name, c.Type, c.Count, err)
		}
		log.Debug("component fitted", "type", ct.String(), "count", c.Count, "blocks", chain.Len())

		for _, v := range c.Values {
			if err := seed(chain, ct, v); err != nil {
				return nil, fmt.Errorf("enclosure %q: %s[%d].%s: %w", e.Name, c.Type, v.Index, v.Attr, err)
			}
		}
	}

	if err := chain.SetLocale(e.Locale); err != nil {
		return nil, err
	}
	if err := chain.ClearStateChanges(); err != nil {
		return nil, err
	}
	return chain, nil
}

// fit appends blocks until ct fits. A record larger than an empty block
// can never fit and is reported without growing the chain.
func fit(chain *edal.Chain, ct edal.ComponentType, count int) error {
	if !chain.CanComponentFit(ct) {
		return edal.ErrInsufficientResource
	}
	for {
		err := chain.FitComponent(ct, count)
		if !errors.Is(err, edal.ErrInsufficientResource) {
			return err
		}
		if err := chain.AppendBlock(); err != nil {
			return err
		}
	}
}

func seed(chain *edal.Chain, ct edal.ComponentType, v ValueConfig) error {
	attr, err := edal.ParseAttribute(v.Attr)
	if err != nil {
		return err
	}
	comp, err := chain.SpecificComponent(ct, v.Index)
	if err != nil {
		return err
	}
	kind, ok := comp.Layout().KindOf(attr)
	if !ok {
		return edal.ErrAttributeNotFound
	}

	switch kind {
	case edal.KindBool:
		b, err := strconv.ParseBool(v.Value)
		if err != nil {
			return err
		}
		return comp.SetBool(attr, b)

	case edal.KindU8, edal.KindU16, edal.KindU32, edal.KindU64:
		n, err := strconv.ParseUint(v.Value, 0, kindBits(kind))
		if err != nil {
			return err
		}
		switch kind {
		case edal.KindU8:
			return comp.SetU8(attr, uint8(n))
		case edal.KindU16:
			return comp.SetU16(attr, uint16(n))
		case edal.KindU32:
			return comp.SetU32(attr, uint32(n))
		default:
			return comp.SetU64(attr, n)
		}

	case edal.KindStr:
		return comp.SetStr(attr, v.Value)

	case edal.KindBuffer:
		raw, err := hex.DecodeString(v.Value)
		if err != nil {
			return err
		}
		return comp.SetBuffer(attr, raw)
	}
	return fmt.Errorf("unsupported kind %s", kind)
}

func kindBits(k edal.Kind) int {
	switch k {
	case edal.KindU8:
		return 8
	case edal.KindU16:
		return 16
	case edal.KindU32:
		return 32
	}
	return 64
}
