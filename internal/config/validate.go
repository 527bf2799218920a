// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/tamzrod/edal/internal/edal"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("enclosure_type", func(fl validator.FieldLevel) bool {
		_, err := edal.ParseEnclosureType(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("component_type", func(fl validator.FieldLevel) bool {
		_, err := edal.ParseComponentType(fl.Field().String())
		return err == nil
	})
}

// Validate checks configuration correctness.
// Field rules come from struct tags; cross-field rules are checked here.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	e := cfg.Enclosure

	// enclosure name sanity (ASCII only)
	for i := 0; i < len(e.Name); i++ {
		if e.Name[i] > 0x7F {
			return fmt.Errorf("enclosure %q: name must contain ASCII characters only", e.Name)
		}
	}

	encl, _ := edal.ParseEnclosureType(e.Type)
	fam, err := edal.FamilyFor(encl)
	if err != nil {
		return fmt.Errorf("enclosure %q: type %s: %w", e.Name, e.Type, err)
	}

	// ------------------------------------------------------------
	// COMPONENT INVENTORY
	// ------------------------------------------------------------

	seen := make(map[edal.ComponentType]bool)

	for _, c := range e.Components {
		ct, _ := edal.ParseComponentType(c.Type)

		if seen[ct] {
			return fmt.Errorf("enclosure %q: component %s listed twice", e.Name, c.Type)
		}
		seen[ct] = true

		l := fam.Layout(ct)
		if l == nil {
			return fmt.Errorf(
				"enclosure %q: component %s is not supported by the %s family",
				e.Name, c.Type, fam.Name(),
			)
		}

		for _, v := range c.Values {
			if v.Index >= c.Count {
				return fmt.Errorf(
					"enclosure %q: %s value %s index %d out of range (count %d)",
					e.Name, c.Type, v.Attr, v.Index, c.Count,
				)
			}
			attr, err := edal.ParseAttribute(v.Attr)
			if err != nil {
				return fmt.Errorf("enclosure %q: %s: %w", e.Name, c.Type, err)
			}
			if _, ok := l.KindOf(attr); !ok {
				return fmt.Errorf(
					"enclosure %q: attribute %s not defined for %s",
					e.Name, v.Attr, c.Type,
				)
			}
		}
	}

	// ------------------------------------------------------------
	// BLOCK GEOMETRY
	// ------------------------------------------------------------

	if e.BlockSize != 0 && e.MaxTypes != 0 {
		min := edal.BlockHeaderSize + e.MaxTypes*edal.DescriptorSize
		if e.BlockSize < min {
			return fmt.Errorf(
				"enclosure %q: block_size %d too small for %d descriptors (min %d)",
				e.Name, e.BlockSize, e.MaxTypes, min,
			)
		}
	}

	return nil
}
