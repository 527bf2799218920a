// internal/edal/family.go
package edal

// Family is the capability a hardware family provides to the accessor:
// which component types it supports and how their sub-records are laid out.
type Family interface {
	Name() string
	Supports(ct ComponentType) bool
	// Layout returns nil for unsupported types.
	Layout(ct ComponentType) *Layout
}

// tableFamily backs a family with a fixed layout table.
type tableFamily struct {
	name    string
	layouts map[ComponentType]*Layout
}

func (f *tableFamily) Name() string { return f.name }

func (f *tableFamily) Supports(ct ComponentType) bool {
	_, ok := f.layouts[ct]
	return ok
}

func (f *tableFamily) Layout(ct ComponentType) *Layout {
	return f.layouts[ct]
}

// FamilyFor resolves the family of an enclosure type.
func FamilyFor(e EnclosureType) (Family, error) {
	switch e {
	case EnclosurePE:
		return peFamily, nil
	case EnclosureCitadel, EnclosureBunker, EnclosureDerringer, EnclosureViper,
		EnclosureMagnum, EnclosureFallback, EnclosureBoxwood, EnclosureKnot,
		EnclosurePinecone, EnclosureSteeljaw, EnclosureRamhorn, EnclosureAncho,
		EnclosureVoyagerICM, EnclosureVoyagerEE,
		EnclosureVikingIOSXP, EnclosureVikingDRVSXP,
		EnclosureCayenneIOSXP, EnclosureCayenneDRVSXP,
		EnclosureNagaIOSXP, EnclosureNagaDRVSXP,
		EnclosureTabasco, EnclosureCalypso, EnclosureMiranda, EnclosureRhea:
		return esesFamily, nil
	}
	return nil, ErrUnsupportedEnclosure
}

// ComponentSize is the record size of a component type, 0 if unsupported.
func ComponentSize(e EnclosureType, ct ComponentType) int {
	fam, err := FamilyFor(e)
	if err != nil {
		return 0
	}
	l := fam.Layout(ct)
	if l == nil {
		return 0
	}
	return l.Size()
}

// IsPEComponent reports whether the processor-enclosure family defines ct.
func IsPEComponent(ct ComponentType) bool {
	return peFamily.Supports(ct)
}

// ---- shared sub-record pieces ----

const (
	serialNumberLen = 16
	partNumberLen   = 16
	productIDLen    = 16
	fwInfoLen       = 24
)

func identity() []field {
	return []field{
		str(AttrSerialNumber, serialNumberLen),
		str(AttrPartNumber, partNumberLen),
		buffer(AttrCompFwInfo, fwInfoLen),
	}
}

func join(parts ...[]field) []field {
	var out []field
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
