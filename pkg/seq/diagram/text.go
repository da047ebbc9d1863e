package diagram

import "fmt"

// UnmarshalText decodes a kind keyword.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "participant":
		*k = KindParticipant
	case "actor":
		*k = KindActor
	default:
		return fmt.Errorf("unknown participant kind %q", b)
	}
	return nil
}

// UnmarshalText decodes arrow glyphs.
func (s *ArrowStyle) UnmarshalText(b []byte) error {
	for i, g := range arrowGlyphs {
		if g == string(b) {
			*s = ArrowStyle(i)
			return nil
		}
	}
	return fmt.Errorf("unknown arrow style %q", b)
}

// UnmarshalText decodes an activation delta name.
func (d *ActivationDelta) UnmarshalText(b []byte) error {
	for _, v := range []ActivationDelta{DeltaNone, DeltaActivateTarget, DeltaDeactivateSource} {
		if v.String() == string(b) {
			*d = v
			return nil
		}
	}
	return fmt.Errorf("unknown activation delta %q", b)
}

// UnmarshalText decodes a note placement.
func (p *Placement) UnmarshalText(b []byte) error {
	for _, v := range []Placement{PlaceLeftOf, PlaceRightOf, PlaceOver} {
		if v.String() == string(b) {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("unknown note placement %q", b)
}

// UnmarshalText decodes a block keyword.
func (k *BlockKind) UnmarshalText(b []byte) error {
	for _, v := range []BlockKind{BlockAlt, BlockOpt, BlockLoop, BlockPar} {
		if v.String() == string(b) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("unknown block kind %q", b)
}

// UnmarshalText decodes a footer option value.
func (f *Footer) UnmarshalText(b []byte) error {
	v, ok := ParseFooter(string(b))
	if !ok {
		return fmt.Errorf("unknown footer %q", b)
	}
	*f = v
	return nil
}
