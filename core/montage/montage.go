package montage

import "strconv"

// Montage represents an electrode layout and the display label of each
// channel.
type Montage struct {
	Name   Name
	Labels []string
}

// Label returns the display label of the given zero-based channel. Channels
// beyond the montage fall back to their one-based number.
func (m Montage) Label(channel int) string {
	if channel >= 0 && channel < len(m.Labels) {
		return m.Labels[channel]
	}
	return strconv.Itoa(channel + 1)
}

// Channels returns the number of labeled channels.
func (m Montage) Channels() int {
	return len(m.Labels)
}

// UnknownMontage is the unknown montage that labels no channel.
var UnknownMontage = Montage{Name: Unknown}

// Name is the name of an electrode montage.
type Name string

// All montage names.
const (
	Unknown      Name = "Unknown"
	TenTwenty    Name = "10-20"
	DoubleBanana Name = "double-banana"
)

// Set type.
type Set map[Name]Montage

// ByName returns the montage with the matching name.
func (s Set) ByName(n Name) Montage {
	if m, ok := s[n]; ok {
		return m
	}
	return UnknownMontage
}

// Standard contains the referential 10-20 montage and the longitudinal
// bipolar double banana derived from it.
var Standard = Set{
	TenTwenty: Montage{
		Name: TenTwenty,
		Labels: []string{
			"Fp1", "Fp2",
			"F7", "F3", "Fz", "F4", "F8",
			"T3", "C3", "Cz", "C4", "T4",
			"T5", "P3", "Pz", "P4", "T6",
			"O1", "O2",
		},
	},
	DoubleBanana: Montage{
		Name: DoubleBanana,
		Labels: []string{
			"Fp1-F7", "F7-T3", "T3-T5", "T5-O1",
			"Fp2-F8", "F8-T4", "T4-T6", "T6-O2",
			"Fp1-F3", "F3-C3", "C3-P3", "P3-O1",
			"Fp2-F4", "F4-C4", "C4-P4", "P4-O2",
			"Fz-Cz", "Cz-Pz",
		},
	},
}
