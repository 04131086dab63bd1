package models

import (
	"fmt"
	"strings"

	"github.com/nilsimda/topturnier/textnorm"
)

type Dance int

const (
	SlowWaltz Dance = iota + 1
	Tango
	VienneseWaltz
	SlowFoxtrot
	Quickstep
	Samba
	ChaCha
	Rumba
	PasoDoble
	Jive
)

// AllDances lists standard dances first, then latin, in the order TopTurnier
// prints them.
var AllDances = []Dance{SlowWaltz, Tango, VienneseWaltz, SlowFoxtrot, Quickstep, Samba, ChaCha, Rumba, PasoDoble, Jive}

type danceInfo struct {
	english      string
	abbreviation string
	german       string
}

var danceTable = map[Dance]danceInfo{
	SlowWaltz:     {english: "SlowWaltz", abbreviation: "LW", german: "Langsamer Walzer"},
	Tango:         {english: "Tango", abbreviation: "TG", german: "Tango"},
	VienneseWaltz: {english: "VienneseWaltz", abbreviation: "WW", german: "Wiener Walzer"},
	SlowFoxtrot:   {english: "SlowFoxtrot", abbreviation: "SF", german: "Slowfox"},
	Quickstep:     {english: "Quickstep", abbreviation: "QS", german: "Quickstep"},
	Samba:         {english: "Samba", abbreviation: "SB", german: "Samba"},
	ChaCha:        {english: "ChaCha", abbreviation: "CC", german: "Cha Cha Cha"},
	Rumba:         {english: "Rumba", abbreviation: "RB", german: "Rumba"},
	PasoDoble:     {english: "PasoDoble", abbreviation: "PD", german: "Paso Doble"},
	Jive:          {english: "Jive", abbreviation: "JV", german: "Jive"},
}

// German spellings, lower-cased. Several spellings collapse onto one dance.
var germanDances = map[string]Dance{
	"langsamer walzer": SlowWaltz,
	"lw":               SlowWaltz,
	"wiener walzer":    VienneseWaltz,
	"ww":               VienneseWaltz,
	"tango":            Tango,
	"tg":               Tango,
	"quickstep":        Quickstep,
	"qs":               Quickstep,
	"qu":               Quickstep,
	"slow foxtrott":    SlowFoxtrot,
	"slowfox":          SlowFoxtrot,
	"foxtrott":         SlowFoxtrot,
	"sf":               SlowFoxtrot,
	"samba":            Samba,
	"sb":               Samba,
	"cha cha cha":      ChaCha,
	"chachacha":        ChaCha,
	"cc":               ChaCha,
	"rumba":            Rumba,
	"rb":               Rumba,
	"paso doble":       PasoDoble,
	"pd":               PasoDoble,
	"jive":             Jive,
	"jv":               Jive,
}

// ParseDance maps any German dance name or abbreviation to its Dance.
func ParseDance(german string) (Dance, error) {
	d, ok := germanDances[strings.ToLower(textnorm.Clean(german))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDance, german)
	}
	return d, nil
}

// IsDanceLabel reports whether s names a dance, e.g. a header cell.
func IsDanceLabel(s string) bool {
	_, err := ParseDance(s)
	return err == nil
}

func (d Dance) String() string {
	if info, ok := danceTable[d]; ok {
		return info.english
	}
	return fmt.Sprintf("Dance(%d)", int(d))
}

// Abbreviation is the canonical two-letter German abbreviation.
func (d Dance) Abbreviation() string {
	return danceTable[d].abbreviation
}

// GermanName is the canonical long German name.
func (d Dance) GermanName() string {
	return danceTable[d].german
}

func (d Dance) MarshalText() ([]byte, error) {
	if _, ok := danceTable[d]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDance, int(d))
	}
	return []byte(d.String()), nil
}

func (d *Dance) UnmarshalText(text []byte) error {
	for dance, info := range danceTable {
		if info.english == string(text) {
			*d = dance
			return nil
		}
	}
	parsed, err := ParseDance(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
