// Package refdata holds the immutable language lists used to validate submissions:
// programming languages for ecosystem entries and ISO 639-1 spoken languages for tutorials.
package refdata

import (
	_ "embed"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var languagesYAML []byte

// SpokenLanguage is an ISO 639-1 code and its English name.
type SpokenLanguage struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

type document struct {
	Programming []string         `yaml:"programming"`
	Spoken      []SpokenLanguage `yaml:"spoken"`
}

// Data is loaded once at startup and never modified, so it is safe for concurrent use.
type Data struct {
	programming []string
	spoken      []SpokenLanguage

	programmingSet map[string]struct{}
	spokenSet      map[string]struct{}
}

// Load parses the embedded language lists.
func Load() (*Data, error) {
	return Parse(languagesYAML)
}

// Parse builds Data from a YAML document with `programming` and `spoken` lists.
// Programming languages are sorted by code point, spoken languages by name.
func Parse(raw []byte) (*Data, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse language lists: %w", err)
	}
	if len(doc.Programming) == 0 {
		return nil, fmt.Errorf("parse language lists: no programming languages")
	}
	if len(doc.Spoken) == 0 {
		return nil, fmt.Errorf("parse language lists: no spoken languages")
	}

	d := &Data{
		programmingSet: make(map[string]struct{}, len(doc.Programming)),
		spokenSet:      make(map[string]struct{}, len(doc.Spoken)),
	}
	for _, name := range doc.Programming {
		if _, dup := d.programmingSet[name]; dup {
			continue
		}
		d.programmingSet[name] = struct{}{}
		d.programming = append(d.programming, name)
	}
	for _, l := range doc.Spoken {
		if l.Code == "" || l.Name == "" {
			return nil, fmt.Errorf("parse language lists: spoken language needs code and name, got %+v", l)
		}
		if _, dup := d.spokenSet[l.Code]; dup {
			return nil, fmt.Errorf("parse language lists: duplicate spoken language code %q", l.Code)
		}
		d.spokenSet[l.Code] = struct{}{}
		d.spoken = append(d.spoken, l)
	}

	sort.Strings(d.programming)
	col := collate.New(language.English)
	sort.SliceStable(d.spoken, func(i, j int) bool {
		return col.CompareString(d.spoken[i].Name, d.spoken[j].Name) < 0
	})
	return d, nil
}

// ProgrammingLanguages returns a copy of the sorted programming language names.
func (d *Data) ProgrammingLanguages() []string {
	out := make([]string, len(d.programming))
	copy(out, d.programming)
	return out
}

// SpokenLanguages returns a copy of the spoken languages sorted by name.
func (d *Data) SpokenLanguages() []SpokenLanguage {
	out := make([]SpokenLanguage, len(d.spoken))
	copy(out, d.spoken)
	return out
}

// IsProgrammingLanguage reports exact, case-sensitive membership.
func (d *Data) IsProgrammingLanguage(name string) bool {
	_, ok := d.programmingSet[name]
	return ok
}

// IsSpokenLanguage reports whether code is a known spoken-language code.
func (d *Data) IsSpokenLanguage(code string) bool {
	_, ok := d.spokenSet[code]
	return ok
}
