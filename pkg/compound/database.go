// Package compound names chemical compounds from their formulas.
//
// Names come from an embedded database of common compounds. Simple binary
// compounds missing from the database get a generated systematic name.
package compound

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomolar/pkg/formula"
)

// ErrEmptyFormula is returned when a database entry has no formula.
var ErrEmptyFormula = errors.New("compound entry has no formula")

// Source identifies where a name came from.
type Source string

const (
	// SourceDatabase marks names read from a compound database.
	SourceDatabase Source = "database"

	// SourceSystematic marks names generated from binary nomenclature rules.
	SourceSystematic Source = "systematic"
)

// Info describes a named compound.
type Info struct {
	Formula    string   `json:"formula"              yaml:"formula"`
	CommonName string   `json:"commonName,omitempty" yaml:"common_name,omitempty"`
	IUPACName  string   `json:"iupacName,omitempty"  yaml:"iupac_name,omitempty"`
	Category   string   `json:"category,omitempty"   yaml:"category,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty"   yaml:"synonyms,omitempty"`
	Source     Source   `json:"source,omitempty"     yaml:"-"`
}

// DisplayName returns the common name, falling back to the IUPAC name.
func (i Info) DisplayName() string {
	if i.CommonName != "" {
		return i.CommonName
	}
	return i.IUPACName
}

// Database is an immutable formula-indexed set of compounds.
type Database struct {
	byFormula map[string]Info
	byFolded  map[string]string
	formulas  []string
}

type databaseFile struct {
	Compounds []Info `yaml:"compounds"`
}

//go:embed compounds.yaml
var builtinData []byte

//nolint:gochecknoglobals // Immutable after first use.
var defaultDatabase = sync.OnceValue(func() *Database {
	db, err := ParseDatabase(builtinData)
	if err != nil {
		panic(fmt.Sprintf("compound: built-in database is invalid: %v", err))
	}
	return db
})

// DefaultDatabase returns the embedded compound database.
func DefaultDatabase() *Database {
	return defaultDatabase()
}

// ParseDatabase decodes a YAML compound database.
//
// Formulas are keyed with whitespace removed. A later entry for the same
// formula replaces an earlier one.
func ParseDatabase(data []byte) (*Database, error) {
	var file databaseFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode compound database: %w", err)
	}

	db := &Database{
		byFormula: make(map[string]Info, len(file.Compounds)),
		byFolded:  make(map[string]string, len(file.Compounds)),
	}

	for idx, info := range file.Compounds {
		key := formula.Clean(info.Formula)
		if key == "" {
			return nil, fmt.Errorf("compound %d: %w", idx, ErrEmptyFormula)
		}
		info.Formula = key
		info.Source = SourceDatabase
		if _, exists := db.byFormula[key]; !exists {
			db.formulas = append(db.formulas, key)
		}
		db.byFormula[key] = info
		db.byFolded[strings.ToUpper(key)] = key
	}

	sort.Strings(db.formulas)
	return db, nil
}

// Lookup finds the compound for raw. An exact match on the cleaned formula
// wins; otherwise the match is case-insensitive.
func (d *Database) Lookup(raw string) (Info, bool) {
	key := formula.Clean(raw)
	if info, ok := d.byFormula[key]; ok {
		return info, true
	}
	if exact, ok := d.byFolded[strings.ToUpper(key)]; ok {
		return d.byFormula[exact], true
	}
	return Info{}, false
}

// Len returns the number of compounds.
func (d *Database) Len() int {
	return len(d.formulas)
}

// All returns every compound sorted by formula.
func (d *Database) All() []Info {
	out := make([]Info, 0, len(d.formulas))
	for _, key := range d.formulas {
		out = append(out, d.byFormula[key])
	}
	return out
}
