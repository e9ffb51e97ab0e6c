package compound

import (
	"sort"
	"strings"

	"github.com/yaklabco/gomolar/pkg/elements"
	"github.com/yaklabco/gomolar/pkg/formula"
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	multiplyingPrefixes = []string{"", "mono", "di", "tri", "tetra", "penta", "hexa", "hepta", "octa", "nona", "deca"}

	// Nonmetals from least to most electronegative, as ordered in binary
	// compound names. Elements not listed name first.
	electronegativeOrder = map[string]int{
		"C": 1, "Si": 2, "B": 3, "H": 4, "P": 5, "As": 6, "S": 7, "Se": 8,
		"I": 9, "Br": 10, "Cl": 11, "N": 12, "O": 13, "F": 14,
	}

	// Stems of the "-ide" anion names. Elements not listed use their
	// full name.
	anionStems = map[string]string{
		"O": "ox", "N": "nitr", "S": "sulf", "P": "phosph", "C": "carb",
		"H": "hydr", "F": "fluor", "Cl": "chlor", "Br": "brom", "I": "iod",
		"Se": "selen", "As": "arsen", "Si": "silic", "B": "bor",
	}
)

// SystematicName generates a name such as "dinitrogen tetroxide" for a
// compound of exactly two elements. It reports false for any other
// composition and for counts beyond ten.
func SystematicName(counts []formula.ElementCount, table *elements.Table) (string, bool) {
	if len(counts) != 2 {
		return "", false
	}
	if table == nil {
		table = elements.Default()
	}

	pair := []formula.ElementCount{counts[0], counts[1]}
	sort.SliceStable(pair, func(i, j int) bool {
		return electronegativeOrder[pair[i].Element] < electronegativeOrder[pair[j].Element]
	})
	first, second := pair[0], pair[1]

	if first.Count >= len(multiplyingPrefixes) || second.Count >= len(multiplyingPrefixes) {
		return "", false
	}

	firstPrefix := ""
	if first.Count > 1 {
		firstPrefix = multiplyingPrefixes[first.Count]
	}

	// Ionic compounds (metal first) drop the "mono" on the anion.
	_, firstIsNonmetal := electronegativeOrder[first.Element]
	secondPrefix := multiplyingPrefixes[second.Count]
	if second.Count == 1 && !firstIsNonmetal {
		secondPrefix = ""
	}

	firstName := strings.ToLower(table.Name(first.Element))
	anion := anionName(second.Element, table)

	return firstPrefix + firstName + " " + joinPrefix(secondPrefix, anion), true
}

func anionName(symbol string, table *elements.Table) string {
	if stem, ok := anionStems[symbol]; ok {
		return stem + "ide"
	}
	return strings.ToLower(table.Name(symbol)) + "ide"
}

// joinPrefix elides the prefix's final vowel before "oxide", giving
// "monoxide" and "pentoxide".
func joinPrefix(prefix, name string) string {
	if strings.HasPrefix(name, "o") && (strings.HasSuffix(prefix, "a") || strings.HasSuffix(prefix, "o")) {
		prefix = prefix[:len(prefix)-1]
	}
	return prefix + name
}
