package compound_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomolar/pkg/compound"
	"github.com/yaklabco/gomolar/pkg/formula"
)

func TestDefaultDatabase(t *testing.T) {
	t.Parallel()

	db := compound.DefaultDatabase()
	assert.Same(t, db, compound.DefaultDatabase())
	assert.Greater(t, db.Len(), 50)

	all := db.All()
	require.Len(t, all, db.Len())
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Formula, all[i].Formula)
	}
}

func TestDatabase_Lookup(t *testing.T) {
	t.Parallel()

	db := compound.DefaultDatabase()

	tests := []struct {
		name       string
		input      string
		commonName string
		iupacName  string
		category   string
	}{
		{"exact", "H2O", "Water", "Oxidane", "Hydride"},
		{"whitespace ignored", " Ca (OH) 2 ", "Slaked Lime", "Calcium Dihydroxide", "Hydroxide"},
		{"case folded", "NACL", "Table Salt", "Sodium Chloride", "Salt"},
		{"group formula", "Al2(SO4)3", "Aluminum Sulfate", "Dialuminum Trisulfate", "Sulfate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info, ok := db.Lookup(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.commonName, info.CommonName)
			assert.Equal(t, tt.iupacName, info.IUPACName)
			assert.Equal(t, tt.category, info.Category)
			assert.Equal(t, compound.SourceDatabase, info.Source)
		})
	}

	_, ok := db.Lookup("XeF4")
	assert.False(t, ok)
}

func TestDatabase_ExactMatchBeatsFolded(t *testing.T) {
	t.Parallel()

	// "CO" and "Co" fold to the same key; the exact spelling must win.
	db, err := compound.ParseDatabase([]byte(`
compounds:
  - formula: CO
    common_name: Carbon Monoxide
  - formula: Co
    common_name: Cobalt
`))
	require.NoError(t, err)

	info, ok := db.Lookup("CO")
	require.True(t, ok)
	assert.Equal(t, "Carbon Monoxide", info.CommonName)

	info, ok = db.Lookup("Co")
	require.True(t, ok)
	assert.Equal(t, "Cobalt", info.CommonName)
}

func TestParseDatabase_Errors(t *testing.T) {
	t.Parallel()

	_, err := compound.ParseDatabase([]byte("compounds:\n  - common_name: Nothing\n"))
	require.ErrorIs(t, err, compound.ErrEmptyFormula)

	_, err = compound.ParseDatabase([]byte("compounds:\n  - formula: H2O\n    colour: clear\n"))
	require.Error(t, err)
}

func TestSystematicName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		formula string
		want    string
	}{
		{"N2O4", "dinitrogen tetroxide"},
		{"CO", "carbon monoxide"},
		{"CS2", "carbon disulfide"},
		{"SF6", "sulfur hexafluoride"},
		{"PCl5", "phosphorus pentachloride"},
		{"P2O5", "diphosphorus pentoxide"},
		{"NaCl", "sodium chloride"},
		{"FeCl3", "iron trichloride"},
		{"Li3N", "trilithium nitride"},
		{"CCl4", "carbon tetrachloride"},
		{"BN", "boron mononitride"},
		{"Al2Se3", "dialuminum triselenide"},
		{"CaH2", "calcium dihydride"},
		{"KBr", "potassium bromide"},
		{"AlP", "aluminum phosphide"},
		{"Mg3N2", "trimagnesium dinitride"},
		{"SO3", "sulfur trioxide"},
		{"Cl2O7", "dichlorine heptoxide"},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			t.Parallel()

			parsed := formula.ParseFormula(tt.formula)
			require.True(t, parsed.Valid)

			name, ok := compound.SystematicName(parsed.Elements, nil)
			require.True(t, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestSystematicName_Unsupported(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"Fe", "H2SO4", "C12H2", "C60"} {
		parsed := formula.ParseFormula(input)
		require.True(t, parsed.Valid, input)

		_, ok := compound.SystematicName(parsed.Elements, nil)
		assert.False(t, ok, input)
	}
}

func TestLocalResolver(t *testing.T) {
	t.Parallel()

	resolver := compound.NewLocalResolver(nil, nil)

	info, ok := resolver.Resolve("H2O")
	require.True(t, ok)
	assert.Equal(t, "Water", info.DisplayName())
	assert.Equal(t, compound.SourceDatabase, info.Source)

	info, ok = resolver.Resolve("XeF4")
	require.True(t, ok)
	assert.Equal(t, "xenon tetrafluoride", info.IUPACName)
	assert.Equal(t, "xenon tetrafluoride", info.DisplayName())
	assert.Equal(t, "XeF4", info.Formula)
	assert.Equal(t, compound.SourceSystematic, info.Source)

	_, ok = resolver.Resolve("C8H10N4O2")
	assert.False(t, ok)

	_, ok = resolver.Resolve("H2O!")
	assert.False(t, ok)
}

type countingResolver struct {
	mu    sync.Mutex
	calls int
}

func (r *countingResolver) Resolve(raw string) (compound.Info, bool) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if raw == "miss" {
		return compound.Info{}, false
	}
	return compound.Info{Formula: raw, CommonName: "name of " + raw}, true
}

func TestCachingResolver(t *testing.T) {
	t.Parallel()

	next := &countingResolver{}
	cache := compound.NewMemoryCache()
	resolver := compound.NewCachingResolver(next, cache)

	info, ok := resolver.Resolve("H2O")
	require.True(t, ok)
	assert.Equal(t, "name of H2O", info.CommonName)

	// Same cleaned formula is served from the cache.
	_, ok = resolver.Resolve(" H2 O ")
	require.True(t, ok)
	assert.Equal(t, 1, next.calls)

	// Misses are cached too.
	_, ok = resolver.Resolve("miss")
	assert.False(t, ok)
	_, ok = resolver.Resolve("miss")
	assert.False(t, ok)
	assert.Equal(t, 2, next.calls)
	assert.Equal(t, 2, cache.Len())

	cache.Clear()
	assert.Zero(t, cache.Len())
	_, _ = resolver.Resolve("H2O")
	assert.Equal(t, 3, next.calls)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	t.Parallel()

	resolver := compound.NewCachingResolver(compound.NewLocalResolver(nil, nil), nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, f := range []string{"H2O", "NaCl", "XeF4", "C8H10N4O2"} {
				resolver.Resolve(f)
			}
		}()
	}
	wg.Wait()

	info, ok := resolver.Resolve("NaCl")
	require.True(t, ok)
	assert.Equal(t, "Table Salt", info.CommonName)
}
