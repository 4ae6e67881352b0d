package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanlang/stock-api/internal/market"
)

func TestBuiltin(t *testing.T) {
	c := Builtin()

	assert.Equal(t, []string{
		"banking", "real_estate", "securities", "steel_materials", "energy", "technology",
		"retail", "food_beverage", "pharma", "transport", "insurance", "utilities",
	}, c.Keys())
	assert.Len(t, c.Hash(), 64)

	seen := map[string]bool{}
	for _, s := range c.Symbols() {
		assert.False(t, seen[s], "duplicate symbol %s", s)
		seen[s] = true
		assert.True(t, market.ValidSymbol(s), s)
	}
	assert.Equal(t, len(seen), c.Size())
}

func TestLookup(t *testing.T) {
	c := Builtin()

	m, ok := c.Lookup("VCB")
	require.True(t, ok)
	assert.Equal(t, "banking", m.IndustryKey)
	assert.Equal(t, "Ngân hàng", m.IndustryLabel)

	_, ok = c.Lookup("ZZZ")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	c := Builtin()

	for _, in := range []string{"banking", "BANKING", " Banking ", "Ngân hàng", "real-estate", "real estate"} {
		_, ok := c.Resolve(in)
		assert.True(t, ok, in)
	}
	_, ok := c.Resolve("unknown_value")
	assert.False(t, ok)
}

func TestSelect(t *testing.T) {
	c := Builtin()

	members, err := c.Select("banking", 3)
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "VCB", members[0].Symbol)

	all, err := c.Select("all", 0)
	require.NoError(t, err)
	assert.Len(t, all, c.Size())

	_, err = c.Select("unknown_value", 10)
	assert.ErrorIs(t, err, market.ErrInvalidInput)

	// Select must not hand out the internal slice
	all[0].Symbol = "MUTATED"
	again, _ := c.Select("all", 1)
	assert.NotEqual(t, "MUTATED", again[0].Symbol)
}

func TestCountByIndustry(t *testing.T) {
	c := Builtin()
	counts := c.CountByIndustry()

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, c.Size(), total)
	assert.Equal(t, 12, counts["banking"])
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
industries:
  - key: banking
    label: Banks
    symbols:
      - symbol: vcb
        name: Vietcombank
      - symbol: "['BID']"
        name: BIDV
        exchange: HOSE
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"VCB", "BID"}, c.Symbols())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "industries:\n  - key: a\n    label: A\n    colour: red\n    symbols: [{symbol: VNM}]\n"},
		{"empty", "industries: []\n"},
		{"reserved key", "industries:\n  - key: ALL\n    label: A\n    symbols: [{symbol: VNM}]\n"},
		{"duplicate key", "industries:\n  - key: a\n    label: A\n    symbols: [{symbol: VNM}]\n  - key: A\n    label: B\n    symbols: [{symbol: FPT}]\n"},
		{"bad symbol", "industries:\n  - key: a\n    label: A\n    symbols: [{symbol: 'V-N'}]\n"},
		{"missing label", "industries:\n  - key: a\n    symbols: [{symbol: VNM}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadOrBuiltin(t *testing.T) {
	c, err := LoadOrBuiltin("")
	require.NoError(t, err)
	assert.Equal(t, Builtin().Hash(), c.Hash())

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("industries:\n  - key: x\n    label: X\n    symbols: [{symbol: VNM, name: Vinamilk}]\n"), 0o600))

	c, err = LoadOrBuiltin(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"VNM"}, c.Symbols())

	_, err = LoadOrBuiltin(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSearcher(t *testing.T) {
	c := Builtin()
	s, err := NewSearcher(c)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, uint64(c.Size()), s.Count())

	hits, err := s.Search("vnm", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "VNM", hits[0].Symbol)
	assert.Equal(t, "Vinamilk", hits[0].Name)

	hits, err = s.Search("Vinamilk", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "VNM", hits[0].Symbol)

	_, err = s.Search("  ", 5)
	assert.ErrorIs(t, err, market.ErrInvalidInput)
}

func TestSearcherIndexListings(t *testing.T) {
	c := Builtin()
	s, err := NewSearcher(c)
	require.NoError(t, err)
	defer s.Close()

	err = s.IndexListings(c, []market.Listing{
		{Symbol: "AAA", Name: "An Phat Plastic", Exchange: "HOSE"},
		{Symbol: "VCB", Exchange: "HOSE"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(c.Size()+1), s.Count())

	hits, err := s.Search("aaa", 3)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "AAA", hits[0].Symbol)

	hits, err = s.Search("vcb", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Vietcombank", hits[0].Name, "catalog name kept when the listing has none")
}
