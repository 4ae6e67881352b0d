// Package catalog holds the curated symbol list grouped by industry.
package catalog

import (
	"strings"

	"github.com/vanlang/stock-api/internal/market"
)

// AllIndustries selects the whole catalog in by-industry queries
const AllIndustries = "all"

// Entry is one curated symbol
type Entry struct {
	Symbol   string `yaml:"symbol" json:"symbol"`
	Name     string `yaml:"name" json:"name"`
	Exchange string `yaml:"exchange,omitempty" json:"exchange,omitempty"`
}

// Industry is a named bucket of symbols
type Industry struct {
	Key     string  `yaml:"key" json:"key"`
	Label   string  `yaml:"label" json:"label"`
	Symbols []Entry `yaml:"symbols" json:"symbols"`
}

// File is the on-disk (YAML) form of a catalog
type File struct {
	Industries []Industry `yaml:"industries"`
}

// Member is an entry together with the industry it belongs to
type Member struct {
	Entry
	IndustryKey   string `json:"industry_key"`
	IndustryLabel string `json:"industry"`
}

// Catalog is read-only after construction
type Catalog struct {
	industries []Industry
	members    []Member // curated order, first occurrence of each symbol
	bySymbol   map[string]Member
	byKey      map[string]int
	hash       string
}

// Builtin returns the catalog shipped with the service
func Builtin() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic("catalog: builtin catalog is invalid: " + err.Error())
	}
	return c
}

// New validates f and indexes it
func New(f File) (*Catalog, error) {
	if err := Validate(&f); err != nil {
		return nil, err
	}

	c := &Catalog{
		bySymbol: make(map[string]Member),
		byKey:    make(map[string]int, len(f.Industries)),
	}
	for i, ind := range f.Industries {
		ind.Key = strings.ToLower(ind.Key)
		syms := make([]Entry, len(ind.Symbols))
		for j, e := range ind.Symbols {
			e.Symbol = market.CleanSymbol(e.Symbol)
			syms[j] = e
		}
		ind.Symbols = syms
		c.industries = append(c.industries, ind)
		c.byKey[ind.Key] = i

		for _, e := range ind.Symbols {
			if _, dup := c.bySymbol[e.Symbol]; dup {
				continue
			}
			m := Member{Entry: e, IndustryKey: ind.Key, IndustryLabel: ind.Label}
			c.bySymbol[e.Symbol] = m
			c.members = append(c.members, m)
		}
	}

	hash, err := Hash(&f)
	if err != nil {
		return nil, err
	}
	c.hash = hash
	return c, nil
}

// Hash identifies the catalog content
func (c *Catalog) Hash() string { return c.hash }

// Size is the number of distinct symbols
func (c *Catalog) Size() int { return len(c.members) }

// Keys lists industry keys in catalog order
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.industries))
	for i, ind := range c.industries {
		out[i] = ind.Key
	}
	return out
}

// Industries returns the buckets in catalog order
func (c *Catalog) Industries() []Industry {
	return c.industries
}

// Symbols returns every distinct symbol in curated order
func (c *Catalog) Symbols() []string {
	out := make([]string, len(c.members))
	for i, m := range c.members {
		out[i] = m.Symbol
	}
	return out
}

// Members returns every distinct symbol with its industry in curated order
func (c *Catalog) Members() []Member {
	return c.members
}

// Lookup finds the industry of a symbol by set membership
func (c *Catalog) Lookup(symbol string) (Member, bool) {
	m, ok := c.bySymbol[symbol]
	return m, ok
}

// Resolve finds an industry by key (case-insensitive) or by its label.
// "all" is not an industry; callers handle it.
func (c *Catalog) Resolve(keyOrLabel string) (Industry, bool) {
	k := strings.ToLower(strings.TrimSpace(keyOrLabel))
	if i, ok := c.byKey[k]; ok {
		return c.industries[i], true
	}
	k = strings.ReplaceAll(k, "-", "_")
	k = strings.ReplaceAll(k, " ", "_")
	if i, ok := c.byKey[k]; ok {
		return c.industries[i], true
	}
	for _, ind := range c.industries {
		if strings.EqualFold(ind.Label, strings.TrimSpace(keyOrLabel)) {
			return ind, true
		}
	}
	return Industry{}, false
}

// Select returns up to limit distinct symbols for an industry key, or for
// the whole catalog when key is "all". limit <= 0 means no cap.
func (c *Catalog) Select(key string, limit int) ([]Member, error) {
	var members []Member
	if strings.EqualFold(strings.TrimSpace(key), AllIndustries) || strings.TrimSpace(key) == "" {
		members = c.members
	} else {
		ind, ok := c.Resolve(key)
		if !ok {
			return nil, market.InvalidInput("unknown industry %q", key)
		}
		for _, e := range ind.Symbols {
			if m, ok := c.bySymbol[e.Symbol]; ok && m.IndustryKey == ind.Key {
				members = append(members, m)
			}
		}
	}

	if limit > 0 && len(members) > limit {
		members = members[:limit]
	}
	return append([]Member(nil), members...), nil
}

// CountByIndustry counts distinct symbols per industry key
func (c *Catalog) CountByIndustry() map[string]int {
	out := make(map[string]int, len(c.industries))
	for _, m := range c.members {
		out[m.IndustryKey]++
	}
	return out
}

