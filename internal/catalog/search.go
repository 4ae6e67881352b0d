package catalog

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/vanlang/stock-api/internal/market"
)

// Doc is one searchable symbol
type Doc struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Industry string `json:"industry"`
}

// Hit is a search result
type Hit struct {
	Doc
	Score float64 `json:"score"`
}

// Searcher is an in-memory bleve index over the catalog and, once a
// listing snapshot is available, the full exchange listing
type Searcher struct {
	index bleve.Index
}

// NewSearcher builds an index seeded with the catalog
func NewSearcher(c *Catalog) (*Searcher, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}
	s := &Searcher{index: index}

	docs := make([]Doc, 0, c.Size())
	for _, m := range c.Members() {
		docs = append(docs, Doc{Symbol: m.Symbol, Name: m.Name, Exchange: m.Exchange, Industry: m.IndustryLabel})
	}
	if err := s.Index(docs); err != nil {
		return nil, err
	}
	return s, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Store = true
	textFieldMapping.Index = true
	for _, f := range []string{"symbol", "name", "exchange", "industry"} {
		docMapping.AddFieldMappingsAt(f, textFieldMapping)
	}

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Index adds or replaces documents keyed by symbol
func (s *Searcher) Index(docs []Doc) error {
	batch := s.index.NewBatch()
	for _, d := range docs {
		if d.Symbol == "" {
			continue
		}
		if err := batch.Index(d.Symbol, d); err != nil {
			return fmt.Errorf("index %s: %w", d.Symbol, err)
		}
	}
	if err := s.index.Batch(batch); err != nil {
		return fmt.Errorf("index batch: %w", err)
	}
	return nil
}

// IndexListings merges an exchange listing into the index. Industry labels
// from the catalog are kept for curated symbols.
func (s *Searcher) IndexListings(c *Catalog, listings []market.Listing) error {
	docs := make([]Doc, 0, len(listings))
	for _, l := range listings {
		d := Doc{Symbol: l.Symbol, Name: l.Name, Exchange: l.Exchange}
		if m, ok := c.Lookup(l.Symbol); ok {
			d.Industry = m.IndustryLabel
			if d.Name == "" {
				d.Name = m.Name
			}
		}
		docs = append(docs, d)
	}
	return s.Index(docs)
}

// Count is the number of indexed documents
func (s *Searcher) Count() uint64 {
	n, _ := s.index.DocCount()
	return n
}

// Search ranks exact symbol matches first, then symbol prefixes, then name
// matches
func (s *Searcher) Search(q string, limit int) ([]Hit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, market.InvalidInput("query parameter q is required")
	}
	if limit <= 0 {
		limit = 20
	}
	lower := strings.ToLower(q)

	exact := bleve.NewTermQuery(lower)
	exact.SetField("symbol")
	exact.SetBoost(10.0)

	prefix := bleve.NewPrefixQuery(lower)
	prefix.SetField("symbol")
	prefix.SetBoost(5.0)

	name := bleve.NewMatchQuery(q)
	name.SetField("name")
	name.SetBoost(3.0)

	namePrefix := bleve.NewPrefixQuery(lower)
	namePrefix.SetField("name")
	namePrefix.SetBoost(1.5)

	industry := bleve.NewMatchQuery(q)
	industry.SetField("industry")

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(exact, prefix, name, namePrefix, industry), limit, 0, false)
	req.Fields = []string{"symbol", "name", "exchange", "industry"}

	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{
			Doc: Doc{
				Symbol:   h.ID,
				Name:     field(h.Fields, "name"),
				Exchange: field(h.Fields, "exchange"),
				Industry: field(h.Fields, "industry"),
			},
			Score: h.Score,
		})
	}
	return hits, nil
}

// Close releases the index
func (s *Searcher) Close() error {
	return s.index.Close()
}

func field(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
