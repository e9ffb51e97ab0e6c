package compound

import (
	"github.com/yaklabco/gomolar/pkg/formula"
)

// Resolver names a compound from its formula.
type Resolver interface {
	Resolve(raw string) (Info, bool)
}

// LocalResolver resolves names from a Database and falls back to
// systematic names for binary compounds.
type LocalResolver struct {
	db     *Database
	parser *formula.Parser
}

// NewLocalResolver creates a LocalResolver. Nil arguments select the
// embedded database and the default parser.
func NewLocalResolver(db *Database, parser *formula.Parser) *LocalResolver {
	if db == nil {
		db = DefaultDatabase()
	}
	if parser == nil {
		parser = formula.New(formula.Options{})
	}
	return &LocalResolver{db: db, parser: parser}
}

// Resolve implements Resolver.
func (r *LocalResolver) Resolve(raw string) (Info, bool) {
	if info, ok := r.db.Lookup(raw); ok {
		return info, true
	}

	parsed := r.parser.Parse(raw)
	if !parsed.Valid {
		return Info{}, false
	}

	name, ok := SystematicName(parsed.Elements, r.parser.Table())
	if !ok {
		return Info{}, false
	}
	return Info{
		Formula:   parsed.Clean,
		IUPACName: name,
		Category:  "Binary Compound",
		Source:    SourceSystematic,
	}, true
}

// CachingResolver memoizes another Resolver's answers, misses included.
type CachingResolver struct {
	next  Resolver
	cache Cache
}

// NewCachingResolver wraps next with cache. A nil cache selects a new
// MemoryCache.
func NewCachingResolver(next Resolver, cache Cache) *CachingResolver {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &CachingResolver{next: next, cache: cache}
}

// Resolve implements Resolver.
func (r *CachingResolver) Resolve(raw string) (Info, bool) {
	key := formula.Clean(raw)
	if entry, ok := r.cache.Get(key); ok {
		return entry.Info, entry.Found
	}

	info, found := r.next.Resolve(raw)
	r.cache.Set(key, CacheEntry{Info: info, Found: found})
	return info, found
}
