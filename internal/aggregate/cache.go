package aggregate

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"fjacquet/smart-finance/internal/dateutils"
	"fjacquet/smart-finance/internal/models"
)

// DefaultCacheSize bounds a ViewCache created with a non-positive size.
const DefaultCacheSize = 32

// ViewCache memoizes ComputeView results. Entries are keyed on the ledger
// version, period, filter, totals scope and evaluation day, so any
// ledger mutation or day change misses.
type ViewCache struct {
	engine  *Engine
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	lru     *list.List
	hits    int
	misses  int
}

type cacheItem struct {
	key  string
	view View
}

// NewViewCache wraps engine with an LRU cache holding up to maxSize views.
func NewViewCache(engine *Engine, maxSize int) *ViewCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &ViewCache{
		engine:  engine,
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// ComputeView returns the cached view for the key or computes and stores it.
// The returned view's Filtered slice is a copy the caller may modify.
func (c *ViewCache) ComputeView(ledger []models.Transaction, version uint64, period models.Period, spec models.FilterSpec, now time.Time) View {
	key := fmt.Sprintf("%d|%s|%s|%s|%s", version, period, c.engine.Scope, dayKey(now), spec.Key())

	c.mu.Lock()
	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		c.hits++
		view := elem.Value.(*cacheItem).view
		c.mu.Unlock()
		return copyView(view)
	}
	c.misses++
	c.mu.Unlock()

	view := c.engine.ComputeView(ledger, period, spec, now)

	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		elem.Value = &cacheItem{key: key, view: view}
		c.lru.MoveToFront(elem)
	} else {
		c.items[key] = c.lru.PushFront(&cacheItem{key: key, view: view})
		if c.lru.Len() > c.maxSize {
			oldest := c.lru.Back()
			delete(c.items, oldest.Value.(*cacheItem).key)
			c.lru.Remove(oldest)
		}
	}
	return copyView(view)
}

// Stats reports cache hits and misses.
func (c *ViewCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Size returns the current number of cached views.
func (c *ViewCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// dayKey identifies the evaluation day. Record dates are UTC midnights, so
// every instant of a UTC day yields the same period filter except midnight
// itself, where the bound lands exactly on a record date.
func dayKey(now time.Time) string {
	utc := now.UTC()
	key := utc.Format("2006-01-02")
	if utc.Equal(dateutils.StartOfDay(utc)) {
		key += "T00"
	}
	return key
}

func copyView(v View) View {
	out := v
	out.Filtered = models.CloneTransactions(v.Filtered)
	out.CategoryBreakdown = make([]CategoryTotal, len(v.CategoryBreakdown))
	copy(out.CategoryBreakdown, v.CategoryBreakdown)
	out.MonthlySeries = make([]MonthPoint, len(v.MonthlySeries))
	copy(out.MonthlySeries, v.MonthlySeries)
	return out
}
