// Package catalog holds the chef's menu: an in-memory, insertion-ordered
// list of dishes with validated mutations and derived statistics.
//
// A Catalog is created once at startup and handed to every surface that
// needs it (HTTP controllers, the GraphQL schema, the Telegram bot). All
// mutations go through AddItem and RemoveItem.
package catalog

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/chefmenu/app/models"
	"github.com/shashiranjanraj/chefmenu/pkg/collection"
	"github.com/shashiranjanraj/chefmenu/pkg/event"
)

// Event names fired by a catalog built WithEvents.
const (
	EventItemAdded    = "menu.item_added"
	EventItemRemoved  = "menu.item_removed"
	EventItemRejected = "menu.item_rejected"
)

// ItemRejected is the payload of EventItemRejected.
type ItemRejected struct {
	Candidate  Candidate
	Violations []Violation
}

// Catalog is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	items []models.MenuItem

	newID  func() string
	now    func() time.Time
	events *event.Dispatcher
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithEvents makes the catalog announce mutations on d.
func WithEvents(d *event.Dispatcher) Option {
	return func(c *Catalog) { c.events = d }
}

// WithIDGenerator replaces the UUIDv7 id source.
func WithIDGenerator(fn func() string) Option {
	return func(c *Catalog) { c.newID = fn }
}

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(fn func() time.Time) Option {
	return func(c *Catalog) { c.now = fn }
}

// New returns an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		items: []models.MenuItem{},
		newID: newUUID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// AddItem validates c and appends it. On failure the returned error is a
// *ValidationError naming every broken rule, and the catalog is unchanged.
func (c *Catalog) AddItem(cand Candidate) (models.MenuItem, error) {
	item, verr := check(cand)
	if verr != nil {
		c.fire(EventItemRejected, ItemRejected{Candidate: cand, Violations: verr.Violations()})
		return models.MenuItem{}, verr
	}

	c.mu.Lock()
	item.ID = c.uniqueIDLocked()
	item.CreatedAt = c.now()
	c.items = append(c.items, item)
	c.mu.Unlock()

	c.fire(EventItemAdded, item)
	return item, nil
}

func (c *Catalog) uniqueIDLocked() string {
	for {
		id := c.newID()
		if c.indexLocked(id) < 0 {
			return id
		}
	}
}

// RemoveItem deletes the item with id and reports whether one was removed.
// Removing an unknown id is a no-op.
func (c *Catalog) RemoveItem(id string) bool {
	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	removed := c.items[i]
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	c.mu.Unlock()

	c.fire(EventItemRemoved, removed)
	return true
}

func (c *Catalog) indexLocked(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the item with id.
func (c *Catalog) Find(id string) (models.MenuItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.items[i], true
	}
	return models.MenuItem{}, false
}

// AllItems returns a copy of the whole menu in insertion order.
func (c *Catalog) AllItems() []models.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemsByCourse returns the dishes of one course in insertion order. The
// result is empty, never nil, when the course has none.
func (c *Catalog) ItemsByCourse(course models.CourseID) []models.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return byCourse(c.items, course)
}

func byCourse(items []models.MenuItem, course models.CourseID) []models.MenuItem {
	out := collection.Filter(items, func(it models.MenuItem) bool { return it.Course == course })
	if out == nil {
		return []models.MenuItem{}
	}
	return out
}

// TotalCount is the number of dishes on the menu.
func (c *Catalog) TotalCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// AveragePriceByCourse is AveragePrice over one course.
func (c *Catalog) AveragePriceByCourse(course models.CourseID) string {
	return AveragePrice(c.ItemsByCourse(course))
}

// OverallAveragePrice is AveragePrice over the whole menu.
func (c *Catalog) OverallAveragePrice() string {
	return AveragePrice(c.AllItems())
}

// AveragePrice is the mean price of items with two decimals, or "0.00" when
// items is empty.
func AveragePrice(items []models.MenuItem) string {
	return models.FormatAmount(meanPrice(items))
}

func meanPrice(items []models.MenuItem) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := collection.Sum(items, func(it models.MenuItem) float64 { return it.Price })
	if !math.IsInf(sum, 0) {
		return sum / float64(len(items))
	}
	// The sum of very large prices overflows; a running mean does not.
	var mean float64
	for i, it := range items {
		mean += (it.Price - mean) / float64(i+1)
	}
	return mean
}

// CourseStats summarises one course.
type CourseStats struct {
	Course  models.Course `json:"course"`
	Count   int           `json:"count"`
	Average string        `json:"average"`
}

// Stats is a consistent snapshot of the menu totals.
type Stats struct {
	Total   int           `json:"total"`
	Average string        `json:"average"`
	Courses []CourseStats `json:"courses"`
}

// Stats computes totals from a single snapshot, so counts and averages
// always agree with each other.
func (c *Catalog) Stats() Stats {
	items := c.AllItems()
	s := Stats{
		Total:   len(items),
		Average: AveragePrice(items),
	}
	for _, course := range models.Courses() {
		in := byCourse(items, course.ID)
		s.Courses = append(s.Courses, CourseStats{
			Course:  course,
			Count:   len(in),
			Average: AveragePrice(in),
		})
	}
	return s
}

func (c *Catalog) fire(name string, payload interface{}) {
	if c.events != nil {
		c.events.Fire(name, payload)
	}
}

// IsValidationError unwraps err into a *ValidationError.
func IsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}
