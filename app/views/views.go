// Package views builds the screen models shown to the chef and to guests.
// Every builder is a pure function of the catalog state.
package views

import (
	"fmt"

	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/models"
	"github.com/shashiranjanraj/chefmenu/pkg/collection"
)

const (
	Subtitle       = "Private Culinary Experiences"
	HomeEmptyState = "No menu items yet. Manage your menu to add items."
	GuestEmpty     = "No menu items available yet"
	AllItemsLabel  = "All Items"
)

// ItemView is a dish as rendered on every screen.
type ItemView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Course      models.CourseID `json:"course"`
	CourseName  string          `json:"course_name"`
	CourseIcon  string          `json:"course_icon"`
	Price       float64         `json:"price"`
	PriceLabel  string          `json:"price_label"`
}

// Item renders one dish.
func Item(m models.MenuItem) ItemView {
	course, _ := models.LookupCourse(m.Course)
	return ItemView{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Course:      m.Course,
		CourseName:  course.Name,
		CourseIcon:  course.Icon,
		Price:       m.Price,
		PriceLabel:  m.DisplayPrice(),
	}
}

// Items renders dishes in order. The result is never nil.
func Items(ms []models.MenuItem) []ItemView {
	return collection.Map(ms, Item)
}

// CourseEmptyState is the text shown for a course with no dishes.
func CourseEmptyState(name string) string {
	return fmt.Sprintf("No items in %s yet", name)
}

// ─── Home ─────────────────────────────────────────────────────────────────────

// CourseSummary is one row of "Average Prices by Course".
type CourseSummary struct {
	Course  models.Course `json:"course"`
	Count   int           `json:"count"`
	Average string        `json:"average"`
}

// CourseSection is one course block of the complete menu.
type CourseSection struct {
	Course models.Course `json:"course"`
	Items  []ItemView    `json:"items"`
}

// HomeView is the chef's landing screen.
type HomeView struct {
	Greeting     string          `json:"greeting"`
	Subtitle     string          `json:"subtitle"`
	TotalItems   int             `json:"total_items"`
	AveragePrice string          `json:"average_price"`
	Courses      []CourseSummary `json:"courses"`
	Menu         []CourseSection `json:"menu"`
	EmptyState   string          `json:"empty_state,omitempty"`
}

// Home builds the landing screen from one consistent snapshot.
func Home(c *catalog.Catalog, chef string) HomeView {
	items := c.AllItems()
	stats := c.Stats()

	h := HomeView{
		Greeting:     fmt.Sprintf("Welcome %s!", chef),
		Subtitle:     Subtitle,
		TotalItems:   len(items),
		AveragePrice: "R" + catalog.AveragePrice(items),
		Courses: collection.Map(stats.Courses, func(cs catalog.CourseStats) CourseSummary {
			return CourseSummary{Course: cs.Course, Count: cs.Count, Average: "R" + cs.Average}
		}),
		Menu: sections(items),
	}
	if len(items) == 0 {
		h.EmptyState = HomeEmptyState
	}
	return h
}

// sections groups items by course in course order, skipping empty courses.
func sections(items []models.MenuItem) []CourseSection {
	out := []CourseSection{}
	groups := collection.GroupBy(items, func(m models.MenuItem) models.CourseID { return m.Course })
	for _, course := range models.Courses() {
		in := groups[course.ID]
		if len(in) == 0 {
			continue
		}
		out = append(out, CourseSection{Course: course, Items: Items(in)})
	}
	return out
}

// ─── Course ───────────────────────────────────────────────────────────────────

// CourseView is the screen for a single course.
type CourseView struct {
	Course     models.Course `json:"course"`
	Title      string        `json:"title"`
	Count      int           `json:"count"`
	Average    string        `json:"average"`
	Items      []ItemView    `json:"items"`
	EmptyState string        `json:"empty_state,omitempty"`
}

// Course builds the screen for id. ok is false for an unknown course.
func Course(c *catalog.Catalog, id models.CourseID) (CourseView, bool) {
	course, ok := models.LookupCourse(id)
	if !ok {
		return CourseView{}, false
	}
	items := c.ItemsByCourse(id)
	v := CourseView{
		Course:  course,
		Title:   course.Label(),
		Count:   len(items),
		Average: "R" + catalog.AveragePrice(items),
		Items:   Items(items),
	}
	if len(items) == 0 {
		v.EmptyState = CourseEmptyState(course.Name)
	}
	return v, true
}

// ─── Guest ────────────────────────────────────────────────────────────────────

// FilterChip is one button of the guest course filter.
type FilterChip struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Icon   string `json:"icon,omitempty"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// GuestPage is the diner-facing menu.
type GuestPage struct {
	Filter     string         `json:"filter"`
	Heading    *models.Course `json:"heading,omitempty"`
	Chips      []FilterChip   `json:"chips"`
	Items      []ItemView     `json:"items"`
	Total      int            `json:"total"`
	EmptyState string         `json:"empty_state,omitempty"`
}

// Guest builds the guest menu for filter ("all", "" or a course id).
func Guest(c *catalog.Catalog, filter string) GuestPage {
	return GuestFrom(catalog.GuestView(c, filter))
}

// GuestFrom renders an already computed guest view.
func GuestFrom(g catalog.GuestMenu) GuestPage {
	p := GuestPage{
		Filter: g.Filter,
		Items:  Items(g.Items),
		Total:  g.Total,
	}

	p.Chips = append(p.Chips, FilterChip{
		ID:     catalog.FilterAll,
		Label:  AllItemsLabel,
		Count:  g.Total,
		Active: g.Filter == catalog.FilterAll,
	})
	for _, cc := range g.Counts {
		p.Chips = append(p.Chips, FilterChip{
			ID:     string(cc.Course.ID),
			Label:  cc.Course.Name,
			Icon:   cc.Course.Icon,
			Count:  cc.Count,
			Active: g.Filter == string(cc.Course.ID),
		})
	}

	if course, ok := models.LookupCourse(models.CourseID(g.Filter)); ok {
		p.Heading = &course
	}
	if len(p.Items) == 0 {
		p.EmptyState = guestEmptyState(g.Filter)
	}
	return p
}

func guestEmptyState(filter string) string {
	if filter == catalog.FilterAll {
		return GuestEmpty
	}
	if course, ok := models.LookupCourse(models.CourseID(filter)); ok {
		return CourseEmptyState(course.Name)
	}
	return CourseEmptyState(filter)
}
