package catalog

import (
	"strings"

	"github.com/shashiranjanraj/chefmenu/app/models"
	"github.com/shashiranjanraj/chefmenu/pkg/collection"
)

// FilterAll selects every course in the guest view.
const FilterAll = "all"

// CourseCount is one entry of the guest filter selector.
type CourseCount struct {
	Course models.Course `json:"course"`
	Count  int           `json:"count"`
}

// GuestMenu is what a diner sees for a given filter.
type GuestMenu struct {
	Filter string            `json:"filter"`
	Items  []models.MenuItem `json:"items"`
	Counts []CourseCount     `json:"counts"`
	Total  int               `json:"total"`
}

// NormalizeFilter maps "" to FilterAll and trims the rest.
func NormalizeFilter(filter string) string {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return FilterAll
	}
	return filter
}

// GuestView filters the menu for diners. filter is FilterAll or a course id;
// an unknown course id matches nothing. Counts always list every course.
func GuestView(c *Catalog, filter string) GuestMenu {
	filter = NormalizeFilter(filter)
	all := c.AllItems()

	g := GuestMenu{Filter: filter, Total: len(all)}
	if filter == FilterAll {
		g.Items = all
	} else {
		g.Items = byCourse(all, models.CourseID(filter))
	}

	g.Counts = collection.Map(models.Courses(), func(course models.Course) CourseCount {
		n := collection.Count(all, func(it models.MenuItem) bool { return it.Course == course.ID })
		return CourseCount{Course: course, Count: n}
	})
	return g
}
