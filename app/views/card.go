package views

import (
	"strings"

	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/models"
)

// Card renders the guest menu as plain text, grouped by course in course
// order:
//
//	Menu: All Items
//
//	🍖 Mains
//	• Truffle Risotto  R285.00
//	  Creamy Arborio rice with truffle
func Card(g catalog.GuestMenu) string {
	var b strings.Builder
	b.WriteString("Menu: ")
	b.WriteString(cardTitle(g.Filter))
	b.WriteString("\n")

	if len(g.Items) == 0 {
		b.WriteString("\n")
		b.WriteString(guestEmptyState(g.Filter))
		b.WriteString("\n")
		return b.String()
	}

	for _, sec := range sections(g.Items) {
		b.WriteString("\n")
		b.WriteString(sec.Course.Label())
		b.WriteString("\n")
		for _, it := range sec.Items {
			b.WriteString("• ")
			b.WriteString(it.Name)
			b.WriteString("  ")
			b.WriteString(it.PriceLabel)
			b.WriteString("\n  ")
			b.WriteString(it.Description)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func cardTitle(filter string) string {
	if filter == catalog.FilterAll {
		return AllItemsLabel
	}
	if course, ok := models.LookupCourse(models.CourseID(filter)); ok {
		return course.Label()
	}
	return filter
}
