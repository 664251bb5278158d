package models

// CourseID names one of the fixed menu courses.
type CourseID string

const (
	Appetizers CourseID = "appetizers"
	Mains      CourseID = "mains"
	Desserts   CourseID = "desserts"
	Beverages  CourseID = "beverages"
	Specials   CourseID = "specials"
)

// Course is a fixed category a dish belongs to.
type Course struct {
	ID   CourseID `json:"id"`
	Name string   `json:"name"`
	Icon string   `json:"icon"`
}

var courses = [...]Course{
	{ID: Appetizers, Name: "Appetizers", Icon: "🥗"},
	{ID: Mains, Name: "Mains", Icon: "🍖"},
	{ID: Desserts, Name: "Desserts", Icon: "🍰"},
	{ID: Beverages, Name: "Beverages", Icon: "🍷"},
	{ID: Specials, Name: "Specials", Icon: "💎"},
}

// Courses returns the five courses in menu order. The slice is a copy.
func Courses() []Course {
	out := make([]Course, len(courses))
	copy(out, courses[:])
	return out
}

// LookupCourse finds a course by id.
func LookupCourse(id CourseID) (Course, bool) {
	for _, c := range courses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

// IsCourse reports whether id names a known course.
func IsCourse(id string) bool {
	_, ok := LookupCourse(CourseID(id))
	return ok
}

// Label is the icon and name, e.g. "🍖 Mains".
func (c Course) Label() string { return c.Icon + " " + c.Name }
