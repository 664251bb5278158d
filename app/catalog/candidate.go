package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/chefmenu/app/models"
	"github.com/shashiranjanraj/chefmenu/pkg/validate"
)

func init() {
	validate.Register("course", models.IsCourse, "The selected %s is invalid.")
}

// Candidate is raw form input for a new dish. Every field is a string, as
// typed by the chef; AddItem trims and parses it.
type Candidate struct {
	Name        string `json:"name"        validate:"required,utf8"`
	Description string `json:"description" validate:"required,utf8,min=10"`
	Course      string `json:"course"      validate:"required,course"`
	Price       string `json:"price"       validate:"required,numeric,finite,gt=0"`
}

// Violation is one broken add-item rule.
type Violation string

const (
	EmptyName           Violation = "empty_name"
	EmptyDescription    Violation = "empty_description"
	DescriptionTooShort Violation = "description_too_short"
	CourseNotSelected   Violation = "course_not_selected"
	PriceRequired       Violation = "price_required"
	PriceNotPositive    Violation = "price_not_positive"
)

var violationInfo = map[Violation]struct {
	field   string
	message string
	order   int
}{
	EmptyName:           {"name", "Dish name is required", 0},
	EmptyDescription:    {"description", "Description is required", 1},
	DescriptionTooShort: {"description", "Description must be at least 10 characters", 1},
	CourseNotSelected:   {"course", "Please select a course", 2},
	PriceRequired:       {"price", "Price is required", 3},
	PriceNotPositive:    {"price", "Please enter a valid price greater than 0", 3},
}

// Field is the form field the violation belongs to.
func (v Violation) Field() string { return violationInfo[v].field }

// Message is the inline text shown next to the field.
func (v Violation) Message() string { return violationInfo[v].message }

// ruleViolations maps a (field, validator rule) pair to its violation.
var ruleViolations = map[string]map[string]Violation{
	"name": {
		"required": EmptyName,
		"utf8":     EmptyName,
	},
	"description": {
		"required": EmptyDescription,
		"utf8":     EmptyDescription,
		"min":      DescriptionTooShort,
	},
	"course": {
		"required": CourseNotSelected,
		"course":   CourseNotSelected,
	},
	"price": {
		"required": PriceRequired,
		"numeric":  PriceRequired,
		"finite":   PriceNotPositive,
		"gt":       PriceNotPositive,
	},
}

// ValidationError lists every rule a rejected candidate broke.
type ValidationError struct {
	violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.violations))
	for i, v := range e.violations {
		parts[i] = string(v)
	}
	return "invalid menu item: " + strings.Join(parts, ", ")
}

// Violations returns the violations in form order: name, description,
// course, price.
func (e *ValidationError) Violations() []Violation {
	out := make([]Violation, len(e.violations))
	copy(out, e.violations)
	return out
}

// Has reports whether v is among the violations.
func (e *ValidationError) Has(v Violation) bool {
	for _, got := range e.violations {
		if got == v {
			return true
		}
	}
	return false
}

// Fields maps each broken field to its violation.
func (e *ValidationError) Fields() map[string]Violation {
	out := make(map[string]Violation, len(e.violations))
	for _, v := range e.violations {
		out[v.Field()] = v
	}
	return out
}

// Messages maps each broken field to its inline message.
func (e *ValidationError) Messages() map[string]string {
	out := make(map[string]string, len(e.violations))
	for _, v := range e.violations {
		out[v.Field()] = v.Message()
	}
	return out
}

// check validates c and, when it passes, returns the normalized item fields.
func check(c Candidate) (models.MenuItem, *ValidationError) {
	failures := validate.Check(c)
	if len(failures) > 0 {
		var vs []Violation
		for field, f := range failures {
			if v, ok := ruleViolations[field][f.Rule]; ok {
				vs = append(vs, v)
			}
		}
		sort.Slice(vs, func(i, j int) bool {
			return violationInfo[vs[i]].order < violationInfo[vs[j]].order
		})
		return models.MenuItem{}, &ValidationError{violations: vs}
	}

	price, _ := strconv.ParseFloat(strings.TrimSpace(c.Price), 64)
	return models.MenuItem{
		Name:        strings.TrimSpace(c.Name),
		Description: strings.TrimSpace(c.Description),
		Course:      models.CourseID(strings.TrimSpace(c.Course)),
		Price:       price,
	}, nil
}
