package models_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/chefmenu/app/models"
)

func TestCoursesOrderAndCopy(t *testing.T) {
	cs := models.Courses()
	ids := make([]models.CourseID, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []models.CourseID{"appetizers", "mains", "desserts", "beverages", "specials"}, ids)

	cs[0].Name = "changed"
	assert.Equal(t, "Appetizers", models.Courses()[0].Name)
}

func TestLookupCourse(t *testing.T) {
	c, ok := models.LookupCourse(models.Specials)
	assert.True(t, ok)
	assert.Equal(t, "💎 Specials", c.Label())

	_, ok = models.LookupCourse("soups")
	assert.False(t, ok)
	assert.False(t, models.IsCourse(""))
	assert.True(t, models.IsCourse("mains"))
}

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{
		0:       "0.00",
		150:     "150.00",
		285:     "285.00",
		19.999:  "20.00",
		1.005e2: "100.50",
		0.125:   "0.13",
		-0.125:  "-0.13",
		0.375:   "0.38",
		2.675:   "2.67",
		8.345:   "8.34",
		1.005:   "1.00",
		-2.675:  "-2.67",
	}
	for in, want := range cases {
		assert.Equal(t, want, models.FormatAmount(in), "%v", in)
	}
	assert.Equal(t, "0.00", models.FormatAmount(math.NaN()))
	assert.Equal(t, "0.00", models.FormatAmount(math.Inf(-1)))
}

func TestDisplayPrice(t *testing.T) {
	item := models.MenuItem{Price: 45}
	assert.Equal(t, "R45.00", item.DisplayPrice())
	assert.Equal(t, "R155.00", models.FormatRand(155))
}
