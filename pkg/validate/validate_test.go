package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/chefmenu/pkg/validate"
)

type dishInput struct {
	Name        string `json:"name"        validate:"required,max=80"`
	Description string `json:"description" validate:"required,utf8,min=10"`
	Kind        string `json:"kind"        validate:"required,in=hot|cold|raw"`
	Price       string `json:"price"       validate:"required,numeric,finite,gt=0"`
	Serves      string `json:"serves"      validate:"nullable,integer,gte=1"`
}

func validDish() dishInput {
	return dishInput{
		Name:        "Truffle Risotto",
		Description: "Creamy Arborio rice with truffle",
		Kind:        "hot",
		Price:       "285.00",
	}
}

func TestValidInput(t *testing.T) {
	assert.Empty(t, validate.Check(validDish()))
}

func TestEveryFieldIsReported(t *testing.T) {
	failures := validate.Check(dishInput{})

	assert.Len(t, failures, 4)
	for _, field := range []string{"name", "description", "kind", "price"} {
		assert.Equal(t, "required", failures[field].Rule, field)
	}
	assert.NotContains(t, failures, "serves", "nullable field skipped when empty")
}

func TestWhitespaceIsEmpty(t *testing.T) {
	d := validDish()
	d.Name = "   \t"
	failures := validate.Check(d)
	assert.Equal(t, "required", failures["name"].Rule)
}

func TestMinCountsTrimmedRunes(t *testing.T) {
	d := validDish()
	d.Description = "   short     "
	assert.Equal(t, "min", validate.Check(d)["description"].Rule)

	d.Description = "  ten chars!  "[:12] // "  ten chars!" trims to 10
	assert.NotContains(t, validate.Check(d), "description")

	d.Description = "crème brû"
	assert.Equal(t, "min", validate.Check(d)["description"].Rule, "runes, not bytes")
}

func TestPriceRules(t *testing.T) {
	cases := []struct {
		price string
		rule  string
	}{
		{"", "required"},
		{"abc", "numeric"},
		{"12,50", "numeric"},
		{"0x1p3", "numeric"},
		{"1_000", "numeric"},
		{"12abc", "numeric"},
		{"1e", "numeric"},
		{"NaN", "numeric"},
		{"+Inf", "numeric"},
		{"Infinity", "numeric"},
		{"1e400", "finite"},
		{"0", "gt"},
		{"-5", "gt"},
		{" 19.99 ", ""},
		{"1e2", ""},
		{"+2.5E-1", ""},
		{".5", ""},
		{"5.", ""},
	}
	for _, tc := range cases {
		t.Run(tc.price, func(t *testing.T) {
			d := validDish()
			d.Price = tc.price
			f, ok := validate.Check(d)["price"]
			if tc.rule == "" {
				assert.False(t, ok, "unexpected failure %+v", f)
				return
			}
			assert.Equal(t, tc.rule, f.Rule)
		})
	}
}

func TestUTF8Rule(t *testing.T) {
	d := validDish()
	d.Description = strings.Repeat("\xff", 10)
	f := validate.Check(d)["description"]
	assert.Equal(t, "utf8", f.Rule)
	assert.Equal(t, "The description field must be valid UTF-8 text.", f.Message)

	d.Description = "Crème brûlée with berries"
	assert.Empty(t, validate.Check(d))
}

func TestNumericAcceptsNumberFields(t *testing.T) {
	var in struct {
		Tip float64 `json:"tip" validate:"numeric,lte=50"`
	}
	in.Tip = 1e21
	assert.Equal(t, "lte", validate.Check(in)["tip"].Rule)

	in.Tip = 12.5
	assert.Empty(t, validate.Check(in))
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Guests int     `json:"guests" validate:"required,gte=2,lte=12"`
		Tip    float64 `json:"tip"    validate:"max=50"`
	}
	f := validate.Check(in{Guests: 1})["guests"]
	assert.Equal(t, "gte", f.Rule)
	assert.Equal(t, "The guests must be at least 2.", f.Message)

	assert.Empty(t, validate.Check(in{Guests: 6, Tip: 50}))
	assert.Equal(t, "lte", validate.Check(in{Guests: 20})["guests"].Rule)

	f = validate.Check(in{Guests: 6, Tip: 51})["tip"]
	assert.Equal(t, "The tip must not exceed 50.", f.Message)
}

func TestInRule(t *testing.T) {
	d := validDish()
	d.Kind = "boiled"
	assert.Equal(t, "in", validate.Check(d)["kind"].Rule)

	d.Kind = "raw"
	assert.NotContains(t, validate.Check(d), "kind")
}

func TestCustomRule(t *testing.T) {
	validate.Register("shouting", func(raw string) bool {
		return raw == strings.ToUpper(raw)
	}, "The %s must be upper case.")

	type in struct {
		Code string `json:"code" validate:"required,shouting"`
	}
	f := validate.Check(in{Code: "abc"})["code"]
	assert.Equal(t, "shouting", f.Rule)
	assert.Equal(t, "The code must be upper case.", f.Message)
	assert.Empty(t, validate.Check(in{Code: "ABC"}))
}

func TestNullableStillValidatesWhenSet(t *testing.T) {
	d := validDish()
	d.Serves = "two"
	assert.Equal(t, "integer", validate.Check(d)["serves"].Rule)

	d.Serves = "0"
	assert.Equal(t, "gte", validate.Check(d)["serves"].Rule)

	d.Serves = "4"
	assert.Empty(t, validate.Check(d))
}

func TestMinMessageNamesCharacters(t *testing.T) {
	d := validDish()
	d.Description = "too short"
	assert.Equal(t, "The description must be at least 10 characters.", validate.Check(d)["description"].Message)
}

func TestNonStructIsIgnored(t *testing.T) {
	assert.Empty(t, validate.Check("not a struct"))
	assert.Len(t, validate.Check(&dishInput{Name: "x"}), 3, "pointers are dereferenced")
}
