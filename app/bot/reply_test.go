package bot_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/chefmenu/app/bot"
	"github.com/shashiranjanraj/chefmenu/app/catalog"
)

func seeded(t *testing.T) *catalog.Catalog {
	t.Helper()
	n := 0
	c := catalog.New(catalog.WithIDGenerator(func() string { n++; return "item-" + strconv.Itoa(n) }))
	require.NoError(t, catalog.SeedSample(c))
	return c
}

func TestAnswerStart(t *testing.T) {
	r := bot.Answer(catalog.New(), "Cristoffel", "/start")
	assert.True(t, strings.HasPrefix(r.Text, "Welcome to Cristoffel's kitchen!\nPrivate Culinary Experiences\n"))

	require.NotNil(t, r.Keyboard)
	rows := r.Keyboard.InlineKeyboard
	require.Len(t, rows, 4)
	assert.Equal(t, "All Items", rows[0][0].Text)
	assert.Equal(t, "course:all", *rows[0][0].CallbackData)
	assert.Len(t, rows[1], 2)
	assert.Len(t, rows[3], 1)
	assert.Equal(t, "💎 Specials", rows[3][0].Text)
	assert.Equal(t, "course:specials", *rows[3][0].CallbackData)
}

func TestAnswerMenu(t *testing.T) {
	c := seeded(t)

	r := bot.Answer(c, "Cristoffel", "/menu mains")
	assert.True(t, strings.HasPrefix(r.Text, "Menu: 🍖 Mains\n"))
	assert.Contains(t, r.Text, "• Truffle Risotto  R285.00\n")
	assert.NotContains(t, r.Text, "Malva Pudding")

	same := bot.Answer(c, "Cristoffel", "/menu@chefmenu_bot  MAINS")
	assert.Equal(t, r.Text, same.Text)

	all := bot.Answer(c, "Cristoffel", "/menu")
	assert.True(t, strings.HasPrefix(all.Text, "Menu: All Items\n"))
	assert.Contains(t, all.Text, "Malva Pudding")

	empty := bot.Answer(catalog.New(), "Cristoffel", "/menu")
	assert.Equal(t, "Menu: All Items\n\nNo menu items available yet\n", empty.Text)
}

func TestAnswerCoursesAndStats(t *testing.T) {
	c := seeded(t)

	courses := bot.Answer(c, "Cristoffel", "/courses").Text
	assert.Contains(t, courses, "🥗 Appetizers (2)")
	assert.Contains(t, courses, "🍰 Desserts (1)")

	stats := bot.Answer(c, "Cristoffel", "/stats").Text
	assert.True(t, strings.HasPrefix(stats, "Total items: 7\nAverage price: R215.00\n"))
	assert.Contains(t, stats, "🥗 Appetizers: 2, avg R155.00")
	assert.Contains(t, stats, "🍖 Mains: 2, avg R302.50")

	none := bot.Answer(catalog.New(), "Cristoffel", "/stats").Text
	assert.True(t, strings.HasPrefix(none, "Total items: 0\nAverage price: R0.00\n"))
}

func TestAnswerUnknown(t *testing.T) {
	for _, text := range []string{"hello", "", "/order pizza"} {
		r := bot.Answer(catalog.New(), "Cristoffel", text)
		assert.Contains(t, r.Text, "Try /menu", text)
		assert.Nil(t, r.Keyboard)
	}
}

func TestAnswerCallback(t *testing.T) {
	c := seeded(t)

	r, ok := bot.AnswerCallback(c, "course:desserts")
	require.True(t, ok)
	assert.Contains(t, r.Text, "Malva Pudding")
	assert.NotNil(t, r.Keyboard)

	r, ok = bot.AnswerCallback(c, "course:soups")
	require.True(t, ok)
	assert.Contains(t, r.Text, "No items in soups yet")

	_, ok = bot.AnswerCallback(c, "lang:uz")
	assert.False(t, ok)
}
