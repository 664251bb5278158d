package graph_test

import (
	"strconv"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/graph"
)

func query(t *testing.T, c *catalog.Catalog, q string) map[string]interface{} {
	t.Helper()
	schema, err := graph.NewSchema(c)
	require.NoError(t, err)

	res := graphql.Do(graphql.Params{Schema: schema, RequestString: q})
	require.Empty(t, res.Errors)
	return res.Data.(map[string]interface{})
}

func seeded(t *testing.T) *catalog.Catalog {
	t.Helper()
	n := 0
	c := catalog.New(catalog.WithIDGenerator(func() string { n++; return "item-" + strconv.Itoa(n) }))
	require.NoError(t, catalog.SeedSample(c))
	return c
}

func TestCoursesQuery(t *testing.T) {
	data := query(t, catalog.New(), `{ courses { id name icon label } }`)
	courses := data["courses"].([]interface{})
	require.Len(t, courses, 5)
	assert.Equal(t, map[string]interface{}{
		"id": "appetizers", "name": "Appetizers", "icon": "🥗", "label": "🥗 Appetizers",
	}, courses[0])
}

func TestMenuQuery(t *testing.T) {
	c := seeded(t)

	data := query(t, c, `{ menu(course: "mains") { filter total heading { name } items { id name course courseName priceLabel } chips { id count active } } }`)
	menu := data["menu"].(map[string]interface{})
	assert.Equal(t, "mains", menu["filter"])
	assert.Equal(t, 7, menu["total"])
	assert.Equal(t, map[string]interface{}{"name": "Mains"}, menu["heading"])

	items := menu["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, map[string]interface{}{
		"id": "item-3", "name": "Truffle Risotto", "course": "mains", "courseName": "Mains", "priceLabel": "R285.00",
	}, items[0])

	chips := menu["chips"].([]interface{})
	require.Len(t, chips, 6)
	assert.Equal(t, map[string]interface{}{"id": "mains", "count": 2, "active": true}, chips[2])

	data = query(t, c, `{ menu { filter heading { name } emptyState } }`)
	menu = data["menu"].(map[string]interface{})
	assert.Equal(t, "all", menu["filter"])
	assert.Nil(t, menu["heading"])
	assert.Nil(t, menu["emptyState"])

	data = query(t, c, `{ menu(course: "soups") { items { id } emptyState } }`)
	menu = data["menu"].(map[string]interface{})
	assert.Empty(t, menu["items"])
	assert.Equal(t, "No items in soups yet", menu["emptyState"])
}

func TestItemsQuery(t *testing.T) {
	c := seeded(t)

	all := query(t, c, `{ items { name } }`)["items"].([]interface{})
	assert.Len(t, all, 7)

	apps := query(t, c, `{ items(course: "appetizers") { name price } }`)["items"].([]interface{})
	assert.Equal(t, []interface{}{
		map[string]interface{}{"name": "Beef Carpaccio", "price": 145.0},
		map[string]interface{}{"name": "Tuna Tartare", "price": 165.0},
	}, apps)
}

func TestStatsQuery(t *testing.T) {
	c := seeded(t)

	stats := query(t, c, `{ stats { total average courses { course { id } count average } } }`)["stats"].(map[string]interface{})
	assert.Equal(t, 7, stats["total"])
	assert.Equal(t, "215.00", stats["average"])

	courses := stats["courses"].([]interface{})
	require.Len(t, courses, 5)
	assert.Equal(t, map[string]interface{}{
		"course": map[string]interface{}{"id": "appetizers"}, "count": 2, "average": "155.00",
	}, courses[0])
}
