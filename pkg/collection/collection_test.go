package collection_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/chefmenu/pkg/collection"
)

func TestMapFilter(t *testing.T) {
	nums := []int{1, 2, 3, 4}
	assert.Equal(t, []string{"1", "2", "3", "4"}, collection.Map(nums, strconv.Itoa))
	assert.Equal(t, []int{2, 4}, collection.Filter(nums, func(n int) bool { return n%2 == 0 }))
	assert.Nil(t, collection.Filter(nums, func(int) bool { return false }))
}

func TestGroupByKeepsOrder(t *testing.T) {
	words := []string{"mains", "malva", "dessert", "merlot", "dom"}
	groups := collection.GroupBy(words, func(s string) byte { return s[0] })
	assert.Equal(t, map[byte][]string{
		'm': {"mains", "malva", "merlot"},
		'd': {"dessert", "dom"},
	}, groups)
	assert.Empty(t, collection.GroupBy([]string(nil), func(s string) byte { return s[0] }))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 2, collection.Count([]int{1, 2, 3, 4}, func(n int) bool { return n > 2 }))
	assert.Zero(t, collection.Count([]int(nil), func(int) bool { return true }))
}

func TestSum(t *testing.T) {
	prices := []float64{100, 150, 200}
	assert.InDelta(t, 450.0, collection.Sum(prices, func(f float64) float64 { return f }), 1e-9)
	assert.Zero(t, collection.Sum(nil, func(f float64) float64 { return f }))
}
