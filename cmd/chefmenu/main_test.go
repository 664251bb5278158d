package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRouteList(t *testing.T) {
	out, err := execute(t, "route:list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], "METHOD"))
	assert.Contains(t, out, "/api/guest/menu/publish")
	assert.Contains(t, out, "menu.destroy")
}

func TestMenuCourses(t *testing.T) {
	out, err := execute(t, "menu:courses")
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(out, "\n"))
	assert.Contains(t, out, "desserts     🍰 Desserts\n")
}

func TestMenuCard(t *testing.T) {
	out, err := execute(t, "menu:card", "desserts")
	require.NoError(t, err)
	assert.Equal(t, "Menu: 🍰 Desserts\n\n🍰 Desserts\n• Malva Pudding  R95.00\n  Warm apricot sponge with vanilla custard\n", out)

	out, err = execute(t, "menu:card")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Menu: All Items\n"))

	_, err = execute(t, "menu:card", "soups")
	assert.ErrorContains(t, err, `unknown course "soups"`)
}
