// Package listeners reacts to catalog events: it keeps the menu metrics
// current and writes an audit line for every mutation.
package listeners

import (
	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/models"
	"github.com/shashiranjanraj/chefmenu/pkg/event"
	"github.com/shashiranjanraj/chefmenu/pkg/logger"
	"github.com/shashiranjanraj/chefmenu/pkg/metrics"
)

// Register wires the menu listeners onto d. c is read to refresh the
// per-course gauges, which are also set once immediately.
func Register(d *event.Dispatcher, c *catalog.Catalog) {
	d.Listen(catalog.EventItemAdded, func(payload interface{}) {
		item, ok := payload.(models.MenuItem)
		if !ok {
			return
		}
		metrics.MenuMutations.WithLabelValues("add").Inc()
		refreshGauges(c)
		logger.Info("menu item added",
			"id", item.ID,
			"name", item.Name,
			"course", string(item.Course),
			"price", item.DisplayPrice(),
		)
	})

	d.Listen(catalog.EventItemRemoved, func(payload interface{}) {
		item, ok := payload.(models.MenuItem)
		if !ok {
			return
		}
		metrics.MenuMutations.WithLabelValues("remove").Inc()
		refreshGauges(c)
		logger.Info("menu item removed", "id", item.ID, "name", item.Name)
	})

	d.Listen(catalog.EventItemRejected, func(payload interface{}) {
		rej, ok := payload.(catalog.ItemRejected)
		if !ok {
			return
		}
		names := make([]string, len(rej.Violations))
		for i, v := range rej.Violations {
			metrics.ValidationFailures.WithLabelValues(string(v)).Inc()
			names[i] = string(v)
		}
		logger.Debug("menu item rejected", "violations", names)
	})

	refreshGauges(c)
}

func refreshGauges(c *catalog.Catalog) {
	for _, cs := range c.Stats().Courses {
		metrics.MenuItems.WithLabelValues(string(cs.Course.ID)).Set(float64(cs.Count))
	}
}
