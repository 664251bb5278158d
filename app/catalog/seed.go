package catalog

import "fmt"

// SampleMenu is the demo menu used when seeding is enabled.
var SampleMenu = []Candidate{
	{Name: "Beef Carpaccio", Description: "Thinly sliced beef with rocket and parmesan", Course: "appetizers", Price: "145.00"},
	{Name: "Tuna Tartare", Description: "Fresh tuna with avocado and citrus dressing", Course: "appetizers", Price: "165.00"},
	{Name: "Truffle Risotto", Description: "Creamy Arborio rice with truffle", Course: "mains", Price: "285.00"},
	{Name: "Braised Lamb Shank", Description: "Slow-cooked Karoo lamb with root vegetables", Course: "mains", Price: "320.00"},
	{Name: "Malva Pudding", Description: "Warm apricot sponge with vanilla custard", Course: "desserts", Price: "95.00"},
	{Name: "Rooibos Iced Tea", Description: "Chilled rooibos with honey and lemon", Course: "beverages", Price: "45.00"},
	{Name: "Chef's Tasting Plate", Description: "Five seasonal bites chosen by the chef", Course: "specials", Price: "450.00"},
}

// SeedSample adds SampleMenu to c through AddItem.
func SeedSample(c *Catalog) error {
	for _, cand := range SampleMenu {
		if _, err := c.AddItem(cand); err != nil {
			return fmt.Errorf("seed %q: %w", cand.Name, err)
		}
	}
	return nil
}
