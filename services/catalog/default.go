package catalog

// Default returns the compiled-in catalog mirroring data/logistics.json.
// It keeps the assistant functional when the data file is absent.
func Default() *Store {
	store := &Store{locations: make(map[string]Location)}

	add := func(key, policy, food string, packages ...Package) {
		loc := Location{
			Key:           key,
			PolicySummary: policy,
			FoodSummary:   food,
			packages:      make(map[string]Package, len(packages)),
		}
		for _, pkg := range packages {
			loc.packages[pkg.Key] = pkg
			loc.order = append(loc.order, pkg.Key)
		}
		store.locations[key] = loc
		store.order = append(store.order, key)
	}

	add("coorg",
		"No alcohol inside forest zones. Cancellation free up to 48 hours before check-in.",
		"South Indian breakfast, campfire BBQ dinner. Veg and non-veg options.",
		Package{Key: "module_a", Name: "Module A: Riverside Camping", Type: "Camping", Price: 1500, Capacity: 10, Itinerary: "Day 1: Riverside check-in, kayaking, campfire dinner."},
		Package{Key: "module_b", Name: "Module B: Coffee Estate Glamping", Type: "Glamping", Price: 3500, Capacity: 6, Itinerary: "Day 1: Estate walk, coffee tasting, luxury tent stay."},
		Package{Key: "module_combo", Name: "3-Day Full Adventure Pack", Type: "Combo", Price: 7500, Capacity: 8, Itinerary: "Day 1: Camping. Day 2: Abbey Falls trek. Day 3: Estate glamping."},
	)
	add("wayanad",
		"Plastic-free zone. Guided treks mandatory beyond base camp.",
		"Kerala sadya lunch, bonfire barbecue. Veg and non-veg options.",
		Package{Key: "module_a", Name: "Module A: Chembra Trekking Camp", Type: "Trekking", Price: 1800, Capacity: 12, Itinerary: "Day 1: Chembra peak trek, heart lake visit, tent stay."},
		Package{Key: "module_b", Name: "Module B: Treehouse Glamping", Type: "Glamping", Price: 4000, Capacity: 4, Itinerary: "Day 1: Treehouse check-in, spice plantation tour."},
		Package{Key: "module_combo", Name: "3-Day Full Adventure Pack", Type: "Combo", Price: 8200, Capacity: 6, Itinerary: "Day 1: Trek. Day 2: Edakkal caves. Day 3: Treehouse stay."},
	)
	add("kodaikanal",
		"Campfires only in designated pits. Quiet hours after 10pm.",
		"Hill-station breakfast, lakeside dinner. Veg and non-veg options.",
		Package{Key: "module_a", Name: "Module A: Lakeside Camping", Type: "Camping", Price: 1600, Capacity: 10, Itinerary: "Day 1: Lakeside pitch, cycling, stargazing session."},
		Package{Key: "module_b", Name: "Module B: Cloud Farm Glamping", Type: "Glamping", Price: 3800, Capacity: 5, Itinerary: "Day 1: Cloud farm dome stay, valley viewpoint walk."},
		Package{Key: "module_combo", Name: "3-Day Full Adventure Pack", Type: "Combo", Price: 7900, Capacity: 7, Itinerary: "Day 1: Camping. Day 2: Pillar rocks and caves. Day 3: Dome stay."},
	)

	return store
}
