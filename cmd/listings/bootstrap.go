package main

import "listings/internal/store"

var demoListings = []store.NewListing{
	{
		Title:       "Sunny studio near the canal",
		Description: "Compact studio with south facing windows and a new kitchen.",
		Price:       950,
		Location:    "Canal Saint-Martin",
		City:        "Paris",
	},
	{
		Title:       "Family house with garden",
		Description: "Three bedrooms, quiet street, ten minutes from the station.",
		Price:       2100,
		Location:    "Croix-Rousse",
		City:        "Lyon",
	},
	{
		Title:       "Loft in a converted warehouse",
		Description: "Open plan loft with exposed brick and high ceilings.",
		Price:       1650,
		Location:    "Le Marais",
		City:        "Paris",
	},
	{
		Title:       "Sea view apartment",
		Description: "Two rooms, balcony over the bay, parking included.",
		Price:       1400,
		Location:    "Promenade des Anglais",
		City:        "Nice",
	},
}

// bootstrapDemoData fills an empty store with sample listings and reports how
// many were added.
func bootstrapDemoData(dataStore *store.Store) int {
	if dataStore.Count() > 0 {
		return 0
	}
	for _, listing := range demoListings {
		dataStore.CreateListing(listing)
	}
	return len(demoListings)
}
