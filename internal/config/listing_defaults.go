package config

import "github.com/spf13/viper"

const spinnyFrameBase = "https://mda.spinny.com/sp-file-system/public/2024-10-27/"

// demoFrames is the stock 10-angle walkaround shown when no listing is configured.
var demoFrames = []string{
	spinnyFrameBase + "41a8a8b2a63b414d81c687c80d30ede2/raw/file.JPG?q=85&w=320",
	spinnyFrameBase + "41a8a8b2a63b414d81c687c80d30ede2/raw/file.JPG?q=85&w=320",
	spinnyFrameBase + "953c9ed5b8e24caea1816de9beb6f53d/raw/file.JPG?q=85&w=320",
	spinnyFrameBase + "e7fb987326e3465dbbf6782dccee4d2c/raw/file.JPG?q=85&w=320",
	spinnyFrameBase + "e7fb987326e3465dbbf6782dccee4d2c/raw/file.JPG?q=85&w=320",
	spinnyFrameBase + "8d7b4bc2fdcf4188a934178e9d8cd167/raw/file.JPG?q=85&w=320",
	spinnyFrameBase + "6eee2a4ff0cf411eac08bc7560dc8e08/raw/file.JPG?q=85&w=320",
	spinnyFrameBase + "6eee2a4ff0cf411eac08bc7560dc8e08/raw/file.JPG?q=85&w=320",
	spinnyFrameBase + "7bda23a875de4550b17b006ba26bc30e/raw/file.JPG?q=85&w=320",
	spinnyFrameBase + "3bad01e406f9439684e5672e5c5bfdfd/raw/file.JPG?q=85&w=320",
}

func setListingDefaults(v *viper.Viper) {
	v.SetDefault("listing.model", "2021 Mahindra Thar LX 4WD")
	v.SetDefault("listing.year", 2021)
	v.SetDefault("listing.mileage", "25,000 km")
	v.SetDefault("listing.price", "₹14,50,000")
	v.SetDefault("listing.fuel_type", "Diesel")
	v.SetDefault("listing.transmission", "Manual")
	v.SetDefault("listing.sold_out", true)
	v.SetDefault("listing.frames", demoFrames)
	v.SetDefault("listing.hotspots", []map[string]interface{}{
		{
			"id":          "front-damage",
			"x":           47.1,
			"y":           53.1,
			"frame":       0,
			"title":       "Minor Scratch",
			"description": "Small scratch on front bumper - cosmetic damage only",
		},
		{
			"id":          "door-dent",
			"x":           79.9,
			"y":           48.2,
			"frame":       0,
			"title":       "Door Dent",
			"description": "Small dent on passenger door",
		},
		{
			"id":          "rear-damage",
			"x":           94.9,
			"y":           59.4,
			"frame":       5,
			"title":       "Rear Panel",
			"description": "Minor damage to rear panel",
		},
	})
}
