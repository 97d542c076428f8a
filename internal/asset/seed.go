package asset

import (
	"encoding/json"
	"fmt"
	"os"
)

// StorageKey is the mirror key the collection lives under.
const StorageKey = "hielo-polar-assets"

const unsplash = "https://images.unsplash.com/photo-%s?ixlib=rb-4.0.3&auto=format&fit=crop&w=900&q=60"

// Seed returns the built-in default collection. Each call returns a fresh copy.
func Seed() Collection {
	return Collection{
		{
			ID: "CON-001", Model: "Polar-3000XL", SerialNumber: "P3XL-12345", Status: StatusAvailable,
			Location: "Almacén Principal", LastMaintenance: "15/03/2023", Capacity: "500L",
			TemperatureRange: "-18°C a -22°C", ImageSrc: fmt.Sprintf(unsplash, "1562184552-997c461abbe6"),
		},
		{
			ID: "CON-002", Model: "Polar-1500M", SerialNumber: "P15M-67890", Status: StatusInUse,
			Location: "Cliente: Pescados Norte", LastMaintenance: "02/05/2023", AssignedTo: "Pescados Norte",
			Capacity: "250L", TemperatureRange: "-15°C a -18°C", ImageSrc: fmt.Sprintf(unsplash, "1596461010617-8549605ab3e3"),
		},
		{
			ID: "CON-003", Model: "Polar-2000M", SerialNumber: "P2M-24680", Status: StatusMaintenance,
			Location: "Taller Central", LastMaintenance: "10/01/2023", Capacity: "300L",
			TemperatureRange: "-20°C a -25°C", ImageSrc: fmt.Sprintf(unsplash, "1589096044321-9274646f36fa"),
		},
		{
			ID: "CON-004", Model: "Polar-1000S", SerialNumber: "P1S-13579", Status: StatusAvailable,
			Location: "Almacén Norte", LastMaintenance: "20/04/2023", Capacity: "150L",
			TemperatureRange: "-15°C a -18°C", ImageSrc: fmt.Sprintf(unsplash, "1594223274512-ad4803739b7c"),
		},
		{
			ID: "CON-005", Model: "Polar-3500XL", SerialNumber: "P35XL-54321", Status: StatusInUse,
			Location: "Cliente: Mariscos Sur", LastMaintenance: "05/02/2023", AssignedTo: "Mariscos Sur",
			Capacity: "600L", TemperatureRange: "-22°C a -25°C", ImageSrc: fmt.Sprintf(unsplash, "1595246007497-68ae3d6f44cc"),
		},
		{
			ID: "CON-006", Model: "Polar-2500L", SerialNumber: "P25L-97531", Status: StatusAvailable,
			Location: "Almacén Principal", LastMaintenance: "12/03/2023", Capacity: "400L",
			TemperatureRange: "-18°C a -22°C", ImageSrc: fmt.Sprintf(unsplash, "1584905066893-7d5c142ba4e1"),
		},
		{
			ID: "CON-007", Model: "Polar-1200S", SerialNumber: "P12S-86420", Status: StatusMaintenance,
			Location: "Taller Norte", LastMaintenance: "01/04/2023", Capacity: "180L",
			TemperatureRange: "-15°C a -18°C", ImageSrc: fmt.Sprintf(unsplash, "1588854337221-4cf9fa96059c"),
		},
		{
			ID: "CON-008", Model: "Polar-3000XL", SerialNumber: "P3XL-65432", Status: StatusInUse,
			Location: "Cliente: Hielos Centro", LastMaintenance: "18/02/2023", AssignedTo: "Hielos Centro",
			Capacity: "500L", TemperatureRange: "-18°C a -22°C", ImageSrc: fmt.Sprintf(unsplash, "1575663620136-5ebbfcc2c597"),
		},
	}
}

// LoadSeedFile reads a JSON array of assets to use as the seed collection.
// Every entry must validate and ids must be unique.
func LoadSeedFile(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed Collection
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	seen := make(map[string]struct{}, len(seed))
	for i := range seed {
		seed[i] = seed[i].Normalize()
		if err := seed[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		if _, dup := seen[seed[i].ID]; dup {
			return nil, fmt.Errorf("seed entry %d: duplicate id %q", i, seed[i].ID)
		}
		seen[seed[i].ID] = struct{}{}
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("seed file %s is empty", path)
	}
	return seed, nil
}
