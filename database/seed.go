package database

import (
	"log"
	"takeout_manager/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// SeedData fills an empty menu so a fresh install has something to sell.
func SeedData(db *gorm.DB) {
	var count int64
	db.Model(&model.MenuItem{}).Count(&count)
	if count > 0 {
		return
	}

	items := []model.MenuItem{
		{
			Name:        "Margherita Pizza",
			Description: "Tomato, mozzarella, fresh basil",
			Price:       9.50,
			Category:    "Pizza",
			Available:   true,
			Options: model.MenuOptions{
				{Name: "Extra cheese", Price: 1.50},
				{Name: "Large (32cm)", Price: 3.00},
			},
		},
		{
			Name:        "Pizza Salami",
			Description: "Tomato, mozzarella, salami",
			Price:       10.50,
			Category:    "Pizza",
			Available:   true,
			Options: model.MenuOptions{
				{Name: "Extra cheese", Price: 1.50},
				{Name: "Large (32cm)", Price: 3.00},
			},
		},
		{
			Name:        "Caesar Salad",
			Description: "Romaine, parmesan, croutons, caesar dressing",
			Price:       8.00,
			Category:    "Salads",
			Available:   true,
			Options: model.MenuOptions{
				{Name: "Grilled chicken", Price: 2.50},
			},
		},
		{
			Name:        "Spaghetti Bolognese",
			Description: "House-made beef ragu",
			Price:       11.00,
			Category:    "Pasta",
			Available:   true,
		},
		{
			Name:        "Tiramisu",
			Description: "Classic, made in-house",
			Price:       5.50,
			Category:    "Desserts",
			Available:   true,
		},
		{
			Name:        "Sparkling Water 0.5l",
			Description: "",
			Price:       2.50,
			Category:    "Drinks",
			Available:   true,
		},
	}

	for i := range items {
		items[i].Slug = slug.Make(items[i].Name)
	}

	if err := db.Create(&items).Error; err != nil {
		log.Printf("Seeding menu failed: %v", err)
		return
	}
	log.Printf("Seeded %d menu items", len(items))
}
