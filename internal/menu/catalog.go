package menu

import (
	"github.com/shopspring/decimal"

	"github.com/spicetable/api/internal/enum"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var catalog = []Item{
	{
		ID:           "app-1",
		Name:         "Crispy Spring Rolls",
		Description:  "Golden-fried rolls stuffed with cabbage, carrot and glass noodles, sweet chili dip",
		Price:        price("6.50"),
		Category:     enum.CategoryAppetizer,
		Image:        "/images/spring-rolls.jpg",
		IsVegetarian: true,
		Rating:       4.5,
	},
	{
		ID:          "app-2",
		Name:        "Chili Garlic Wings",
		Description: "Twice-fried chicken wings tossed in a fiery chili garlic glaze",
		Price:       price("8.99"),
		Category:    enum.CategoryAppetizer,
		Image:       "/images/chili-wings.jpg",
		IsSpicy:     true,
		Popular:     true,
		Rating:      4.7,
	},
	{
		ID:           "app-3",
		Name:         "Paneer Tikka Skewers",
		Description:  "Char-grilled cottage cheese with peppers in smoked yogurt marinade",
		Price:        price("7.25"),
		Category:     enum.CategoryAppetizer,
		Image:        "/images/paneer-tikka.jpg",
		IsVegetarian: true,
		IsSpicy:      true,
		Rating:       4.4,
	},
	{
		ID:          "main-1",
		Name:        "Butter Chicken",
		Description: "Tandoori chicken simmered in a silky tomato-butter gravy, served with basmati rice",
		Price:       price("14.50"),
		Category:    enum.CategoryMainCourse,
		Image:       "/images/butter-chicken.jpg",
		Popular:     true,
		Rating:      4.9,
	},
	{
		ID:           "main-2",
		Name:         "Vegetable Biryani",
		Description:  "Layered saffron rice with seasonal vegetables, raita on the side",
		Price:        price("11.00"),
		Category:     enum.CategoryMainCourse,
		Image:        "/images/veg-biryani.jpg",
		IsVegetarian: true,
		IsSpicy:      true,
		Rating:       4.3,
	},
	{
		ID:          "main-3",
		Name:        "Lamb Rogan Josh",
		Description: "Slow-braised lamb in Kashmiri chili and caramelized onion sauce",
		Price:       price("16.75"),
		Category:    enum.CategoryMainCourse,
		Image:       "/images/rogan-josh.jpg",
		IsSpicy:     true,
		Rating:      4.6,
	},
	{
		ID:           "main-4",
		Name:         "Dal Makhani",
		Description:  "Black lentils simmered overnight with butter and cream",
		Price:        price("10.25"),
		Category:     enum.CategoryMainCourse,
		Image:        "/images/dal-makhani.jpg",
		IsVegetarian: true,
		Popular:      true,
		Rating:       4.8,
	},
	{
		ID:           "des-1",
		Name:         "Gulab Jamun",
		Description:  "Warm milk dumplings soaked in cardamom-rose syrup",
		Price:        price("5.50"),
		Category:     enum.CategoryDessert,
		Image:        "/images/gulab-jamun.jpg",
		IsVegetarian: true,
		Popular:      true,
		Rating:       4.7,
	},
	{
		ID:           "des-2",
		Name:         "Mango Kulfi",
		Description:  "Dense frozen mango cream on a stick, crushed pistachio",
		Price:        price("4.75"),
		Category:     enum.CategoryDessert,
		Image:        "/images/mango-kulfi.jpg",
		IsVegetarian: true,
		Rating:       4.5,
	},
	{
		ID:           "bev-1",
		Name:         "Masala Chai",
		Description:  "Spiced black tea brewed with milk and jaggery",
		Price:        price("3.25"),
		Category:     enum.CategoryBeverage,
		Image:        "/images/masala-chai.jpg",
		IsVegetarian: true,
		Rating:       4.6,
	},
	{
		ID:           "bev-2",
		Name:         "Sweet Lassi",
		Description:  "Churned yogurt drink with saffron and cardamom",
		Price:        price("4.00"),
		Category:     enum.CategoryBeverage,
		Image:        "/images/sweet-lassi.jpg",
		IsVegetarian: true,
		Popular:      true,
		Rating:       4.4,
	},
	{
		ID:           "bev-3",
		Name:         "Fresh Lime Soda",
		Description:  "Sparkling lime cooler, salted or sweet",
		Price:        price("3.50"),
		Category:     enum.CategoryBeverage,
		Image:        "/images/lime-soda.jpg",
		IsVegetarian: true,
		Rating:       4.2,
	},
}
