package seed

import (
	catalogdomain "github.com/dwikikusuma/phone-shop/internal/catalog/domain"
	userdomain "github.com/dwikikusuma/phone-shop/internal/user/domain"
)

func ptr[T any](v T) *T { return &v }

var Phones = []catalogdomain.Product{
	{
		Name:        "iPhone 15 Pro Max",
		Description: "Apple's flagship smartphone featuring A17 Pro chip, 48MP camera system with 5x optical zoom, titanium design, and Action button. Available in Natural Titanium, Blue Titanium, White Titanium, and Black Titanium. Features ProMotion display with always-on technology and Dynamic Island.",
		Price:       1199.99,
		Stock:       50,
		ImageURL:    ptr("https://example.com/iphone15promax.jpg"),
	},
	{
		Name:        "Samsung Galaxy S24 Ultra",
		Description: "Samsung's premium smartphone with Snapdragon 8 Gen 3 processor, 200MP main camera, built-in S Pen, and titanium frame. Features a stunning 6.8-inch QHD+ Dynamic AMOLED display with 120Hz refresh rate. Galaxy AI features for enhanced productivity and creativity.",
		Price:       1299.99,
		Stock:       45,
		ImageURL:    ptr("https://example.com/galaxys24ultra.jpg"),
	},
	{
		Name:        "Google Pixel 8 Pro",
		Description: "Google's AI-powered smartphone featuring Tensor G3 chip, exceptional computational photography with Magic Eraser and Best Take, 7 years of software updates. Pro camera system with 50MP main sensor and 48MP ultrawide. Temperature sensor and enhanced night sight.",
		Price:       999.99,
		Stock:       60,
		ImageURL:    ptr("https://example.com/pixel8pro.jpg"),
	},
	{
		Name:        "OnePlus 12",
		Description: "Flagship killer featuring Snapdragon 8 Gen 3, Hasselblad camera system with 50MP main sensor, 100W SUPERVOOC charging, and 5400mAh battery. 6.82-inch 2K LTPO display with 120Hz ProXDR. Aqua Touch technology for rain resistance.",
		Price:       799.99,
		Stock:       40,
		ImageURL:    ptr("https://example.com/oneplus12.jpg"),
	},
	{
		Name:        "Xiaomi 14 Ultra",
		Description: "Photography-focused flagship with Leica Summilux lenses, 1-inch Sony sensor, and variable aperture. Snapdragon 8 Gen 3 processor, 90W wired and 80W wireless charging. Professional photography kit available separately.",
		Price:       1099.99,
		Stock:       35,
		ImageURL:    ptr("https://example.com/xiaomi14ultra.jpg"),
	},
	{
		Name:        "iPhone 15",
		Description: "Apple's standard iPhone featuring A16 Bionic chip, 48MP main camera with 2x telephoto, Dynamic Island, and USB-C connectivity. Available in Pink, Yellow, Green, Blue, and Black. Ceramic Shield front and color-infused glass back.",
		Price:       799.99,
		Stock:       75,
		ImageURL:    ptr("https://example.com/iphone15.jpg"),
	},
	{
		Name:        "Samsung Galaxy Z Fold 5",
		Description: "Foldable smartphone with 7.6-inch main display and 6.2-inch cover screen. Snapdragon 8 Gen 2 processor, Flex Mode for hands-free video calls, and S Pen support. IPX8 water resistance and improved hinge design.",
		Price:       1799.99,
		Stock:       25,
		ImageURL:    ptr("https://example.com/galaxyzfold5.jpg"),
	},
	{
		Name:        "Google Pixel 8a",
		Description: "Affordable AI smartphone with Tensor G3 chip, 64MP main camera, and 7 years of updates. Features Magic Eraser, Photo Unblur, and Circle to Search. 6.1-inch OLED display with 120Hz refresh rate.",
		Price:       499.99,
		Stock:       80,
		ImageURL:    ptr("https://example.com/pixel8a.jpg"),
	},
	{
		Name:        "Nothing Phone (2)",
		Description: "Unique transparent design with Glyph Interface LED lighting. Snapdragon 8+ Gen 1 processor, 50MP dual camera system, and clean Nothing OS. 6.7-inch LTPO OLED display with 120Hz adaptive refresh rate.",
		Price:       599.99,
		Stock:       55,
		ImageURL:    ptr("https://example.com/nothingphone2.jpg"),
	},
	{
		Name:        "Sony Xperia 1 V",
		Description: "Professional-grade smartphone with 4K HDR OLED display, dedicated camera shutter button, and real-time tracking autofocus. Exmor T sensor for exceptional low-light performance. 3.5mm headphone jack and front-facing stereo speakers.",
		Price:       1399.99,
		Stock:       20,
		ImageURL:    ptr("https://example.com/xperia1v.jpg"),
	},
}

// Users are sample accounts; their passwords go through the normal hashing path.
var Users = []userdomain.CreateUserRequest{
	{Username: "testuser1", Email: "testuser1@example.com", Password: "hashed_password_123"},
	{Username: "testuser2", Email: "testuser2@example.com", Password: "hashed_password_456"},
	{Username: "admin", Email: "admin@phoneecommerce.com", Password: "hashed_admin_password"},
}
