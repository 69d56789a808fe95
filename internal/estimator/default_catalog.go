package estimator

// Прайс-лист студии по умолчанию. Загружается один раз при инициализации
// пакета; при необходимости заменяется файлом через LoadCatalogFile.
var defaultCatalog = mustCatalog(
	[]WebsiteType{
		{ID: "landing", Name: "Landing Page", BasePrice: 8000, BaseDays: 7},
		{ID: "business", Name: "Business Website", BasePrice: 15000, BaseDays: 14},
		{ID: "ecommerce", Name: "E-commerce", BasePrice: 35000, BaseDays: 30},
		{ID: "webapp", Name: "Web Application", BasePrice: 50000, BaseDays: 45},
		{ID: "blog", Name: "Blog", BasePrice: 12000, BaseDays: 10},
		{ID: "portfolio", Name: "Portfolio", BasePrice: 10000, BaseDays: 8},
	},
	[]Complexity{
		{ID: "basic", Name: "Basic", PriceMultiplier: 1.0, DaysMultiplier: 1.0},
		{ID: "standard", Name: "Standard", PriceMultiplier: 1.3, DaysMultiplier: 1.3},
		{ID: "advanced", Name: "Advanced", PriceMultiplier: 1.6, DaysMultiplier: 1.5},
		{ID: "premium", Name: "Premium", PriceMultiplier: 2.0, DaysMultiplier: 1.8},
	},
	[]Feature{
		{ID: "contact_form", Name: "Contact Form", Price: 1500, Days: 1},
		{ID: "gallery", Name: "Photo Gallery", Price: 2500, Days: 2},
		{ID: "social_integration", Name: "Social Media Integration", Price: 2000, Days: 1},
		{ID: "dark_mode", Name: "Dark Mode", Price: 2000, Days: 1},
		{ID: "analytics", Name: "Analytics", Price: 3000, Days: 2},
		{ID: "newsletter", Name: "Newsletter", Price: 3000, Days: 2},
		{ID: "reviews", Name: "Customer Reviews", Price: 3500, Days: 2},
		{ID: "seo", Name: "SEO Optimization", Price: 4000, Days: 2},
		{ID: "search", Name: "Site Search", Price: 4000, Days: 3},
		{ID: "live_chat", Name: "Live Chat", Price: 4500, Days: 3},
		{ID: "auth", Name: "User Authentication", Price: 5000, Days: 3},
		{ID: "blog_module", Name: "Blog Module", Price: 5000, Days: 4},
		{ID: "push_notifications", Name: "Push Notifications", Price: 5500, Days: 4},
		{ID: "multilanguage", Name: "Multi-language", Price: 6000, Days: 4},
		{ID: "booking", Name: "Online Booking", Price: 7000, Days: 5},
		{ID: "payment_gateway", Name: "Payment Gateway", Price: 8000, Days: 5},
		{ID: "admin_panel", Name: "Admin Panel", Price: 9000, Days: 7},
		{ID: "api_integration", Name: "API Integration", Price: 9000, Days: 6},
		{ID: "crm_integration", Name: "CRM Integration", Price: 10000, Days: 7},
		{ID: "custom_design", Name: "Custom Design", Price: 12000, Days: 8},
	},
	[]SupportPlan{
		{ID: "none", Name: "No Support", FlatPrice: 0, Months: 0},
		{ID: "basic", Name: "Basic Support", FlatPrice: 3000, Months: 1},
		{ID: "standard", Name: "Standard Support", FlatPrice: 8000, Months: 3},
		{ID: "premium", Name: "Premium Support", FlatPrice: 15000, Months: 6},
	},
)

// DefaultCatalog возвращает встроенный прайс-лист.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func mustCatalog(types []WebsiteType, complexities []Complexity, features []Feature, plans []SupportPlan) *Catalog {
	c, err := NewCatalog(types, complexities, features, plans)
	if err != nil {
		panic(err)
	}
	return c
}
