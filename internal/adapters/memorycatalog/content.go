package memorycatalog

import (
	"context"
	"showcase-service/internal/core/domain"
)

// Стоковые фото, которые галерея показывает после основного изображения объекта
var stockGalleryImages = []string{
	"https://images.unsplash.com/photo-1545324418-cc1a3fa10c00",
	"https://images.unsplash.com/photo-1512917774080-9991f1c4c750",
}

var tourStops = []domain.TourStop{
	{URL: "/images/interior1.jpg", Title: "Living Room", Description: "Spacious living area with floor-to-ceiling windows"},
	{URL: "/images/interior2.jpg", Title: "Kitchen", Description: "Modern kitchen with premium appliances"},
	{URL: "/images/interior3.jpg", Title: "Master Bedroom", Description: "Large master suite with walk-in closet"},
	{URL: "/images/interior4.jpg", Title: "Bathroom", Description: "Luxury bathroom with marble finishes"},
}

var siteContent = domain.SiteContent{
	BrandName: "LuxuryBuildings",
	NavItems:  []string{"Home", "Buildings", "About", "Contact"},
	HeroImages: []string{
		"https://images.unsplash.com/photo-1486406146926-c627a92ad1ab",
		"https://images.unsplash.com/photo-1577495508048-b635879837f1",
		"https://images.unsplash.com/photo-1582407947304-fd86f028f716",
	},
	HeroHeadline: "Discover Extraordinary Spaces",
	HeroSubtitle: "Luxury buildings that redefine architectural excellence",
	HeroStats: []domain.Stat{
		{Number: "15+", Text: "Years Experience"},
		{Number: "200+", Text: "Properties"},
		{Number: "50+", Text: "Awards"},
		{Number: "1000+", Text: "Happy Clients"},
	},
	AboutTitle: "Building Dreams Since 2008",
	AboutText: "We specialize in creating extraordinary living spaces that combine luxury, " +
		"innovation, and sustainability. Our commitment to excellence has made us " +
		"the leading name in premium real estate.",
	AboutImage: "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab",
	AboutStats: []domain.Stat{
		{Number: "15+", Text: "Years of Excellence"},
		{Number: "200+", Text: "Premium Properties"},
		{Number: "1000+", Text: "Happy Clients"},
		{Number: "50+", Text: "Awards Won"},
	},
	AboutValues: []domain.CompanyValue{
		{Title: "Innovation", Text: "Smart building systems and forward-looking architecture in every project."},
		{Title: "Sustainability", Text: "Green certification, solar power and water reuse as a standard, not an option."},
		{Title: "Excellence", Text: "Premium materials and service that residents and tenants notice every day."},
	},
	ContactIntro: "Ready to find your dream property? Contact us today and let our experts guide you through the process.",
	ContactPhone: "+1 (555) 123-4567",
	ContactEmail: "contact@luxurybuildings.com",
	Specialist: domain.Specialist{
		Name:     "John Doe",
		Role:     "Real Estate Specialist",
		Bio:      "With over 10 years of experience, John is here to help you find your dream property.",
		PhotoURL: "https://images.unsplash.com/photo-1595152772835-219674b2a8a6?fit=max&fm=jpg&q=80&w=400",
	},
}

// ContentAdapter отдает статические тексты сайта и медиа страниц объектов
type ContentAdapter struct{}

func NewContentAdapter() *ContentAdapter {
	return &ContentAdapter{}
}

func (a *ContentAdapter) SiteContent(ctx context.Context) (*domain.SiteContent, error) {
	c := siteContent
	c.NavItems = append([]string(nil), siteContent.NavItems...)
	c.HeroImages = append([]string(nil), siteContent.HeroImages...)
	c.HeroStats = append([]domain.Stat(nil), siteContent.HeroStats...)
	c.AboutStats = append([]domain.Stat(nil), siteContent.AboutStats...)
	c.AboutValues = append([]domain.CompanyValue(nil), siteContent.AboutValues...)
	return &c, nil
}

// PropertyMedia: первое фото галереи - фото самого объекта, дальше стоковые.
// Тур и факты пока одинаковы для всех объектов.
func (a *ContentAdapter) PropertyMedia(ctx context.Context, property domain.Property) (*domain.PropertyMedia, error) {
	gallery := make([]string, 0, 1+len(stockGalleryImages))
	gallery = append(gallery, property.Image)
	gallery = append(gallery, stockGalleryImages...)

	return &domain.PropertyMedia{
		GalleryImages: gallery,
		TourStops:     append([]domain.TourStop(nil), tourStops...),
		Facts: []domain.Fact{
			{Label: "Built", Value: "2022"},
			{Label: "Size", Value: "15,000 sq ft"},
		},
		LocationNote: "Located in the heart of the city, with easy access to major transportation hubs, " +
			"shopping centers, and entertainment venues.",
	}, nil
}
