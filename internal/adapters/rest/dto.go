package rest

import (
	"fmt"
	"showcase-service/internal/core/domain"
	"time"
)

// BuildingCardResponse - карточка в сетке объектов
type BuildingCardResponse struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	DetailsURL  string `json:"detailsUrl"`
}

type BuildingsResponse struct {
	Total    int                    `json:"total"`
	Category string                 `json:"category"`
	Query    string                 `json:"query"`
	Data     []BuildingCardResponse `json:"data"`
}

type BuildingDetailsResponse struct {
	Index         int               `json:"index"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Price         string            `json:"price"`
	Image         string            `json:"image"`
	Category      string            `json:"category"`
	Features      []string          `json:"features"`
	GalleryImages []string          `json:"galleryImages"`
	TourStops     []domain.TourStop `json:"tourStops"`
	Facts         []domain.Fact     `json:"facts"`
	LocationNote  string            `json:"locationNote"`
	Tabs          []string          `json:"tabs"`
}

type FilterOptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FilterOptionsResponse struct {
	Categories []FilterOptionResponse `json:"categories"`
}

type SiteContentResponse struct {
	BrandName    string                `json:"brandName"`
	NavItems     []string              `json:"navItems"`
	HeroImages   []string              `json:"heroImages"`
	HeroHeadline string                `json:"heroHeadline"`
	HeroSubtitle string                `json:"heroSubtitle"`
	HeroStats    []domain.Stat         `json:"heroStats"`
	AboutTitle   string                `json:"aboutTitle"`
	AboutText    string                `json:"aboutText"`
	AboutImage   string                `json:"aboutImage"`
	AboutStats   []domain.Stat         `json:"aboutStats"`
	AboutValues  []domain.CompanyValue `json:"aboutValues"`
	ContactIntro string                `json:"contactIntro"`
	ContactPhone string                `json:"contactPhone"`
	ContactEmail string                `json:"contactEmail"`
	Specialist   domain.Specialist     `json:"specialist"`
}

type ChooseTourTypeRequest struct {
	Type string `json:"type"`
}

type TourTypeOptionResponse struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type TourWizardResponse struct {
	BuildingIndex int                      `json:"buildingIndex"`
	BuildingTitle string                   `json:"buildingTitle"`
	Step          int                      `json:"step"`
	StepName      string                   `json:"stepName"`
	Type          string                   `json:"type"`
	Form          domain.TourForm          `json:"form"`
	TypeOptions   []TourTypeOptionResponse `json:"typeOptions"`
	Error         string                   `json:"error,omitempty"`
}

type ContactMessageAcceptedResponse struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	ReceivedAt time.Time `json:"receivedAt"`
}

type HeroPlaybackResponse struct {
	Playing bool `json:"playing"`
}

type SelectHeroImageRequest struct {
	Index *int `json:"index"`
}

type HeroSelectionResponse struct {
	Index   int  `json:"index"`
	Playing bool `json:"playing"`
}

func toBuildingCard(item domain.IndexedProperty) BuildingCardResponse {
	return BuildingCardResponse{
		Index:       item.Index,
		Title:       item.Property.Title,
		Description: item.Property.Description,
		Price:       item.Property.Price,
		Image:       item.Property.Image,
		Category:    string(item.Property.Category),
		DetailsURL:  fmt.Sprintf("/building/%d", item.Index),
	}
}

func toBuildingDetails(view *domain.PropertyDetailsView) BuildingDetailsResponse {
	tabs := make([]string, 0, len(domain.DetailTabs()))
	for _, t := range domain.DetailTabs() {
		tabs = append(tabs, string(t))
	}
	return BuildingDetailsResponse{
		Index:         view.Index,
		Title:         view.Property.Title,
		Description:   view.Property.Description,
		Price:         view.Property.Price,
		Image:         view.Property.Image,
		Category:      string(view.Property.Category),
		Features:      view.Property.Features,
		GalleryImages: view.Media.GalleryImages,
		TourStops:     view.Media.TourStops,
		Facts:         view.Media.Facts,
		LocationNote:  view.Media.LocationNote,
		Tabs:          tabs,
	}
}

func toTourWizardResponse(w *domain.TourWizard) TourWizardResponse {
	options := make([]TourTypeOptionResponse, 0, len(domain.TourTypes()))
	for _, t := range domain.TourTypes() {
		options = append(options, TourTypeOptionResponse{
			Value:       string(t),
			Label:       t.Label(),
			Description: t.Description(),
		})
	}
	return TourWizardResponse{
		BuildingIndex: w.BuildingIndex,
		BuildingTitle: w.BuildingTitle,
		Step:          int(w.Step),
		StepName:      w.Step.String(),
		Type:          string(w.Request.Type),
		Form:          w.Request.TourForm,
		TypeOptions:   options,
	}
}

func toSiteContentResponse(c *domain.SiteContent) SiteContentResponse {
	return SiteContentResponse{
		BrandName:    c.BrandName,
		NavItems:     c.NavItems,
		HeroImages:   c.HeroImages,
		HeroHeadline: c.HeroHeadline,
		HeroSubtitle: c.HeroSubtitle,
		HeroStats:    c.HeroStats,
		AboutTitle:   c.AboutTitle,
		AboutText:    c.AboutText,
		AboutImage:   c.AboutImage,
		AboutStats:   c.AboutStats,
		AboutValues:  c.AboutValues,
		ContactIntro: c.ContactIntro,
		ContactPhone: c.ContactPhone,
		ContactEmail: c.ContactEmail,
		Specialist:   c.Specialist,
	}
}
