package web

import (
	"fmt"
	"net/url"
	"showcase-service/internal/core/domain"
	"strconv"
	"strings"
)

type navLink struct {
	Label string
	Href  string
}

// layoutView - общая часть всех страниц (шапка и навигация)
type layoutView struct {
	Title     string
	BrandName string
	Nav       []navLink
}

func newLayoutView(title string, content *domain.SiteContent) layoutView {
	nav := make([]navLink, 0, len(content.NavItems))
	for _, item := range content.NavItems {
		nav = append(nav, navLink{Label: item, Href: "/#" + strings.ToLower(item)})
	}
	return layoutView{Title: title, BrandName: content.BrandName, Nav: nav}
}

type heroDot struct {
	Index  int
	Number int
	Active bool
}

type heroView struct {
	Images   []string
	Dots     []heroDot
	Current  int
	Playing  bool
	Headline string
	Subtitle string
	Stats    []domain.Stat
}

type filterButton struct {
	Label  string
	URL    string
	Active bool
}

type buildingCard struct {
	Index         int
	Title         string
	Description   string
	Price         string
	Image         string
	CategoryLabel string
	URL           string
}

type contactView struct {
	Form         domain.ContactMessage
	Confirmation string
	Error        string
}

type indexPage struct {
	layoutView
	Hero      heroView
	Filters   []filterButton
	Category  string
	Query     string
	Buildings []buildingCard
	Content   *domain.SiteContent
	Contact   contactView
}

type tabLink struct {
	Label  string
	URL    string
	Active bool
}

type dotLink struct {
	URL    string
	Active bool
	Number int
}

type galleryView struct {
	Image   string
	PrevURL string
	NextURL string
	Dots    []dotLink
}

type thumbLink struct {
	URL    string
	Image  string
	Title  string
	Active bool
}

type virtualTourView struct {
	Stop          domain.TourStop
	Position      int
	Total         int
	PrevURL       string
	NextURL       string
	Thumbs        []thumbLink
	Fullscreen    bool
	FullscreenURL string
}

type buildingPage struct {
	layoutView
	Index         int
	Property      domain.Property
	CategoryLabel string
	Media         domain.PropertyMedia
	Tab           string
	Tabs          []tabLink
	Gallery       galleryView
	Tour          virtualTourView
	ScheduleURL   string
}

type tourTypeOption struct {
	Value       string
	Label       string
	Description string
	Selected    bool
}

type tourPage struct {
	layoutView
	BuildingIndex int
	BuildingTitle string
	Step          string
	Form          domain.TourForm
	Options       []tourTypeOption
	ActionURL     string
	BuildingURL   string
	Error         string
}

type notFoundPage struct {
	layoutView
}

// detailState - состояние страницы объекта, которое живет в query-параметрах
type detailState struct {
	Index      int
	Tab        domain.DetailTab
	Image      int
	Stop       int
	Fullscreen bool
}

func (s detailState) URL() string {
	q := url.Values{}
	if s.Tab != "" && s.Tab != domain.TabOverview {
		q.Set("tab", string(s.Tab))
	}
	if s.Image > 0 {
		q.Set("image", strconv.Itoa(s.Image))
	}
	if s.Stop > 0 {
		q.Set("stop", strconv.Itoa(s.Stop))
	}
	if s.Fullscreen {
		q.Set("fullscreen", "1")
	}

	u := buildingPath(s.Index)
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func buildingPath(index int) string {
	return fmt.Sprintf("/building/%d", index)
}

// listingURL - ссылка на сетку объектов с сохранением фильтров
func listingURL(category domain.CategoryFilter, query string) string {
	q := url.Values{}
	if category != "" && category != domain.CategoryAll {
		q.Set("category", string(category))
	}
	if query != "" {
		q.Set("q", query)
	}
	if encoded := q.Encode(); encoded != "" {
		return "/?" + encoded + "#buildings"
	}
	return "/#buildings"
}

func newHeroView(content *domain.SiteContent, playback heroPlayback) heroView {
	current := playback.Current
	if current < 0 || current >= len(content.HeroImages) {
		current = 0
	}
	dots := make([]heroDot, len(content.HeroImages))
	for i := range dots {
		dots[i] = heroDot{Index: i, Number: i + 1, Active: i == current}
	}
	return heroView{
		Images:   content.HeroImages,
		Dots:     dots,
		Current:  current,
		Playing:  playback.Playing,
		Headline: content.HeroHeadline,
		Subtitle: content.HeroSubtitle,
		Stats:    content.HeroStats,
	}
}

// heroPlayback - состояние слайдшоу посетителя на момент отрисовки страницы
type heroPlayback struct {
	Current int
	Playing bool
}

func newIndexPage(content *domain.SiteContent, playback heroPlayback, filters domain.PropertyFilters, result []domain.IndexedProperty) indexPage {
	page := indexPage{
		layoutView: newLayoutView(content.BrandName, content),
		Hero:       newHeroView(content, playback),
		Category:   string(filters.Category),
		Query:      filters.Query,
		Buildings:  make([]buildingCard, 0, len(result)),
		Content:    content,
	}

	for _, f := range domain.CategoryFilters() {
		page.Filters = append(page.Filters, filterButton{
			Label:  f.Label(),
			URL:    listingURL(f, filters.Query),
			Active: f == filters.Category,
		})
	}

	for _, item := range result {
		page.Buildings = append(page.Buildings, buildingCard{
			Index:         item.Index,
			Title:         item.Property.Title,
			Description:   item.Property.Description,
			Price:         item.Property.Price,
			Image:         item.Property.Image,
			CategoryLabel: item.Property.Category.Label(),
			URL:           buildingPath(item.Index),
		})
	}
	return page
}

func newBuildingPage(content *domain.SiteContent, view *domain.PropertyDetailsView, state detailState) buildingPage {
	page := buildingPage{
		layoutView:    newLayoutView(view.Property.Title+" | "+content.BrandName, content),
		Index:         view.Index,
		Property:      view.Property,
		CategoryLabel: view.Property.Category.Label(),
		Media:         view.Media,
		Tab:           string(state.Tab),
		ScheduleURL:   buildingPath(view.Index) + "/tour",
	}

	gallery := domain.NewCarousel(len(view.Media.GalleryImages))
	if err := gallery.Select(state.Image); err != nil {
		state.Image = 0
	}
	if gallery.Len > 0 {
		page.Gallery.Image = view.Media.GalleryImages[gallery.Current]
	}
	prev, next := state, state
	prev.Image, next.Image = gallery.PrevIndex(), gallery.NextIndex()
	page.Gallery.PrevURL, page.Gallery.NextURL = prev.URL(), next.URL()
	for i := 0; i < gallery.Len; i++ {
		s := state
		s.Image = i
		page.Gallery.Dots = append(page.Gallery.Dots, dotLink{URL: s.URL(), Active: i == gallery.Current, Number: i + 1})
	}

	stops := domain.NewCarousel(len(view.Media.TourStops))
	if err := stops.Select(state.Stop); err != nil {
		state.Stop = 0
	}
	page.Tour.Total = stops.Len
	page.Tour.Fullscreen = state.Fullscreen
	if stops.Len > 0 {
		page.Tour.Stop = view.Media.TourStops[stops.Current]
		page.Tour.Position = stops.Current + 1
	}
	prev, next = state, state
	prev.Stop, next.Stop = stops.PrevIndex(), stops.NextIndex()
	page.Tour.PrevURL, page.Tour.NextURL = prev.URL(), next.URL()
	for i, stop := range view.Media.TourStops {
		s := state
		s.Stop = i
		page.Tour.Thumbs = append(page.Tour.Thumbs, thumbLink{URL: s.URL(), Image: stop.URL, Title: stop.Title, Active: i == stops.Current})
	}

	for _, tab := range domain.DetailTabs() {
		s := state
		s.Tab = tab
		page.Tabs = append(page.Tabs, tabLink{
			Label:  strings.ReplaceAll(string(tab), "-", " "),
			URL:    s.URL(),
			Active: tab == state.Tab,
		})
	}

	toggled := state
	toggled.Fullscreen = !state.Fullscreen
	page.Tour.FullscreenURL = toggled.URL()

	return page
}

func newTourPage(content *domain.SiteContent, wizard *domain.TourWizard, errMessage string) tourPage {
	page := tourPage{
		layoutView:    newLayoutView("Schedule a Tour | "+content.BrandName, content),
		BuildingIndex: wizard.BuildingIndex,
		BuildingTitle: wizard.BuildingTitle,
		Step:          wizard.Step.String(),
		Form:          wizard.Request.TourForm,
		ActionURL:     buildingPath(wizard.BuildingIndex) + "/tour",
		BuildingURL:   buildingPath(wizard.BuildingIndex),
		Error:         errMessage,
	}
	for _, t := range domain.TourTypes() {
		page.Options = append(page.Options, tourTypeOption{
			Value:       string(t),
			Label:       t.Label(),
			Description: t.Description(),
			Selected:    t == wizard.Request.Type,
		})
	}
	return page
}
