package domain

// Stat - счетчик вида "15+ Years Experience"
type Stat struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// CompanyValue - карточка в блоке About
type CompanyValue struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Specialist - карточка агента в блоке контактов
type Specialist struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photoUrl"`
}

// SiteContent - весь статический текст главной страницы
type SiteContent struct {
	BrandName    string
	NavItems     []string
	HeroImages   []string
	HeroHeadline string
	HeroSubtitle string
	HeroStats    []Stat
	AboutTitle   string
	AboutText    string
	AboutImage   string
	AboutStats   []Stat
	AboutValues  []CompanyValue
	ContactIntro string
	ContactPhone string
	ContactEmail string
	Specialist   Specialist
}

// TourStop - одна "комната" виртуального тура
type TourStop struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Fact - пара "Built / 2022" на вкладке overview
type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PropertyMedia - медиа и тексты страницы объекта
type PropertyMedia struct {
	GalleryImages []string
	TourStops     []TourStop
	Facts         []Fact
	LocationNote  string
}

// PropertyDetailsView - все, что нужно странице /building/{index}
type PropertyDetailsView struct {
	Index    int
	Property Property
	Media    PropertyMedia
}

// DetailTab - вкладка страницы объекта
type DetailTab string

const (
	TabOverview    DetailTab = "overview"
	TabFeatures    DetailTab = "features"
	TabLocation    DetailTab = "location"
	TabVirtualTour DetailTab = "virtual-tour"
)

func DetailTabs() []DetailTab {
	return []DetailTab{TabOverview, TabFeatures, TabLocation, TabVirtualTour}
}

// ParseDetailTab - неизвестная вкладка открывает overview
func ParseDetailTab(raw string) DetailTab {
	for _, t := range DetailTabs() {
		if string(t) == raw {
			return t
		}
	}
	return TabOverview
}
