package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"showcase-service/internal/adapters/rest"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
	"showcase-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

const maxFormBytes = 64 << 10

// PageHandler отдает HTML-страницы сайта. Реализует rest.PageRoutes.
type PageHandler struct {
	findPropertiesUC     usecases_port.FindPropertiesUseCase
	getPropertyDetailsUC usecases_port.GetPropertyDetailsUseCase
	getSiteContentUC     usecases_port.GetSiteContentUseCase
	scheduleTourUC       usecases_port.ScheduleTourUseCase
	sendContactMessageUC usecases_port.SendContactMessageUseCase
	playback             port.HeroPlaybackPort

	pages pageTemplates
}

func NewPageHandler(findPropertiesUC usecases_port.FindPropertiesUseCase,
	getPropertyDetailsUC usecases_port.GetPropertyDetailsUseCase,
	getSiteContentUC usecases_port.GetSiteContentUseCase,
	scheduleTourUC usecases_port.ScheduleTourUseCase,
	sendContactMessageUC usecases_port.SendContactMessageUseCase,
	playback port.HeroPlaybackPort) (*PageHandler, error) {

	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		findPropertiesUC:     findPropertiesUC,
		getPropertyDetailsUC: getPropertyDetailsUC,
		getSiteContentUC:     getSiteContentUC,
		scheduleTourUC:       scheduleTourUC,
		sendContactMessageUC: sendContactMessageUC,
		playback:             playback,
		pages:                pages,
	}, nil
}

func (h *PageHandler) Routes(r chi.Router) {
	r.Get("/", h.Home)
	r.Post("/contact", h.Contact)

	r.Route("/building/{index}", func(r chi.Router) {
		r.Get("/", h.Building)

		r.Get("/tour", h.Tour)
		r.Post("/tour/type", h.TourChooseType)
		r.Post("/tour/back", h.TourBack)
		r.Post("/tour/submit", h.TourSubmit)
		r.Post("/tour/close", h.TourClose)
	})

	r.NotFound(h.NotFound)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	if err := h.pages.render(w, status, name, data); err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Failed to render page", err, port.Fields{"page": name})
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *PageHandler) internalError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	contextkeys.LoggerFromContext(r.Context()).Error("Use case failed", err, port.Fields{"handler": handler})
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (h *PageHandler) siteContent(w http.ResponseWriter, r *http.Request) (*domain.SiteContent, bool) {
	content, err := h.getSiteContentUC.Execute(r.Context())
	if err != nil {
		h.internalError(w, r, "SiteContent", err)
		return nil, false
	}
	return content, true
}

// homePage собирает главную страницу с учетом фильтров из query-параметров
func (h *PageHandler) homePage(ctx context.Context, r *http.Request, content *domain.SiteContent) (indexPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	query := r.URL.Query()
	category, err := domain.ParseCategoryFilter(query.Get("category"))
	if err != nil {
		// В HTML неизвестная категория не ошибка: показываем весь каталог
		logger.Warn("Unknown category filter, falling back to all", port.Fields{"category": query.Get("category")})
		category = domain.CategoryAll
	}
	filters := domain.PropertyFilters{Category: category, Query: query.Get("q")}

	result, err := h.findPropertiesUC.Execute(ctx, filters)
	if err != nil {
		return indexPage{}, err
	}

	sessionID := contextkeys.SessionIDFromContext(ctx)
	playback := heroPlayback{
		Current: h.playback.SelectedImage(sessionID),
		Playing: h.playback.IsPlaying(sessionID),
	}
	return newIndexPage(content, playback, filters, result), nil
}

// Home обрабатывает GET /?category=&q=
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	content, ok := h.siteContent(w, r)
	if !ok {
		return
	}

	page, err := h.homePage(r.Context(), r, content)
	if err != nil {
		h.internalError(w, r, "Home", err)
		return
	}
	h.render(w, r, http.StatusOK, pageIndex, page)
}

// Contact обрабатывает POST /contact: сообщение только пишется в лог
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	msg := domain.ContactMessage{
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Email:     r.PostFormValue("email"),
		Message:   r.PostFormValue("message"),
	}

	content, ok := h.siteContent(w, r)
	if !ok {
		return
	}
	page, err := h.homePage(r.Context(), r, content)
	if err != nil {
		h.internalError(w, r, "Contact", err)
		return
	}

	receipt, err := h.sendContactMessageUC.Execute(r.Context(), msg)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidContactMessage) {
			page.Contact = contactView{Form: msg, Error: domain.ContactErrorMessage(err)}
			h.render(w, r, http.StatusBadRequest, pageIndex, page)
			return
		}
		h.internalError(w, r, "Contact", err)
		return
	}

	// После отправки форма очищается
	page.Contact = contactView{Confirmation: receipt.Confirmation}
	h.render(w, r, http.StatusOK, pageIndex, page)
}

func (h *PageHandler) renderNotFound(w http.ResponseWriter, r *http.Request, content *domain.SiteContent) {
	h.render(w, r, http.StatusNotFound, pageNotFound, notFoundPage{
		layoutView: newLayoutView("Building not found | "+content.BrandName, content),
	})
}

// NotFound - неизвестный путь выглядит так же, как несуществующий объект
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	content, ok := h.siteContent(w, r)
	if !ok {
		return
	}
	h.renderNotFound(w, r, content)
}

// queryInt читает неотрицательное число из query; мусор превращается в 0
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Building обрабатывает GET /building/{index}
func (h *PageHandler) Building(w http.ResponseWriter, r *http.Request) {
	content, ok := h.siteContent(w, r)
	if !ok {
		return
	}

	index, err := rest.BuildingIndexParam(r)
	if err != nil {
		h.renderNotFound(w, r, content)
		return
	}

	view, err := h.getPropertyDetailsUC.Execute(r.Context(), index)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			h.renderNotFound(w, r, content)
			return
		}
		h.internalError(w, r, "Building", err)
		return
	}

	state := detailState{
		Index:      index,
		Tab:        domain.ParseDetailTab(r.URL.Query().Get("tab")),
		Image:      queryInt(r, "image"),
		Stop:       queryInt(r, "stop"),
		Fullscreen: r.URL.Query().Get("fullscreen") == "1",
	}
	h.render(w, r, http.StatusOK, pageBuilding, newBuildingPage(content, view, state))
}

func (h *PageHandler) tourKey(r *http.Request) (port.TourSessionKey, error) {
	index, err := rest.BuildingIndexParam(r)
	if err != nil {
		return port.TourSessionKey{}, domain.ErrPropertyNotFound
	}
	return port.TourSessionKey{
		SessionID:     contextkeys.SessionIDFromContext(r.Context()),
		BuildingIndex: index,
	}, nil
}

// renderTour показывает мастер. При ошибке мастер рисуется в текущем состоянии вместе с сообщением.
func (h *PageHandler) renderTour(w http.ResponseWriter, r *http.Request, wizard *domain.TourWizard, err error) {
	content, ok := h.siteContent(w, r)
	if !ok {
		return
	}

	if err == nil {
		h.render(w, r, http.StatusOK, pageTour, newTourPage(content, wizard, ""))
		return
	}

	status, message := rest.TourErrorStatus(err)
	switch {
	case status == http.StatusNotFound:
		h.renderNotFound(w, r, content)
	case status == http.StatusInternalServerError || wizard == nil:
		h.internalError(w, r, "Tour", err)
	default:
		h.render(w, r, status, pageTour, newTourPage(content, wizard, message))
	}
}

// redirectToTour - Post/Redirect/Get после удачного перехода мастера
func redirectToTour(w http.ResponseWriter, r *http.Request, key port.TourSessionKey) {
	http.Redirect(w, r, buildingPath(key.BuildingIndex)+"/tour", http.StatusSeeOther)
}

// Tour обрабатывает GET /building/{index}/tour
func (h *PageHandler) Tour(w http.ResponseWriter, r *http.Request) {
	key, err := h.tourKey(r)
	if err != nil {
		h.renderTour(w, r, nil, err)
		return
	}
	wizard, err := h.scheduleTourUC.Open(r.Context(), key)
	h.renderTour(w, r, wizard, err)
}

// TourChooseType обрабатывает POST /building/{index}/tour/type
func (h *PageHandler) TourChooseType(w http.ResponseWriter, r *http.Request) {
	key, err := h.tourKey(r)
	if err != nil {
		h.renderTour(w, r, nil, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	wizard, err := h.scheduleTourUC.ChooseType(r.Context(), key, r.PostFormValue("type"))
	if err != nil {
		h.renderTour(w, r, wizard, err)
		return
	}
	redirectToTour(w, r, key)
}

// TourBack обрабатывает POST /building/{index}/tour/back
func (h *PageHandler) TourBack(w http.ResponseWriter, r *http.Request) {
	key, err := h.tourKey(r)
	if err != nil {
		h.renderTour(w, r, nil, err)
		return
	}

	wizard, err := h.scheduleTourUC.Back(r.Context(), key)
	if err != nil {
		h.renderTour(w, r, wizard, err)
		return
	}
	redirectToTour(w, r, key)
}

// TourSubmit обрабатывает POST /building/{index}/tour/submit
func (h *PageHandler) TourSubmit(w http.ResponseWriter, r *http.Request) {
	key, err := h.tourKey(r)
	if err != nil {
		h.renderTour(w, r, nil, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	form := domain.TourForm{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Phone: r.PostFormValue("phone"),
		Date:  r.PostFormValue("date"),
		Time:  r.PostFormValue("time"),
	}

	wizard, err := h.scheduleTourUC.Submit(r.Context(), key, form)
	if err != nil {
		h.renderTour(w, r, wizard, err)
		return
	}
	redirectToTour(w, r, key)
}

// TourClose обрабатывает POST /building/{index}/tour/close
func (h *PageHandler) TourClose(w http.ResponseWriter, r *http.Request) {
	key, err := h.tourKey(r)
	if err != nil {
		h.renderTour(w, r, nil, err)
		return
	}

	if err := h.scheduleTourUC.Close(r.Context(), key); err != nil {
		h.internalError(w, r, "TourClose", err)
		return
	}
	http.Redirect(w, r, buildingPath(key.BuildingIndex), http.StatusSeeOther)
}
