package rest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"showcase-service/internal/adapters/inquirylog"
	logger_adapter "showcase-service/internal/adapters/logger"
	"showcase-service/internal/adapters/memorycatalog"
	"showcase-service/internal/adapters/rotator"
	"showcase-service/internal/adapters/tourstore"
	"showcase-service/internal/configs"
	"showcase-service/internal/constants"
	"showcase-service/internal/contracts"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	handler  http.Handler
	registry *rotator.Registry
	cookie   *http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	catalog := memorycatalog.NewCatalogAdapter()
	content := memorycatalog.NewContentAdapter()
	sink := inquirylog.NewInquiryLogAdapter(logger)

	validator, err := contracts.NewFormValidator()
	require.NoError(t, err)
	sessions, err := tourstore.NewMemoryStore(time.Hour, time.Minute, logger)
	require.NoError(t, err)
	registry := rotator.NewRegistry(3, 20*time.Millisecond, logger)

	findUC := usecase.NewFindPropertiesUseCase(catalog)
	detailsUC := usecase.NewGetPropertyDetailsUseCase(catalog, content)
	contentUC := usecase.NewGetSiteContentUseCase(content)

	handlers := Handlers{
		Catalog: NewCatalogHandler(findUC, detailsUC, contentUC),
		Tour:    NewTourHandler(usecase.NewScheduleTourUseCase(catalog, sessions, validator, sink)),
		Contact: NewContactHandler(usecase.NewSendContactMessageUseCase(validator, sink)),
		Hero:    NewHeroHandler(registry, usecase.NewControlHeroPlaybackUseCase(registry)),
	}
	cfg := configs.RESTconfig{PORT: "0", CORSAllowedOrigins: []string{"http://localhost:5173"}}

	return &testEnv{
		handler:  NewRouter(cfg, handlers, nil, logger),
		registry: registry,
	}
}

// do выполняет запрос и запоминает cookie сессии, как это делает браузер
func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == constants.SessionCookieName {
			e.cookie = c
		}
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func TestParseBuildingIndex(t *testing.T) {
	for raw, want := range map[string]int{"0": 0, "2": 2, "01": 1, "12": 12} {
		got, err := ParseBuildingIndex(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, raw := range []string{"", "-1", "+1", "1e0", "abc", " 1", "99999999999999999999999"} {
		_, err := ParseBuildingIndex(raw)
		assert.Error(t, err, raw)
	}
}

func TestFindBuildings(t *testing.T) {
	env := newTestEnv(t)

	t.Run("all", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/buildings", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		var resp BuildingsResponse
		decode(t, rec, &resp)
		assert.Equal(t, 3, resp.Total)
		assert.Equal(t, "all", resp.Category)
		assert.Equal(t, "/building/0", resp.Data[0].DetailsURL)
	})

	t.Run("query keeps catalog index", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/buildings?q=glass", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp BuildingsResponse
		decode(t, rec, &resp)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, "The Glass House", resp.Data[0].Title)
		assert.Equal(t, 1, resp.Data[0].Index)
		assert.Equal(t, "/building/1", resp.Data[0].DetailsURL)
	})

	t.Run("commercial", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/buildings?category=commercial", "")
		var resp BuildingsResponse
		decode(t, rec, &resp)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, "Ocean View Plaza", resp.Data[0].Title)
		assert.Equal(t, 2, resp.Data[0].Index)
	})

	t.Run("empty result", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/buildings?category=commercial&q=glass", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"total":0,"category":"commercial","query":"glass","data":[]}`, rec.Body.String())
	})

	t.Run("unknown category", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/buildings?category=villa", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetBuildingDetails(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/buildings/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp BuildingDetailsResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Luxury Sky Tower", resp.Title)
	assert.Len(t, resp.GalleryImages, 3)
	assert.Len(t, resp.TourStops, 4)
	assert.Equal(t, []string{"overview", "features", "location", "virtual-tour"}, resp.Tabs)

	for _, path := range []string{"/api/v1/buildings/3", "/api/v1/buildings/-1", "/api/v1/buildings/abc"} {
		rec := env.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"error":"Building not found"}`, rec.Body.String(), path)
	}
}

func TestFilterOptionsAndContent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/filters/options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categories":[
		{"value":"all","label":"All"},
		{"value":"residential","label":"Residential"},
		{"value":"commercial","label":"Commercial"}]}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/content", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var content SiteContentResponse
	decode(t, rec, &content)
	assert.Equal(t, "LuxuryBuildings", content.BrandName)
	assert.Len(t, content.HeroImages, 3)
}

func TestTourWizardFlow(t *testing.T) {
	env := newTestEnv(t)
	var resp TourWizardResponse

	rec := env.do(t, http.MethodGet, "/api/v1/buildings/1/tour", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.cookie, "session cookie is issued")
	decode(t, rec, &resp)
	assert.Equal(t, "select_type", resp.StepName)
	assert.Equal(t, "The Glass House", resp.BuildingTitle)
	assert.Equal(t, "in-person", resp.Type)
	require.Len(t, resp.TypeOptions, 2)
	assert.Equal(t, "In-Person Tour", resp.TypeOptions[0].Label)

	rec = env.do(t, http.MethodPost, "/api/v1/buildings/1/tour/type", `{"type":"virtual"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Equal(t, 2, resp.Step)
	assert.Equal(t, "virtual", resp.Type)

	rec = env.do(t, http.MethodPost, "/api/v1/buildings/1/tour/submit",
		`{"name":"Jane","email":"bad","phone":"555","date":"2026-11-02","time":"10:00"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp = TourWizardResponse{}
	decode(t, rec, &resp)
	assert.Equal(t, "form_entry", resp.StepName)
	assert.Equal(t, "bad", resp.Form.Email)
	assert.NotEmpty(t, resp.Error)

	rec = env.do(t, http.MethodPost, "/api/v1/buildings/1/tour/submit",
		`{"name":"Jane","email":"jane@example.com","phone":"555","date":"2026-11-02","time":"10:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = TourWizardResponse{}
	decode(t, rec, &resp)
	assert.Equal(t, "confirmed", resp.StepName)

	rec = env.do(t, http.MethodPost, "/api/v1/buildings/1/tour/back", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/buildings/1/tour", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/buildings/1/tour", "")
	resp = TourWizardResponse{}
	decode(t, rec, &resp)
	assert.Equal(t, "select_type", resp.StepName)
}

func TestTourWizardErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/buildings/7/tour", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/buildings/0/tour/type", `{"type":"drone"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/buildings/0/tour/type", `{"type":"virtual","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/buildings/0/tour/submit",
		`{"name":"Jane","email":"jane@example.com","phone":"555","date":"2026-11-02","time":"10:00"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, "form cannot be submitted before a type is chosen")
}

func TestSendContactMessage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/contact/messages",
		`{"firstName":"Ann","lastName":"Lee","email":"ann@example.com","message":"Hi"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp ContactMessageAcceptedResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Your message has been sent.", resp.Status)
	_, err := uuid.Parse(resp.ID)
	assert.NoError(t, err)

	rejected := map[string]string{
		`{"email":"ann"}`: "Please enter a valid email address.",
		fmt.Sprintf(`{"email":"ann@example.com","message":%q}`, strings.Repeat("a", 5001)): "Message must be at most 5000 characters.",
		fmt.Sprintf(`{"firstName":%q}`, strings.Repeat("A", 101)):                          "First and last name must be at most 100 characters.",
	}
	for body, message := range rejected {
		rec = env.do(t, http.MethodPost, "/api/v1/contact/messages", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, message), rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/v1/contact/messages", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHeroPlaybackEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/hero/pause", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"playing":false}`, rec.Body.String())
	require.NotNil(t, env.cookie)
	assert.False(t, env.registry.IsPlaying(env.cookie.Value))

	rec = env.do(t, http.MethodPost, "/api/v1/hero/resume", "")
	assert.JSONEq(t, `{"playing":true}`, rec.Body.String())
	assert.True(t, env.registry.IsPlaying(env.cookie.Value))

	rec = env.do(t, http.MethodPost, "/hero/pause", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#home", rec.Header().Get("Location"))
	assert.False(t, env.registry.IsPlaying(env.cookie.Value))
}

func TestHeroSelectEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/hero/select", `{"index":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"index":2,"playing":false}`, rec.Body.String())
	require.NotNil(t, env.cookie)
	assert.False(t, env.registry.IsPlaying(env.cookie.Value))
	assert.Equal(t, 2, env.registry.SelectedImage(env.cookie.Value))

	for _, body := range []string{`{"index":3}`, `{"index":-1}`, `{}`, `{"index":"1"}`, `{`} {
		rec = env.do(t, http.MethodPost, "/api/v1/hero/select", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Equal(t, 2, env.registry.SelectedImage(env.cookie.Value))

	form := func(values string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/hero/select", strings.NewReader(values))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(env.cookie)
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)
		return rec
	}

	rec = form("index=1")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#home", rec.Header().Get("Location"))
	assert.Equal(t, 1, env.registry.SelectedImage(env.cookie.Value))

	assert.Equal(t, http.StatusBadRequest, form("index=first").Code)
	assert.Equal(t, http.StatusBadRequest, form("index=9").Code)
	assert.Equal(t, 1, env.registry.SelectedImage(env.cookie.Value))
}

func TestHeroStreamFollowsSelection(t *testing.T) {
	env := newTestEnv(t)
	// Cookie появляется после первого запроса
	env.do(t, http.MethodGet, "/api/v1/content", "")
	require.NotNil(t, env.cookie)

	server := httptest.NewServer(env.handler)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/hero/stream", nil)
	require.NoError(t, err)
	req.AddCookie(env.cookie)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return env.registry.ActiveStreams() == 1 }, time.Second, time.Millisecond)
	rec := env.do(t, http.MethodPost, "/api/v1/hero/select", `{"index":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Кадры до выбора пропускаем; таймаут контекста прервет чтение, если нужного кадра нет
	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err, "selected frame never arrived")
		if strings.TrimSpace(line) == `data: {"index":2,"playing":false}` {
			break
		}
	}

	cancel()
	require.Eventually(t, func() bool { return env.registry.ActiveStreams() == 0 }, time.Second, 10*time.Millisecond)
}

// brokenStreamWriter принимает первые okWrites записей, дальше отвечает ошибкой
type brokenStreamWriter struct {
	header   http.Header
	okWrites int
}

func (w *brokenStreamWriter) Header() http.Header { return w.header }
func (w *brokenStreamWriter) WriteHeader(int)     {}
func (w *brokenStreamWriter) Flush()              {}

func (w *brokenStreamWriter) Write(p []byte) (int, error) {
	if w.okWrites == 0 {
		return 0, io.ErrClosedPipe
	}
	w.okWrites--
	return len(p), nil
}

func TestHeroStreamStopsOnWriteError(t *testing.T) {
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	registry := rotator.NewRegistry(3, 5*time.Millisecond, logger)
	handler := NewHeroHandler(registry, usecase.NewControlHeroPlaybackUseCase(registry))

	// Контекст запроса не отменяется никогда: выйти обработчик должен сам
	req := httptest.NewRequest(http.MethodGet, "/hero/stream", nil)
	w := &brokenStreamWriter{header: make(http.Header), okWrites: 1}

	done := make(chan struct{})
	go func() {
		handler.Stream(w, req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hero stream handler hung after a failed write")
	}
	assert.Equal(t, 0, registry.ActiveStreams())
}

func TestHeroStream(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.handler)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/hero/stream", nil)
	require.NoError(t, err)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	var frames []string
	for len(frames) < 2 {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			frames = append(frames, strings.TrimSpace(strings.TrimPrefix(line, "data: ")))
		}
	}

	assert.JSONEq(t, `{"index":0,"playing":true}`, frames[0])
	assert.JSONEq(t, `{"index":1,"playing":true}`, frames[1])

	cancel()
	require.Eventually(t, func() bool { return env.registry.ActiveStreams() == 0 }, time.Second, 10*time.Millisecond)
}

func TestMiddleware(t *testing.T) {
	env := newTestEnv(t)

	t.Run("trace id is echoed", func(t *testing.T) {
		traceID := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/filters/options", nil)
		req.Header.Set(constants.TraceIDHeader, traceID)
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)
		assert.Equal(t, traceID, rec.Header().Get(constants.TraceIDHeader))
	})

	t.Run("invalid trace id is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/filters/options", nil)
		req.Header.Set(constants.TraceIDHeader, "not-a-uuid")
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)
		_, err := uuid.Parse(rec.Header().Get(constants.TraceIDHeader))
		assert.NoError(t, err)
	})

	t.Run("session cookie is reused", func(t *testing.T) {
		first := env.do(t, http.MethodGet, "/api/v1/content", "")
		require.NotEmpty(t, first.Result().Cookies())
		cookie := env.cookie

		second := env.do(t, http.MethodGet, "/api/v1/content", "")
		assert.Empty(t, second.Result().Cookies())
		assert.Equal(t, cookie.Value, env.cookie.Value)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/buildings", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown api path", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
	})
}

func TestTourErrorStatus(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("wrap: %w", domain.ErrPropertyNotFound):      http.StatusNotFound,
		fmt.Errorf("wrap: %w", domain.ErrUnknownTourType):       http.StatusBadRequest,
		fmt.Errorf("wrap: %w", domain.ErrInvalidTourForm):       http.StatusBadRequest,
		fmt.Errorf("wrap: %w", domain.ErrInvalidTourTransition): http.StatusConflict,
		context.Canceled:                                        http.StatusInternalServerError,
	}
	for err, want := range cases {
		status, message := TourErrorStatus(err)
		assert.Equal(t, want, status, err.Error())
		assert.NotEmpty(t, message)
	}
}

func TestServerStartStop(t *testing.T) {
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	server := NewServer(configs.RESTconfig{PORT: "0"}, Handlers{}, nil, logger)

	done := make(chan error, 1)
	go func() { done <- server.Start() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, server.Stop(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err, "a stopped server is not an error")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
