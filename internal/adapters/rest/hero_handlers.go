package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"showcase-service/internal/adapters/rotator"
	"showcase-service/internal/constants"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
	"showcase-service/internal/core/port/usecases_port"
	"strconv"
	"sync"
	"time"
)

type HeroHandler struct {
	registry          *rotator.Registry
	controlPlaybackUC usecases_port.ControlHeroPlaybackUseCase
	keepAlive         time.Duration
}

func NewHeroHandler(registry *rotator.Registry, controlPlaybackUC usecases_port.ControlHeroPlaybackUseCase) *HeroHandler {
	return &HeroHandler{
		registry:          registry,
		controlPlaybackUC: controlPlaybackUC,
		keepAlive:         constants.SSEKeepAliveInterval,
	}
}

func writeHeroFrame(w http.ResponseWriter, frame rotator.Frame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: hero\ndata: %s\n\n", payload); err != nil {
		return err
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

// Stream обрабатывает GET /hero/stream (и /api/v1/hero/stream).
// Пока поток открыт, сервер каждые HERO_ROTATION_INTERVAL присылает номер текущей картинки.
func (h *HeroHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sessionID := contextkeys.SessionIDFromContext(r.Context())
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HeroStream"})

	if _, ok := w.(http.Flusher); !ok {
		handlerLogger.Error("Streaming is not supported by response writer", nil, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	heroRotator := h.registry.Attach(sessionID)
	defer h.registry.Detach(sessionID, heroRotator)

	// Ротатор живет ровно столько, сколько обработчик: при выходе по ошибке записи
	// его останавливаем сами, не дожидаясь отмены контекста соединения
	rotatorCtx, stopRotator := context.WithCancel(r.Context())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		heroRotator.Run(rotatorCtx)
	}()
	defer func() {
		stopRotator()
		wg.Wait()
	}()

	handlerLogger.Debug("Hero stream opened", port.Fields{"playing": heroRotator.Current().Playing})

	if err := writeHeroFrame(w, heroRotator.Current()); err != nil {
		handlerLogger.Warn("Failed to write initial hero frame", port.Fields{"error": err.Error()})
		return
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-heroRotator.Updates():
			if !ok {
				return
			}
			if err := writeHeroFrame(w, frame); err != nil {
				handlerLogger.Warn("Error writing to client, closing hero stream", port.Fields{"error": err.Error()})
				return
			}

		case <-ticker.C:
			if _, err := fmt.Fprintf(w, ": keep-alive\n\n"); err != nil {
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}

		case <-r.Context().Done():
			handlerLogger.Debug("Hero stream closed", nil)
			return
		}
	}
}

func (h *HeroHandler) setPlaying(w http.ResponseWriter, r *http.Request, playing bool) bool {
	sessionID := contextkeys.SessionIDFromContext(r.Context())
	if err := h.controlPlaybackUC.Execute(r.Context(), sessionID, playing); err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Use case failed", err, port.Fields{"handler": "HeroPlayback"})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to change hero playback")
		return false
	}
	return true
}

// Pause обрабатывает POST /api/v1/hero/pause
func (h *HeroHandler) Pause(w http.ResponseWriter, r *http.Request) {
	if h.setPlaying(w, r, false) {
		RespondWithJSON(w, http.StatusOK, HeroPlaybackResponse{Playing: false})
	}
}

// Resume обрабатывает POST /api/v1/hero/resume
func (h *HeroHandler) Resume(w http.ResponseWriter, r *http.Request) {
	if h.setPlaying(w, r, true) {
		RespondWithJSON(w, http.StatusOK, HeroPlaybackResponse{Playing: true})
	}
}

// PauseAndReturn и ResumeAndReturn - варианты для HTML-формы без JS: после
// переключения посетитель возвращается на главную.
func (h *HeroHandler) PauseAndReturn(w http.ResponseWriter, r *http.Request) {
	if h.setPlaying(w, r, false) {
		http.Redirect(w, r, "/#home", http.StatusSeeOther)
	}
}

func (h *HeroHandler) ResumeAndReturn(w http.ResponseWriter, r *http.Request) {
	if h.setPlaying(w, r, true) {
		http.Redirect(w, r, "/#home", http.StatusSeeOther)
	}
}

func (h *HeroHandler) selectImage(w http.ResponseWriter, r *http.Request, index int) bool {
	sessionID := contextkeys.SessionIDFromContext(r.Context())
	if err := h.controlPlaybackUC.Select(r.Context(), sessionID, index); err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Hero image index must be between 0 and %d", h.registry.Images()-1))
			return false
		}
		contextkeys.LoggerFromContext(r.Context()).Error("Use case failed", err, port.Fields{"handler": "HeroSelect"})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to select hero image")
		return false
	}
	return true
}

// Select обрабатывает POST /api/v1/hero/select {"index": N}: показать картинку N и остановить слайдшоу
func (h *HeroHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req SelectHeroImageRequest
	if err := decodeJSONBody(w, r, &req); err != nil || req.Index == nil {
		WriteJSONError(w, http.StatusBadRequest, "Request body must be {\"index\": <number>}")
		return
	}
	if h.selectImage(w, r, *req.Index) {
		RespondWithJSON(w, http.StatusOK, HeroSelectionResponse{Index: *req.Index, Playing: false})
	}
}

// SelectAndReturn обрабатывает POST /hero/select (точка под баннером на странице)
func (h *HeroHandler) SelectAndReturn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4<<10)
	index, err := strconv.Atoi(r.PostFormValue("index"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Hero image index must be a number")
		return
	}
	if h.selectImage(w, r, index) {
		http.Redirect(w, r, "/#home", http.StatusSeeOther)
	}
}
