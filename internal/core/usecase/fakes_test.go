package usecase

import (
	"context"
	"errors"
	"fmt"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
	"sync"
)

type fakeCatalog struct {
	properties []domain.Property
	err        error
}

func (f *fakeCatalog) ListProperties(ctx context.Context) ([]domain.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.properties, nil
}

func (f *fakeCatalog) PropertyAt(ctx context.Context, index int) (*domain.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	if index < 0 || index >= len(f.properties) {
		return nil, fmt.Errorf("%w: index %d", domain.ErrPropertyNotFound, index)
	}
	p := f.properties[index]
	return &p, nil
}

type fakeContent struct {
	mediaErr error
}

func (f *fakeContent) SiteContent(ctx context.Context) (*domain.SiteContent, error) {
	return &domain.SiteContent{BrandName: "LuxuryBuildings"}, nil
}

func (f *fakeContent) PropertyMedia(ctx context.Context, p domain.Property) (*domain.PropertyMedia, error) {
	if f.mediaErr != nil {
		return nil, f.mediaErr
	}
	return &domain.PropertyMedia{GalleryImages: []string{p.Image}}, nil
}

type fakeSessions struct {
	mu      sync.Mutex
	wizards map[port.TourSessionKey]domain.TourWizard
	saveErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{wizards: make(map[port.TourSessionKey]domain.TourWizard)}
}

func (f *fakeSessions) Get(ctx context.Context, key port.TourSessionKey) (*domain.TourWizard, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wizards[key]
	if !ok {
		return nil, false, nil
	}
	return &w, true, nil
}

func (f *fakeSessions) Save(ctx context.Context, key port.TourSessionKey, wizard *domain.TourWizard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.wizards[key] = *wizard
	return nil
}

func (f *fakeSessions) Delete(ctx context.Context, key port.TourSessionKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.wizards, key)
	return nil
}

// fakeValidator отклоняет тело, если задана ошибка
type fakeValidator struct {
	tourErr    error
	contactErr error
	tourBodies [][]byte
}

func (f *fakeValidator) ValidateTourForm(body []byte) error {
	f.tourBodies = append(f.tourBodies, body)
	return f.tourErr
}

func (f *fakeValidator) ValidateContactMessage(body []byte) error {
	return f.contactErr
}

type fakeSink struct {
	contacts []domain.ContactMessage
	tours    []domain.TourWizard
	err      error
}

func (f *fakeSink) SaveContactMessage(ctx context.Context, id string, msg domain.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.contacts = append(f.contacts, msg)
	return nil
}

func (f *fakeSink) SaveTourRequest(ctx context.Context, wizard domain.TourWizard) error {
	if f.err != nil {
		return f.err
	}
	f.tours = append(f.tours, wizard)
	return nil
}

type fakePlayback struct {
	calls    []bool
	selected []int
}

func (f *fakePlayback) SetPlaying(sessionID string, playing bool) int {
	f.calls = append(f.calls, playing)
	return 2
}

func (f *fakePlayback) Select(sessionID string, index int) (int, error) {
	if index < 0 || index > 2 {
		return 0, fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, index)
	}
	f.selected = append(f.selected, index)
	f.calls = append(f.calls, false)
	return 1, nil
}

func (f *fakePlayback) IsPlaying(sessionID string) bool {
	return len(f.calls) == 0 || f.calls[len(f.calls)-1]
}

func (f *fakePlayback) SelectedImage(sessionID string) int {
	if len(f.selected) == 0 {
		return 0
	}
	return f.selected[len(f.selected)-1]
}

var errBoom = errors.New("boom")

func sampleProperties() []domain.Property {
	return []domain.Property{
		{Title: "Luxury Sky Tower", Description: "residential tower", Image: "sky.jpg", Category: domain.CategoryResidential},
		{Title: "The Glass House", Description: "sustainable design", Image: "glass.jpg", Category: domain.CategoryResidential},
		{Title: "Ocean View Plaza", Description: "commercial space", Image: "ocean.jpg", Category: domain.CategoryCommercial},
	}
}
