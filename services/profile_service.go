package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
)

// AboutService interface'i: tek kayıtlık "hakkımda" profili.
type AboutService interface {
	// Get, profili döner. Backend'de kayıt yoksa boş profil döner.
	Get(ctx context.Context) (*models.About, error)
	Save(ctx context.Context, auth models.AuthContext, in *models.About) (*models.About, error)
}

type aboutService struct {
	backend AboutBackend
}

// NewAboutService, constructor.
func NewAboutService(backend AboutBackend) AboutService {
	return &aboutService{backend: backend}
}

func (s *aboutService) Get(ctx context.Context) (*models.About, error) {
	about, err := s.backend.GetAbout(ctx)
	if errors.Is(err, pkg.ErrNotFound) {
		return &models.About{}, nil
	}
	return about, err
}

func (s *aboutService) Save(ctx context.Context, auth models.AuthContext, in *models.About) (*models.About, error) {
	if in.FullName == "" {
		return nil, fmt.Errorf("%w: full name is required", pkg.ErrBadRequest)
	}
	return s.backend.SaveAbout(ctx, auth, *in)
}

// SettingsService interface'i.
type SettingsService interface {
	// Get, ayarları döner. Backend'de kayıt yoksa varsayılanlar döner.
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, auth models.AuthContext, in *models.Settings) (*models.Settings, error)
}

type settingsService struct {
	backend SettingsBackend
}

// NewSettingsService, constructor.
func NewSettingsService(backend SettingsBackend) SettingsService {
	return &settingsService{backend: backend}
}

func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.backend.GetSettings(ctx)
	if errors.Is(err, pkg.ErrNotFound) {
		d := models.DefaultSettings()
		return &d, nil
	}
	return settings, err
}

func (s *settingsService) Save(ctx context.Context, auth models.AuthContext, in *models.Settings) (*models.Settings, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return s.backend.SaveSettings(ctx, auth, *in)
}

// OfferingService interface'i: sitenin "hizmetler" bölümü.
type OfferingService interface {
	// List, tüm hizmetleri Order'a göre döner (taslaklar dahil).
	List(ctx context.Context) ([]models.Offering, error)
	// Published, sadece yayındaki hizmetleri döner.
	Published(ctx context.Context) ([]models.Offering, error)
	Create(ctx context.Context, auth models.AuthContext, in *models.OfferingInput) (*models.Offering, error)
}

type offeringService struct {
	backend OfferingBackend
}

// NewOfferingService, constructor.
func NewOfferingService(backend OfferingBackend) OfferingService {
	return &offeringService{backend: backend}
}

func (s *offeringService) List(ctx context.Context) ([]models.Offering, error) {
	items, err := s.backend.ListOfferings(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	return items, nil
}

func (s *offeringService) Published(ctx context.Context) ([]models.Offering, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, o := range items {
		if o.Published() {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *offeringService) Create(ctx context.Context, auth models.AuthContext, in *models.OfferingInput) (*models.Offering, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return s.backend.CreateOffering(ctx, auth, *in)
}
