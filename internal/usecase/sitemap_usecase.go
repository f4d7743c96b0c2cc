package usecase

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/internal/domain/service"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
)

const (
	SitemapCacheKey = "sitemap:xml"
	sitemapCacheTTL = 2 * time.Hour
	sitemapXMLNS    = "http://www.sitemaps.org/schemas/sitemap/0.9"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type staticPage struct {
	path       string
	changeFreq string
	priority   string
}

var staticPages = []staticPage{
	{"/", "daily", "1.0"},
	{"/register", "daily", "0.9"},
	{"/register/details", "daily", "0.9"},
	{"/contact", "monthly", "0.5"},
	{"/terms", "yearly", "0.2"},
	{"/privacy", "yearly", "0.2"},
	{"/parental", "yearly", "0.2"},
	{"/cookies", "yearly", "0.2"},
}

type SitemapUseCase struct {
	hairdresserRepo repository.HairdresserRepository
	cache           service.Cache
	baseURL         string
	now             func() time.Time
}

// NewSitemapUseCase builds sitemaps against baseURL. cache may be nil.
func NewSitemapUseCase(hairdresserRepo repository.HairdresserRepository, cache service.Cache, baseURL string) *SitemapUseCase {
	return &SitemapUseCase{
		hairdresserRepo: hairdresserRepo,
		cache:           cache,
		baseURL:         strings.TrimRight(baseURL, "/"),
		now:             time.Now,
	}
}

// Get serves the cached document, building and caching it on a miss.
func (uc *SitemapUseCase) Get(ctx context.Context) ([]byte, error) {
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, SitemapCacheKey)
		if err != nil {
			logger.Warn("Sitemap cache read failed: %v", err)
		} else if ok {
			return []byte(cached), nil
		}
	}
	return uc.Refresh(ctx)
}

// Refresh rebuilds the document and replaces the cached copy.
func (uc *SitemapUseCase) Refresh(ctx context.Context) ([]byte, error) {
	doc, err := uc.Build(ctx)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, SitemapCacheKey, string(doc), sitemapCacheTTL); err != nil {
			logger.Warn("Sitemap cache write failed: %v", err)
		}
	}
	return doc, nil
}

func (uc *SitemapUseCase) Build(ctx context.Context) ([]byte, error) {
	profiles, err := uc.hairdresserRepo.ListPaid(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to build sitemap", err)
	}

	now := uc.now().UTC()
	set := sitemapURLSet{XMLNS: sitemapXMLNS}

	for _, page := range staticPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        uc.baseURL + page.path,
			LastMod:    now.Format(time.RFC3339),
			ChangeFreq: page.changeFreq,
			Priority:   page.priority,
		})
	}

	for _, h := range profiles {
		if !h.IsPaid {
			continue
		}
		priority := "0.7"
		if h.Plan() == entity.PlanVIP {
			priority = "0.9"
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/profile/%s", uc.baseURL, h.ID),
			LastMod:    profileLastMod(h, now).Format(time.RFC3339),
			ChangeFreq: "daily",
			Priority:   priority,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, errors.Internal("Failed to encode sitemap", err)
	}
	return append([]byte(xml.Header), body...), nil
}

func profileLastMod(h *entity.Hairdresser, fallback time.Time) time.Time {
	for _, t := range []*time.Time{h.UpdatedAt, h.PaymentDate, h.CreatedAt} {
		if t != nil && !t.IsZero() {
			return t.UTC()
		}
	}
	return fallback
}
