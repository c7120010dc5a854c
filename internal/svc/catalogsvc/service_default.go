package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/cache"
	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
	"github.com/yusufsyaifudin/appkeeper/pkg/tracer"
	"github.com/yusufsyaifudin/appkeeper/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultDelay = 500 * time.Millisecond

type DefaultServiceConfig struct {
	Catalog        Catalog       `validate:"required"`
	Cache          cache.Cache   `validate:"required"`
	CacheExpiry    time.Duration `validate:"gte=0"`
	CachePrefixKey string        `validate:"required,alphanumeric"`

	// Delay simulates the store lookup latency, it is skipped on cache hit.
	Delay time.Duration `validate:"gte=0"`
}

type DefaultService struct {
	cfg DefaultServiceConfig
}

var _ Service = (*DefaultService)(nil)

func New(cfg DefaultServiceConfig) (*DefaultService, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, err
	}

	return &DefaultService{
		cfg: cfg,
	}, nil
}

func (d *DefaultService) Search(ctx context.Context, input InputSearch) (out OutSearch, err error) {
	ctx, span := tracer.StartSpan(ctx, "catalogsvc.Search")
	defer span.End()

	if len(input.Platforms) == 0 {
		err = ErrNoPlatform
		return
	}

	input.Query = strings.TrimSpace(input.Query)
	if input.Query == "" {
		err = ErrEmptyQuery
		return
	}

	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	key := d.cacheKey(input)
	span.SetAttributes(attribute.String("cache_key", key))

	// cached results arrive after the same delay as fresh ones
	err = d.wait(ctx)
	if err != nil {
		return
	}

	candidates, err := d.getCache(ctx, key)
	if err == nil {
		out = OutSearch{
			Candidates: candidates,
			Cached:     true,
		}
		return
	}

	if !errors.Is(err, cache.ErrKeyNotExist) {
		logger.Error(ctx, "get catalog search from cache error, continuing to lookup", logger.KV("error", err))
	}

	candidates = make([]Candidate, 0)
	for _, platform := range input.Platforms {
		var listings []Candidate
		listings, err = d.cfg.Catalog.Lookup(ctx, platform)
		if err != nil {
			err = fmt.Errorf("lookup %s catalog: %w", platform, err)
			return
		}

		for _, c := range listings {
			if matchQuery(c, input.Query) {
				candidates = append(candidates, c)
			}
		}
	}

	d.setCache(ctx, key, candidates)

	out = OutSearch{
		Candidates: candidates,
	}
	return
}

func (d *DefaultService) Import(ctx context.Context, input InputImport) (out OutImport, err error) {
	_, span := tracer.StartSpan(ctx, "catalogsvc.Import")
	defer span.End()

	if len(input.Platforms) == 0 {
		err = ErrNoPlatform
		return
	}

	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	c := input.Candidate
	out = OutImport{
		Fields: appsvc.FormFields{
			Name:        c.Name,
			Category:    c.Category,
			Logo:        c.Logo,
			WebsiteURL:  c.WebsiteURL,
			Platform:    input.Platforms[0],
			PackageName: c.PackageName,
			Description: c.Description,
		},
	}
	return
}

func (d *DefaultService) wait(ctx context.Context) error {
	if d.cfg.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d.cfg.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// matchQuery compares case-insensitively in both directions,
// so a store URL holding the package name matches the listing.
func matchQuery(c Candidate, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	values := []string{c.Name, c.PackageName, c.WebsiteURL}
	if u, err := url.Parse(c.WebsiteURL); err == nil && u.Host != "" {
		values = append(values, u.Host)
	}

	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}

		if strings.Contains(v, query) || strings.Contains(query, v) {
			return true
		}
	}

	return false
}

// -- cache

func (d *DefaultService) cacheKey(input InputSearch) string {
	platforms := make([]string, 0, len(input.Platforms))
	for _, p := range input.Platforms {
		platforms = append(platforms, string(p))
	}

	return fmt.Sprintf("%s:%s:%s", d.cfg.CachePrefixKey, strings.Join(platforms, ","), strings.ToLower(input.Query))
}

func (d *DefaultService) getCache(ctx context.Context, key string) ([]Candidate, error) {
	var candidates []Candidate
	err := d.cfg.Cache.GetAs(ctx, key, &candidates)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, fmt.Sprintf("get catalog search %s from cache", key))
	return candidates, nil
}

func (d *DefaultService) setCache(ctx context.Context, key string, candidates []Candidate) {
	err := d.cfg.Cache.SetExp(ctx, key, candidates, d.cfg.CacheExpiry)
	if err != nil {
		logger.Error(ctx, fmt.Sprintf("cannot save catalog search %s to cache", key), logger.KV("error", err))
		return
	}

	logger.Debug(ctx, fmt.Sprintf("caching catalog search %s", key))
}
