package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/logger"
	"github.com/campusmart/storefront/pkg/redis"
	"github.com/campusmart/storefront/pkg/types"
)

const (
	// Key is the single well-known settings document.
	Key = "settings"

	cacheScope = "settings"
	cacheTTL   = 10 * time.Minute
)

// DefaultSPF is the service fee used until an admin sets one.
var DefaultSPF = decimal.NewFromInt(100)

// Service exposes the storefront settings document.
type Service interface {
	Get(ctx context.Context) (*types.SiteSettings, error)
	Update(ctx context.Context, patch UpdateInput) (*types.SiteSettings, error)
	SPF(ctx context.Context) (decimal.Decimal, error)
}

// UpdateInput is a partial patch; nil fields are left unchanged.
type UpdateInput struct {
	BankName          *string
	BankAccountNumber *string
	AccountHolderName *string
	Hostels           *[]string
	SPF               *decimal.Decimal
	WhatsappNumber    *string
}

type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	CacheKey(scope, id string) string
}

type service struct {
	repo  Repository
	cache cache
	logg  *logger.Logger
}

// NewService builds the settings service. cache may be nil.
func NewService(repo Repository, cache cache, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo, cache: cache, logg: logg}, nil
}

// Defaults is the document served before any admin update.
func Defaults() types.SiteSettings {
	return types.SiteSettings{Hostels: []string{}, SPF: DefaultSPF}
}

func (s *service) Get(ctx context.Context) (*types.SiteSettings, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.fillCache(ctx, current)
	return current, nil
}

func (s *service) SPF(ctx context.Context) (decimal.Decimal, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return current.SPF, nil
}

func (s *service) Update(ctx context.Context, patch UpdateInput) (*types.SiteSettings, error) {
	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := apply(current, patch); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode settings")
	}
	if err := s.repo.Upsert(ctx, Key, raw); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save settings")
	}

	s.writeCache(ctx, current)
	if s.logg != nil {
		s.logg.Info(ctx, "settings updated")
	}
	return current, nil
}

func (s *service) load(ctx context.Context) (*types.SiteSettings, error) {
	current := Defaults()
	row, err := s.repo.Find(ctx, Key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &current, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	if err := json.Unmarshal(row.Value, &current); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode settings")
	}
	if current.Hostels == nil {
		current.Hostels = []string{}
	}
	return &current, nil
}

func (s *service) fromCache(ctx context.Context) (*types.SiteSettings, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.CacheKey(cacheScope, Key))
	if err != nil {
		if !redis.IsMiss(err) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "settings cache read failed")
		}
		return nil, false
	}
	var cached types.SiteSettings
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

// fillCache populates an empty cache entry only, so a read that loaded the
// row before a concurrent Update cannot overwrite the fresher document.
func (s *service) fillCache(ctx context.Context, current *types.SiteSettings) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(current)
	if err != nil {
		return
	}
	if _, err := s.cache.SetNX(ctx, s.cache.CacheKey(cacheScope, Key), string(raw), cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "settings cache write failed")
	}
}

// writeCache replaces the cached document after an update. When the write
// fails the entry is dropped instead.
func (s *service) writeCache(ctx context.Context, current *types.SiteSettings) {
	if s.cache == nil {
		return
	}
	key := s.cache.CacheKey(cacheScope, Key)
	raw, err := json.Marshal(current)
	if err == nil {
		err = s.cache.Set(ctx, key, string(raw), cacheTTL)
	}
	if err == nil {
		return
	}
	if s.logg != nil {
		s.logg.Error(ctx, "settings cache write failed", err)
	}
	if err := s.cache.Del(ctx, key); err != nil && s.logg != nil {
		s.logg.Error(ctx, "settings cache invalidation failed", err)
	}
}

func apply(current *types.SiteSettings, patch UpdateInput) error {
	if patch.BankName != nil {
		current.BankName = strings.TrimSpace(*patch.BankName)
	}
	if patch.BankAccountNumber != nil {
		current.BankAccountNumber = strings.TrimSpace(*patch.BankAccountNumber)
	}
	if patch.AccountHolderName != nil {
		current.AccountHolderName = strings.TrimSpace(*patch.AccountHolderName)
	}
	if patch.WhatsappNumber != nil {
		current.WhatsappNumber = strings.TrimSpace(*patch.WhatsappNumber)
	}
	if patch.SPF != nil {
		if patch.SPF.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "spf must not be negative")
		}
		current.SPF = *patch.SPF
	}
	if patch.Hostels != nil {
		hostels := make([]string, 0, len(*patch.Hostels))
		seen := map[string]struct{}{}
		for _, hostel := range *patch.Hostels {
			hostel = strings.TrimSpace(hostel)
			if hostel == "" {
				continue
			}
			if _, dup := seen[strings.ToLower(hostel)]; dup {
				continue
			}
			seen[strings.ToLower(hostel)] = struct{}{}
			hostels = append(hostels, hostel)
		}
		current.Hostels = hostels
	}
	return nil
}
