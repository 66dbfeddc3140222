// Package refdata loads the lookup collections (users, platforms, learning
// activities, ...) that pages need to fill select controls and to turn ids
// into names. It is the single provider all features use.
//
// Collections are fetched concurrently and the load fails as a whole if any
// fetch fails. A Set is built per request. When a Cache is configured the
// collections are also shared across requests until they expire or are
// invalidated.
package refdata

import (
	"context"
	"fmt"

	"github.com/dalemusser/workbookhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Collection names one lookup collection.
type Collection string

const (
	Users              Collection = "users"
	LearningPlatforms  Collection = "learning-platforms"
	LearningActivities Collection = "learning-activities"
	LearningTypes      Collection = "learning-types"
	TaskStatuses       Collection = "task-statuses"
	Locations          Collection = "locations"
	Areas              Collection = "areas"
	Schools            Collection = "schools"
	GraduateAttributes Collection = "graduate-attributes"
)

var known = map[Collection]bool{
	Users: true, LearningPlatforms: true, LearningActivities: true, LearningTypes: true,
	TaskStatuses: true, Locations: true, Areas: true, Schools: true, GraduateAttributes: true,
}

// ActivityForm is what the activity create/edit form needs.
var ActivityForm = []Collection{Users, LearningActivities, LearningTypes, TaskStatuses, Locations}

// WorkbookForm is what the workbook metadata form needs.
var WorkbookForm = []Collection{Users, LearningPlatforms, Areas, Schools}

// Source fetches collections from the backend. *backend.Client satisfies it.
type Source interface {
	Users(ctx context.Context) ([]models.User, error)
	LearningPlatforms(ctx context.Context) ([]models.LearningPlatform, error)
	LearningActivities(ctx context.Context, platformID string) ([]models.LearningActivity, error)
	LearningTypes(ctx context.Context) ([]models.LearningType, error)
	TaskStatuses(ctx context.Context) ([]models.TaskStatus, error)
	Locations(ctx context.Context) ([]models.Location, error)
	Areas(ctx context.Context) ([]models.Area, error)
	Schools(ctx context.Context) ([]models.School, error)
	GraduateAttributes(ctx context.Context) ([]models.GraduateAttribute, error)
}

// Cache stores JSON-encodable values by key. Get reports whether the key was
// found. refcache.Cache implements it on Redis.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}

// Loader loads collections from a Source, optionally through a Cache.
type Loader struct {
	src   Source
	cache Cache
	log   *zap.Logger
}

// NewLoader returns a Loader. cache may be nil.
func NewLoader(src Source, cache Cache, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{src: src, cache: cache, log: logger}
}

// Load fetches the wanted collections concurrently and waits for all of
// them. platformID scopes LearningActivities. Any failure fails the load.
func (l *Loader) Load(ctx context.Context, platformID string, want ...Collection) (*Set, error) {
	want = dedupe(want)
	for _, c := range want {
		if !known[c] {
			return nil, fmt.Errorf("refdata: unknown collection %q", c)
		}
	}

	s := &Set{PlatformID: platformID}
	g, gctx := errgroup.WithContext(ctx)

	for _, c := range want {
		switch c {
		case Users:
			g.Go(func() (err error) {
				s.Users, err = cached(gctx, l, key(Users, ""), l.src.Users)
				return wrap(Users, err)
			})
		case LearningPlatforms:
			g.Go(func() (err error) {
				s.LearningPlatforms, err = cached(gctx, l, key(LearningPlatforms, ""), l.src.LearningPlatforms)
				return wrap(LearningPlatforms, err)
			})
		case LearningActivities:
			g.Go(func() (err error) {
				s.LearningActivities, err = l.LearningActivities(gctx, platformID)
				return wrap(LearningActivities, err)
			})
		case LearningTypes:
			g.Go(func() (err error) {
				s.LearningTypes, err = cached(gctx, l, key(LearningTypes, ""), l.src.LearningTypes)
				return wrap(LearningTypes, err)
			})
		case TaskStatuses:
			g.Go(func() (err error) {
				s.TaskStatuses, err = cached(gctx, l, key(TaskStatuses, ""), l.src.TaskStatuses)
				return wrap(TaskStatuses, err)
			})
		case Locations:
			g.Go(func() (err error) {
				s.Locations, err = cached(gctx, l, key(Locations, ""), l.src.Locations)
				return wrap(Locations, err)
			})
		case Areas:
			g.Go(func() (err error) {
				s.Areas, err = cached(gctx, l, key(Areas, ""), l.src.Areas)
				return wrap(Areas, err)
			})
		case Schools:
			g.Go(func() (err error) {
				s.Schools, err = cached(gctx, l, key(Schools, ""), l.src.Schools)
				return wrap(Schools, err)
			})
		case GraduateAttributes:
			g.Go(func() (err error) {
				s.GraduateAttributes, err = cached(gctx, l, key(GraduateAttributes, ""), l.src.GraduateAttributes)
				return wrap(GraduateAttributes, err)
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.index()
	return s, nil
}

// LearningActivities fetches the learning activities of one platform.
func (l *Loader) LearningActivities(ctx context.Context, platformID string) ([]models.LearningActivity, error) {
	return cached(ctx, l, key(LearningActivities, platformID), func(ctx context.Context) ([]models.LearningActivity, error) {
		return l.src.LearningActivities(ctx, platformID)
	})
}

// Invalidate drops the cached learning activities of platformID so the next
// load re-fetches them. It is a no-op without a cache.
func (l *Loader) Invalidate(ctx context.Context, platformID string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Delete(ctx, key(LearningActivities, platformID)); err != nil {
		l.log.Warn("refdata: cache invalidate failed",
			zap.String("platform_id", platformID), zap.Error(err))
	}
}

// cached returns the cached value for k or fetches and stores it. Cache
// errors are logged and otherwise ignored.
func cached[T any](ctx context.Context, l *Loader, k string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if l.cache != nil {
		var v []T
		ok, err := l.cache.Get(ctx, k, &v)
		if err != nil {
			l.log.Warn("refdata: cache read failed", zap.String("key", k), zap.Error(err))
		} else if ok {
			return v, nil
		}
	}

	v, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, k, v); err != nil {
			l.log.Warn("refdata: cache write failed", zap.String("key", k), zap.Error(err))
		}
	}
	return v, nil
}

func key(c Collection, scope string) string {
	if scope == "" {
		return "refdata:" + string(c)
	}
	return "refdata:" + string(c) + ":" + scope
}

func wrap(c Collection, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", c, err)
}

func dedupe(in []Collection) []Collection {
	seen := make(map[Collection]bool, len(in))
	out := in[:0:0]
	for _, c := range in {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
