// Package weather holds the cached repository presenters read states, stations,
// observations and forecasts through.
package weather

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

const (
	statesKey     = "states"
	favouritesKey = "favourites"
)

const (
	kindStates       = "states"
	kindStations     = "stations"
	kindObservations = "observations"
	kindForecasts    = "forecasts"
	kindFavourites   = "favourites"
)

// FavouriteStore is the persistent ordered set of favourite station ids
type FavouriteStore interface {
	IDs() []string
	Add(id string)
	Remove(id string)
	Resolve(known map[string]models.Station) []models.Station
}

// Repository caches service results per key and runs fetches in the background.
// Every exported method must be called on the dispatcher's goroutine, and every
// callback is invoked there exactly once.
type Repository struct {
	service    ports.WeatherService
	snapshots  ports.SnapshotCache
	dispatcher ports.Dispatcher
	favourites FavouriteStore
	logger     ports.Logger
	metrics    ports.MetricsCollector
	timeout    time.Duration

	site     models.ForecastSite
	cache    map[string]cacheEntry
	inflight map[string]*fetch
	added    map[string]models.Station
	seq      uint64

	ctx    context.Context
	cancel context.CancelFunc
}

// Dependencies holds the collaborators of a Repository. Snapshots and Metrics are optional.
type Dependencies struct {
	Service    ports.WeatherService
	Snapshots  ports.SnapshotCache
	Dispatcher ports.Dispatcher
	Favourites FavouriteStore
	Config     ports.ConfigProvider
	Logger     ports.Logger
	Metrics    ports.MetricsCollector
}

type cacheEntry struct {
	value interface{}
	seq   uint64
}

type fetch struct {
	seq     uint64
	forced  bool
	waiters []func(value interface{}, err error)
}

// NewRepository creates a repository with an empty cache
func NewRepository(deps Dependencies) (*Repository, error) {
	if deps.Service == nil {
		return nil, errors.NewValidationError("weather service is required")
	}
	if deps.Dispatcher == nil {
		return nil, errors.NewValidationError("dispatcher is required")
	}
	if deps.Favourites == nil {
		return nil, errors.NewValidationError("favourites store is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	cfg := deps.Config.GetRepositoryConfig()
	site, err := models.ParseForecastSite(cfg.DefaultForecastSite)
	if err != nil {
		return nil, err
	}

	metrics := deps.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Repository{
		service:    deps.Service,
		snapshots:  deps.Snapshots,
		dispatcher: deps.Dispatcher,
		favourites: deps.Favourites,
		logger:     deps.Logger,
		metrics:    metrics,
		timeout:    cfg.FetchTimeout,
		site:       site,
		cache:      make(map[string]cacheEntry),
		inflight:   make(map[string]*fetch),
		added:      make(map[string]models.Station),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// GetStates returns the state list
func (r *Repository) GetStates(forceUpdate bool, cb ports.StatesCallback) {
	if cb == nil {
		panic("weather: GetStates called with nil callback")
	}
	load(r, kindStates, statesKey, forceUpdate, r.service.FetchStates, cb)
}

// GetStations returns the stations of one state
func (r *Repository) GetStations(stateCode string, forceUpdate bool, cb ports.StationsCallback) {
	if stateCode == "" {
		panic("weather: GetStations called with empty state code")
	}
	if cb == nil {
		panic("weather: GetStations called with nil callback")
	}
	load(r, kindStations, stationsKey(stateCode), forceUpdate, func(ctx context.Context) ([]models.Station, error) {
		return r.service.FetchStations(ctx, stateCode)
	}, cb)
}

// GetObservations returns the recent observations of a station, newest first
func (r *Repository) GetObservations(station models.Station, forceUpdate bool, cb ports.ObservationsCallback) {
	if station.ID == "" {
		panic("weather: GetObservations called with empty station id")
	}
	if cb == nil {
		panic("weather: GetObservations called with nil callback")
	}
	load(r, kindObservations, "observations:"+station.ID, forceUpdate, func(ctx context.Context) ([]models.Observation, error) {
		return r.service.FetchObservations(ctx, station)
	}, cb)
}

// GetForecasts returns the forecasts of a station from the current forecast site
func (r *Repository) GetForecasts(station models.Station, forceUpdate bool, cb ports.ForecastsCallback) {
	if station.ID == "" {
		panic("weather: GetForecasts called with empty station id")
	}
	if cb == nil {
		panic("weather: GetForecasts called with nil callback")
	}
	site := r.site
	key := fmt.Sprintf("forecasts:%s:%s", station.ID, site)
	load(r, kindForecasts, key, forceUpdate, func(ctx context.Context) ([]models.Forecast, error) {
		return r.service.FetchForecasts(ctx, station, site)
	}, cb)
}

// GetFavouriteStations returns the favourite stations in stored order. Ids not present in
// any cached station list trigger a lookup across the station directory.
func (r *Repository) GetFavouriteStations(forceUpdate bool, cb ports.StationsCallback) {
	if cb == nil {
		panic("weather: GetFavouriteStations called with nil callback")
	}

	if !forceUpdate {
		if entry, ok := r.cache[favouritesKey]; ok {
			r.metrics.RecordCacheHit(kindFavourites)
			stations := slices.Clone(entry.value.([]models.Station))
			r.dispatcher.Post(func() { cb(stations, nil) })
			return
		}
		r.metrics.RecordCacheMiss(kindFavourites)
	}

	if !forceUpdate && !r.hasUnknownFavourites() {
		stations := r.storeFavourites()
		r.dispatcher.Post(func() { cb(stations, nil) })
		return
	}

	r.loadDirectory(forceUpdate, func(err error) {
		stations := r.storeFavourites()
		if err != nil && len(stations) < len(r.favourites.IDs()) {
			r.logger.Warn("Station directory lookup incomplete",
				ports.F("resolved", len(stations)),
				ports.F("error", err.Error()))
			delete(r.cache, favouritesKey)
			if len(stations) == 0 {
				cb(nil, err)
				return
			}
		}
		cb(stations, nil)
	})
}

// AddFavouriteStation stores the station id and makes the station resolvable
func (r *Repository) AddFavouriteStation(station models.Station) {
	if station.ID == "" {
		panic("weather: AddFavouriteStation called with empty station id")
	}
	r.added[station.ID] = station
	r.favourites.Add(station.ID)
	delete(r.cache, favouritesKey)
}

// RemoveFavouriteStation drops the station id. Absent ids are ignored.
func (r *Repository) RemoveFavouriteStation(station models.Station) {
	if station.ID == "" {
		panic("weather: RemoveFavouriteStation called with empty station id")
	}
	r.favourites.Remove(station.ID)
	delete(r.cache, favouritesKey)
}

// SetForecastSite selects the provider used by later GetForecasts calls. Unknown sites
// return a ConfigurationError and keep the current provider.
func (r *Repository) SetForecastSite(site string) error {
	parsed, err := models.ParseForecastSite(site)
	if err != nil {
		return err
	}
	r.site = parsed
	return nil
}

// ForecastSite returns the provider used by GetForecasts
func (r *Repository) ForecastSite() models.ForecastSite {
	return r.site
}

// Invalidate drops every cached entry. In-flight fetches still complete.
func (r *Repository) Invalidate() {
	r.cache = make(map[string]cacheEntry)
}

// Close cancels in-flight fetches. Their callbacks still fire with the cancellation error.
func (r *Repository) Close() {
	r.cancel()
}

func (r *Repository) hasUnknownFavourites() bool {
	known := r.knownStations()
	for _, id := range r.favourites.IDs() {
		if _, ok := known[id]; !ok {
			return true
		}
	}
	return false
}

func (r *Repository) storeFavourites() []models.Station {
	stations := r.favourites.Resolve(r.knownStations())
	r.seq++
	r.cache[favouritesKey] = cacheEntry{value: stations, seq: r.seq}
	return slices.Clone(stations)
}

// knownStations merges every cached station list with explicitly added favourites
func (r *Repository) knownStations() map[string]models.Station {
	known := make(map[string]models.Station, len(r.added))
	for key, entry := range r.cache {
		if !strings.HasPrefix(key, kindStations+":") {
			continue
		}
		for _, s := range entry.value.([]models.Station) {
			known[s.ID] = s
		}
	}
	for id, s := range r.added {
		if _, ok := known[id]; !ok {
			known[id] = s
		}
	}
	return known
}

// loadDirectory fetches the states and the stations of every state, then calls done once
// with the first error seen.
func (r *Repository) loadDirectory(forceUpdate bool, done func(err error)) {
	r.GetStates(forceUpdate, func(states []models.State, err error) {
		if err != nil {
			done(err)
			return
		}
		if len(states) == 0 {
			done(nil)
			return
		}

		pending := len(states)
		var firstErr error
		for _, state := range states {
			r.GetStations(state.Code, forceUpdate, func(_ []models.Station, err error) {
				if err != nil && firstErr == nil {
					firstErr = err
				}
				pending--
				if pending == 0 {
					done(firstErr)
				}
			})
		}
	})
}

func (r *Repository) complete(key string, f *fetch, value interface{}, err error) {
	if r.inflight[key] == f {
		delete(r.inflight, key)
	}

	if err == nil {
		if entry, ok := r.cache[key]; !ok || entry.seq < f.seq {
			r.cache[key] = cacheEntry{value: value, seq: f.seq}
		}
	}

	for _, waiter := range f.waiters {
		waiter(value, err)
	}
}

// load serves key from the cache or joins or starts a fetch. A forced caller never joins
// an unforced fetch.
func load[T any](r *Repository, kind, key string, forceUpdate bool, fetchFn func(ctx context.Context) ([]T, error), cb func([]T, error)) {
	if !forceUpdate {
		if entry, ok := r.cache[key]; ok {
			r.metrics.RecordCacheHit(kind)
			value := slices.Clone(entry.value.([]T))
			r.dispatcher.Post(func() { cb(value, nil) })
			return
		}
		r.metrics.RecordCacheMiss(kind)
	}

	waiter := func(value interface{}, err error) {
		if err != nil {
			cb(nil, err)
			return
		}
		cb(slices.Clone(value.([]T)), nil)
	}

	if f, ok := r.inflight[key]; ok && (f.forced || !forceUpdate) {
		f.waiters = append(f.waiters, waiter)
		return
	}

	r.seq++
	f := &fetch{seq: r.seq, forced: forceUpdate, waiters: []func(interface{}, error){waiter}}
	r.inflight[key] = f

	r.logger.Debug("Starting fetch", ports.F("key", key), ports.F("force", forceUpdate))

	go func() {
		ctx := r.ctx
		if r.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}

		value, err := fetchThrough(ctx, r, key, forceUpdate, fetchFn)
		if err != nil {
			r.logger.Warn("Fetch failed", ports.F("key", key), ports.F("error", err.Error()))
		}
		r.dispatcher.Post(func() {
			if err != nil {
				r.complete(key, f, nil, err)
				return
			}
			r.complete(key, f, value, nil)
		})
	}()
}

// fetchThrough runs off the dispatcher goroutine. Unforced fetches try the snapshot cache
// first and successful results are written through to it.
func fetchThrough[T any](ctx context.Context, r *Repository, key string, forceUpdate bool, fetchFn func(ctx context.Context) ([]T, error)) ([]T, error) {
	if r.snapshots != nil && !forceUpdate {
		var snapshot []T
		found, err := r.snapshots.Load(ctx, key, &snapshot)
		if err != nil {
			r.logger.Warn("Snapshot read failed", ports.F("key", key), ports.F("error", err.Error()))
		} else if found {
			if snapshot == nil {
				snapshot = []T{}
			}
			return snapshot, nil
		}
	}

	value, err := fetchFn(ctx)
	if err != nil {
		return nil, err
	}
	if value == nil {
		value = []T{}
	}

	if r.snapshots != nil {
		if err := r.snapshots.Store(ctx, key, value); err != nil {
			r.logger.Warn("Snapshot write failed", ports.F("key", key), ports.F("error", err.Error()))
		}
	}
	return value, nil
}

func stationsKey(stateCode string) string {
	return kindStations + ":" + stateCode
}

type noopMetrics struct{}

func (noopMetrics) RecordCacheHit(string) {}
func (noopMetrics) RecordCacheMiss(string) {}

func (noopMetrics) RecordServiceCall(string, string, bool, time.Duration) {}
