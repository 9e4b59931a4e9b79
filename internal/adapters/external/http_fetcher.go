package external

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResilienceConfig controls retries and the circuit breaker guarding one remote service.
type ResilienceConfig struct {
	Timeout         time.Duration
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	BreakerTimeout  time.Duration
	BreakerFailures uint32
}

// DefaultResilienceConfig returns the settings used when none are configured
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		Timeout:         10 * time.Second,
		MaxRetries:      2,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		BreakerTimeout:  60 * time.Second,
		BreakerFailures: 5,
	}
}

// HTTPFetcherParams holds parameters for creating an HTTP fetcher
type HTTPFetcherParams struct {
	Name       string
	Client     HTTPClient
	UserAgent  string
	Resilience ResilienceConfig
	Logger     ports.Logger
}

// HTTPFetcher performs GET requests with retries and a circuit breaker and decodes JSON bodies.
type HTTPFetcher struct {
	name       string
	client     HTTPClient
	userAgent  string
	resilience ResilienceConfig
	breaker    *gobreaker.CircuitBreaker
	logger     ports.Logger
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.code)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= http.StatusInternalServerError
}

// NewHTTPFetcher creates a fetcher with its own circuit breaker
func NewHTTPFetcher(params HTTPFetcherParams) *HTTPFetcher {
	resilience := params.Resilience
	if resilience.InitialInterval <= 0 {
		resilience.InitialInterval = DefaultResilienceConfig().InitialInterval
	}
	if resilience.BreakerFailures == 0 {
		resilience.BreakerFailures = DefaultResilienceConfig().BreakerFailures
	}

	client := params.Client
	if client == nil {
		timeout := resilience.Timeout
		if timeout <= 0 {
			timeout = DefaultResilienceConfig().Timeout
		}
		client = &http.Client{Timeout: timeout}
	}

	failures := resilience.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    params.Name,
		Timeout: resilience.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			var se *statusError
			if stderrors.As(err, &se) {
				return !se.retryable()
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if params.Logger != nil {
				params.Logger.Warn("Circuit breaker state changed",
					ports.F("breaker", name),
					ports.F("from", from.String()),
					ports.F("to", to.String()))
			}
		},
	})

	return &HTTPFetcher{
		name:       params.Name,
		client:     client,
		userAgent:  params.UserAgent,
		resilience: resilience,
		breaker:    breaker,
		logger:     params.Logger,
	}
}

// GetJSON fetches url and decodes the body into target. Numbers decode as json.Number.
func (f *HTTPFetcher) GetJSON(ctx context.Context, url string, target interface{}) error {
	body, err := f.Get(ctx, url)
	if err != nil {
		return err
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return errors.NewProtocolError(fmt.Sprintf("failed to decode %s response", f.name), err)
	}
	return nil
}

// Get returns the body of a successful response
func (f *HTTPFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	var attempt int

	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewNetworkError(fmt.Sprintf("%s request cancelled", f.name), err)
		}

		result, err := f.breaker.Execute(func() (interface{}, error) {
			return f.do(ctx, url)
		})
		if err == nil {
			return result.([]byte), nil
		}

		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.NewNetworkError(fmt.Sprintf("%s circuit breaker open", f.name), err)
		}

		var se *statusError
		if stderrors.As(err, &se) && !se.retryable() {
			return nil, f.mapError(err)
		}

		if attempt >= f.resilience.MaxRetries {
			return nil, f.mapError(err)
		}

		delay := f.resilience.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if f.resilience.MaxInterval > 0 && delay > f.resilience.MaxInterval {
			delay = f.resilience.MaxInterval
		}

		if f.logger != nil {
			f.logger.Debug("Retrying request",
				ports.F("service", f.name),
				ports.F("attempt", attempt+1),
				ports.F("delay_ms", delay.Milliseconds()),
				ports.F("error", err.Error()))
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.NewNetworkError(fmt.Sprintf("%s request cancelled", f.name), ctx.Err())
		case <-timer.C:
		}

		attempt++
	}
}

func (f *HTTPFetcher) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && f.logger != nil {
			f.logger.Warn("Failed to close response body", ports.F("service", f.name), ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (f *HTTPFetcher) mapError(err error) error {
	var se *statusError
	if stderrors.As(err, &se) {
		if se.code == http.StatusNotFound {
			return errors.Wrap(errors.NotFoundError, fmt.Sprintf("%s resource not found", f.name), err)
		}
		return errors.NewProtocolError(fmt.Sprintf("%s returned status %d", f.name, se.code), err)
	}
	return errors.NewNetworkError(fmt.Sprintf("failed to call %s", f.name), err)
}
