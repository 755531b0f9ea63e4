// Package gateway wraps the scraper client behind a circuit breaker. Every
// outbound call consults the breaker first and reports its outcome back, so
// a failing scraper is shed quickly instead of tying up request threads.
package gateway

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/casa-moreno/catalog-system/internal/api/metrics"
	"github.com/casa-moreno/catalog-system/internal/core/domain"
	"github.com/casa-moreno/catalog-system/internal/core/ports"
	"github.com/casa-moreno/catalog-system/internal/pkg/breaker"
)

// DependencyName identifies the scraper in the breaker registry and in
// metrics.
const DependencyName = "mercado-livre-scraper"

// ScraperTransport is the unprotected client the gateway guards.
type ScraperTransport interface {
	GetListing(ctx context.Context, url string) (*ports.ScrapedListing, error)
	StartFullSync(ctx context.Context) (string, error)
}

// ScraperGateway is the circuit-breaker-protected front for the scraper. It
// never retries: an open circuit fails fast with domain.ErrCircuitOpen and
// transport failures propagate as domain.ErrConnectionFailure for the caller
// to surface.
type ScraperGateway struct {
	transport ScraperTransport
	breakers  *breaker.Registry
	logger    zerolog.Logger
}

func NewScraperGateway(transport ScraperTransport, breakers *breaker.Registry, logger zerolog.Logger) *ScraperGateway {
	return &ScraperGateway{transport: transport, breakers: breakers, logger: logger}
}

func (g *ScraperGateway) GetListing(ctx context.Context, url string) (*ports.ScrapedListing, error) {
	var listing *ports.ScrapedListing
	err := g.call(func() error {
		var err error
		listing, err = g.transport.GetListing(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (g *ScraperGateway) StartFullSync(ctx context.Context) (string, error) {
	var report string
	err := g.call(func() error {
		var err error
		report, err = g.transport.StartFullSync(ctx)
		return err
	})
	if err != nil {
		return "", err
	}
	return report, nil
}

// call runs fn under the scraper's breaker. The breaker only observes
// transport-level failures; a decode error on a delivered response does not
// count against the dependency.
func (g *ScraperGateway) call(fn func() error) error {
	b := g.breakers.Get(DependencyName)
	if !b.Allow() {
		metrics.ScraperCallsTotal.WithLabelValues("circuit_open").Inc()
		g.observeState(b)
		g.logger.Warn().Str("dependency", DependencyName).Msg("circuit open, call rejected")
		return domain.ErrCircuitOpen
	}

	err := fn()
	switch {
	case errors.Is(err, domain.ErrConnectionFailure):
		b.RecordFailure()
		metrics.ScraperCallsTotal.WithLabelValues("connection_failure").Inc()
	case err == nil:
		b.RecordSuccess()
		metrics.ScraperCallsTotal.WithLabelValues("ok").Inc()
	}
	g.observeState(b)
	return err
}

func (g *ScraperGateway) observeState(b *breaker.Breaker) {
	metrics.CircuitState.WithLabelValues(DependencyName).Set(float64(b.State()))
}
