// Package services wires configuration to concrete service
// implementations. The factory hands out mock or API-backed services per
// the configured mode and memoizes them, so mock state survives mode
// round-trips and repeated lookups.
package services

import (
	"fmt"
	"sync"

	apiclient "github.com/quotia-io/procure/internal/client"
	"github.com/quotia-io/procure/internal/mock"
	"github.com/quotia-io/procure/pkg/procure"
)

// bundle groups the three services of one mode.
type bundle struct {
	suppliers     procure.SuppliersService
	manufacturers procure.ManufacturersService
	rfqs          procure.RFQsService
}

// Factory builds and caches resource services per mode.
type Factory struct {
	config *procure.Config

	mu      sync.RWMutex
	mode    procure.ServiceMode
	bundles map[procure.ServiceMode]*bundle
}

// NewFactory validates the config and creates a factory in the config's
// mode. The config is normalized in place.
func NewFactory(config *procure.Config) (*Factory, error) {
	err := config.Normalize()
	if err != nil {
		return nil, err
	}

	return &Factory{
		config:  config,
		mode:    config.Mode,
		bundles: make(map[procure.ServiceMode]*bundle),
	}, nil
}

// Mode returns the factory-wide mode.
func (f *Factory) Mode() procure.ServiceMode {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.mode
}

// SetMode flips the factory-wide mode. Already-built bundles are kept, so
// switching back to mock resumes with the same in-memory state.
func (f *Factory) SetMode(mode procure.ServiceMode) error {
	if mode != procure.ModeMock && mode != procure.ModeAPI {
		return fmt.Errorf("%w: %q", procure.ErrUnknownServiceMode, mode)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.mode = mode

	return nil
}

// bundleFor returns the memoized bundle for a mode, building it on first use.
func (f *Factory) bundleFor(mode procure.ServiceMode) (*bundle, error) {
	f.mu.RLock()
	built, ok := f.bundles[mode]
	f.mu.RUnlock()

	if ok {
		return built, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if built, ok := f.bundles[mode]; ok {
		return built, nil
	}

	built, err := f.buildBundle(mode)
	if err != nil {
		return nil, err
	}

	f.bundles[mode] = built

	return built, nil
}

func (f *Factory) buildBundle(mode procure.ServiceMode) (*bundle, error) {
	switch mode {
	case procure.ModeMock:
		store := mock.NewStore()

		return &bundle{
			suppliers:     mock.NewSuppliersService(store, f.config.MockLatency),
			manufacturers: mock.NewManufacturersService(store, f.config.MockLatency),
			rfqs:          mock.NewRFQsService(store, f.config.MockLatency),
		}, nil

	case procure.ModeAPI:
		client, err := apiclient.New(f.config)
		if err != nil {
			return nil, fmt.Errorf("building API client: %w", err)
		}

		return &bundle{
			suppliers:     client.Suppliers(),
			manufacturers: client.Manufacturers(),
			rfqs:          client.RFQs(),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", procure.ErrUnknownServiceMode, mode)
	}
}

// Suppliers returns the supplier service for the current mode.
func (f *Factory) Suppliers() (procure.SuppliersService, error) {
	return f.SuppliersFor(f.Mode())
}

// SuppliersFor returns the supplier service for an explicit mode.
func (f *Factory) SuppliersFor(mode procure.ServiceMode) (procure.SuppliersService, error) {
	built, err := f.bundleFor(mode)
	if err != nil {
		return nil, err
	}

	return built.suppliers, nil
}

// Manufacturers returns the manufacturer service for the current mode.
func (f *Factory) Manufacturers() (procure.ManufacturersService, error) {
	return f.ManufacturersFor(f.Mode())
}

// ManufacturersFor returns the manufacturer service for an explicit mode.
func (f *Factory) ManufacturersFor(mode procure.ServiceMode) (procure.ManufacturersService, error) {
	built, err := f.bundleFor(mode)
	if err != nil {
		return nil, err
	}

	return built.manufacturers, nil
}

// RFQs returns the RFQ service for the current mode.
func (f *Factory) RFQs() (procure.RFQsService, error) {
	return f.RFQsFor(f.Mode())
}

// RFQsFor returns the RFQ service for an explicit mode.
func (f *Factory) RFQsFor(mode procure.ServiceMode) (procure.RFQsService, error) {
	built, err := f.bundleFor(mode)
	if err != nil {
		return nil, err
	}

	return built.rfqs, nil
}
