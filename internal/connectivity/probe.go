package connectivity

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-bizsync/internal/adapter"
	"github.com/MKhiriev/go-bizsync/internal/config"
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/internal/utils"
)

const defaultProbeInterval = 10 * time.Second

// ProbeMonitor considers the API online when a HEAD request to its base URL
// gets any HTTP response, and offline on transport errors.
type ProbeMonitor struct {
	client   *utils.HTTPClient
	interval time.Duration

	// state serializes result updates and their notification.
	state  sync.Mutex
	probed atomic.Bool
	online atomic.Bool
	bcast  broadcaster

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewProbeMonitor builds a monitor for the API configured in adapterCfg.
// The monitor is idle until Run is called; Status probes on demand until
// then.
func NewProbeMonitor(adapterCfg config.ClientAdapter, interval time.Duration, logger *logger.Logger) (*ProbeMonitor, error) {
	baseURL, err := adapter.NormalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid probe address: %w", err)
	}
	if interval <= 0 {
		interval = defaultProbeInterval
	}

	timeout := adapterCfg.RequestTimeout
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}

	client := utils.NewHTTPClient()
	client.SetBaseURL(baseURL).SetTimeout(timeout)

	return &ProbeMonitor{client: client, interval: interval, logger: logger}, nil
}

// Status returns the last probe result. Before the first probe it probes
// synchronously.
func (p *ProbeMonitor) Status(ctx context.Context) bool {
	if !p.probed.Load() {
		return p.Probe(ctx)
	}
	return p.online.Load()
}

func (p *ProbeMonitor) Subscribe(fn func(online bool)) func() {
	return p.bcast.subscribe(fn)
}

// Probe sends one HEAD request, records the result and notifies subscribers
// if the state changed.
func (p *ProbeMonitor) Probe(ctx context.Context) bool {
	_, err := p.client.R().SetContext(ctx).Head("/")
	online := err == nil

	p.state.Lock()
	defer p.state.Unlock()

	first := !p.probed.Swap(true)
	prev := p.online.Swap(online)
	if first && !online {
		return online
	}
	if first || prev != online {
		p.logger.Info().Bool("online", online).Msg("connectivity changed")
		p.bcast.notify(online)
	}

	return online
}

// Run implements workers.Worker. It probes immediately and then every
// interval until Stop is called or ctx is cancelled.
func (p *ProbeMonitor) Run(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	probeCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		t := time.NewTicker(p.interval)
		defer t.Stop()

		p.Probe(probeCtx)
		for {
			select {
			case <-probeCtx.Done():
				return
			case <-t.C:
				p.Probe(probeCtx)
			}
		}
	}()
}

// Stop implements workers.Worker. It blocks until the probe loop exits.
func (p *ProbeMonitor) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
