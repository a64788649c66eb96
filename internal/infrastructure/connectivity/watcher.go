package connectivity

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"

	"portfolio_tracker/internal/app/port"
)

// Watcher polls a probe endpoint and fires a callback on every
// offline-to-online transition. The portfolio service hooks RefetchTracked
// into it so intermittent connections recover without an explicit refresh.
type Watcher struct {
	probeURL string
	interval time.Duration
	onOnline func(ctx context.Context)
	logger   port.Logger

	// probe is swappable for tests.
	probe  func() bool
	online bool
}

// NewWatcher creates a connectivity watcher. onOnline runs on the watcher's
// goroutine whenever connectivity is regained.
func NewWatcher(probeURL string, interval time.Duration, onOnline func(ctx context.Context), l port.Logger) *Watcher {
	w := &Watcher{
		probeURL: probeURL,
		interval: interval,
		onOnline: onOnline,
		logger:   l,
		online:   true, // assume online until a probe says otherwise
	}
	w.probe = w.probeHTTP
	return w
}

// Run polls until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.step(ctx)
		}
	}
}

// step performs one probe and fires onOnline on an offline-to-online
// transition.
func (w *Watcher) step(ctx context.Context) {
	nowOnline := w.probe()
	switch {
	case nowOnline && !w.online:
		w.logger.Info("Network connectivity regained, refetching portfolio")
		w.online = true
		w.onOnline(ctx)
	case !nowOnline && w.online:
		w.logger.Warn("Network connectivity lost")
		w.online = false
	}
}

func (w *Watcher) probeHTTP() bool {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(w.probeURL)
	req.Header.SetMethod(fasthttp.MethodHead)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	err := fasthttp.DoTimeout(req, resp, 5*time.Second)
	return err == nil
}
