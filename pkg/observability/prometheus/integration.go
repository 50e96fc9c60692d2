package prometheus

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Handler returns a fasthttp handler serving the pool metrics in
// Prometheus text exposition format.
func (m *PoolMetrics) Handler() fasthttp.RequestHandler {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return fasthttpadaptor.NewFastHTTPHandler(h)
}

// Serve starts a fasthttp server exposing the metrics at /metrics.
// It blocks until the listener fails; run it in its own goroutine.
func (m *PoolMetrics) Serve(addr string) error {
	handler := m.Handler()
	return fasthttp.ListenAndServe(addr, func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/metrics":
			handler(ctx)
		default:
			ctx.SetStatusCode(fasthttp.StatusNotFound)
		}
	})
}
