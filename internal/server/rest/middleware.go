package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/server/metrics"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// echoRequestID returns the request id assigned by middleware.RequestID to
// the caller.
func echoRequestID(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(common.RequestIDHeaderName, id)
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

// observe records one sample per request, labelled by route pattern so that
// ids in paths do not explode cardinality.
func observe(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func(start time.Time) {
				pattern := "unmatched"
				if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
					pattern = rctx.RoutePattern()
				}
				code := ww.Status()
				if code == 0 {
					code = http.StatusOK
				}
				m.ObserveRequest("http", r.Method+" "+pattern, strconv.Itoa(code), time.Since(start))
			}(time.Now())

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
