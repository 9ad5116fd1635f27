package metrics

import (
	"net/http"
	"time"

	"video-annotator/internal/logging"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartServer exposes /metrics on its own port so the scrape surface is
// never mixed into the application listener. It returns the server so the
// caller can shut it down.
func StartServer(port string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("metrics server error: %v", err)
		}
	}()

	return srv
}
