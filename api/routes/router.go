package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mostafa3001hamdy/ELEX-Main/api/controllers"
	cartcontrollers "github.com/Mostafa3001hamdy/ELEX-Main/api/controllers/cart"
	"github.com/Mostafa3001hamdy/ELEX-Main/api/middleware"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/config"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/logger"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/storage"
)

const eventsKeepAlive = 25 * time.Second

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	carts middleware.CartResolver,
	pingers map[string]storage.Pinger,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(
			middleware.Locale(cfg.Cart.Locale),
			middleware.CartSession(cfg.Session, carts, logg),
		)

		r.Get("/", cartcontrollers.CartFetch(logg))
		r.Delete("/", cartcontrollers.CartClear(logg))
		r.Post("/items", cartcontrollers.CartAddItem(logg))
		r.Post("/items/{id}/decrease", cartcontrollers.CartDecreaseItem(logg))
		r.Put("/items/{id}/quantity", cartcontrollers.CartSetQuantity(logg))
		r.Delete("/items/{id}", cartcontrollers.CartRemoveItem(logg))
		r.Post("/open", cartcontrollers.CartOpen(logg))
		r.Post("/close", cartcontrollers.CartClose(logg))
		r.Get("/checkout", cartcontrollers.CartCheckout(cfg.App.PublicOrigin, logg))
		r.Get("/events", cartcontrollers.CartEvents(eventsKeepAlive, logg))
	})

	return r
}
