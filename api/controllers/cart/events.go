package cart

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Mostafa3001hamdy/ELEX-Main/api/responses"
	"github.com/Mostafa3001hamdy/ELEX-Main/internal/cart"
	pkgerrors "github.com/Mostafa3001hamdy/ELEX-Main/pkg/errors"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/logger"
)

const cartEventName = "cart"

// CartEvents streams the cart as server-sent events: the current state first, then one
// event per change. Bursts collapse to the latest snapshot for slow readers.
func CartEvents(keepAlive time.Duration, logg *logger.Logger) http.HandlerFunc {
	return withStore(logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		updates := make(chan cart.Snapshot, 1)
		unsubscribe := store.Subscribe(func(snap cart.Snapshot) {
			select {
			case updates <- snap:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- snap:
			default:
			}
		})
		defer unsubscribe()

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		if err := writeEvent(w, store.Snapshot()); err != nil {
			return
		}
		flusher.Flush()

		var tick <-chan time.Time
		if keepAlive > 0 {
			ticker := time.NewTicker(keepAlive)
			defer ticker.Stop()
			tick = ticker.C
		}

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-updates:
				if err := writeEvent(w, snap); err != nil {
					if logg != nil {
						logg.Debug(ctx, "cart.events.write_failed")
					}
					return
				}
				flusher.Flush()
			case <-tick:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	})
}

func writeEvent(w http.ResponseWriter, snap cart.Snapshot) error {
	payload, err := json.Marshal(newCart(snap))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", cartEventName, payload)
	return err
}
