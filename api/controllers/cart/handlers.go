package cart

import (
	"net/http"
	"strings"

	cartdto "github.com/Mostafa3001hamdy/ELEX-Main/api/controllers/cart/dto"
	"github.com/Mostafa3001hamdy/ELEX-Main/api/middleware"
	"github.com/Mostafa3001hamdy/ELEX-Main/api/responses"
	"github.com/Mostafa3001hamdy/ELEX-Main/api/validators"
	"github.com/Mostafa3001hamdy/ELEX-Main/internal/cart"
	pkgerrors "github.com/Mostafa3001hamdy/ELEX-Main/pkg/errors"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/logger"
)

// CartFetch returns the session cart.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return withStore(logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		responses.WriteSuccess(w, newCart(store.Snapshot()))
	})
}

// CartAddItem adds one unit of the posted product.
func CartAddItem(logg *logger.Logger) http.HandlerFunc {
	return withStore(logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := toProductStub(payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.AddItem(r.Context(), product)
		responses.WriteSuccess(w, newCart(store.Snapshot()))
	})
}

// CartDecreaseItem removes one unit of a line.
func CartDecreaseItem(logg *logger.Logger) http.HandlerFunc {
	return withItem(logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store, id int64) {
		store.DecreaseItem(r.Context(), id)
		responses.WriteSuccess(w, newCart(store.Snapshot()))
	})
}

// CartSetQuantity sets a line's quantity, clamped to the allowed range.
func CartSetQuantity(logg *logger.Logger) http.HandlerFunc {
	return withItem(logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store, id int64) {
		var payload cartdto.SetQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.SetQuantity(r.Context(), id, cart.ParseQuantity(payload.Quantity))
		responses.WriteSuccess(w, newCart(store.Snapshot()))
	})
}

func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return withItem(logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store, id int64) {
		store.RemoveItem(r.Context(), id)
		responses.WriteSuccess(w, newCart(store.Snapshot()))
	})
}

func CartClear(logg *logger.Logger) http.HandlerFunc {
	return withStore(logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		store.ClearCart(r.Context())
		responses.WriteSuccess(w, newCart(store.Snapshot()))
	})
}

func CartOpen(logg *logger.Logger) http.HandlerFunc {
	return withStore(logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		store.OpenCart()
		responses.WriteSuccess(w, newCart(store.Snapshot()))
	})
}

func CartClose(logg *logger.Logger) http.HandlerFunc {
	return withStore(logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		store.CloseCart()
		responses.WriteSuccess(w, newCart(store.Snapshot()))
	})
}

// CartCheckout builds the WhatsApp order link. With ?redirect=true it answers 302 to it.
// The quoted origin is publicOrigin when set, else the request Origin header.
func CartCheckout(publicOrigin string, logg *logger.Logger) http.HandlerFunc {
	return withStore(logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		locale := middleware.LocaleFromContext(r.Context())
		if locale == "" {
			locale = cart.DefaultLocale
		}
		link := store.BuildWhatsappLinkWith(cart.MessageOptions{
			Locale: locale,
			Origin: requestOrigin(publicOrigin, r),
		})

		if validators.ParseQueryBool(r, "redirect") {
			http.Redirect(w, r, link, http.StatusFound)
			return
		}
		responses.WriteSuccess(w, cartdto.CheckoutLink{URL: link, Locale: locale})
	})
}

func requestOrigin(publicOrigin string, r *http.Request) string {
	if origin := strings.TrimSpace(publicOrigin); origin != "" {
		return origin
	}
	return strings.TrimSpace(r.Header.Get("Origin"))
}

func withStore(logg *logger.Logger, fn func(http.ResponseWriter, *http.Request, *cart.Store)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := middleware.CartStoreFromContext(r.Context())
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing"))
			return
		}
		fn(w, r, store)
	}
}

func withItem(logg *logger.Logger, fn func(http.ResponseWriter, *http.Request, *cart.Store, int64)) http.HandlerFunc {
	return withStore(logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		id, err := validators.ParsePathInt64(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		fn(w, r, store, id)
	})
}
