package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"dronehub-backend/internal/catalog"
	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/i18n"
	"dronehub-backend/internal/offer"
	"dronehub-backend/internal/service"
)

// StorefrontHandler serves the public storefront endpoints
type StorefrontHandler struct {
	svc service.StorefrontService
}

func NewStorefrontHandler(svc service.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{svc: svc}
}

type copyResponse struct {
	Locale    domain.Locale         `json:"locale"`
	Copy      map[string]string     `json:"copy"`
	Languages []i18n.LanguageOption `json:"languages"`
}

type addLineItemResponse struct {
	Decision *offer.Decision `json:"decision"`
	Cart     json.RawMessage `json:"cart"`
}

type cartTotalsRequest struct {
	CurrencyCode string            `json:"currency_code"`
	Lines        []domain.CartLine `json:"lines"`
}

// checkAction rejects requests that are neither a purchase nor a rental.
func checkAction(kind offer.ActionKind) error {
	switch kind {
	case offer.ActionBuy, offer.ActionRent:
		return nil
	case "":
		return badRequest("action is required")
	default:
		return badRequest("unknown action %q", kind)
	}
}

// GetCopy handles GET /store/{countryCode}/copy
func (h *StorefrontHandler) GetCopy(w http.ResponseWriter, r *http.Request) {
	locale, strs, languages := h.svc.Copy(mux.Vars(r)["countryCode"])
	writeJSON(w, http.StatusOK, copyResponse{Locale: locale, Copy: strs, Languages: languages})
}

// ListProducts handles GET /store/{countryCode}/products
func (h *StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort, err := catalog.ParseSortOption(q.Get("sort"))
	if err != nil {
		writeError(w, r, badRequest("%v", err))
		return
	}
	page := 1
	if raw := q.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, badRequest("invalid page %q", raw))
			return
		}
	}

	result, err := h.svc.ListProducts(r.Context(), mux.Vars(r)["countryCode"], service.ListParams{
		Sort:       sort,
		Page:       page,
		CategoryID: q.Get("category_id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetProduct handles GET /store/{countryCode}/products/{handle}
func (h *StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	detail, err := h.svc.GetProduct(r.Context(), vars["countryCode"], vars["handle"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// EvaluateOffer handles POST /store/{countryCode}/products/{handle}/evaluate
func (h *StorefrontHandler) EvaluateOffer(w http.ResponseWriter, r *http.Request) {
	var in service.OfferInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	if err := checkAction(in.Action); err != nil {
		writeError(w, r, err)
		return
	}

	vars := mux.Vars(r)
	decision, err := h.svc.EvaluateOffer(r.Context(), vars["countryCode"], vars["handle"], in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

type addLineItemRequest struct {
	Handle string `json:"handle"`
	service.OfferInput
}

// AddLineItem handles POST /store/{countryCode}/carts/{cartId}/line-items
func (h *StorefrontHandler) AddLineItem(w http.ResponseWriter, r *http.Request) {
	var req addLineItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Handle) == "" {
		writeError(w, r, badRequest("handle is required"))
		return
	}
	if err := checkAction(req.Action); err != nil {
		writeError(w, r, err)
		return
	}

	vars := mux.Vars(r)
	decision, cart, err := h.svc.AddToCart(r.Context(), vars["countryCode"], vars["cartId"], req.Handle, req.OfferInput)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, addLineItemResponse{Decision: decision, Cart: cart})
}

// CartTotals handles POST /store/{countryCode}/carts/totals
func (h *StorefrontHandler) CartTotals(w http.ResponseWriter, r *http.Request) {
	var req cartTotalsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.CurrencyCode == "" {
		writeError(w, r, badRequest("currency_code is required"))
		return
	}
	code, err := domain.ParseCurrencyCode(req.CurrencyCode)
	if err != nil {
		writeError(w, r, badRequest("%v", err))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.CartTotals(req.Lines, code))
}
