package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/service"
)

// AdminHandler serves the drone administration endpoints
type AdminHandler struct {
	svc service.DroneService
}

func NewAdminHandler(svc service.DroneService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type productsCreatedRequest struct {
	ProductIDs     []string            `json:"product_ids"`
	AdditionalData *service.DroneInput `json:"additional_data"`
}

type productsCreatedResponse struct {
	Drones []domain.Drone `json:"drones"`
}

// CreateDrone handles POST /admin/products/{productId}/drone
func (h *AdminHandler) CreateDrone(w http.ResponseWriter, r *http.Request) {
	var in service.DroneInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	drone, err := h.svc.CreateDroneFromProduct(r.Context(), mux.Vars(r)["productId"], &in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sub, _ := AdminSubject(r.Context())
	logger.Info("Drone created", "droneID", drone.ID, "productID", drone.ProductID, "admin", sub)
	writeJSON(w, http.StatusCreated, drone)
}

// DeleteDrone handles DELETE /admin/drones/{droneId}
func (h *AdminHandler) DeleteDrone(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["droneId"]
	if err := h.svc.DeleteDrone(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	sub, _ := AdminSubject(r.Context())
	logger.Info("Drone deleted", "droneID", id, "admin", sub)
	w.WriteHeader(http.StatusNoContent)
}

// ProductsCreated handles POST /admin/hooks/products-created
func (h *AdminHandler) ProductsCreated(w http.ResponseWriter, r *http.Request) {
	var req productsCreatedRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.ProductIDs) == 0 {
		writeError(w, r, badRequest("product_ids is required"))
		return
	}

	drones, err := h.svc.HandleProductsCreated(r.Context(), req.ProductIDs, req.AdditionalData)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if drones == nil {
		drones = []domain.Drone{}
	}
	writeJSON(w, http.StatusOK, productsCreatedResponse{Drones: drones})
}
