package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for the stock tracker
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListItems godoc
// @Summary List items
// @Description List the session's items in insertion order with total quantity and item count
// @Tags Inventory
// @Produce json
// @Param X-Session-ID header string false "Session ID (issued when absent)"
// @Success 200 {object} object{success=bool,message=string,data=object{items=array,total_quantity=int,item_count=int}}
// @Router /api/inventory [get]
func (h *InventoryHandler) ListItemsDoc() {}

// AddItem godoc
// @Summary Add item
// @Description Add an item; the quantity may be a JSON number or a numeric string
// @Tags Inventory
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID (issued when absent)"
// @Param request body object{name=string,quantity=int} true "Item data"
// @Success 201 {object} object{success=bool,message=string,data=object{item=object,total_quantity=int,item_count=int}}
// @Failure 400 {object} object{success=bool,error=string,kind=string}
// @Router /api/inventory [post]
func (h *InventoryHandler) AddItemDoc() {}

// GetStats godoc
// @Summary Inventory statistics
// @Description Item count, total quantity and the id the next added item will receive
// @Tags Inventory
// @Produce json
// @Param X-Session-ID header string false "Session ID (issued when absent)"
// @Success 200 {object} object{success=bool,data=object{item_count=int,total_quantity=int,next_id=int,empty=bool}}
// @Router /api/inventory/stats [get]
func (h *InventoryHandler) GetStatsDoc() {}

// GetItem godoc
// @Summary Get item
// @Tags Inventory
// @Produce json
// @Param X-Session-ID header string false "Session ID (issued when absent)"
// @Param id path int true "Item ID"
// @Success 200 {object} object{success=bool,data=object{id=int,name=string,quantity=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{id} [get]
func (h *InventoryHandler) GetItemDoc() {}

// DeleteItem godoc
// @Summary Delete item
// @Tags Inventory
// @Produce json
// @Param X-Session-ID header string false "Session ID (issued when absent)"
// @Param id path int true "Item ID"
// @Success 200 {object} object{success=bool,message=string,data=object{total_quantity=int,item_count=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{id} [delete]
func (h *InventoryHandler) DeleteItemDoc() {}

// EndSession godoc
// @Summary End session
// @Description Discard the session's inventory; the next request with the same id starts from the seed
// @Tags Session
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/session [delete]
func (h *InventoryHandler) EndSessionDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object{active_sessions=int}}
// @Router /health [get]
func (h *InventoryHandler) HealthCheckDoc() {}
