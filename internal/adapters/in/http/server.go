// Package http exposes the fulfillment core over a thin HTTP edge.
// It coordinates between HTTP handlers and application use cases; all
// business rules live behind the command and query handlers.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server handles HTTP requests for the fulfillment API.
type Server struct {
	planFulfillmentHandler     commands.PlanFulfillmentCommandHandler
	getStockLevelsHandler      queries.GetStockLevelsQueryHandler
	getIncompleteOrdersHandler queries.GetIncompleteOrdersQueryHandler
	defaultStrategy            services.StrategyName
}

// NewServer creates a new HTTP server with the required command and query
// handlers. The default strategy backs plan requests that omit one.
func NewServer(
	planFulfillmentHandler commands.PlanFulfillmentCommandHandler,
	getStockLevelsHandler queries.GetStockLevelsQueryHandler,
	getIncompleteOrdersHandler queries.GetIncompleteOrdersQueryHandler,
	defaultStrategy services.StrategyName,
) *Server {
	return &Server{
		planFulfillmentHandler:     planFulfillmentHandler,
		getStockLevelsHandler:      getStockLevelsHandler,
		getIncompleteOrdersHandler: getIncompleteOrdersHandler,
		defaultStrategy:            defaultStrategy,
	}
}

// RegisterRoutes mounts the API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/api/v1/stock/:variantId", s.GetStockLevels)
	e.GET("/api/v1/orders/active", s.GetActiveOrders)
	e.POST("/api/v1/orders/:orderId/fulfillment/plan", s.PlanFulfillment)
}

// Error is the JSON error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// StockLevel is one location's ledger in the API response.
type StockLevel struct {
	LocationID       string `json:"location_id"`
	LocationName     string `json:"location_name"`
	OnHand           int    `json:"on_hand"`
	Reserved         int    `json:"reserved"`
	Available        int    `json:"available"`
	Backorderable    bool   `json:"backorderable"`
	CurrentBackorder int    `json:"current_backorder"`
}

// GetStockLevels handles GET /api/v1/stock/:variantId - retrieves a variant's
// per-location stock levels.
func (s *Server) GetStockLevels(ctx echo.Context) error {
	variantID, err := kernel.UUIDFromString(ctx.Param("variantId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid variant id",
		})
	}

	query, err := queries.NewGetStockLevelsQuery(variantID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid variant id: " + err.Error(),
		})
	}

	levels, err := s.getStockLevelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve stock levels",
		})
	}

	response := make([]StockLevel, len(levels))
	for i, level := range levels {
		response[i] = StockLevel{
			LocationID:       level.LocationID.String(),
			LocationName:     level.LocationName,
			OnHand:           level.OnHand,
			Reserved:         level.Reserved,
			Available:        level.Available,
			Backorderable:    level.Backorderable,
			CurrentBackorder: level.CurrentBackorder,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ActiveOrder is one in-flight order in the API response.
type ActiveOrder struct {
	ID            string `json:"id"`
	StoreID       string `json:"store_id"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	LineItemCount int    `json:"line_item_count"`
	UnitCount     int    `json:"unit_count"`
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves every order
// still moving through checkout and fulfillment.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetIncompleteOrdersQuery()

	orders, err := s.getIncompleteOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrder{
			ID:            o.ID.String(),
			StoreID:       o.StoreID.String(),
			Currency:      o.Currency,
			Status:        o.Status,
			LineItemCount: o.LineItemCount,
			UnitCount:     o.UnitCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PlanFulfillmentRequest is the body of the plan endpoint.
type PlanFulfillmentRequest struct {
	Strategy string `json:"strategy"`
}

// PlannedItem is one allocated line in the plan response.
type PlannedItem struct {
	LineItemID  string `json:"line_item_id"`
	VariantID   string `json:"variant_id"`
	Quantity    int    `json:"quantity"`
	Backordered bool   `json:"backordered"`
}

// PlannedShipment is one planned shipment in the plan response.
type PlannedShipment struct {
	LocationID string        `json:"location_id"`
	Items      []PlannedItem `json:"items"`
}

// PlanFulfillmentResponse reports what the planner decided.
type PlanFulfillmentResponse struct {
	Shipments     []PlannedShipment `json:"shipments"`
	Unfulfillable []PlannedItem     `json:"unfulfillable"`
}

// PlanFulfillment handles POST /api/v1/orders/:orderId/fulfillment/plan -
// plans and applies fulfillment for the order's unallocated line items.
func (s *Server) PlanFulfillment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var req PlanFulfillmentRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	strategy := services.StrategyName(req.Strategy)
	if strategy == "" {
		strategy = s.defaultStrategy
	}

	cmd, err := commands.NewPlanFulfillmentCommand(orderID, strategy)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid plan request: " + err.Error(),
		})
	}

	plan, err := s.planFulfillmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownStrategy):
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Unknown fulfillment strategy: " + req.Strategy,
			})
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		default:
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Failed to plan fulfillment",
			})
		}
	}

	return ctx.JSON(http.StatusOK, planToResponse(plan))
}

func planToResponse(plan services.FulfillmentPlan) PlanFulfillmentResponse {
	response := PlanFulfillmentResponse{
		Shipments:     make([]PlannedShipment, 0, len(plan.Shipments)),
		Unfulfillable: make([]PlannedItem, 0, len(plan.Unfulfillable)),
	}

	for _, shipment := range plan.Shipments {
		items := make([]PlannedItem, 0, len(shipment.Items))
		for _, item := range shipment.Items {
			items = append(items, itemToResponse(item))
		}
		response.Shipments = append(response.Shipments, PlannedShipment{
			LocationID: shipment.LocationID.String(),
			Items:      items,
		})
	}

	for _, item := range plan.Unfulfillable {
		response.Unfulfillable = append(response.Unfulfillable, itemToResponse(item))
	}

	return response
}

func itemToResponse(item services.PlannedItem) PlannedItem {
	return PlannedItem{
		LineItemID:  item.LineItemID.String(),
		VariantID:   item.VariantID.String(),
		Quantity:    item.Quantity,
		Backordered: item.Backordered,
	}
}
