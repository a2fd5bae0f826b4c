// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package orders

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hoangnmai/orderly/internal/platform/middleware"
	requestutil "github.com/hoangnmai/orderly/internal/platform/request"
	"github.com/hoangnmai/orderly/internal/platform/respond"
	"github.com/hoangnmai/orderly/internal/platform/validate"
	"github.com/hoangnmai/orderly/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the authenticated order endpoints.
type Handler struct {
	orderService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{orderService: service}
}

// Routes returns a [chi.Router] for the /orders resource.
//
// # Endpoints
//   - POST / : Place an order.
//   - GET  / : List the caller's orders, newest-first, paginated.
//
// Every route requires a live session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.placeOrder)
	router.Get("/", handler.listOrders)

	return router
}

// # Request Payloads

// placeOrderRequest carries only product references and quantities. There is
// no total field; anything extra a client sends is dropped by the decoder.
type placeOrderRequest struct {
	Items []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

/*
PlaceOrder creates a new order for the caller.

POST /api/v1/orders

Request:
  - Body: placeOrderRequest (Items)

Response:
  - 201: Order: The persisted order with server-computed total
  - 400: ErrInvalidJSON: Empty items, bad quantity, or unknown product
  - 401: ErrUnauthorized: No live session
*/
func (handler *Handler) placeOrder(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input placeOrderRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.NotEmptySlice(FieldItems, len(input.Items))
	for _, item := range input.Items {
		validator.PositiveInt(FieldQuantity, item.Quantity)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	items := make([]ItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, ItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := handler.orderService.PlaceOrder(request.Context(), userID, items)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, order)
}

/*
ListOrders returns the caller's purchase history.

GET /api/v1/orders?page=&limit=

Response:
  - 200: []Order: Newest-first page with pagination metadata
  - 401: ErrUnauthorized: No live session
*/
func (handler *Handler) listOrders(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	listed, meta, err := handler.orderService.ListOrders(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, listed, meta)
}
