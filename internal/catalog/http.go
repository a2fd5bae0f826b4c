package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hoangnmai/orderly/internal/platform/request"
	"github.com/hoangnmai/orderly/internal/platform/respond"
	"github.com/hoangnmai/orderly/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listProducts)
	router.Get("/{id}", handler.getProduct)
}

func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.service.ListProducts(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, products)
}

func (handler *Handler) getProduct(writer http.ResponseWriter, request *http.Request) {
	idStr := requestutil.Param(request, "id")
	productID, err := strconv.Atoi(idStr)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("id", "Product id must be an integer"))
		return
	}

	product, err := handler.service.GetProduct(request.Context(), productID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}
