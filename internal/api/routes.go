package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/iscs-gateway/internal/domain"
)

// Route patterns served by the gateway. Ids are unsigned decimal integers.
const (
	UserLookupPattern    = "/user/{" + idParam + ":[0-9]+}"
	ProductLookupPattern = "/product/{" + idParam + ":[0-9]+}"
	UserPattern          = "/user"
	ProductPattern       = "/product"
	OrderPattern         = "/order"
)

// RegisterRoutes installs the gateway routes on r. Unknown paths and known
// paths with the wrong method both answer 404.
func (h *GatewayHandler) RegisterRoutes(r chi.Router) {
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	r.Get(UserLookupPattern, h.GetEntity(domain.ServiceUser))
	r.Get(ProductLookupPattern, h.GetEntity(domain.ServiceProduct))

	r.Post(UserPattern, h.MutateEntity(domain.ServiceUser))
	r.Post(ProductPattern, h.MutateEntity(domain.ServiceProduct))
	r.Post(OrderPattern, h.PlaceOrder)
}

// NewRouter builds the gateway router with mws installed ahead of every
// route, including the not-found handler.
func NewRouter(h *GatewayHandler, mws ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(mws...)
	h.RegisterRoutes(r)
	return r
}
