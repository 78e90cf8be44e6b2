package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/bookmart/internal/domain"
)

type CreateOrderInput struct {
	Body struct {
		BookID string `json:"book_id" minLength:"1" doc:"Published book to buy"`
	}
}

type OrderIDInput struct {
	ID string `path:"id" doc:"Order ID"`
}

type ShipOrderInput struct {
	ID   string `path:"id" doc:"Order ID"`
	Body struct {
		TrackingNumber string `json:"tracking_number" maxLength:"100" doc:"Carrier tracking number"`
		TrackingURL    string `json:"tracking_url,omitempty" format:"uri" doc:"Carrier tracking page"`
	}
}

type OrderOutput struct {
	Body OrderResponse
}

type OrderListOutput struct {
	Body []OrderResponse
}

type SummaryOutput struct {
	Body SummaryResponse
}

func registerOrders(api huma.API, d Deps) {
	buyerOnly, buyerSecurity := guard(api, d, domain.RoleBuyer)
	sellerOnly, sellerSecurity := guard(api, d, domain.RoleSeller)
	authed, authedSecurity := guard(api, d, "")

	huma.Register(api, huma.Operation{
		OperationID:   "create-order",
		Method:        http.MethodPost,
		Path:          "/api/v1/orders",
		Summary:       "Place an order",
		Tags:          []string{"Orders"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   buyerOnly,
		Security:      buyerSecurity,
	}, func(ctx context.Context, input *CreateOrderInput) (*OrderOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		order, err := d.Orders.Create(ctx, input.Body.BookID, identity.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &OrderOutput{Body: toOrderResponse(order)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-order",
		Method:      http.MethodGet,
		Path:        "/api/v1/orders/{id}",
		Summary:     "Get an order",
		Description: "Visible to the order's buyer and seller only.",
		Tags:        []string{"Orders"},
		Middlewares: authed,
		Security:    authedSecurity,
	}, func(ctx context.Context, input *OrderIDInput) (*OrderOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		order, err := d.Orders.Get(ctx, input.ID, identity.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &OrderOutput{Body: toOrderResponse(order)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "accept-order",
		Method:      http.MethodPost,
		Path:        "/api/v1/orders/{id}/accept",
		Summary:     "Accept a pending order",
		Tags:        []string{"Orders"},
		Middlewares: sellerOnly,
		Security:    sellerSecurity,
	}, func(ctx context.Context, input *OrderIDInput) (*OrderOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		order, err := d.Orders.Accept(ctx, input.ID, identity.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &OrderOutput{Body: toOrderResponse(order)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "ship-order",
		Method:      http.MethodPost,
		Path:        "/api/v1/orders/{id}/ship",
		Summary:     "Ship an accepted order",
		Tags:        []string{"Orders"},
		Middlewares: sellerOnly,
		Security:    sellerSecurity,
	}, func(ctx context.Context, input *ShipOrderInput) (*OrderOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		order, err := d.Orders.Ship(ctx, input.ID, identity.ID, input.Body.TrackingNumber, input.Body.TrackingURL)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &OrderOutput{Body: toOrderResponse(order)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "deliver-order",
		Method:      http.MethodPost,
		Path:        "/api/v1/orders/{id}/deliver",
		Summary:     "Mark a shipped order delivered",
		Description: "Either the buyer or the seller may confirm delivery.",
		Tags:        []string{"Orders"},
		Middlewares: authed,
		Security:    authedSecurity,
	}, func(ctx context.Context, input *OrderIDInput) (*OrderOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		order, err := d.Orders.Deliver(ctx, input.ID, identity.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &OrderOutput{Body: toOrderResponse(order)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "seller-orders",
		Method:      http.MethodGet,
		Path:        "/api/v1/seller/orders",
		Summary:     "List orders on the caller's books",
		Tags:        []string{"Seller"},
		Middlewares: sellerOnly,
		Security:    sellerSecurity,
	}, func(ctx context.Context, _ *struct{}) (*OrderListOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		orders, err := d.Orders.ListForSeller(ctx, identity.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &OrderListOutput{Body: toOrderResponses(orders)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "seller-summary",
		Method:      http.MethodGet,
		Path:        "/api/v1/seller/summary",
		Summary:     "Get the seller dashboard summary",
		Tags:        []string{"Seller"},
		Middlewares: sellerOnly,
		Security:    sellerSecurity,
	}, func(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		summary, err := d.Orders.SellerSummary(ctx, identity.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &SummaryOutput{Body: toSummaryResponse(summary)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "buyer-orders",
		Method:      http.MethodGet,
		Path:        "/api/v1/buyer/orders",
		Summary:     "List the caller's purchases",
		Tags:        []string{"Buyer"},
		Middlewares: buyerOnly,
		Security:    buyerSecurity,
	}, func(ctx context.Context, _ *struct{}) (*OrderListOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		orders, err := d.Orders.ListForBuyer(ctx, identity.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &OrderListOutput{Body: toOrderResponses(orders)}, nil
	})
}
