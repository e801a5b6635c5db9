package graph

import (
	"time"

	"graphql-crm/internal/repository"
	"graphql-crm/internal/service"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// Resolver is the root resolver for the CRM schema. It holds the service
// the resolvers delegate to.
type Resolver struct {
	svc    service.CRMService
	logger *zap.Logger
}

// NewResolver creates a new Resolver
func NewResolver(svc service.CRMService, logger *zap.Logger) *Resolver {
	return &Resolver{svc: svc, logger: logger}
}

// NewSchema assembles the executable schema: object types, the query root
// with hello and the three filtered listings, and the mutation root.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.queryType(),
		Mutation: r.mutationType(),
	})
}

func (r *Resolver) queryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "Hello, GraphQL!", nil
				},
			},
			"allCustomers": &graphql.Field{
				Type: graphql.NewList(customerType),
				Args: graphql.FieldConfigArgument{
					"filter":  &graphql.ArgumentConfig{Type: customerFilterInputType},
					"orderBy": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: r.resolveAllCustomers,
			},
			"allProducts": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"filter":  &graphql.ArgumentConfig{Type: productFilterInputType},
					"orderBy": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: r.resolveAllProducts,
			},
			"allOrders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"filter":  &graphql.ArgumentConfig{Type: orderFilterInputType},
					"orderBy": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: r.resolveAllOrders,
			},
		},
	})
}

func (r *Resolver) mutationType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: createCustomerPayloadType,
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phone": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.resolveCreateCustomer,
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: bulkCreateCustomersPayloadType,
				Args: graphql.FieldConfigArgument{
					"customers": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerInputType))),
					},
				},
				Resolve: r.resolveBulkCreateCustomers,
			},
			"createProduct": &graphql.Field{
				Type: createProductPayloadType,
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"price": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"stock": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: r.resolveCreateProduct,
			},
			"createOrder": &graphql.Field{
				Type: createOrderPayloadType,
				Args: graphql.FieldConfigArgument{
					"customerId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"productIds": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID))),
					},
					"orderDate": &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: r.resolveCreateOrder,
			},
			"updateLowStockProducts": &graphql.Field{
				Type:    updateLowStockPayloadType,
				Resolve: r.resolveUpdateLowStockProducts,
			},
		},
	})
}

func (r *Resolver) resolveAllCustomers(p graphql.ResolveParams) (interface{}, error) {
	filter := repository.CustomerFilter{}
	if m := mapArg(p.Args, "filter"); m != nil {
		filter.NameContains = stringArg(m, "nameContains")
		filter.EmailContains = stringArg(m, "emailContains")
		filter.Email = stringArg(m, "email")
	}

	customers, err := r.svc.ListCustomers(p.Context, filter, stringListArg(p.Args, "orderBy"))
	if err != nil {
		r.logger.Error("Failed to list customers", zap.Error(err))
		return nil, err
	}
	return customers, nil
}

func (r *Resolver) resolveAllProducts(p graphql.ResolveParams) (interface{}, error) {
	filter := repository.ProductFilter{}
	if m := mapArg(p.Args, "filter"); m != nil {
		filter.NameContains = stringArg(m, "nameContains")
		filter.PriceMin = floatArg(m, "priceMin")
		filter.PriceMax = floatArg(m, "priceMax")
		filter.StockMin = intArg(m, "stockMin")
		filter.StockMax = intArg(m, "stockMax")
	}

	products, err := r.svc.ListProducts(p.Context, filter, stringListArg(p.Args, "orderBy"))
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	return products, nil
}

func (r *Resolver) resolveAllOrders(p graphql.ResolveParams) (interface{}, error) {
	filter := repository.OrderFilter{}
	if m := mapArg(p.Args, "filter"); m != nil {
		id, err := uuidArg(m, "customerId")
		if err != nil {
			return nil, err
		}
		filter.CustomerID = id

		productID, err := uuidArg(m, "productId")
		if err != nil {
			return nil, err
		}
		filter.ProductID = productID

		filter.CustomerEmail = stringArg(m, "customerEmail")
		filter.OrderDateFrom = timeArg(m, "orderDateGte")
		filter.OrderDateTo = timeArg(m, "orderDateLte")
	}

	orders, err := r.svc.ListOrders(p.Context, filter, stringListArg(p.Args, "orderBy"))
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (r *Resolver) resolveCreateCustomer(p graphql.ResolveParams) (interface{}, error) {
	name, _ := p.Args["name"].(string)
	email, _ := p.Args["email"].(string)
	phone, _ := p.Args["phone"].(string)

	result, err := r.svc.CreateCustomer(p.Context, name, email, phone)
	if err != nil {
		r.logger.Error("Failed to create customer", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (r *Resolver) resolveBulkCreateCustomers(p graphql.ResolveParams) (interface{}, error) {
	raw, _ := p.Args["customers"].([]interface{})

	inputs := make([]service.CustomerInput, 0, len(raw))
	for _, item := range raw {
		m, _ := item.(map[string]interface{})
		inputs = append(inputs, service.CustomerInput{
			Name:  stringArg(m, "name"),
			Email: stringArg(m, "email"),
			Phone: stringArg(m, "phone"),
		})
	}

	result, err := r.svc.BulkCreateCustomers(p.Context, inputs)
	if err != nil {
		r.logger.Error("Failed to bulk create customers", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (r *Resolver) resolveCreateProduct(p graphql.ResolveParams) (interface{}, error) {
	name, _ := p.Args["name"].(string)
	price, _ := p.Args["price"].(float64)
	stock, _ := p.Args["stock"].(int)

	result, err := r.svc.CreateProduct(p.Context, name, price, stock)
	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (r *Resolver) resolveCreateOrder(p graphql.ResolveParams) (interface{}, error) {
	rawCustomerID, _ := p.Args["customerId"].(string)
	customerID, err := uuid.Parse(rawCustomerID)
	if err != nil {
		// An unparseable ID cannot resolve to a customer.
		return &service.OrderResult{Success: false, Message: service.MsgInvalidCustomer}, nil
	}

	rawProductIDs, _ := p.Args["productIds"].([]interface{})
	productIDs := make([]uuid.UUID, 0, len(rawProductIDs))
	for _, raw := range rawProductIDs {
		s, _ := raw.(string)
		id, err := uuid.Parse(s)
		if err != nil {
			return &service.OrderResult{Success: false, Message: service.MsgInvalidProducts}, nil
		}
		productIDs = append(productIDs, id)
	}

	var orderDate *time.Time
	if t, ok := p.Args["orderDate"].(time.Time); ok {
		orderDate = &t
	}

	result, err := r.svc.CreateOrder(p.Context, customerID, productIDs, orderDate)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (r *Resolver) resolveUpdateLowStockProducts(p graphql.ResolveParams) (interface{}, error) {
	result, err := r.svc.UpdateLowStockProducts(p.Context)
	if err != nil {
		r.logger.Error("Failed to update low stock products", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// Argument extraction helpers. graphql-go delivers coerced arguments as
// map[string]interface{} with Go-native values.

func mapArg(args map[string]interface{}, key string) map[string]interface{} {
	m, _ := args[key].(map[string]interface{})
	return m
}

func stringArg(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringListArg(args map[string]interface{}, key string) []string {
	raw, _ := args[key].([]interface{})
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func floatArg(m map[string]interface{}, key string) *float64 {
	f, ok := m[key].(float64)
	if !ok {
		return nil
	}
	return &f
}

func intArg(m map[string]interface{}, key string) *int {
	i, ok := m[key].(int)
	if !ok {
		return nil
	}
	return &i
}

func timeArg(m map[string]interface{}, key string) *time.Time {
	t, ok := m[key].(time.Time)
	if !ok {
		return nil
	}
	return &t
}

func uuidArg(m map[string]interface{}, key string) (*uuid.UUID, error) {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
