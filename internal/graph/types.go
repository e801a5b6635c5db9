package graph

import (
	"github.com/graphql-go/graphql"
)

// Object, input, and payload types for the CRM schema. Field resolution
// relies on graphql-go's default resolver matching the domain struct fields
// case-insensitively.

var customerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Customer",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.ID},
		"name":      &graphql.Field{Type: graphql.String},
		"email":     &graphql.Field{Type: graphql.String},
		"phone":     &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.ID},
		"name":      &graphql.Field{Type: graphql.String},
		"price":     &graphql.Field{Type: graphql.Float},
		"stock":     &graphql.Field{Type: graphql.Int},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.ID},
		"customer":    &graphql.Field{Type: customerType},
		"products":    &graphql.Field{Type: graphql.NewList(productType)},
		"totalAmount": &graphql.Field{Type: graphql.Float},
		"orderDate":   &graphql.Field{Type: graphql.DateTime},
	},
})

var customerInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CustomerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var customerFilterInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CustomerFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"nameContains":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"emailContains": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email":         &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var productFilterInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"nameContains": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"priceMin":     &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"priceMax":     &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"stockMin":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"stockMax":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var orderFilterInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"customerId":    &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"customerEmail": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"productId":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"orderDateGte":  &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"orderDateLte":  &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
	},
})

var createCustomerPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreateCustomerPayload",
	Fields: graphql.Fields{
		"customer": &graphql.Field{Type: customerType},
		"success":  &graphql.Field{Type: graphql.Boolean},
		"message":  &graphql.Field{Type: graphql.String},
	},
})

var bulkCreateCustomersPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BulkCreateCustomersPayload",
	Fields: graphql.Fields{
		"createdCustomers": &graphql.Field{Type: graphql.NewList(customerType)},
		"errors":           &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

var createProductPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreateProductPayload",
	Fields: graphql.Fields{
		"product": &graphql.Field{Type: productType},
		"success": &graphql.Field{Type: graphql.Boolean},
		"message": &graphql.Field{Type: graphql.String},
	},
})

var createOrderPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreateOrderPayload",
	Fields: graphql.Fields{
		"order":   &graphql.Field{Type: orderType},
		"success": &graphql.Field{Type: graphql.Boolean},
		"message": &graphql.Field{Type: graphql.String},
	},
})

var updateLowStockPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UpdateLowStockProductsPayload",
	Fields: graphql.Fields{
		"success":         &graphql.Field{Type: graphql.Boolean},
		"message":         &graphql.Field{Type: graphql.String},
		"updatedProducts": &graphql.Field{Type: graphql.NewList(productType)},
	},
})
