package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/putrawardana/warungsaji/app/models"
	gql "github.com/putrawardana/warungsaji/pkg/graphql"
)

// NewMenuSchema builds the read-only GraphQL schema over the public
// menu: products (with the storefront filters), a single product by
// id, and categories.
func NewMenuSchema(menu MenuProvider) (graphql.Schema, error) {
	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"category":    &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"imageUrl": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(models.Product).ImageURL, nil
				},
			},
			"position": &graphql.Field{Type: graphql.Int},
			"price": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(models.Product).Price.InexactFloat64(), nil
				},
			},
		},
	})

	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"name": &graphql.Field{Type: graphql.String},
			"icon": &graphql.Field{Type: graphql.String},
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"q":        &graphql.ArgumentConfig{Type: graphql.String},
					"limit":    &graphql.ArgumentConfig{Type: graphql.Int},
					"offset":   &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					category, _ := p.Args["category"].(string)
					q, _ := p.Args["q"].(string)
					limit, _ := p.Args["limit"].(int)
					offset, _ := p.Args["offset"].(int)
					return menu.List(category, q, limit, offset)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return menu.Detail(p.Args["id"].(string))
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return menu.Categories()
				},
			},
		},
	})

	return gql.NewSchema(rootQuery)
}

// NewMenuGraphQLHandler wires the schema into an HTTP handler for
// POST /api/graphql.
func NewMenuGraphQLHandler(menu MenuProvider) (http.HandlerFunc, error) {
	schema, err := NewMenuSchema(menu)
	if err != nil {
		return nil, err
	}
	return gql.Handler(schema), nil
}
