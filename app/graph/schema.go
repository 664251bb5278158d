// Package graph exposes the guest menu as a read-only GraphQL API.
//
//	{
//	  menu(course: "mains") { filter total items { name priceLabel } }
//	  stats { total average courses { course { name } count average } }
//	}
package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/models"
	"github.com/shashiranjanraj/chefmenu/app/views"
	gql "github.com/shashiranjanraj/chefmenu/pkg/graphql"
)

func courseOf(src interface{}) models.Course {
	switch c := src.(type) {
	case models.Course:
		return c
	case *models.Course:
		return *c
	}
	return models.Course{}
}

var courseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Course",
	Fields: graphql.Fields{
		"id": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return string(courseOf(p.Source).ID), nil
		}},
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return courseOf(p.Source).Name, nil
		}},
		"icon": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return courseOf(p.Source).Icon, nil
		}},
		"label": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return courseOf(p.Source).Label(), nil
		}},
	},
})

var itemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MenuItem",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"course": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return string(p.Source.(views.ItemView).Course), nil
		}},
		"courseName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"courseIcon": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"priceLabel": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var chipType = graphql.NewObject(graphql.ObjectConfig{
	Name: "FilterChip",
	Fields: graphql.Fields{
		"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"label":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"icon":   &graphql.Field{Type: graphql.String},
		"count":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"active": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var guestMenuType = graphql.NewObject(graphql.ObjectConfig{
	Name: "GuestMenu",
	Fields: graphql.Fields{
		"filter":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"heading": &graphql.Field{Type: courseType, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if h := p.Source.(views.GuestPage).Heading; h != nil {
				return *h, nil
			}
			return nil, nil
		}},
		"chips":      &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(chipType))},
		"items":      &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(itemType))},
		"total":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"emptyState": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if s := p.Source.(views.GuestPage).EmptyState; s != "" {
				return s, nil
			}
			return nil, nil
		}},
	},
})

var courseStatsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CourseStats",
	Fields: graphql.Fields{
		"course":  &graphql.Field{Type: graphql.NewNonNull(courseType)},
		"count":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"average": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var statsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Stats",
	Fields: graphql.Fields{
		"total":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"average": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"courses": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(courseStatsType))},
	},
})

// NewSchema builds the query-only schema over c.
func NewSchema(c *catalog.Catalog) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"courses": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(courseType)),
				Resolve: func(graphql.ResolveParams) (interface{}, error) {
					return models.Courses(), nil
				},
			},
			"menu": &graphql.Field{
				Type: guestMenuType,
				Args: graphql.FieldConfigArgument{
					"course": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: catalog.FilterAll},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter, _ := p.Args["course"].(string)
					return views.Guest(c, filter), nil
				},
			},
			"items": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(itemType)),
				Args: graphql.FieldConfigArgument{
					"course": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if course, ok := p.Args["course"].(string); ok && course != "" {
						return views.Items(c.ItemsByCourse(models.CourseID(course))), nil
					}
					return views.Items(c.AllItems()), nil
				},
			},
			"stats": &graphql.Field{
				Type: graphql.NewNonNull(statsType),
				Resolve: func(graphql.ResolveParams) (interface{}, error) {
					return c.Stats(), nil
				},
			},
		},
	})
	return gql.NewSchema(query)
}
