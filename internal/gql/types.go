// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package gql

import (
	"github.com/graphql-go/graphql"

	"github.com/dwikiramdani/kiramdashboard/internal/identity"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/experience"
)

// # Object Types
//
// Fields resolve through their json tags, so the GraphQL names match the REST payloads.

func nonNull(t graphql.Output) graphql.Output {
	return graphql.NewNonNull(t)
}

func listOf(t graphql.Output) graphql.Output {
	return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
}

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"username": &graphql.Field{Type: nonNull(graphql.String)},
		"role": &graphql.Field{
			Type: nonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				switch source := p.Source.(type) {
				case sec.Principal:
					return string(source.Role), nil
				case *sec.Principal:
					return string(source.Role), nil
				case *identity.Identity:
					return string(source.Role), nil
				}
				return nil, nil
			},
		},
		"hasApiKey":      &graphql.Field{Type: graphql.Boolean},
		"apiKeyIssuedAt": &graphql.Field{Type: graphql.DateTime},
		"createdAt":      &graphql.Field{Type: graphql.DateTime},
	},
})

var authPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AuthPayload",
	Fields: graphql.Fields{
		"token":     &graphql.Field{Type: nonNull(graphql.String)},
		"tokenType": &graphql.Field{Type: nonNull(graphql.String)},
		"expiresAt": &graphql.Field{Type: nonNull(graphql.DateTime)},
		"user":      &graphql.Field{Type: nonNull(userType)},
	},
})

var apiKeyType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ApiKey",
	Fields: graphql.Fields{
		"apiKey":   &graphql.Field{Type: nonNull(graphql.String)},
		"issuedAt": &graphql.Field{Type: nonNull(graphql.DateTime)},
		"message":  &graphql.Field{Type: graphql.String},
	},
})

var profileType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Profile",
	Fields: graphql.Fields{
		"profilePicture": &graphql.Field{Type: nonNull(graphql.String)},
		"headline":       &graphql.Field{Type: nonNull(graphql.String)},
		"summary":        &graphql.Field{Type: nonNull(graphql.String)},
		"techstack":      &graphql.Field{Type: listOf(graphql.String)},
		"updatedAt":      &graphql.Field{Type: graphql.DateTime},
	},
})

var experienceType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Experience",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":     &graphql.Field{Type: nonNull(graphql.String)},
		"company":   &graphql.Field{Type: nonNull(graphql.String)},
		"startDate": &graphql.Field{Type: nonNull(graphql.String)},
		"endDate": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				source, ok := p.Source.(*experience.Experience)
				if !ok || source.EndDate == nil {
					return nil, nil
				}
				return *source.EndDate, nil
			},
		},
		"description": &graphql.Field{Type: graphql.String},
		"current":     &graphql.Field{Type: nonNull(graphql.Boolean)},
		"createdAt":   &graphql.Field{Type: graphql.DateTime},
		"updatedAt":   &graphql.Field{Type: graphql.DateTime},
	},
})

var projectType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Project",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"slug":         &graphql.Field{Type: nonNull(graphql.String)},
		"title":        &graphql.Field{Type: nonNull(graphql.String)},
		"description":  &graphql.Field{Type: nonNull(graphql.String)},
		"image":        &graphql.Field{Type: graphql.String},
		"technologies": &graphql.Field{Type: listOf(graphql.String)},
		"link":         &graphql.Field{Type: graphql.String},
		"github":       &graphql.Field{Type: graphql.String},
		"createdAt":    &graphql.Field{Type: graphql.DateTime},
		"updatedAt":    &graphql.Field{Type: graphql.DateTime},
	},
})

// # Argument Sets

var stringList = graphql.NewList(graphql.NewNonNull(graphql.String))

func idArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
}

func withID(args graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args["id"] = &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
	return args
}

func experienceArgs(create bool) graphql.FieldConfigArgument {
	required := func(t graphql.Input) graphql.Input {
		if create {
			return graphql.NewNonNull(t)
		}
		return t
	}
	return graphql.FieldConfigArgument{
		"title":       &graphql.ArgumentConfig{Type: required(graphql.String)},
		"company":     &graphql.ArgumentConfig{Type: required(graphql.String)},
		"startDate":   &graphql.ArgumentConfig{Type: required(graphql.String)},
		"endDate":     &graphql.ArgumentConfig{Type: graphql.String},
		"description": &graphql.ArgumentConfig{Type: graphql.String},
		"current":     &graphql.ArgumentConfig{Type: graphql.Boolean},
	}
}

func projectArgs(create bool) graphql.FieldConfigArgument {
	required := func(t graphql.Input) graphql.Input {
		if create {
			return graphql.NewNonNull(t)
		}
		return t
	}
	return graphql.FieldConfigArgument{
		"title":        &graphql.ArgumentConfig{Type: required(graphql.String)},
		"description":  &graphql.ArgumentConfig{Type: required(graphql.String)},
		"image":        &graphql.ArgumentConfig{Type: graphql.String},
		"technologies": &graphql.ArgumentConfig{Type: stringList},
		"link":         &graphql.ArgumentConfig{Type: graphql.String},
		"github":       &graphql.ArgumentConfig{Type: graphql.String},
	}
}

func profileArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"profilePicture": &graphql.ArgumentConfig{Type: graphql.String},
		"headline":       &graphql.ArgumentConfig{Type: graphql.String},
		"summary":        &graphql.ArgumentConfig{Type: graphql.String},
		"techstack":      &graphql.ArgumentConfig{Type: stringList},
	}
}
