// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package gql exposes the portfolio over GraphQL.
//
// # Architecture
//
// Resolvers are thin adapters over the same services the REST handlers use,
// so validation, partial-update rules and persistence behave identically on
// both surfaces. Mutations other than login require a principal resolved by
// the authentication middleware.
package gql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dwikiramdani/kiramdashboard/internal/identity"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/experience"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/profile"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/project"
)

// Services groups the domain services the resolvers call.
type Services struct {
	Identity   *identity.Service
	Profile    *profile.Service
	Experience *experience.Service
	Project    *project.Service
}

type resolver struct {
	services Services
}

// NewSchema builds the executable schema.
func NewSchema(services Services) (graphql.Schema, error) {
	r := &resolver{services: services}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"profile":     &graphql.Field{Type: profileType, Resolve: guard(r.profile)},
			"experiences": &graphql.Field{Type: listOf(experienceType), Resolve: guard(r.experiences)},
			"experience":  &graphql.Field{Type: experienceType, Args: idArgs(), Resolve: guard(r.experience)},
			"projects":    &graphql.Field{Type: listOf(projectType), Resolve: guard(r.projects)},
			"project": &graphql.Field{
				Type:        projectType,
				Description: "Looks a project up by id or slug.",
				Args:        idArgs(),
				Resolve:     guard(r.project),
			},
			"me": &graphql.Field{Type: userType, Resolve: guard(r.me)},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: guard(r.login),
			},
			"regenerateApiKey": &graphql.Field{Type: apiKeyType, Resolve: guard(r.regenerateAPIKey)},

			"updateProfile": &graphql.Field{Type: profileType, Args: profileArgs(), Resolve: guard(r.updateProfile)},

			"addExperience":    &graphql.Field{Type: experienceType, Args: experienceArgs(true), Resolve: guard(r.addExperience)},
			"updateExperience": &graphql.Field{Type: experienceType, Args: withID(experienceArgs(false)), Resolve: guard(r.updateExperience)},
			"deleteExperience": &graphql.Field{Type: graphql.Boolean, Args: idArgs(), Resolve: guard(r.deleteExperience)},

			"addProject":    &graphql.Field{Type: projectType, Args: projectArgs(true), Resolve: guard(r.addProject)},
			"updateProject": &graphql.Field{Type: projectType, Args: withID(projectArgs(false)), Resolve: guard(r.updateProject)},
			"deleteProject": &graphql.Field{Type: graphql.Boolean, Args: idArgs(), Resolve: guard(r.deleteProject)},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

// # Queries

func (r *resolver) profile(p graphql.ResolveParams) (any, error) {
	return result(r.services.Profile.Get(p.Context))
}

func (r *resolver) experiences(p graphql.ResolveParams) (any, error) {
	return result(r.services.Experience.List(p.Context))
}

func (r *resolver) experience(p graphql.ResolveParams) (any, error) {
	id, _ := p.Args["id"].(string)
	return result(r.services.Experience.Get(p.Context, id))
}

func (r *resolver) projects(p graphql.ResolveParams) (any, error) {
	return result(r.services.Project.List(p.Context))
}

func (r *resolver) project(p graphql.ResolveParams) (any, error) {
	id, _ := p.Args["id"].(string)
	return result(r.services.Project.Get(p.Context, id))
}

// me returns null for anonymous callers instead of an error.
func (r *resolver) me(p graphql.ResolveParams) (any, error) {
	principal := ctxutil.GetPrincipal(p.Context)
	if principal == nil {
		return nil, nil
	}
	return result(r.services.Identity.Me(p.Context, principal))
}

// # Mutations

func (r *resolver) login(p graphql.ResolveParams) (any, error) {
	username, _ := p.Args["username"].(string)
	password, _ := p.Args["password"].(string)

	return result(r.services.Identity.Login(p.Context, identity.LoginInput{
		Username:  username,
		Password:  password,
		ClientKey: ctxutil.GetClientIP(p.Context),
	}))
}

func (r *resolver) regenerateAPIKey(p graphql.ResolveParams) (any, error) {
	principal, err := requirePrincipal(p.Context)
	if err != nil {
		return nil, err
	}
	return result(r.services.Identity.RegenerateAPIKey(p.Context, principal))
}

func (r *resolver) updateProfile(p graphql.ResolveParams) (any, error) {
	var input profile.UpdateInput
	if err := authorizeAndDecode(p, &input); err != nil {
		return nil, err
	}
	return result(r.services.Profile.Update(p.Context, input))
}

func (r *resolver) addExperience(p graphql.ResolveParams) (any, error) {
	var input experience.CreateInput
	if err := authorizeAndDecode(p, &input); err != nil {
		return nil, err
	}
	return result(r.services.Experience.Create(p.Context, input))
}

func (r *resolver) updateExperience(p graphql.ResolveParams) (any, error) {
	var input experience.UpdateInput
	if err := authorizeAndDecode(p, &input); err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	return result(r.services.Experience.Update(p.Context, id, input))
}

func (r *resolver) deleteExperience(p graphql.ResolveParams) (any, error) {
	if _, err := requirePrincipal(p.Context); err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	if err := r.services.Experience.Delete(p.Context, id); err != nil {
		return nil, err
	}
	return true, nil
}

func (r *resolver) addProject(p graphql.ResolveParams) (any, error) {
	var input project.CreateInput
	if err := authorizeAndDecode(p, &input); err != nil {
		return nil, err
	}
	return result(r.services.Project.Create(p.Context, input))
}

func (r *resolver) updateProject(p graphql.ResolveParams) (any, error) {
	var input project.UpdateInput
	if err := authorizeAndDecode(p, &input); err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	return result(r.services.Project.Update(p.Context, id, input))
}

func (r *resolver) deleteProject(p graphql.ResolveParams) (any, error) {
	if _, err := requirePrincipal(p.Context); err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	if err := r.services.Project.Delete(p.Context, id); err != nil {
		return nil, err
	}
	return true, nil
}

// # Helpers

func requirePrincipal(ctx context.Context) (*sec.Principal, error) {
	principal := ctxutil.GetPrincipal(ctx)
	if principal == nil {
		return nil, apperr.AuthenticationRequired()
	}
	return principal, nil
}

// authorizeAndDecode checks for a principal and copies the arguments into
// target. Arguments the caller omitted stay nil, which keeps the partial-update
// rules of the services intact.
func authorizeAndDecode(p graphql.ResolveParams, target any) error {
	if _, err := requirePrincipal(p.Context); err != nil {
		return err
	}

	raw, err := json.Marshal(p.Args)
	if err != nil {
		return apperr.Internal(fmt.Errorf("gql: encode args: %w", err))
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return apperr.ValidationError("Invalid arguments")
	}
	return nil
}

// result adapts a service return pair to a resolver return pair.
func result[T any](value T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return value, nil
}

// guard turns resolver errors into GraphQL errors carrying an error code.
func guard(resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		value, err := resolve(p)
		if err != nil {
			return nil, toGraphQLError(p.Context, err)
		}
		return value, nil
	}
}
