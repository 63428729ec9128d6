// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package authz implements rule-based resource authorization for the API.

# Architecture

Route-level access control is expressed declaratively: each protected route
mounts a middleware built from a [Config] naming the rules that may grant
access ("admin", "self") and, when ownership must be resolved against the
database, an [OwnerLookup] for the guarded entity.

Rules are tried in order. The first rule that grants access wins; a rule
that cannot grant simply falls through to the next. Only when every rule
has fallen through does the request fail with the canonical 403.

# Ownership resolution

"self" can be resolved three ways, depending on the route shape:

  - Path identity: the path parameter IS a user id (e.g. /users/{id}).
  - Query identity: list routes scoped by a `userId` query parameter.
  - Record ownership: the path parameter identifies a record whose owner
    is fetched through an [OwnerLookup] (e.g. /enrollments/{enrollmentId}).

A lookup miss is a 404 naming the resource and parameter, raised before any
ownership comparison, so record existence errors always win over 403s for
callers that could never own the record anyway.
*/
package authz

import (
	"context"
	"net/http"
	"strconv"

	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/ctxutil"
	"github.com/informatics-lc/backend/internal/platform/request"
	"github.com/informatics-lc/backend/internal/platform/respond"
)

// Rule names a way a principal may be granted access to a route.
type Rule string

const (
	// RuleAdmin grants access to administrator principals.
	RuleAdmin Rule = "admin"
	// RuleSelf grants access when the principal owns the addressed resource.
	RuleSelf Rule = "self"
)

// QueryMode controls how the `userId` query parameter participates in
// "self" resolution on list routes.
type QueryMode int

const (
	// QueryIgnored: the query string plays no role; "self" compares the
	// principal against the path parameter.
	QueryIgnored QueryMode = iota

	// QueryRequired: non-admin callers are forced into their own scope. A
	// missing `userId` is injected with the principal's id; an explicit
	// `userId` must equal it.
	QueryRequired

	// QueryProhibited: non-admin callers may not pass `userId` at all; the
	// record's owner is resolved through the [OwnerLookup] instead.
	QueryProhibited
)

// OwnerLookup resolves the owning user of a guarded record.
//
// Implementations live in the feature packages (enrollments, invoices) so
// that authz stays free of SQL.
type OwnerLookup interface {
	// ResourceName is the client-facing entity name used in 404 details.
	ResourceName() string

	// OwnerID returns the owning user id of the record, and whether the
	// record exists at all.
	OwnerID(ctx context.Context, id int) (ownerID int, found bool, err error)
}

// Config declares the access policy of a single route.
//
// "self" resolution picks exactly one mode: a non-nil Owner always wins and
// resolves ownership from the record behind the path parameter; otherwise
// QueryRequired consults only the `userId` query value and never reads the
// path parameter; otherwise the path parameter itself is compared against
// the principal.
type Config struct {
	// Rules are tried in order; the first grant wins.
	Rules []Rule

	// Owner resolves record ownership for "self". Nil means the path or
	// query parameter itself carries the user id.
	Owner OwnerLookup

	// Param is the path parameter holding the record (or user) id.
	// Defaults to "id".
	Param string

	// OwnerQuery controls `userId` query-parameter handling.
	OwnerQuery QueryMode
}

// ownerQueryParam is the reserved list-scoping query parameter.
const ownerQueryParam = "userId"

// Require builds the authorization middleware for a route [Config].
//
// Must be mounted after authentication; anonymous requests are rejected
// with 401 before any rule is evaluated.
func Require(cfg Config) func(http.Handler) http.Handler {
	param := cfg.Param
	if param == "" {
		param = "id"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			claims := ctxutil.GetClaims(req.Context())
			if claims == nil {
				respond.Error(writer, req, apperr.Unauthorized("Authentication required", "authorization"))
				return
			}

			subject := claims.SubjectID()

			for _, rule := range cfg.Rules {
				switch rule {
				case RuleAdmin:
					if claims.Admin {
						next.ServeHTTP(writer, req)
						return
					}

				case RuleSelf:
					granted, modified, err := resolveSelf(req, cfg, param, subject)
					if err != nil {
						respond.Error(writer, req, err)
						return
					}
					if granted {
						next.ServeHTTP(writer, modified)
						return
					}
				}
			}

			respond.Error(writer, req, apperr.Forbidden())
		})
	}
}

// resolveSelf evaluates the "self" rule. It returns the (possibly scoped)
// request on grant, or falls through with granted=false. Lookup misses
// surface as 404 errors and stop rule evaluation entirely.
func resolveSelf(req *http.Request, cfg Config, param string, subject int) (granted bool, out *http.Request, err error) {
	// Record ownership via lookup.
	if cfg.Owner != nil {
		if cfg.OwnerQuery == QueryProhibited && req.URL.Query().Has(ownerQueryParam) {
			// Scoping someone else's listing is an admin affordance only.
			return false, req, nil
		}

		raw := request.Param(req, param)
		id, convErr := strconv.Atoi(raw)
		if convErr != nil || id <= 0 {
			return false, req, apperr.NotFound(cfg.Owner.ResourceName(), param, raw)
		}

		ownerID, found, lookupErr := cfg.Owner.OwnerID(req.Context(), id)
		if lookupErr != nil {
			return false, req, lookupErr
		}
		if !found {
			return false, req, apperr.NotFound(cfg.Owner.ResourceName(), param, raw)
		}

		return ownerID == subject, req, nil
	}

	// Query identity: force non-admin callers into their own scope.
	if cfg.OwnerQuery == QueryRequired {
		values := req.URL.Query()
		raw := values.Get(ownerQueryParam)

		if raw == "" {
			// Imply "mine": inject the principal's id for the list handler.
			values.Set(ownerQueryParam, strconv.Itoa(subject))
			scoped := req.Clone(req.Context())
			scoped.URL.RawQuery = values.Encode()
			return true, scoped, nil
		}

		if requested, convErr := strconv.Atoi(raw); convErr == nil && requested == subject {
			return true, req, nil
		}

		return false, req, nil
	}

	// Path identity: the parameter is the user id itself.
	raw := request.Param(req, param)
	if id, convErr := strconv.Atoi(raw); convErr == nil && id == subject {
		return true, req, nil
	}

	return false, req, nil
}
