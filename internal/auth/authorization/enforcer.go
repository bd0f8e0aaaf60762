// Package authorization provides Casbin-based authorization enforcement for
// bookarc. It implements role-based access control (RBAC) over the API route
// tree: readers, verified authors, and admins each unlock a subtree.
package authorization

import (
	"fmt"
	"log/slog"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
)

// Enforcer wraps the Casbin enforcer with additional functionality.
type Enforcer struct {
	enforcer *casbin.Enforcer
	logger   *slog.Logger
}

// NewEnforcer creates a Casbin enforcer from the embedded model and policy.
// Policy data ships inside the binary, so there is nothing to hydrate at
// startup: user roles live on the user row and arrive with each request.
func NewEnforcer(logger *slog.Logger) (*Enforcer, error) {
	modelBytes, err := CasbinFS.ReadFile("casbin/model.conf")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded casbin model: %w", err)
	}
	policyBytes, err := CasbinFS.ReadFile("casbin/policy.csv")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded casbin policy: %w", err)
	}

	m, err := model.NewModelFromString(string(modelBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, stringadapter.NewAdapter(string(policyBytes)))
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	logger.Info("casbin enforcer initialized")

	return &Enforcer{
		enforcer: enforcer,
		logger:   logger,
	}, nil
}

// Enforce checks if a role can perform an action (HTTP method) on an object
// (request path). Returns true if the action is allowed, false otherwise.
//
// Example usage:
//
//	allowed, err := e.Enforce("role:normal", "/api/v1/books/42", "GET")
func (e *Enforcer) Enforce(subject, object, action string) (bool, error) {
	allowed, err := e.enforcer.Enforce(subject, object, action)
	if err != nil {
		e.logger.Error("casbin enforcement error", "subject", subject, "object", object, "action", action, "error", err)
		return false, fmt.Errorf("casbin enforcement failed: %w", err)
	}

	e.logger.Debug("casbin enforcement result", "subject", subject, "object", object, "action", action, "allowed", allowed)
	return allowed, nil
}

// EnforceRole is Enforce with the role name formatted for the policy.
func (e *Enforcer) EnforceRole(role, path, method string) (bool, error) {
	return e.Enforce(FormatRole(role), path, method)
}
