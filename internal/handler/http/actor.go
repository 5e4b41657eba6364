package http

import (
	"context"
	"strconv"

	"github.com/go-chi/jwtauth/v5"

	"github.com/peoplecore/attendance-backend-go/internal/domain/auth"
	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
)

// actorFromContext resolves the authenticated caller from the verified
// token claims. AuthRequired runs first, so a failure here means a
// malformed token rather than a missing one.
func actorFromContext(ctx context.Context) (employee.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return employee.Actor{}, auth.ErrInvalidToken
	}

	idStr, ok := claims["user_id"].(string)
	if !ok {
		return employee.Actor{}, auth.ErrInvalidToken
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return employee.Actor{}, auth.ErrInvalidToken
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return employee.Actor{}, auth.ErrInvalidToken
	}

	return employee.Actor{ID: id, Role: employee.Role(roleStr)}, nil
}

// urlID parses a numeric URL parameter.
func urlID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil && id > 0
}
