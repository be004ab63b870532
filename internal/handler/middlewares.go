package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rotaplan/roster-backend/internal/domain"
)

// SecurityError covers authentication and authorization failures.
type SecurityError struct {
	Message string
}

func (e *SecurityError) Error() string { return e.Message }

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog mangles multi-line stack traces
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authCookieName)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.writeException(w, r, http.StatusUnauthorized, &SecurityError{Message: "not logged in"})
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		tokenString := cookie.Value
		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.writeException(w, r, http.StatusUnauthorized, &SecurityError{Message: "invalid token"})
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) myInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subString := r.Context().Value(SubCtxKey).(string)

		sub, err := strconv.ParseInt(subString, 10, 64)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		myInfo, err := h.repository.GetUserByID(sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.domainError(w, r, domain.NewEntityNotFound("User", sub))
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, myInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleCtx := r.Context().Value(RoleCtxKey).(string)
			role := domain.Role(roleCtx)
			if !slices.Contains(roles, role) {
				h.writeException(w, r, http.StatusForbidden, &SecurityError{Message: "insufficient permissions"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) userInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDParam := chi.URLParam(r, "id")
		userID, err := strconv.ParseInt(userIDParam, 10, 64)
		if err != nil {
			h.badRequest(w, r, fmt.Errorf("invalid user id %q", userIDParam))
			return
		}

		user, err := h.repository.GetUserByID(userID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.domainError(w, r, domain.NewEntityNotFound("User", userID))
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), UserInfoCtx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) preventOperateInitialAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Context().Value(UserInfoCtx).(*domain.User)
		if user.Username == h.config.InitialAdmin.Username {
			h.writeException(w, r, http.StatusForbidden, &SecurityError{Message: "the initial admin cannot be modified"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantIDParam := chi.URLParam(r, "tenantID")
		tenantID, err := strconv.ParseInt(tenantIDParam, 10, 64)
		if err != nil {
			h.badRequest(w, r, fmt.Errorf("invalid tenant id %q", tenantIDParam))
			return
		}

		tenant, err := h.repository.GetTenantByID(tenantID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.domainError(w, r, domain.NewEntityNotFound("Tenant", tenantID))
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), TenantCtx, tenant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loadEntity parses {id}, fetches the entity and checks it belongs to
// the tenant from the route. The entity loaders below are thin wrappers
// over it.
func (h *Handler) loadEntity(
	entityType string,
	ctxKey ContextKey,
	fetch func(id int64) (domain.Persistable, error),
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idParam := chi.URLParam(r, "id")
			id, err := strconv.ParseInt(idParam, 10, 64)
			if err != nil {
				h.badRequest(w, r, fmt.Errorf("invalid %s id %q", entityType, idParam))
				return
			}

			entity, err := fetch(id)
			if err != nil {
				switch {
				case errors.Is(err, sql.ErrNoRows):
					h.domainError(w, r, domain.NewEntityNotFound(entityType, id))
				default:
					h.internalServerError(w, r, err)
				}
				return
			}

			tenant := r.Context().Value(TenantCtx).(*domain.Tenant)
			if err := domain.ValidateTenantID(tenant.ID, entity); err != nil {
				h.domainError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey, entity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (h *Handler) skill(next http.Handler) http.Handler {
	return h.loadEntity("Skill", SkillCtx, func(id int64) (domain.Persistable, error) {
		return h.repository.GetSkillByID(id)
	})(next)
}

func (h *Handler) spot(next http.Handler) http.Handler {
	return h.loadEntity("Spot", SpotCtx, func(id int64) (domain.Persistable, error) {
		return h.repository.GetSpotByID(id)
	})(next)
}

func (h *Handler) contract(next http.Handler) http.Handler {
	return h.loadEntity("Contract", ContractCtx, func(id int64) (domain.Persistable, error) {
		return h.repository.GetContractByID(id)
	})(next)
}

func (h *Handler) employee(next http.Handler) http.Handler {
	return h.loadEntity("Employee", EmployeeCtx, func(id int64) (domain.Persistable, error) {
		return h.repository.GetEmployeeByID(id)
	})(next)
}

func (h *Handler) availability(next http.Handler) http.Handler {
	return h.loadEntity("EmployeeAvailability", AvailabilityCtx, func(id int64) (domain.Persistable, error) {
		return h.repository.GetAvailabilityByID(id)
	})(next)
}

func (h *Handler) shiftTemplate(next http.Handler) http.Handler {
	return h.loadEntity("ShiftTemplate", ShiftTemplateCtx, func(id int64) (domain.Persistable, error) {
		return h.repository.GetShiftTemplateByID(id)
	})(next)
}

func (h *Handler) shift(next http.Handler) http.Handler {
	return h.loadEntity("Shift", ShiftCtx, func(id int64) (domain.Persistable, error) {
		return h.repository.GetShiftByID(id)
	})(next)
}
