package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/silverboard/internal/pkg/constants"
	"github.com/ougirez/silverboard/internal/pkg/logger"
)

// RequestIDMiddleware stamps every request with a uuid and threads it into
// the request context for log correlation.
func (svc *APIService) RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ctx.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx.Set(constants.CtxKeyRequestID, id)
		ctx.Response().Header().Set(echo.HeaderXRequestID, id)

		req := ctx.Request()
		ctx.SetRequest(req.WithContext(logger.WithFields(req.Context(), "request_id", id)))

		return next(ctx)
	}
}
