package api

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/silverboard/internal/pkg/constants"
)

type requestBinder struct {
	base echo.DefaultBinder
}

func NewBinder() *requestBinder {
	return &requestBinder{}
}

func (b *requestBinder) Bind(i interface{}, c echo.Context) error {
	if err := b.base.Bind(i, c); err != nil {
		return constants.NewCodedErrorf(http.StatusBadRequest, "bind: %s", err.Error())
	}
	return nil
}

// sonicSerializer swaps echo's JSON codec for sonic.
type sonicSerializer struct{}

func (sonicSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := sonic.ConfigDefault.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (sonicSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := sonic.ConfigDefault.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return constants.NewCodedErrorf(http.StatusBadRequest, "decode: %s", err.Error())
	}
	return nil
}
