package router

import (
	"encoding/json"

	"github.com/labstack/echo/v4"
)

// jsonSerializer is echo's default serializer without HTML escaping, so
// greetings built from names containing <, > or & are written as-is.
type jsonSerializer struct {
	echo.DefaultJSONSerializer
}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}
