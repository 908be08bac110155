// Package docs registra la especificación OpenAPI de la API (Swagger 2.0).
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON string

type openAPIDoc struct{}

func (openAPIDoc) ReadDoc() string { return swaggerJSON }

func init() {
	swag.Register(swag.Name, openAPIDoc{})
}
