// Package docs registra la especificación OpenAPI de la API en swag.
// swagger.json se mantiene a partir de las anotaciones de los handlers (swag init -g cmd/api/main.go).
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo metadatos de la especificación; main ajusta el título.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Smart Inventory API",
	Description:      "Catálogo de productos, ledger de ventas y analítica.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
