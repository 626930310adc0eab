// Package docs registers the Swagger 2.0 document served at /swagger.
// swagger.json is regenerated from the handler annotations with swag.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag/v2"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kiosk CRM API",
	Description:      "Multi-tenant kiosk asset management and sales CRM",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
