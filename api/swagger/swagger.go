// Package swagger embeds the OpenAPI document of the user API.
package swagger

import _ "embed"

// Doc is the OpenAPI 2.0 document served at /swagger/doc.json.
//
//go:embed user.swagger.json
var Doc []byte
