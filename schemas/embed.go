package schemas

import "embed"

// SchemasFS - JSON-схемы пользовательских форм.
// Путь схемы: forms/<form-name>/v<major>.json
//
//go:embed forms
var SchemasFS embed.FS
