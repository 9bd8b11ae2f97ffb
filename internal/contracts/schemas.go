package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"showcase-service/internal/core/domain"
	"showcase-service/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	TourRequestFormKey    = "TourRequestForm/1.0.0"
	ContactMessageFormKey = "ContactMessageForm/1.0.0"
)

// FormValidator проверяет тела форм по встроенным JSON-схемам.
// Реализует port.FormValidatorPort.
type FormValidator struct {
	compiledSchemas map[string]*jsonschema.Schema
}

// NewFormValidator компилирует все схемы из schemas.SchemasFS
func NewFormValidator() (*FormValidator, error) {
	return newFormValidator(schemas.SchemasFS, "forms")
}

func newFormValidator(fsys fs.FS, root string) (*FormValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Сначала добавляем все схемы как ресурсы, чтобы они могли ссылаться друг на друга через `$ref`
	var paths []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := fsys.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open schema %s: %w", path, err)
		}
		defer file.Close()
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking and adding schema resources: %w", err)
	}

	compiled := make(map[string]*jsonschema.Schema, len(paths))
	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		key := generateKeyFromPath(root, path)
		if key == "" {
			return nil, fmt.Errorf("schema path %s does not match <root>/<form-name>/v<major>.json", path)
		}
		compiled[key] = schema
	}

	return &FormValidator{compiledSchemas: compiled}, nil
}

// generateKeyFromPath преобразует путь вида "forms/tour-request/v1.json"
// в ключ вида "TourRequestForm/1.0.0".
func generateKeyFromPath(root, path string) string {
	trimmedPath := strings.TrimPrefix(path, root+"/")
	trimmedPath = strings.TrimSuffix(trimmedPath, ".json")

	parts := strings.Split(trimmedPath, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "v") {
		return ""
	}

	caser := cases.Title(language.English)

	var nameBuilder strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		nameBuilder.WriteString(caser.String(p))
	}
	nameBuilder.WriteString("Form")

	version := strings.TrimPrefix(parts[1], "v") + ".0.0"

	return fmt.Sprintf("%s/%s", nameBuilder.String(), version)
}

// Validate проверяет тело формы по схеме с данным ключом
func (v *FormValidator) Validate(key string, body []byte) error {
	schema, ok := v.compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema for form '%s' not found", key)
	}

	// Распарсить JSON в универсальный тип interface{}
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("form body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return &domain.InvalidFieldsError{
			Fields: invalidFields(err),
			Err:    fmt.Errorf("form validation failed: %w", err),
		}
	}

	return nil
}

// invalidFields собирает верхнеуровневые поля, на которые указывают ошибки схемы.
// Ошибки самого объекта (лишнее поле, не объект) полей не дают.
func invalidFields(err error) []string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil
	}

	seen := make(map[string]struct{})
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if field, _, _ := strings.Cut(strings.TrimPrefix(e.InstanceLocation, "/"), "/"); field != "" {
			seen[field] = struct{}{}
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(validationErr)

	fields := make([]string, 0, len(seen))
	for field := range seen {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (v *FormValidator) ValidateTourForm(body []byte) error {
	return v.Validate(TourRequestFormKey, body)
}

func (v *FormValidator) ValidateContactMessage(body []byte) error {
	return v.Validate(ContactMessageFormKey, body)
}

// Keys возвращает ключи всех зарегистрированных схем
func (v *FormValidator) Keys() []string {
	keys := make([]string, 0, len(v.compiledSchemas))
	for k := range v.compiledSchemas {
		keys = append(keys, k)
	}
	return keys
}
