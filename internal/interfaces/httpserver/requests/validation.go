// Package requests holds the request bodies of the HTTP API and their validation.
package requests

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"creator-api/internal/domain/content"
	"creator-api/internal/domain/provider"
	"creator-api/internal/domain/user"
)

// NewValidator returns a validator that knows the content, provider and tier
// vocabularies and reports fields by their json name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return content.Category(fl.Field().String()).Valid()
	})
	mustRegister(v, "platform", func(fl validator.FieldLevel) bool {
		return content.Platform(fl.Field().String()).Valid()
	})
	mustRegister(v, "provider", func(fl validator.FieldLevel) bool {
		return provider.Provider(fl.Field().String()).Known()
	})
	mustRegister(v, "tier", func(fl validator.FieldLevel) bool {
		return user.Tier(fl.Field().String()).Valid()
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// FieldErrors flattens validator errors into {field: reason}. Slice elements
// are reported as field[i].
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Namespace()
		if _, rest, ok := strings.Cut(name, "."); ok {
			name = rest
		}
		fields[name] = reason(fe)
	}
	return fields
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "category":
		return "must be one of " + joinValues(content.Categories())
	case "platform":
		return "must be one of " + joinValues(content.Platforms())
	case "provider":
		return "must be one of " + joinValues(provider.All())
	case "tier":
		return "must be one of " + joinValues(user.Tiers())
	case "unique":
		return "must not contain duplicates"
	case "min":
		return "must contain at least " + fe.Param() + " item(s)"
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
