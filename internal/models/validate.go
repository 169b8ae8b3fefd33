package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationErrors alan adı -> hata mesajı
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return "doğrulama hatası: " + strings.Join(parts, "; ")
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Hata alanlarını JSON isimleriyle raporla
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		// sadece boşluktan oluşan değerler required'ı geçer
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
	})
	return validate
}

// Validate struct tag kurallarını uygular, hata varsa ValidationErrors döner
func Validate(v interface{}) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("doğrulama yapılamadı: %w", err)
	}

	out := make(ValidationErrors, len(fieldErrors))
	for _, fe := range fieldErrors {
		if _, exists := out[fe.Field()]; exists {
			continue
		}
		out[fe.Field()] = validationMessage(fe)
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	param := fe.Param()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "zorunludur"
	case "notblank":
		return "boş olamaz"
	case "email":
		return "geçerli bir e-posta adresi olmalıdır"
	case "min":
		if isString {
			return "en az " + param + " karakter olmalıdır"
		}
		return "en az " + param + " olmalıdır"
	case "max":
		if isString {
			return "en fazla " + param + " karakter olabilir"
		}
		return "en fazla " + param + " olabilir"
	default:
		return fmt.Sprintf("%s kuralına uymuyor", fe.Tag())
	}
}
