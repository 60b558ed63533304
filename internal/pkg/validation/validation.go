package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"seguimiento-noticias/internal/domain"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// Struct validates input and converts the first failure into a rule error
// naming the offending field.
func Struct(input interface{}) error {
	err := instance().Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return domain.NewRuleError("validation.required", fe.Field())
	case "min", "max", "gte", "lte", "gt", "lt":
		return domain.NewRuleError("validation.out_of_range", fe.Field())
	default:
		return domain.NewRuleError("validation.invalid", fe.Field())
	}
}
