// Package validation wraps go-playground/validator with the request rules used by the API
// and turns validation failures into field-indexed error messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"recipe-app-api/app/server/types"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// 价格最多 3 位整数、2 位小数
var priceUpperBound = decimal.NewFromInt(1000)

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

func get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// 错误里使用 JSON 字段名
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// decimal 按字符串校验，保留小数位数
		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.StringFixed(max(-d.Exponent(), 0))
			}
			return nil
		}, decimal.Decimal{})

		mustRegister("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		mustRegister("price", func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			if err != nil {
				return false
			}
			return d.Exponent() >= -2 && d.Abs().LessThan(priceUpperBound)
		})
	})

	return validate
}

// Full 校验全部字段（创建、整体更新）
func Full(s interface{}) types.FieldErrors {
	return translate(get().Struct(s))
}

// Partial 只校验请求中出现的字段（值为 nil 的指针字段视为未提交）
func Partial(s interface{}) types.FieldErrors {
	rv := reflect.Indirect(reflect.ValueOf(s))
	rt := rv.Type()

	var omitted []string
	for i := 0; i < rv.NumField(); i++ {
		if f := rv.Field(i); f.Kind() == reflect.Ptr && f.IsNil() {
			omitted = append(omitted, rt.Field(i).Name)
		}
	}

	return translate(get().StructExcept(s, omitted...))
}

func translate(err error) types.FieldErrors {
	if err == nil {
		return nil
	}

	fieldErrors := types.FieldErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors.Add(types.NonFieldErrors, err.Error())
		return fieldErrors
	}

	for _, fe := range verrs {
		fieldErrors.Add(fe.Field(), message(fe))
	}

	return fieldErrors
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case "email":
		return "Enter a valid email address."
	case "price":
		return "Ensure that there are no more than 3 digits before the decimal point and no more than 2 decimal places."
	case "min":
		if isString {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}
