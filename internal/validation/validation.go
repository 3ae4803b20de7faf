// Package validation 为各输入类型注册校验规则表，在进入 service 之前执行
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"ai4local/internal/services"
	"ai4local/pkg/errors"
	"ai4local/pkg/patch"

	"github.com/go-playground/validator/v10"
)

// 规则表，键为结构体字段名
var (
	registerRules = map[string]string{
		"Email":     "required,email,max=120",
		"Password":  "required,min=6,max=72",
		"FirstName": "required,max=100",
		"LastName":  "required,max=100",
		"Phone":     "omitempty,max=20",
	}
	loginRules = map[string]string{
		"Email":    "required,email",
		"Password": "required",
	}
	createOrganizationRules = map[string]string{
		"Name":    "required,max=100",
		"Website": "omitempty,url,max=255",
		"Phone":   "omitempty,max=20",
		"Address": "omitempty,max=255",
	}
	updateOrganizationRules = map[string]string{
		"Name":    "omitempty,min=1,max=100",
		"Website": "omitempty,url,max=255",
		"Phone":   "omitempty,max=20",
		"Address": "omitempty,max=255",
		"Status":  "omitempty,oneof=active inactive",
	}
	createCustomerRules = map[string]string{
		"OrganizationID": "required",
		"Name":           "required,max=100",
		"Email":          "required,email,max=120",
		"Phone":          "omitempty,max=20",
		"Address":        "omitempty,max=255",
		"Tags":           "omitempty,dive,max=50",
		"Status":         "omitempty,max=20",
	}
	updateCustomerRules = map[string]string{
		"Name":    "omitempty,min=1,max=100",
		"Email":   "omitempty,email,max=120",
		"Phone":   "omitempty,max=20",
		"Address": "omitempty,max=255",
		"Tags":    "omitempty,dive,max=50",
		"Status":  "omitempty,min=1,max=20",
	}
	createCampaignRules = map[string]string{
		"OrganizationID": "required",
		"Name":           "required,max=200",
		"Type":           "required,max=20",
		"TargetTags":     "omitempty,dive,max=50",
	}
	updateCampaignRules = map[string]string{
		"OrganizationID": "omitempty,gt=0",
		"Name":           "omitempty,min=1,max=200",
		"Type":           "omitempty,min=1,max=20",
		"TargetTags":     "omitempty,dive,max=50",
		"Status":         "omitempty,min=1,max=20",
	}
	generateContentRules = map[string]string{
		"Prompt": "required,max=2000",
		"Type":   "required,max=20",
	}
)

var (
	once     sync.Once
	validate *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		validate = newValidator()
	})
	return validate
}

func newValidator() *validator.Validate {
	v := validator.New()

	// 错误信息使用 json 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// patch.Field 暴露内部值；未提供或 null 时返回 nil，由 omitempty 跳过
	v.RegisterCustomTypeFunc(patchValue,
		patch.Field[string]{},
		patch.Field[[]string]{},
		patch.Field[uint]{},
		patch.Field[time.Time]{},
	)

	v.RegisterStructValidationMapRules(registerRules, services.RegisterInput{})
	v.RegisterStructValidationMapRules(loginRules, services.LoginInput{})
	v.RegisterStructValidationMapRules(createOrganizationRules, services.CreateOrganizationInput{})
	v.RegisterStructValidationMapRules(updateOrganizationRules, services.UpdateOrganizationInput{})
	v.RegisterStructValidationMapRules(createCustomerRules, services.CreateCustomerInput{})
	v.RegisterStructValidationMapRules(updateCustomerRules, services.UpdateCustomerInput{})
	v.RegisterStructValidationMapRules(createCampaignRules, services.CreateCampaignInput{})
	v.RegisterStructValidationMapRules(updateCampaignRules, services.UpdateCampaignInput{})
	v.RegisterStructValidationMapRules(generateContentRules, services.GenerateContentInput{})

	v.RegisterStructValidation(rejectNulls,
		services.UpdateOrganizationInput{},
		services.UpdateCustomerInput{},
		services.UpdateCampaignInput{},
	)

	return v
}

type nullable interface {
	IsNull() bool
}

func patchValue(field reflect.Value) interface{} {
	switch f := field.Interface().(type) {
	case patch.Field[string]:
		if f.Valid {
			return f.Value
		}
	case patch.Field[[]string]:
		if f.Valid {
			return f.Value
		}
	case patch.Field[uint]:
		if f.Valid {
			return f.Value
		}
	case patch.Field[time.Time]:
		if f.Valid {
			return f.Value
		}
	}
	return nil
}

// rejectNulls 非空列不接受显式 null
func rejectNulls(sl validator.StructLevel) {
	check := func(field nullable, name, structName string) {
		if field.IsNull() {
			sl.ReportError(field, name, structName, "notnull", "")
		}
	}

	switch in := sl.Current().Interface().(type) {
	case services.UpdateOrganizationInput:
		check(in.Name, "name", "Name")
		check(in.Status, "status", "Status")
	case services.UpdateCustomerInput:
		check(in.Name, "name", "Name")
		check(in.Email, "email", "Email")
		check(in.Status, "status", "Status")
	case services.UpdateCampaignInput:
		check(in.OrganizationID, "organization_id", "OrganizationID")
		check(in.Name, "name", "Name")
		check(in.Type, "type", "Type")
		check(in.Content, "content", "Content")
		check(in.Status, "status", "Status")
	}
}

// Struct 校验输入，失败时返回 InvalidParam
func Struct(input interface{}) error {
	err := get().Struct(input)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return errors.InvalidParam(err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}
	return errors.InvalidParam(strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notnull":
		return fmt.Sprintf("%s cannot be null", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
