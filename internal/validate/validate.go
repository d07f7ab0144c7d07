package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/Ravenry/kacamerah/internal/apperr"

	"github.com/go-playground/validator/v10"
)

// MsgInvalid 校验失败时的总体提示
const MsgInvalid = "Validation failed"

// Messager 提供字段级的自定义提示，键为 <路径>.<规则>，路径不含下标
type Messager interface {
	ValidationMessages() map[string]string
}

var indexPattern = regexp.MustCompile(`\[\d+\]`)

// Validator 请求与文档校验器
type Validator struct {
	v    *validator.Validate
	sets map[string]map[string]struct{}
}

// New 创建校验器，sets 为 enum=<name> 可引用的枚举集合
func New(sets map[string][]string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	val := &Validator{v: v, sets: make(map[string]map[string]struct{}, len(sets))}
	for name, values := range sets {
		set := make(map[string]struct{}, len(values))
		for _, value := range values {
			set[value] = struct{}{}
		}
		val.sets[name] = set
	}
	// 枚举取值可能含空格，不能用 oneof
	_ = v.RegisterValidation("enum", val.enum)
	return val
}

func (val *Validator) enum(fl validator.FieldLevel) bool {
	set, ok := val.sets[fl.Param()]
	if !ok {
		return false
	}
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, ok = set[fl.Field().String()]
	return ok
}

// Has 判断取值是否属于枚举集合
func (val *Validator) Has(set, value string) bool {
	_, ok := val.sets[set][value]
	return ok
}

// Struct 校验结构体，失败时返回带字段问题列表的校验错误
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Validation(err.Error())
	}

	var messages map[string]string
	if m, ok := s.(Messager); ok {
		messages = m.ValidationMessages()
	}

	issues := make([]apperr.Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := issuePath(fe.Namespace())
		key := indexPattern.ReplaceAllString(path, "") + "." + fe.Tag()
		msg, ok := messages[key]
		if !ok {
			msg = defaultMessage(fe, path)
		}
		issues = append(issues, apperr.Issue{Path: path, Message: msg})
	}
	return apperr.Validation(issues[0].Message, issues...)
}

// issuePath 去掉命名空间开头的结构体名
func issuePath(ns string) string {
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func defaultMessage(fe validator.FieldError, path string) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", path)
	case "email":
		return "Please enter a valid email address."
	case "url":
		return fmt.Sprintf("%s must be a valid URL", path)
	case "enum", "oneof":
		return fmt.Sprintf("Invalid %s", path)
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array {
			return fmt.Sprintf("%s must contain at least %s item(s)", path, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", path, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array {
			return fmt.Sprintf("%s must contain at most %s item(s)", path, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", path, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", path, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", path, fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", path)
	default:
		return fmt.Sprintf("%s is invalid", path)
	}
}
