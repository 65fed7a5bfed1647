package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"solid/errors"
)

var identifierRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateRequired 验证必填字段
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.Errorf(errors.ErrCodeValidation, "%s不能为空", fieldName)
	}
	return nil
}

// ValidateStringLength 验证字符串长度（按字符计），max 为 0 表示不限制
func ValidateStringLength(value, fieldName string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if length < min {
		return errors.Errorf(errors.ErrCodeValidation,
			"%s长度不能少于%d个字符（当前%d）", fieldName, min, length)
	}
	if max > 0 && length > max {
		return errors.Errorf(errors.ErrCodeValidation,
			"%s长度不能超过%d个字符（当前%d）", fieldName, max, length)
	}
	return nil
}

// ValidateIdentifier 验证标识符：小写字母开头，只含小写字母、数字、下划线和连字符
func ValidateIdentifier(value, fieldName string) error {
	if err := ValidateRequired(value, fieldName); err != nil {
		return err
	}
	if !identifierRegex.MatchString(value) {
		return errors.Errorf(errors.ErrCodeValidation,
			"%s只能包含小写字母、数字、下划线和连字符，且以字母开头", fieldName)
	}
	return nil
}

// ValidateEnum 验证枚举值
func ValidateEnum(value, fieldName string, validValues []string) error {
	for _, valid := range validValues {
		if value == valid {
			return nil
		}
	}
	return errors.NewError(errors.ErrCodeValidation,
		fmt.Sprintf("%s的值无效，必须是以下之一: %v", fieldName, validValues))
}

// All 依次执行校验，返回第一个错误
func All(checks ...func() error) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
