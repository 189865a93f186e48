package helper

import (
	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

// ValidateStruct trả về map lỗi theo field, nil nếu hợp lệ.
func ValidateStruct(s any) map[string][]string {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"_": {err.Error()}}
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], fe.Tag())
	}
	return out
}
