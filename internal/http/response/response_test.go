package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"total": 3})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, map[string]any{"total": 3}, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("user not found")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "user not found", resp.Error)
	assert.Nil(t, resp.Data)
}

func TestValidationError(t *testing.T) {
	type request struct {
		Field string `validate:"required,oneof=name balance"`
		Page  int    `validate:"min=1"`
		Mail  string `validate:"email"`
	}

	err := validator.New().Struct(request{Field: "email", Page: 0, Mail: "nope"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t,
		"field Field must be one of [name balance], field Page must be at least 1, field Mail is not valid",
		resp.Error)
}
