package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteJSON(rec, http.StatusCreated, map[string]int64{"id": 1}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id": 1}`, rec.Body.String())
}

func TestGeneralError(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusNotFound, GeneralError(errors.New("student not found"))))

	assert.JSONEq(t, `{"status": "error", "error": "student not found"}`, rec.Body.String())
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusOK, Message("student deleted successfully")))

	assert.JSONEq(t, `{"status": "ok", "message": "student deleted successfully"}`, rec.Body.String())
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Code  string `validate:"max=2"`
		Email string `validate:"omitempty,email"`
	}

	err := validator.New().Struct(payload{Code: "abc", Email: "nope"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	resp := ValidationError(verrs)
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t,
		"field Name is required, field Code must be at most 2 characters, field Email is invalid",
		resp.Error)
}
