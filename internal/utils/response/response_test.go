package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	err := WriteJSON(rr, 400, GeneralError(errors.New("boom")))
	require.NoError(t, err)
	require.Equal(t, 400, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, StatusError, resp.Status)
	require.Equal(t, "boom", resp.Error)
}

func TestAck(t *testing.T) {
	resp := Ack("Registration successful")
	require.Equal(t, StatusOK, resp.Status)
	require.Equal(t, "Registration successful", resp.Message)
	require.Empty(t, resp.Error)
}

func TestValidationError_JoinsFieldMessages(t *testing.T) {
	type payload struct {
		Name   string `validate:"required"`
		Course string `validate:"required"`
	}

	err := validator.New().Struct(payload{})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	require.Equal(t, StatusError, resp.Status)
	require.Contains(t, resp.Error, "field Name is required")
	require.Contains(t, resp.Error, "field Course is required")
}
