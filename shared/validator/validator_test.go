package validator_test

import (
	"net/http"
	"proctor/shared/failure"
	"proctor/shared/timezone"
	"proctor/shared/validator"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string    `json:"name"  validate:"required"`
	Start time.Time `json:"start" validate:"required,future"`
}

func TestValidate_OK(t *testing.T) {
	start := timezone.Now().Add(24 * time.Hour).Format(time.RFC3339)
	body := strings.NewReader(`{"name":"exam 1","start":"` + start + `"}`)

	req := sampleRequest{}
	require.NoError(t, validator.Validate(body, &req))
	assert.Equal(t, "exam 1", req.Name)
}

func TestValidate_MalformedBody(t *testing.T) {
	req := sampleRequest{}
	err := validator.Validate(strings.NewReader(`{"name":`), &req)

	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
}

func TestValidate_MissingRequired(t *testing.T) {
	start := timezone.Now().Add(time.Hour).Format(time.RFC3339)

	req := sampleRequest{}
	err := validator.Validate(strings.NewReader(`{"start":"`+start+`"}`), &req)

	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	assert.Equal(t, "Name is required", err.Error())
}

func TestValidate_PastTimeRejected(t *testing.T) {
	past := timezone.Now().Add(-time.Hour).Format(time.RFC3339)

	req := sampleRequest{}
	err := validator.Validate(strings.NewReader(`{"name":"exam 1","start":"`+past+`"}`), &req)

	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	assert.Equal(t, "Start must be in the future", err.Error())
}
