package util

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"goalsapp/internal/core/model/request"
)

func newContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest(http.MethodPut, "/goals/1", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	return c
}

func TestParamsToMap(t *testing.T) {
	t.Run("should treat an empty body as an empty object", func(t *testing.T) {
		params, err := ParamsToMap[request.GoalRequest](newContext(""))

		assert.NoError(t, err)
		assert.False(t, params.HasAnyField())
	})

	t.Run("should fail on malformed json", func(t *testing.T) {
		_, err := ParamsToMap[request.GoalRequest](newContext("{"))

		assert.Error(t, err)
	})

	t.Run("should bind present keys", func(t *testing.T) {
		params, err := ParamsToMap[request.GoalRequest](newContext(`{"name": "Run"}`))

		assert.NoError(t, err)
		assert.Equal(t, "Run", params.Name.Value)
	})
}

func TestParamID(t *testing.T) {
	c := newContext("")
	c.Params = gin.Params{{Key: "id", Value: "12"}}

	id, err := ParamID(c, "id")
	assert.NoError(t, err)
	assert.Equal(t, int64(12), id)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, err = ParamID(c, "id")
	assert.Error(t, err)

	c.Params = gin.Params{{Key: "id", Value: "0"}}
	_, err = ParamID(c, "id")
	assert.Error(t, err)
}
