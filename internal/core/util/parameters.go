package util

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamsToMap binds the JSON body into T. An empty body binds as {}.
func ParamsToMap[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
		return params, err
	}

	return params, nil
}

// ParamID reads a positive integer path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}

	return id, nil
}
