package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{AuthenticationRequired, http.StatusUnauthorized},
		{AuthorizationDenied, http.StatusUnauthorized},
		{NotFound, http.StatusBadRequest},
		{PageNotFound, http.StatusNotFound},
		{ValidationFailed, http.StatusUnprocessableEntity},
		{PreconditionFailed, http.StatusUnprocessableEntity},
		{Internal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, New(tc.kind, "x").HTTPStatus())
	}
}

func TestFromUnwrapsWrappedError(t *testing.T) {
	inner := New(NotFound, "项目不存在。")
	wrapped := fmt.Errorf("查询失败: %w", inner)

	got := From(wrapped)
	require.Equal(t, NotFound, got.Kind)
	require.Equal(t, "项目不存在。", got.Message)
}

func TestFromNormalizesUnknownError(t *testing.T) {
	got := From(errors.New("boom"))
	require.Equal(t, Internal, got.Kind)
	// 内部错误细节不透出
	require.NotContains(t, got.Message, "boom")
}

func TestWithData(t *testing.T) {
	err := New(ValidationFailed, "邮箱已被注册。").
		WithData([]map[string]string{{"field": "email"}})
	require.NotNil(t, err.Data)
	require.Equal(t, "邮箱已被注册。", err.Error())
}
