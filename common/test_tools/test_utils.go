package testtools

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/evstaffing/invoice-service/common"
)

// Caller is the identity AuthUser would have put on the context.
type Caller struct {
	Email string
	Admin bool
}

// GenerateCtxWithJSONAndParams builds a POST test context carrying data as its JSON body.
func GenerateCtxWithJSONAndParams(t *testing.T, data interface{}, params []gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Params = params
	ctx.Request = httptest.NewRequest(http.MethodPost, "http://localhost:8080", nil)
	ctx.Request.Header.Set("Content-Type", "application/json")

	if data != nil {
		jsonbytes, err := json.Marshal(data)
		if err != nil {
			t.Fatal(err)
		}

		ctx.Request.Body = io.NopCloser(bytes.NewReader(jsonbytes))
	}

	return ctx, recorder
}

// GenerateCtxWithCaller is GenerateCtxWithJSONAndParams for an authenticated user.
func GenerateCtxWithCaller(t *testing.T, caller Caller, data interface{}, params []gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	ctx, recorder := GenerateCtxWithJSONAndParams(t, data, params)
	ctx.Set(common.CtxKeys.Email, caller.Email)
	ctx.Set(common.CtxKeys.Admin, caller.Admin)

	return ctx, recorder
}
