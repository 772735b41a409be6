package api_test

import (
	"context"
	"net/http"

	"github.com/gigboard/gigboard/api"
)

func contextWithUser(r *http.Request, id int64) context.Context {
	return context.WithValue(r.Context(), api.CtxUserID, id)
}
