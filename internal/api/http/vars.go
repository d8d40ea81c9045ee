package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
