package handler

import (
	"net/http"

	"tokentrip-marketplace/response"
)

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}
