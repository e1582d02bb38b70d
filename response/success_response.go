package response

import (
	"encoding/json"
	"net/http"
)

type SuccessResponse struct {
	Data       interface{} `json:"data"`
	StatusCode int         `json:"-"`
}

func (r SuccessResponse) Send(w http.ResponseWriter) {
	w.WriteHeader(r.StatusCode)
	json.NewEncoder(w).Encode(r)
}

func OK(w http.ResponseWriter, data interface{}) {
	SuccessResponse{Data: data, StatusCode: http.StatusOK}.Send(w)
}
