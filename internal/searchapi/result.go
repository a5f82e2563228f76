package searchapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// result is an endpoint's prepared HTTP response, grounded on
// server/response.go's jsonOK/jsonErr pair: a status code, a JSON body for
// success, and separate user-facing/internal messages for logging on
// failure.
type result struct {
	status      int
	body        interface{}
	userMsg     string
	internalMsg string
	isErr       bool
}

func ok(body interface{}, internalMsg string) result {
	return result{status: http.StatusOK, body: body, internalMsg: internalMsg}
}

func created(body interface{}, internalMsg string) result {
	return result{status: http.StatusCreated, body: body, internalMsg: internalMsg}
}

func errResult(status int, userMsg string, internalMsg string) result {
	return result{status: status, userMsg: userMsg, internalMsg: internalMsg, isErr: true}
}

func badRequest(userMsg string) result {
	return errResult(http.StatusBadRequest, userMsg, userMsg)
}

func notFound(userMsg string) result {
	return errResult(http.StatusNotFound, userMsg, userMsg)
}

func unauthorized(internalMsg string) result {
	return errResult(http.StatusUnauthorized, "authorization required", internalMsg)
}

func internalServerError(internalMsg string) result {
	return errResult(http.StatusInternalServerError, "an internal server error occurred", internalMsg)
}

type errorBody struct {
	Error string `json:"error"`
}

func (r result) writeResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")

	payload := r.body
	if r.isErr {
		payload = errorBody{Error: r.userMsg}
	}
	if payload == nil {
		w.WriteHeader(r.status)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `{"error":"could not marshal response"}`)
		return
	}

	w.WriteHeader(r.status)
	w.Write(data)
}
