package searchapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/primrec/internal/jobstore/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAPI() API {
	return API{
		Jobs:              inmem.New(),
		Secret:            []byte("test-secret-at-least-32-bytes-long!"),
		DefaultScanRange:  10,
		DefaultStepBudget: 1000,
	}
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func Test_Info_noAuthRequired(t *testing.T) {
	api := testAPI()
	rec := doRequest(t, api.Router(), http.MethodGet, "/info", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func Test_CreateJob_requiresAuth(t *testing.T) {
	api := testAPI()
	rec := doRequest(t, api.Router(), http.MethodPost, "/jobs", createJobRequest{Size: 2}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_Login_then_CreateJob(t *testing.T) {
	api := testAPI()
	router := api.Router()

	loginRec := doRequest(t, router, http.MethodPost, "/login", loginRequest{Secret: string(api.Secret)}, "")
	require.Equal(t, http.StatusCreated, loginRec.Code)

	var loginBody loginResponse
	require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &loginBody))
	require.NotEmpty(t, loginBody.Token)

	createRec := doRequest(t, router, http.MethodPost, "/jobs", createJobRequest{Size: 2}, loginBody.Token)
	require.Equal(t, http.StatusCreated, createRec.Code)

	var job jobResponse
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &job))
	assert.Equal(t, "completed", job.Status)

	getRec := doRequest(t, router, http.MethodGet, "/jobs/"+job.ID, nil, "")
	assert.Equal(t, http.StatusOK, getRec.Code)
}

func Test_BijectionRoundTrip_throughAPI(t *testing.T) {
	api := testAPI()
	router := api.Router()

	loginRec := doRequest(t, router, http.MethodPost, "/login", loginRequest{Secret: string(api.Secret)}, "")
	var loginBody loginResponse
	require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &loginBody))

	createRec := doRequest(t, router, http.MethodPost, "/bijection/create", createFromIndexRequest{Arity: 1, Index: "0"}, loginBody.Token)
	require.Equal(t, http.StatusOK, createRec.Code)

	var progBody programResponse
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &progBody))
	assert.Equal(t, "I", progBody.Program)

	hashRec := doRequest(t, router, http.MethodPost, "/bijection/hash", hashRequest{Program: progBody.Program}, loginBody.Token)
	require.Equal(t, http.StatusOK, hashRec.Code)

	var hashBody hashResponse
	require.NoError(t, json.Unmarshal(hashRec.Body.Bytes(), &hashBody))
	assert.Equal(t, 1, hashBody.Arity)
	assert.Equal(t, "0", hashBody.Index)
}

func Test_Eval_throughAPI(t *testing.T) {
	api := testAPI()
	router := api.Router()

	loginRec := doRequest(t, router, http.MethodPost, "/login", loginRequest{Secret: string(api.Secret)}, "")
	var loginBody loginResponse
	require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &loginBody))

	rec := doRequest(t, router, http.MethodPost, "/eval", evalRequest{Program: "oSS", Inputs: []string{"3"}}, loginBody.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var body evalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "5", body.Value)
	assert.False(t, body.Overflow)
}

func Test_Eval_badProgram_isBadRequest(t *testing.T) {
	api := testAPI()
	router := api.Router()

	loginRec := doRequest(t, router, http.MethodPost, "/login", loginRequest{Secret: string(api.Secret)}, "")
	var loginBody loginResponse
	require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &loginBody))

	rec := doRequest(t, router, http.MethodPost, "/eval", evalRequest{Program: "not a program", Inputs: []string{"1"}}, loginBody.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
