package searchapi

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/dekarrin/primrec/internal/bijection"
	"github.com/dekarrin/primrec/internal/interp"
	"github.com/dekarrin/primrec/internal/jobstore"
	"github.com/dekarrin/primrec/internal/lang"
	"github.com/dekarrin/primrec/internal/search"
	"github.com/dekarrin/primrec/internal/version"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func parseJSON(req *http.Request, v interface{}) error {
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer req.Body.Close()

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed JSON in request: %w", err)
	}
	return nil
}

type loginRequest struct {
	Secret string `json:"secret"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (a API) epLogin(req *http.Request) result {
	var body loginRequest
	if err := parseJSON(req, &body); err != nil {
		return badRequest(err.Error())
	}
	if body.Secret != string(a.Secret) {
		return unauthorized("secret did not match configured token secret")
	}

	tok, err := generateToken(a.Secret)
	if err != nil {
		return internalServerError("generate token: " + err.Error())
	}
	return created(loginResponse{Token: tok}, "operator logged in")
}

type infoResponse struct {
	Version           string `json:"version"`
	DefaultScanRange  int    `json:"defaultScanRange"`
	DefaultStepBudget int    `json:"defaultStepBudget"`
}

func (a API) epInfo(req *http.Request) result {
	return ok(infoResponse{
		Version:           version.Current,
		DefaultScanRange:  a.DefaultScanRange,
		DefaultStepBudget: a.DefaultStepBudget,
	}, "info")
}

type createJobRequest struct {
	Size       int `json:"size"`
	ScanRange  int `json:"scanRange"`
	StepBudget int `json:"stepBudget"`
}

type jobResponse struct {
	ID            string   `json:"id"`
	Size          int      `json:"size"`
	ScanRange     int      `json:"scanRange"`
	StepBudget    int      `json:"stepBudget"`
	Status        string   `json:"status"`
	Best          int      `json:"best"`
	Winners       []string `json:"winners"`
	OverflowCount int      `json:"overflowCount"`
	FailureReason string   `json:"failureReason,omitempty"`
}

func toJobResponse(j jobstore.Job) jobResponse {
	return jobResponse{
		ID:            j.ID.String(),
		Size:          j.Size,
		ScanRange:     j.ScanRange,
		StepBudget:    j.StepBudget,
		Status:        string(j.Status),
		Best:          j.Best,
		Winners:       j.Winners,
		OverflowCount: j.OverflowCount,
		FailureReason: j.FailureReason,
	}
}

// epCreateJob runs a Busy-Beaver sweep synchronously (spec §4.H) and
// persists the result. A real queue-backed driver would return
// StatusPending immediately; this reference implementation favors a simple
// request/response cycle, noted as an Open Question resolution in
// DESIGN.md.
func (a API) epCreateJob(req *http.Request) result {
	var body createJobRequest
	if err := parseJSON(req, &body); err != nil {
		return badRequest(err.Error())
	}
	if body.Size < 1 {
		return badRequest("size must be positive")
	}

	scanRange := body.ScanRange
	if scanRange == 0 {
		scanRange = a.DefaultScanRange
	}
	stepBudget := body.StepBudget
	if stepBudget == 0 {
		stepBudget = a.DefaultStepBudget
	}

	sweep := search.Run(body.Size, search.Options{ScanRange: scanRange, StepBudget: stepBudget})

	winners := make([]string, len(sweep.Winners))
	for i, w := range sweep.Winners {
		winners[i] = lang.Print(w)
	}

	status := jobstore.StatusCompleted
	if sweep.Best < 0 && len(sweep.Overflow) > 0 {
		status = jobstore.StatusFailed
	}

	job := jobstore.Job{
		Size:          body.Size,
		ScanRange:     scanRange,
		StepBudget:    stepBudget,
		Status:        status,
		Best:          sweep.Best,
		Winners:       winners,
		OverflowCount: len(sweep.Overflow),
	}

	saved, err := a.Jobs.Create(req.Context(), job)
	if err != nil {
		return internalServerError("save job: " + err.Error())
	}

	return created(toJobResponse(saved), fmt.Sprintf("job %s completed", saved.ID))
}

func (a API) epGetJob(req *http.Request) result {
	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		return badRequest("invalid job id")
	}

	job, err := a.Jobs.GetByID(req.Context(), id)
	if err != nil {
		if err == jobstore.ErrNotFound {
			return notFound("job not found")
		}
		return internalServerError(err.Error())
	}

	return ok(toJobResponse(job), "job "+id.String())
}

func (a API) epListJobs(req *http.Request) result {
	jobs, err := a.Jobs.GetAll(req.Context())
	if err != nil {
		return internalServerError(err.Error())
	}

	out := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		out[i] = toJobResponse(j)
	}
	return ok(out, "listed jobs")
}

type createFromIndexRequest struct {
	Arity int    `json:"arity"`
	Index string `json:"index"`
}

type programResponse struct {
	Program string `json:"program"`
	Tree    string `json:"tree"`
}

func (a API) epBijectionCreate(req *http.Request) result {
	var body createFromIndexRequest
	if err := parseJSON(req, &body); err != nil {
		return badRequest(err.Error())
	}

	n, ok := new(big.Int).SetString(body.Index, 10)
	if !ok {
		return badRequest("index must be a base-10 non-negative integer")
	}

	tree, err := bijection.Create(body.Arity, n)
	if err != nil {
		return badRequest(err.Error())
	}

	return ok(programResponse{Program: lang.Print(tree), Tree: lang.Display(tree)}, "created from index")
}

type hashRequest struct {
	Program string `json:"program"`
}

type hashResponse struct {
	Arity int    `json:"arity"`
	Index string `json:"index"`
}

func (a API) epBijectionHash(req *http.Request) result {
	var body hashRequest
	if err := parseJSON(req, &body); err != nil {
		return badRequest(err.Error())
	}

	tree, err := lang.Parse(body.Program)
	if err != nil {
		return badRequest(err.Error())
	}

	arity, index := bijection.Hash(tree)
	return ok(hashResponse{Arity: arity, Index: index.String()}, "hashed program")
}

type evalRequest struct {
	Program    string   `json:"program"`
	Inputs     []string `json:"inputs"`
	StepBudget int      `json:"stepBudget"`
}

type evalResponse struct {
	Steps    int    `json:"steps"`
	Value    string `json:"value,omitempty"`
	Overflow bool   `json:"overflow"`
}

func (a API) epEval(req *http.Request) result {
	var body evalRequest
	if err := parseJSON(req, &body); err != nil {
		return badRequest(err.Error())
	}

	tree, err := lang.Parse(body.Program)
	if err != nil {
		return badRequest(err.Error())
	}

	inputs := make([]*big.Int, len(body.Inputs))
	for i, s := range body.Inputs {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return badRequest(fmt.Sprintf("input %d is not a base-10 non-negative integer", i))
		}
		inputs[i] = v
	}

	budget := body.StepBudget
	if budget == 0 {
		budget = a.DefaultStepBudget
	}

	result, err := interp.Run(tree, inputs, interp.Options{Budget: budget})
	if err != nil {
		return badRequest(err.Error())
	}
	if result.Overflow {
		return ok(evalResponse{Steps: result.Steps, Overflow: true}, "step budget exceeded")
	}

	return ok(evalResponse{Steps: result.Steps, Value: result.Value.String()}, "evaluated")
}
