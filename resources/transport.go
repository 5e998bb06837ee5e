package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/arcenciel/creche-api/shared"
	"github.com/arcenciel/creche-api/store"

	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

var (
	ErrBadRouting = errors.New("inconsistent mapping between route and handler (programmer error)")
)

// ValidationError carries the offending field names back to the client.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// HandlerFactory builds the five conventional CRUD handlers for one resource
// out of its Service and field validator.
type HandlerFactory struct {
	Service  *Service
	Validate Validator
}

func (h *HandlerFactory) List(opts []kithttp.ServerOption) *kithttp.Server {
	return kithttp.NewServer(
		makeListEndpoint(h.Service),
		ignorePayload,
		shared.EncodeResponse200,
		opts...,
	)
}

func (h *HandlerFactory) Get(opts []kithttp.ServerOption) *kithttp.Server {
	return kithttp.NewServer(
		makeGetEndpoint(h.Service),
		decodeIdRequest,
		shared.EncodeResponse200,
		opts...,
	)
}

func (h *HandlerFactory) Add(opts []kithttp.ServerOption) *kithttp.Server {
	return kithttp.NewServer(
		makeAddEndpoint(h.Service, h.Validate),
		decodeRecordRequest,
		shared.EncodeResponse201,
		opts...,
	)
}

func (h *HandlerFactory) Update(opts []kithttp.ServerOption) *kithttp.Server {
	return kithttp.NewServer(
		makeUpdateEndpoint(h.Service, h.Validate),
		decodeUpdateRequest,
		shared.EncodeResponse200,
		opts...,
	)
}

func (h *HandlerFactory) Delete(opts []kithttp.ServerOption) *kithttp.Server {
	return kithttp.NewServer(
		makeDeleteEndpoint(h.Service),
		decodeIdRequest,
		shared.EncodeResponse204,
		opts...,
	)
}

// Register binds the factory's handlers onto the conventional verb/path
// pairs under /<name>.
func Register(router *mux.Router, name string, h *HandlerFactory, guard func(http.Handler) http.Handler, opts []kithttp.ServerOption) {
	router.Handle("/"+name, guard(h.List(opts))).Methods(http.MethodGet)
	router.Handle("/"+name, guard(h.Add(opts))).Methods(http.MethodPost)
	router.Handle("/"+name+"/{id}", guard(h.Get(opts))).Methods(http.MethodGet)
	router.Handle("/"+name+"/{id}", guard(h.Update(opts))).Methods(http.MethodPut)
	router.Handle("/"+name+"/{id}", guard(h.Delete(opts))).Methods(http.MethodDelete)
}

func makeListEndpoint(svc *Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return svc.GetAll(ctx), nil
	}
}

func makeGetEndpoint(svc *Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id := request.(string)
		record, err := svc.GetById(ctx, id)
		if err != nil {
			return nil, err
		}
		return record, nil
	}
}

func makeAddEndpoint(svc *Service, validate Validator) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		payload := request.(store.Record)
		if fields := validate(payload); len(fields) > 0 {
			return nil, &ValidationError{Fields: fields}
		}
		record, err := svc.Create(ctx, payload)
		if err != nil {
			return nil, err
		}
		return record, nil
	}
}

func makeUpdateEndpoint(svc *Service, validate Validator) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(updateRequest)

		// A partial update is validated as if already applied, otherwise a
		// client could clear a required field by omitting it from the patch.
		merged := req.Payload
		existing, err := svc.GetById(ctx, req.Id)
		if err == nil {
			merged = existing.Clone()
			for k, v := range req.Payload {
				merged[k] = v
			}
		} else if errors.Cause(err) != store.ErrRecordNotFound {
			return nil, err
		}

		if fields := validate(merged); len(fields) > 0 {
			return nil, &ValidationError{Fields: fields}
		}

		record, err := svc.Update(ctx, req.Id, req.Payload)
		if err != nil {
			return nil, err
		}
		return record, nil
	}
}

func makeDeleteEndpoint(svc *Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id := request.(string)
		if err := svc.Remove(ctx, id); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

type updateRequest struct {
	Id      string
	Payload store.Record
}

func decodeRecordRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var payload store.Record
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func decodeIdRequest(_ context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	id, ok := vars["id"]
	if !ok {
		return nil, ErrBadRouting
	}
	return id, nil
}

func decodeUpdateRequest(_ context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	id, ok := vars["id"]
	if !ok {
		return nil, ErrBadRouting
	}
	var payload store.Record
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return updateRequest{Id: id, Payload: payload}, nil
}

func ignorePayload(_ context.Context, r *http.Request) (interface{}, error) {
	return nil, nil
}

// EncodeError translates domain outcomes to transport responses. Validation
// failures list the offending fields, missing records stay a generic 404,
// everything else is withheld behind the generic 500 body.
func EncodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	cause := errors.Cause(err)

	if validation, ok := cause.(*ValidationError); ok {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(shared.Message{
			Message: "Invalid data",
			Fields:  validation.Fields,
		})
		return
	}

	switch cause {
	case store.ErrRecordNotFound:
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(shared.NewMessage("Resource not found"))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(shared.ServerError)
	}
}
