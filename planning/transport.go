package planning

import (
	"context"
	"net/http"
	"time"

	"github.com/arcenciel/creche-api/shared"
	"github.com/arcenciel/creche-api/store"

	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
)

// Lister is the read-only slice of a resource service the stats need.
type Lister interface {
	GetAll(ctx context.Context) []store.Record
}

// HandlerFactory serves the day's snapshot the way the dashboard renders it,
// computed server-side over the live stores.
type HandlerFactory struct {
	Staff      Lister
	Children   Lister
	Activities Lister
	Inventory  Lister

	// Now is swappable so tests can pin the clock.
	Now func() time.Time
}

type dashboardResponse struct {
	Today           string `json:"today"`
	StaffPresent    int    `json:"staffPresent"`
	ChildrenPresent int    `json:"childrenPresent"`
	ActivitiesToday int    `json:"activitiesToday"`
	ExpiringItems   int    `json:"expiringItems"`
}

type alertItem struct {
	Item   store.Record `json:"item"`
	Status string       `json:"status"`
}

func (h *HandlerFactory) Dashboard(opts []kithttp.ServerOption) *kithttp.Server {
	return kithttp.NewServer(
		h.makeDashboardEndpoint(),
		ignorePayload,
		shared.EncodeResponse200,
		opts...,
	)
}

func (h *HandlerFactory) Capacity(opts []kithttp.ServerOption) *kithttp.Server {
	return kithttp.NewServer(
		h.makeCapacityEndpoint(),
		ignorePayload,
		shared.EncodeResponse200,
		opts...,
	)
}

func (h *HandlerFactory) Alerts(opts []kithttp.ServerOption) *kithttp.Server {
	return kithttp.NewServer(
		h.makeAlertsEndpoint(),
		ignorePayload,
		shared.EncodeResponse200,
		opts...,
	)
}

// Register binds the stats handlers under /stats.
func Register(router *mux.Router, h *HandlerFactory, guard func(http.Handler) http.Handler, opts []kithttp.ServerOption) {
	router.Handle("/stats/dashboard", guard(h.Dashboard(opts))).Methods(http.MethodGet)
	router.Handle("/stats/capacity", guard(h.Capacity(opts))).Methods(http.MethodGet)
	router.Handle("/stats/alerts", guard(h.Alerts(opts))).Methods(http.MethodGet)
}

func (h *HandlerFactory) makeDashboardEndpoint() endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		now := h.now()
		today := TodayKey(now)

		staffPresent := 0
		for _, member := range h.Staff.GetAll(ctx) {
			if IsStaffPresent(member, today) {
				staffPresent++
			}
		}

		childrenPresent := 0
		for _, child := range h.Children.GetAll(ctx) {
			if IsChildPresent(child, today) {
				childrenPresent++
			}
		}

		activitiesToday := 0
		for _, activity := range h.Activities.GetAll(ctx) {
			if weekday, _ := activity["weekday"].(string); weekday == today {
				activitiesToday++
			}
		}

		expiringItems := 0
		for _, item := range h.Inventory.GetAll(ctx) {
			expirationDate, _ := item["expirationDate"].(string)
			if ExpirationStatus(expirationDate, now) != StatusOk {
				expiringItems++
			}
		}

		return dashboardResponse{
			Today:           today,
			StaffPresent:    staffPresent,
			ChildrenPresent: childrenPresent,
			ActivitiesToday: activitiesToday,
			ExpiringItems:   expiringItems,
		}, nil
	}
}

func (h *HandlerFactory) makeCapacityEndpoint() endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return DailyCapacity(h.Staff.GetAll(ctx)), nil
	}
}

func (h *HandlerFactory) makeAlertsEndpoint() endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		now := h.now()
		alerts := []alertItem{}
		for _, item := range h.Inventory.GetAll(ctx) {
			expirationDate, _ := item["expirationDate"].(string)
			if status := ExpirationStatus(expirationDate, now); status != StatusOk {
				alerts = append(alerts, alertItem{Item: item, Status: status})
			}
		}
		return alerts, nil
	}
}

func (h *HandlerFactory) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func ignorePayload(_ context.Context, r *http.Request) (interface{}, error) {
	return nil, nil
}
