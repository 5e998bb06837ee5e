package planning_test

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/arcenciel/creche-api/authentication"
	. "github.com/arcenciel/creche-api/planning"
	"github.com/arcenciel/creche-api/resources"
	"github.com/arcenciel/creche-api/shared"
	"github.com/arcenciel/creche-api/store"

	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Stats transport", func() {

	var (
		dir      string
		router   *mux.Router
		recorder *httptest.ResponseRecorder
		registry *resources.Registry

		// wednesday 2024-01-10
		now = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	)

	var get = func(endpoint string) {
		recorder = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, endpoint, nil)
		req.Header.Set("Authorization", "Bearer test-token")
		router.ServeHTTP(recorder, req)
	}

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "creche-stats")
		Expect(err).NotTo(HaveOccurred())

		logger := shared.NewLogger("test")
		config := &shared.AppConfig{
			DataPath:      dir,
			AdminEmail:    "direction@creche.fr",
			AdminName:     "Directrice",
			AdminPassword: "arcenciel",
			ApiToken:      "test-token",
		}

		registry = resources.NewRegistry(config, logger, &shared.StringGenerator{})
		Expect(registry.InitStores(context.Background())).To(Succeed())

		ctx := context.Background()
		_, err = registry.Staff.Create(ctx, store.Record{
			"name":                "Claire",
			"maxChildrenCapacity": float64(5),
			"schedule": map[string]interface{}{
				"mercredi": map[string]interface{}{"morning": true, "afternoon": false},
			},
		})
		Expect(err).NotTo(HaveOccurred())
		_, err = registry.Children.Create(ctx, store.Record{
			"firstName":         "Sam",
			"attendancePattern": "Lun-Mer-Ven",
		})
		Expect(err).NotTo(HaveOccurred())
		_, err = registry.Children.Create(ctx, store.Record{
			"firstName":         "Lou",
			"attendancePattern": "Mar-Jeu",
		})
		Expect(err).NotTo(HaveOccurred())
		_, err = registry.Activities.Create(ctx, store.Record{
			"name":    "Peinture",
			"weekday": "mercredi",
		})
		Expect(err).NotTo(HaveOccurred())
		_, err = registry.Inventory.Create(ctx, store.Record{
			"id":             "item-1",
			"childId":        "child-1",
			"type":           "lait",
			"expirationDate": "2024-01-08",
		})
		Expect(err).NotTo(HaveOccurred())
		_, err = registry.Inventory.Create(ctx, store.Record{
			"id":             "item-2",
			"childId":        "child-1",
			"type":           "eau",
			"expirationDate": "2024-06-01",
		})
		Expect(err).NotTo(HaveOccurred())

		authenticator := &authentication.Authenticator{
			Config: config,
			Logger: logger,
		}

		opts := []kithttp.ServerOption{
			kithttp.ServerErrorEncoder(resources.EncodeError),
		}

		router = mux.NewRouter()
		apiRouter := router.PathPrefix("/api").Subrouter()
		Register(apiRouter, &HandlerFactory{
			Staff:      registry.Staff,
			Children:   registry.Children,
			Activities: registry.Activities,
			Inventory:  registry.Inventory,
			Now:        func() time.Time { return now },
		}, authenticator.Guard, opts)
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	Context("GET /api/stats/dashboard", func() {

		It("should compute the day snapshot", func() {
			get("/api/stats/dashboard")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`{
				"today": "mercredi",
				"staffPresent": 1,
				"childrenPresent": 1,
				"activitiesToday": 1,
				"expiringItems": 1
			}`))
		})
	})

	Context("GET /api/stats/capacity", func() {

		It("should return the per-day capacity map", func() {
			get("/api/stats/capacity")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`{
				"lundi": 0, "mardi": 0, "mercredi": 5, "jeudi": 0, "vendredi": 0
			}`))
		})
	})

	Context("GET /api/stats/alerts", func() {

		It("should list only items outside the ok band", func() {
			get("/api/stats/alerts")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`[
				{"item": {"id":"item-1","childId":"child-1","type":"lait","expirationDate":"2024-01-08"}, "status": "Expired"}
			]`))
		})
	})

	Context("without the token", func() {

		It("should be guarded like every resource route", func() {
			recorder = httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/stats/dashboard", nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Context("registry startup", func() {

		It("should fail fast when a data file is corrupt", func() {
			Expect(ioutil.WriteFile(filepath.Join(dir, "staff.json"), []byte(`{broken`), 0644)).To(Succeed())

			fresh := resources.NewRegistry(&shared.AppConfig{DataPath: dir}, shared.NewLogger("test"), &shared.StringGenerator{})
			Expect(fresh.InitStores(context.Background())).NotTo(Succeed())
		})
	})
})
