package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rahulmehta/fieldcrm-backend/api/controllers"
	"github.com/rahulmehta/fieldcrm-backend/api/middleware"
	"github.com/rahulmehta/fieldcrm-backend/internal/accounts"
	"github.com/rahulmehta/fieldcrm-backend/internal/auth"
	"github.com/rahulmehta/fieldcrm-backend/internal/employees"
	"github.com/rahulmehta/fieldcrm-backend/internal/expenses"
	"github.com/rahulmehta/fieldcrm-backend/internal/locations"
	"github.com/rahulmehta/fieldcrm-backend/internal/masters"
	"github.com/rahulmehta/fieldcrm-backend/internal/salaries"
	"github.com/rahulmehta/fieldcrm-backend/internal/territory"
	"github.com/rahulmehta/fieldcrm-backend/pkg/config"
	"github.com/rahulmehta/fieldcrm-backend/pkg/db"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
	redisclient "github.com/rahulmehta/fieldcrm-backend/pkg/redis"
)

type Services struct {
	Auth      auth.Service
	Employees employees.Service
	Masters   masters.Service
	Locations locations.Service
	Accounts  accounts.Service
	Salaries  salaries.Service
	Expenses  expenses.Service
	Territory territory.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database *db.Client,
	redisClient *redisclient.Client,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App),
		middleware.Logging(logg),
	)

	otpPolicy := middleware.NewAuthRateLimitPolicy(
		"otp",
		cfg.AuthRate.OTPWindow,
		cfg.AuthRate.OTPIPLimit,
		cfg.AuthRate.OTPPhoneLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, database, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.AuthRateLimit(otpPolicy, redisClient, logg))
		r.Post("/send-otp", controllers.SendOTP(svcs.Auth, logg))
		r.Post("/verify-otp", controllers.VerifyOTP(svcs.Auth, logg))
		r.Post("/complete-signup", controllers.CompleteSignup(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/auth/profile", controllers.Profile(svcs.Auth, logg))

		r.Route("/task-assignments", func(r chi.Router) {
			r.Get("/salesmen", controllers.ListSalesmen(svcs.Territory, logg))
			r.Get("/location/pincode/{pincode}", controllers.GetLocationByPincode(svcs.Territory, logg))
			r.Post("/assignments/areas", controllers.AssignAreas(svcs.Territory, logg))
			r.Get("/assignments/salesman/{salesmanId}", controllers.ListAssignmentsBySalesman(svcs.Territory, logg))
			r.Patch("/assignments/{assignmentId}", controllers.UpdateAssignment(svcs.Territory, logg))
			r.Delete("/assignments/{assignmentId}", controllers.DeleteAssignment(svcs.Territory, logg))
			r.Post("/businesses/search", controllers.SearchBusinesses(svcs.Territory, logg))
			r.Post("/shops", controllers.SaveShops(svcs.Territory, logg))
			r.Get("/shops/salesman/{salesmanId}", controllers.ListShopsBySalesman(svcs.Territory, logg))
			r.Get("/shops/pincode/{pincode}", controllers.ListShopsByPincode(svcs.Territory, logg))
			r.Patch("/shops/{shopId}/stage", controllers.UpdateShopStage(svcs.Territory, logg))
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", controllers.ListAccounts(svcs.Accounts, logg))
			r.Post("/", controllers.CreateAccount(svcs.Accounts, logg))
			r.Get("/stats", controllers.AccountStats(svcs.Accounts, logg))
			r.Post("/bulk-assign", controllers.BulkAssignAccounts(svcs.Accounts, logg))
			r.Get("/{accountId}", controllers.GetAccount(svcs.Accounts, logg))
			r.Put("/{accountId}", controllers.UpdateAccount(svcs.Accounts, logg))
			r.Delete("/{accountId}", controllers.DeleteAccount(svcs.Accounts, logg))
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", controllers.ListEmployees(svcs.Employees, logg))
			r.Post("/", controllers.CreateEmployee(svcs.Employees, logg))
			r.Get("/{employeeId}", controllers.GetEmployee(svcs.Employees, logg))
			r.Put("/{employeeId}", controllers.UpdateEmployee(svcs.Employees, logg))
			r.Delete("/{employeeId}", controllers.DeleteEmployee(svcs.Employees, logg))
		})

		r.Route("/masters", func(r chi.Router) {
			r.Get("/departments", controllers.ListDepartments(svcs.Masters, logg))
			r.Get("/functional-roles", controllers.ListFunctionalRoles(svcs.Masters, logg))
		})

		r.Route("/roles", func(r chi.Router) {
			r.Get("/", controllers.ListFunctionalRoles(svcs.Masters, logg))
			r.Post("/", controllers.CreateFunctionalRole(svcs.Masters, logg))
			r.Get("/{roleId}", controllers.GetFunctionalRole(svcs.Masters, logg))
			r.Put("/{roleId}", controllers.UpdateFunctionalRole(svcs.Masters, logg))
			r.Delete("/{roleId}", controllers.DeleteFunctionalRole(svcs.Masters, logg))
		})

		r.Route("/locations", func(r chi.Router) {
			r.Route("/countries", func(r chi.Router) {
				r.Get("/", controllers.ListCountries(svcs.Locations, logg))
				r.Post("/", controllers.CreateCountry(svcs.Locations, logg))
				r.Put("/{countryId}", controllers.UpdateCountry(svcs.Locations, logg))
				r.Delete("/{countryId}", controllers.DeleteCountry(svcs.Locations, logg))
			})
			r.Route("/states", func(r chi.Router) {
				r.Get("/", controllers.ListStates(svcs.Locations, logg))
				r.Post("/", controllers.CreateState(svcs.Locations, logg))
				r.Put("/{stateId}", controllers.UpdateState(svcs.Locations, logg))
				r.Delete("/{stateId}", controllers.DeleteState(svcs.Locations, logg))
			})
			r.Route("/districts", func(r chi.Router) {
				r.Get("/", controllers.ListDistricts(svcs.Locations, logg))
				r.Post("/", controllers.CreateDistrict(svcs.Locations, logg))
				r.Put("/{districtId}", controllers.UpdateDistrict(svcs.Locations, logg))
				r.Delete("/{districtId}", controllers.DeleteDistrict(svcs.Locations, logg))
			})
			r.Route("/cities", func(r chi.Router) {
				r.Get("/", controllers.ListCities(svcs.Locations, logg))
				r.Post("/", controllers.CreateCity(svcs.Locations, logg))
				r.Put("/{cityId}", controllers.UpdateCity(svcs.Locations, logg))
				r.Delete("/{cityId}", controllers.DeleteCity(svcs.Locations, logg))
			})
			r.Route("/zones", func(r chi.Router) {
				r.Get("/", controllers.ListZones(svcs.Locations, logg))
				r.Post("/", controllers.CreateZone(svcs.Locations, logg))
				r.Put("/{zoneId}", controllers.UpdateZone(svcs.Locations, logg))
				r.Delete("/{zoneId}", controllers.DeleteZone(svcs.Locations, logg))
			})
			r.Route("/areas", func(r chi.Router) {
				r.Get("/", controllers.ListAreas(svcs.Locations, logg))
				r.Post("/", controllers.CreateArea(svcs.Locations, logg))
				r.Put("/{areaId}", controllers.UpdateArea(svcs.Locations, logg))
				r.Delete("/{areaId}", controllers.DeleteArea(svcs.Locations, logg))
			})
		})

		r.Route("/salaries", func(r chi.Router) {
			r.Get("/", controllers.ListSalaries(svcs.Salaries, logg))
			r.Post("/", controllers.SaveSalary(svcs.Salaries, logg))
			r.Get("/statistics", controllers.SalaryStatistics(svcs.Salaries, logg))
			r.Get("/employee/{employeeId}", controllers.GetSalaryByEmployee(svcs.Salaries, logg))
			r.Delete("/employee/{employeeId}", controllers.DeleteSalary(svcs.Salaries, logg))
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", controllers.ListExpenses(svcs.Expenses, logg))
			r.Post("/", controllers.CreateExpense(svcs.Expenses, logg))
			r.Get("/my", controllers.MyExpenses(svcs.Expenses, logg))
			r.Get("/statistics", controllers.ExpenseStatistics(svcs.Expenses, logg))
			r.Get("/{expenseId}", controllers.GetExpense(svcs.Expenses, logg))
			r.Put("/{expenseId}", controllers.UpdateExpense(svcs.Expenses, logg))
			r.Delete("/{expenseId}", controllers.DeleteExpense(svcs.Expenses, logg))
			r.Patch("/{expenseId}/status", controllers.UpdateExpenseStatus(svcs.Expenses, logg))
		})
	})

	return r
}
