package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/ProfileGo/internal/auth"
	"github.com/utafrali/ProfileGo/internal/service"
	"github.com/utafrali/ProfileGo/pkg/health"
	"github.com/utafrali/ProfileGo/pkg/middleware"
)

// Services bundles the service layer dependencies of the router.
type Services struct {
	Customers    *service.CustomerService
	Users        *service.UserDetailsService
	Roles        *service.RoleService
	Addresses    *service.AddressService
	Phones       *service.CustomerPhoneService
	Payments     *service.CustomerPaymentService
	Countries    *service.CountryService
	Subdivisions *service.CountrySubdivisionService
	Questions    *service.ChallengeQuestionService
}

// NewRouter creates a chi router with all profile service routes registered.
func NewRouter(
	services Services,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig CORSConfig,
	resetPasswordURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("profile"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Token validator that bridges to our internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			CustomerID:  claims.CustomerID,
			Username:    claims.Username,
			Authorities: claims.Authorities,
		}, nil
	}

	authHandler := NewAuthHandler(services.Customers, services.Users, jwtManager, resetPasswordURL, logger)
	customerHandler := NewCustomerHandler(services.Customers, services.Roles)
	addressHandler := NewAddressHandler(services.Addresses)
	phoneHandler := NewPhoneHandler(services.Phones)
	paymentHandler := NewPaymentHandler(services.Payments)
	referenceHandler := NewReferenceHandler(services.Countries, services.Subdivisions, services.Questions)

	// Auth endpoints
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/forgot-username", authHandler.ForgotUsername)
		r.Post("/reset-password", authHandler.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))
			r.Post("/change-password", authHandler.ChangePassword)
		})
	})

	// Customer profile, address, phone, and payment endpoints (auth required)
	r.Route("/api/v1/customers", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))

		r.Get("/me", customerHandler.GetProfile)
		r.Put("/me", customerHandler.UpdateProfile)
		r.Delete("/me", customerHandler.DeleteProfile)
		r.Get("/me/roles", customerHandler.ListRoles)

		r.Get("/me/addresses", addressHandler.ListAddresses)
		r.Post("/me/addresses", addressHandler.CreateAddress)
		r.Put("/me/addresses/{id}", addressHandler.UpdateAddress)
		r.Post("/me/addresses/{id}/default", addressHandler.MakeDefault)
		r.Delete("/me/addresses/{id}", addressHandler.DeleteAddress)

		r.Get("/me/phones", phoneHandler.ListPhones)
		r.Post("/me/phones", phoneHandler.CreatePhone)
		r.Put("/me/phones/{id}", phoneHandler.UpdatePhone)
		r.Post("/me/phones/{id}/default", phoneHandler.MakeDefault)
		r.Delete("/me/phones/{id}", phoneHandler.DeletePhone)

		r.Get("/me/payments", paymentHandler.ListPayments)
		r.Post("/me/payments", paymentHandler.CreatePayment)
		r.Get("/me/payments/default", paymentHandler.GetDefaultPayment)
		r.Post("/me/payments/{id}/default", paymentHandler.MakeDefault)
		r.Delete("/me/payments/{id}", paymentHandler.DeletePayment)

		// Admin-only customer listing
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuthority("ROLE_ADMIN"))
			r.Get("/", customerHandler.ListCustomers)
		})
	})

	// Reference data endpoints (public, read-only)
	r.Get("/api/v1/countries", referenceHandler.ListCountries)
	r.Get("/api/v1/countries/{abbreviation}", referenceHandler.GetCountry)
	r.Get("/api/v1/countries/{abbreviation}/subdivisions", referenceHandler.ListSubdivisions)
	r.Get("/api/v1/subdivisions/{abbreviation}", referenceHandler.GetSubdivision)
	r.Get("/api/v1/challenge-questions", referenceHandler.ListChallengeQuestions)

	return r
}
