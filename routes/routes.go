package routes

import (
	"time"

	"salonhub-backend/config"
	"salonhub-backend/controllers"
	"salonhub-backend/models"
	"salonhub-backend/services"
	"salonhub-backend/settings"
	"salonhub-backend/tenant"
	"salonhub-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	CORSOrigins          []string
	SlowRequestThreshold time.Duration
	Reminders            *services.ReminderService
	Gatherer             prometheus.Gatherer
}

func SetupRouter(deps controllers.Deps, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	origins := map[string]bool{}
	for _, o := range opts.CORSOrigins {
		origins[o] = true
	}
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return origins[origin]
		},
	}))

	r.Use(utils.OptionalAuth(deps.Tokens), tenant.Middleware())
	r.Use(config.PerformanceLogger(deps.Logger, opts.SlowRequestThreshold))

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	authController := &controllers.AuthController{Deps: deps}
	catalogController := &controllers.CatalogController{Deps: deps, Settings: settings.NewStore(deps.DB)}
	serviceController := &controllers.ServiceController{Deps: deps}
	professionalController := &controllers.ProfessionalController{Deps: deps}
	appointmentController := &controllers.AppointmentController{Deps: deps}
	materialController := &controllers.MaterialController{Deps: deps}
	transactionController := &controllers.TransactionController{Deps: deps}
	dashboardController := &controllers.DashboardController{Deps: deps}
	clientController := &controllers.ClientController{Deps: deps}
	salonController := &controllers.SalonController{Deps: deps}
	reminderController := &controllers.ReminderController{Deps: deps, Reminders: opts.Reminders}

	admin := utils.RequireRole(string(models.RoleAdmin))
	staff := utils.RequireRole(string(models.RoleAdmin), string(models.RoleProfessional))

	public := r.Group("/public")
	{
		public.GET("/home", catalogController.GetHome)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/register/client", authController.RegisterClient)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware(deps.Tokens))
		auth.GET("/me", authController.Me)

		profile := auth.Group("/profile")
		{
			profile.GET("", authController.GetProfile)
			profile.PUT("", authController.UpdateProfile)
		}
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(deps.Tokens))
	{
		api.GET("/categories", catalogController.GetCategories)
		api.GET("/catalog", catalogController.GetCatalog)

		settingsGroup := api.Group("/settings", admin)
		{
			settingsGroup.POST("", catalogController.CreateSettings)
			settingsGroup.PUT("", catalogController.UpdateSettings)
		}

		salon := api.Group("/salon", admin)
		{
			salon.GET("", salonController.GetSalon)
			salon.PUT("", salonController.UpdateSalon)
		}

		// Service routes
		servicesGroup := api.Group("/services")
		{
			servicesGroup.GET("", serviceController.GetServices)
			servicesGroup.GET("/:id", serviceController.GetService)
			servicesGroup.POST("", admin, serviceController.CreateService)
			servicesGroup.PUT("/:id", admin, serviceController.UpdateService)
			servicesGroup.DELETE("/:id", admin, serviceController.DeleteService)
		}

		professionals := api.Group("/professionals")
		{
			professionals.GET("", professionalController.GetProfessionals)
			professionals.POST("", admin, professionalController.CreateProfessional)
			professionals.PUT("/:id", admin, professionalController.UpdateProfessional)
		}

		appointments := api.Group("/appointments")
		{
			appointments.POST("", appointmentController.Book)
			appointments.GET("", staff, appointmentController.GetAppointments)
			appointments.GET("/mine", appointmentController.GetMine)
			appointments.POST("/:id/cancel", appointmentController.Cancel)
			appointments.PUT("/:id/reschedule", appointmentController.Reschedule)
			appointments.PUT("/:id/status", staff, appointmentController.UpdateStatus)
		}

		clients := api.Group("/clients", staff)
		{
			clients.GET("", clientController.GetClients)
			clients.GET("/:id", clientController.GetClient)
			clients.PUT("/:id", admin, clientController.UpdateClient)
		}

		materials := api.Group("/materials", staff)
		{
			materials.GET("", materialController.GetMaterials)
			materials.POST("", admin, materialController.CreateMaterial)
			materials.PUT("/:id", admin, materialController.UpdateMaterial)
			materials.GET("/:id/movements", materialController.GetMovements)
			materials.POST("/:id/movements", materialController.AddMovement)
		}

		transactions := api.Group("/transactions", admin)
		{
			transactions.GET("", transactionController.GetTransactions)
			transactions.POST("", transactionController.CreateTransaction)
			transactions.GET("/summary", transactionController.GetSummary)
			transactions.PUT("/:id/paid", transactionController.MarkPaid)
		}

		reminders := api.Group("/reminders", admin)
		{
			reminders.GET("", reminderController.GetReminderLogs)
			reminders.POST("/run", reminderController.RunReminders)
		}

		// Dashboard routes
		api.GET("/dashboard", admin, dashboardController.GetDashboard)
		api.GET("/dashboard/client", dashboardController.GetClientDashboard)
	}

	return r
}
