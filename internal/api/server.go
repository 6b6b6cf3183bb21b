package api

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/railscamp/registration-api/docs"
	v1 "github.com/railscamp/registration-api/internal/api/handler/v1"
	"github.com/railscamp/registration-api/internal/api/middleware"
	"github.com/railscamp/registration-api/internal/config"
	"github.com/railscamp/registration-api/internal/pin"
	"github.com/railscamp/registration-api/internal/repository"
	"github.com/railscamp/registration-api/internal/repository/dao"
	"github.com/railscamp/registration-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	gateway := pin.NewClient(conf.Pin.APIRoot(), conf.Pin.SecretKey(), &http.Client{
		Timeout: conf.Pin.Timeout(),
	})

	registrationHandler, adminHandler := s.initRegistrationHandlers(db, gateway)
	scholarshipHandler := s.initScholarshipHandler(db)
	beddingHandler := s.initBeddingHandler(db, gateway)
	s.MountHandlers(registrationHandler, scholarshipHandler, beddingHandler, adminHandler)

	return s
}

func (s *Server) initRegistrationHandlers(db *gorm.DB, gateway *pin.Client) (*v1.RegistrationHandler, *v1.AdminHandler) {
	entrantDAO := dao.NewEntrantDAO(db)
	repo := repository.NewEntrantRepository(entrantDAO)

	charger := service.NewCharger(gateway, repo, service.ChargeParams{
		Description: s.Config.Event.TicketDescription,
		Amount:      s.Config.Event.TicketPriceCents,
		Currency:    s.Config.Event.TicketCurrency,
	})

	svc := service.NewRegistrationService(repo, s.Config.Event, charger)
	adminSvc := service.NewAdminService(s.Config.API)

	return v1.NewRegistrationHandler(svc), v1.NewAdminHandler(adminSvc, svc)
}

func (s *Server) initScholarshipHandler(db *gorm.DB) *v1.ScholarshipHandler {
	scholarshipDAO := dao.NewScholarshipDAO(db)
	repo := repository.NewScholarshipRepository(scholarshipDAO)
	svc := service.NewScholarshipService(repo)

	return v1.NewScholarshipHandler(svc)
}

func (s *Server) initBeddingHandler(db *gorm.DB, gateway *pin.Client) *v1.BeddingHandler {
	beddingDAO := dao.NewBeddingPaymentDAO(db)
	repo := repository.NewBeddingPaymentRepository(beddingDAO)

	charger := service.NewCharger(gateway, repo, service.ChargeParams{
		Description: s.Config.Event.BeddingDescription,
		Amount:      s.Config.Event.BeddingPriceCents,
		Currency:    s.Config.Event.TicketCurrency,
	})

	svc := service.NewBeddingService(repo, charger)

	return v1.NewBeddingHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	registrationHandler *v1.RegistrationHandler,
	scholarshipHandler *v1.ScholarshipHandler,
	beddingHandler *v1.BeddingHandler,
	adminHandler *v1.AdminHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.GET("/registration", registrationHandler.HandleGetRegistration)
		public.POST("/registrations", registrationHandler.HandleCreateRegistration)
		public.GET("/extras", registrationHandler.HandleGetExtras)
		public.POST("/extras", registrationHandler.HandleUpdateExtras)
		public.POST("/scholarships", scholarshipHandler.HandleCreateScholarship)
		public.POST("/bedding-payments", beddingHandler.HandleCreateBeddingPayment)
		public.POST("/admin/login", adminHandler.HandleLogin)
	}

	admin := s.Router.Group(basePath+"/admin", middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		admin.GET("/entrants", adminHandler.HandleListEntrants)
		admin.POST("/entrants", adminHandler.HandleCreateCompTicket)
		admin.POST("/entrants/:entrantID/choose", adminHandler.HandleChooseEntrant)
		admin.POST("/entrants/:entrantID/notify", adminHandler.HandleNotifyEntrant)
		admin.POST("/entrants/:entrantID/charge", adminHandler.HandleChargeEntrant)
		admin.GET("/scholarships", scholarshipHandler.HandleListScholarships)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Camp registration API"
	docs.SwaggerInfo.Description = "Registrations, scholarship applications and bedding payments."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
