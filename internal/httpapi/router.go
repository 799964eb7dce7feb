package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/placement-cell/placement_service/internal/metrics"
	"github.com/placement-cell/placement_service/internal/middleware"
)

// Router builds the gin engine with the full route table and middleware
// chain.
func (api *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(api.log),
		metrics.Instrument(),
		gin.Recovery(),
	)

	corsCfg := cors.DefaultConfig()
	if len(api.cfg.CORS.AllowedOrigins) == 1 && api.cfg.CORS.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = api.cfg.CORS.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	r.Use(cors.New(corsCfg))

	if api.cfg.Rate.Enabled {
		rl := middleware.NewRateLimiter(api.cfg.Rate.RequestsPerSecond, api.cfg.Rate.Burst)
		rl.StartCleanup(time.Minute, 10*time.Minute)
		r.Use(rl.Handler())
	}

	r.GET("/healthz", api.healthz)
	r.GET("/health/db", api.healthDB)
	r.GET("/health", api.health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := r.Group("/api")
	if api.cfg.Auth.Enabled {
		auth := apiGroup.Group("/auth")
		auth.POST("/register", api.register)
		auth.POST("/login", api.login)
		apiGroup.Use(middleware.Auth(api.cfg.Auth.JWTSecret))
	}

	students := apiGroup.Group("/students")
	students.POST("", api.createStudent)
	students.GET("", api.listStudents)
	students.POST("/import", api.importStudents)
	students.GET("/:id", api.getStudent)
	students.PUT("/:id", api.updateStudent)
	students.DELETE("/:id", api.deleteStudent)
	students.GET("/:id/applications", api.listStudentApplications)
	students.GET("/:id/languages", api.listLanguages)
	students.POST("/:id/languages", api.addLanguage)
	students.GET("/:id/family-members", api.listFamilyMembers)
	students.POST("/:id/family-members", api.addFamilyMember)
	students.GET("/:id/addresses", api.listAddresses)
	students.POST("/:id/addresses", api.addAddress)

	apiGroup.PUT("/languages/:id", api.updateLanguage)
	apiGroup.DELETE("/languages/:id", api.deleteLanguage)
	apiGroup.PUT("/family-members/:id", api.updateFamilyMember)
	apiGroup.DELETE("/family-members/:id", api.deleteFamilyMember)
	apiGroup.PUT("/addresses/:id", api.updateAddress)
	apiGroup.DELETE("/addresses/:id", api.deleteAddress)

	companies := apiGroup.Group("/companies")
	companies.POST("", api.createCompany)
	companies.GET("", api.listCompanies)
	companies.GET("/:id", api.getCompany)
	companies.PUT("/:id", api.updateCompany)
	companies.DELETE("/:id", api.deleteCompany)

	jobs := apiGroup.Group("/jobs")
	jobs.POST("", api.createJob)
	jobs.GET("", api.listJobs)
	jobs.GET("/:id", api.getJob)
	jobs.PUT("/:id", api.updateJob)
	jobs.DELETE("/:id", api.deleteJob)
	jobs.GET("/:id/requirements", api.listRequirements)
	jobs.POST("/:id/requirements", api.addRequirement)
	jobs.GET("/:id/applications", api.listJobApplications)

	apiGroup.PUT("/requirements/:id", api.updateRequirement)
	apiGroup.DELETE("/requirements/:id", api.deleteRequirement)

	applications := apiGroup.Group("/applications")
	applications.POST("", api.createApplication)
	applications.GET("", api.listApplications)
	applications.GET("/:id", api.getApplication)
	applications.PATCH("/:id/status", api.updateApplicationStatus)
	applications.DELETE("/:id", api.deleteApplication)

	roles := apiGroup.Group("/roles")
	roles.POST("", api.createRole)
	roles.GET("", api.listRoles)
	roles.GET("/:id", api.getRole)
	roles.PUT("/:id", api.updateRole)
	roles.DELETE("/:id", api.deleteRole)
	roles.GET("/:id/permissions", api.listRolePermissions)
	roles.POST("/:id/permissions/:permID", api.grantPermission)
	roles.DELETE("/:id/permissions/:permID", api.revokePermission)

	permissions := apiGroup.Group("/permissions")
	permissions.POST("", api.createPermission)
	permissions.GET("", api.listPermissions)
	permissions.GET("/:id", api.getPermission)
	permissions.PUT("/:id", api.updatePermission)
	permissions.DELETE("/:id", api.deletePermission)

	return r
}
