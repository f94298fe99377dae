package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolit/asset-service/internal/authz"
	"github.com/schoolit/asset-service/internal/config"
	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/services"
	"github.com/schoolit/asset-service/internal/utils"
)

type HandlerManager struct {
	userHandler       *UserHandler
	permissionHandler *PermissionHandler
	schoolHandler     *SchoolHandler
	deviceHandler     *DeviceHandler
	facilityHandler   *FacilityHandler

	authMiddleware *CasdoorAuthMiddleware
	guard          *authz.Guard
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	guard *authz.Guard,
	helper *authz.Helper,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
) *HandlerManager {
	return &HandlerManager{
		userHandler:       NewUserHandler(serviceManager.User(), helper, logger),
		permissionHandler: NewPermissionHandler(serviceManager.Permission(), logger),
		schoolHandler:     NewSchoolHandler(serviceManager.School(), logger),
		deviceHandler:     NewDeviceHandler(serviceManager.Device(), serviceManager.Export(), serviceManager.QRCode(), logger),
		facilityHandler:   NewFacilityHandler(serviceManager.Classroom(), serviceManager.FloorPlan(), serviceManager.WirelessAP(), logger),
		authMiddleware:    NewCasdoorAuthMiddleware(casdoorConfig),
		guard:             guard,
	}
}

// SetupRoutes sets up all API routes. Every protected route carries its
// policy here, so the whole authorization surface is visible in one place.
// Policies are validated against the feature catalog at registration time.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Signup is the only unauthenticated API endpoint.
	router.POST("/api/v1/signup", hm.userHandler.Signup)

	guard := hm.guard
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		v1.GET("/me", guard.Authenticate(), hm.userHandler.Me)

		// Account administration. The ADMIN-role requirement is enforced
		// in the services, so these only establish the acting user.
		users := v1.Group("/users", guard.Authenticate())
		{
			users.GET("", hm.userHandler.ListUsers)
			users.PUT("/:id/status", hm.userHandler.UpdateStatus)
			users.PUT("/:id/role", hm.userHandler.UpdateRole)
			users.DELETE("/:id", hm.userHandler.DeleteUser)

			users.GET("/:id/grants", hm.permissionHandler.GetUserGrants)
			users.POST("/:id/grants/features", hm.permissionHandler.GrantFeature)
			users.DELETE("/:id/grants/features", hm.permissionHandler.RevokeFeature)
			users.POST("/:id/grants/schools", hm.permissionHandler.GrantSchool)
			users.DELETE("/:id/grants/schools", hm.permissionHandler.RevokeSchool)
		}

		v1.GET("/features", guard.Authenticate(), hm.permissionHandler.ListFeatureCatalog)

		// School CRUD. Reads need authentication only; writes are gated
		// and scoped to the school being changed.
		schools := v1.Group("/schools")
		{
			schools.GET("", guard.Authenticate(), hm.schoolHandler.ListSchools)
			schools.POST("", guard.Require(authz.MustPolicy(models.FeatureSchoolManagement, "")), hm.schoolHandler.CreateSchool)
			schools.GET("/:school_id", guard.Authenticate(), hm.schoolHandler.GetSchool)
			schools.PUT("/:school_id", guard.Require(authz.MustPolicy(models.FeatureSchoolManagement, "school_id")), hm.schoolHandler.UpdateSchool)
			schools.DELETE("/:school_id", guard.Require(authz.MustPolicy(models.FeatureSchoolManagement, "school_id")), hm.schoolHandler.DeleteSchool)

			// Devices within a school: both tiers apply.
			schools.GET("/:school_id/devices", guard.Require(authz.MustPolicy(models.FeatureDeviceList, "school_id")), hm.deviceHandler.ListDevices)
			schools.POST("/:school_id/devices", guard.Require(authz.MustPolicy(models.FeatureDeviceManagement, "school_id")), hm.deviceHandler.CreateDevice)
			schools.GET("/:school_id/devices/export", guard.Require(authz.MustPolicy(models.FeatureSubmissionFiles, "school_id")), hm.deviceHandler.ExportInventory)

			schools.GET("/:school_id/classrooms", guard.Require(authz.MustPolicy(models.FeatureClassroomManagement, "school_id")), hm.facilityHandler.ListClassrooms)
			schools.POST("/:school_id/classrooms", guard.Require(authz.MustPolicy(models.FeatureClassroomManagement, "school_id")), hm.facilityHandler.CreateClassroom)

			schools.GET("/:school_id/floorplans", guard.Require(authz.MustPolicy(models.FeatureFloorPlanManagement, "school_id")), hm.facilityHandler.ListFloorPlans)
			schools.POST("/:school_id/floorplans", guard.Require(authz.MustPolicy(models.FeatureFloorPlanManagement, "school_id")), hm.facilityHandler.CreateFloorPlan)

			schools.GET("/:school_id/wireless-aps", guard.Require(authz.MustPolicy(models.FeatureWirelessAPList, "school_id")), hm.facilityHandler.ListWirelessAPs)
			schools.POST("/:school_id/wireless-aps", guard.Require(authz.MustPolicy(models.FeatureWirelessAPManagement, "school_id")), hm.facilityHandler.CreateWirelessAP)
		}

		// Direct entity routes carry no school parameter; the same scoped
		// policies degrade to feature-only enforcement here.
		devices := v1.Group("/devices")
		{
			devices.GET("/:device_id", guard.Require(authz.MustPolicy(models.FeatureDeviceList, "school_id")), hm.deviceHandler.GetDevice)
			devices.PUT("/:device_id", guard.Require(authz.MustPolicy(models.FeatureDeviceManagement, "school_id")), hm.deviceHandler.UpdateDevice)
			devices.DELETE("/:device_id", guard.Require(authz.MustPolicy(models.FeatureDataDelete, "")), hm.deviceHandler.DeleteDevice)
			devices.POST("/:device_id/inspect", guard.Require(authz.MustPolicy(models.FeatureDeviceInspection, "")), hm.deviceHandler.InspectDevice)
			devices.GET("/:device_id/qrcode", guard.Require(authz.MustPolicy(models.FeatureQRCodeGeneration, "")), hm.deviceHandler.DeviceQRCode)
		}

		v1.PUT("/classrooms/:classroom_id", guard.Require(authz.MustPolicy(models.FeatureClassroomManagement, "")), hm.facilityHandler.UpdateClassroom)
		v1.DELETE("/classrooms/:classroom_id", guard.Require(authz.MustPolicy(models.FeatureDataDelete, "")), hm.facilityHandler.DeleteClassroom)

		v1.PUT("/floorplans/:plan_id", guard.Require(authz.MustPolicy(models.FeatureFloorPlanManagement, "")), hm.facilityHandler.UpdateFloorPlan)
		v1.DELETE("/floorplans/:plan_id", guard.Require(authz.MustPolicy(models.FeatureFloorPlanManagement, "")), hm.facilityHandler.DeleteFloorPlan)

		v1.PUT("/wireless-aps/:ap_id", guard.Require(authz.MustPolicy(models.FeatureWirelessAPManagement, "")), hm.facilityHandler.UpdateWirelessAP)
		v1.DELETE("/wireless-aps/:ap_id", guard.Require(authz.MustPolicy(models.FeatureWirelessAPManagement, "")), hm.facilityHandler.DeleteWirelessAP)
	}
}
