package main

import (
	"net/http"

	_ "postalgeo-api/docs"
	"postalgeo-api/internal/handler"
	"postalgeo-api/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func newRouter(svc *service.PostalCodeService) *gin.Engine {
	distanceHandler := handler.NewDistanceHandler(svc)
	nearbyHandler := handler.NewNearbyHandler(svc)
	validationHandler := handler.NewValidationHandler(svc)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"records": svc.Count(),
		})
	})

	r.GET("/distance", distanceHandler.Distance)
	r.GET("/nearby", nearbyHandler.Nearby)
	r.GET("/validate", validationHandler.Validate)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
