package handler

import (
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var startTime = time.Now()

// HealthCheckHandler reports process and dependency health. CPU comes from
// gopsutil, which samples over one second.
func HealthCheckHandler(c *gin.Context, mongoClient *mongo.Client) {
	mongoStatus := "up"
	if err := mongoClient.Ping(c.Request.Context(), readpref.Primary()); err != nil {
		mongoStatus = "down"
	}

	redisStatus := "down"
	if services.TokenBlacklist != nil && services.TokenBlacklist.IsConnected() {
		redisStatus = "up"
	}

	status := "healthy"
	if mongoStatus == "down" {
		status = "degraded"
	}

	utils.Success(c, gin.H{
		"status":      status,
		"uptime":      time.Since(startTime).String(),
		"cpu_percent": utils.GetCPUUsage(),
		"mongo":       mongoStatus,
		"redis":       redisStatus,
	})
}
