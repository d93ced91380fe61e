package httpapi

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/futsalboard/server/internal/engine"
	"github.com/futsalboard/server/internal/stats"
)

func registerStatsRoutes(api *gin.RouterGroup, e *engine.Engine) {
	api.GET("/stats/players", func(c *gin.Context) {
		c.JSON(http.StatusOK, e.PlayerStats())
	})

	api.GET("/stats/teams", func(c *gin.Context) {
		c.JSON(http.StatusOK, e.TeamStandings())
	})

	api.GET("/stats/summary", func(c *gin.Context) {
		c.JSON(http.StatusOK, e.StatsSummary())
	})

	api.GET("/stats/top-scorers", func(c *gin.Context) {
		c.JSON(http.StatusOK, e.TopScorers(limitQuery(c, stats.DefaultLeaderboardSize)))
	})

	api.GET("/stats/top-assisters", func(c *gin.Context) {
		c.JSON(http.StatusOK, e.TopAssisters(limitQuery(c, stats.DefaultLeaderboardSize)))
	})
}

func registerTransferRoutes(api *gin.RouterGroup, e *engine.Engine, protect gin.HandlerFunc) {
	api.GET("/export", func(c *gin.Context) {
		data, err := e.Serialize()
		if err != nil {
			fail(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="futsalboard.json"`)
		c.Data(http.StatusOK, "application/json", data)
	})

	api.POST("/import", attachProtect(protect, func(c *gin.Context) {
		mode := engine.ImportMerge
		if c.Query("mode") == "replace" {
			mode = engine.ImportReplace
		}
		data, err := io.ReadAll(io.LimitReader(c.Request.Body, 16<<20))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "read body"})
			return
		}
		res, err := e.Import(data, mode)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}))
}
