package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/futsalboard/server/internal/domain"
	"github.com/futsalboard/server/internal/engine"
	"github.com/futsalboard/server/internal/match"
	"github.com/futsalboard/server/internal/roster"
)

// fail maps engine errors onto HTTP responses via their AppError status.
func fail(c *gin.Context, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{"code": appErr.Code, "error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// attachProtect conditionally wraps handlers with the given protect
// middleware for mutating routes. Read routes stay public.
func attachProtect(protect gin.HandlerFunc, h gin.HandlerFunc) gin.HandlerFunc {
	if protect == nil {
		return h
	}
	return func(c *gin.Context) {
		protect(c)
		if c.IsAborted() {
			return
		}
		h(c)
	}
}

func limitQuery(c *gin.Context, def int) int {
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func RegisterRoutes(r *gin.Engine, e *engine.Engine, protect gin.HandlerFunc) {
	api := r.Group("/api")

	registerTeamRoutes(api, e, protect)
	registerMatchRoutes(api, e, protect)
	registerSetRoutes(api, e, protect)
	registerStatsRoutes(api, e)
	registerTransferRoutes(api, e, protect)
}

func registerTeamRoutes(api *gin.RouterGroup, e *engine.Engine, protect gin.HandlerFunc) {
	api.GET("/teams", func(c *gin.Context) {
		c.JSON(http.StatusOK, e.Teams())
	})

	api.POST("/teams", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		t, err := e.CreateTeam(req.Name)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}))

	api.PATCH("/teams/:id", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		if err := e.RenameTeam(c.Param("id"), req.Name); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))

	api.DELETE("/teams/:id", attachProtect(protect, func(c *gin.Context) {
		if err := e.DeleteTeam(c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}))

	api.POST("/teams/:id/players", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		p, err := e.AddPlayer(c.Param("id"), req.Name)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}))

	api.PATCH("/teams/:id/players/:pid", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		if err := e.RenamePlayer(c.Param("id"), c.Param("pid"), req.Name); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))

	api.DELETE("/teams/:id/players/:pid", attachProtect(protect, func(c *gin.Context) {
		if err := e.RemovePlayer(c.Param("id"), c.Param("pid")); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}))

	// Roster import from CSV or XLSX: team,player columns
	api.POST("/teams/import", attachProtect(protect, func(c *gin.Context) {
		if err := c.Request.ParseMultipartForm(12 << 20); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart too large"})
			return
		}
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}
		teams, err := roster.ParseImport(fh)
		if err != nil {
			fail(c, err)
			return
		}
		added := e.MergeTeams(teams)
		c.JSON(http.StatusOK, gin.H{"parsed": len(teams), "added": added})
	}))

	api.POST("/teams/bootstrap", attachProtect(protect, func(c *gin.Context) {
		teams, err := e.Bootstrap()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, teams)
	}))
}

func registerMatchRoutes(api *gin.RouterGroup, e *engine.Engine, protect gin.HandlerFunc) {
	api.GET("/matches", func(c *gin.Context) {
		c.JSON(http.StatusOK, e.Matches())
	})

	api.GET("/matches/:id", func(c *gin.Context) {
		v, err := e.Match(c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	})

	api.POST("/matches", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Name  string `json:"name"`
			Venue string `json:"venue"`
			Date  string `json:"date"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		m, err := e.CreateMatch(req.Name, req.Venue, req.Date)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}))

	api.PATCH("/matches/:id", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Name  string `json:"name"`
			Venue string `json:"venue"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		if err := e.UpdateMatch(c.Param("id"), req.Name, req.Venue); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))

	api.PATCH("/matches/:id/status", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		if err := e.SetMatchStatus(c.Param("id"), match.Status(req.Status)); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))

	api.POST("/matches/:id/duplicate", attachProtect(protect, func(c *gin.Context) {
		m, err := e.DuplicateMatch(c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}))

	api.DELETE("/matches/:id", attachProtect(protect, func(c *gin.Context) {
		if err := e.DeleteMatch(c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}))

	api.POST("/matches/:id/sets", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Name     string `json:"name"`
			Duration int    `json:"duration"`
			TeamA    string `json:"teamA"`
			TeamB    string `json:"teamB"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		s, err := e.CreateSet(c.Param("id"), req.Name, req.Duration, req.TeamA, req.TeamB)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, s)
	}))
}
