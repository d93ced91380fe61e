package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/futsalboard/server/internal/engine"
	"github.com/futsalboard/server/internal/formation"
	"github.com/futsalboard/server/internal/gameset"
	"github.com/futsalboard/server/internal/roster"
)

func registerSetRoutes(api *gin.RouterGroup, e *engine.Engine, protect gin.HandlerFunc) {
	api.GET("/formations", func(c *gin.Context) {
		c.JSON(http.StatusOK, formation.TemplateNames())
	})

	api.GET("/sets/:id", func(c *gin.Context) {
		v, err := e.Set(c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	})

	api.PATCH("/sets/:id", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Name     string `json:"name"`
			Duration int    `json:"duration"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		if err := e.UpdateSet(c.Param("id"), req.Name, req.Duration); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))

	api.DELETE("/sets/:id", attachProtect(protect, func(c *gin.Context) {
		if err := e.DeleteSet(c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}))

	api.POST("/sets/:id/formation", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Template string   `json:"template"`
			TeamA    []string `json:"teamA"`
			TeamB    []string `json:"teamB"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		a, err := e.AssignFormation(c.Param("id"), req.Template, req.TeamA, req.TeamB)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}))

	api.POST("/sets/:id/formation/swap", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Side   string `json:"side"`
			Index  int    `json:"index"`
			Player string `json:"player"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		a, err := e.SwapFormationSlot(c.Param("id"), roster.Side(req.Side), req.Index, req.Player)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}))

	api.POST("/sets/:id/formation/confirm", attachProtect(protect, func(c *gin.Context) {
		if err := e.ConfirmFormation(c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))

	api.POST("/sets/:id/start", attachProtect(protect, func(c *gin.Context) {
		if err := e.StartSet(c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))

	api.POST("/sets/:id/pause", attachProtect(protect, func(c *gin.Context) {
		if err := e.PauseSet(c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))

	api.POST("/sets/:id/resume", attachProtect(protect, func(c *gin.Context) {
		if err := e.ResumeSet(c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))

	api.POST("/sets/:id/complete", attachProtect(protect, func(c *gin.Context) {
		score, err := e.CompleteSet(c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, score)
	}))

	api.POST("/sets/:id/archive", attachProtect(protect, func(c *gin.Context) {
		if err := e.ArchiveSet(c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))

	api.POST("/sets/:id/goals", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Team    string `json:"team"`
			Scorer  string `json:"scorer"`
			Assist  string `json:"assist"`
			OwnGoal bool   `json:"ownGoal"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		var (
			ev  gameset.GameEvent
			err error
		)
		if req.OwnGoal {
			ev, err = e.RecordOwnGoal(c.Param("id"), roster.Side(req.Team), req.Scorer)
		} else {
			ev, err = e.RecordGoal(c.Param("id"), roster.Side(req.Team), req.Scorer, req.Assist)
		}
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, ev)
	}))

	api.PATCH("/sets/:id/events/:eid", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Seconds     *int    `json:"seconds"`
			PlayerName  *string `json:"playerName"`
			Type        *string `json:"type"`
			Assist      *string `json:"assist"`
			ClearAssist bool    `json:"clearAssist"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		upd := gameset.EventUpdate{
			Seconds:     req.Seconds,
			PlayerName:  req.PlayerName,
			AssistID:    req.Assist,
			ClearAssist: req.ClearAssist,
		}
		if req.Type != nil {
			t := gameset.EventType(*req.Type)
			upd.Type = &t
		}
		ev, err := e.EditEvent(c.Param("id"), c.Param("eid"), upd)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, ev)
	}))

	api.DELETE("/sets/:id/events/:eid", attachProtect(protect, func(c *gin.Context) {
		if err := e.DeleteEvent(c.Param("id"), c.Param("eid")); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}))

	api.POST("/sets/:id/substitutions", attachProtect(protect, func(c *gin.Context) {
		var req struct {
			Team      string `json:"team"`
			PlayerOut string `json:"playerOut"`
			PlayerIn  string `json:"playerIn"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		ev, err := e.Substitute(c.Param("id"), roster.Side(req.Team), req.PlayerOut, req.PlayerIn)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, ev)
	}))
}
