// Package explorer serves an environment over HTTP so a game can be
// stepped interactively while developing policies or games.
package explorer

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/aecgames/spielbridge/aec"
	"github.com/aecgames/spielbridge/spiel"

	// registered games
	_ "github.com/aecgames/spielbridge/spiel/pig"
	_ "github.com/aecgames/spielbridge/spiel/roshambo"
	_ "github.com/aecgames/spielbridge/spiel/tictactoe"
)

// Explorer steps one environment on behalf of HTTP clients. A single
// lock serializes requests, the bridge itself is not concurrent.
type Explorer struct {
	game spiel.Game
	env  *aec.GameEnv

	lock   sync.Mutex
	server *http.Server
}

func NewExplorer(game spiel.Game, port int) *Explorer {
	e := &Explorer{
		game: game,
		env:  aec.NewGameEnv(game),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.POST("/reset", e.handleReset)
	r.POST("/step", e.handleStep)
	r.GET("/state", e.handleState)
	r.GET("/observe/:agent", e.handleObserve)
	e.server = &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: r,
	}
	return e
}

// Handler exposes the HTTP routes, mainly for tests.
func (e *Explorer) Handler() http.Handler {
	return e.server.Handler
}

// Serve blocks until the server stops.
func (e *Explorer) Serve() error {
	log.Info().Str("game", e.game.Name()).Str("addr", e.server.Addr).Msg("explorer listening")
	if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (e *Explorer) handleReset(c *gin.Context) {
	req := struct {
		Seed int64 `json:"seed"`
	}{Seed: -1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
			return
		}
	}

	e.lock.Lock()
	defer e.lock.Unlock()
	if err := e.env.Reset(req.Seed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e.stateResponse())
}

func (e *Explorer) handleStep(c *gin.Context) {
	req := struct {
		Action *int `json:"action"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil || req.Action == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}

	e.lock.Lock()
	defer e.lock.Unlock()
	if err := e.env.Step(*req.Action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e.stateResponse())
}

func (e *Explorer) handleState(c *gin.Context) {
	e.lock.Lock()
	defer e.lock.Unlock()
	c.JSON(http.StatusOK, e.stateResponse())
}

func (e *Explorer) handleObserve(c *gin.Context) {
	agent := c.Param("agent")

	e.lock.Lock()
	defer e.lock.Unlock()
	obs, err := e.env.Observe(agent)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": agent, "observation": obs})
}

// stateResponse snapshots the env for clients. Callers hold the lock.
func (e *Explorer) stateResponse() gin.H {
	_, reward, terminated, truncated, info := e.env.Last()
	return gin.H{
		"game":         e.game.Name(),
		"agents":       e.env.Agents(),
		"selection":    e.env.AgentSelection(),
		"rewards":      e.env.Rewards(),
		"terminations": e.env.Terminations(),
		"truncations":  e.env.Truncations(),
		"selected": gin.H{
			"reward":      reward,
			"terminated":  terminated,
			"truncated":   truncated,
			"action_mask": info.ActionMask,
		},
		"render": e.env.Render(),
	}
}

// ExploreCommand serves a named game over HTTP.
// Example invocation - ./spielbridge explore tictactoe --port 8090
func ExploreCommand() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:  "explore [game]",
		Long: "Serve a game environment over HTTP for interactive stepping",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := spiel.LoadGame(args[0], nil)
			if err != nil {
				return err
			}
			return NewExplorer(game, port).Serve()
		},
	}
	cmd.Flags().IntVar(&port, "port", 8090, "Port to serve the explorer on")
	return cmd
}
