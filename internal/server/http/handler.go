// FILE: connect4/internal/server/http/handler.go
package http

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"connect4/internal/server/core"
	"connect4/internal/server/processor"
	"connect4/internal/server/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitRate = 10 // req/sec

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{1,40}$`)

// HTTPHandler handles HTTP requests and routes them to the processor
type HTTPHandler struct {
	proc *processor.Processor
	svc  *service.Service
}

func NewHTTPHandler(proc *processor.Processor, svc *service.Service) *HTTPHandler {
	return &HTTPHandler{proc: proc, svc: svc}
}

func NewFiberApp(proc *processor.Processor, svc *service.Service, devMode bool) *fiber.App {
	// Create handler
	h := NewHTTPHandler(proc, svc)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	// API v1 routes
	api := app.Group("/api/v1")

	// Registration: 5 req/min per IP
	api.Post("/users", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: "5 registrations per minute allowed",
			})
		},
	}), h.CreateUser)

	// Remaining routes with standard rate limiting
	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	// Content-Type validation for POST requests
	api.Use(contentTypeValidator)

	// Middleware validation for sanitization
	api.Use(validationMiddleware)

	// User-scoped reads
	api.Get("/users/:username/games", h.ListUserGames)
	api.Get("/users/:username/scores", h.ListUserScores)

	// Game routes
	api.Post("/games", h.CreateGame)
	api.Get("/games/:gameId", h.GetGame)
	api.Post("/games/:gameId/moves", h.MakeMove)
	api.Post("/games/:gameId/cancel", h.CancelGame)
	api.Get("/games/:gameId/board", h.GetBoard)
	api.Get("/games/:gameId/history", h.GetHistory)

	// Aggregates
	api.Get("/scores", h.ListScores)
	api.Get("/rankings", h.Rankings)
	api.Get("/stats/average-moves-remaining", h.Stats)

	return app
}

// contentTypeValidator ensures POST requests have application/json
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get("Content-Type")
		if contentType != "application/json" && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	// Check if it's a Fiber error
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		response.Error = e.Message

		// Map HTTP status to error codes
		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrGameNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// statusForCode maps processor error codes to HTTP statuses
func statusForCode(code string) int {
	switch code {
	case core.ErrUserNotFound, core.ErrGameNotFound:
		return fiber.StatusNotFound
	case core.ErrUserExists, core.ErrGameOver, core.ErrGameCanceled:
		return fiber.StatusConflict
	case core.ErrRateLimitExceeded:
		return fiber.StatusTooManyRequests
	case core.ErrInvalidColumn, core.ErrColumnFull, core.ErrInvalidRequest:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// Health check endpoint with storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.StorageHealthy(),
	})
}

// CreateUser registers a new player
func (h *HTTPHandler) CreateUser(c *fiber.Ctx) error {
	var req core.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid request body",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	// Validate username format
	if !usernameRegex.MatchString(req.Username) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid username format",
			Code:    core.ErrInvalidRequest,
			Details: "username must be 1-40 characters, alphanumeric and underscore only",
		})
	}

	// Validate email format if provided
	if req.Email != "" && !emailRegex.MatchString(req.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid email format",
			Code:    core.ErrInvalidRequest,
			Details: "email must be a valid email address",
		})
	}

	user, err := h.svc.CreateUser(req.Username, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return c.Status(fiber.StatusConflict).JSON(core.ErrorResponse{
				Error:   "user already exists",
				Code:    core.ErrUserExists,
				Details: "username already taken",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "failed to create user",
			Code:  core.ErrInternalError,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(core.UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// ListUserGames returns a player's games, all or only open ones
func (h *HTTPHandler) ListUserGames(c *fiber.Ctx) error {
	username := c.Params("username")
	activeOnly := c.Query("active") == "true"

	cmd := processor.NewListGamesCommand(username, activeOnly)
	resp := h.proc.Execute(cmd)

	if !resp.Success {
		return c.Status(statusForCode(resp.Error.Code)).JSON(resp.Error)
	}
	return c.JSON(resp.Data)
}

// ListUserScores returns one player's finished game outcomes
func (h *HTTPHandler) ListUserScores(c *fiber.Ctx) error {
	return h.renderScores(c, c.Params("username"))
}

// ListScores returns all recorded outcomes
func (h *HTTPHandler) ListScores(c *fiber.Ctx) error {
	return h.renderScores(c, "")
}

func (h *HTTPHandler) renderScores(c *fiber.Ctx, username string) error {
	views, err := h.svc.ListScores(username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
				Error: "user not found",
				Code:  core.ErrUserNotFound,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "failed to list scores",
			Code:  core.ErrInternalError,
		})
	}

	response := core.ScoreListResponse{Scores: make([]core.ScoreResponse, 0, len(views))}
	for _, v := range views {
		response.Scores = append(response.Scores, core.ScoreResponse{
			Username: v.Username,
			Date:     v.Score.Date,
			Won:      v.Score.Won,
			Moves:    v.Score.Moves,
		})
	}
	return c.JSON(response)
}

// Rankings returns players ordered by win ratio
func (h *HTTPHandler) Rankings(c *fiber.Ctx) error {
	rankings, err := h.svc.Rankings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "failed to compute rankings",
			Code:  core.ErrInternalError,
		})
	}
	return c.JSON(core.RankingListResponse{Rankings: rankings})
}

// Stats returns the cached average-moves-remaining projection
func (h *HTTPHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.svc.AverageMovesRemaining(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "failed to compute statistics",
			Code:  core.ErrInternalError,
		})
	}
	return c.JSON(stats)
}

// CreateGame starts a new game for the requesting player
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, ok := validatedBody[core.CreateGameRequest](c)
	if !ok {
		return validationMissing(c)
	}

	resp := h.proc.Execute(processor.NewCreateGameCommand(req))
	if !resp.Success {
		return c.Status(statusForCode(resp.Error.Code)).JSON(resp.Error)
	}
	return c.Status(fiber.StatusCreated).JSON(resp.Data)
}

// GetGame retrieves current game state
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	resp := h.proc.Execute(processor.NewGetGameCommand(gameID))
	if !resp.Success {
		return c.Status(statusForCode(resp.Error.Code)).JSON(resp.Error)
	}
	return c.JSON(resp.Data)
}

// MakeMove submits a column drop
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	req, ok := validatedBody[core.MoveRequest](c)
	if !ok {
		return validationMissing(c)
	}

	resp := h.proc.Execute(processor.NewMakeMoveCommand(gameID, req))
	if !resp.Success {
		return c.Status(statusForCode(resp.Error.Code)).JSON(resp.Error)
	}
	return c.JSON(resp.Data)
}

// CancelGame abandons an open game
func (h *HTTPHandler) CancelGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	resp := h.proc.Execute(processor.NewCancelGameCommand(gameID))
	if !resp.Success {
		return c.Status(statusForCode(resp.Error.Code)).JSON(resp.Error)
	}
	return c.JSON(resp.Data)
}

// GetBoard returns ASCII representation of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	resp := h.proc.Execute(processor.NewGetBoardCommand(gameID))
	if !resp.Success {
		return c.Status(statusForCode(resp.Error.Code)).JSON(resp.Error)
	}
	return c.JSON(resp.Data)
}

// GetHistory returns the game's move-by-move audit trail
func (h *HTTPHandler) GetHistory(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	resp := h.proc.Execute(processor.NewGetHistoryCommand(gameID))
	if !resp.Success {
		return c.Status(statusForCode(resp.Error.Code)).JSON(resp.Error)
	}
	return c.JSON(resp.Data)
}

func invalidGameID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid game ID format",
		Code:    core.ErrInvalidRequest,
		Details: "game ID must be a valid UUID",
	})
}

func validationMissing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
		Error: "validation data missing",
		Code:  core.ErrInternalError,
	})
}
