// Package controller exposes game sessions over HTTP and websockets.
package controller

import (
	"bytes"
	stderrors "errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/output"
	"github.com/lgbarn/chess-engine-go/internal/service"
)

type GameController struct {
	games      *service.GameManager
	lineLength int
}

func NewGameController(games *service.GameManager, lineLength int) *GameController {
	return &GameController{games: games, lineLength: lineLength}
}

// MoveRequest is the body of a move submission.
type MoveRequest struct {
	Move string `json:"move"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var opts service.NewGame
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&opts); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, err)
		}
	}

	state, err := gc.games.CreateGame(c.UserContext(), opts)
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"games": gc.games.ListGames(),
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.games.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(state)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	if strings.TrimSpace(req.Move) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "move is required",
		})
	}

	state, err := gc.games.MakeMove(c.UserContext(), c.Params("gameId"), req.Move)
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(state)
}

func (gc *GameController) EngineMove(c *fiber.Ctx) error {
	state, err := gc.games.EngineMove(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(state)
}

// ExportGame returns the game record as PGN, or as JSON with
// ?format=json.
func (gc *GameController) ExportGame(c *fiber.Ctx) error {
	rec, err := gc.games.ExportGame(c.Params("gameId"))
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	if c.Query("format") == "json" {
		return c.JSON(output.GameToJSON(rec))
	}

	var buf bytes.Buffer
	if err := output.WritePGN(&buf, rec, gc.lineLength); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	c.Set(fiber.HeaderContentType, "application/x-chess-pgn")
	return c.Send(buf.Bytes())
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.games.DeleteGame(c.Params("gameId")); err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func errorJSON(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrGameNotFound):
		return fiber.StatusNotFound
	case stderrors.Is(err, errors.ErrGameOver), stderrors.Is(err, errors.ErrNotYourTurn):
		return fiber.StatusConflict
	case stderrors.Is(err, errors.ErrIllegalMove), stderrors.Is(err, errors.ErrLeavesKingInCheck):
		return fiber.StatusUnprocessableEntity
	case stderrors.Is(err, errors.ErrInvalidFEN), stderrors.Is(err, errors.ErrInvalidSquare),
		stderrors.Is(err, errors.ErrInvalidPosition), stderrors.Is(err, errors.ErrInvalidConfig),
		stderrors.Is(err, errors.ErrUnknownStrategy):
		return fiber.StatusBadRequest
	case stderrors.Is(err, errors.ErrPoolStopped):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
