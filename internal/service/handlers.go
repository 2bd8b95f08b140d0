package service

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eliaswendt/timetable-optimizer/internal/runner"
)

// createRunRequest is the POST /v1/runs body.
type createRunRequest struct {
	InputDir   string `json:"input_dir"`
	Optimizer  string `json:"optimizer"`
	Iterations int    `json:"iterations"`
	Restarts   int    `json:"restarts"`
	Seed       int64  `json:"seed"`
	OutPath    string `json:"out_path"`
	CachePath  string `json:"cache_path"`
}

func (s *store) handleCreateRun(c *fiber.Ctx) error {
	var req createRunRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}
	if req.InputDir == "" {
		return c.Status(400).JSON(fiber.Map{
			"error":   "missing_input_dir",
			"message": "input_dir is required",
		})
	}
	if req.Optimizer == "" {
		req.Optimizer = "sa"
	}
	if req.Iterations == 0 {
		req.Iterations = s.cfg.RandomBestIters
	}
	if req.Restarts == 0 {
		req.Restarts = s.cfg.HillClimbRestarts
	}
	if req.Seed == 0 {
		req.Seed = s.cfg.RandomSeed
	}

	id := s.submit(runner.Options{
		InputDir:   req.InputDir,
		Optimizer:  req.Optimizer,
		Iterations: req.Iterations,
		Restarts:   req.Restarts,
		Seed:       req.Seed,
		OutPath:    req.OutPath,
		CachePath:  req.CachePath,
		Config:     s.cfg,
	})

	return c.Status(202).JSON(fiber.Map{
		"id":     id,
		"status": StatusPending,
	})
}

func (s *store) handleGetRun(c *fiber.Ctx) error {
	id := c.Params("id")
	r, ok := s.get(id)
	if !ok {
		return c.Status(404).JSON(fiber.Map{
			"error":   "run_not_found",
			"message": "no run with that id",
		})
	}

	resp := fiber.Map{
		"id":     r.ID,
		"status": r.Status,
	}
	switch r.Status {
	case StatusFailed:
		resp["error"] = r.Error
	case StatusDone:
		resp["output_path"] = r.Result.OutPath
		resp["final_cost"] = fiber.Map{
			"total":          r.Result.FinalCost.Total(),
			"strained_edges": r.Result.FinalCost.StrainedEdges,
			"travel":         r.Result.FinalCost.Travel,
			"delay":          r.Result.FinalCost.Delay,
		}
		if r.Result.DotPath != "" {
			resp["dot_path"] = r.Result.DotPath
		}
	}
	return c.JSON(resp)
}

func (s *store) handleCancelRun(c *fiber.Ctx) error {
	id := c.Params("id")
	if !s.cancelRun(id) {
		return c.Status(404).JSON(fiber.Map{
			"error":   "run_not_found",
			"message": "no run with that id",
		})
	}
	return c.JSON(fiber.Map{"id": id, "cancelled": true})
}

func handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
