package api

import (
	"net/http"
	"strconv"

	"bertmill/hyrox-app/internal/domain"
	"bertmill/hyrox-app/internal/plan"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves the generated training calendar. The plan is derived
// data computed once at startup; these handlers only read it.
type PlanHandler struct {
	athlete  domain.Athlete
	raceDate string
	weeks    []domain.Week
}

// NewPlanHandler creates a new PlanHandler around a pre-generated plan.
func NewPlanHandler(athlete domain.Athlete, weeks []domain.Week) *PlanHandler {
	return &PlanHandler{
		athlete:  athlete,
		raceDate: plan.RaceDate.Format("2006-01-02"),
		weeks:    weeks,
	}
}

type PlanResponse struct {
	Athlete  domain.Athlete `json:"athlete"`
	RaceDate string         `json:"raceDate"`
	Weeks    []domain.Week  `json:"weeks"`
}

// GetPlan returns the full 20-week plan with athlete metadata.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	c.JSON(http.StatusOK, PlanResponse{
		Athlete:  h.athlete,
		RaceDate: h.raceDate,
		Weeks:    h.weeks,
	})
}

// GetWeek returns a single week by number.
func (h *PlanHandler) GetWeek(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 1 || n > len(h.weeks) {
		abortWithError(c, http.StatusBadRequest, "Week number must be between 1 and "+strconv.Itoa(len(h.weeks)))
		return
	}
	c.JSON(http.StatusOK, h.weeks[n-1])
}
