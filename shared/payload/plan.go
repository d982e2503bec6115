package payload

import (
	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
)

type PlanResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	MaxDogs     int     `json:"maxDogs"`
	Image       string  `json:"image,omitempty"`
}

// NewPlanResponse maps a plan record to its JSON shape.
func NewPlanResponse(plan *model.Plan) PlanResponse {
	return PlanResponse{
		ID:          plan.ID.Hex(),
		Name:        plan.Name,
		Price:       plan.Price,
		Description: plan.Description,
		Duration:    plan.Duration,
		MaxDogs:     plan.MaxDogs,
		Image:       plan.Image,
	}
}

// NewPlanResponses maps a slice of plan records, preserving order.
func NewPlanResponses(plans []*model.Plan) []PlanResponse {
	responses := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, NewPlanResponse(plan))
	}

	return responses
}
