package records

import (
	"time"

	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/profile"
)

// Record is the append-only log entry for one completed analysis. Created
// exactly once per successful pipeline run and never mutated.
type Record struct {
	ID             string                    `json:"id"`
	AccountID      string                    `json:"accountId"`
	PlanRef        string                    `json:"planRef"`
	SourceURI      string                    `json:"sourceUri"`
	AttemptID      string                    `json:"attemptId"`
	Profile        profile.StructuredProfile `json:"profile"`
	RawModelOutput string                    `json:"rawModelOutput"`
	UsedFallback   bool                      `json:"usedFallback"`
	CreatedAt      time.Time                 `json:"createdAt"`
}
