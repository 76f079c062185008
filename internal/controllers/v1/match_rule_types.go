package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hemanthscode/fintrack/internal/models"
)

type MatchRuleEditable struct {
	Priority uint   `json:"priority" example:"3"`    // The priority of the match rule
	Match    string `json:"match" example:"REWE*"`   // The matching applied to the transaction description. This is a glob pattern. Globbing is case sensitive.
	Category string `json:"category" example:"food"` // The expense category to assign
}

func (editable MatchRuleEditable) model(userID uuid.UUID) models.MatchRule {
	return models.MatchRule{
		UserID:   userID,
		Priority: editable.Priority,
		Match:    editable.Match,
		Category: editable.Category,
	}
}

type MatchRuleListResponse struct {
	Data       []MatchRule `json:"data"`                                                          // List of match rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MatchRuleCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []MatchRuleResponse `json:"data"`                                                          // List of created match rules
}

func (m *MatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MatchRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchRuleResponse struct {
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this match rule
	Data  *MatchRule `json:"data"`                                                          // The match rule data, if creation was successful
}

type MatchRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/match-rules/95685c82-53c6-455d-b235-f49960b73b21"` // The match rule itself
}

// MatchRule is the API representation of a match rule.
type MatchRule struct {
	models.DefaultModel
	MatchRuleEditable
	Links MatchRuleLinks `json:"links"`
}

func newMatchRule(c *gin.Context, model models.MatchRule) MatchRule {
	url := c.GetString(string(models.DBContextURL))

	return MatchRule{
		DefaultModel: model.DefaultModel,
		MatchRuleEditable: MatchRuleEditable{
			Priority: model.Priority,
			Match:    model.Match,
			Category: model.Category,
		},
		Links: MatchRuleLinks{
			Self: fmt.Sprintf("%s/v1/match-rules/%s", url, model.ID),
		},
	}
}

// MatchRuleQueryFilter contains the fields that match rules can be filtered with.
type MatchRuleQueryFilter struct {
	Priority uint   `form:"priority"`                   // By priority
	Match    string `form:"match" filterField:"false"`  // By match
	Category string `form:"category"`                   // By category
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first match rule returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of match rules to return. Defaults to 50.
}

// model returns a models.MatchRule struct that represents the query filter.
func (f MatchRuleQueryFilter) model() models.MatchRule {
	return models.MatchRule{
		Priority: f.Priority,
		Category: f.Category,
	}
}
