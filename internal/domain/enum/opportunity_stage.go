package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OpportunityStage represents the pipeline stage of a CRM opportunity
type OpportunityStage int

const (
	OpportunityStageLead        OpportunityStage = 0
	OpportunityStageQualified   OpportunityStage = 1
	OpportunityStageProposal    OpportunityStage = 2
	OpportunityStageNegotiation OpportunityStage = 3
	OpportunityStageWon         OpportunityStage = 4
	OpportunityStageLost        OpportunityStage = 5
)

func (s OpportunityStage) String() string {
	names := [...]string{"Lead", "Qualified", "Proposal", "Negotiation", "Won", "Lost"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Lead"
	}
	return names[s]
}

func (s OpportunityStage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OpportunityStage) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OpportunityStage(i)
		return nil
	}
	switch str {
	case "Lead":
		*s = OpportunityStageLead
	case "Qualified":
		*s = OpportunityStageQualified
	case "Proposal":
		*s = OpportunityStageProposal
	case "Negotiation":
		*s = OpportunityStageNegotiation
	case "Won":
		*s = OpportunityStageWon
	case "Lost":
		*s = OpportunityStageLost
	}
	return nil
}

func (s OpportunityStage) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OpportunityStage) Scan(value interface{}) error {
	if value == nil {
		*s = OpportunityStageLead
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OpportunityStage(v)
	case int:
		*s = OpportunityStage(v)
	}
	return nil
}
