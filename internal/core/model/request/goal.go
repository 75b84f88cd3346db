package request

type GoalRequest struct {
	Name           Optional[string]   `json:"name"`
	StartDate      Optional[DateText] `json:"start_date"`
	PlannedEndDate Optional[DateText] `json:"planned_end_date"`
}

func (r GoalRequest) HasAnyField() bool {
	return r.Name.Set || r.StartDate.Set || r.PlannedEndDate.Set
}
