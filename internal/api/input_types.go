package api

type registerRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DateOfBirth string `json:"dateOfBirth"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type cycleRequest struct {
	StartDate     string   `json:"startDate" validate:"required"`
	EndDate       string   `json:"endDate" validate:"required"`
	CycleLength   *int     `json:"cycleLength" validate:"omitempty,min=1"`
	FlowIntensity string   `json:"flowIntensity" validate:"required,flow_intensity"`
	Symptoms      []string `json:"symptoms" validate:"omitempty,dive,symptom"`
	Notes         string   `json:"notes" validate:"max=2000"`
}

type dischargeRequest struct {
	Date        string `json:"date" validate:"required"`
	Consistency string `json:"consistency" validate:"required,consistency"`
	Color       string `json:"color" validate:"required,discharge_color"`
	Amount      string `json:"amount" validate:"required,discharge_amount"`
	Odor        string `json:"odor" validate:"required,odor"`
	Notes       string `json:"notes" validate:"max=2000"`
}

type chatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}
