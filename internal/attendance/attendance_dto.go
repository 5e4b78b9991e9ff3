package attendance

type AttendanceUpdate struct {
	EmployeeID uint    `json:"employee_id" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	Present    bool    `json:"present"`
	Multiplier float64 `json:"multiplier"`
}

// AdvanceUpdate carries the raw input text: kolom advance di grid adalah
// input bebas, jadi "" berarti 0 dan nilai besar di-clamp di service.
type AdvanceUpdate struct {
	EmployeeID uint    `json:"employee_id" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	Amount     string  `json:"amount"`
	Note       *string `json:"note"`
}

type MonthlyAdvanceUpdate struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Year       int    `json:"year" binding:"required"`
	Month      int    `json:"month"`
	Amount     string `json:"amount"`
}

type BatchSaveRequest struct {
	Attendance      []AttendanceUpdate     `json:"attendance"`
	Advances        []AdvanceUpdate        `json:"advances"`
	MonthlyAdvances []MonthlyAdvanceUpdate `json:"monthly_advances"`
}

func (r BatchSaveRequest) Empty() bool {
	return len(r.Attendance) == 0 && len(r.Advances) == 0 && len(r.MonthlyAdvances) == 0
}

type AttendanceResponse struct {
	EmployeeID uint   `json:"employee_id"`
	Date       string `json:"date"`
	Present    bool   `json:"present"`
	Multiplier string `json:"multiplier"`
}

type AdvanceResponse struct {
	EmployeeID uint    `json:"employee_id"`
	Date       string  `json:"date"`
	Amount     string  `json:"amount"`
	Note       *string `json:"note,omitempty"`
}

type MonthlyAdvanceResponse struct {
	EmployeeID uint   `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Amount     string `json:"amount"`
}

type MonthlyDataResponse struct {
	Attendance      []AttendanceResponse     `json:"attendance"`
	Advances        []AdvanceResponse        `json:"advances"`
	MonthlyAdvances []MonthlyAdvanceResponse `json:"monthly_advances"`
}
