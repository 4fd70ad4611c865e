package ledger

type AppendClockEventRequest struct {
	UserID    string   `json:"user_id" binding:"required"`
	Type      string   `json:"type" binding:"required"`
	DeviceID  string   `json:"device_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     []string `json:"notes"`
}

type SetRecordStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddRecordNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

type VerifyRecordRequest struct {
	NationalID string `json:"national_id"`
}
