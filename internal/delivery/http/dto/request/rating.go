package request

type CreateRatingRequest struct {
	TradeCode           string `json:"trade_code"`
	RatedUserID         uint   `json:"rated_user_id"`
	Rating              int    `json:"rating"`
	Comment             string `json:"comment"`
	CommunicationRating *int   `json:"communication_rating"`
	ReliabilityRating   *int   `json:"reliability_rating"`
	SpeedRating         *int   `json:"speed_rating"`
}

type CreateReportRequest struct {
	ReportedUserID uint   `json:"reported_user_id"`
	TradeCode      string `json:"trade_code"`
	ReportType     string `json:"report_type"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Evidence       string `json:"evidence"`
}

type ValidateAmountRequest struct {
	Amount float64 `json:"amount"`
}
