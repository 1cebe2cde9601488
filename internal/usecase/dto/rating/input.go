package ratingdto

type CreateRatingInput struct {
	TradeCode string
	// RatedUserID defaults to the rater's counterparty when zero.
	RatedUserID         uint
	Rating              int
	Comment             string
	CommunicationRating *int
	ReliabilityRating   *int
	SpeedRating         *int
}

type CreateReportInput struct {
	ReportedUserID uint
	// TradeCode is optional.
	TradeCode   string
	Type        string
	Title       string
	Description string
	Evidence    string
}
