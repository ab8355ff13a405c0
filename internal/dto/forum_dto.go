package dto

// Currency selects the fee settlement denomination for an operation.
const (
	CurrencyNative = "native"
	CurrencyToken  = "token"
)

type CreatePostRequest struct {
	Content  string `json:"content"`
	Currency string `json:"currency,omitempty"`
}

type CreateReplyRequest struct {
	Content  string `json:"content"`
	Currency string `json:"currency,omitempty"`
}

type RateRequest struct {
	Upvote   bool   `json:"upvote"`
	Currency string `json:"currency,omitempty"`
}

type RateReplyRequest struct {
	PostID   uint64 `json:"post_id"`
	Upvote   bool   `json:"upvote"`
	Currency string `json:"currency,omitempty"`
}

type ReportRequest struct {
	Reason   string `json:"reason"`
	Currency string `json:"currency,omitempty"`
}

type ResolveReportRequest struct {
	ActionTaken string `json:"action_taken"`
}

type CreditRequest struct {
	Native int64 `json:"native"`
	Token  int64 `json:"token"`
}
