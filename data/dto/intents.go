package dto

// SubmitIntentRequestBody is the payload for submitting a single
// natural-language request directly over the API.
type SubmitIntentRequestBody struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	From    string `json:"from"`
}
