package dto

// SendEmailRequest is the multipart form for POST /api/v1/emails/send.
// The attachment file, if any, is read from the multipart part named
// "attachment" rather than bound here.
type SendEmailRequest struct {
	SenderEmail    string `form:"sender_email"`
	SenderPassword string `form:"sender_password"`
	Recipients     string `form:"recipients"` // JSON array of addresses
	Subject        string `form:"subject"`
	Body           string `form:"body"`
	SendingMode    string `form:"sending_mode"`
}

type SendEmailResponse struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

type JobStatusResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Sent    int    `json:"sent"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

type ParseRecipientsResponse struct {
	Recipients []string `json:"recipients"`
	Count      int      `json:"count"`
}

// GenerateEmailRequest is the multipart form for POST /api/v1/emails/generate.
// An optional supporting document is read from the part named "context".
type GenerateEmailRequest struct {
	Prompt string `form:"prompt" binding:"required"`
}

type GenerateEmailResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
