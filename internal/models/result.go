package models

type UploadResponse struct {
	ID           string `json:"id"`
	ProfileID    string `json:"profile_id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
}

type CreateJobRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Responsibilities string   `json:"responsibilities"`
	Requirements     string   `json:"requirements"`
	RequiredSkills   []string `json:"required_skills"`
}

type EvaluateRequest struct {
	ProfileID string `json:"profile_id"`
	JobID     string `json:"job_id"`
}

type EvaluateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ErrorDetail is the user-facing shape of a classified pipeline error.
type ErrorDetail struct {
	Kind        string   `json:"kind"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
	Retryable   bool     `json:"retryable"`
}

type ProfileResponse struct {
	ID      string            `json:"id"`
	Status  string            `json:"status"`
	Profile *CandidateProfile `json:"profile,omitempty"`
	Error   *ErrorDetail      `json:"error,omitempty"`
}

type EvaluationResultResponse struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Result *Evaluation  `json:"result,omitempty"`
	Error  *ErrorDetail `json:"error,omitempty"`
}
