package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Role         string `json:"role"`
	FileType     string `json:"file_type"`
}

type ScreeningRequest struct {
	JDDocumentID      string   `json:"jd_document_id,omitempty"`
	JDText            string   `json:"jd_text,omitempty"`
	ResumeDocumentIDs []string `json:"resume_document_ids"`
}

type ScreeningResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ScreeningResultResponse struct {
	ID           string         `json:"id"`
	Status       string         `json:"status"`
	Candidates   []CandidateRow `json:"candidates,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty"`
}

// CandidateRow is the on-screen table row. Scored rows are sorted by match
// percent descending; failed rows trail with their reason.
type CandidateRow struct {
	Candidate       string   `json:"candidate"`
	File            string   `json:"file"`
	Status          string   `json:"status"`
	MatchPercent    *float64 `json:"match_percent,omitempty"`
	SimilarityPct   *float64 `json:"similarity_percent,omitempty"`
	SkillOverlapPct *float64 `json:"skill_overlap_percent,omitempty"`
	ExperienceYears *float64 `json:"experience_years,omitempty"`
	Strengths       string   `json:"strengths,omitempty"`
	Weaknesses      string   `json:"weaknesses,omitempty"`
	Reasoning       string   `json:"reasoning,omitempty"`
	FailureReason   string   `json:"failure_reason,omitempty"`
}

type HealthResponse struct {
	Status string       `json:"status"`
	Ollama OllamaHealth `json:"ollama"`
}

type OllamaHealth struct {
	OK      bool     `json:"ok"`
	Message string   `json:"message"`
	Models  []string `json:"models,omitempty"`
}
