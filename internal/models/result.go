package models

type ExtractResponse struct {
	Filename   string         `json:"filename"`
	Format     DocumentFormat `json:"format"`
	Characters int            `json:"characters"`
	Preview    string         `json:"preview"`
}

type ReviewResponse struct {
	ID                string        `json:"id"`
	Role              string        `json:"role"`
	General           GeneralReview `json:"general"`
	JDMatch           *JDMatch      `json:"jd_match,omitempty"`
	Warnings          []string      `json:"warnings"`
	ResumePreview     string        `json:"resume_preview"`
	JobDescPreview    string        `json:"job_description_preview,omitempty"`
	ReportURL         string        `json:"report_url,omitempty"`
	ReportDownloadURL string        `json:"report_download_url"`
}
