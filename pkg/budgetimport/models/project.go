package models

// Project is the project record an import is attached to.
type Project struct {
	ID        string `json:"id"`
	JobNumber string `json:"job_number"`
	Name      string `json:"name"`
}
