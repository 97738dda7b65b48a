package dto

import "time"

type ReflectionDTO struct {
	Date string `json:"date"`
	Mood int    `json:"mood"`
	Note string `json:"note"`
}

// ReflectionExportDTO is the uploaded document.
type ReflectionExportDTO struct {
	Count       int              `json:"count"`
	Reflections []*ReflectionDTO `json:"reflections"`
}

type ExportDTO struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"object_key"`
	Count     int       `json:"count"`
	ExpiresAt time.Time `json:"expires_at"`
}
