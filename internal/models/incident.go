package models

import (
	"time"
)

// Severity - тяжесть правонарушения
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Severities возвращает закрытый упорядоченный набор уровней тяжести
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh}
}

// Status - статус расследования
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
	StatusClosed   Status = "closed"
)

// Gender - пол потерпевшего, пустая строка означает "не указан"
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Incident - запись о правонарушении. После создания не изменяется.
type Incident struct {
	ID           string    `json:"id"`
	CrimeType    string    `json:"crime_type"`
	State        string    `json:"state"`
	City         string    `json:"city"`
	District     string    `json:"district"`
	Date         time.Time `json:"date"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Severity     Severity  `json:"severity"`
	VictimAge    *int      `json:"victim_age,omitempty"`
	VictimGender Gender    `json:"victim_gender,omitempty"`
	Status       Status    `json:"status"`
}

// HasLocation сообщает, есть ли у записи обе координаты
func (i Incident) HasLocation() bool {
	return i.Latitude != nil && i.Longitude != nil
}
