package source

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/crime_analytics_platform/internal/models"
)

// WireIncident - запись в формате удаленного API, даты передаются строками ISO-8601
type WireIncident struct {
	ID           string   `json:"id"`
	CrimeType    string   `json:"crime_type"`
	State        string   `json:"state"`
	City         string   `json:"city"`
	District     string   `json:"district"`
	Date         string   `json:"date"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Severity     string   `json:"severity"`
	VictimAge    *int     `json:"victim_age"`
	VictimGender string   `json:"victim_gender"`
	Status       string   `json:"status"`
}

// Форматы без зоны (например, datetime.isoformat()) разбираются в локальном часовом поясе
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseWireDate разбирает дату из формата передачи
func ParseWireDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", s)
}

// ToModel преобразует запись из формата передачи в доменную модель
func (w WireIncident) ToModel(loc *time.Location) (models.Incident, error) {
	if loc == nil {
		loc = time.Local
	}
	if w.ID == "" {
		return models.Incident{}, errors.New("missing id")
	}

	date, err := ParseWireDate(w.Date, loc)
	if err != nil {
		return models.Incident{}, fmt.Errorf("record %s: %w", w.ID, err)
	}

	severity, err := parseSeverity(w.Severity)
	if err != nil {
		return models.Incident{}, fmt.Errorf("record %s: %w", w.ID, err)
	}
	status, err := parseStatus(w.Status)
	if err != nil {
		return models.Incident{}, fmt.Errorf("record %s: %w", w.ID, err)
	}
	gender, err := parseGender(w.VictimGender)
	if err != nil {
		return models.Incident{}, fmt.Errorf("record %s: %w", w.ID, err)
	}

	rec := models.Incident{
		ID:           w.ID,
		CrimeType:    w.CrimeType,
		State:        w.State,
		City:         w.City,
		District:     w.District,
		Date:         date,
		Severity:     severity,
		VictimAge:    w.VictimAge,
		VictimGender: gender,
		Status:       status,
	}
	// Координаты имеют смысл только парой
	if w.Latitude != nil && w.Longitude != nil {
		rec.Latitude = w.Latitude
		rec.Longitude = w.Longitude
	}
	return rec, nil
}

// DecodeWire преобразует пачку записей. Некорректные записи и повторные id
// пропускаются, описание пропусков возвращается в err вместе с годными записями.
func DecodeWire(items []WireIncident, loc *time.Location) ([]models.Incident, error) {
	records := make([]models.Incident, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	var errs []error

	for _, item := range items {
		rec, err := item.ToModel(loc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			errs = append(errs, fmt.Errorf("record %s: duplicate id", rec.ID))
			continue
		}
		seen[rec.ID] = struct{}{}
		records = append(records, rec)
	}

	return records, errors.Join(errs...)
}

// ToWire - обратное преобразование, используется для наполнения Redis и в тестах
func ToWire(rec models.Incident) WireIncident {
	return WireIncident{
		ID:           rec.ID,
		CrimeType:    rec.CrimeType,
		State:        rec.State,
		City:         rec.City,
		District:     rec.District,
		Date:         rec.Date.Format(time.RFC3339Nano),
		Latitude:     rec.Latitude,
		Longitude:    rec.Longitude,
		Severity:     string(rec.Severity),
		VictimAge:    rec.VictimAge,
		VictimGender: string(rec.VictimGender),
		Status:       string(rec.Status),
	}
}

func parseSeverity(s string) (models.Severity, error) {
	switch v := models.Severity(strings.ToLower(strings.TrimSpace(s))); v {
	case models.SeverityLow, models.SeverityMedium, models.SeverityHigh:
		return v, nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

func parseStatus(s string) (models.Status, error) {
	switch v := models.Status(strings.ToLower(strings.TrimSpace(s))); v {
	case models.StatusPending, models.StatusResolved, models.StatusClosed:
		return v, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func parseGender(s string) (models.Gender, error) {
	switch v := models.Gender(strings.ToLower(strings.TrimSpace(s))); v {
	case "", models.GenderMale, models.GenderFemale:
		return v, nil
	}
	return "", fmt.Errorf("unknown victim gender %q", s)
}
