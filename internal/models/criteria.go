package models

// DateRange - границы диапазона дат в формате YYYY-MM-DD
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FilterCriteria - набор фильтров, выбранных пользователем.
// Пустое поле означает отсутствие ограничения.
type FilterCriteria struct {
	State     string    `json:"state"`
	City      string    `json:"city"`
	Year      string    `json:"year"`
	CrimeType string    `json:"crime_type"`
	DateRange DateRange `json:"date_range"`
}

// IsEmpty возвращает true, если не задан ни один фильтр
func (c FilterCriteria) IsEmpty() bool {
	return c.State == "" && c.City == "" && c.Year == "" && c.CrimeType == "" &&
		c.DateRange.Start == "" && c.DateRange.End == ""
}

func (c FilterCriteria) WithState(state string) FilterCriteria {
	c.State = state
	return c
}

func (c FilterCriteria) WithCity(city string) FilterCriteria {
	c.City = city
	return c
}

func (c FilterCriteria) WithYear(year string) FilterCriteria {
	c.Year = year
	return c
}

func (c FilterCriteria) WithCrimeType(crimeType string) FilterCriteria {
	c.CrimeType = crimeType
	return c
}

func (c FilterCriteria) WithDateRange(start, end string) FilterCriteria {
	c.DateRange = DateRange{Start: start, End: end}
	return c
}
