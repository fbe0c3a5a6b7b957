package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=200"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// DataResponse sobre de respuesta exitosa: {success, data}.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ListResponse sobre de respuesta para listados con total: {success, data, total}.
type ListResponse struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data"`
	Total   int            `json:"total"`
	Sources []SourceStatus `json:"sources,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Error solo se rellena en development.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Date fecha de calendario en JSON. Acepta "2006-01-02" y RFC3339; serializa como "2006-01-02".
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// UnmarshalJSON decodifica "2006-01-02", RFC3339 o null.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("date %q: format attendu AAAA-MM-JJ", s)
	}
	d.Time = t
	return nil
}

// MarshalJSON serializa como "2006-01-02" (o null si la fecha está vacía).
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

// Ptr devuelve *time.Time o nil si la fecha está vacía (para columnas DATE anulables).
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// DateFrom construye un *Date desde una columna anulable.
func DateFrom(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}
