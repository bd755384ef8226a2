package models

import "time"

// HealthReport is the /health body.
type HealthReport struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// Healthy reports whether the database answered.
func (h HealthReport) Healthy() bool { return h.Status == "healthy" }

// DBStatusReport is the /db-status body.
type DBStatusReport struct {
	Status    string `json:"status"`
	Connected bool   `json:"connected"`
	Users     int    `json:"users"`
	Requests  int    `json:"requests"`
	Message   string `json:"message,omitempty"`
}

// ConnectionCheck describes the version probe of /test-db.
type ConnectionCheck struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// TableCounts holds row counts per table.
type TableCounts struct {
	Users    int `json:"users"`
	Requests int `json:"requests"`
}

// DBTestReport is the /test-db body.
type DBTestReport struct {
	Status     string           `json:"status"`
	Connection *ConnectionCheck `json:"connection,omitempty"`
	Tables     *TableCounts     `json:"tables,omitempty"`
	WriteTest  string           `json:"write_test,omitempty"`
	Message    string           `json:"message,omitempty"`
}
