// Package loadtest drives concurrent signups against a running activities
// service and checks the resulting catalog for lost or doubled participants.
package loadtest

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL        string        // Base URL of the service
	NumSignups     int           // Number of unique signups to generate
	DuplicateRatio float64       // Share of signups resubmitted to exercise rejection, 0..1
	Workers        int           // Number of concurrent workers
	Timeout        time.Duration // HTTP request timeout
	OutputFile     string        // Optional JSON file for generated signups
	Verbose        bool          // Enable verbose logging
}

// Signup is one generated request.
type Signup struct {
	Activity  string `json:"activity"`
	Email     string `json:"email"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Accepted   int
	Duplicates int
	Full       int
	NotFound   int
	Failed     int
	Verified   int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
