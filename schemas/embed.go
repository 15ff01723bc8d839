// Package schemas embeds the JSON Schemas for persisted and exchanged documents.
package schemas

import _ "embed"

// JobRecords validates the persisted trackedJobs snapshot.
//
//go:embed job_records.schema.json
var JobRecords string

// ScrapeResponse validates a structured (JSON) response from the scrape endpoint.
//
//go:embed scrape_response.schema.json
var ScrapeResponse string
