package models

import "time"

// LocaleMethodCopy is the only activation method: sources are copied over targets.
const LocaleMethodCopy = "copy"

// LocaleState records which locale is currently active in a project.
type LocaleState struct {
	Current     Locale     `json:"current"`
	Method      string     `json:"method"`
	LastUpdated *time.Time `json:"lastUpdated"`
}
