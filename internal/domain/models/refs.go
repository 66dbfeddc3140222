// internal/domain/models/refs.go
package models

// Ref is an {id, name} pair as embedded in aggregated backend payloads.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Reference (lookup) entities. They are immutable from the client's point of
// view within a session and are used for id→name resolution and for
// populating select controls.

type LearningPlatform struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LearningActivity is scoped to one learning platform.
type LearningActivity struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	LearningPlatformID string `json:"learning_platform_id"`
}

type LearningType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TaskStatus struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Area struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// School belongs to an Area.
type School struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	AreaID string `json:"area_id"`
}

type GraduateAttribute struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
