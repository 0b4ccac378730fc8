package models

type Topic struct {
	Slug        string `json:"slug"        example:"coding"`
	Description string `json:"description" example:"Code is love, code is life"`
}
