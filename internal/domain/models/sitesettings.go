// internal/domain/models/sitesettings.go
package models

// DefaultSiteName is the name shown in the menu header and page titles.
const DefaultSiteName = "WorkbookHub"
