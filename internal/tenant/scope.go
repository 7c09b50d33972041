package tenant

import "gorm.io/gorm"

// Scope restricts a query to rows owned by one organization.
func Scope(organizationID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", organizationID)
	}
}

// Period restricts a query to one payroll month. Combine with Scope; a period
// alone spans every organization.
func Period(month, year int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("month = ? AND year = ?", month, year)
	}
}
