package scope

import "gorm.io/gorm"

// OrderByCreatedAsc lists notebooks in the order they were made, so the
// default notebook comes first.
func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// OrderByDateDesc lists notes newest first. The id breaks ties so pages are
// stable.
func OrderByDateDesc(db *gorm.DB) *gorm.DB {
	return db.Order("date DESC").Order("id")
}
