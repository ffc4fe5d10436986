package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds SELECT ... FOR UPDATE on dialects that support row locks.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// containsPattern builds a case-insensitive LIKE pattern.
func containsPattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// softDelete stamps deleted_at/deleted_by on a live row and reports ErrRecordNotFound when none matched.
func softDelete(db *gorm.DB, m interface{}, where string, arg interface{}, deletedBy string) error {
	res := db.Model(m).Where(where, arg).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"deleted_by": deletedBy,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
