package connection

import (
	"database/sql"

	"gorm.io/gorm"
)

// GormTx runs gorm statements on an already open *sql.Tx so gorm repositories
// can join transactions started by services through database/sql.
func GormTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	txDB := db.Session(&gorm.Session{NewDB: true})
	txDB.Statement.ConnPool = tx
	return txDB
}
