package service

import (
	"database/sql"

	"gorm.io/gorm"
)

// TxManager runs a function inside a database transaction. *gorm.DB satisfies
// it; tests substitute a stub so transactional flows run without a database.
type TxManager interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
