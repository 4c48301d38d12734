package postgres

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isForeignKeyConstraintViolation reports whether err is a foreign key
// violation surfaced by the driver. The upsert path uses it to tell a
// missing owner profile apart from an infrastructure failure.
func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
