package postgres

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// GetPasswordForUsername returns the stored bcrypt hash and account ID for an
// active account.
func (r *Repository) GetPasswordForUsername(username string) (string, string, error) {
	var passwordHash string
	var accountID string
	query := `SELECT id, password_hash FROM accounts WHERE username = ? AND is_active = true`

	row := r.db.Raw(query, username).Row()
	if err := row.Scan(&accountID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", "", fmt.Errorf("account not found")
		}
		return "", "", err
	}
	return passwordHash, accountID, nil
}
