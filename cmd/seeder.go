package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/hr-management/internal/authz"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with departments and a CEO account for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		if clearData {
			for _, table := range []string{"performance_reviews", "learning_plans", "employees", "accounts", "departments"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		departments := []string{"Engineering", "Quality Assurance", "Human Resources", "Operations"}
		for _, name := range departments {
			var exists int
			row := db.Raw("SELECT 1 FROM departments WHERE name = ?", name).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO departments (name, created_at, updated_at) VALUES (?, now(), now())", name).Error; err != nil {
					log.Fatalf("failed to insert department %s: %v", name, err)
				}
				fmt.Printf("Seeded department: %s\n", name)
			}
		}

		ceoUsername := "ceo"
		var exists int
		row := db.Raw("SELECT 1 FROM accounts WHERE username = ?", ceoUsername).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("CEO account already exists, nothing to do")
			return
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		if err := db.Exec(
			"INSERT INTO accounts (username, email, password_hash, first_name, last_name, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, true, now(), now())",
			ceoUsername, "ceo@enkefalos.com", string(hash), "Default", "CEO").Error; err != nil {
			log.Fatalf("failed to insert CEO account: %v", err)
		}

		var accountID int64
		if err := db.Raw("SELECT id FROM accounts WHERE username = ?", ceoUsername).Row().Scan(&accountID); err != nil {
			log.Fatalf("failed to lookup CEO account id: %v", err)
		}

		var departmentID int64
		if err := db.Raw("SELECT id FROM departments WHERE name = ?", "Operations").Row().Scan(&departmentID); err != nil {
			log.Fatalf("failed to lookup department id: %v", err)
		}

		if err := db.Exec(
			"INSERT INTO employees (account_id, department_id, role, manager_id, created_at, updated_at) VALUES (?, ?, ?, NULL, now(), now())",
			accountID, departmentID, authz.RoleCEO.String()).Error; err != nil {
			log.Fatalf("failed to insert CEO employee: %v", err)
		}

		fmt.Println("Seeded CEO account: username=ceo password=password")
	},
}
