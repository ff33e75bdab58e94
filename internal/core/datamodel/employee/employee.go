package employee

import "time"

type Department struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Department) TableName() string {
	return "departments"
}

// Account holds the login identity. An employee record owns exactly one
// account; deleting the account cascades to the employee.
type Account struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FirstName    string    `gorm:"column:first_name;not null"`
	LastName     string    `gorm:"column:last_name;not null"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (Account) TableName() string {
	return "accounts"
}

type Employee struct {
	ID           int64     `gorm:"primaryKey"`
	AccountID    int64     `gorm:"column:account_id;uniqueIndex;not null"`
	DepartmentID int64     `gorm:"column:department_id;not null"`
	Role         string    `gorm:"column:role;not null"`
	ManagerID    *int64    `gorm:"column:manager_id"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`

	Account    *Account    `gorm:"foreignKey:AccountID"`
	Department *Department `gorm:"foreignKey:DepartmentID"`
}

func (Employee) TableName() string {
	return "employees"
}
