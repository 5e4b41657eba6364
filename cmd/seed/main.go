package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/peoplecore/attendance-backend-go/internal/config"
	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/domain/leave"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
	"github.com/peoplecore/attendance-backend-go/internal/repository/postgresql"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     employee.Role
}

// Seeds a fresh database with a department, the three demo accounts and
// the standard leave types. Safe to run more than once.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	ctx := context.Background()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)

	dept, err := departmentRepo.GetByName(ctx, "General")
	if err != nil {
		if !errors.Is(err, employee.ErrDepartmentNotFound) {
			log.Fatal("Error looking up department: ", err)
		}
		dept, err = departmentRepo.Create(ctx, employee.Department{Name: "General"})
		if err != nil {
			log.Fatal("Error creating department: ", err)
		}
		fmt.Println("Created department:", dept.Name)
	}

	users := []seedUser{
		{name: "Admin User", email: "admin@company.com", password: "admin123", role: employee.RoleAdmin},
		{name: "Manager User", email: "manager@company.com", password: "manager123", role: employee.RoleManager},
		{name: "Employee User", email: "employee@company.com", password: "employee123", role: employee.RoleEmployee},
	}

	var managerID *int64
	for _, u := range users {
		existing, err := employeeRepo.GetByEmail(ctx, u.email)
		if err == nil {
			fmt.Println("Skipping existing user:", u.email)
			if u.role == employee.RoleManager {
				managerID = &existing.ID
			}
			continue
		}
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			log.Fatal("Error looking up user: ", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Error hashing password: ", err)
		}

		first, last := splitName(u.name)
		emp := employee.Employee{
			FirstName:    first,
			LastName:     last,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			DepartmentID: &dept.ID,
		}
		if u.role == employee.RoleEmployee {
			emp.ManagerID = managerID
		}

		created, err := employeeRepo.Create(ctx, emp)
		if err != nil {
			log.Fatal("Error creating user: ", err)
		}
		if u.role == employee.RoleManager {
			managerID = &created.ID
		}
		fmt.Printf("Created %s account: %s\n", u.role, u.email)
	}

	for _, name := range []string{"Leave", "Sick", "Casual", "Paid", "Unpaid", "Medical"} {
		if _, err := leaveTypeRepo.Create(ctx, leave.LeaveType{Name: name}); err != nil {
			log.Fatal("Error creating leave type: ", err)
		}
	}
	fmt.Println("Leave types ready")

	fmt.Println("Seeding complete")
}

func splitName(name string) (first, last string) {
	for i, r := range name {
		if r == ' ' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}
