package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/peoplecore/attendance-backend-go/internal/config"
	appHTTP "github.com/peoplecore/attendance-backend-go/internal/handler/http"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/email"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/jwt"
	"github.com/peoplecore/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/peoplecore/attendance-backend-go/internal/service/attendance"
	authService "github.com/peoplecore/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/peoplecore/attendance-backend-go/internal/service/dashboard"
	employeeService "github.com/peoplecore/attendance-backend-go/internal/service/employee"
	holidayService "github.com/peoplecore/attendance-backend-go/internal/service/holiday"
	leaveService "github.com/peoplecore/attendance-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	recordRepo := postgresql.NewAttendanceRecordRepository(db)
	entryRepo := postgresql.NewAttendanceEntryRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authSvc := authService.NewAuthService(db, employeeRepo, departmentRepo, leaveBalanceRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, departmentRepo, emailService)
	attendanceSvc := attendanceService.NewAttendanceService(db, recordRepo, entryRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(db, cfg.Leave, leaveTypeRepo, leaveRequestRepo, leaveBalanceRepo, employeeRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		holidayHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
