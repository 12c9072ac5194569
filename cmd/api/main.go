package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/kudu-hr/payroll-engine-go/internal/config"
	appHTTP "github.com/kudu-hr/payroll-engine-go/internal/handler/http"
	"github.com/kudu-hr/payroll-engine-go/internal/pkg/database"
	"github.com/kudu-hr/payroll-engine-go/internal/pkg/jwt"
	"github.com/kudu-hr/payroll-engine-go/internal/regulation"
	"github.com/kudu-hr/payroll-engine-go/internal/repository/postgresql"
	authService "github.com/kudu-hr/payroll-engine-go/internal/service/auth"
	leaveService "github.com/kudu-hr/payroll-engine-go/internal/service/leave"
	payrollService "github.com/kudu-hr/payroll-engine-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	registry, err := regulation.Load()
	if err != nil {
		log.Fatal("Error loading regulation data: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	jwtService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		log.Fatal("Error creating JWT service: ", err)
	}

	taxCalculator := payrollService.NewTaxCalculator(nil)
	socialCalculator := payrollService.NewSocialSecurityCalculator()
	durationCalculator := leaveService.NewDurationCalculator(registry)
	balanceCalculator := leaveService.NewBalanceCalculator()

	authSvc := authService.NewService(userRepo, jwtService)
	payrollSvc := payrollService.NewService(registry, employeeRepo, companyRepo, payslipRepo, taxCalculator, socialCalculator)
	leaveSvc := leaveService.NewService(db, leaveRepo, employeeRepo, companyRepo, durationCalculator, balanceCalculator)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	payslipHandler := appHTTP.NewPayslipHandler(payrollSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	router := appHTTP.NewRouter(jwtService, authHandler, payslipHandler, leaveHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
