package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pawn-backend/internal/handlers"
	"pawn-backend/internal/middleware"
)

func NewRouter(
	stockSummaryHandler *handlers.StockSummaryHandler,
	reportHandler *handlers.ReportHandler,
	customerHandler *handlers.CustomerHandler,
	voucherHandler *handlers.VoucherHandler,
	employeeHandler *handlers.EmployeeHandler,
	jewelHandler *handlers.JewelHandler,
	dayBookHandler *handlers.DayBookHandler,
	systemSettingHandler *handlers.SystemSettingHandler,
	backupHandler *handlers.BackupHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Stock summary; fixed paths go before /{id}
	stock := r.PathPrefix("/api/stock-summary").Subrouter()
	stock.HandleFunc("", stockSummaryHandler.GetStockSummary).Methods("GET")
	stock.HandleFunc("/sync", stockSummaryHandler.Sync).Methods("POST")
	stock.HandleFunc("/dashboard", stockSummaryHandler.Dashboard).Methods("GET")
	stock.HandleFunc("/update-overdue", stockSummaryHandler.UpdateOverdue).Methods("POST")
	stock.HandleFunc("/reset", stockSummaryHandler.Reset).Methods("DELETE")
	stock.HandleFunc("/report.pdf", reportHandler.StockSummaryPDF).Methods("GET")
	stock.HandleFunc("/report.csv", reportHandler.StockSummaryCSV).Methods("GET")
	stock.HandleFunc("/{id}", stockSummaryHandler.GetLoan).Methods("GET")
	stock.HandleFunc("/{id}/status", stockSummaryHandler.UpdateStatus).Methods("PUT")

	customers := r.PathPrefix("/api/customers").Subrouter()
	customers.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customers.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customers.HandleFunc("/{id:[0-9]+}", customerHandler.GetCustomer).Methods("GET")
	customers.HandleFunc("/{id:[0-9]+}", customerHandler.UpdateCustomer).Methods("PUT")
	customers.HandleFunc("/{id:[0-9]+}", customerHandler.DeleteCustomer).Methods("DELETE")

	vouchers := r.PathPrefix("/api/vouchers").Subrouter()
	vouchers.HandleFunc("", voucherHandler.ListVouchers).Methods("GET")
	vouchers.HandleFunc("", voucherHandler.CreateVoucher).Methods("POST")
	vouchers.HandleFunc("/{id:[0-9]+}", voucherHandler.GetVoucher).Methods("GET")
	vouchers.HandleFunc("/{id:[0-9]+}", voucherHandler.UpdateVoucher).Methods("PUT")
	vouchers.HandleFunc("/{id:[0-9]+}", voucherHandler.DeleteVoucher).Methods("DELETE")

	employees := r.PathPrefix("/api/employees").Subrouter()
	employees.HandleFunc("", employeeHandler.ListEmployees).Methods("GET")
	employees.HandleFunc("", employeeHandler.CreateEmployee).Methods("POST")
	employees.HandleFunc("/{id:[0-9]+}", employeeHandler.GetEmployee).Methods("GET")
	employees.HandleFunc("/{id:[0-9]+}", employeeHandler.UpdateEmployee).Methods("PUT")
	employees.HandleFunc("/{id:[0-9]+}", employeeHandler.DeleteEmployee).Methods("DELETE")

	jewels := r.PathPrefix("/api/jewels").Subrouter()
	jewels.HandleFunc("", jewelHandler.ListJewels).Methods("GET")
	jewels.HandleFunc("", jewelHandler.CreateJewel).Methods("POST")
	jewels.HandleFunc("/{id:[0-9]+}", jewelHandler.GetJewel).Methods("GET")
	jewels.HandleFunc("/{id:[0-9]+}", jewelHandler.UpdateJewel).Methods("PUT")
	jewels.HandleFunc("/{id:[0-9]+}", jewelHandler.DeleteJewel).Methods("DELETE")

	r.HandleFunc("/api/day-books", dayBookHandler.ListDayBooks).Methods("GET")
	r.HandleFunc("/api/day-books", dayBookHandler.CreateDayBook).Methods("POST")

	settings := r.PathPrefix("/api/settings").Subrouter()
	settings.HandleFunc("", systemSettingHandler.ListSettings).Methods("GET")
	settings.HandleFunc("/date-override", systemSettingHandler.GetDateOverride).Methods("GET")
	settings.HandleFunc("/date-override", systemSettingHandler.SetDateOverride).Methods("PUT")
	settings.HandleFunc("/date-override", systemSettingHandler.ClearDateOverride).Methods("DELETE")
	settings.HandleFunc("/{key}", systemSettingHandler.GetSetting).Methods("GET")

	backup := r.PathPrefix("/api/backup").Subrouter()
	backup.HandleFunc("/export", backupHandler.Export).Methods("GET")
	backup.HandleFunc("/import", backupHandler.Import).Methods("POST")
	backup.HandleFunc("/logs", backupHandler.Logs).Methods("GET")
	backup.HandleFunc("/remote", backupHandler.ListRemote).Methods("GET")

	// Probes
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
