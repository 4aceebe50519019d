package reports

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"SellerPulse/api"
	"SellerPulse/internal/serviceiface"
)

type ReportsService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewReportsService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &ReportsService{config: cfg, pool: pool}
}

func (s *ReportsService) Name() string {
	return "reports"
}

func (s *ReportsService) Start() error {
	go StartReportsService(s.pool)
	return nil
}

func (s *ReportsService) Stop() error {
	return nil
}

func StartReportsService(pool *pgxpool.Pool) {
	router := mux.NewRouter()
	router.HandleFunc("/reports/turnover", api.RequireTenant(TurnoverReportHandler(pool))).Methods("POST")
	router.HandleFunc("/reports/finance", api.RequireTenant(FinanceReportHandler(pool))).Methods("POST")
	router.HandleFunc("/reports/snapshots", api.RequireTenant(ListSnapshotsHandler(pool))).Methods("GET")
	router.HandleFunc("/reports/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello from Reports Service"))
	})
	log.Println("Reports Service started on :7143")
	if err := http.ListenAndServe(":7143", router); err != nil {
		log.Fatalf("Reports Service failed: %v", err)
	}
}
