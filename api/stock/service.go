package stock

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"SellerPulse/api"
	"SellerPulse/internal/serviceiface"
)

type StockService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewStockService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &StockService{config: cfg, pool: pool}
}

func (s *StockService) Name() string {
	return "stock"
}

func (s *StockService) Start() error {
	go StartStockService(s.pool)
	return nil
}

func (s *StockService) Stop() error {
	return nil
}

func StartStockService(pool *pgxpool.Pool) {
	router := mux.NewRouter()
	router.HandleFunc("/stock/reconcile", api.RequireTenant(ReconcileHandler(pool))).Methods("POST")
	router.HandleFunc("/stock/reset", api.RequireTenant(ResetHandler(pool))).Methods("POST")
	router.HandleFunc("/stock/balance", api.RequireTenant(ListBalanceHandler(pool))).Methods("GET")
	log.Println("Stock Service started on :7243")
	if err := http.ListenAndServe(":7243", router); err != nil {
		log.Fatalf("Stock Service failed: %v", err)
	}
}
