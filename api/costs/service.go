package costs

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"SellerPulse/api"
	"SellerPulse/internal/serviceiface"
)

type CostsService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewCostsService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &CostsService{config: cfg, pool: pool}
}

func (s *CostsService) Name() string {
	return "costs"
}

func (s *CostsService) Start() error {
	go StartCostsService(s.pool)
	return nil
}

func (s *CostsService) Stop() error {
	return nil
}

func StartCostsService(pool *pgxpool.Pool) {
	router := mux.NewRouter()
	router.HandleFunc("/costs/upload", api.RequireTenant(UploadCostsHandler(pool))).Methods("POST")
	router.HandleFunc("/costs/list", api.RequireTenant(ListCostsHandler(pool))).Methods("GET")
	router.HandleFunc("/costs/delete", api.RequireTenant(DeleteCostHandler(pool))).Methods("POST")
	log.Println("Costs Service started on :7343")
	if err := http.ListenAndServe(":7343", router); err != nil {
		log.Fatalf("Costs Service failed: %v", err)
	}
}
