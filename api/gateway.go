package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"SellerPulse/api/auth"
	"SellerPulse/api/constants"
	"SellerPulse/pkg/loadbalancer"
)

// Global reference to AuthService (set from main or manager)
var (
	authService     *auth.AuthService
	authServiceOnce sync.Once
)

// SetAuthService allows wiring the AuthService from main/manager
func SetAuthService(svc *auth.AuthService) {
	authServiceOnce.Do(func() {
		authService = svc
	})
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	return r.RemoteAddr
}

// OpenSessionHandler handles POST /sessions/open
func OpenSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}
	if authService == nil {
		RespondWithError(w, http.StatusInternalServerError, "Auth service unavailable")
		return
	}
	session, err := authService.OpenSession(req.UserID, extractClientIP(r))
	if err != nil {
		RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

// CloseSessionHandler handles POST /sessions/close
func CloseSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}
	if authService == nil {
		RespondWithError(w, http.StatusInternalServerError, "Auth service unavailable")
		return
	}
	if err := authService.CloseSession(req.UserID); err != nil {
		RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"session closed"}`))
}

func GetSessionsHandler(w http.ResponseWriter, r *http.Request) {
	if authService == nil {
		RespondWithError(w, http.StatusInternalServerError, "Auth service unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authService.GetActiveSessions())
}

// createReverseProxy returns a handler balancing requests over the given
// backend replicas. One target degenerates to a plain reverse proxy.
func createReverseProxy(targets ...string) http.Handler {
	lb, err := loadbalancer.New(targets)
	if err != nil {
		log.Fatalf("Gateway: bad proxy target %v: %v", targets, err)
	}
	return lb
}

// StartGateway starts the API gateway server
func StartGateway() {
	router := mux.NewRouter()

	router.HandleFunc("/sessions/open", OpenSessionHandler).Methods("POST")
	router.HandleFunc("/sessions/close", CloseSessionHandler).Methods("POST")
	router.HandleFunc("/get-sessions", GetSessionsHandler).Methods("GET")

	router.PathPrefix("/reports/").Handler(createReverseProxy("http://localhost:7143"))
	router.PathPrefix("/stock/").Handler(createReverseProxy("http://localhost:7243"))
	router.PathPrefix("/costs/").Handler(createReverseProxy("http://localhost:7343"))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("API Gateway is healthy"))
	}).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Println("[Gateway] route not found:", r.URL.Path, "from", r.RemoteAddr)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("404 - Route not found"))
	})

	log.Println("API Gateway started on :8081")
	if err := http.ListenAndServe(":8081", router); err != nil {
		log.Fatalf("Gateway server failed: %v", err)
	}
}
