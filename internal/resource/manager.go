package resource

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"SellerPulse/internal/logger"
	"SellerPulse/internal/serviceiface"
)

// ResourceManager runs a periodic health sweep over the database pool and
// the backend service endpoints, so a dead backend shows up in the audit log
// before sellers notice failed uploads.
type ResourceManager struct {
	pool              *pgxpool.Pool
	endpoints         map[string]string
	mu                sync.RWMutex
	stopChan          chan struct{}
	heartbeatInterval time.Duration
}

func NewResourceManagerService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	interval := 30 * time.Second // default
	if val, ok := cfg["heartbeat_interval"]; ok {
		switch v := val.(type) {
		case string:
			if d, err := time.ParseDuration(v); err == nil {
				interval = d
			}
		case float64:
			interval = time.Duration(v) * time.Second
		case int:
			interval = time.Duration(v) * time.Second
		}
	}
	return &ResourceManager{
		pool: pool,
		endpoints: map[string]string{
			"reports": "http://localhost:7143/reports/hello",
			"stock":   "http://localhost:7243/stock/balance",
			"costs":   "http://localhost:7343/costs/list",
		},
		stopChan:          make(chan struct{}),
		heartbeatInterval: interval,
	}
}

func (rm *ResourceManager) Name() string { return "resourcemanager" }

func (rm *ResourceManager) Start() error {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("ResourceManager started")
	}
	go rm.heartbeatLoop()
	return nil
}

func (rm *ResourceManager) Stop() error {
	close(rm.stopChan)
	return nil
}

func (rm *ResourceManager) heartbeatLoop() {
	ticker := time.NewTicker(rm.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rm.stopChan:
			return
		case <-ticker.C:
			rm.sweep()
		}
	}
}

func (rm *ResourceManager) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if rm.pool != nil {
		if err := rm.pool.Ping(ctx); err != nil {
			rm.audit(fmt.Sprintf("heartbeat: database unreachable: %v", err))
		}
	}

	client := &http.Client{Timeout: 5 * time.Second}
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	for name, url := range rm.endpoints {
		resp, err := client.Get(url)
		if err != nil {
			rm.audit(fmt.Sprintf("heartbeat: %s unreachable: %v", name, err))
			continue
		}
		resp.Body.Close()
		// 4xx still proves the listener is up; only transport errors count
	}
}

// AddEndpoint registers an extra URL for the sweep.
func (rm *ResourceManager) AddEndpoint(name, url string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.endpoints[name] = url
}

func (rm *ResourceManager) RemoveEndpoint(name string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	delete(rm.endpoints, name)
}

func (rm *ResourceManager) audit(msg string) {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(msg)
	}
}
