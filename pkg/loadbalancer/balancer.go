// Package loadbalancer round-robins gateway traffic across backend replicas.
// Report generation is CPU-heavy (workbook parsing and styling), so a single
// path prefix may be served by more than one instance.
package loadbalancer

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync"
)

type LoadBalancer struct {
	proxies []*httputil.ReverseProxy
	mu      sync.Mutex
	current int
}

// New builds a balancer over the given backend base URLs.
func New(targets []string) (*LoadBalancer, error) {
	lb := &LoadBalancer{}
	for _, target := range targets {
		u, err := url.Parse(target)
		if err != nil {
			return nil, err
		}
		lb.proxies = append(lb.proxies, httputil.NewSingleHostReverseProxy(u))
	}
	return lb, nil
}

func (lb *LoadBalancer) next() *httputil.ReverseProxy {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	proxy := lb.proxies[lb.current]
	lb.current = (lb.current + 1) % len(lb.proxies)
	return proxy
}

func (lb *LoadBalancer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lb.next().ServeHTTP(w, r)
}
