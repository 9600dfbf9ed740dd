package propcache

import (
	"encoding/json"
	"net/http"
	"time"
)

// DebugResponse represents the JSON response structure for debug endpoints
type DebugResponse struct {
	Stats      *DebugStats     `json:"stats"`
	Properties []DebugProperty `json:"properties,omitempty"`
}

// DebugStats represents class statistics in the debug response
type DebugStats struct {
	Hits              int64        `json:"hits"`
	Misses            int64        `json:"misses"`
	Computes          int64        `json:"computes"`
	Sets              int64        `json:"sets"`
	Invalidations     int64        `json:"invalidations"`
	Evictions         int64        `json:"evictions"`
	GeneratorsWrapped int64        `json:"generatorsWrapped"`
	PropertyCount     int64        `json:"propertyCount"`
	InFlight          int64        `json:"inFlight"`
	HitRate           float64      `json:"hitRate"`
	Total             int64        `json:"total"`
	Config            *DebugConfig `json:"config"`
}

// DebugConfig represents class configuration in the debug response
type DebugConfig struct {
	StoreType StoreType `json:"storeType"`
	Capacity  int       `json:"capacity,omitempty"`
}

// DebugProperty represents a defined property with its hook surface
type DebugProperty struct {
	Name       string `json:"name"`
	Doc        string `json:"doc,omitempty"`
	HasGetter  bool   `json:"hasGetter"`
	HasSetter  bool   `json:"hasSetter"`
	HasDeleter bool   `json:"hasDeleter"`
}

// DebugHandler returns an HTTP handler that provides class debug information
// The handler supports the following endpoints:
//   - GET /stats - Returns only class statistics (no properties)
//   - GET /properties - Returns statistics and the defined properties
//   - GET / - Returns statistics and the defined properties (same as /properties)
func (c *Class) DebugHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		var response DebugResponse
		includeProps := r.URL.Path == "/" || r.URL.Path == "/properties"

		response.Stats = &DebugStats{
			Hits:              c.stats.Hits(),
			Misses:            c.stats.Misses(),
			Computes:          c.stats.Computes(),
			Sets:              c.stats.Sets(),
			Invalidations:     c.stats.Invalidations(),
			Evictions:         c.stats.Evictions(),
			GeneratorsWrapped: c.stats.GeneratorsWrapped(),
			PropertyCount:     c.stats.PropertyCount(),
			InFlight:          c.stats.InFlight(),
			HitRate:           c.stats.HitRate(),
			Total:             c.stats.Total(),
			Config: &DebugConfig{
				StoreType: c.config.StoreType,
				Capacity:  c.config.Capacity,
			},
		}

		if includeProps {
			for _, name := range c.Properties() {
				p, ok := c.Property(name)
				if !ok {
					continue
				}
				response.Properties = append(response.Properties, DebugProperty{
					Name:       name,
					Doc:        p.Doc(),
					HasGetter:  p.HasGetter(),
					HasSetter:  p.HasSetter(),
					HasDeleter: p.HasDeleter(),
				})
			}
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
		}
	})
}

// DebugAttribute represents a cached attribute of one instance
type DebugAttribute struct {
	Name  string `json:"name"`
	Value any    `json:"value,omitempty"`
}

// InstanceDebugHandler returns an HTTP handler listing the cached attributes
// of a single instance alongside the class statistics.
func (c *Class) InstanceDebugHandler(inst Instance) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		s := inst.AttributeStore()
		attrs := make([]DebugAttribute, 0, s.Len())
		for _, name := range s.Keys() {
			if v, ok := s.Get(name); ok {
				attrs = append(attrs, DebugAttribute{Name: name, Value: v})
			}
		}

		response := struct {
			Class      string           `json:"class"`
			Attributes []DebugAttribute `json:"attributes"`
		}{
			Class:      c.name,
			Attributes: attrs,
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
		}
	})
}

// NewDebugServer creates a new HTTP server with class debug endpoints
// The server serves on the following routes:
//   - GET /stats - Class statistics only
//   - GET /properties - Class statistics and defined properties
//   - GET / - Class statistics and defined properties (default)
func (c *Class) NewDebugServer(addr string) *http.Server {
	mux := http.NewServeMux()
	handler := c.DebugHandler()

	mux.Handle("/stats", handler)
	mux.Handle("/properties", handler)
	mux.Handle("/", handler)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
