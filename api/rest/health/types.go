package health

import "context"

// reports whether the storage medium is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Storage string `json:"storage"`
	Version string `json:"version,omitempty"`
}

type PingResponse struct {
	Message string `json:"message"`
}
