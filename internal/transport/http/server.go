package httptransport

import (
	"context"
	"net"
	"net/http"
	"time"
)

// NewServer returns an http.Server whose request contexts are cancelled as
// soon as Shutdown starts, so long-lived streams end instead of holding the
// shutdown until its deadline.
func NewServer(addr string, h http.Handler) *http.Server {
	base, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}
