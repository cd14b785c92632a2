package httpx

import (
    "net"
    "net/http"
    "time"
)

// New builds an *http.Client with a bounded overall timeout and a tuned
// transport. Alpha Vantage answers small JSON bodies; the timeout is the
// backstop against a slow or unresponsive upstream holding a request open.
func New(timeout time.Duration) *http.Client {
    transport := &http.Transport{
        Proxy: http.ProxyFromEnvironment,
        DialContext: (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
        MaxIdleConns:          20,
        MaxIdleConnsPerHost:   10,
        ForceAttemptHTTP2:     true,
        IdleConnTimeout:       90 * time.Second,
        TLSHandshakeTimeout:   3 * time.Second,
        ExpectContinueTimeout: 1 * time.Second,
        ResponseHeaderTimeout: 5 * time.Second,
    }
    return &http.Client{Timeout: timeout, Transport: transport}
}
