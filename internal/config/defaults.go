package config

const (
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"

	TransportStdio   = "stdio"
	TransportHTTP    = "http"
	DefaultTransport = TransportStdio

	DefaultHTTPHost = "127.0.0.1"
	DefaultHTTPPort = 8402

	DefaultDiscoveryBaseURL = "https://x402-discovery-api.onrender.com"
	DefaultTimeoutSeconds   = 15
)
