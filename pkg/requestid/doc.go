// Package requestid tags every request with a correlation id so that log
// records written while loading and saving a browser session can be tied
// back to one request.
//
// Middleware reuses a well-formed "X-Request-ID" header sent by the client or
// a proxy and generates a UUIDv4 otherwise. The id is stored in the request
// context and echoed in the response header.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	handler := requestid.Middleware(mux)
//
// Invalid ids (too long or containing characters outside [A-Za-z0-9_-]) are
// replaced rather than rejected.
package requestid
