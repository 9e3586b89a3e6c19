// Package hostguard rejects requests carrying a poisoned Host header
// before anything derives cookies, redirects or links from it.
//
//	guard := hostguard.New(hostguard.WithAllowedHosts("example.com"))
//	http.ListenAndServe(":8080", guard.Middleware(mux))
package hostguard
