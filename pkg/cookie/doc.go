// Package cookie writes, reads and deletes HTTP cookies that share a set of
// default attributes, and refuses to emit cookies larger than browsers keep.
//
// Values are passed through untouched; signing belongs to package signer.
//
//	m := cookie.New(cookie.WithSecure(true))
//
//	if err := m.Set(w, "session", token, cookie.WithExpires(exp)); err != nil {
//		var tooLarge cookie.ErrCookieTooLarge
//		if errors.As(err, &tooLarge) {
//			// payload has to shrink
//		}
//	}
//
//	value, err := m.Get(r, "session")
//	if errors.Is(err, cookie.ErrCookieNotFound) {
//		// no cookie sent
//	}
//
//	m.Delete(w, "session", cookie.WithDomain(".example.com"))
package cookie
