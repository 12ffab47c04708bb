// Package identity keeps the user records of hijackbox.
//
// A user record is keyed by an opaque token, and that very same token is
// handed to the browser as the session cookie. There is no session object:
// a session is valid for as long as the token is a key in the store.
//
// Nothing here is hashed or signed. Passwords are kept verbatim and tokens
// are plain random strings, which is exactly what the demo wants to show.
package identity
