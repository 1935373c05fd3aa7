// Package acl provides the Anti-Corruption Layer between the Quotes API wire
// format and the domain model.
//
// # What is an Anti-Corruption Layer?
//
// The ACL keeps the Quotes API's representation out of the domain. Wire DTOs
// are unexported, error bodies are parsed here and nowhere else, and every
// failure that leaves this package is a domain error.
//
// # Package Components
//
//   - [QuoteClient]: implements ports.QuoteClient (list all, list mine,
//     create, update, delete) and ports.HealthChecker
//   - [BaseAdapter]: embeddable request execution and error mapping
//   - [ErrorResponse]: error body parsing (envelope, flat and FastAPI shapes)
//   - [MapHTTPError]: HTTP status and client failure to domain error mapping
//   - [DecodeResponse], [TranslateSlice]: generic decode and translate helpers
//
// # Request rules
//
// Every operation issues at most one request. Inputs are validated and a
// token is fetched from the caller's ports.TokenSource before anything is
// sent; a rejected call never reaches the network. Tokens are fetched per
// call and never cached.
//
// # Error Mapping
//
//   - 401 → [domain.ErrUnauthorized]
//   - 403 → [domain.ErrForbidden] (an [domain.AuthError] on list mine and create)
//   - 404 → [domain.ErrNotFound]
//   - 400, 422, other 4xx → [domain.ErrValidation]
//   - 429, 5xx, malformed 2xx body → [domain.ErrServer]
//   - transport failure, [clients.ErrCircuitOpen] → [domain.ErrNetwork]
//
// Nothing is retried.
package acl
