// Package server provides the HTTP API for link conversion, built on chi.
//
// # Routes
//
//   - GET  /health              : liveness, {"status":"ok","service":"ytlink"}
//   - GET  /api/convert?url=... : convert one link, returns kind, label, link, query and source_url
//   - POST /api/messages        : feed one chat message to the bot, returns the replies it would post
//   - POST /api/convert         : run the /convert command over a message history
//
// # Error Mapping
//
// Conversion errors are reported as {"error": kind, "message": text} where kind comes from
// [shared.ErrorKind]. Status codes follow the error sentinel:
//
//   - [shared.ErrUnrecognizedLink]  : 422
//   - [shared.ErrMetadataNotFound]  : 404
//   - [shared.ErrFetch]             : 502
//   - [shared.ErrCancelled]         : 499 ([StatusClientClosedRequest])
//
// # Middleware
//
// [Server.Router] installs chi's RequestID, RealIP, Recoverer and Timeout middleware
// around [RequestLogger]. Routes under /api also pass through [RateLimit], a shared
// token bucket that answers 429 once exhausted. It limits callers of this API only.
package server
