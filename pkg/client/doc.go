// Package client provides a high-level wrapper around the OpenTok REST API.
//
// This package wraps the catalog-driven API client (pkg/api) with typed
// results and a typed error taxonomy. Every call is signed with a fresh
// project token, so a Client needs nothing but the project credentials.
//
// # Basic Usage
//
// Create a client and perform operations:
//
//	c, err := client.New(os.Getenv("OPENTOK_API_KEY"), os.Getenv("OPENTOK_API_SECRET"),
//	    client.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session, err := c.CreateSession(ctx, client.SessionOptions{
//	    MediaMode:   client.MediaModeRouted,
//	    ArchiveMode: client.ArchiveModeAlways,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	archive, err := c.StartArchive(ctx, session.SessionID, client.ArchiveOptions{Name: "demo"})
//
// A call the API answers with 204 No Content and an empty body succeeds with
// a nil result, so check the result before using it.
//
// # Error Handling
//
// Failures are *Error values tagged with a Family and a Cause. Match a
// specific leaf with errors.Is, or a whole class with the helpers. The
// generic sentinels (ErrAuthentication, ErrDomain, ErrUnexpectedValue) only
// match operations without a family of their own; IsAuthError and
// IsValidationError match across all families:
//
//	err := c.Signal(ctx, sessionID, client.SignalPayload{Type: "chat", Data: "hi"}, connID)
//	switch {
//	case errors.Is(err, client.ErrSignalConnection):
//	    // The connection left the session
//	case client.IsPayloadTooLarge(err):
//	    // Shrink the payload
//	case client.IsAuthError(err):
//	    // Check the API key and secret
//	case client.IsNetworkError(err):
//	    // The host could not be reached
//	}
//
// # Logging
//
// The client is silent by default. Pass a *slog.Logger with WithLogger to
// get one debug record per request.
package client
