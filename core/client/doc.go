// Package client implements the authenticated API client for the EBF
// student-management backend.
//
// The client owns one authenticated relationship with the backend: it logs in
// through the OAuth2 password grant, attaches the bearer token to every
// protected call, refreshes the token transparently before expiry, and
// persists the session through a storage adapter so a new process starts
// already authenticated.
//
//	api := client.New(client.DefaultBaseURL,
//		client.WithStorage(session.NewFileStorage(session.DefaultSessionPath())),
//	)
//
//	if !api.IsAuthenticated() {
//		if _, err := api.Login(ctx, client.Credentials{Username: u, Password: p}); err != nil {
//			// login failed; session is guaranteed fully cleared
//		}
//	}
//
//	students, err := api.Students(ctx, &client.StudentsListQuery{AgeGroup: client.AgeGroup7to9})
//
// # Token lifecycle
//
// Every domain method funnels through one request primitive. Before a
// protected call, a token within five minutes of expiry triggers a proactive
// refresh whose failure is logged and swallowed; the call proceeds on the
// still-valid token. A 401 response triggers exactly one refresh followed by
// one retry. Refreshes are single-flight: concurrent callers await the one
// in-flight refresh rather than racing the token endpoint. Any 401 that a
// refresh cannot resolve clears the session entirely, in memory and in
// storage.
//
// # Errors
//
// Every failure surfaces as *Error carrying the HTTP status, a
// machine-readable code, and the server's message. Server-declared codes pass
// through verbatim; transport failures are wrapped as NETWORK_ERROR.
//
//	var apiErr *client.Error
//	if errors.As(err, &apiErr) && apiErr.IsAuth() {
//		// redirect to login
//	}
package client
