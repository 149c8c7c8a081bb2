// Package services contains application services for the stockkeeper client.
//
// Session is the process-wide session store. Its only writers are the
// authentication flows (Login, Register, Logout) and the authorization
// failure hook (HandleUnauthorized); everything else reads the token or
// identity through accessors.
package services
