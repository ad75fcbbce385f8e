// Package xapi provides a minimal client for the X (Twitter) v2 posting API.
//
// The client covers exactly what a once-a-day haiku bot needs: a credential
// preflight (GET /2/users/me) and a single status post (POST /2/tweets),
// signed with OAuth 1.0a user context. There is no retry or backoff; a
// failed post is reported once and the process exits non-zero, leaving the
// next cron run to try a different haiku.
package xapi
