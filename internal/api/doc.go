// Package api implements the HTTP handlers for exercise acquisition,
// answer checking, static worksheets and progress tracking, along with the
// error-to-status mapping that keeps internal failures out of responses.
package api
