// Package harvest collects whatever gets typed into the decoy login form.
//
// It never looks at the real user base: every submission is recorded,
// valid or not, and the submitter is always told the login failed.
package harvest
