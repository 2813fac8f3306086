// Package signup implements the sign-up view controller: it owns the flat
// form data, validates it, and drives account creation through a fixed
// pipeline of fallible steps (validate, sign up, log in, navigate).
//
// The controller is UI-agnostic. The CLI feeds it field values with Set and
// renders State and Error; any other front end could do the same.
package signup
