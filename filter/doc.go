// Package filter narrows customer listings with expr expressions.
//
// The DevMate API filters customers on a fixed set of fields. This package
// evaluates arbitrary boolean expressions client-side on the listing it
// returns, for example:
//
//	hasActiveLicense() and endsWith(Email, "@example.com")
//	hasProduct("com.example.app") and activationsLeft() == 0
//	daysSince(DateAdded) > 365 and not hasLicense()
//
// Expressions are compiled once and cached by NewExprCompiler.
package filter
